// Package gateway implements the HTTP client for the hosted backend platform:
// accounts and sessions, the document database, and file buckets. It is the
// only package that knows the wire protocol; everything above it works with
// model types and tagged errors.
package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strings"

	"github.com/klauspost/compress/gzip"
	"github.com/rs/zerolog"

	"github.com/quillworks/quill/internal/model"
)

const (
	headerProject = "X-Quill-Project"
	headerSession = "X-Quill-Session"
)

var gatewayLogger zerolog.Logger

func SetLogger(l zerolog.Logger) {
	gatewayLogger = l
}

// Options locates the backend project and the collection and bucket this
// client operates on.
type Options struct {
	Endpoint   string
	Project    string
	Database   string
	Collection string
	Bucket     string
}

// Client is a thin typed wrapper over the backend REST API. One client tracks
// at most one session secret; a new login replaces it. Calls are plain
// request/response round-trips: no retries and no local timeouts.
type Client struct {
	httpClient *http.Client
	opts       Options

	// session is the secret of the current session, empty when anonymous.
	session string
}

func NewClient(httpClient *http.Client, opts Options) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		httpClient: httpClient,
		opts:       opts,
	}
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, contentType string, body io.Reader, out any) error {
	u := strings.TrimRight(c.opts.Endpoint, "/") + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return model.WrapError(model.KindTransport, "building request", err)
	}

	req.Header.Set(headerProject, c.opts.Project)
	req.Header.Set("Accept-Encoding", "gzip")
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if c.session != "" {
		req.Header.Set(headerSession, c.session)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return model.WrapError(model.KindTransport, "request failed", err)
	}
	defer resp.Body.Close()

	reader := io.Reader(resp.Body)
	if resp.Header.Get("Content-Encoding") == "gzip" {
		gz, err := gzip.NewReader(resp.Body)
		if err != nil {
			return model.WrapError(model.KindTransport, "decoding gzip response", err)
		}
		defer gz.Close()
		reader = gz
	}

	data, err := io.ReadAll(reader)
	if err != nil {
		return model.WrapError(model.KindTransport, "reading response", err)
	}

	if resp.StatusCode >= 400 {
		err := errorFromResponse(resp.StatusCode, data)
		gatewayLogger.Debug().
			Str("method", method).
			Str("path", path).
			Int("status", resp.StatusCode).
			Msg("Backend returned an error")
		return err
	}

	if out != nil && len(data) > 0 {
		if err := json.Unmarshal(data, out); err != nil {
			return model.WrapError(model.KindTransport, "decoding response", err)
		}
	}

	return nil
}

func (c *Client) doJSON(ctx context.Context, method, path string, payload any, out any) error {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return model.WrapError(model.KindTransport, "encoding request", err)
		}
		body = bytes.NewReader(b)
	}
	return c.do(ctx, method, path, nil, "application/json", body, out)
}
