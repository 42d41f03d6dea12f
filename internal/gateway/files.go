package gateway

import (
	"bytes"
	"context"
	"fmt"
	"mime/multipart"
	"net/http"
	"net/textproto"
	"net/url"
	"strings"

	"github.com/quillworks/quill/internal/model"
)

func (c *Client) filesPath() string {
	return fmt.Sprintf("/storage/buckets/%s/files", c.opts.Bucket)
}

// UploadFile stores a binary in the project bucket as a multipart upload.
func (c *Client) UploadFile(ctx context.Context, fileID, name string, data []byte, mimeType string) error {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	if err := w.WriteField("fileId", fileID); err != nil {
		return model.WrapError(model.KindTransport, "encoding upload", err)
	}

	header := make(textproto.MIMEHeader)
	header.Set("Content-Disposition", fmt.Sprintf(`form-data; name="file"; filename=%q`, name))
	header.Set("Content-Type", mimeType)

	part, err := w.CreatePart(header)
	if err != nil {
		return model.WrapError(model.KindTransport, "encoding upload", err)
	}
	if _, err := part.Write(data); err != nil {
		return model.WrapError(model.KindTransport, "encoding upload", err)
	}
	if err := w.Close(); err != nil {
		return model.WrapError(model.KindTransport, "encoding upload", err)
	}

	return c.do(ctx, http.MethodPost, c.filesPath(), nil, w.FormDataContentType(), &buf, nil)
}

func (c *Client) DeleteFile(ctx context.Context, fileID string) error {
	return c.do(ctx, http.MethodDelete, c.filesPath()+"/"+url.PathEscape(fileID), nil, "", nil, nil)
}

// FilePreviewURL formats the public preview URL for a file. Pure string
// formatting: no network call, no existence check.
func (c *Client) FilePreviewURL(fileID string) string {
	return fmt.Sprintf("%s%s/%s/preview?project=%s",
		strings.TrimRight(c.opts.Endpoint, "/"),
		c.filesPath(),
		url.PathEscape(fileID),
		url.QueryEscape(c.opts.Project),
	)
}
