package gateway

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"time"
)

// Document is a raw record from the document database. The content layer maps
// Data onto its own types; ordering of list results is whatever the backend
// returns.
type Document struct {
	ID        string         `json:"$id"`
	CreatedAt time.Time      `json:"$createdAt"`
	UpdatedAt time.Time      `json:"$updatedAt"`
	Data      map[string]any `json:"data"`
}

func (c *Client) documentsPath() string {
	return fmt.Sprintf("/databases/%s/collections/%s/documents", c.opts.Database, c.opts.Collection)
}

func (c *Client) CreateDocument(ctx context.Context, docID string, data map[string]any) (*Document, error) {
	payload := map[string]any{
		"documentId": docID,
		"data":       data,
	}

	var doc Document
	if err := c.doJSON(ctx, http.MethodPost, c.documentsPath(), payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) UpdateDocument(ctx context.Context, docID string, data map[string]any) (*Document, error) {
	payload := map[string]any{
		"data": data,
	}

	var doc Document
	if err := c.doJSON(ctx, http.MethodPatch, c.documentsPath()+"/"+url.PathEscape(docID), payload, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

func (c *Client) DeleteDocument(ctx context.Context, docID string) error {
	return c.do(ctx, http.MethodDelete, c.documentsPath()+"/"+url.PathEscape(docID), nil, "", nil, nil)
}

// ListDocuments passes the query strings through opaquely; this layer imposes
// no filter logic of its own. The result is never nil on success.
func (c *Client) ListDocuments(ctx context.Context, queries []string) ([]Document, error) {
	values := url.Values{}
	for _, q := range queries {
		values.Add("queries[]", q)
	}

	var out struct {
		Total     int        `json:"total"`
		Documents []Document `json:"documents"`
	}
	if err := c.do(ctx, http.MethodGet, c.documentsPath(), values, "", nil, &out); err != nil {
		return nil, err
	}

	if out.Documents == nil {
		return []Document{}, nil
	}
	return out.Documents, nil
}

func (c *Client) GetDocument(ctx context.Context, docID string) (*Document, error) {
	var doc Document
	if err := c.do(ctx, http.MethodGet, c.documentsPath()+"/"+url.PathEscape(docID), nil, "", nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}
