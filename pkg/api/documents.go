package api

import (
	"context"
	"net/http"
	"net/url"
)

type documentsResponse struct {
	Documents []Document `json:"documents"`
}

// ListDocuments fetches documents, optionally filtered to one collection.
// An empty collectionID returns every document.
func (c *Client) ListDocuments(ctx context.Context, collectionID string) ([]Document, error) {
	path := "/documents"
	if collectionID != "" {
		path += "?collection_id=" + url.QueryEscape(collectionID)
	}
	var resp documentsResponse
	if err := c.do(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, err
	}
	return resp.Documents, nil
}

// GetDocument fetches a single document by id.
func (c *Client) GetDocument(ctx context.Context, id string) (*Document, error) {
	var doc Document
	if err := c.do(ctx, http.MethodGet, "/documents/"+id, nil, &doc); err != nil {
		return nil, err
	}
	return &doc, nil
}

// MoveDocument assigns a document to a collection. An empty collectionID
// detaches the document. This is the organizer move operation; callers that
// update local state optimistically should roll back on error.
func (c *Client) MoveDocument(ctx context.Context, documentID, collectionID string) error {
	body := struct {
		CollectionID string `json:"collection_id"`
	}{CollectionID: collectionID}
	return c.do(ctx, http.MethodPut, "/documents/"+documentID+"/collection", body, nil)
}
