package api

import (
	"context"
	"net/http"
)

type collectionsResponse struct {
	Collections []Collection `json:"collections"`
}

// CreateCollectionRequest is the body for creating or updating a collection.
type CreateCollectionRequest struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ListCollections fetches all collections.
func (c *Client) ListCollections(ctx context.Context) ([]Collection, error) {
	var resp collectionsResponse
	if err := c.do(ctx, http.MethodGet, "/collections", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Collections, nil
}

// CreateCollection creates a new collection and returns it.
func (c *Client) CreateCollection(ctx context.Context, req CreateCollectionRequest) (*Collection, error) {
	var created Collection
	if err := c.do(ctx, http.MethodPost, "/collections", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateCollection renames or re-describes an existing collection.
func (c *Client) UpdateCollection(ctx context.Context, id string, req CreateCollectionRequest) (*Collection, error) {
	var updated Collection
	if err := c.do(ctx, http.MethodPut, "/collections/"+id, req, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteCollection removes a collection. Documents inside it become
// unassigned; they are not deleted.
func (c *Client) DeleteCollection(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/collections/"+id, nil, nil)
}
