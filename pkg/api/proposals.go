package api

import (
	"context"
	"net/http"
)

type proposalsResponse struct {
	Proposals []Proposal `json:"proposals"`
}

// CreateProposalRequest is the body for creating a proposal shell whose
// sections are generated afterwards.
type CreateProposalRequest struct {
	Title      string `json:"title"`
	ClientName string `json:"client_name,omitempty"`
}

// ListProposals fetches all proposals.
func (c *Client) ListProposals(ctx context.Context) ([]Proposal, error) {
	var resp proposalsResponse
	if err := c.do(ctx, http.MethodGet, "/proposals", nil, &resp); err != nil {
		return nil, err
	}
	return resp.Proposals, nil
}

// GetProposal fetches one proposal with its stored sections.
func (c *Client) GetProposal(ctx context.Context, id string) (*Proposal, error) {
	var p Proposal
	if err := c.do(ctx, http.MethodGet, "/proposals/"+id, nil, &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProposal creates an empty proposal.
func (c *Client) CreateProposal(ctx context.Context, req CreateProposalRequest) (*Proposal, error) {
	var created Proposal
	if err := c.do(ctx, http.MethodPost, "/proposals", req, &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProposal saves edited section content back to the backend.
func (c *Client) UpdateProposal(ctx context.Context, id string, p *Proposal) (*Proposal, error) {
	var updated Proposal
	if err := c.do(ctx, http.MethodPut, "/proposals/"+id, p, &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}

// DeleteProposal removes a proposal.
func (c *Client) DeleteProposal(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/proposals/"+id, nil, nil)
}
