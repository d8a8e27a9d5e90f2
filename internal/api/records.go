package api

import (
	"context"
	"fmt"
	"net/http"
)

// SubmitPereval creates a new pass record and returns its assigned id.
// Photos are not part of the payload; they are uploaded separately.
func (c *Client) SubmitPereval(ctx context.Context, p *Pereval) (int, error) {
	var resp struct {
		State   int    `json:"state"`
		Message string `json:"message"`
		ID      int    `json:"id"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/submitData/", p, &resp); err != nil {
		return 0, err
	}
	if resp.ID == 0 {
		return 0, fmt.Errorf("%w: no record id in response", ErrBadResponse)
	}
	return resp.ID, nil
}

// UpdatePereval sends a partial update for an existing record. fields holds
// only the changed values; email identifies the acting user for the
// backend's ownership check.
func (c *Client) UpdatePereval(ctx context.Context, id int, email string, fields map[string]any) error {
	payload := make(map[string]any, len(fields)+1)
	for k, v := range fields {
		payload[k] = v
	}
	payload["email"] = email

	var resp struct {
		State   int    `json:"state"`
		Message string `json:"message"`
	}
	path := fmt.Sprintf("/api/submitData/%d/update/", id)
	if err := c.doJSON(ctx, http.MethodPatch, path, payload, &resp); err != nil {
		return err
	}
	if resp.State != 1 {
		return fmt.Errorf("update rejected: %s", resp.Message)
	}
	return nil
}

// GetPereval fetches a single record
func (c *Client) GetPereval(ctx context.Context, id int) (*Pereval, error) {
	var p Pereval
	path := fmt.Sprintf("/api/submitData/%d/info/", id)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &p); err != nil {
		return nil, err
	}
	p.ID = id
	return &p, nil
}

// ListPerevals fetches summaries of all submitted records
func (c *Client) ListPerevals(ctx context.Context) ([]Summary, error) {
	var items []Summary
	if err := c.doJSON(ctx, http.MethodGet, "/api/submitData/list/", nil, &items); err != nil {
		return nil, err
	}
	return items, nil
}
