package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
)

// GetUser looks up a registered user by email. The backend uses this as its
// login check; there is no password or token involved.
func (c *Client) GetUser(ctx context.Context, email string) (*User, error) {
	var u User
	path := fmt.Sprintf("/api/auth/users/%s/", url.PathEscape(email))
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

// Register creates a new user account and returns the stored profile
func (c *Client) Register(ctx context.Context, u *User) (*User, error) {
	var resp struct {
		State   int    `json:"state"`
		Message string `json:"message"`
		User    *User  `json:"user"`
	}
	if err := c.doJSON(ctx, http.MethodPost, "/api/auth/register", u, &resp); err != nil {
		return nil, err
	}
	if resp.User != nil {
		return resp.User, nil
	}
	// Some deployments respond without echoing the profile back
	return u, nil
}
