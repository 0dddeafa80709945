package api

import (
	"context"
	"fmt"

	"github.com/ezeqja22/sciencepioneers-cli/internal/models"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
}

// Login exchanges credentials for a bearer token. The token is returned
// rather than stored; persisting it is the caller's decision.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	var resp loginResponse
	if err := c.post(ctx, "/auth/login", loginRequest{Username: username, Password: password}, &resp); err != nil {
		return "", fmt.Errorf("login: %w", err)
	}
	if resp.AccessToken == "" {
		return "", fmt.Errorf("login: server returned no token")
	}
	return resp.AccessToken, nil
}

// Me fetches the authenticated identity. Every screen derives action
// visibility from this plus the fetched report, never from cached role
// assumptions.
func (c *Client) Me(ctx context.Context) (*models.CurrentUser, error) {
	var user models.CurrentUser
	if err := c.get(ctx, "/auth/me", &user); err != nil {
		return nil, fmt.Errorf("fetching identity: %w", err)
	}
	return &user, nil
}
