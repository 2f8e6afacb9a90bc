package api

import (
	"context"

	"github.com/leish-app/leish-go/internal/models"
)

// Login exchanges credentials for a user and token.
func (c *Client) Login(ctx context.Context, email, password string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	req := models.LoginRequest{Email: email, Password: password}
	if err := c.Post(ctx, "/auth/login", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Signup creates an account and returns the fresh user and token.
func (c *Client) Signup(ctx context.Context, email, password, name string) (*models.AuthResponse, error) {
	var resp models.AuthResponse
	req := models.SignupRequest{Email: email, Password: password, Name: name}
	if err := c.Post(ctx, "/auth/signup", req, &resp); err != nil {
		return nil, err
	}
	return &resp, nil
}

// Logout tells the backend to invalidate the session. Best-effort: a failure
// is logged and swallowed, never returned.
func (c *Client) Logout(ctx context.Context) {
	if err := c.Post(ctx, "/auth/logout", nil, nil); err != nil {
		c.log.Warn(ctx, "logout request failed", "err", err)
	}
}

// CurrentUser fetches the account behind the current token.
func (c *Client) CurrentUser(ctx context.Context) (*models.User, error) {
	var resp struct {
		User *models.User `json:"user"`
	}
	if err := c.Get(ctx, "/auth/me", &resp); err != nil {
		return nil, err
	}
	return resp.User, nil
}

// RefreshToken asks the backend to rotate the current token.
func (c *Client) RefreshToken(ctx context.Context) (string, error) {
	var resp struct {
		Token string `json:"token"`
	}
	if err := c.Post(ctx, "/auth/refresh", nil, &resp); err != nil {
		return "", err
	}
	return resp.Token, nil
}
