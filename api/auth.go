package api

import (
	"context"

	"villa-client/models"
)

// Login exchanges credentials for the user profile plus bearer token.
func (c *Client) Login(ctx context.Context, req models.LoginRequest) (*models.Session, error) {
	var resp struct {
		models.User
		Token string `json:"token"`
	}
	if err := c.post(ctx, "/api/auth/login", req, &resp, false); err != nil {
		return nil, err
	}
	return &models.Session{User: resp.User, Token: resp.Token}, nil
}

// Register creates a new account with the chosen role.
func (c *Client) Register(ctx context.Context, req models.RegisterRequest) error {
	return c.post(ctx, "/api/auth/register", req, nil, false)
}

// Profile fetches the authenticated user's profile.
func (c *Client) Profile(ctx context.Context) (*models.User, error) {
	var user models.User
	if err := c.get(ctx, "/api/auth/profile", &user, true); err != nil {
		return nil, err
	}
	return &user, nil
}
