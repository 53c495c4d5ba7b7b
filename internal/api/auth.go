package api

import (
	"context"

	"nexus/internal/domain"
)

// Login exchanges an email and password for a bearer token.
func (c *Client) Login(ctx context.Context, req domain.LoginRequest) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.post(ctx, "/login", nil, req, &out); err != nil {
		return domain.AuthResponse{}, err
	}
	return out, nil
}

// Register creates a user and returns its first token.
func (c *Client) Register(ctx context.Context, req domain.RegisterRequest) (domain.AuthResponse, error) {
	var out domain.AuthResponse
	if err := c.post(ctx, "/register", nil, req, &out); err != nil {
		return domain.AuthResponse{}, err
	}
	return out, nil
}
