package backend

import (
	"context"
	"fmt"
	"net/http"

	"github.com/custodia-labs/docqa-cli/internal/core/domain"
)

// API paths for account operations.
const (
	PathLogin    = "/auth/login"
	PathRegister = "/auth/register"
)

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	Token string         `json:"token"`
	User  domain.Account `json:"user"`
}

// Login exchanges credentials for a token.
func (c *Client) Login(ctx context.Context, username, password string) (*domain.AuthResult, error) {
	return c.authenticate(ctx, PathLogin, loginRequest{Username: username, Password: password})
}

// Register creates an account and returns its token.
func (c *Client) Register(ctx context.Context, username, email, password string) (*domain.AuthResult, error) {
	return c.authenticate(ctx, PathRegister, registerRequest{
		Username: username,
		Email:    email,
		Password: password,
	})
}

func (c *Client) authenticate(ctx context.Context, path string, body any) (*domain.AuthResult, error) {
	req, err := c.newJSONRequest(ctx, http.MethodPost, path, body)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(req)
	if err != nil {
		return nil, err
	}

	var payload authResponse
	if err := decode(resp, &payload); err != nil {
		return nil, err
	}
	if payload.Token == "" {
		return nil, fmt.Errorf("%w: server returned no token", domain.ErrUnauthorized)
	}
	return &domain.AuthResult{Token: payload.Token, Account: payload.User}, nil
}
