package client

import (
	"context"
	"fmt"
	"net/http"

	"github.com/naveenspark/folio/pkg/domain"
)

// LoginRequest is the payload for the login endpoint.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginData is the payload of a successful login or token refresh.
type LoginData struct {
	AccessToken  string       `json:"accessToken"`
	RefreshToken string       `json:"refreshToken"`
	User         *domain.User `json:"user,omitempty"`
}

// Login exchanges credentials for a token pair.
func (c *Client) Login(ctx context.Context, req LoginRequest) (*Response[LoginData], error) {
	resp, err := send[LoginData](ctx, c, http.MethodPost, "/auth/login", RequestOptions{Body: req})
	if err != nil {
		return nil, fmt.Errorf("client.Login: %w", err)
	}
	return resp, nil
}

// Logout invalidates accessToken on the server. The token is passed explicitly
// because the local session is usually cleared before this call goes out.
func (c *Client) Logout(ctx context.Context, accessToken string) (*Response[Ack], error) {
	opts := RequestOptions{}
	if accessToken != "" {
		opts.Headers = http.Header{"Authorization": {"Bearer " + accessToken}}
	}
	resp, err := send[Ack](ctx, c, http.MethodPost, "/auth/logout", opts)
	if err != nil {
		return nil, fmt.Errorf("client.Logout: %w", err)
	}
	return resp, nil
}

// RefreshToken exchanges a refresh token for a new token pair.
func (c *Client) RefreshToken(ctx context.Context, refreshToken string) (*Response[LoginData], error) {
	body := map[string]string{"refreshToken": refreshToken}
	resp, err := send[LoginData](ctx, c, http.MethodPost, "/auth/refresh", RequestOptions{Body: body})
	if err != nil {
		return nil, fmt.Errorf("client.RefreshToken: %w", err)
	}
	return resp, nil
}

// Me returns the user the current token belongs to.
func (c *Client) Me(ctx context.Context) (*Response[domain.User], error) {
	resp, err := send[domain.User](ctx, c, http.MethodGet, "/auth/me", RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.Me: %w", err)
	}
	return resp, nil
}
