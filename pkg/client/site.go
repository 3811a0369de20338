package client

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/naveenspark/folio/pkg/domain"
)

// --- Newsletter ---

// Subscribe adds email to the newsletter.
func (c *Client) Subscribe(ctx context.Context, email, name string) (*Response[domain.Subscriber], error) {
	body := map[string]string{"email": email}
	if name != "" {
		body["name"] = name
	}
	resp, err := send[domain.Subscriber](ctx, c, http.MethodPost, "/newsletter/subscribe", RequestOptions{Body: body})
	if err != nil {
		return nil, fmt.Errorf("client.Subscribe: %w", err)
	}
	return resp, nil
}

// Unsubscribe removes email from the newsletter.
func (c *Client) Unsubscribe(ctx context.Context, email string) (*Response[Ack], error) {
	body := map[string]string{"email": email}
	resp, err := send[Ack](ctx, c, http.MethodPost, "/newsletter/unsubscribe", RequestOptions{Body: body})
	if err != nil {
		return nil, fmt.Errorf("client.Unsubscribe: %w", err)
	}
	return resp, nil
}

// --- Settings & dashboard ---

// Settings returns the site settings.
func (c *Client) Settings(ctx context.Context) (*Response[domain.Settings], error) {
	resp, err := send[domain.Settings](ctx, c, http.MethodGet, "/settings", RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.Settings: %w", err)
	}
	return resp, nil
}

// UpdateSettings replaces the site settings.
func (c *Client) UpdateSettings(ctx context.Context, s domain.Settings) (*Response[domain.Settings], error) {
	resp, err := send[domain.Settings](ctx, c, http.MethodPut, "/settings", RequestOptions{Body: s})
	if err != nil {
		return nil, fmt.Errorf("client.UpdateSettings: %w", err)
	}
	return resp, nil
}

// DashboardStats returns the back-office counters.
func (c *Client) DashboardStats(ctx context.Context) (*Response[domain.DashboardStats], error) {
	resp, err := send[domain.DashboardStats](ctx, c, http.MethodGet, "/dashboard/stats", RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.DashboardStats: %w", err)
	}
	return resp, nil
}

// --- Uploads ---

// multipartBody is a fully built multipart form that reports its own content type.
type multipartBody struct {
	*bytes.Buffer
	contentType string
}

func (b multipartBody) ContentType() string { return b.contentType }

// UploadFile sends r as a multipart form file under field.
// The JSON content type is not forced, so the multipart boundary is kept.
func (c *Client) UploadFile(ctx context.Context, field, filename string, r io.Reader) (*Response[domain.Upload], error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile(field, filename)
	if err != nil {
		return nil, fmt.Errorf("client.UploadFile: create part: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("client.UploadFile: copy file: %w", err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("client.UploadFile: close form: %w", err)
	}

	opts := RequestOptions{
		Body:    multipartBody{Buffer: &buf, contentType: w.FormDataContentType()},
		Headers: http.Header{},
	}
	resp, err := send[domain.Upload](ctx, c, http.MethodPost, "/upload", opts)
	if err != nil {
		return nil, fmt.Errorf("client.UploadFile: %w", err)
	}
	return resp, nil
}
