package client

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/naveenspark/folio/pkg/domain"
)

// Resource is the CRUD surface shared by every back-office collection.
type Resource[T any] struct {
	c    *Client
	name string
}

func newResource[T any](c *Client, name string) *Resource[T] {
	return &Resource[T]{c: c, name: name}
}

// Name returns the collection's path segment.
func (r *Resource[T]) Name() string {
	return r.name
}

func (r *Resource[T]) itemPath(id string) string {
	return "/" + r.name + "/" + url.PathEscape(id)
}

// List fetches the collection, filtered by q.
func (r *Resource[T]) List(ctx context.Context, q Query) (*Response[[]T], error) {
	resp, err := send[[]T](ctx, r.c, http.MethodGet, "/"+r.name, RequestOptions{Query: q})
	if err != nil {
		return nil, fmt.Errorf("client.%s.List: %w", r.name, err)
	}
	return resp, nil
}

// Get fetches a single item by ID.
func (r *Resource[T]) Get(ctx context.Context, id string) (*Response[T], error) {
	resp, err := send[T](ctx, r.c, http.MethodGet, r.itemPath(id), RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.%s.Get: %w", r.name, err)
	}
	return resp, nil
}

// Create creates a new item.
func (r *Resource[T]) Create(ctx context.Context, item T) (*Response[T], error) {
	resp, err := send[T](ctx, r.c, http.MethodPost, "/"+r.name, RequestOptions{Body: item})
	if err != nil {
		return nil, fmt.Errorf("client.%s.Create: %w", r.name, err)
	}
	return resp, nil
}

// Update replaces an item by ID.
func (r *Resource[T]) Update(ctx context.Context, id string, item T) (*Response[T], error) {
	resp, err := send[T](ctx, r.c, http.MethodPut, r.itemPath(id), RequestOptions{Body: item})
	if err != nil {
		return nil, fmt.Errorf("client.%s.Update: %w", r.name, err)
	}
	return resp, nil
}

// Delete deletes an item by ID.
func (r *Resource[T]) Delete(ctx context.Context, id string) (*Response[Ack], error) {
	resp, err := send[Ack](ctx, r.c, http.MethodDelete, r.itemPath(id), RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.%s.Delete: %w", r.name, err)
	}
	return resp, nil
}

// BlogResource adds slug lookup to the blog collection.
type BlogResource struct {
	*Resource[domain.Blog]
}

// GetBySlug fetches a blog post by its public slug.
func (r *BlogResource) GetBySlug(ctx context.Context, slug string) (*Response[domain.Blog], error) {
	resp, err := send[domain.Blog](ctx, r.c, http.MethodGet, "/blogs/slug/"+url.PathEscape(slug), RequestOptions{})
	if err != nil {
		return nil, fmt.Errorf("client.blogs.GetBySlug: %w", err)
	}
	return resp, nil
}

// ContactResource adds public submission and status changes to the contact inbox.
type ContactResource struct {
	*Resource[domain.Contact]
}

// ContactRequest is the public contact form payload.
type ContactRequest struct {
	Name    string `json:"name"`
	Email   string `json:"email"`
	Subject string `json:"subject,omitempty"`
	Message string `json:"message"`
}

// Submit sends a contact form message. It needs no session.
func (r *ContactResource) Submit(ctx context.Context, req ContactRequest) (*Response[domain.Contact], error) {
	resp, err := send[domain.Contact](ctx, r.c, http.MethodPost, "/contacts", RequestOptions{Body: req})
	if err != nil {
		return nil, fmt.Errorf("client.contacts.Submit: %w", err)
	}
	return resp, nil
}

// UpdateStatus moves a contact message to status ("new", "read", "replied", "archived").
func (r *ContactResource) UpdateStatus(ctx context.Context, id, status string) (*Response[domain.Contact], error) {
	body := map[string]string{"status": status}
	resp, err := send[domain.Contact](ctx, r.c, http.MethodPatch, r.itemPath(id)+"/status", RequestOptions{Body: body})
	if err != nil {
		return nil, fmt.Errorf("client.contacts.UpdateStatus: %w", err)
	}
	return resp, nil
}
