package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/naveenspark/folio/pkg/domain"
)

// DefaultAPIPrefix is the versioned path every endpoint is mounted under.
const DefaultAPIPrefix = "/api/v1"

// maxBodySize caps how much of a response body is read.
const maxBodySize = 10 << 20 // 10 MB

// TokenSource yields the current access token, or "" when there is none.
type TokenSource func(ctx context.Context) string

// Option configures a Client.
type Option func(*Client)

// WithTokenSource sets where the bearer token is read from on every request.
func WithTokenSource(ts TokenSource) Option {
	return func(c *Client) { c.token = ts }
}

// WithHTTPClient replaces the underlying HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

// WithAPIPrefix overrides DefaultAPIPrefix.
func WithAPIPrefix(prefix string) Option {
	return func(c *Client) { c.prefix = "/" + strings.Trim(prefix, "/") }
}

// WithLogger sets the logger used for per-request debug lines.
func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log }
}

// RequestOptions are the per-call inputs of Do.
//
// A non-nil but empty Headers tells Do not to force the JSON content type;
// uploads rely on this so the multipart boundary survives.
type RequestOptions struct {
	Query   Query
	Body    any
	Headers http.Header
}

// contentTyper is implemented by bodies that know their own content type.
type contentTyper interface {
	ContentType() string
}

// Client is the portfolio API client. It is the only code that talks HTTP to the backend.
type Client struct {
	baseURL    string
	prefix     string
	token      TokenSource
	httpClient *http.Client
	log        *zap.Logger

	Blogs        *BlogResource
	Projects     *Resource[domain.Project]
	Categories   *Resource[domain.Category]
	Skills       *Resource[domain.Skill]
	Experiences  *Resource[domain.Experience]
	Educations   *Resource[domain.Education]
	Achievements *Resource[domain.Achievement]
	Volunteers   *Resource[domain.Volunteer]
	Contacts     *ContactResource
	Subscribers  *Resource[domain.Subscriber]
}

// New creates a new API client rooted at baseURL.
// There is no client-side timeout; callers bound requests with their context.
func New(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL:    strings.TrimRight(baseURL, "/"),
		prefix:     DefaultAPIPrefix,
		token:      func(context.Context) string { return "" },
		httpClient: &http.Client{},
		log:        zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}

	c.Blogs = &BlogResource{Resource: newResource[domain.Blog](c, "blogs")}
	c.Projects = newResource[domain.Project](c, "projects")
	c.Categories = newResource[domain.Category](c, "categories")
	c.Skills = newResource[domain.Skill](c, "skills")
	c.Experiences = newResource[domain.Experience](c, "experience")
	c.Educations = newResource[domain.Education](c, "education")
	c.Achievements = newResource[domain.Achievement](c, "achievements")
	c.Volunteers = newResource[domain.Volunteer](c, "volunteers")
	c.Contacts = &ContactResource{Resource: newResource[domain.Contact](c, "contacts")}
	c.Subscribers = newResource[domain.Subscriber](c, "subscribers")
	return c
}

// BaseURL returns the backend root the client was created with.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// Do issues one request and decodes the JSON body into out.
//
// Non-2xx statuses return *HTTPError carrying the server message. A 2xx body
// whose envelope says success=false is decoded normally and is not an error.
// Transport and decode failures are returned wrapped. Nothing is retried.
func (c *Client) Do(ctx context.Context, method, path string, opts RequestOptions, out any) error {
	_, err := c.do(ctx, method, path, opts, out)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, opts RequestOptions, out any) (int, error) {
	target := c.baseURL + c.prefix + path
	if qs, err := opts.Query.Encode(); err != nil {
		return 0, err
	} else if qs != "" {
		target += "?" + qs
	}

	var reqBody io.Reader
	switch b := opts.Body.(type) {
	case nil:
	case io.Reader:
		reqBody = b
	default:
		data, err := json.Marshal(b)
		if err != nil {
			return 0, fmt.Errorf("marshal body: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reqBody)
	if err != nil {
		return 0, fmt.Errorf("create request: %w", err)
	}

	rawUpload := opts.Headers != nil && len(opts.Headers) == 0
	if rawUpload {
		if ct, ok := opts.Body.(contentTyper); ok {
			req.Header.Set("Content-Type", ct.ContentType())
		}
	} else {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-ID", requestID)
	if tok := c.token(ctx); tok != "" {
		req.Header.Set("Authorization", "Bearer "+tok)
	}
	for k, vs := range opts.Headers {
		req.Header.Del(k)
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("method", method), zap.String("path", path),
			zap.String("request_id", requestID), zap.Error(err))
		return 0, fmt.Errorf("do request: %w", err)
	}
	defer resp.Body.Close() //nolint:errcheck // best-effort close

	c.log.Debug("request",
		zap.String("method", method), zap.String("path", path),
		zap.Int("status", resp.StatusCode), zap.String("request_id", requestID),
		zap.Duration("took", time.Since(start)))

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodySize))
	if err != nil {
		return resp.StatusCode, fmt.Errorf("read body: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return resp.StatusCode, newHTTPError(resp.StatusCode, body)
	}

	if out == nil || resp.StatusCode == http.StatusNoContent {
		return resp.StatusCode, nil
	}
	if err := json.Unmarshal(body, out); err != nil {
		return resp.StatusCode, &DecodeError{StatusCode: resp.StatusCode, Err: err}
	}
	return resp.StatusCode, nil
}

func newHTTPError(status int, body []byte) *HTTPError {
	httpErr := &HTTPError{StatusCode: status, Message: genericFailure}
	var eb errorBody
	if json.Unmarshal(body, &eb) != nil {
		return httpErr
	}
	switch {
	case eb.Message != "":
		httpErr.Message = eb.Message
	case eb.Error != "":
		httpErr.Message = eb.Error
	}
	httpErr.Errors = eb.Errors
	return httpErr
}

// send performs a request whose body is a Response[T] envelope.
func send[T any](ctx context.Context, c *Client, method, path string, opts RequestOptions) (*Response[T], error) {
	var out Response[T]
	status, err := c.do(ctx, method, path, opts, &out)
	if err != nil {
		return nil, err
	}
	if status == http.StatusNoContent {
		out.Success = true
	}
	return &out, nil
}
