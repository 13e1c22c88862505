package jsonplaceholder

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/goliatone/go-contactform/pkg/model"
)

// RequestIDHeader carries the correlation id set with WithRequestID.
const RequestIDHeader = "X-Request-ID"

// maxResponseBytes bounds how much of a response body is read.
const maxResponseBytes = 4 << 20

type requestIDKey struct{}

// WithRequestID attaches a correlation id forwarded on outgoing requests.
func WithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestIDKey{}, id)
}

// RequestIDFromContext returns the id stored by WithRequestID.
func RequestIDFromContext(ctx context.Context) string {
	if ctx == nil {
		return ""
	}
	id, _ := ctx.Value(requestIDKey{}).(string)
	return id
}

// Client talks to the JSONPlaceholder API.
type Client struct {
	baseURL   string
	http      *http.Client
	timeout   time.Duration
	userAgent string
	logger    *zap.Logger
}

// New constructs a Client with default options plus any overrides.
func New(fns ...Option) *Client {
	opts := NewOptions(fns...)

	var httpClient *http.Client
	if opts.HTTPClient != nil {
		clone := *opts.HTTPClient
		httpClient = &clone
	} else {
		httpClient = &http.Client{}
	}

	return &Client{
		baseURL:   opts.BaseURL,
		http:      httpClient,
		timeout:   opts.Timeout,
		userAgent: opts.UserAgent,
		logger:    opts.Logger,
	}
}

// BaseURL returns the API root the client targets.
func (c *Client) BaseURL() string {
	return c.baseURL
}

// ListUsers fetches GET /users.
func (c *Client) ListUsers(ctx context.Context) ([]model.User, error) {
	var users []model.User
	if err := c.do(ctx, http.MethodGet, "/users", nil, nil, &users); err != nil {
		return nil, err
	}
	if users == nil {
		users = []model.User{}
	}
	return users, nil
}

// ListPosts fetches GET /posts?_limit=limit. A non-positive limit omits the
// parameter and returns the whole collection.
func (c *Client) ListPosts(ctx context.Context, limit int) ([]model.Post, error) {
	var query url.Values
	if limit > 0 {
		query = url.Values{"_limit": []string{strconv.Itoa(limit)}}
	}
	var posts []model.Post
	if err := c.do(ctx, http.MethodGet, "/posts", query, nil, &posts); err != nil {
		return nil, err
	}
	if posts == nil {
		posts = []model.Post{}
	}
	return posts, nil
}

// CreatePost submits POST /posts and returns the echoed record.
func (c *Client) CreatePost(ctx context.Context, post model.NewPost) (model.Post, error) {
	var created model.Post
	if err := c.do(ctx, http.MethodPost, "/posts", nil, post, &created); err != nil {
		return model.Post{}, err
	}
	return created, nil
}

func (c *Client) do(ctx context.Context, method, path string, query url.Values, body, out any) error {
	if ctx == nil {
		ctx = context.Background()
	}
	if c.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, c.timeout)
		defer cancel()
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	var reader io.Reader
	if body != nil {
		payload, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("jsonplaceholder: encode %s body: %w", path, err)
		}
		reader = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, target, reader)
	if err != nil {
		return fmt.Errorf("jsonplaceholder: build request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", c.userAgent)
	if body != nil {
		req.Header.Set("Content-Type", "application/json; charset=UTF-8")
	}
	if id := RequestIDFromContext(ctx); id != "" {
		req.Header.Set(RequestIDHeader, id)
	}

	started := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("jsonplaceholder: %s %s: %w", method, path, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	c.logger.Debug("jsonplaceholder request",
		zap.String("method", method),
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(started)),
	)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		_, _ = io.Copy(io.Discard, io.LimitReader(resp.Body, maxResponseBytes))
		return StatusError{Code: resp.StatusCode, Method: method, Path: path}
	}

	if out == nil {
		return nil
	}
	dec := json.NewDecoder(io.LimitReader(resp.Body, maxResponseBytes))
	if err := dec.Decode(out); err != nil {
		if errors.Is(err, io.EOF) {
			return fmt.Errorf("jsonplaceholder: %s %s: empty response body", method, path)
		}
		return fmt.Errorf("jsonplaceholder: decode %s response: %w", path, err)
	}
	return nil
}
