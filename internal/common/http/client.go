// internal/common/http/client.go
package http

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/net/html/charset"
)

// maxBodyBytes bounds how much of a response page is read.
const maxBodyBytes = 4 << 20

// Headers are sent with every form post.
type Headers struct {
	Referer   string
	Origin    string
	UserAgent string
	Cookie    string
}

// Response is the raw result of a form post. Non-2xx statuses are not errors.
type Response struct {
	StatusCode int
	Body       string
}

type Client struct {
	httpClient *http.Client
	headers    Headers
}

func NewClient(timeout time.Duration, headers Headers) *Client {
	return &Client{
		httpClient: &http.Client{
			Timeout: timeout,
		},
		headers: headers,
	}
}

// NewClientWithHTTP lets callers supply their own transport.
func NewClientWithHTTP(c *http.Client, headers Headers) *Client {
	return &Client{httpClient: c, headers: headers}
}

// PostForm sends fields url-encoded and returns the body whatever the status.
func (c *Client) PostForm(ctx context.Context, target string, fields url.Values) (*Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, target, strings.NewReader(fields.Encode()))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")
	if c.headers.Referer != "" {
		req.Header.Set("Referer", c.headers.Referer)
	}
	if c.headers.Origin != "" {
		req.Header.Set("Origin", c.headers.Origin)
	}
	if c.headers.UserAgent != "" {
		req.Header.Set("User-Agent", c.headers.UserAgent)
	}
	if c.headers.Cookie != "" {
		req.Header.Set("Cookie", c.headers.Cookie)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("post form: %w", err)
	}
	defer resp.Body.Close()

	// The form may answer in Latin-1; decode to UTF-8 using the declared or sniffed charset.
	decoded, err := charset.NewReader(io.LimitReader(resp.Body, maxBodyBytes), resp.Header.Get("Content-Type"))
	if err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	body, err := io.ReadAll(decoded)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	return &Response{StatusCode: resp.StatusCode, Body: string(body)}, nil
}
