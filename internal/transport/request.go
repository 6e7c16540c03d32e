package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
)

// Response is what a gateway hands to a repository: the HTTP outcome and,
// when the server sent one, the decoded body.
type Response[T any] struct {
	StatusCode int
	// Status is the server's error text for unsuccessful responses, falling
	// back to the HTTP status line.
	Status string
	Body   *T
}

func (r *Response[T]) Successful() bool {
	return r.StatusCode >= 200 && r.StatusCode < 300
}

type errorBody struct {
	Error string `json:"error"`
}

// Do performs one JSON request. A non-nil error means the exchange itself
// failed (network, encoding, decoding); HTTP failures come back as a
// Response with an unsuccessful status.
func Do[T any](ctx context.Context, c *Client, method, path string, query url.Values, in any) (*Response[T], error) {
	u := c.baseURL + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return nil, fmt.Errorf("encode request: %w", err)
		}
		body = bytes.NewReader(payload)
	}

	req, err := http.NewRequestWithContext(ctx, method, u, body)
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read response: %w", err)
	}

	out := &Response[T]{StatusCode: resp.StatusCode, Status: resp.Status}
	if !out.Successful() {
		var e errorBody
		if json.Unmarshal(raw, &e) == nil && e.Error != "" {
			out.Status = e.Error
		}
		return out, nil
	}

	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return out, nil
	}

	var decoded T
	if err := json.Unmarshal(trimmed, &decoded); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	out.Body = &decoded
	return out, nil
}

func Get[T any](ctx context.Context, c *Client, path string, query url.Values) (*Response[T], error) {
	return Do[T](ctx, c, http.MethodGet, path, query, nil)
}

func Post[T any](ctx context.Context, c *Client, path string, in any) (*Response[T], error) {
	return Do[T](ctx, c, http.MethodPost, path, nil, in)
}

func Put[T any](ctx context.Context, c *Client, path string, in any) (*Response[T], error) {
	return Do[T](ctx, c, http.MethodPut, path, nil, in)
}

// Path joins escaped segments onto the /api prefix.
func Path(segments ...string) string {
	var b strings.Builder
	b.WriteString("/api")
	for _, s := range segments {
		b.WriteByte('/')
		b.WriteString(url.PathEscape(s))
	}
	return b.String()
}
