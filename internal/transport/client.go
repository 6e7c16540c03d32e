package transport

import (
	"net/http"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

const (
	headerContentType   = "Content-Type"
	headerAuthorization = "Authorization"
	contentTypeJSON     = "application/json"
)

// Config configures a Client.
//
// Zero values are replaced with defaults:
//   - HTTPClient: a new http.Client using http.DefaultTransport
//   - Timeout: none beyond what HTTPClient already has
//   - Tokens: a fresh TokenHolder
type Config struct {
	BaseURL    string
	HTTPClient *http.Client
	Timeout    time.Duration
	Tokens     *TokenHolder
	Logger     zerolog.Logger
}

// Client is the single HTTP client every gateway shares.
type Client struct {
	baseURL string
	http    *http.Client
	tokens  *TokenHolder
	log     zerolog.Logger
}

func NewClient(cfg Config) *Client {
	tokens := cfg.Tokens
	if tokens == nil {
		tokens = NewTokenHolder()
	}

	base := cfg.HTTPClient
	if base == nil {
		base = &http.Client{}
	}
	next := base.Transport
	if next == nil {
		next = http.DefaultTransport
	}

	httpClient := *base
	httpClient.Transport = &interceptor{next: next, tokens: tokens, log: cfg.Logger}
	if cfg.Timeout > 0 {
		httpClient.Timeout = cfg.Timeout
	}

	return &Client{
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
		http:    &httpClient,
		tokens:  tokens,
		log:     cfg.Logger,
	}
}

func (c *Client) Tokens() *TokenHolder {
	return c.tokens
}

// interceptor attaches the JSON content type and, when a token is held,
// the bearer header to every request.
type interceptor struct {
	next   http.RoundTripper
	tokens *TokenHolder
	log    zerolog.Logger
}

func (i *interceptor) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	req = req.Clone(req.Context())
	req.Header.Set(headerContentType, contentTypeJSON)
	if token := i.tokens.Get(); token != "" {
		req.Header.Set(headerAuthorization, "Bearer "+token)
	}

	start := time.Now()
	resp, err := i.next.RoundTrip(req)
	if err != nil {
		i.log.Error().
			Err(err).
			Str("method", req.Method).
			Str("path", req.URL.Path).
			Dur("duration", time.Since(start)).
			Msg("api request failed")
		return nil, err
	}

	i.log.Debug().
		Str("method", req.Method).
		Str("path", req.URL.Path).
		Int("status", resp.StatusCode).
		Dur("duration", time.Since(start)).
		Msg("api request")
	return resp, nil
}
