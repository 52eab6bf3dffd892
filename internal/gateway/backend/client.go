// Package backend is the REST gateway to the e-commerce backend API.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/oauth2"

	"delivery-relay/internal/apperr"
	"delivery-relay/internal/logx"
)

const maxResponseBody = 4 << 20

// Config stores gateway settings.
type Config struct {
	BaseURL string
	Timeout time.Duration
}

// Client talks JSON to the backend. Every call carries the bearer token from
// the configured token source and an X-Request-Id.
type Client struct {
	base   *url.URL
	http   *http.Client
	logger logx.Logger
	newID  func() string
}

// NewClient builds a gateway. A nil token source sends unauthenticated requests.
func NewClient(cfg Config, tokens oauth2.TokenSource, logger logx.Logger) (*Client, error) {
	base, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("backend: parse base url: %w", err)
	}
	if base.Scheme != "http" && base.Scheme != "https" || base.Host == "" {
		return nil, fmt.Errorf("backend: base url %q must be absolute http(s)", cfg.BaseURL)
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 10 * time.Second
	}
	if logger == nil {
		logger = logx.Nop()
	}

	var transport http.RoundTripper = http.DefaultTransport
	if tokens != nil {
		transport = &oauth2.Transport{Source: tokens, Base: http.DefaultTransport}
	}

	return &Client{
		base:   base,
		http:   &http.Client{Timeout: cfg.Timeout, Transport: transport},
		logger: logger.With(logx.String("component", "backend")),
		newID:  uuid.NewString,
	}, nil
}

// do sends one request and decodes the (possibly enveloped) response into out.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out any) error {
	u := c.base.JoinPath(path)
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}

	var body io.Reader
	if in != nil {
		b, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("backend %s %s: encode body: %w", method, path, err)
		}
		body = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, u.String(), body)
	if err != nil {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	reqID := c.newID()
	req.Header.Set("X-Request-Id", reqID)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return transportError(method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBody))
	if err != nil {
		return transportError(method, path, err)
	}

	c.logger.Debug("backend call",
		logx.String("method", method),
		logx.String("path", path),
		logx.Int("status", resp.StatusCode),
		logx.String("request_id", reqID),
		logx.Duration("duration", time.Since(start)),
	)

	if resp.StatusCode >= http.StatusBadRequest {
		return newStatusError(method, path, resp.StatusCode, raw)
	}
	if err := decodeEnvelope(raw, out); err != nil {
		var se *StatusError
		if errors.As(err, &se) {
			se.Method, se.Path = method, path
			return se
		}
		return fmt.Errorf("backend %s %s: decode: %w", method, path, err)
	}
	return nil
}

func transportError(method, path string, err error) error {
	if errors.Is(err, apperr.ErrUnauthorized) {
		return fmt.Errorf("backend %s %s: %w", method, path, err)
	}
	return fmt.Errorf("backend %s %s: %w: %w", method, path, apperr.ErrUpstream, err)
}
