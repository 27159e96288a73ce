// Package api is the HTTP client of the remote CareConnect REST API.
package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"careconnect_web/internal/logger"
	"careconnect_web/pkg/apperrors"
	"careconnect_web/pkg/contextkeys"
)

// fallbackMessage is shown when the API fails without a usable message.
const fallbackMessage = "An error occurred"

// maxErrorBody bounds how much of a failed response is read.
const maxErrorBody = 64 << 10

// Client calls the CareConnect REST API and implements Service.
type Client struct {
	baseURL string
	http    *http.Client
}

// Option configures a Client built by NewClient.
type Option func(*Client)

// WithHTTPClient replaces the underlying transport, mainly for tests.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient builds a client for baseURL, e.g. "http://localhost:8080/api".
// timeout 0 leaves the transport without a deadline.
func NewClient(baseURL string, timeout time.Duration, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(strings.TrimSpace(baseURL), "/"),
		http:    &http.Client{Timeout: timeout},
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// WithToken returns a context whose API calls carry "Authorization: Bearer token".
func WithToken(ctx context.Context, token string) context.Context {
	return context.WithValue(ctx, contextkeys.TokenContextKey, token)
}

// TokenFrom returns the token stored by WithToken.
func TokenFrom(ctx context.Context) string {
	token, _ := ctx.Value(contextkeys.TokenContextKey).(string)
	return token
}

type errorBody struct {
	Message string `json:"message"`
	Error   string `json:"error"`
}

// do sends one request. body is JSON-encoded when non-nil, out is decoded
// from a 2xx response when non-nil. Any other status becomes an AppError
// carrying the upstream status and message.
func (c *Client) do(ctx context.Context, method, endpoint string, body, out interface{}) error {
	var reader io.Reader
	if body != nil {
		b, err := json.Marshal(body)
		if err != nil {
			return apperrors.InternalError(fmt.Errorf("encoding %s %s body: %w", method, endpoint, err))
		}
		reader = bytes.NewReader(b)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+endpoint, reader)
	if err != nil {
		return apperrors.InternalError(fmt.Errorf("building %s %s: %w", method, endpoint, err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("Content-Type", "application/json")
	if token := TokenFrom(ctx); token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if requestID := logger.GetRequestID(ctx); requestID != "" {
		req.Header.Set("X-Request-ID", requestID)
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.UpstreamLog(logger.Fields(ctx), method, endpoint, 0, time.Since(start), err)
		return apperrors.NewTransportError(err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		appErr := apperrors.NewUpstreamError(resp.StatusCode, readErrorMessage(resp.Body))
		logger.UpstreamLog(logger.Fields(ctx), method, endpoint, resp.StatusCode, time.Since(start), appErr)
		return appErr
	}
	logger.UpstreamLog(logger.Fields(ctx), method, endpoint, resp.StatusCode, time.Since(start), nil)

	if out == nil {
		_, _ = io.Copy(io.Discard, resp.Body)
		return nil
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return apperrors.NewTransportError(fmt.Errorf("reading %s %s response: %w", method, endpoint, err))
	}
	if len(bytes.TrimSpace(data)) == 0 {
		return nil
	}
	if err := json.Unmarshal(data, out); err != nil {
		return apperrors.Wrap(err, apperrors.CodeExternalServiceError, "api", "Unexpected response from the CareConnect service", http.StatusBadGateway)
	}
	return nil
}

func readErrorMessage(r io.Reader) string {
	data, err := io.ReadAll(io.LimitReader(r, maxErrorBody))
	if err != nil {
		return fallbackMessage
	}

	var body errorBody
	if err := json.Unmarshal(data, &body); err != nil {
		return fallbackMessage
	}
	if msg := strings.TrimSpace(body.Message); msg != "" {
		return msg
	}
	if msg := strings.TrimSpace(body.Error); msg != "" {
		return msg
	}
	return fallbackMessage
}

func path(format string, ids ...string) string {
	args := make([]interface{}, len(ids))
	for i, id := range ids {
		args[i] = url.PathEscape(id)
	}
	return fmt.Sprintf(format, args...)
}
