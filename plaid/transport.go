package plaid

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

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const defaultTimeout = 30 * time.Second

// Transport sends one request against the service and returns the raw
// status and body. Implementations must be safe for concurrent use; the
// default one is a thin wrapper over net/http. Tests swap in a canned
// double, the client never cares.
type Transport interface {
	Do(ctx context.Context, method, path string, body any) (status int, raw []byte, err error)
}

// HTTPTransport is the default Transport over net/http. The legacy API puts
// credentials in JSON bodies on every verb, GET and DELETE included, so Do
// attaches a body regardless of method.
type HTTPTransport struct {
	base   *url.URL
	client *http.Client
	logger *zap.Logger
}

func NewHTTPTransport(serviceURL string, timeout time.Duration, logger *zap.Logger) (*HTTPTransport, error) {
	base, err := url.Parse(serviceURL)
	if err != nil {
		return nil, fmt.Errorf("plaid: parse service url: %w", err)
	}
	if base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("%w: service url %q must be absolute", ErrInvalidArgument, serviceURL)
	}
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &HTTPTransport{
		base:   base,
		client: &http.Client{Timeout: timeout},
		logger: logger,
	}, nil
}

func (t *HTTPTransport) Do(ctx context.Context, method, path string, body any) (int, []byte, error) {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return 0, nil, fmt.Errorf("plaid: encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	target := t.base.JoinPath(strings.Split(path, "/")...)
	req, err := http.NewRequestWithContext(ctx, method, target.String(), reader)
	if err != nil {
		return 0, nil, fmt.Errorf("plaid: build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	requestID := uuid.NewString()
	req.Header.Set("X-Request-Id", requestID)

	resp, err := t.client.Do(req)
	if err != nil {
		return 0, nil, fmt.Errorf("plaid: send request: %w", err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp.StatusCode, nil, fmt.Errorf("plaid: read response body: %w", err)
	}

	t.logger.Debug("plaid request",
		zap.String("method", method),
		zap.String("path", path),
		zap.String("request_id", requestID),
		zap.Int("status", resp.StatusCode),
	)

	return resp.StatusCode, raw, nil
}
