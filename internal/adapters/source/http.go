package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/okian/tally/internal/domain/model"
	"github.com/okian/tally/pkg/metrics"
)

// Default HTTP source configuration constants.
const (
	defaultRequestTimeout = 10 * time.Second
)

// HTTPSource loads resources over plain HTTP GET from a base URL.
type HTTPSource struct {
	baseURL string
	client  *http.Client
	timeout time.Duration
}

// HTTPOption applies a configuration option to the HTTPSource.
type HTTPOption func(*HTTPSource)

// WithTimeout sets the per-request timeout.
func WithTimeout(timeout time.Duration) HTTPOption {
	return func(s *HTTPSource) {
		if timeout > 0 {
			s.timeout = timeout
		}
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) HTTPOption {
	return func(s *HTTPSource) {
		if client != nil {
			s.client = client
		}
	}
}

// NewHTTPSource creates an HTTP-backed source rooted at baseURL.
func NewHTTPSource(baseURL string, opts ...HTTPOption) *HTTPSource {
	s := &HTTPSource{
		baseURL: strings.TrimRight(baseURL, "/"),
		timeout: defaultRequestTimeout,
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.client == nil {
		s.client = &http.Client{Timeout: s.timeout}
	}

	return s
}

// Manifest fetches and parses config.json.
func (s *HTTPSource) Manifest(ctx context.Context) (Manifest, error) {
	data, err := s.get(ctx, manifestFile)
	if err != nil {
		return Manifest{}, err
	}
	return parseManifest(data)
}

// Month fetches and parses month<ID>.json.
func (s *HTTPSource) Month(ctx context.Context, id string) (model.Month, error) {
	data, err := s.get(ctx, monthFile(id))
	if err != nil {
		metrics.RecordMonthLoadFailure(metrics.ReasonLoad)
		return model.Month{}, err
	}

	month, err := parseMonth(id, data)
	if err != nil {
		metrics.RecordMonthLoadFailure(metrics.ReasonParse)
		return model.Month{}, err
	}

	metrics.RecordMonthLoad()
	return month, nil
}

// get performs a single GET and returns the response body.
func (s *HTTPSource) get(ctx context.Context, name string) ([]byte, error) {
	url := s.baseURL + "/" + name

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, ErrLoad, err)
	}

	resp, err := s.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, ErrLoad, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return nil, fmt.Errorf("%s: %w: unexpected status %d", name, ErrLoad, resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("%s: %w: %w", name, ErrLoad, err)
	}
	return data, nil
}

// IsNotFound reports whether err represents a missing or unreachable resource.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrLoad)
}
