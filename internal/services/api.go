// Raw HTTP access to the stats.fm API
package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/avast/retry-go"
	"github.com/desertthunder/statsweb/internal/shared"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public stats.fm API.
const DefaultBaseURL = "https://beta-api.stats.fm/api/v1"

// APIService provides methods for making raw HTTP requests to the stats.fm API.
type APIService struct {
	baseURL    string
	httpClient *http.Client
	limiter    *rate.Limiter
	attempts   uint
	retryDelay time.Duration
	userAgent  string
}

// APIOption configures an [APIService].
type APIOption func(*APIService)

// WithRateLimit limits outbound requests to rps per second. Zero or less disables limiting.
func WithRateLimit(rps float64) APIOption {
	return func(a *APIService) {
		if rps <= 0 {
			a.limiter = nil
			return
		}
		a.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
}

// WithAttempts sets how many times an idempotent request is tried. Values below one mean one.
func WithAttempts(n int) APIOption {
	return func(a *APIService) {
		if n < 1 {
			n = 1
		}
		a.attempts = uint(n)
	}
}

// WithRetryDelay sets the base delay between attempts.
func WithRetryDelay(d time.Duration) APIOption {
	return func(a *APIService) { a.retryDelay = d }
}

// WithUserAgent sets the User-Agent header of outbound requests.
func WithUserAgent(ua string) APIOption {
	return func(a *APIService) { a.userAgent = ua }
}

// NewAPIService creates a new API service instance for the stats.fm API.
func NewAPIService(baseURL string, client *http.Client, opts ...APIOption) *APIService {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	if client == nil {
		client = http.DefaultClient
	}

	a := &APIService{
		baseURL:    strings.TrimRight(baseURL, "/"),
		httpClient: client,
		attempts:   1,
		retryDelay: 250 * time.Millisecond,
		userAgent:  "statsweb",
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// APIResponse represents a raw API response with status and body.
type APIResponse struct {
	StatusCode int
	Headers    http.Header
	Body       []byte
	IsJSON     bool
	JSONData   any
}

// Err maps a non-2xx response to a shared error. It returns nil for 2xx.
func (r *APIResponse) Err(path string) error {
	switch {
	case r.StatusCode >= 200 && r.StatusCode < 300:
		return nil
	case r.StatusCode == http.StatusNotFound:
		return fmt.Errorf("%w: %s", shared.ErrNotFound, path)
	case r.StatusCode == http.StatusUnauthorized, r.StatusCode == http.StatusForbidden:
		return fmt.Errorf("%w: status %d for %s", shared.ErrNotAuthenticated, r.StatusCode, path)
	case r.StatusCode == http.StatusTooManyRequests:
		return fmt.Errorf("%w: %s", shared.ErrRateLimited, path)
	default:
		return fmt.Errorf("%w: status %d, body: %s", shared.ErrAPIRequest, r.StatusCode, truncate(r.Body, 256))
	}
}

// retryableStatus carries a response whose status is worth another attempt.
type retryableStatus struct {
	code int
}

func (e *retryableStatus) Error() string {
	return fmt.Sprintf("transient status %d", e.code)
}

func isRetryableStatus(code int) bool {
	return code == http.StatusTooManyRequests || code >= 500
}

// Get performs a GET request to the specified path and returns the raw response.
//
// Non-2xx responses are not errors here; use [APIResponse.Err] to classify them.
func (a *APIService) Get(ctx context.Context, path string, query url.Values) (*APIResponse, error) {
	fullURL := a.baseURL + path
	if len(query) > 0 {
		fullURL += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, fullURL, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", a.userAgent)
	authorize(req)

	var apiResp *APIResponse
	err = retry.Do(
		func() error {
			resp, err := a.do(ctx, req)
			if err != nil {
				return err
			}
			apiResp = resp
			if isRetryableStatus(resp.StatusCode) {
				return &retryableStatus{code: resp.StatusCode}
			}
			return nil
		},
		retry.Context(ctx),
		retry.Attempts(a.attempts),
		retry.Delay(a.retryDelay),
		retry.LastErrorOnly(true),
		retry.RetryIf(func(err error) bool {
			return !errors.Is(err, context.Canceled) && !errors.Is(err, context.DeadlineExceeded)
		}),
	)

	var transient *retryableStatus
	if errors.As(err, &transient) {
		return apiResp, nil
	}
	if err != nil {
		return nil, err
	}

	return apiResp, nil
}

// GetJSON performs a GET request and decodes a 2xx body into v.
func (a *APIService) GetJSON(ctx context.Context, path string, query url.Values, v any) error {
	resp, err := a.Get(ctx, path, query)
	if err != nil {
		return fmt.Errorf("%w: %v", shared.ErrAPIRequest, err)
	}
	if err := resp.Err(path); err != nil {
		return err
	}
	if err := json.Unmarshal(resp.Body, v); err != nil {
		return fmt.Errorf("%w: %s: %v", shared.ErrDecode, path, err)
	}
	return nil
}

func (a *APIService) do(ctx context.Context, req *http.Request) (*APIResponse, error) {
	if a.limiter != nil {
		if err := a.limiter.Wait(ctx); err != nil {
			return nil, fmt.Errorf("rate limiter: %w", err)
		}
	}

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	apiResp := &APIResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Header,
		Body:       body,
	}

	var jsonData any
	if err := json.Unmarshal(body, &jsonData); err == nil {
		apiResp.IsJSON = true
		apiResp.JSONData = jsonData
	}

	return apiResp, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
