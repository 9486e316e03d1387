package client

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"sportstracker/internal/cache"
	"sportstracker/internal/metrics"

	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"
)

// Options tunes the shared HTTP behaviour of the feed clients
type Options struct {
	Timeout     time.Duration
	MaxRetries  int
	RetryDelay  time.Duration
	RateLimit   float64 // requests per second
	Burst       int
	Concurrency int
	Cache       cache.Cache
}

func (o Options) withDefaults() Options {
	if o.Timeout <= 0 {
		o.Timeout = 15 * time.Second
	}
	if o.MaxRetries < 0 {
		o.MaxRetries = 0
	}
	if o.RetryDelay <= 0 {
		o.RetryDelay = time.Second
	}
	if o.RateLimit <= 0 {
		o.RateLimit = 5
	}
	if o.Burst <= 0 {
		o.Burst = 10
	}
	if o.Concurrency <= 0 {
		o.Concurrency = 10
	}
	if o.Cache == nil {
		o.Cache = cache.NoopCache{}
	}
	return o
}

// transport is the GET machinery shared by every feed: caching, rate
// limiting and retries with exponential backoff
type transport struct {
	feed       string
	baseURL    string
	httpClient *http.Client
	semaphore  chan struct{}
	limiter    *rate.Limiter
	maxRetries int
	retryDelay time.Duration
	cache      cache.Cache
}

func newTransport(feed, baseURL string, opts Options) *transport {
	opts = opts.withDefaults()

	semaphore := make(chan struct{}, opts.Concurrency)
	for i := 0; i < opts.Concurrency; i++ {
		semaphore <- struct{}{}
	}

	return &transport{
		feed:       feed,
		baseURL:    baseURL,
		semaphore:  semaphore,
		limiter:    rate.NewLimiter(rate.Limit(opts.RateLimit), opts.Burst),
		maxRetries: opts.MaxRetries,
		retryDelay: opts.RetryDelay,
		cache:      opts.Cache,
		httpClient: &http.Client{
			Timeout: opts.Timeout,
			Transport: &http.Transport{
				MaxIdleConns:        100,
				MaxIdleConnsPerHost: 10,
				IdleConnTimeout:     90 * time.Second,
			},
		},
	}
}

// get performs a GET against baseURL/path. endpoint labels logs and metrics
// and never carries query values, so credentials stay out of both.
// A positive ttl serves and stores the response through the cache.
func (t *transport) get(ctx context.Context, endpoint, path string, params url.Values, ttl time.Duration) ([]byte, error) {
	reqURL := fmt.Sprintf("%s/%s", t.baseURL, path)
	if len(params) > 0 {
		reqURL += "?" + params.Encode()
	}
	key := cache.KeyFor(reqURL)

	if ttl > 0 {
		body, ok, err := t.cache.Get(ctx, key)
		if err != nil {
			log.Warn().Err(err).Str("feed", t.feed).Str("endpoint", endpoint).Msg("Cache read failed, fetching from feed")
			metrics.RecordError("cache", "read")
		}
		if ok {
			return body, nil
		}
	}

	start := time.Now()
	body, status, err := t.fetch(ctx, endpoint, reqURL)
	metrics.RecordFeedCall(t.feed, endpoint, status, time.Since(start).Seconds())
	if err != nil {
		return nil, err
	}

	if ttl > 0 {
		if err := t.cache.Set(ctx, key, body, ttl); err != nil {
			log.Warn().Err(err).Str("feed", t.feed).Str("endpoint", endpoint).Msg("Cache write failed")
			metrics.RecordError("cache", "write")
		}
	}

	return body, nil
}

// fetch runs the retry loop. The returned status is a metrics label.
func (t *transport) fetch(ctx context.Context, endpoint, reqURL string) ([]byte, string, error) {
	var lastErr error
	status := "error"

	for attempt := 0; attempt <= t.maxRetries; attempt++ {
		if attempt > 0 {
			// Exponential backoff: 1s, 2s, 4s
			backoff := t.retryDelay * time.Duration(1<<uint(attempt-1))
			log.Info().
				Str("feed", t.feed).
				Str("endpoint", endpoint).
				Int("attempt", attempt).
				Dur("backoff", backoff).
				Msg("Retrying feed request after backoff")

			select {
			case <-ctx.Done():
				return nil, "canceled", ctx.Err()
			case <-time.After(backoff):
			}
		}

		if err := t.limiter.Wait(ctx); err != nil {
			return nil, "canceled", err
		}

		body, code, err := t.do(ctx, endpoint, reqURL, attempt)
		if err != nil {
			lastErr = err
			// Retry on network errors
			if attempt < t.maxRetries && ctx.Err() == nil {
				continue
			}
			return nil, status, lastErr
		}
		status = strconv.Itoa(code)

		switch code {
		case http.StatusOK:
			log.Debug().
				Str("feed", t.feed).
				Str("endpoint", endpoint).
				Int("size", len(body)).
				Msg("Feed request successful")
			return body, status, nil

		case http.StatusTooManyRequests, http.StatusServiceUnavailable, http.StatusGatewayTimeout:
			lastErr = fmt.Errorf("%s returned retryable status %d: %s", t.feed, code, truncate(body))
			if attempt < t.maxRetries {
				log.Warn().
					Str("feed", t.feed).
					Str("endpoint", endpoint).
					Int("status", code).
					Int("attempt", attempt+1).
					Msg("Received retryable error, will retry")
				continue
			}
			return nil, status, lastErr

		case http.StatusUnauthorized, http.StatusForbidden:
			// Don't retry auth errors
			return nil, status, fmt.Errorf("%s authentication failed (status %d): %s", t.feed, code, truncate(body))

		default:
			return nil, status, fmt.Errorf("%s returned status %d: %s", t.feed, code, truncate(body))
		}
	}

	return nil, status, lastErr
}

// do performs a single attempt while holding a concurrency slot
func (t *transport) do(ctx context.Context, endpoint, reqURL string, attempt int) ([]byte, int, error) {
	select {
	case <-ctx.Done():
		return nil, 0, ctx.Err()
	case <-t.semaphore:
	}
	defer func() { t.semaphore <- struct{}{} }()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "sportstracker/1.0")

	log.Debug().
		Str("feed", t.feed).
		Str("endpoint", endpoint).
		Int("attempt", attempt+1).
		Msg("Making feed request")

	resp, err := t.httpClient.Do(req)
	if err != nil {
		return nil, 0, fmt.Errorf("%s request failed: %w", t.feed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to read response body: %w", err)
	}

	return body, resp.StatusCode, nil
}

func truncate(body []byte) string {
	const limit = 200
	if len(body) > limit {
		return string(body[:limit]) + "..."
	}
	return string(body)
}
