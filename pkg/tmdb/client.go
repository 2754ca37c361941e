package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/DrSkyle/coactor/pkg/version"
	"github.com/cenkalti/backoff/v5"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// Defaults.
const (
	DefaultBaseURL  = "https://api.themoviedb.org/3"
	DefaultLanguage = "en-US"
	DefaultTimeout  = 10 * time.Second
	DefaultMaxTries = 3
)

// Client talks to the TMDb v3 REST API. Calls are sequential and blocking;
// each attempt gets its own timeout and transient failures are retried.
type Client struct {
	apiKey     string
	baseURL    string
	language   string
	timeout    time.Duration
	maxTries   uint
	initial    time.Duration
	httpClient *http.Client
	cache      Cache
	logger     *slog.Logger
	tracer     trace.Tracer
}

// Option configures a Client.
type Option func(*Client)

// WithBaseURL points the client at another API root (tests, proxies).
func WithBaseURL(u string) Option {
	return func(c *Client) {
		c.baseURL = u
	}
}

// WithLanguage overrides the locale parameter.
func WithLanguage(lang string) Option {
	return func(c *Client) {
		if lang != "" {
			c.language = lang
		}
	}
}

// WithTimeout sets the per-attempt timeout.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) {
		if d > 0 {
			c.timeout = d
		}
	}
}

// WithRetry sets the attempt budget and the first backoff interval.
func WithRetry(maxTries uint, initial time.Duration) Option {
	return func(c *Client) {
		if maxTries > 0 {
			c.maxTries = maxTries
		}
		if initial > 0 {
			c.initial = initial
		}
	}
}

// WithHTTPClient replaces the transport.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		c.httpClient = hc
	}
}

// WithCache serves repeated lookups from a response cache.
func WithCache(cache Cache) Option {
	return func(c *Client) {
		c.cache = cache
	}
}

// WithLogger sets the logger.
func WithLogger(l *slog.Logger) Option {
	return func(c *Client) {
		c.logger = l
	}
}

// NewClient builds a client for the given API key.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		apiKey:     apiKey,
		baseURL:    DefaultBaseURL,
		language:   DefaultLanguage,
		timeout:    DefaultTimeout,
		maxTries:   DefaultMaxTries,
		initial:    500 * time.Millisecond,
		httpClient: &http.Client{},
		logger:     slog.Default(),
		tracer:     otel.Tracer("coactor/tmdb"),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type castResponse struct {
	Cast []CastMember `json:"cast"`
}

type creditsResponse struct {
	Cast []MovieCredit `json:"cast"`
}

// FetchCastForMovie returns the filtered cast of a movie.
func (c *Client) FetchCastForMovie(ctx context.Context, movieID string, q CastQuery) ([]CastMember, error) {
	var resp castResponse
	if err := c.getJSON(ctx, "movie/"+url.PathEscape(movieID)+"/credits", &resp); err != nil {
		return nil, fmt.Errorf("cast for movie %s: %w", movieID, err)
	}
	return FilterCast(resp.Cast, q), nil
}

// FetchCreditsForPerson returns the filtered acting credits of a person.
func (c *Client) FetchCreditsForPerson(ctx context.Context, personID string, q CreditQuery) ([]MovieCredit, error) {
	var resp creditsResponse
	if err := c.getJSON(ctx, "person/"+url.PathEscape(personID)+"/movie_credits", &resp); err != nil {
		return nil, fmt.Errorf("credits for person %s: %w", personID, err)
	}
	return FilterCredits(resp.Cast, q), nil
}

func (c *Client) getJSON(ctx context.Context, path string, out interface{}) error {
	ctx, span := c.tracer.Start(ctx, "tmdb.get", trace.WithAttributes(attribute.String("tmdb.path", path)))
	defer span.End()

	body, cached, err := c.get(ctx, path)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	if err := json.Unmarshal(body, out); err != nil {
		err = fmt.Errorf("%w: decode %s: %v", ErrFetchFailed, path, err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	// Only bodies that decoded are cached.
	if c.cache != nil && !cached {
		if err := c.cache.Put(path, body); err != nil {
			c.logger.Warn("Cache write failed", "path", path, "error", err)
		}
	}
	span.SetAttributes(attribute.Bool("tmdb.cached", cached))
	return nil
}

// get returns the body for path and whether it came from the cache.
func (c *Client) get(ctx context.Context, path string) ([]byte, bool, error) {
	if c.cache != nil {
		if body, ok, err := c.cache.Get(path); err != nil {
			c.logger.Warn("Cache read failed", "path", path, "error", err)
		} else if ok {
			c.logger.Debug("Cache hit", "path", path)
			return body, true, nil
		}
	}

	endpoint, err := c.endpoint(path)
	if err != nil {
		return nil, false, fmt.Errorf("%w: %v", ErrFetchFailed, err)
	}

	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = c.initial

	attempt := 0
	body, err := backoff.Retry(ctx, func() ([]byte, error) {
		attempt++
		return c.do(ctx, endpoint, path, attempt)
	}, backoff.WithBackOff(eb), backoff.WithMaxTries(c.maxTries))
	if err != nil {
		if ctxErr := ctx.Err(); ctxErr != nil {
			return nil, false, ctxErr
		}
		if !errors.Is(err, ErrNotFound) && !errors.Is(err, ErrFetchFailed) {
			err = fmt.Errorf("%w: %v", ErrFetchFailed, err)
		}
		return nil, false, err
	}
	return body, false, nil
}

// do performs one attempt. Errors wrapped in backoff.Permanent stop retrying.
func (c *Client) do(ctx context.Context, endpoint, path string, attempt int) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, backoff.Permanent(err)
	}

	reqCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	req, err := http.NewRequestWithContext(reqCtx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, backoff.Permanent(fmt.Errorf("%w: %v", ErrFetchFailed, err))
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", version.UserAgent())

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return nil, backoff.Permanent(ctx.Err())
		}
		// Timeouts and transport errors are transient.
		c.logger.Debug("TMDb request failed", "path", path, "attempt", attempt, "error", err)
		return nil, err
	}
	defer resp.Body.Close()

	c.logger.Debug("TMDb request", "path", path, "status", resp.StatusCode,
		"attempt", attempt, "duration", time.Since(start))

	switch {
	case resp.StatusCode == http.StatusOK:
		body, err := io.ReadAll(resp.Body)
		if err != nil {
			return nil, err
		}
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, backoff.Permanent(fmt.Errorf("%w: %s", ErrNotFound, path))
	case resp.StatusCode >= 500:
		return nil, fmt.Errorf("%w: %s: status %d", ErrFetchFailed, path, resp.StatusCode)
	default:
		return nil, backoff.Permanent(fmt.Errorf("%w: %s: status %d", ErrFetchFailed, path, resp.StatusCode))
	}
}

func (c *Client) endpoint(path string) (string, error) {
	u, err := url.Parse(c.baseURL + "/" + path)
	if err != nil {
		return "", err
	}
	q := u.Query()
	q.Set("api_key", c.apiKey)
	q.Set("language", c.language)
	u.RawQuery = q.Encode()
	return u.String(), nil
}
