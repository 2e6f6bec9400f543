// Package tmdb is a small read-only client for The Movie Database v3 API.
package tmdb

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/sony/gobreaker"
	"go.uber.org/zap"
)

const (
	defaultBaseURL      = "https://api.themoviedb.org/3"
	defaultImageBaseURL = "https://image.tmdb.org/t/p"
	maxBodyBytes        = 2 << 20
)

var (
	// ErrUnavailable covers transport failures, 5xx answers and an open breaker.
	ErrUnavailable = errors.New("tmdb unavailable")
	// ErrNotFound is returned for 404 answers.
	ErrNotFound = errors.New("tmdb resource not found")
)

type Config struct {
	APIKey       string
	BaseURL      string
	ImageBaseURL string
	Timeout      time.Duration
}

type Client struct {
	apiKey       string
	baseURL      string
	imageBaseURL string
	httpClient   *http.Client
	cb           *gobreaker.CircuitBreaker
	log          *zap.Logger
}

// Option configures the Client.
type Option func(*Client)

func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) { c.httpClient = hc }
}

func WithCircuitBreaker(cb *gobreaker.CircuitBreaker) Option {
	return func(c *Client) { c.cb = cb }
}

func WithLogger(log *zap.Logger) Option {
	return func(c *Client) { c.log = log.With(zap.String("client", "tmdb")) }
}

func New(cfg Config, opts ...Option) *Client {
	if cfg.BaseURL == "" {
		cfg.BaseURL = defaultBaseURL
	}
	if cfg.ImageBaseURL == "" {
		cfg.ImageBaseURL = defaultImageBaseURL
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 5 * time.Second
	}

	c := &Client{
		apiKey:       cfg.APIKey,
		baseURL:      strings.TrimRight(cfg.BaseURL, "/"),
		imageBaseURL: strings.TrimRight(cfg.ImageBaseURL, "/"),
		httpClient:   &http.Client{Timeout: cfg.Timeout},
		log:          zap.NewNop(),
	}
	for _, o := range opts {
		o(c)
	}
	return c
}

// NewCircuitBreaker trips after consecutive upstream failures and stays open
// for openFor before letting a probe request through.
func NewCircuitBreaker(failures uint32, openFor time.Duration, log *zap.Logger) *gobreaker.CircuitBreaker {
	if failures == 0 {
		failures = 5
	}
	return gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "tmdb",
		MaxRequests: 1,
		Timeout:     openFor,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		// 4xx answers say nothing about upstream health
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, ErrUnavailable)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			log.Info("circuit-breaker state change",
				zap.String("name", name),
				zap.String("from", from.String()),
				zap.String("to", to.String()),
			)
		},
	})
}

// Discover lists movies by popularity with the given optional filters
func (c *Client) Discover(ctx context.Context, p DiscoverParams) ([]Movie, error) {
	q := url.Values{}
	q.Set("sort_by", "popularity.desc")
	if p.GenreID > 0 {
		q.Set("with_genres", strconv.Itoa(p.GenreID))
	}
	if p.Language != "" {
		q.Set("with_original_language", p.Language)
	}
	if p.ReleaseDateGTE != "" {
		q.Set("primary_release_date.gte", p.ReleaseDateGTE)
	}
	page := p.Page
	if page < 1 {
		page = 1
	}
	q.Set("page", strconv.Itoa(page))

	var out listResponse
	if err := c.getJSON(ctx, "/discover/movie", q, &out); err != nil {
		return nil, fmt.Errorf("discover movies: %w", err)
	}
	return c.withPosters(out.Results), nil
}

// SearchMovie returns title matches ranked by relevance
func (c *Client) SearchMovie(ctx context.Context, title string) ([]Movie, error) {
	q := url.Values{}
	q.Set("query", title)
	q.Set("page", "1")

	var out listResponse
	if err := c.getJSON(ctx, "/search/movie", q, &out); err != nil {
		return nil, fmt.Errorf("search movie %q: %w", title, err)
	}
	return c.withPosters(out.Results), nil
}

// Credits returns the full billed cast of a movie
func (c *Client) Credits(ctx context.Context, movieID int) ([]CastMember, error) {
	var out creditsResponse
	if err := c.getJSON(ctx, fmt.Sprintf("/movie/%d/credits", movieID), url.Values{}, &out); err != nil {
		return nil, fmt.Errorf("movie %d credits: %w", movieID, err)
	}

	for i := range out.Cast {
		if out.Cast[i].ProfilePath != "" {
			out.Cast[i].ProfileURL = c.imageBaseURL + "/w185" + out.Cast[i].ProfilePath
		}
	}
	return out.Cast, nil
}

// Videos returns the /videos document untouched so it can be proxied as-is
func (c *Client) Videos(ctx context.Context, movieID int) (json.RawMessage, error) {
	body, err := c.get(ctx, fmt.Sprintf("/movie/%d/videos", movieID), url.Values{})
	if err != nil {
		return nil, fmt.Errorf("movie %d videos: %w", movieID, err)
	}
	if !json.Valid(body) {
		return nil, fmt.Errorf("movie %d videos: invalid json body", movieID)
	}
	return json.RawMessage(body), nil
}

func (c *Client) withPosters(movies []Movie) []Movie {
	for i := range movies {
		if movies[i].PosterPath != "" {
			movies[i].PosterURL = c.imageBaseURL + "/w500" + movies[i].PosterPath
		}
	}
	return movies
}

func (c *Client) getJSON(ctx context.Context, path string, q url.Values, dest any) error {
	body, err := c.get(ctx, path, q)
	if err != nil {
		return err
	}
	if err := json.Unmarshal(body, dest); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values) ([]byte, error) {
	if c.cb == nil {
		return c.do(ctx, path, q)
	}

	result, err := c.cb.Execute(func() (interface{}, error) {
		return c.do(ctx, path, q)
	})
	if errors.Is(err, gobreaker.ErrOpenState) || errors.Is(err, gobreaker.ErrTooManyRequests) {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	if err != nil {
		return nil, err
	}
	return result.([]byte), nil
}

func (c *Client) do(ctx context.Context, path string, q url.Values) ([]byte, error) {
	q.Set("api_key", c.apiKey)
	rawURL := c.baseURL + path + "?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		c.log.Warn("TMDb request failed", zap.String("path", path), zap.Error(err))
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return nil, fmt.Errorf("%w: read body: %v", ErrUnavailable, err)
	}

	c.log.Debug("TMDb request",
		zap.String("path", path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("duration", time.Since(start)),
	)

	switch {
	case resp.StatusCode == http.StatusOK:
		return body, nil
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNotFound
	case resp.StatusCode >= http.StatusInternalServerError || resp.StatusCode == http.StatusTooManyRequests:
		return nil, fmt.Errorf("%w: status %d", ErrUnavailable, resp.StatusCode)
	default:
		return nil, fmt.Errorf("tmdb %s: status %d", path, resp.StatusCode)
	}
}
