package geocoding

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// API Docs: https://openweathermap.org/api/geocoding-api
// Sample request: https://api.openweathermap.org/geo/1.0/direct?q=London&limit=1&appid={key}
const (
	DefaultBaseURL = "https://api.openweathermap.org"

	directPath       = "/geo/1.0/direct"
	airPollutionPath = "/data/2.5/air_pollution"
	defaultLimit     = 1
)

// ErrNoData is returned when the air pollution endpoint answers with an empty list.
var ErrNoData = errors.New("no data for coordinates")

// StatusError is returned for any non-2xx response.
type StatusError struct {
	Code int
	Body string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("fetch returned status %d: %s", e.Code, e.Body)
}

type Client struct {
	httpClient *http.Client
	baseURL    string
	apiKey     string
	limit      int
	timeout    time.Duration
	logger     *zap.Logger
}

type Option func(*Client)

// WithBaseURL points the client at another host, e.g. an httptest server.
func WithBaseURL(u string) Option {
	return func(c *Client) { c.baseURL = u }
}

// WithHTTPClient replaces the default transport. A nil client is ignored.
func WithHTTPClient(h *http.Client) Option {
	return func(c *Client) {
		if h != nil {
			c.httpClient = h
		}
	}
}

// WithTimeout bounds each call. Zero keeps the HTTP client's own timeout.
// The timeout is applied to a copy, so a shared client is never modified.
func WithTimeout(d time.Duration) Option {
	return func(c *Client) { c.timeout = d }
}

func WithLimit(n int) Option {
	return func(c *Client) {
		if n > 0 {
			c.limit = n
		}
	}
}

func WithLogger(l *zap.Logger) Option {
	return func(c *Client) {
		if l != nil {
			c.logger = l
		}
	}
}

// NewClient builds a client that authorises every call with apiKey.
func NewClient(apiKey string, opts ...Option) *Client {
	c := &Client{
		httpClient: &http.Client{},
		baseURL:    DefaultBaseURL,
		apiKey:     apiKey,
		limit:      defaultLimit,
		logger:     zap.NewNop(),
	}
	for _, opt := range opts {
		opt(c)
	}
	if c.timeout > 0 {
		hc := *c.httpClient
		hc.Timeout = c.timeout
		c.httpClient = &hc
	}
	return c
}

// Geocode resolves a place name to candidate locations, best match first.
// An empty slice with a nil error means the service found nothing.
func (c *Client) Geocode(ctx context.Context, query string) ([]Location, error) {
	q := url.Values{}
	q.Set("q", query)
	q.Set("limit", strconv.Itoa(c.limit))

	var locs []Location
	if err := c.get(ctx, directPath, q, &locs); err != nil {
		return nil, err
	}
	if locs == nil {
		locs = []Location{}
	}
	return locs, nil
}

// AirPollution returns the current air quality reading at lat, lon.
func (c *Client) AirPollution(ctx context.Context, lat, lon float64) (*AirQuality, error) {
	q := url.Values{}
	q.Set("lat", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("lon", strconv.FormatFloat(lon, 'f', -1, 64))

	var resp airPollutionResponse
	if err := c.get(ctx, airPollutionPath, q, &resp); err != nil {
		return nil, err
	}
	if len(resp.List) == 0 {
		return nil, ErrNoData
	}
	entry := resp.List[0]
	return &AirQuality{
		Lat:        resp.Coord.Lat,
		Lon:        resp.Coord.Lon,
		AQI:        entry.Main.AQI,
		Components: entry.Components,
		Time:       time.Unix(entry.Dt, 0).UTC(),
	}, nil
}

func (c *Client) get(ctx context.Context, path string, q url.Values, out any) error {
	u, err := url.Parse(c.baseURL + path)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	q.Set("appid", c.apiKey)
	u.RawQuery = q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u.String(), nil)
	if err != nil {
		return fmt.Errorf("build request: %w", err)
	}

	// appid stays out of the log fields
	log := c.logger.With(
		zap.String("request_id", uuid.NewString()),
		zap.String("path", path),
	)
	start := time.Now()

	resp, err := c.httpClient.Do(req)
	if err != nil {
		var ue *url.Error
		if errors.As(err, &ue) {
			ue.URL = redactKey(ue.URL)
		}
		log.Warn("request failed", zap.Error(err))
		return fmt.Errorf("failed to fetch: %w", err)
	}
	defer func(Body io.ReadCloser) {
		_ = Body.Close()
	}(resp.Body)

	log.Debug("response received",
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &StatusError{Code: resp.StatusCode, Body: string(body)}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode response: %w", err)
	}
	return nil
}

// redactKey blanks appid so transport errors can be logged and shown.
func redactKey(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	q := u.Query()
	if q.Has("appid") {
		q.Set("appid", "REDACTED")
		u.RawQuery = q.Encode()
	}
	return u.String()
}
