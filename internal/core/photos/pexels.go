package photos

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog"

	"github.com/colonyops/gallery/internal/core/logging"
)

// Defaults for the single search request.
const (
	DefaultEndpoint    = "https://api.pexels.com/v1/search"
	DefaultQuery       = "nature"
	DefaultPerPage     = 10
	DefaultOrientation = "portrait"

	maxResponseBytes = 8 << 20
)

var (
	// ErrMissingAPIKey is returned before any network I/O when no
	// authorization credential is configured.
	ErrMissingAPIKey = errors.New("pexels: api key is empty")
	// ErrMissingPhotos is returned when the response body has no photos field.
	ErrMissingPhotos = errors.New("pexels: response has no photos field")
)

// StatusError reports a non-2xx response.
type StatusError struct {
	Code   int
	Status string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("pexels: unexpected status %d", e.Code)
}

// Options configures a Client.
type Options struct {
	Endpoint    string
	Query       string
	PerPage     int
	Orientation string
	APIKey      string

	// HTTPClient defaults to a client with a 30s timeout.
	HTTPClient *http.Client
	Logger     *zerolog.Logger
}

// Client fetches one page of search results from the Pexels API.
type Client struct {
	opts Options
	http *http.Client
	log  zerolog.Logger
}

// NewClient creates a Pexels client. Zero-valued options fall back to the
// package defaults.
func NewClient(opts Options) *Client {
	if opts.Endpoint == "" {
		opts.Endpoint = DefaultEndpoint
	}
	if opts.Query == "" {
		opts.Query = DefaultQuery
	}
	if opts.PerPage <= 0 {
		opts.PerPage = DefaultPerPage
	}
	if opts.Orientation == "" {
		opts.Orientation = DefaultOrientation
	}

	httpClient := opts.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	logger := logging.Component("pexels")
	if opts.Logger != nil {
		logger = *opts.Logger
	}

	return &Client{opts: opts, http: httpClient, log: logger}
}

// RequestURL returns the fully-qualified search URL.
func (c *Client) RequestURL() (string, error) {
	u, err := url.Parse(c.opts.Endpoint)
	if err != nil {
		return "", fmt.Errorf("parse endpoint: %w", err)
	}

	q := u.Query()
	q.Set("query", c.opts.Query)
	q.Set("per_page", strconv.Itoa(c.opts.PerPage))
	if c.opts.Orientation != "" {
		q.Set("orientation", c.opts.Orientation)
	}
	u.RawQuery = q.Encode()

	return u.String(), nil
}

// Fetch performs the search request and decodes the photo records.
func (c *Client) Fetch(ctx context.Context) ([]Record, error) {
	if c.opts.APIKey == "" {
		return nil, ErrMissingAPIKey
	}

	reqURL, err := c.RequestURL()
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL, nil)
	if err != nil {
		return nil, fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Authorization", c.opts.APIKey)
	req.Header.Set("Accept", "application/json")
	req.Header.Set("User-Agent", "gallery")

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request photos: %w", err)
	}
	defer func() {
		if err := resp.Body.Close(); err != nil {
			c.log.Debug().Err(err).Msg("close search response body")
		}
	}()

	c.log.Debug().
		Int("status", resp.StatusCode).
		Dur("took", time.Since(start)).
		Msg("search response")

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return nil, &StatusError{Code: resp.StatusCode, Status: resp.Status}
	}

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return nil, fmt.Errorf("read photos body: %w", err)
	}

	return decodeSearch(body)
}

type searchResponse struct {
	Photos *[]photoJSON `json:"photos"`
}

type photoJSON struct {
	ID              json.RawMessage `json:"id"`
	Width           int             `json:"width"`
	Height          int             `json:"height"`
	URL             string          `json:"url"`
	Alt             string          `json:"alt"`
	Photographer    string          `json:"photographer"`
	PhotographerURL string          `json:"photographer_url"`
	Src             struct {
		Portrait string `json:"portrait"`
	} `json:"src"`
}

func decodeSearch(body []byte) ([]Record, error) {
	var resp searchResponse
	if err := json.Unmarshal(body, &resp); err != nil {
		return nil, fmt.Errorf("decode photos: %w", err)
	}
	if resp.Photos == nil {
		return nil, ErrMissingPhotos
	}

	records := make([]Record, 0, len(*resp.Photos))
	for i, p := range *resp.Photos {
		id, err := coerceID(p.ID)
		if err != nil {
			return nil, fmt.Errorf("decode photos[%d].id: %w", i, err)
		}
		if p.Src.Portrait == "" {
			return nil, fmt.Errorf("decode photos[%d]: missing src.portrait", i)
		}

		records = append(records, Record{
			ID:              id,
			PortraitURI:     p.Src.Portrait,
			Photographer:    p.Photographer,
			PhotographerURL: p.PhotographerURL,
			URL:             p.URL,
			Alt:             p.Alt,
			Width:           p.Width,
			Height:          p.Height,
		})
	}

	return records, nil
}

// coerceID accepts a JSON string or number and returns its string form.
func coerceID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", errors.New("missing id")
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		if s == "" {
			return "", errors.New("empty id")
		}
		return s, nil
	}

	var n json.Number
	if err := json.Unmarshal(raw, &n); err != nil {
		return "", fmt.Errorf("unsupported id %s", raw)
	}
	return n.String(), nil
}
