// Package geonames queries the GeoNames place-search web service.
package geonames

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"golang.org/x/time/rate"
)

// DefaultBaseURL is the public GeoNames endpoint.
const DefaultBaseURL = "http://api.geonames.org"

// Place is one candidate returned by searchJSON.
type Place struct {
	Name        string `json:"name"`
	AdminCode1  string `json:"adminCode1"`
	CountryCode string `json:"countryCode"`
	FeatureCode string `json:"fcode"`
	Population  int64  `json:"population"`
	Lat         string `json:"lat"`
	Lng         string `json:"lng"`
}

// SearchParams narrows a place search.
type SearchParams struct {
	Query        string
	Country      string
	FeatureClass string
	MaxRows      int
}

// Client searches GeoNames for populated places.
type Client interface {
	Search(ctx context.Context, params SearchParams) ([]Place, error)
}

type searchResponse struct {
	Geonames []Place `json:"geonames"`
	Status   *struct {
		Message string `json:"message"`
		Value   int    `json:"value"`
	} `json:"status"`
}

// Option configures the client.
type Option func(*client)

// WithBaseURL overrides the GeoNames endpoint.
func WithBaseURL(u string) Option {
	return func(c *client) {
		c.baseURL = strings.TrimRight(u, "/")
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *client) {
		c.httpClient = hc
	}
}

// WithRateLimit sets the requests-per-second limit.
func WithRateLimit(rps float64) Option {
	return func(c *client) {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		c.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

type client struct {
	httpClient *http.Client
	baseURL    string
	username   string
	limiter    *rate.Limiter
}

// NewClient creates a GeoNames client for the given account username.
func NewClient(username string, opts ...Option) Client {
	c := &client{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		baseURL:    DefaultBaseURL,
		username:   username,
		limiter:    rate.NewLimiter(5, 5),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Search calls /searchJSON. GeoNames reports account and quota problems
// with HTTP 200 and a status object, which is surfaced as an error.
func (c *client) Search(ctx context.Context, params SearchParams) ([]Place, error) {
	if c.username == "" {
		return nil, eris.New("geonames: username not configured")
	}
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, eris.Wrap(err, "geonames: rate limit")
	}

	q := url.Values{
		"q":        {params.Query},
		"username": {c.username},
	}
	if params.Country != "" {
		q.Set("country", params.Country)
	}
	if params.FeatureClass != "" {
		q.Set("featureClass", params.FeatureClass)
	}
	if params.MaxRows > 0 {
		q.Set("maxRows", strconv.Itoa(params.MaxRows))
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/searchJSON?"+q.Encode(), nil)
	if err != nil {
		return nil, eris.Wrap(err, "geonames: build request")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, eris.Wrap(err, "geonames: request")
	}
	defer resp.Body.Close() //nolint:errcheck

	if resp.StatusCode != http.StatusOK {
		return nil, eris.Errorf("geonames: returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, eris.Wrap(err, "geonames: read body")
	}

	var sr searchResponse
	if err := json.Unmarshal(body, &sr); err != nil {
		return nil, eris.Wrap(err, "geonames: parse response")
	}
	if sr.Status != nil {
		return nil, eris.Errorf("geonames: %s (code %d)", sr.Status.Message, sr.Status.Value)
	}

	return sr.Geonames, nil
}
