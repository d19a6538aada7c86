// Package geocode resolves free-text addresses via Google Geocoding
// (primary) and the Census one-line geocoder (fallback).
package geocode

import (
	"context"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

// Client geocodes a single free-text address.
type Client interface {
	Geocode(ctx context.Context, address string) (*Result, error)
}

// Result holds the geocoding output for an address. Matched is false when
// every configured provider answered but none found the address.
type Result struct {
	Latitude  float64
	Longitude float64
	Source    string // "google" or "census"
	Quality   string // "rooftop", "range", "centroid", "approximate"
	Matched   bool
}

// Option configures the geocoder.
type Option func(*geocoder)

// WithGoogleAPIKey enables the Google Geocoding API.
func WithGoogleAPIKey(key string) Option {
	return func(g *geocoder) {
		g.googleKey = key
	}
}

// WithCensusFallback enables or disables the Census one-line geocoder.
func WithCensusFallback(enabled bool) Option {
	return func(g *geocoder) {
		g.census = enabled
	}
}

// WithHTTPClient sets a custom HTTP client for provider requests.
func WithHTTPClient(hc *http.Client) Option {
	return func(g *geocoder) {
		g.httpClient = hc
	}
}

// WithTimeout bounds every provider request. It keeps the transport of a
// client set by WithHTTPClient, whichever option comes first.
func WithTimeout(d time.Duration) Option {
	return func(g *geocoder) {
		hc := *g.httpClient
		hc.Timeout = d
		g.httpClient = &hc
	}
}

// WithRateLimit sets the requests-per-second limit shared by all providers.
func WithRateLimit(rps float64) Option {
	return func(g *geocoder) {
		burst := int(rps)
		if burst < 1 {
			burst = 1
		}
		g.limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
}

type geocoder struct {
	httpClient *http.Client
	googleKey  string
	census     bool
	limiter    *rate.Limiter
}

// NewClient creates a new geocoding Client with the given options.
func NewClient(opts ...Option) Client {
	g := &geocoder{
		httpClient: &http.Client{Timeout: 10 * time.Second},
		census:     true,
		limiter:    rate.NewLimiter(10, 10),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Geocode tries Google first when a key is configured, then Census. A
// provider error is returned only when no provider matched.
func (g *geocoder) Geocode(ctx context.Context, address string) (*Result, error) {
	if g.googleKey == "" && !g.census {
		return nil, eris.New("geocode: no provider configured")
	}

	var firstErr error
	if g.googleKey != "" {
		result, err := g.geocodeGoogle(ctx, address)
		if err == nil && result.Matched {
			return result, nil
		}
		if err != nil {
			firstErr = err
			zap.L().Debug("geocode: google failed", zap.String("address", address), zap.Error(err))
		}
	}

	if g.census {
		result, err := g.geocodeCensus(ctx, address)
		if err == nil && result.Matched {
			return result, nil
		}
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	if firstErr != nil {
		return nil, firstErr
	}
	return &Result{Matched: false}, nil
}
