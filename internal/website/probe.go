// Package website probes dealership websites and extracts their visible text.
package website

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/dealer-scout/internal/model"
)

// DefaultUserAgent keeps trivial bot filters from rejecting the probe.
const DefaultUserAgent = "Mozilla/5.0"

// Prober issues single, bounded GET requests. It never retries.
type Prober struct {
	client    *http.Client
	userAgent string
}

// Option configures a Prober.
type Option func(*Prober)

// WithTimeout bounds each request end to end.
func WithTimeout(d time.Duration) Option {
	return func(p *Prober) {
		p.client.Timeout = d
	}
}

// WithUserAgent overrides the User-Agent header.
func WithUserAgent(ua string) Option {
	return func(p *Prober) {
		if ua != "" {
			p.userAgent = ua
		}
	}
}

// WithHTTPClient replaces the underlying client.
func WithHTTPClient(hc *http.Client) Option {
	return func(p *Prober) {
		p.client = hc
	}
}

// NewProber creates a Prober with a 10s timeout.
func NewProber(opts ...Option) *Prober {
	p := &Prober{
		client: &http.Client{
			Timeout: 10 * time.Second,
			Transport: &http.Transport{
				Proxy: http.ProxyFromEnvironment,
				DialContext: (&net.Dialer{
					Timeout: 10 * time.Second,
				}).DialContext,
				TLSHandshakeTimeout: 10 * time.Second,
			},
		},
		userAgent: DefaultUserAgent,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Check classifies a site: 200 is operational, any other status is
// non-operational, and transport failures are unreachable. The body is not read.
func (p *Prober) Check(ctx context.Context, url string) model.WebsiteStatus {
	resp, err := p.get(ctx, url)
	if err != nil {
		zap.L().Debug("website: unreachable", zap.String("url", url), zap.Error(err))
		return model.WebsiteStatus{State: model.WebsiteUnreachable, Reason: err.Error()}
	}
	_ = resp.Body.Close()
	return model.StatusFromCode(resp.StatusCode)
}

// FetchText fetches a page whatever its status and returns its visible
// text. The body is streamed, so large inline scripts do not push later
// text out of reach. Only transport and decoding failures are errors.
func (p *Prober) FetchText(ctx context.Context, url string) (string, error) {
	resp, err := p.get(ctx, url)
	if err != nil {
		return "", eris.Wrap(err, "website: fetch")
	}
	defer func() { _ = resp.Body.Close() }()

	return ExtractText(resp.Body, resp.Header.Get("Content-Type"))
}

// get returns the raw transport error so that status strings carry the
// underlying message unwrapped. Callers close the body.
func (p *Prober) get(ctx context.Context, url string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", p.userAgent)

	return p.client.Do(req)
}
