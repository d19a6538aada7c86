package geocode

import (
	"net/http"
	"strings"

	"golang.org/x/time/rate"
)

func newTestLimiter() *rate.Limiter {
	return rate.NewLimiter(rate.Inf, 1)
}

// newRewriteClient returns an HTTP client that sends requests for each
// provider URL prefix to the matching test server.
func newRewriteClient(routes map[string]string) *http.Client {
	return &http.Client{Transport: &rewriteTransport{base: http.DefaultTransport, routes: routes}}
}

type rewriteTransport struct {
	base   http.RoundTripper
	routes map[string]string // provider prefix -> test server URL
}

func (t *rewriteTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	orig := req.URL.String()
	for prefix, target := range t.routes {
		if !strings.HasPrefix(orig, prefix) {
			continue
		}
		parsed, err := req.URL.Parse(target + orig[len(prefix):])
		if err != nil {
			return nil, err
		}
		out := req.Clone(req.Context())
		out.URL = parsed
		out.Host = parsed.Host
		return t.base.RoundTrip(out)
	}
	return t.base.RoundTrip(req)
}
