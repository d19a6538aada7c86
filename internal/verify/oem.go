package verify

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// OEMMatcher looks for the brand name in a site's visible text.
type OEMMatcher struct {
	site Site
}

// NewOEMMatcher creates an OEMMatcher.
func NewOEMMatcher(site Site) *OEMMatcher {
	return &OEMMatcher{site: site}
}

// Matches reports whether oem appears in the page text, ignoring case.
// A page that cannot be fetched counts as no match.
func (m *OEMMatcher) Matches(ctx context.Context, url, oem string) bool {
	text, err := m.site.FetchText(ctx, url)
	if err != nil {
		zap.L().Debug("verify: oem fetch failed", zap.String("url", url), zap.Error(err))
		return false
	}
	return strings.Contains(strings.ToLower(text), strings.ToLower(oem))
}
