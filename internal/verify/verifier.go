package verify

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/dealer-scout/internal/model"
)

const validReason = "Competitor currently exists, sells target OEM, and website is operational."

// Verifier runs the website, OEM and existence gates in order.
type Verifier struct {
	site    Site
	oem     *OEMMatcher
	recency *RecencyChecker
	pacer   Pacer
}

// Option configures a Verifier.
type Option func(*Verifier)

// WithPacer replaces the default one-second delay.
func WithPacer(p Pacer) Option {
	return func(v *Verifier) {
		v.pacer = p
	}
}

// WithClock sets the clock used for the copyright and recent-year checks.
func WithClock(now func() time.Time) Option {
	return func(v *Verifier) {
		v.recency.now = now
	}
}

// NewVerifier creates a Verifier that waits one second before each call.
func NewVerifier(site Site, opts ...Option) *Verifier {
	v := &Verifier{
		site:    site,
		oem:     NewOEMMatcher(site),
		recency: NewRecencyChecker(site),
		pacer:   DelayPacer{Delay: time.Second},
	}
	for _, opt := range opts {
		opt(v)
	}
	return v
}

// Verify returns the first failing gate's verdict, or a valid verdict when
// all pass. The error is non-nil only when pacing was interrupted.
func (v *Verifier) Verify(ctx context.Context, c model.Candidate) (model.Verdict, error) {
	if err := v.pacer.Wait(ctx); err != nil {
		return model.Verdict{}, eris.Wrap(err, "verify: pacing")
	}

	log := zap.L().With(zap.String("competitor", c.Name), zap.String("website", c.Website))

	status := v.site.Check(ctx, c.Website)
	if !status.Operational() {
		log.Debug("verify: website gate failed", zap.String("status", status.String()))
		return invalid("Website %s is %s.", c.Website, strings.ToLower(status.String())), nil
	}

	if !v.oem.Matches(ctx, c.Website, c.OEM) {
		log.Debug("verify: oem gate failed", zap.String("oem", c.OEM))
		return invalid("%s does not sell %s.", c.Name, c.OEM), nil
	}

	if c.SearchResults == "" {
		return invalid("No search results provided for %s.", c.Name), nil
	}

	existence := v.recency.AssessExistence(ctx, c.Name, c.Address, c.OEM, c.Website, c.SearchResults)
	if !existence.Valid {
		log.Debug("verify: existence gate failed", zap.String("detail", existence.Detail))
		return invalid("%s may not currently exist. %s", c.Name, existence.Detail), nil
	}

	return model.Verdict{Valid: true, Reason: validReason}, nil
}

func invalid(format string, args ...any) model.Verdict {
	return model.Verdict{Reason: fmt.Sprintf(format, args...)}
}
