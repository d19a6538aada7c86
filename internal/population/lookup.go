// Package population looks up populations of US places for expansion research.
package population

import (
	"context"
	"fmt"
	"regexp"
	"strings"

	"go.uber.org/zap"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/sells-group/dealer-scout/internal/model"
	"github.com/sells-group/dealer-scout/pkg/geonames"
)

// DefaultMaxRows is how many provider candidates are considered.
const DefaultMaxRows = 15

// FormatError is returned by Run when the argument is not "place, state".
const FormatError = "Error: Input must be in 'city, state' format (e.g., 'Dallas, TX')"

var suffixRe = regexp.MustCompile(`(?i)\s+(city|town|village|borough|CDP|municipality)$`)

// NormalizePlaceName drops a trailing administrative suffix such as
// "city" or "CDP".
func NormalizePlaceName(name string) string {
	return strings.TrimSpace(suffixRe.ReplaceAllString(strings.TrimSpace(name), ""))
}

// Lookup matches places against the GeoNames populated-place index.
type Lookup struct {
	client  geonames.Client
	maxRows int
	printer *message.Printer
}

// Option configures a Lookup.
type Option func(*Lookup)

// WithMaxRows overrides how many candidates are requested.
func WithMaxRows(n int) Option {
	return func(l *Lookup) {
		if n > 0 {
			l.maxRows = n
		}
	}
}

// NewLookup creates a Lookup over the given provider.
func NewLookup(client geonames.Client, opts ...Option) *Lookup {
	l := &Lookup{
		client:  client,
		maxRows: DefaultMaxRows,
		printer: message.NewPrinter(language.English),
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Get returns the first provider candidate whose normalized name and state
// match and whose population is positive. Candidates are not re-ranked.
// nil means no data: an invalid state, a provider error, or no match.
func (l *Lookup) Get(ctx context.Context, placeName, state string) *model.PopulationRecord {
	if !ValidState(state) {
		return nil
	}
	// The record echoes the caller's spelling of the state code.
	state = strings.TrimSpace(state)
	name := NormalizePlaceName(placeName)

	places, err := l.client.Search(ctx, geonames.SearchParams{
		Query:        fmt.Sprintf("%s, %s", name, state),
		Country:      "US",
		FeatureClass: "P",
		MaxRows:      l.maxRows,
	})
	if err != nil {
		zap.L().Warn("population: provider search failed",
			zap.String("place", name), zap.String("state", state), zap.Error(err))
		return nil
	}

	for _, p := range places {
		if !strings.EqualFold(NormalizePlaceName(p.Name), name) {
			continue
		}
		if !strings.EqualFold(p.AdminCode1, state) || p.Population <= 0 {
			continue
		}
		return &model.PopulationRecord{
			PlaceName:  p.Name,
			State:      state,
			Population: p.Population,
			Year:       "recent",
		}
	}
	return nil
}

// Run parses "place, state" and renders the lookup as text.
func (l *Lookup) Run(ctx context.Context, arguments string) string {
	parts := strings.Split(arguments, ",")
	if len(parts) != 2 {
		return FormatError
	}
	place, state := strings.TrimSpace(parts[0]), strings.TrimSpace(parts[1])

	rec := l.Get(ctx, place, state)
	if rec == nil {
		return fmt.Sprintf("No population data found for %s, %s", place, state)
	}
	return l.printer.Sprintf("Population of %s, %s: %d (%s)", rec.PlaceName, rec.State, rec.Population, rec.Year)
}
