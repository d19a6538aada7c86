// Package opportunity enriches candidate cities around a dealership with
// population and distance, and keeps the ones worth targeting.
package opportunity

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/sells-group/dealer-scout/internal/geo"
	"github.com/sells-group/dealer-scout/internal/model"
)

// MinPopulation is the population a city must exceed to qualify.
const MinPopulation = 1000

// Populations finds the population of a place. A nil record means no data.
type Populations interface {
	Get(ctx context.Context, placeName, state string) *model.PopulationRecord
}

// Distances measures the distance between two addresses.
type Distances interface {
	Distance(ctx context.Context, address1, address2 string) (*model.DistanceResult, error)
}

// Result is one enriched city. Opportunity is set when the city qualified,
// Reason says why it did not, and Err is set when enrichment could not run.
type Result struct {
	City        model.City
	Population  *model.PopulationRecord
	Distance    *model.DistanceResult
	Opportunity *model.Opportunity
	Reason      string
	Err         error
}

// Qualified reports whether the city is an opportunity.
func (r Result) Qualified() bool { return r.Opportunity != nil }

// Finder enriches cities relative to one dealership address.
type Finder struct {
	populations Populations
	distances   Distances
}

// NewFinder creates a Finder.
func NewFinder(p Populations, d Distances) *Finder {
	return &Finder{populations: p, distances: d}
}

// Key identifies a city within a batch.
func Key(c model.City) string {
	return strings.ToLower(strings.TrimSpace(c.City)) + "|" + strings.ToLower(strings.TrimSpace(c.State))
}

// Address is the geocodable form of a city.
func Address(c model.City) string {
	return strings.TrimSpace(c.City) + ", " + strings.TrimSpace(c.State)
}

// Enrich looks up population and distance from origin for every city and
// returns results in input order. Duplicate cities are rejected before any
// request is made.
func (f *Finder) Enrich(ctx context.Context, origin string, rangeMiles float64, cities []model.City, concurrency int) ([]Result, error) {
	if strings.TrimSpace(origin) == "" {
		return nil, eris.New("opportunity: dealership address is required")
	}
	if rangeMiles <= 0 {
		return nil, eris.Errorf("opportunity: range must be positive, got %v", rangeMiles)
	}
	seen := make(map[string]struct{}, len(cities))
	for _, c := range cities {
		k := Key(c)
		if _, dup := seen[k]; dup {
			return nil, eris.Errorf("opportunity: duplicate city %q", Address(c))
		}
		seen[k] = struct{}{}
	}
	if concurrency < 1 {
		concurrency = 1
	}

	var (
		mu       sync.Mutex
		enriched = make(map[string]Result, len(cities))
	)

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(concurrency)

	for _, c := range cities {
		g.Go(func() error {
			r := f.enrich(gctx, origin, rangeMiles, c)
			if r.Err != nil {
				zap.L().Warn("opportunity: city not enriched", zap.String("city", Address(c)), zap.Error(r.Err))
			}

			mu.Lock()
			enriched[Key(c)] = r
			mu.Unlock()
			return nil
		})
	}
	_ = g.Wait()

	results := make([]Result, len(cities))
	for i, c := range cities {
		r, ok := enriched[Key(c)]
		if !ok {
			r = Result{City: c, Err: ctx.Err()}
		}
		results[i] = r
	}
	return results, ctx.Err()
}

func (f *Finder) enrich(ctx context.Context, origin string, rangeMiles float64, c model.City) Result {
	r := Result{City: c}
	if err := ctx.Err(); err != nil {
		r.Err = err
		return r
	}

	r.Population = f.populations.Get(ctx, c.City, c.State)
	if r.Population == nil {
		r.Reason = "no population data"
		return r
	}
	if r.Population.Population <= MinPopulation {
		r.Reason = fmt.Sprintf("population %d is not above %d", r.Population.Population, MinPopulation)
		return r
	}

	d, err := f.distances.Distance(ctx, origin, Address(c))
	if errors.Is(err, geo.ErrUnresolved) {
		r.Reason = "unable to geocode"
		return r
	}
	if err != nil {
		r.Err = err
		return r
	}
	r.Distance = d
	if d.Miles > rangeMiles {
		r.Reason = fmt.Sprintf("%s away exceeds the range of %s", geo.FormatMiles(d.Miles), geo.FormatMiles(rangeMiles))
		return r
	}

	r.Opportunity = &model.Opportunity{
		City:       c.City,
		State:      c.State,
		Point:      d.To,
		Miles:      d.Miles,
		RangeMiles: rangeMiles,
		Population: r.Population.Population,
	}
	return r
}

// Opportunities returns the qualified cities in order, at most limit of
// them. A limit of zero or less returns all.
func Opportunities(results []Result, limit int) []model.Opportunity {
	var out []model.Opportunity
	for _, r := range results {
		if !r.Qualified() {
			continue
		}
		if limit > 0 && len(out) == limit {
			break
		}
		out = append(out, *r.Opportunity)
	}
	return out
}
