package main

import (
	"context"
	"net/http"

	"github.com/rotisserie/eris"
	"go.uber.org/zap"

	"github.com/sells-group/dealer-scout/internal/geo"
	"github.com/sells-group/dealer-scout/internal/journal"
	"github.com/sells-group/dealer-scout/internal/population"
	"github.com/sells-group/dealer-scout/internal/tools"
	"github.com/sells-group/dealer-scout/internal/verify"
	"github.com/sells-group/dealer-scout/internal/website"
	"github.com/sells-group/dealer-scout/pkg/geocode"
	"github.com/sells-group/dealer-scout/pkg/geonames"
)

// toolEnv holds the initialized clients and the tool registry shared by
// every command.
type toolEnv struct {
	Resolver *geo.Resolver
	Verifier *verify.Verifier
	Lookup   *population.Lookup
	Registry *tools.Registry
	Journal  journal.Journal // nil when disabled
}

// Close releases resources held by the environment.
func (e *toolEnv) Close() {
	if e.Journal != nil {
		_ = e.Journal.Close()
	}
}

// initEnv builds the provider clients from cfg and registers the tools.
// Callers should defer env.Close().
func initEnv(ctx context.Context) (*toolEnv, error) {
	pacer, err := verify.NewPacer(cfg.Verify.Pacing, cfg.Verify.Delay)
	if err != nil {
		return nil, err
	}

	var j journal.Journal
	if cfg.Journal.Driver != "" {
		j, err = journal.Open(ctx, cfg.Journal.Driver, cfg.Journal.DSN)
		if err != nil {
			return nil, eris.Wrap(err, "open journal")
		}
	}

	geocodeOpts := []geocode.Option{
		geocode.WithTimeout(cfg.HTTP.Timeout),
		geocode.WithCensusFallback(cfg.Geocode.CensusFallback),
		geocode.WithRateLimit(cfg.Geocode.RateLimit),
	}
	if cfg.Google.APIKey != "" {
		geocodeOpts = append(geocodeOpts, geocode.WithGoogleAPIKey(cfg.Google.APIKey))
	} else {
		zap.L().Debug("DEALER_GOOGLE_API_KEY not set, geocoding with census only")
	}
	resolver := geo.NewResolver(geocode.NewClient(geocodeOpts...))

	prober := website.NewProber(
		website.WithTimeout(cfg.HTTP.Timeout),
		website.WithUserAgent(cfg.HTTP.UserAgent),
	)
	verifier := verify.NewVerifier(prober, verify.WithPacer(pacer))

	if cfg.GeoNames.Username == "" {
		zap.L().Warn("DEALER_GEONAMES_USERNAME not set, population lookups will return no data")
	}
	gn := geonames.NewClient(cfg.GeoNames.Username,
		geonames.WithBaseURL(cfg.GeoNames.BaseURL),
		geonames.WithHTTPClient(&http.Client{Timeout: cfg.HTTP.Timeout}),
		geonames.WithRateLimit(cfg.GeoNames.RateLimit),
	)
	lookup := population.NewLookup(gn, population.WithMaxRows(cfg.GeoNames.MaxRows))

	env := &toolEnv{
		Resolver: resolver,
		Verifier: verifier,
		Lookup:   lookup,
		Journal:  j,
	}
	env.Registry = newRegistry(env)
	return env, nil
}

func newRegistry(env *toolEnv) *tools.Registry {
	var rec tools.Recorder
	if env.Journal != nil {
		rec = env.Journal
	}
	reg := tools.NewRegistry(rec)
	reg.Register(tools.NewDistance(env.Resolver))
	reg.Register(tools.NewCompetitor(env.Verifier))
	reg.Register(tools.NewPopulation(env.Lookup))
	return reg
}
