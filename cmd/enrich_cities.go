package main

import (
	"io"
	"os"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/sells-group/dealer-scout/internal/model"
	"github.com/sells-group/dealer-scout/internal/opportunity"
	"github.com/sells-group/dealer-scout/internal/report"
)

var enrichCitiesCmd = &cobra.Command{
	Use:   "enrich-cities <cities.yaml>",
	Short: "Find populated market cities within range of a dealership",
	Long: `Reads a YAML or JSON list of cities (city, state), looks up each one's
population and its distance from the dealership, and reports the cities with
more than 1,000 people inside --range miles.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		dealer, _ := cmd.Flags().GetString("dealer")
		if strings.TrimSpace(dealer) == "" {
			return eris.New("enrich-cities: --dealer is required")
		}
		rangeMiles, _ := cmd.Flags().GetFloat64("range")
		if rangeMiles <= 0 {
			return eris.New("enrich-cities: --range must be positive")
		}
		limit, _ := cmd.Flags().GetInt("limit")
		formatFlag, _ := cmd.Flags().GetString("format")
		format, err := report.ParseFormat(formatFlag)
		if err != nil {
			return err
		}
		outPath, _ := cmd.Flags().GetString("out")
		if format == report.FormatXLSX && outPath == "" {
			return eris.New("enrich-cities: xlsx output requires --out")
		}
		concurrency, _ := cmd.Flags().GetInt("concurrency")
		if concurrency <= 0 {
			concurrency = cfg.Verify.Concurrency
		}

		cities, err := loadCities(args[0])
		if err != nil {
			return err
		}

		env, err := initEnv(ctx)
		if err != nil {
			return err
		}
		defer env.Close()

		zap.L().Info("enriching cities",
			zap.Int("count", len(cities)),
			zap.String("dealer", dealer),
			zap.Float64("range", rangeMiles),
			zap.Int("concurrency", concurrency),
		)
		finder := opportunity.NewFinder(env.Lookup, env.Resolver)
		results, err := finder.Enrich(ctx, dealer, rangeMiles, cities, concurrency)
		if err != nil && results == nil {
			return eris.Wrap(err, "enrich-cities")
		}
		if err != nil {
			zap.L().Warn("enrich-cities interrupted, writing partial report", zap.Error(err))
		}
		for _, r := range results {
			if r.Reason != "" {
				zap.L().Info("city skipped", zap.String("city", opportunity.Address(r.City)), zap.String("reason", r.Reason))
			}
		}

		var out io.Writer = cmd.OutOrStdout()
		if outPath != "" {
			f, ferr := os.Create(outPath)
			if ferr != nil {
				return eris.Wrap(ferr, "enrich-cities: create output")
			}
			defer f.Close() //nolint:errcheck
			out = f
		}
		if werr := report.WriteOpportunities(out, format, opportunity.Opportunities(results, limit)); werr != nil {
			return werr
		}
		return err
	},
}

// loadCities reads a list of cities. The file may be a bare list or a
// mapping with a "cities" key. Entries without a city or state are rejected.
func loadCities(path string) ([]model.City, error) {
	cities, err := loadList[model.City](path, "cities")
	if err != nil {
		return nil, eris.Wrap(err, "enrich-cities")
	}
	for i, c := range cities {
		if strings.TrimSpace(c.City) == "" || strings.TrimSpace(c.State) == "" {
			return nil, eris.Errorf("enrich-cities: entry %d in %s needs both city and state", i+1, path)
		}
	}
	return cities, nil
}

func init() {
	f := enrichCitiesCmd.Flags()
	f.String("dealer", "", "dealership address distances are measured from")
	f.Float64("range", 50, "maximum distance in miles")
	f.Int("limit", 5, "report at most this many cities (0 for all)")
	f.String("format", "json", "report format: json, yaml or xlsx")
	f.String("out", "", "write the report to this file instead of stdout")
	f.Int("concurrency", 0, "parallel lookups (default from config)")
	rootCmd.AddCommand(enrichCitiesCmd)
}
