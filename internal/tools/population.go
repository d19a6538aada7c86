package tools

import (
	"context"

	"github.com/sells-group/dealer-scout/internal/population"
)

// Population is the population_data tool.
type Population struct {
	lookup *population.Lookup
}

// NewPopulation wraps a lookup.
func NewPopulation(l *population.Lookup) *Population {
	return &Population{lookup: l}
}

func (p *Population) Name() string { return "population_data" }

func (p *Population) Description() string {
	return "Population of a US place given as \"city, ST\"."
}

func (p *Population) Parameters() []string { return []string{"arguments"} }

func (p *Population) Run(ctx context.Context, args Args) string {
	return p.lookup.Run(ctx, args["arguments"])
}
