package tools

import (
	"context"
	"errors"

	"github.com/sells-group/dealer-scout/internal/geo"
)

const unresolvedMessage = "Error: Unable to geocode one or both addresses."

// Distance is the distance_calculator tool.
type Distance struct {
	resolver *geo.Resolver
}

// NewDistance wraps a resolver.
func NewDistance(resolver *geo.Resolver) *Distance {
	return &Distance{resolver: resolver}
}

func (d *Distance) Name() string { return "distance_calculator" }

func (d *Distance) Description() string {
	return "Geodesic distance in miles between two street addresses."
}

func (d *Distance) Parameters() []string { return []string{"address1", "address2"} }

func (d *Distance) Run(ctx context.Context, args Args) string {
	res, err := d.resolver.Distance(ctx, args["address1"], args["address2"])
	switch {
	case errors.Is(err, geo.ErrUnresolved):
		return unresolvedMessage
	case err != nil:
		return "Error calculating distance: " + err.Error()
	}
	return geo.FormatMiles(res.Miles)
}
