// Package geo resolves dealership addresses and measures the geodesic
// distance between them.
package geo

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/rotisserie/eris"
	"github.com/tidwall/geodesic"
	"go.uber.org/zap"

	"github.com/sells-group/dealer-scout/internal/model"
	"github.com/sells-group/dealer-scout/pkg/geocode"
)

const metersPerMile = 1609.344

// ErrUnresolved means at least one address had no geocoding match.
var ErrUnresolved = errors.New("geo: unable to geocode one or both addresses")

// Resolver turns addresses into points. It holds no state between calls:
// every Distance call geocodes both addresses again.
type Resolver struct {
	geocoder geocode.Client
}

// NewResolver creates a Resolver backed by the given geocoder.
func NewResolver(g geocode.Client) *Resolver {
	return &Resolver{geocoder: g}
}

// Resolve geocodes one address. ok is false when no provider matched.
func (r *Resolver) Resolve(ctx context.Context, address string) (model.GeoPoint, bool, error) {
	res, err := r.geocoder.Geocode(ctx, address)
	if err != nil {
		return model.GeoPoint{}, false, eris.Wrapf(err, "geo: resolve %q", address)
	}
	if res == nil || !res.Matched {
		return model.GeoPoint{}, false, nil
	}
	return model.GeoPoint{Latitude: res.Latitude, Longitude: res.Longitude}, true, nil
}

// Distance resolves both addresses and returns the geodesic distance in
// miles. It never returns a distance for an unresolved address.
func (r *Resolver) Distance(ctx context.Context, address1, address2 string) (*model.DistanceResult, error) {
	from, ok1, err := r.Resolve(ctx, address1)
	if err != nil {
		return nil, err
	}
	to, ok2, err := r.Resolve(ctx, address2)
	if err != nil {
		return nil, err
	}
	if !ok1 || !ok2 {
		zap.L().Debug("geo: unresolved address",
			zap.String("address1", address1), zap.Bool("resolved1", ok1),
			zap.String("address2", address2), zap.Bool("resolved2", ok2),
		)
		return nil, ErrUnresolved
	}

	return &model.DistanceResult{From: from, To: to, Miles: GeodesicMiles(from, to)}, nil
}

// GeodesicMiles is the WGS-84 ellipsoidal distance between two points.
func GeodesicMiles(a, b model.GeoPoint) float64 {
	var meters float64
	geodesic.WGS84.Inverse(a.Latitude, a.Longitude, b.Latitude, b.Longitude, &meters, nil, nil)
	return meters / metersPerMile
}

// FormatMiles rounds to two decimals and renders "<value> miles", always
// keeping at least one fractional digit ("0.0 miles", "12.5 miles").
func FormatMiles(miles float64) string {
	rounded := math.Round(miles*100) / 100
	s := strconv.FormatFloat(rounded, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s + " miles"
}
