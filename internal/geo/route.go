package geo

import (
	"encoding/json"

	"github.com/rotisserie/eris"
	"github.com/twpayne/go-geom"
	"github.com/twpayne/go-geom/encoding/geojson"

	"github.com/sells-group/dealer-scout/internal/model"
)

// RouteGeoJSON renders a resolved distance as a FeatureCollection with
// both endpoints and the straight segment between them.
func RouteGeoJSON(address1, address2 string, d *model.DistanceResult) ([]byte, error) {
	from := geom.Coord{d.From.Longitude, d.From.Latitude}
	to := geom.Coord{d.To.Longitude, d.To.Latitude}

	fc := geojson.FeatureCollection{
		Features: []*geojson.Feature{
			{
				Geometry:   geom.NewPoint(geom.XY).MustSetCoords(from),
				Properties: map[string]interface{}{"role": "origin", "address": address1},
			},
			{
				Geometry:   geom.NewPoint(geom.XY).MustSetCoords(to),
				Properties: map[string]interface{}{"role": "destination", "address": address2},
			},
			{
				Geometry:   geom.NewLineString(geom.XY).MustSetCoords([]geom.Coord{from, to}),
				Properties: map[string]interface{}{"role": "route", "miles": d.Miles, "label": FormatMiles(d.Miles)},
			},
		},
	}

	out, err := json.Marshal(&fc)
	if err != nil {
		return nil, eris.Wrap(err, "geo: marshal geojson")
	}
	return out, nil
}
