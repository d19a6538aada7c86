// Package report renders batch results: verified competitors and
// enriched market cities.
package report

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/rotisserie/eris"
	"gopkg.in/yaml.v3"

	"github.com/sells-group/dealer-scout/internal/geo"
	"github.com/sells-group/dealer-scout/internal/model"
	"github.com/sells-group/dealer-scout/internal/verify"
)

// Format is an output encoding.
type Format string

// Supported formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatXLSX Format = "xlsx"
)

// ParseFormat accepts json, yaml (or yml) and xlsx, case-insensitively.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "json":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "xlsx":
		return FormatXLSX, nil
	default:
		return "", eris.Errorf("report: unknown format %q", s)
	}
}

// Row is one competitor in the exported report: the competitors.json
// fields followed by the verification outcome.
type Row struct {
	Name      string `json:"name" yaml:"name"`
	Website   string `json:"website" yaml:"website"`
	Distance  string `json:"distance" yaml:"distance"`
	City      string `json:"city" yaml:"city"`
	State     string `json:"state" yaml:"state"`
	Latitude  string `json:"latitude" yaml:"latitude"`
	Longitude string `json:"longitude" yaml:"longitude"`
	Range     string `json:"range" yaml:"range"`
	OEM       string `json:"oem" yaml:"oem"`
	Address   string `json:"address" yaml:"address"`
	Valid     bool   `json:"valid" yaml:"valid"`
	Verdict   string `json:"verdict" yaml:"verdict"`
	Error     string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Rows flattens results, keeping their order. A result whose verification
// did not run has an empty verdict and the error text set.
func Rows(results []verify.Result) []Row {
	rows := make([]Row, 0, len(results))
	for _, r := range results {
		c := r.Candidate
		row := Row{
			Name:      c.Name,
			Website:   c.Website,
			Distance:  c.Distance,
			City:      c.City,
			State:     c.State,
			Latitude:  c.Latitude,
			Longitude: c.Longitude,
			Range:     c.Range,
			OEM:       c.OEM,
			Address:   c.Address,
		}
		if r.Err != nil {
			row.Error = r.Err.Error()
		} else {
			row.Valid = r.Verdict.Valid
			row.Verdict = r.Verdict.String()
		}
		rows = append(rows, row)
	}
	return rows
}

// Write encodes results to w in the given format.
func Write(w io.Writer, format Format, results []verify.Result) error {
	rows := Rows(results)
	return encode(w, format, rows, func() error {
		return writeXLSX(w, sheetName, xlsxHeader, competitorCells(rows))
	})
}

// OpportunityRow is one market city in the exported report, in the
// opportunities.json shape plus the population that qualified it.
type OpportunityRow struct {
	Distance   string  `json:"distance" yaml:"distance"`
	City       string  `json:"city" yaml:"city"`
	State      string  `json:"state" yaml:"state"`
	Latitude   float64 `json:"latitude" yaml:"latitude"`
	Longitude  float64 `json:"longitude" yaml:"longitude"`
	Range      float64 `json:"range" yaml:"range"`
	Population int64   `json:"population" yaml:"population"`
}

// OpportunityRows flattens opportunities, keeping their order.
func OpportunityRows(opps []model.Opportunity) []OpportunityRow {
	rows := make([]OpportunityRow, 0, len(opps))
	for _, o := range opps {
		rows = append(rows, OpportunityRow{
			Distance:   geo.FormatMiles(o.Miles),
			City:       o.City,
			State:      o.State,
			Latitude:   o.Point.Latitude,
			Longitude:  o.Point.Longitude,
			Range:      o.RangeMiles,
			Population: o.Population,
		})
	}
	return rows
}

// WriteOpportunities encodes opportunities to w in the given format.
func WriteOpportunities(w io.Writer, format Format, opps []model.Opportunity) error {
	rows := OpportunityRows(opps)
	return encode(w, format, rows, func() error {
		return writeXLSX(w, opportunitySheet, opportunityHeader, opportunityCells(rows))
	})
}

func encode(w io.Writer, format Format, rows any, xlsxFn func() error) error {
	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return eris.Wrap(enc.Encode(rows), "report: encode json")
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(rows); err != nil {
			return eris.Wrap(err, "report: encode yaml")
		}
		return eris.Wrap(enc.Close(), "report: close yaml encoder")
	case FormatXLSX:
		return xlsxFn()
	default:
		return eris.Errorf("report: unknown format %q", format)
	}
}
