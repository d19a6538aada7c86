package report

import (
	"io"

	"github.com/rotisserie/eris"
	"github.com/tealeg/xlsx/v2"
)

const (
	sheetName        = "Competitors"
	opportunitySheet = "Opportunities"
)

var xlsxHeader = []string{
	"Name", "Website", "Distance", "City", "State", "Latitude", "Longitude",
	"Range", "OEM", "Address", "Valid", "Verdict", "Error",
}

var opportunityHeader = []string{
	"Distance", "City", "State", "Latitude", "Longitude", "Range", "Population",
}

func competitorCells(rows []Row) [][]any {
	cells := make([][]any, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []any{
			r.Name, r.Website, r.Distance, r.City, r.State, r.Latitude,
			r.Longitude, r.Range, r.OEM, r.Address, r.Valid, r.Verdict, r.Error,
		})
	}
	return cells
}

func opportunityCells(rows []OpportunityRow) [][]any {
	cells := make([][]any, 0, len(rows))
	for _, r := range rows {
		cells = append(cells, []any{
			r.Distance, r.City, r.State, r.Latitude, r.Longitude, r.Range, r.Population,
		})
	}
	return cells
}

func writeXLSX(w io.Writer, name string, header []string, rows [][]any) error {
	f := xlsx.NewFile()
	sheet, err := f.AddSheet(name)
	if err != nil {
		return eris.Wrap(err, "xlsx: add sheet")
	}

	hr := sheet.AddRow()
	for _, h := range header {
		hr.AddCell().SetString(h)
	}
	for _, values := range rows {
		row := sheet.AddRow()
		for _, v := range values {
			cell := row.AddCell()
			switch v := v.(type) {
			case bool:
				cell.SetBool(v)
			case int64:
				cell.SetInt64(v)
			case float64:
				cell.SetFloat(v)
			case string:
				cell.SetString(v)
			default:
				return eris.Errorf("xlsx: unsupported cell type %T", v)
			}
		}
	}

	return eris.Wrap(f.Write(w), "xlsx: write")
}
