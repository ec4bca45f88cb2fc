// Package export writes the current grid projection (filtered and sorted,
// all pages, visible columns only) to xlsx and csv, and renders a BOM tree
// to svg. Exports reflect exactly what the user sees, minus pagination.
package export

import (
	"fmt"

	"github.com/xuri/excelize/v2"

	"github.com/inventaworks/inventa/pkg/grid"
)

// WriteXLSX writes the table's filtered rows to an xlsx file at path. The
// sheet is named after the entity and carries a styled header row plus a
// trailing row count.
func WriteXLSX(t *grid.Table, path string) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Config().Entity
	if sheet == "" {
		sheet = "export"
	}
	f.SetSheetName("Sheet1", sheet)

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true, Size: 11},
		Fill:   excelize.Fill{Type: "pattern", Pattern: 1, Color: []string{"#D9E1F2"}},
		Border: []excelize.Border{{Type: "bottom", Color: "000000", Style: 1}},
	})
	if err != nil {
		return fmt.Errorf("header style: %w", err)
	}

	cols := t.VisibleColumns()
	for i, col := range cols {
		name, err := excelize.ColumnNumberToName(i + 1)
		if err != nil {
			return err
		}
		cell := name + "1"
		if err := f.SetCellValue(sheet, cell, col.Label); err != nil {
			return err
		}
		if err := f.SetCellStyle(sheet, cell, cell, headerStyle); err != nil {
			return err
		}
		if col.Width > 0 {
			f.SetColWidth(sheet, name, name, float64(col.Width))
		}
	}

	rows := t.FilteredRows()
	for rowIdx, row := range rows {
		for colIdx, col := range cols {
			name, err := excelize.ColumnNumberToName(colIdx + 1)
			if err != nil {
				return err
			}
			cell := fmt.Sprintf("%s%d", name, rowIdx+2)
			val := row[col.Field]
			if val == nil {
				continue
			}
			// Numbers stay numbers so spreadsheet formulas work;
			// everything else goes through the display stringifier.
			switch col.Kind {
			case grid.CellNumber:
				if err := f.SetCellValue(sheet, cell, val); err != nil {
					return err
				}
			default:
				if err := f.SetCellValue(sheet, cell, grid.Stringify(val)); err != nil {
					return err
				}
			}
		}
	}

	summaryRow := len(rows) + 2
	summaryStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	countCell := fmt.Sprintf("A%d", summaryRow)
	if err := f.SetCellValue(sheet, countCell, fmt.Sprintf("%d rows", len(rows))); err != nil {
		return err
	}
	f.SetCellStyle(sheet, countCell, countCell, summaryStyle)

	return f.SaveAs(path)
}
