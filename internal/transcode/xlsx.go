package transcode

import (
	"bytes"
	"fmt"
	"io"

	"github.com/xuri/excelize/v2"
)

// SheetName is the worksheet that exports are written to.
const SheetName = "BudgetFlowData"

var columnWidths = map[string]float64{
	ColScenarioID:   38,
	ColScenarioName: 22,
	ColCategoryID:   38,
	ColCategoryName: 24,
	ColDescription:  40,
}

// WriteXLSX writes rows to a single-sheet workbook.
func WriteXLSX(w io.Writer, rows []Row) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), SheetName); err != nil {
		return fmt.Errorf("naming sheet: %w", err)
	}

	header := make([]any, len(Columns))
	for i, col := range Columns {
		header[i] = col
		if width, ok := columnWidths[col]; ok {
			name, _ := excelize.ColumnNumberToName(i + 1)
			if err := f.SetColWidth(SheetName, name, name, width); err != nil {
				return err
			}
		}
	}
	if err := f.SetSheetRow(SheetName, "A1", &header); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	for i, r := range rows {
		c := r.Category
		values := []any{
			r.ScenarioID, r.ScenarioName, c.ID, c.Name, c.Description,
			c.CurrentValue, c.MaxValue, string(c.Icon), c.IsActive, c.IsPredefined, string(c.Type),
		}
		cell, _ := excelize.CoordinatesToCellName(1, i+2)
		if err := f.SetSheetRow(SheetName, cell, &values); err != nil {
			return fmt.Errorf("writing row %d: %w", i+2, err)
		}
	}

	if err := f.SetPanes(SheetName, &excelize.Panes{
		Freeze: true, YSplit: 1, TopLeftCell: "A2", ActivePane: "bottomLeft",
	}); err != nil {
		return err
	}

	return f.Write(w)
}

// ReadXLSX parses the data sheet of a workbook into records, falling back to
// the first sheet when the workbook was not written by WriteXLSX.
func ReadXLSX(data []byte) ([]Record, error) {
	f, err := excelize.OpenReader(bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("opening workbook: %w", err)
	}
	defer func() { _ = f.Close() }()

	sheets := f.GetSheetList()
	if len(sheets) == 0 {
		return nil, ErrMissingHeader
	}
	sheet := sheets[0]
	for _, s := range sheets {
		if s == SheetName {
			sheet = s
			break
		}
	}

	table, err := f.GetRows(sheet)
	if err != nil {
		return nil, fmt.Errorf("reading sheet %s: %w", sheet, err)
	}
	return recordsFromTable(table)
}
