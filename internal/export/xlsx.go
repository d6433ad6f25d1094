package export

import (
	"encoding/json"

	"github.com/xuri/excelize/v2"

	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
)

const sheetName = "Questions"

// XLSX serializes the table as a single-sheet workbook, header row first.
// Numeric cells keep their numeric type where the document value parses as
// one; everything else is written as its display string.
func XLSX(t *qbank.Table) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()
	if err := f.SetSheetName("Sheet1", sheetName); err != nil {
		return nil, err
	}
	for i, col := range t.Columns {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheetName, cell, col); err != nil {
			return nil, err
		}
	}
	for ri, rec := range t.Records {
		for ci, col := range t.Columns {
			v, ok := rec[col]
			if !ok {
				continue
			}
			cell, err := excelize.CoordinatesToCellName(ci+1, ri+2)
			if err != nil {
				return nil, err
			}
			if err := f.SetCellValue(sheetName, cell, cellValue(v)); err != nil {
				return nil, err
			}
		}
	}
	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func cellValue(v any) any {
	switch x := v.(type) {
	case json.Number:
		if n, err := x.Int64(); err == nil {
			return n
		}
		if n, err := x.Float64(); err == nil {
			return n
		}
		return x.String()
	case bool, string:
		return x
	default:
		return qbank.CoerceString(v)
	}
}
