package export

import (
	"bytes"
	"encoding/csv"

	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
)

// CSV serializes the table with a header row in working-column order.
// encoding/csv handles RFC 4180 quoting, so cells containing commas,
// quotes, or newlines survive a round-trip through any standard reader.
// List-valued cells (tags) are joined with ", ".
func CSV(t *qbank.Table) ([]byte, error) {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	if err := w.Write(t.Columns); err != nil {
		return nil, err
	}
	row := make([]string, len(t.Columns))
	for _, rec := range t.Records {
		for i, col := range t.Columns {
			if v, ok := rec[col]; ok {
				row[i] = qbank.CoerceString(v)
			} else {
				row[i] = ""
			}
		}
		if err := w.Write(row); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
