package export_test

import (
	"bytes"
	"encoding/csv"
	"reflect"
	"testing"

	"github.com/shibanib/json-question-bank-viewer/internal/export"
)

func TestCSVRoundTrip(t *testing.T) {
	tb := table(t, `{"questions": [
	  {"question_id": "Q1", "question_text": "Comma, quote \" and\nnewline", "module": 1,
	   "tags": ["a", "b"]},
	  {"question_id": "Q2", "module": 2}
	]}`)

	out, err := export.CSV(tb)
	if err != nil {
		t.Fatal(err)
	}

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatalf("standard reader rejected our CSV: %v", err)
	}
	if len(rows) != 3 {
		t.Fatalf("got %d rows, want header + 2", len(rows))
	}
	if !reflect.DeepEqual(rows[0], tb.Columns) {
		t.Errorf("header = %v, want %v", rows[0], tb.Columns)
	}
	if rows[1][1] != "Comma, quote \" and\nnewline" {
		t.Errorf("quoted cell = %q", rows[1][1])
	}
	if rows[1][3] != "a, b" {
		t.Errorf("tags cell = %q, want joined list", rows[1][3])
	}
	// Q2 lacks question_text and tags: empty cells, not errors.
	if rows[2][1] != "" || rows[2][3] != "" {
		t.Errorf("missing fields should serialize empty: %v", rows[2])
	}
	if rows[2][2] != "2" {
		t.Errorf("module = %q", rows[2][2])
	}
}

func TestCSVEmptyTable(t *testing.T) {
	tb := table(t, `{"questions": []}`)
	out, err := export.CSV(tb)
	if err != nil {
		t.Fatal(err)
	}
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Fatalf("rows = %v", rows)
	}
}
