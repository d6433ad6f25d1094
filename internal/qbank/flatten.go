package qbank

import "errors"

// ErrNoTable reports a value with no tabular form (a bare scalar, or nil).
// Callers fall back to the raw-structure view instead of a table.
var ErrNoTable = errors.New("value has no tabular form")

// SourceColumn is added to merged records when more than one document is
// active, carrying the originating document's source label.
const SourceColumn = "source"

// Record is one flattened row: dotted column paths to scalar values
// (string, bool, json.Number) or verbatim []any for nested arrays. A field
// missing from the source document is absent from the map, not nil-filled.
type Record map[string]any

// Table is an ordered set of flattened records. Columns are in first-seen
// order across the records.
type Table struct {
	Columns []string `json:"columns"`
	Records []Record `json:"records"`
}

// Flatten converts a parsed JSON value into a table.
//
// Arrays flatten element-wise. Objects are searched for a `questions` array
// first; failing that, the first array-valued top-level field in document
// order is flattened; an object with no array field becomes a single record.
// Anything else yields ErrNoTable.
func Flatten(v *Value) (*Table, error) {
	if v == nil {
		return nil, ErrNoTable
	}
	switch v.Kind() {
	case KindArray:
		return flattenArray(v), nil
	case KindObject:
		if q, ok := v.Field("questions"); ok && q.Kind() == KindArray {
			return flattenArray(q), nil
		}
		for _, key := range v.Keys() {
			if f, _ := v.Field(key); f.Kind() == KindArray {
				return flattenArray(f), nil
			}
		}
		t := &Table{}
		seen := map[string]bool{}
		rec := Record{}
		flattenInto(v, "", rec, &t.Columns, seen)
		t.Records = append(t.Records, rec)
		return t, nil
	}
	return nil, ErrNoTable
}

func flattenArray(arr *Value) *Table {
	t := &Table{}
	seen := map[string]bool{}
	for _, el := range arr.Items() {
		rec := Record{}
		flattenInto(el, "", rec, &t.Columns, seen)
		t.Records = append(t.Records, rec)
	}
	return t
}

func flattenInto(v *Value, prefix string, rec Record, cols *[]string, seen map[string]bool) {
	if v.Kind() != KindObject {
		// Scalar or array element at the top of a record.
		key := prefix
		if key == "" {
			key = "value"
		}
		setColumn(rec, key, v, cols, seen)
		return
	}
	for _, name := range v.Keys() {
		f, _ := v.Field(name)
		key := name
		if prefix != "" {
			key = prefix + "." + name
		}
		if f.Kind() == KindObject {
			flattenInto(f, key, rec, cols, seen)
			continue
		}
		setColumn(rec, key, f, cols, seen)
	}
}

func setColumn(rec Record, key string, v *Value, cols *[]string, seen map[string]bool) {
	if v.Kind() == KindNull {
		// Present-but-null reads the same as absent.
		return
	}
	if !seen[key] {
		seen[key] = true
		*cols = append(*cols, key)
	}
	rec[key] = v.Interface()
}

// DocumentTable pairs a source label with its flattened table for merging.
type DocumentTable struct {
	Source string
	Table  *Table
}

// Merge combines per-document tables into one working set. Columns are the
// union in first-seen order. With more than one part, every record gains a
// source column so identical question ids from different documents stay
// distinguishable.
func Merge(parts []DocumentTable) *Table {
	merged := &Table{}
	seen := map[string]bool{}
	multi := len(parts) > 1
	for _, p := range parts {
		if p.Table == nil {
			continue
		}
		for _, col := range p.Table.Columns {
			if !seen[col] {
				seen[col] = true
				merged.Columns = append(merged.Columns, col)
			}
		}
		for _, rec := range p.Table.Records {
			out := make(Record, len(rec)+1)
			for k, v := range rec {
				out[k] = v
			}
			if multi {
				out[SourceColumn] = p.Source
			}
			merged.Records = append(merged.Records, out)
		}
	}
	if multi && !seen[SourceColumn] {
		merged.Columns = append(merged.Columns, SourceColumn)
	}
	return merged
}
