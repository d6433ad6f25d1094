package qbank

import (
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

// FilterColumns are the columns the filter panel offers allow-lists for.
var FilterColumns = []string{
	"lesson_name",
	"difficulty",
	"bloom_level",
	"type",
	"module",
	"lesson_code",
	SourceColumn,
}

// Criteria is the current visible-subset definition: per-column allow-lists
// combined with AND, a tag allow-list with OR semantics, and a
// case-insensitive substring search over question_text. The zero value
// restricts nothing.
type Criteria struct {
	Columns map[string][]string `json:"columns,omitempty"`
	Tags    []string            `json:"tags,omitempty"`
	Search  string              `json:"search,omitempty"`
}

// IsZero reports whether the criteria restrict nothing.
func (c Criteria) IsZero() bool {
	if c.Search != "" || len(c.Tags) > 0 {
		return false
	}
	for _, vals := range c.Columns {
		if len(vals) > 0 {
			return false
		}
	}
	return true
}

// Apply filters the table down to records matching the criteria. The result
// shares column order with the input and is always a subset of it. An
// allow-list naming a column the table does not have restricts nothing, the
// same way the original viewer skipped filters for absent columns.
func Apply(t *Table, c Criteria) *Table {
	out := &Table{Columns: t.Columns}
	have := map[string]bool{}
	for _, col := range t.Columns {
		have[col] = true
	}
	for _, rec := range t.Records {
		if matches(rec, c, have) {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

func matches(rec Record, c Criteria, have map[string]bool) bool {
	for col, allowed := range c.Columns {
		if len(allowed) == 0 || !have[col] {
			continue
		}
		v, ok := rec[col]
		if !ok || !containsString(allowed, CoerceString(v)) {
			return false
		}
	}
	if len(c.Tags) > 0 && have["tags"] {
		if !hasAnyTag(rec["tags"], c.Tags) {
			return false
		}
	}
	if c.Search != "" && have["question_text"] {
		text, ok := rec["question_text"]
		if !ok {
			return false
		}
		if !strings.Contains(strings.ToLower(CoerceString(text)), strings.ToLower(c.Search)) {
			return false
		}
	}
	return true
}

// hasAnyTag applies OR semantics over the record's tags. A scalar tags value
// is compared as a single-element set.
func hasAnyTag(v any, allowed []string) bool {
	if v == nil {
		return false
	}
	if list, ok := v.([]any); ok {
		for _, tag := range list {
			if containsString(allowed, CoerceString(tag)) {
				return true
			}
		}
		return false
	}
	return containsString(allowed, CoerceString(v))
}

func containsString(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

// CoerceString renders a cell value for comparison and export. Numbers keep
// their document spelling so numeric module ids compare equal to their
// string form; lists join with ", ".
func CoerceString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case json.Number:
		return x.String()
	case bool:
		return strconv.FormatBool(x)
	case []any:
		parts := make([]string, len(x))
		for i, el := range x {
			parts[i] = CoerceString(el)
		}
		return strings.Join(parts, ", ")
	default:
		return fmt.Sprintf("%v", x)
	}
}

// Facets collects the sorted distinct values for every filterable column
// present in the table, plus the tag universe under "tags". It drives the
// filter panel's choices.
func Facets(t *Table) map[string][]string {
	out := map[string][]string{}
	have := map[string]bool{}
	for _, col := range t.Columns {
		have[col] = true
	}
	for _, col := range FilterColumns {
		if !have[col] {
			continue
		}
		set := map[string]bool{}
		for _, rec := range t.Records {
			if v, ok := rec[col]; ok {
				set[CoerceString(v)] = true
			}
		}
		out[col] = sortedKeys(set)
	}
	if have["tags"] {
		set := map[string]bool{}
		for _, rec := range t.Records {
			v, ok := rec["tags"]
			if !ok {
				continue
			}
			if list, isList := v.([]any); isList {
				for _, tag := range list {
					set[CoerceString(tag)] = true
				}
			} else {
				set[CoerceString(v)] = true
			}
		}
		out["tags"] = sortedKeys(set)
	}
	return out
}

func sortedKeys(set map[string]bool) []string {
	keys := make([]string, 0, len(set))
	for k := range set {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
