package export

import (
	"strings"

	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
)

var optionLetters = []string{"A", "B", "C", "D"}

// Markdown renders the record set as a structured Markdown document under
// the given top-level title. Every optional field that is absent or empty
// is skipped outright, never rendered as an empty line. The Source line is
// emitted only when more than one document is active.
func Markdown(title string, t *qbank.Table, multiSource bool) string {
	lines := []string{"# " + title, ""}
	for _, rec := range t.Records {
		lines = append(lines, heading(rec))
		if multiSource {
			if src := field(rec, qbank.SourceColumn); src != "" {
				lines = append(lines, "- Source: "+src)
			}
		}
		if pages := field(rec, "page_reference"); pages != "" {
			lines = append(lines, "- Page(s): "+pages)
		}
		if qtype := field(rec, "type"); qtype != "" {
			lines = append(lines, "- Type: "+qtype)
		}
		lines = append(lines, "")
		if text := field(rec, "question_text"); text != "" {
			lines = append(lines, text, "")
		}

		var opts []string
		for _, letter := range optionLetters {
			if v := field(rec, "options."+letter); v != "" {
				opts = append(opts, "- "+letter+": "+v)
			}
		}
		if len(opts) > 0 {
			lines = append(lines, "Options:")
			lines = append(lines, opts...)
			lines = append(lines, "")
		}

		if answer := field(rec, "correct_answer"); answer != "" {
			lines = append(lines, "- Answer: "+answer)
		}
		if expl := field(rec, "explanation"); expl != "" {
			lines = append(lines, "- Explanation: "+expl)
		}
		if tags, ok := rec["tags"].([]any); ok && len(tags) > 0 {
			parts := make([]string, len(tags))
			for i, tag := range tags {
				parts[i] = qbank.CoerceString(tag)
			}
			lines = append(lines, "- Tags: "+strings.Join(parts, ", "))
		}
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func heading(rec qbank.Record) string {
	return "### " + field(rec, "question_id") +
		" — " + field(rec, "lesson_name") +
		" (Module " + field(rec, "module") + ")" +
		" [" + field(rec, "difficulty") + " | " + field(rec, "bloom_level") + "]"
}

func field(rec qbank.Record, col string) string {
	v, ok := rec[col]
	if !ok {
		return ""
	}
	return qbank.CoerceString(v)
}
