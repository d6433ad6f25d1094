package export_test

import (
	"strings"
	"testing"

	"github.com/shibanib/json-question-bank-viewer/internal/export"
	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
)

func table(t *testing.T, src string) *qbank.Table {
	t.Helper()
	v, err := qbank.ParseValue([]byte(src))
	if err != nil {
		t.Fatal(err)
	}
	tb, err := qbank.Flatten(v)
	if err != nil {
		t.Fatal(err)
	}
	return tb
}

func TestMarkdownFullRecord(t *testing.T) {
	tb := table(t, `{"questions": [{
	  "question_id": "Q1",
	  "lesson_name": "Intro",
	  "module": 1,
	  "difficulty": "easy",
	  "bloom_level": "Remember",
	  "type": "multiple_choice",
	  "question_text": "What is X?",
	  "options": {"A": "a", "B": "b"},
	  "correct_answer": "A",
	  "tags": ["basics"]
	}]}`)

	want := strings.Join([]string{
		"# Filtered Questions",
		"",
		"### Q1 — Intro (Module 1) [easy | Remember]",
		"- Type: multiple_choice",
		"",
		"What is X?",
		"",
		"Options:",
		"- A: a",
		"- B: b",
		"",
		"- Answer: A",
		"- Tags: basics",
		"",
	}, "\n")

	got := export.Markdown("Filtered Questions", tb, false)
	if got != want {
		t.Fatalf("markdown mismatch\ngot:\n%s\nwant:\n%s", got, want)
	}
}

func TestMarkdownOmitsEmptyFields(t *testing.T) {
	tb := table(t, `{"questions": [{
	  "question_id": "Q2",
	  "lesson_name": "Sparse",
	  "module": 3,
	  "difficulty": "hard",
	  "bloom_level": "Apply",
	  "question_text": "Why?"
	}]}`)

	got := export.Markdown("Filtered Questions", tb, false)
	for _, forbidden := range []string{"Explanation:", "Answer:", "Options:", "Tags:", "Page(s):", "Type:"} {
		if strings.Contains(got, forbidden) {
			t.Errorf("output must not contain %q for a record lacking it:\n%s", forbidden, got)
		}
	}
	if !strings.Contains(got, "### Q2 — Sparse (Module 3) [hard | Apply]") {
		t.Errorf("missing heading:\n%s", got)
	}
}

func TestMarkdownOptionalLines(t *testing.T) {
	tb := table(t, `{"questions": [{
	  "question_id": "Q3",
	  "lesson_name": "Pages",
	  "module": 2,
	  "difficulty": "medium",
	  "bloom_level": "Analyze",
	  "type": "short_answer",
	  "page_reference": "12-14",
	  "question_text": "Explain.",
	  "explanation": "Because."
	}]}`)

	got := export.Markdown("Filtered Questions", tb, false)
	for _, line := range []string{"- Page(s): 12-14", "- Type: short_answer", "- Explanation: Because."} {
		if !strings.Contains(got, line) {
			t.Errorf("missing %q in:\n%s", line, got)
		}
	}
}

func TestMarkdownSourceLineOnlyWhenMultiSource(t *testing.T) {
	a := table(t, `{"questions": [{"question_id": "Q1", "question_text": "One?"}]}`)
	merged := qbank.Merge([]qbank.DocumentTable{
		{Source: "a.json", Table: a},
		{Source: "b.json", Table: table(t, `{"questions": [{"question_id": "Q1"}]}`)},
	})

	multi := export.Markdown("Filtered Questions", merged, true)
	if !strings.Contains(multi, "- Source: a.json") || !strings.Contains(multi, "- Source: b.json") {
		t.Errorf("multi-source export should name each source:\n%s", multi)
	}

	single := export.Markdown("Filtered Questions", a, false)
	if strings.Contains(single, "- Source:") {
		t.Errorf("single-source export must not emit Source lines:\n%s", single)
	}
}
