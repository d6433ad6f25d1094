package qbank_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
)

func TestLoadFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "bank.json")
	if err := os.WriteFile(path, []byte(sampleDoc), 0o644); err != nil {
		t.Fatal(err)
	}

	doc, err := qbank.LoadFile(path)
	if err != nil {
		t.Fatalf("LoadFile: %v", err)
	}
	if doc.Source != "bank.json" {
		t.Errorf("source = %q, want base name", doc.Source)
	}
	if doc.Path != path {
		t.Errorf("path = %q", doc.Path)
	}
	if doc.Root.Kind() != qbank.KindObject {
		t.Errorf("root kind = %v", doc.Root.Kind())
	}
}

func TestLoadFileMissing(t *testing.T) {
	_, err := qbank.LoadFile(filepath.Join(t.TempDir(), "nope.json"))
	var le *qbank.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %T, want *LoadError", err)
	}
	if le.Source != "nope.json" {
		t.Errorf("source = %q", le.Source)
	}
	if !errors.Is(err, os.ErrNotExist) {
		t.Errorf("cause should unwrap to os.ErrNotExist, got %v", le.Err)
	}
}

func TestLoadBytesInvalidJSON(t *testing.T) {
	for _, src := range []string{`{"questions": [`, `{} trailing`, ``} {
		_, err := qbank.LoadBytes("upload.json", []byte(src))
		var le *qbank.LoadError
		if !errors.As(err, &le) {
			t.Fatalf("LoadBytes(%q) err = %T, want *LoadError", src, err)
		}
		if le.Source != "upload.json" {
			t.Errorf("source = %q", le.Source)
		}
	}
}

func TestLoadBytesKeepsRaw(t *testing.T) {
	doc, err := qbank.LoadBytes("upload.json", []byte(`{"a": 1}`))
	if err != nil {
		t.Fatal(err)
	}
	if string(doc.Raw) != `{"a": 1}` {
		t.Errorf("raw = %q", doc.Raw)
	}
}

func TestLearningObjectivesOrderAndDefaults(t *testing.T) {
	doc, err := qbank.LoadBytes("lo.json", []byte(`{
	  "learning_objectives": {
	    "mod2": {"name": "Inference", "pages": "30-45", "objectives": ["infer things"]},
	    "mod1": {"objectives": ["fit a line", "read residuals"]},
	    "mod3": "malformed"
	  },
	  "questions": []
	}`))
	if err != nil {
		t.Fatal(err)
	}
	los := doc.LearningObjectives()
	if len(los) != 3 {
		t.Fatalf("got %d modules, want 3", len(los))
	}
	// Document order, not sorted order.
	if los[0].Key != "mod2" || los[1].Key != "mod1" || los[2].Key != "mod3" {
		t.Fatalf("order = %s, %s, %s", los[0].Key, los[1].Key, los[2].Key)
	}
	if los[0].Name != "Inference" || los[0].Pages != "30-45" {
		t.Errorf("mod2 = %+v", los[0])
	}
	// Missing name falls back to the key; missing pages to "-".
	if los[1].Name != "mod1" || los[1].Pages != "-" {
		t.Errorf("mod1 defaults = %+v", los[1])
	}
	if len(los[1].Objectives) != 2 {
		t.Errorf("mod1 objectives = %v", los[1].Objectives)
	}
}

func TestLearningObjectivesAbsent(t *testing.T) {
	doc, err := qbank.LoadBytes("plain.json", []byte(`{"questions": []}`))
	if err != nil {
		t.Fatal(err)
	}
	if los := doc.LearningObjectives(); los != nil {
		t.Errorf("objectives = %v, want nil", los)
	}
}
