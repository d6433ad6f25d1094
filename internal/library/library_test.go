package library_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/shibanib/json-question-bank-viewer/internal/library"
	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
)

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
}

func newLibrary(t *testing.T) (*library.Library, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "beta.json", `{"questions": [{"question_id": "B1"}]}`)
	writeFile(t, dir, "alpha.json", `{"questions": []}`)
	writeFile(t, dir, "notes.txt", "not json")
	writeFile(t, dir, "broken.json", `{"questions": [`)

	lib := library.New(dir, "alpha.json", nil)
	if err := lib.Refresh(); err != nil {
		t.Fatal(err)
	}
	return lib, dir
}

func TestRefreshListsOnlyJSON(t *testing.T) {
	lib, _ := newLibrary(t)
	files := lib.Files()
	if len(files) != 3 {
		t.Fatalf("files = %+v", files)
	}
	// Sorted by name; the txt file is excluded.
	if files[0].Name != "alpha.json" || files[1].Name != "beta.json" || files[2].Name != "broken.json" {
		t.Fatalf("order = %v, %v, %v", files[0].Name, files[1].Name, files[2].Name)
	}
}

func TestDefaultFile(t *testing.T) {
	lib, _ := newLibrary(t)
	def, ok := lib.Default()
	if !ok || def.Name != "alpha.json" {
		t.Fatalf("default = %+v, ok = %v", def, ok)
	}
}

func TestOpen(t *testing.T) {
	lib, _ := newLibrary(t)
	doc, err := lib.Open("beta.json")
	if err != nil {
		t.Fatal(err)
	}
	if doc.Source != "beta.json" {
		t.Errorf("source = %q", doc.Source)
	}
}

func TestOpenBrokenFileReturnsLoadError(t *testing.T) {
	lib, _ := newLibrary(t)
	_, err := lib.Open("broken.json")
	var le *qbank.LoadError
	if !errors.As(err, &le) {
		t.Fatalf("err = %T, want *LoadError", err)
	}
	if le.Source != "broken.json" {
		t.Errorf("source = %q", le.Source)
	}
}

func TestOpenRejectsPathTraversal(t *testing.T) {
	lib, dir := newLibrary(t)
	writeFile(t, filepath.Dir(dir), "outside.json", `{}`)
	for _, name := range []string{"../outside.json", "/etc/passwd", "", "sub/alpha.json"} {
		if _, err := lib.Open(name); err == nil {
			t.Errorf("Open(%q) should fail", name)
		}
	}
}

func TestOpenUnlistedFile(t *testing.T) {
	lib, dir := newLibrary(t)
	// Present on disk but added after the last refresh: not listed, not
	// openable until a refresh happens.
	writeFile(t, dir, "late.json", `{}`)
	if _, err := lib.Open("late.json"); err == nil {
		t.Fatal("unlisted file should not open")
	}
	if err := lib.Refresh(); err != nil {
		t.Fatal(err)
	}
	if _, err := lib.Open("late.json"); err != nil {
		t.Fatalf("after refresh: %v", err)
	}
}
