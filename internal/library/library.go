package library

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
)

// File is one discovered JSON document in the data directory.
type File struct {
	Name     string    `json:"name"`
	Size     int64     `json:"size"`
	Modified time.Time `json:"modified"`
	Default  bool      `json:"default"`
}

// Library lists the JSON files of a single data directory (non-recursive)
// and opens them on request. The listing refreshes on demand or via Watch.
type Library struct {
	dir         string
	defaultName string
	logger      *slog.Logger

	mu    sync.RWMutex
	files []File
}

// New creates a library over dir. defaultName marks the bundled default
// document, matching the viewer's "use project file" convention.
func New(dir, defaultName string, logger *slog.Logger) *Library {
	if logger == nil {
		logger = slog.Default()
	}
	return &Library{dir: dir, defaultName: defaultName, logger: logger}
}

// Dir returns the data directory path.
func (l *Library) Dir() string { return l.dir }

// Refresh re-lists the directory. Only files with a .json extension are
// kept, sorted by name.
func (l *Library) Refresh() error {
	entries, err := os.ReadDir(l.dir)
	if err != nil {
		return fmt.Errorf("list data dir %q: %w", l.dir, err)
	}
	var files []File
	for _, e := range entries {
		if e.IsDir() || !strings.EqualFold(filepath.Ext(e.Name()), ".json") {
			continue
		}
		info, err := e.Info()
		if err != nil {
			continue
		}
		files = append(files, File{
			Name:     e.Name(),
			Size:     info.Size(),
			Modified: info.ModTime(),
			Default:  e.Name() == l.defaultName,
		})
	}
	sort.Slice(files, func(i, j int) bool { return files[i].Name < files[j].Name })

	l.mu.Lock()
	l.files = files
	l.mu.Unlock()
	return nil
}

// Files returns the current listing.
func (l *Library) Files() []File {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]File, len(l.files))
	copy(out, l.files)
	return out
}

// Default returns the bundled default file if it is present.
func (l *Library) Default() (File, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, f := range l.files {
		if f.Default {
			return f, true
		}
	}
	return File{}, false
}

// Open loads a listed document by name. Names must be bare file names from
// the listing; anything path-like is rejected.
func (l *Library) Open(name string) (*qbank.Document, error) {
	if name == "" || name != filepath.Base(name) {
		return nil, &qbank.LoadError{Source: name, Err: fmt.Errorf("invalid file name %q", name)}
	}
	l.mu.RLock()
	listed := false
	for _, f := range l.files {
		if f.Name == name {
			listed = true
			break
		}
	}
	l.mu.RUnlock()
	if !listed {
		return nil, &qbank.LoadError{Source: name, Err: os.ErrNotExist}
	}
	return qbank.LoadFile(filepath.Join(l.dir, name))
}
