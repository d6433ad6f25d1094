package session

import (
	"sync"
	"time"

	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
)

// KeySeparator joins question_id and source into a composite selection key
// when more than one document is active.
const KeySeparator = "::"

// Session holds everything scoped to one interactive user: the loaded
// documents, their flattened tables, and the selection set. Sessions are
// fully isolated from each other; all methods are safe for concurrent use.
type Session struct {
	ID string

	mu        sync.Mutex
	createdAt time.Time
	lastSeen  time.Time
	docs      []*qbank.Document
	tables    map[string]*qbank.Table
	flat      map[string]string // source -> flatten failure, if any
	selected  map[string]struct{}
}

// DocumentInfo describes one attached document for listings.
type DocumentInfo struct {
	Source  string `json:"source"`
	Path    string `json:"path,omitempty"`
	Records int    `json:"records"`
	Tabular bool   `json:"tabular"`
	Error   string `json:"error,omitempty"`
}

// DocumentObjectives groups a document's learning objectives under its
// source label.
type DocumentObjectives struct {
	Source  string                   `json:"source"`
	Modules []qbank.ModuleObjectives `json:"modules"`
}

// QueryResult is one evaluation of the filter pipeline: the visible subset,
// its selection keys and flags, and the facets for the filter panel.
type QueryResult struct {
	Table         *qbank.Table
	Keys          []string
	Selected      []bool
	Facets        map[string][]string
	Total         int
	SelectedCount int
}

func newSession(id string) *Session {
	now := time.Now()
	return &Session{
		ID:        id,
		createdAt: now,
		lastSeen:  now,
		tables:    map[string]*qbank.Table{},
		flat:      map[string]string{},
		selected:  map[string]struct{}{},
	}
}

// Attach adds a loaded document to the session and flattens it. A document
// whose shape yields no table is still attached (its raw view remains
// available); the flatten failure is recorded instead. Re-attaching a
// source replaces the previous document of that name.
func (s *Session) Attach(doc *qbank.Document) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.detachLocked(doc.Source)
	s.docs = append(s.docs, doc)
	table, err := qbank.Flatten(doc.Root)
	if err != nil {
		s.flat[doc.Source] = err.Error()
		return
	}
	s.tables[doc.Source] = table
}

// Detach removes a document by source label. Selection keys referring to it
// become unreachable but are left in place; they are harmless.
func (s *Session) Detach(source string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.detachLocked(source)
}

func (s *Session) detachLocked(source string) bool {
	for i, d := range s.docs {
		if d.Source == source {
			s.docs = append(s.docs[:i], s.docs[i+1:]...)
			delete(s.tables, source)
			delete(s.flat, source)
			return true
		}
	}
	return false
}

// Documents lists the attached documents in attach order.
func (s *Session) Documents() []DocumentInfo {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]DocumentInfo, 0, len(s.docs))
	for _, d := range s.docs {
		info := DocumentInfo{Source: d.Source, Path: d.Path}
		if t, ok := s.tables[d.Source]; ok {
			info.Tabular = true
			info.Records = len(t.Records)
		} else {
			info.Error = s.flat[d.Source]
		}
		out = append(out, info)
	}
	return out
}

// Raw returns a document's original JSON bytes.
func (s *Session) Raw(source string) ([]byte, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, d := range s.docs {
		if d.Source == source {
			return d.Raw, true
		}
	}
	return nil, false
}

// Objectives collects learning objectives per document, in attach order.
func (s *Session) Objectives() []DocumentObjectives {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []DocumentObjectives
	for _, d := range s.docs {
		if modules := d.LearningObjectives(); len(modules) > 0 {
			out = append(out, DocumentObjectives{Source: d.Source, Modules: modules})
		}
	}
	return out
}

// MultiSource reports whether selection keys are composite.
func (s *Session) MultiSource() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.docs) > 1
}

// Merged returns the combined working table across all attached documents.
func (s *Session) Merged() *qbank.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.mergedLocked()
}

func (s *Session) mergedLocked() *qbank.Table {
	parts := make([]qbank.DocumentTable, 0, len(s.docs))
	for _, d := range s.docs {
		if t, ok := s.tables[d.Source]; ok {
			parts = append(parts, qbank.DocumentTable{Source: d.Source, Table: t})
		}
	}
	return qbank.Merge(parts)
}

// keyLocked derives the selection key for a record. Records without a
// question_id are not selectable and yield "".
func (s *Session) keyLocked(rec qbank.Record) string {
	id, ok := rec["question_id"]
	if !ok {
		return ""
	}
	qid := qbank.CoerceString(id)
	if qid == "" {
		return ""
	}
	if len(s.docs) > 1 {
		return qid + KeySeparator + qbank.CoerceString(rec[qbank.SourceColumn])
	}
	return qid
}

// Query runs the filter pipeline and reports the visible subset together
// with its selection state and facets.
func (s *Session) Query(c qbank.Criteria) QueryResult {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := s.mergedLocked()
	view := qbank.Apply(merged, c)
	res := QueryResult{
		Table:         view,
		Facets:        qbank.Facets(merged),
		Total:         len(merged.Records),
		SelectedCount: len(s.selected),
	}
	for _, rec := range view.Records {
		key := s.keyLocked(rec)
		res.Keys = append(res.Keys, key)
		_, sel := s.selected[key]
		res.Selected = append(res.Selected, key != "" && sel)
	}
	return res
}

// SelectVisible unions the keys of the currently filtered records into the
// selection set and returns the new selection size.
func (s *Session) SelectVisible(c qbank.Criteria) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range qbank.Apply(s.mergedLocked(), c).Records {
		if key := s.keyLocked(rec); key != "" {
			s.selected[key] = struct{}{}
		}
	}
	return len(s.selected)
}

// ClearVisible removes exactly the currently filtered records' keys from the
// selection set, leaving selections outside the filter untouched.
func (s *Session) ClearVisible(c qbank.Criteria) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, rec := range qbank.Apply(s.mergedLocked(), c).Records {
		if key := s.keyLocked(rec); key != "" {
			delete(s.selected, key)
		}
	}
	return len(s.selected)
}

// ClearAll empties the selection set unconditionally.
func (s *Session) ClearAll() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.selected = map[string]struct{}{}
	return 0
}

// Toggle flips one record's membership in the selection set and returns the
// new selection size.
func (s *Session) Toggle(key string) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	if key != "" {
		if _, ok := s.selected[key]; ok {
			delete(s.selected, key)
		} else {
			s.selected[key] = struct{}{}
		}
	}
	return len(s.selected)
}

// SelectedCount returns the selection set's size.
func (s *Session) SelectedCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.selected)
}

// SelectedTable returns the subset of the merged table whose records are in
// the selection set, in working-set order.
func (s *Session) SelectedTable() *qbank.Table {
	s.mu.Lock()
	defer s.mu.Unlock()
	merged := s.mergedLocked()
	out := &qbank.Table{Columns: merged.Columns}
	for _, rec := range merged.Records {
		key := s.keyLocked(rec)
		if key == "" {
			continue
		}
		if _, ok := s.selected[key]; ok {
			out.Records = append(out.Records, rec)
		}
	}
	return out
}

func (s *Session) touch() {
	s.mu.Lock()
	s.lastSeen = time.Now()
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}
