// internal/api/http/helpers.go
package http

import (
	"encoding/json"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"

	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
	"github.com/shibanib/json-question-bank-viewer/internal/session"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func errorJSON(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// requireSession resolves the {sessionID} path parameter. A miss writes the
// 404 itself; callers just return on ok=false.
func requireSession(mgr *session.Manager, w http.ResponseWriter, r *http.Request) (*session.Session, bool) {
	id := chi.URLParam(r, "sessionID")
	sess, ok := mgr.Get(id)
	if !ok {
		errorJSON(w, http.StatusNotFound, "unknown session")
		return nil, false
	}
	return sess, true
}

// criteriaFromQuery builds filter criteria from URL query parameters:
// repeated per-column values (e.g. ?difficulty=easy&difficulty=hard),
// repeated ?tag= values, and ?q= for the text search.
func criteriaFromQuery(q url.Values) qbank.Criteria {
	c := qbank.Criteria{Search: q.Get("q")}
	for _, col := range qbank.FilterColumns {
		if vals := q[col]; len(vals) > 0 {
			if c.Columns == nil {
				c.Columns = map[string][]string{}
			}
			c.Columns[col] = vals
		}
	}
	c.Tags = q["tag"]
	return c
}
