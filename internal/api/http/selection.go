// internal/api/http/selection.go
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
	"github.com/shibanib/json-question-bank-viewer/internal/session"
)

// SelectionHandler mutates the session's selection set. The {op} path
// parameter picks the operation:
//
//	select-visible  add every currently filtered record's key
//	clear-visible   remove exactly the currently filtered records' keys
//	clear-all       empty the set
//	toggle          flip one key (from the body)
//
// The body carries the current criteria for the visible ops and the key for
// toggle.
func SelectionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(mgr, w, r)
		if !ok {
			return
		}
		var req struct {
			Criteria qbank.Criteria `json:"criteria"`
			Key      string         `json:"key"`
		}
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil && !errors.Is(err, io.EOF) {
			errorJSON(w, http.StatusBadRequest, "invalid request body: "+err.Error())
			return
		}

		var count int
		switch chi.URLParam(r, "op") {
		case "select-visible":
			count = sess.SelectVisible(req.Criteria)
		case "clear-visible":
			count = sess.ClearVisible(req.Criteria)
		case "clear-all":
			count = sess.ClearAll()
		case "toggle":
			if req.Key == "" {
				errorJSON(w, http.StatusBadRequest, "toggle requires a key")
				return
			}
			count = sess.Toggle(req.Key)
		default:
			errorJSON(w, http.StatusNotFound, "unknown selection operation")
			return
		}
		writeJSON(w, http.StatusOK, map[string]int{"selected_count": count})
	}
}
