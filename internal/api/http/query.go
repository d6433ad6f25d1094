// internal/api/http/query.go
package http

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
	"github.com/shibanib/json-question-bank-viewer/internal/session"
)

// RowView is one visible record with its selection state.
type RowView struct {
	Key      string       `json:"key,omitempty"`
	Selected bool         `json:"selected"`
	Values   qbank.Record `json:"values"`
}

// QueryResponse is the full table state for one filter evaluation.
type QueryResponse struct {
	Columns       []string            `json:"columns"`
	Rows          []RowView           `json:"rows"`
	Total         int                 `json:"total"`
	Matched       int                 `json:"matched"`
	SelectedCount int                 `json:"selected_count"`
	MultiSource   bool                `json:"multi_source"`
	Facets        map[string][]string `json:"facets"`
}

// QueryHandler evaluates the filter pipeline over the session's working
// set. The body is a Criteria object; an empty body shows everything.
func QueryHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(mgr, w, r)
		if !ok {
			return
		}
		var criteria qbank.Criteria
		if err := json.NewDecoder(r.Body).Decode(&criteria); err != nil && !errors.Is(err, io.EOF) {
			errorJSON(w, http.StatusBadRequest, "invalid criteria: "+err.Error())
			return
		}
		res := sess.Query(criteria)
		resp := QueryResponse{
			Columns:       res.Table.Columns,
			Rows:          make([]RowView, 0, len(res.Table.Records)),
			Total:         res.Total,
			Matched:       len(res.Table.Records),
			SelectedCount: res.SelectedCount,
			MultiSource:   sess.MultiSource(),
			Facets:        res.Facets,
		}
		for i, rec := range res.Table.Records {
			resp.Rows = append(resp.Rows, RowView{
				Key:      res.Keys[i],
				Selected: res.Selected[i],
				Values:   rec,
			})
		}
		writeJSON(w, http.StatusOK, resp)
	}
}
