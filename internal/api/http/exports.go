// internal/api/http/exports.go
package http

import (
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shibanib/json-question-bank-viewer/internal/export"
	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
	"github.com/shibanib/json-question-bank-viewer/internal/session"
	"github.com/shibanib/json-question-bank-viewer/internal/telemetry"
)

// ExportHandler serves the filtered or selected record set as a download.
// {format} is csv, markdown, or xlsx; ?scope=filtered (default) or
// selected; filter criteria ride in the query string the way
// criteriaFromQuery reads them.
func ExportHandler(mgr *session.Manager, metrics *telemetry.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(mgr, w, r)
		if !ok {
			return
		}

		scope := r.URL.Query().Get("scope")
		if scope == "" {
			scope = "filtered"
		}
		var table *qbank.Table
		var title string
		switch scope {
		case "filtered":
			table = sess.Query(criteriaFromQuery(r.URL.Query())).Table
			title = "Filtered Questions"
		case "selected":
			table = sess.SelectedTable()
			title = "Selected Questions"
		default:
			errorJSON(w, http.StatusBadRequest, "scope must be filtered or selected")
			return
		}

		var (
			body        []byte
			contentType string
			ext         string
			err         error
		)
		switch format := chi.URLParam(r, "format"); format {
		case "csv":
			body, err = export.CSV(table)
			contentType = "text/csv; charset=utf-8"
			ext = "csv"
		case "markdown":
			body = []byte(export.Markdown(title, table, sess.MultiSource()))
			contentType = "text/markdown; charset=utf-8"
			ext = "md"
		case "xlsx":
			body, err = export.XLSX(table)
			contentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
			ext = "xlsx"
		default:
			errorJSON(w, http.StatusNotFound, "unknown export format")
			return
		}
		if err != nil {
			errorJSON(w, http.StatusInternalServerError, "export failed: "+err.Error())
			return
		}

		metrics.Exports.WithLabelValues(ext).Inc()
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition",
			fmt.Sprintf("attachment; filename=question_bank_%s.%s", scope, ext))
		_, _ = w.Write(body)
	}
}
