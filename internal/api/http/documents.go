// internal/api/http/documents.go
package http

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/shibanib/json-question-bank-viewer/internal/library"
	"github.com/shibanib/json-question-bank-viewer/internal/qbank"
	"github.com/shibanib/json-question-bank-viewer/internal/session"
	"github.com/shibanib/json-question-bank-viewer/internal/telemetry"
)

const maxUploadBytes = 32 << 20

// AttachResult reports one source's load outcome. Sources are attempted
// independently; one failure never aborts the rest.
type AttachResult struct {
	Source string `json:"source"`
	OK     bool   `json:"ok"`
	Error  string `json:"error,omitempty"`
}

// AttachDocumentsHandler adds documents to a session, either by library
// file name (JSON body {"files": [...]}) or as multipart uploads under the
// "files" field.
func AttachDocumentsHandler(mgr *session.Manager, lib *library.Library, metrics *telemetry.Metrics) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(mgr, w, r)
		if !ok {
			return
		}

		var results []AttachResult
		attach := func(doc *qbank.Document, err error) {
			if err != nil {
				metrics.LoadFailures.Inc()
				src := ""
				if le, isLoad := err.(*qbank.LoadError); isLoad {
					src = le.Source
				}
				results = append(results, AttachResult{Source: src, Error: err.Error()})
				return
			}
			sess.Attach(doc)
			metrics.DocumentsLoaded.Inc()
			results = append(results, AttachResult{Source: doc.Source, OK: true})
		}

		ct := r.Header.Get("Content-Type")
		if strings.HasPrefix(ct, "multipart/form-data") {
			if err := r.ParseMultipartForm(maxUploadBytes); err != nil {
				errorJSON(w, http.StatusBadRequest, "invalid multipart form: "+err.Error())
				return
			}
			uploads := r.MultipartForm.File["files"]
			if len(uploads) == 0 {
				errorJSON(w, http.StatusBadRequest, "no files in upload")
				return
			}
			for _, fh := range uploads {
				f, err := fh.Open()
				if err != nil {
					attach(nil, &qbank.LoadError{Source: fh.Filename, Err: err})
					continue
				}
				data, err := io.ReadAll(f)
				f.Close()
				if err != nil {
					attach(nil, &qbank.LoadError{Source: fh.Filename, Err: err})
					continue
				}
				attach(qbank.LoadBytes(fh.Filename, data))
			}
		} else {
			var req struct {
				Files []string `json:"files"`
			}
			if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
				errorJSON(w, http.StatusBadRequest, "invalid request body: "+err.Error())
				return
			}
			if len(req.Files) == 0 {
				errorJSON(w, http.StatusBadRequest, "no files named")
				return
			}
			for _, name := range req.Files {
				attach(lib.Open(name))
			}
		}

		writeJSON(w, http.StatusOK, map[string]any{"results": results})
	}
}

// ListDocumentsHandler lists the session's attached documents.
func ListDocumentsHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(mgr, w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"documents": sess.Documents()})
	}
}

// DetachDocumentHandler removes one document from the session.
func DetachDocumentHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(mgr, w, r)
		if !ok {
			return
		}
		if !sess.Detach(chi.URLParam(r, "name")) {
			errorJSON(w, http.StatusNotFound, "no such document")
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

// RawDocumentHandler serves a document's original JSON, the raw-structure
// view behind the viewer's expandable raw panel.
func RawDocumentHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(mgr, w, r)
		if !ok {
			return
		}
		raw, found := sess.Raw(chi.URLParam(r, "name"))
		if !found {
			errorJSON(w, http.StatusNotFound, "no such document")
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write(raw)
	}
}

// ObjectivesHandler returns learning objectives grouped per document, in
// document order.
func ObjectivesHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess, ok := requireSession(mgr, w, r)
		if !ok {
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"objectives": sess.Objectives()})
	}
}
