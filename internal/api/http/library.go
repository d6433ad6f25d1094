// internal/api/http/library.go
package http

import (
	"net/http"

	"github.com/shibanib/json-question-bank-viewer/internal/library"
)

// ListLibraryHandler lists the JSON files discovered in the data directory.
func ListLibraryHandler(lib *library.Library) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"dir":   lib.Dir(),
			"files": lib.Files(),
		})
	}
}
