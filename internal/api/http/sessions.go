// internal/api/http/sessions.go
package http

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/shibanib/json-question-bank-viewer/internal/session"
)

const sessionCookie = "qbank_session"

// CreateSessionHandler starts a fresh session with an empty selection set.
func CreateSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sess := mgr.Create()
		http.SetCookie(w, &http.Cookie{
			Name:     sessionCookie,
			Value:    sess.ID,
			Path:     "/",
			HttpOnly: true,
			SameSite: http.SameSiteLaxMode,
		})
		writeJSON(w, http.StatusCreated, map[string]string{"session_id": sess.ID})
	}
}

// DeleteSessionHandler discards a session and everything it holds.
func DeleteSessionHandler(mgr *session.Manager) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		mgr.Delete(chi.URLParam(r, "sessionID"))
		w.WriteHeader(http.StatusNoContent)
	}
}
