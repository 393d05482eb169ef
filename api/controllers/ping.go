package controllers

import (
	"net/http"

	"github.com/dreshoplabs/dreshop-backend/api/middleware"
	"github.com/dreshoplabs/dreshop-backend/api/responses"
)

func PublicPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		responses.WriteSuccess(w, map[string]string{"scope": "public", "status": "ok"})
	}
}

func SessionPing() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"scope": "session", "status": "ok"}
		if sessionID := middleware.SessionIDFromContext(r.Context()); sessionID != "" {
			payload["session_id"] = sessionID
		}
		responses.WriteSuccess(w, payload)
	}
}
