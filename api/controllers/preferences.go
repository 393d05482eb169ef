package controllers

import (
	"net/http"

	"github.com/dreshoplabs/dreshop-backend/api/middleware"
	"github.com/dreshoplabs/dreshop-backend/api/responses"
	"github.com/dreshoplabs/dreshop-backend/api/validators"
	"github.com/dreshoplabs/dreshop-backend/internal/session"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
)

type preferencesPayload struct {
	Theme         *string `json:"theme" validate:"omitempty,oneof=light dark system"`
	Currency      *string `json:"currency" validate:"omitempty,len=3"`
	Language      *string `json:"language" validate:"omitempty,min=2,max=8"`
	Notifications *bool   `json:"notifications"`
}

// PreferencesGet returns the session's settings.
func PreferencesGet(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		state, err := sessions.Get(ctx, middleware.SessionIDFromContext(ctx))
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"preferences": state.Preferences})
	}
}

// PreferencesUpdate applies a partial settings update; omitted fields keep
// their current values.
func PreferencesUpdate(sessions session.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()

		var payload preferencesPayload
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}

		patch := session.PreferencesPatch{
			Theme:         payload.Theme,
			Currency:      payload.Currency,
			Language:      payload.Language,
			Notifications: payload.Notifications,
		}
		state, err := sessions.UpdatePreferences(ctx, middleware.SessionIDFromContext(ctx), patch)
		if err != nil {
			responses.WriteError(ctx, logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]any{"preferences": state.Preferences})
	}
}
