package middleware

import (
	"net/http"
	"strings"

	"github.com/dreshoplabs/dreshop-backend/api/responses"
	"github.com/dreshoplabs/dreshop-backend/pkg/auth/session"
	pkgerrors "github.com/dreshoplabs/dreshop-backend/pkg/errors"
	"github.com/dreshoplabs/dreshop-backend/pkg/logger"
)

const sessionTokenHeader = "X-Session-Token"

// Session resolves the guest session for a request. A valid token on the
// request keeps its session id; a missing or invalid token mints a fresh
// session and returns the new token in the response header. Handlers always
// see a session id in the context.
func Session(manager *session.Manager, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			sessionID := ""
			if token := strings.TrimSpace(r.Header.Get(sessionTokenHeader)); token != "" {
				id, err := manager.Parse(token)
				if err == nil {
					sessionID = id
				} else if logg != nil {
					logg.Warn(logg.WithField(ctx, "reason", err.Error()), "session token rejected, minting a new session")
				}
			}

			if sessionID == "" {
				sessionID = manager.NewSessionID()
				token, err := manager.Issue(sessionID)
				if err != nil {
					responses.WriteError(ctx, logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "issue session token"))
					return
				}
				w.Header().Set(sessionTokenHeader, token)
			}

			ctx = WithSessionID(ctx, sessionID)
			if logg != nil {
				ctx = logg.WithSessionID(ctx, sessionID)
			}
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
