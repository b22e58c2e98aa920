package middleware

import (
	"net/http"

	"github.com/brightlaunch/academy-cms-backend/api/responses"
	"github.com/brightlaunch/academy-cms-backend/pkg/auth/session"
	pkgerrors "github.com/brightlaunch/academy-cms-backend/pkg/errors"
	"github.com/brightlaunch/academy-cms-backend/pkg/logger"
)

// RequireEditMode rejects mutating content calls unless the session has
// switched edit mode on. Runs after Auth, so claims are already in context.
func RequireEditMode(checker session.EditModeChecker, logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			accessID := AccessIDFromContext(r.Context())
			if accessID == "" {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
				return
			}

			if checker == nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "edit mode checker unavailable"))
				return
			}

			enabled, err := checker.EditMode(r.Context(), accessID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "check edit mode"))
				return
			}
			if !enabled {
				responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeForbidden, "edit mode required"))
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
