package controllers

import (
	"net/http"

	"github.com/brightlaunch/academy-cms-backend/api/middleware"
	"github.com/brightlaunch/academy-cms-backend/api/responses"
	"github.com/brightlaunch/academy-cms-backend/api/validators"
	"github.com/brightlaunch/academy-cms-backend/internal/auth"
	pkgerrors "github.com/brightlaunch/academy-cms-backend/pkg/errors"
	"github.com/brightlaunch/academy-cms-backend/pkg/logger"
)

// SessionShow returns the authenticated operator, profile, and edit mode flag.
func SessionShow(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		claims := middleware.ClaimsFromContext(r.Context())
		if claims == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session claims"))
			return
		}

		result, err := svc.Session(r.Context(), claims)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// SessionEditMode toggles the per-session edit mode flag.
func SessionEditMode(svc auth.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "auth service unavailable"))
			return
		}

		accessID := middleware.AccessIDFromContext(r.Context())
		if accessID == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "missing session id"))
			return
		}

		var body auth.EditModeRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.SetEditMode(r.Context(), accessID, body.Enabled)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
