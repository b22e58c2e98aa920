package controllers

import (
	"net/http"

	"github.com/brightlaunch/academy-cms-backend/api/responses"
	"github.com/brightlaunch/academy-cms-backend/api/validators"
	"github.com/brightlaunch/academy-cms-backend/internal/editor"
	pkgerrors "github.com/brightlaunch/academy-cms-backend/pkg/errors"
	"github.com/brightlaunch/academy-cms-backend/pkg/logger"
	"github.com/brightlaunch/academy-cms-backend/pkg/reorder"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const contentPayloadMaxBytes = 1 << 20

type orderAssignment struct {
	ID    uuid.UUID `json:"id" validate:"required"`
	Order int       `json:"order" validate:"required,min=1"`
}

type orderRequest struct {
	Orders []orderAssignment `json:"orders" validate:"required,min=1,dive"`
}

type reorderRequest struct {
	SourceIndex int `json:"source_index" validate:"min=0"`
	TargetSlot  int `json:"target_slot" validate:"required,min=1"`
}

func resolveCollection(reg *editor.Registry, r *http.Request) (editor.Collection, error) {
	if reg == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "content registry unavailable")
	}
	return reg.Get(chi.URLParam(r, "contentType"))
}

func recordID(r *http.Request) (uuid.UUID, error) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		return uuid.Nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid record id")
	}
	return id, nil
}

// ContentTypes lists the registered content types and their field schemas,
// which the admin frontend uses to render edit forms.
func ContentTypes(reg *editor.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if reg == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "content registry unavailable"))
			return
		}
		responses.WriteSuccess(w, map[string]any{"schemas": reg.Schemas()})
	}
}

// ContentListPublic serves the visible records of a collection for the
// public site. No auth, hidden records excluded.
func ContentListPublic(reg *editor.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coll, err := resolveCollection(reg, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := coll.ListVisible(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// ContentList serves every record of a collection, hidden ones included.
func ContentList(reg *editor.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coll, err := resolveCollection(reg, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := coll.List(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// ContentCreate appends a record and returns the refreshed collection.
func ContentCreate(reg *editor.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coll, err := resolveCollection(reg, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := validators.RawJSONBody(r, contentPayloadMaxBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := coll.Create(r.Context(), payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, records)
	}
}

// ContentUpdate applies a partial payload to one record and returns the
// refreshed collection.
func ContentUpdate(reg *editor.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coll, err := resolveCollection(reg, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := recordID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		payload, err := validators.RawJSONBody(r, contentPayloadMaxBytes)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := coll.Update(r.Context(), id, payload)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// ContentDelete removes a record. Remaining orders keep their gap until the
// next reorder.
func ContentDelete(reg *editor.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coll, err := resolveCollection(reg, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		id, err := recordID(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := coll.Delete(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// ContentOrder persists an explicit order assignment batch.
func ContentOrder(reg *editor.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coll, err := resolveCollection(reg, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body orderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		assignments := make([]reorder.Assignment, 0, len(body.Orders))
		for _, o := range body.Orders {
			assignments = append(assignments, reorder.Assignment{ID: o.ID, Order: o.Order})
		}

		records, err := coll.UpdateOrder(r.Context(), assignments)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}

// ContentReorder applies a drag gesture: the record at source_index (zero
// based) moves to display slot target_slot (one based) and the visible
// collection is renumbered.
func ContentReorder(reg *editor.Registry, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		coll, err := resolveCollection(reg, r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body reorderRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		records, err := coll.Reorder(r.Context(), body.SourceIndex, body.TargetSlot)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, records)
	}
}
