package controllers

import (
	"io"
	"net/http"
	"strings"

	"github.com/brightlaunch/academy-cms-backend/api/middleware"
	"github.com/brightlaunch/academy-cms-backend/api/responses"
	"github.com/brightlaunch/academy-cms-backend/internal/media"
	pkgerrors "github.com/brightlaunch/academy-cms-backend/pkg/errors"
	"github.com/brightlaunch/academy-cms-backend/pkg/logger"
	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
)

const multipartMemoryLimit = 32 << 20

// MediaUpload accepts a multipart form with a "file" part and an optional
// "folder" field, stores the object, and returns its public descriptor.
func MediaUpload(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		operatorID := middleware.OperatorIDFromContext(r.Context())
		if operatorID == uuid.Nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeUnauthorized, "operator context missing"))
			return
		}

		if err := r.ParseMultipartForm(multipartMemoryLimit); err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid multipart form"))
			return
		}

		file, header, err := r.FormFile("file")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "file part is required"))
			return
		}
		defer file.Close()

		data, err := io.ReadAll(file)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "reading upload"))
			return
		}

		contentType := header.Header.Get("Content-Type")
		if contentType == "" {
			contentType = http.DetectContentType(data)
		}

		input := media.UploadInput{
			FileName:    header.Filename,
			Folder:      strings.TrimSpace(r.FormValue("folder")),
			ContentType: contentType,
			Data:        data,
		}

		result, err := svc.Upload(r.Context(), operatorID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

// MediaDelete removes an uploaded asset. The public id is the wildcard path
// remainder since it contains the folder segment.
func MediaDelete(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		publicID := chi.URLParam(r, "*")
		if err := svc.Delete(r.Context(), publicID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		responses.WriteSuccess(w, map[string]string{"status": "deleted"})
	}
}

// MediaResolveURL maps a public id to its serving URL.
func MediaResolveURL(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		publicID := chi.URLParam(r, "*")
		url := svc.ResolveURL(publicID)
		if url == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeNotFound, "media asset not found"))
			return
		}
		responses.WriteSuccess(w, map[string]string{"public_id": publicID, "url": url})
	}
}
