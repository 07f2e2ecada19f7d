package controllers

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/api/middleware"
	"github.com/plaindes/cms-backend/api/responses"
	"github.com/plaindes/cms-backend/api/validators"
	"github.com/plaindes/cms-backend/internal/media"
	"github.com/plaindes/cms-backend/pkg/config"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
	"github.com/plaindes/cms-backend/pkg/logger"
)

type updateMediaRequest struct {
	AltText *string         `json:"alt_text,omitempty"`
	Caption *string         `json:"caption,omitempty"`
	Folder  *string         `json:"folder,omitempty"`
	Meta    json.RawMessage `json:"meta,omitempty"`
}

// MediaUpload accepts a multipart form with a `file` part plus optional
// folder, alt_text, and caption fields.
func MediaUpload(svc media.Service, cfg config.MediaConfig, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "media service unavailable"))
			return
		}

		r.Body = http.MaxBytesReader(w, r.Body, cfg.MaxUploadBytes+1024)
		if err := r.ParseMultipartForm(cfg.MaxUploadBytes); err != nil {
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
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "read upload"))
			return
		}

		input := media.UploadInput{
			OriginalName: header.Filename,
			MimeType:     header.Header.Get("Content-Type"),
			Data:         data,
		}

		if folder := strings.TrimSpace(r.FormValue("folder")); folder != "" {
			input.Folder = &folder
		}
		if alt := strings.TrimSpace(r.FormValue("alt_text")); alt != "" {
			input.AltText = &alt
		}
		if caption := strings.TrimSpace(r.FormValue("caption")); caption != "" {
			input.Caption = &caption
		}
		if uploaderID := middleware.UserIDFromContext(r.Context()); uploaderID != uuid.Nil {
			input.UploadedBy = &uploaderID
		}

		result, err := svc.Upload(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func MediaGet(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.GetMedia(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func MediaList(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := media.ListFilter{Limit: limit, Offset: offset}

		if folder := strings.TrimSpace(r.URL.Query().Get("folder")); folder != "" {
			filter.Folder = &folder
		}
		if mimeType := strings.TrimSpace(r.URL.Query().Get("mime_type")); mimeType != "" {
			filter.MimeType = &mimeType
		}

		result, err := svc.ListMedia(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func MediaUpdate(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMediaRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateMedia(r.Context(), id, media.UpdateMediaInput{
			AltText: body.AltText,
			Caption: body.Caption,
			Folder:  body.Folder,
			Meta:    body.Meta,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func MediaDelete(svc media.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteMedia(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}
