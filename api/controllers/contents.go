package controllers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/api/responses"
	"github.com/plaindes/cms-backend/api/validators"
	"github.com/plaindes/cms-backend/internal/contents"
	"github.com/plaindes/cms-backend/pkg/enums"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
	"github.com/plaindes/cms-backend/pkg/logger"
)

type createContentRequest struct {
	Slug   string          `json:"slug" validate:"required,min=1,max=255"`
	Data   json.RawMessage `json:"data" validate:"required"`
	Status *string         `json:"status,omitempty"`
	PageID *uuid.UUID      `json:"page_id,omitempty"`
}

type updateContentRequest struct {
	Slug   *string         `json:"slug,omitempty"`
	Data   json.RawMessage `json:"data,omitempty"`
	Status *string         `json:"status,omitempty"`
	PageID *uuid.UUID      `json:"page_id,omitempty"`
}

func parseContentStatus(raw *string) (*enums.ContentStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := enums.ParseContentStatus(*raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid content status")
	}
	return &status, nil
}

func ContentCreate(svc contents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createContentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := parseContentStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateContent(r.Context(), contents.CreateContentInput{
			Slug:   body.Slug,
			Data:   body.Data,
			Status: status,
			PageID: body.PageID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func ContentGet(svc contents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.GetContent(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func ContentList(svc contents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := contents.ListFilter{Limit: limit, Offset: offset}

		if raw := r.URL.Query().Get("status"); raw != "" {
			status, perr := enums.ParseContentStatus(raw)
			if perr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, perr, "invalid content status"))
				return
			}
			filter.Status = &status
		}

		if raw := strings.TrimSpace(r.URL.Query().Get("slug")); raw != "" {
			filter.Slug = &raw
		}

		pageID, err := validators.ParseQueryUUID(r, "page_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.PageID = pageID

		result, err := svc.ListContents(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func ContentUpdate(svc contents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateContentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := parseContentStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateContent(r.Context(), id, contents.UpdateContentInput{
			Slug:   body.Slug,
			Data:   body.Data,
			Status: status,
			PageID: body.PageID,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func ContentDelete(svc contents.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteContent(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}
