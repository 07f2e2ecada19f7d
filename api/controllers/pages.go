package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/api/responses"
	"github.com/plaindes/cms-backend/api/validators"
	"github.com/plaindes/cms-backend/internal/pages"
	"github.com/plaindes/cms-backend/pkg/enums"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
	"github.com/plaindes/cms-backend/pkg/logger"
)

type createPageRequest struct {
	Title          string          `json:"title" validate:"required,min=1,max=255"`
	Slug           string          `json:"slug,omitempty"`
	Template       *string         `json:"template,omitempty"`
	ParentID       *uuid.UUID      `json:"parent_id,omitempty"`
	Status         *string         `json:"status,omitempty"`
	SortOrder      *int            `json:"sort_order,omitempty"`
	IsHomepage     *bool           `json:"is_homepage,omitempty"`
	Settings       json.RawMessage `json:"settings,omitempty"`
	SEOTitle       *string         `json:"seo_title,omitempty"`
	SEODescription *string         `json:"seo_description,omitempty"`
	SEOImage       *string         `json:"seo_image,omitempty"`
}

type updatePageRequest struct {
	Title          *string         `json:"title,omitempty"`
	Slug           *string         `json:"slug,omitempty"`
	Template       *string         `json:"template,omitempty"`
	ParentID       *uuid.UUID      `json:"parent_id,omitempty"`
	Status         *string         `json:"status,omitempty"`
	SortOrder      *int            `json:"sort_order,omitempty"`
	IsHomepage     *bool           `json:"is_homepage,omitempty"`
	Settings       json.RawMessage `json:"settings,omitempty"`
	SEOTitle       *string         `json:"seo_title,omitempty"`
	SEODescription *string         `json:"seo_description,omitempty"`
	SEOImage       *string         `json:"seo_image,omitempty"`
}

func parsePageStatus(raw *string) (*enums.PageStatus, error) {
	if raw == nil {
		return nil, nil
	}
	status, err := enums.ParsePageStatus(*raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid page status")
	}
	return &status, nil
}

func PageCreate(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createPageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := parsePageStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreatePage(r.Context(), pages.CreatePageInput{
			Title:          body.Title,
			Slug:           body.Slug,
			Template:       body.Template,
			ParentID:       body.ParentID,
			Status:         status,
			SortOrder:      body.SortOrder,
			IsHomepage:     body.IsHomepage,
			Settings:       body.Settings,
			SEOTitle:       body.SEOTitle,
			SEODescription: body.SEODescription,
			SEOImage:       body.SEOImage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func PageGet(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.GetPage(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func PageList(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		limit, offset, err := validators.ParsePagination(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter := pages.ListFilter{Limit: limit, Offset: offset}

		if raw := r.URL.Query().Get("status"); raw != "" {
			status, perr := enums.ParsePageStatus(raw)
			if perr != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, perr, "invalid page status"))
				return
			}
			filter.Status = &status
		}

		parentID, err := validators.ParseQueryUUID(r, "parent_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		filter.ParentID = parentID

		result, err := svc.ListPages(r.Context(), filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func PageUpdate(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updatePageRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		status, err := parsePageStatus(body.Status)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdatePage(r.Context(), id, pages.UpdatePageInput{
			Title:          body.Title,
			Slug:           body.Slug,
			Template:       body.Template,
			ParentID:       body.ParentID,
			Status:         status,
			SortOrder:      body.SortOrder,
			IsHomepage:     body.IsHomepage,
			Settings:       body.Settings,
			SEOTitle:       body.SEOTitle,
			SEODescription: body.SEODescription,
			SEOImage:       body.SEOImage,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func PageDelete(svc pages.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeletePage(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}
