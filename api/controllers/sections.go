package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/api/responses"
	"github.com/plaindes/cms-backend/api/validators"
	"github.com/plaindes/cms-backend/internal/sections"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
	"github.com/plaindes/cms-backend/pkg/logger"
)

type createSectionRequest struct {
	PageID    uuid.UUID `json:"page_id" validate:"required"`
	Name      string    `json:"name" validate:"required,min=1,max=255"`
	Component string    `json:"component" validate:"required,min=1,max=255"`
	SortOrder *int      `json:"sort_order,omitempty"`
	IsVisible *bool     `json:"is_visible,omitempty"`
}

type updateSectionRequest struct {
	Name      *string `json:"name,omitempty"`
	Component *string `json:"component,omitempty"`
	SortOrder *int    `json:"sort_order,omitempty"`
	IsVisible *bool   `json:"is_visible,omitempty"`
}

type attachContentRequest struct {
	ContentID uuid.UUID `json:"content_id" validate:"required"`
	SortOrder *int      `json:"sort_order,omitempty"`
	IsVisible *bool     `json:"is_visible,omitempty"`
}

type reorderContentsRequest struct {
	ContentIDs []uuid.UUID `json:"content_ids" validate:"required,min=1"`
}

func SectionCreate(svc sections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createSectionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateSection(r.Context(), sections.CreateSectionInput{
			PageID:    body.PageID,
			Name:      body.Name,
			Component: body.Component,
			SortOrder: body.SortOrder,
			IsVisible: body.IsVisible,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func SectionGet(svc sections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ResolveForEditing(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// SectionListByPage returns the sections of a page, drafts and hidden
// placements included, for the editing surface.
func SectionListByPage(svc sections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		pageID, err := validators.ParseQueryUUID(r, "page_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		if pageID == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "page_id query parameter is required"))
			return
		}

		result, err := svc.ListByPage(r.Context(), *pageID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func SectionUpdate(svc sections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateSectionRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateSection(r.Context(), id, sections.UpdateSectionInput{
			Name:      body.Name,
			Component: body.Component,
			SortOrder: body.SortOrder,
			IsVisible: body.IsVisible,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func SectionDelete(svc sections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteSection(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}

func SectionAttachContent(svc sections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body attachContentRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.AttachContent(r.Context(), sectionID, sections.AttachContentInput{
			ContentID: body.ContentID,
			SortOrder: body.SortOrder,
			IsVisible: body.IsVisible,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func SectionDetachContent(svc sections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		contentID, err := validators.ParsePathUUID(chi.URLParam(r, "contentID"), "contentID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DetachContent(r.Context(), sectionID, contentID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}

func SectionReorderContents(svc sections.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		sectionID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body reorderContentsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.ReorderContents(r.Context(), sectionID, body.ContentIDs)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
