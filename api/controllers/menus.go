package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/api/responses"
	"github.com/plaindes/cms-backend/api/validators"
	"github.com/plaindes/cms-backend/internal/menus"
	"github.com/plaindes/cms-backend/pkg/enums"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
	"github.com/plaindes/cms-backend/pkg/logger"
)

type createMenuRequest struct {
	Name  string `json:"name" validate:"required,min=1,max=100"`
	Label string `json:"label,omitempty"`
}

type updateMenuRequest struct {
	Name  *string `json:"name,omitempty"`
	Label *string `json:"label,omitempty"`
}

type createMenuItemRequest struct {
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Title     string     `json:"title" validate:"required,min=1,max=255"`
	URL       *string    `json:"url,omitempty"`
	PageID    *uuid.UUID `json:"page_id,omitempty"`
	Target    *string    `json:"target,omitempty"`
	Icon      *string    `json:"icon,omitempty"`
	SortOrder *int       `json:"sort_order,omitempty"`
	IsVisible *bool      `json:"is_visible,omitempty"`
}

type updateMenuItemRequest struct {
	ParentID  *uuid.UUID `json:"parent_id,omitempty"`
	Title     *string    `json:"title,omitempty"`
	URL       *string    `json:"url,omitempty"`
	PageID    *uuid.UUID `json:"page_id,omitempty"`
	Target    *string    `json:"target,omitempty"`
	Icon      *string    `json:"icon,omitempty"`
	SortOrder *int       `json:"sort_order,omitempty"`
	IsVisible *bool      `json:"is_visible,omitempty"`
}

func parseMenuTarget(raw *string) (*enums.MenuTarget, error) {
	if raw == nil {
		return nil, nil
	}
	target, err := enums.ParseMenuTarget(*raw)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid menu target")
	}
	return &target, nil
}

func MenuCreate(svc menus.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body createMenuRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateMenu(r.Context(), menus.CreateMenuInput{
			Name:  body.Name,
			Label: body.Label,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, result)
	}
}

func MenuGet(svc menus.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.GetMenu(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func MenuList(svc menus.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.ListMenus(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func MenuUpdate(svc menus.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMenuRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateMenu(r.Context(), id, menus.UpdateMenuInput{
			Name:  body.Name,
			Label: body.Label,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func MenuDelete(svc menus.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteMenu(r.Context(), id); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}

func MenuItemCreate(svc menus.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		menuID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body createMenuItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		target, err := parseMenuTarget(body.Target)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.CreateItem(r.Context(), menuID, menus.CreateMenuItemInput{
			ParentID:  body.ParentID,
			Title:     body.Title,
			URL:       body.URL,
			PageID:    body.PageID,
			Target:    target,
			Icon:      body.Icon,
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

func MenuItemUpdate(svc menus.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "itemID"), "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var body updateMenuItemRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		target, err := parseMenuTarget(body.Target)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateItem(r.Context(), itemID, menus.UpdateMenuItemInput{
			ParentID:  body.ParentID,
			Title:     body.Title,
			URL:       body.URL,
			PageID:    body.PageID,
			Target:    target,
			Icon:      body.Icon,
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

func MenuItemDelete(svc menus.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		itemID, err := validators.ParsePathUUID(chi.URLParam(r, "itemID"), "itemID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeleteItem(r.Context(), itemID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteNoContent(w)
	}
}
