package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/plaindes/cms-backend/api/responses"
	"github.com/plaindes/cms-backend/internal/landing"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
	"github.com/plaindes/cms-backend/pkg/logger"
)

// Landing resolves the public landing payload: site settings, visible menus,
// and the published homepage with its visible sections.
func Landing(svc landing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.ResolveLanding(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

// PublicPage resolves a published page by slug for the public site.
func PublicPage(svc landing.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		slug := chi.URLParam(r, "slug")
		if slug == "" {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "slug is required"))
			return
		}

		result, err := svc.ResolvePage(r.Context(), slug)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
