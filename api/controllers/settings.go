package controllers

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/api/responses"
	"github.com/plaindes/cms-backend/api/validators"
	"github.com/plaindes/cms-backend/internal/settings"
	"github.com/plaindes/cms-backend/pkg/logger"
)

type updateSettingsRequest struct {
	HeaderLogoID *uuid.UUID      `json:"header_logo_id,omitempty"`
	FaviconID    *uuid.UUID      `json:"favicon_id,omitempty"`
	Meta         json.RawMessage `json:"meta,omitempty"`
}

func SettingsGet(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.GetSettings(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}

func SettingsUpdate(svc settings.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var body updateSettingsRequest
		if err := validators.DecodeJSONBody(r, &body); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		result, err := svc.UpdateSettings(r.Context(), settings.UpdateSettingsInput{
			HeaderLogoID: body.HeaderLogoID,
			FaviconID:    body.FaviconID,
			Meta:         body.Meta,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
