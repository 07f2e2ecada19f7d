package controllers

import (
	"net/http"

	"github.com/plaindes/cms-backend/api/responses"
	"github.com/plaindes/cms-backend/internal/dashboard"
	"github.com/plaindes/cms-backend/pkg/logger"
)

func DashboardStats(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		result, err := svc.Stats(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, result)
	}
}
