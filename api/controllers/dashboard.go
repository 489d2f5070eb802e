package controllers

import (
	"net/http"

	"github.com/jewelmandi/jewelmandi-backend/api/responses"
	"github.com/jewelmandi/jewelmandi-backend/internal/dashboard"
	"github.com/jewelmandi/jewelmandi-backend/internal/tenant"
	"github.com/jewelmandi/jewelmandi-backend/pkg/logger"
)

func Dashboard(svc dashboard.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		summary, err := svc.Summary(r.Context(), id.TenantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, summary)
	}
}
