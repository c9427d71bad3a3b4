package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockwatchhq/stockwatch-backend/api/responses"
	"github.com/stockwatchhq/stockwatch-backend/api/validators"
	alertsvc "github.com/stockwatchhq/stockwatch-backend/internal/alerts"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
)

const maxSalesWindowDays = 365

// GetLowStockAlerts returns the company-wide low-stock report.
func GetLowStockAlerts(svc alertsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "alert service unavailable"))
			return
		}

		companyID, err := validators.ParseURLUUID(chi.URLParam(r, "companyID"), "companyID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		windowDays, err := validators.ParseQueryInt(r, "sales_window_days", 0, 1, maxSalesWindowDays)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		urgentRatio, err := validators.ParseQueryFloat(r, "severity_urgent_ratio", 0, 0.01, 0.99)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		includeNoSales, err := validators.ParseQueryBool(r, "include_no_sales", false)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		opts := alertsvc.ReportOptions{
			WindowDays:     windowDays,
			UrgentRatio:    urgentRatio,
			IncludeNoSales: includeNoSales,
		}
		if raw := r.URL.Query().Get("threshold_override_pct"); raw != "" {
			pct, err := validators.ParseQueryFloat(r, "threshold_override_pct", 0, 0, 100)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			opts.ThresholdOverridePct = &pct
		}

		report, err := svc.GetLowStockReport(r.Context(), companyID, opts)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, report)
	}
}
