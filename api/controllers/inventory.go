package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockwatchhq/stockwatch-backend/api/responses"
	"github.com/stockwatchhq/stockwatch-backend/api/validators"
	inventorysvc "github.com/stockwatchhq/stockwatch-backend/internal/inventory"
	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
)

const maxHistoryPageSize = 500

// AdjustInventory applies a signed stock delta with an audit reason.
func AdjustInventory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		productID, err := validators.ParseURLUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		warehouseID, err := validators.ParseURLUUID(chi.URLParam(r, "warehouseID"), "warehouseID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload adjustInventoryRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		reason, err := enums.ParseChangeReason(payload.Reason)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeValidation, "invalid change reason").WithDetails(map[string]any{"reason": payload.Reason}))
			return
		}

		adjustment, err := svc.Adjust(r.Context(), productID, warehouseID, inventorysvc.AdjustInput{
			Delta:     payload.Delta,
			Reason:    reason,
			ChangedBy: payload.ChangedBy,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, adjustment)
	}
}

// ListInventoryHistory returns the audit trail for a (product, warehouse) pair.
func ListInventoryHistory(svc inventorysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "inventory service unavailable"))
			return
		}

		productID, err := validators.ParseURLUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		warehouseID, err := validators.ParseURLUUID(chi.URLParam(r, "warehouseID"), "warehouseID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		limit, err := validators.ParseQueryInt(r, "limit", 100, 1, maxHistoryPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		entries, err := svc.ListHistory(r.Context(), productID, warehouseID, limit)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, entries)
	}
}

type adjustInventoryRequest struct {
	Delta     int     `json:"delta" validate:"required"`
	Reason    string  `json:"reason" validate:"required"`
	ChangedBy *string `json:"changed_by,omitempty"`
}
