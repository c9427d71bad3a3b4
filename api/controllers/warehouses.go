package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockwatchhq/stockwatch-backend/api/responses"
	"github.com/stockwatchhq/stockwatch-backend/api/validators"
	warehousesvc "github.com/stockwatchhq/stockwatch-backend/internal/warehouses"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
)

// CreateWarehouse registers a warehouse under a company.
func CreateWarehouse(svc warehousesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "warehouse service unavailable"))
			return
		}

		companyID, err := validators.ParseURLUUID(chi.URLParam(r, "companyID"), "companyID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createWarehouseRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		warehouse, err := svc.CreateWarehouse(r.Context(), companyID, warehousesvc.CreateWarehouseInput{
			Name:     payload.Name,
			Location: payload.Location,
			Capacity: payload.Capacity,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, warehouse)
	}
}

// ListWarehouses returns all warehouses for a company.
func ListWarehouses(svc warehousesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "warehouse service unavailable"))
			return
		}

		companyID, err := validators.ParseURLUUID(chi.URLParam(r, "companyID"), "companyID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		warehouses, err := svc.ListWarehouses(r.Context(), companyID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, warehouses)
	}
}

type createWarehouseRequest struct {
	Name     string  `json:"name" validate:"required"`
	Location *string `json:"location,omitempty"`
	Capacity *int    `json:"capacity,omitempty" validate:"omitempty,gte=0"`
}
