package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/stockwatchhq/stockwatch-backend/api/responses"
	"github.com/stockwatchhq/stockwatch-backend/api/validators"
	suppliersvc "github.com/stockwatchhq/stockwatch-backend/internal/suppliers"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
)

// CreateSupplier registers a supplier contact record.
func CreateSupplier(svc suppliersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		var payload createSupplierRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		supplier, err := svc.CreateSupplier(r.Context(), suppliersvc.CreateSupplierInput{
			Name:         payload.Name,
			ContactEmail: payload.ContactEmail,
			ContactPhone: payload.ContactPhone,
			Address:      payload.Address,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, supplier)
	}
}

// LinkSupplierProduct attaches reorder terms between a supplier and a product.
func LinkSupplierProduct(svc suppliersvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "supplier service unavailable"))
			return
		}

		supplierID, err := validators.ParseURLUUID(chi.URLParam(r, "supplierID"), "supplierID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		productID, err := validators.ParseURLUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload linkSupplierProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toLinkInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		link, err := svc.LinkProduct(r.Context(), supplierID, productID, input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, link)
	}
}

type createSupplierRequest struct {
	Name         string  `json:"name" validate:"required"`
	ContactEmail *string `json:"contact_email,omitempty" validate:"omitempty,email"`
	ContactPhone *string `json:"contact_phone,omitempty"`
	Address      *string `json:"address,omitempty"`
}

type linkSupplierProductRequest struct {
	SupplierSKU          *string `json:"supplier_sku,omitempty"`
	LeadTimeDays         int     `json:"lead_time_days" validate:"gte=0"`
	MinimumOrderQuantity int     `json:"minimum_order_quantity" validate:"gte=0"`
	UnitCost             *string `json:"unit_cost,omitempty"`
}

func (p linkSupplierProductRequest) toLinkInput() (suppliersvc.LinkProductInput, error) {
	input := suppliersvc.LinkProductInput{
		SupplierSKU:          p.SupplierSKU,
		LeadTimeDays:         p.LeadTimeDays,
		MinimumOrderQuantity: p.MinimumOrderQuantity,
	}
	if p.UnitCost != nil {
		cost, err := decimal.NewFromString(*p.UnitCost)
		if err != nil {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "unit_cost must be a decimal string").WithDetails(map[string]any{"unit_cost": *p.UnitCost})
		}
		input.UnitCost = &cost
	}
	return input, nil
}
