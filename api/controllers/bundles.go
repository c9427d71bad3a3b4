package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockwatchhq/stockwatch-backend/api/responses"
	"github.com/stockwatchhq/stockwatch-backend/api/validators"
	bundlesvc "github.com/stockwatchhq/stockwatch-backend/internal/bundles"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
)

// AddBundleComponent attaches a component product to a bundle.
func AddBundleComponent(svc bundlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bundle service unavailable"))
			return
		}

		bundleID, err := validators.ParseURLUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload addBundleComponentRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		componentID, err := validators.ParseURLUUID(payload.ComponentProductID, "component_product_id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		component, err := svc.AddComponent(r.Context(), bundleID, componentID, payload.Quantity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, component)
	}
}

// ListBundleComponents returns the direct components of a bundle.
func ListBundleComponents(svc bundlesvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "bundle service unavailable"))
			return
		}

		bundleID, err := validators.ParseURLUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		components, err := svc.ListComponents(r.Context(), bundleID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, components)
	}
}

type addBundleComponentRequest struct {
	ComponentProductID string `json:"component_product_id" validate:"required,uuid"`
	Quantity           int    `json:"quantity" validate:"required,gt=0"`
}
