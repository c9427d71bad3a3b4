package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/stockwatchhq/stockwatch-backend/api/responses"
	"github.com/stockwatchhq/stockwatch-backend/api/validators"
	companysvc "github.com/stockwatchhq/stockwatch-backend/internal/companies"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
)

// CreateCompany handles tenant registration.
func CreateCompany(svc companysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "company service unavailable"))
			return
		}

		var payload createCompanyRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		company, err := svc.CreateCompany(r.Context(), companysvc.CreateCompanyInput{
			Name:  payload.Name,
			Email: payload.Email,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, company)
	}
}

// GetCompany returns a single company.
func GetCompany(svc companysvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "company service unavailable"))
			return
		}

		id, err := validators.ParseURLUUID(chi.URLParam(r, "companyID"), "companyID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		company, err := svc.GetCompany(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, company)
	}
}

type createCompanyRequest struct {
	Name  string  `json:"name" validate:"required"`
	Email *string `json:"email,omitempty" validate:"omitempty,email"`
}
