package controllers

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/shopspring/decimal"

	"github.com/stockwatchhq/stockwatch-backend/api/responses"
	"github.com/stockwatchhq/stockwatch-backend/api/validators"
	productsvc "github.com/stockwatchhq/stockwatch-backend/internal/products"
	"github.com/stockwatchhq/stockwatch-backend/pkg/enums"
	pkgerrors "github.com/stockwatchhq/stockwatch-backend/pkg/errors"
	"github.com/stockwatchhq/stockwatch-backend/pkg/logger"
)

// CreateProduct handles product creation with its opening stock position.
func CreateProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input, err := payload.toCreateInput()
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

// GetProduct returns a single product.
func GetProduct(svc productsvc.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if svc == nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.New(pkgerrors.CodeInternal, "product service unavailable"))
			return
		}

		id, err := validators.ParseURLUUID(chi.URLParam(r, "productID"), "productID")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

type createProductRequest struct {
	CompanyID         string  `json:"company_id" validate:"required,uuid"`
	WarehouseID       string  `json:"warehouse_id" validate:"required,uuid"`
	SKU               string  `json:"sku" validate:"required"`
	Name              string  `json:"name" validate:"required"`
	Description       *string `json:"description,omitempty"`
	Price             string  `json:"price" validate:"required"`
	ProductType       *string `json:"product_type,omitempty" validate:"omitempty,oneof=standard bundle"`
	InitialQuantity   int     `json:"initial_quantity" validate:"gte=0"`
	LowStockThreshold *int    `json:"low_stock_threshold,omitempty" validate:"omitempty,gte=0"`
	CreatedBy         *string `json:"created_by,omitempty"`
}

func (p createProductRequest) toCreateInput() (productsvc.CreateProductInput, error) {
	var input productsvc.CreateProductInput

	companyID, err := validators.ParseURLUUID(p.CompanyID, "company_id")
	if err != nil {
		return input, err
	}
	warehouseID, err := validators.ParseURLUUID(p.WarehouseID, "warehouse_id")
	if err != nil {
		return input, err
	}

	price, err := decimal.NewFromString(p.Price)
	if err != nil {
		return input, pkgerrors.New(pkgerrors.CodeValidation, "price must be a decimal string").WithDetails(map[string]any{"price": p.Price})
	}

	var productType enums.ProductType
	if p.ProductType != nil {
		parsed, err := enums.ParseProductType(*p.ProductType)
		if err != nil {
			return input, pkgerrors.New(pkgerrors.CodeValidation, "invalid product type").WithDetails(map[string]any{"product_type": *p.ProductType})
		}
		productType = parsed
	}

	input = productsvc.CreateProductInput{
		CompanyID:         companyID,
		WarehouseID:       warehouseID,
		SKU:               p.SKU,
		Name:              p.Name,
		Description:       p.Description,
		Price:             price,
		ProductType:       productType,
		InitialQuantity:   p.InitialQuantity,
		LowStockThreshold: p.LowStockThreshold,
		CreatedBy:         p.CreatedBy,
	}
	return input, nil
}
