package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/jewelmandi/jewelmandi-backend/api/responses"
	"github.com/jewelmandi/jewelmandi-backend/api/validators"
	"github.com/jewelmandi/jewelmandi-backend/internal/catalog"
	"github.com/jewelmandi/jewelmandi-backend/internal/tenant"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
	"github.com/jewelmandi/jewelmandi-backend/pkg/logger"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

type createProductRequest struct {
	CategoryID  string   `json:"category_id" validate:"required,uuid"`
	Name        string   `json:"name" validate:"required,min=1,max=200"`
	DesignCode  *string  `json:"design_code,omitempty" validate:"omitempty,max=50"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	MetalType   string   `json:"metal_type" validate:"required"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
}

type updateProductRequest struct {
	CategoryID  *string  `json:"category_id,omitempty" validate:"omitempty,uuid"`
	Name        *string  `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	DesignCode  *string  `json:"design_code,omitempty" validate:"omitempty,max=50"`
	Description *string  `json:"description,omitempty" validate:"omitempty,max=1000"`
	MetalType   *string  `json:"metal_type,omitempty"`
	Images      []string `json:"images,omitempty" validate:"omitempty,dive,url"`
	IsActive    *bool    `json:"is_active,omitempty"`
}

func CreateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		categoryID, err := uuid.Parse(payload.CategoryID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
			return
		}

		metal, err := parseMetalType(payload.MetalType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.CreateProduct(r.Context(), catalog.CreateProductInput{
			TenantID:    id.TenantID,
			CategoryID:  categoryID,
			Name:        payload.Name,
			DesignCode:  payload.DesignCode,
			Description: payload.Description,
			MetalType:   metal,
			Images:      payload.Images,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, product)
	}
}

func GetProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		product, err := svc.GetProduct(r.Context(), id.TenantID, productID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func ListProducts(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := productFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		products, total, err := svc.ListProducts(r.Context(), id.TenantID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, products, int(total))
	}
}

func UpdateProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateProductRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := catalog.UpdateProductInput{
			TenantID:    id.TenantID,
			ProductID:   productID,
			Name:        payload.Name,
			DesignCode:  payload.DesignCode,
			Description: payload.Description,
			Images:      payload.Images,
			IsActive:    payload.IsActive,
		}
		if payload.CategoryID != nil {
			categoryID, err := uuid.Parse(*payload.CategoryID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid category id"))
				return
			}
			input.CategoryID = &categoryID
		}
		if payload.MetalType != nil {
			metal, err := parseMetalType(*payload.MetalType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, err)
				return
			}
			input.MetalType = &metal
		}

		product, err := svc.UpdateProduct(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, product)
	}
}

func DeleteProduct(svc catalog.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.DeactivateProduct(r.Context(), id.TenantID, productID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, http.StatusOK, "product deactivated")
	}
}

func productFilterFromQuery(r *http.Request) (catalog.ProductFilter, error) {
	var filter catalog.ProductFilter

	categoryID, err := validators.ParseQueryUUID(r, "category_id")
	if err != nil {
		return filter, err
	}
	filter.CategoryID = categoryID

	filter.Search = strings.TrimSpace(r.URL.Query().Get("search"))

	activeOnly, err := validators.ParseQueryBool(r, "active")
	if err != nil {
		return filter, err
	}
	filter.ActiveOnly = activeOnly

	limit, err := validators.ParseQueryInt(r, "limit", defaultPageSize, 1, maxPageSize)
	if err != nil {
		return filter, err
	}
	filter.Limit = limit

	offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
	if err != nil {
		return filter, err
	}
	filter.Offset = offset

	return filter, nil
}

func parseMetalType(raw string) (enums.MetalType, error) {
	metal := enums.MetalType(strings.ToLower(strings.TrimSpace(raw)))
	if !metal.IsValid() {
		return "", pkgerrors.New(pkgerrors.CodeValidation, "invalid metal type").WithDetails(map[string]string{"field": "metal_type"})
	}
	return metal, nil
}
