package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jewelmandi/jewelmandi-backend/api/responses"
	"github.com/jewelmandi/jewelmandi-backend/api/validators"
	"github.com/jewelmandi/jewelmandi-backend/internal/tenant"
	"github.com/jewelmandi/jewelmandi-backend/internal/variants"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
	"github.com/jewelmandi/jewelmandi-backend/pkg/logger"
)

type createVariantRequest struct {
	ProductID         string           `json:"product_id" validate:"required,uuid"`
	SKU               string           `json:"sku" validate:"required,min=1,max=60"`
	Purity            string           `json:"purity" validate:"required"`
	GrossWeight       decimal.Decimal  `json:"gross_weight"`
	NetWeight         decimal.Decimal  `json:"net_weight"`
	StoneWeight       decimal.Decimal  `json:"stone_weight"`
	MetalRate         decimal.Decimal  `json:"metal_rate"`
	MakingChargeType  string           `json:"making_charge_type" validate:"required"`
	MakingChargeValue decimal.Decimal  `json:"making_charge_value"`
	WastagePercentage decimal.Decimal  `json:"wastage_percentage"`
	StonePrice        decimal.Decimal  `json:"stone_price"`
	GSTPercentage     *decimal.Decimal `json:"gst_percentage,omitempty"`
	StockQty          int              `json:"stock_qty" validate:"min=0"`
}

type updateVariantRequest struct {
	SKU               *string          `json:"sku,omitempty" validate:"omitempty,min=1,max=60"`
	Purity            *string          `json:"purity,omitempty"`
	GrossWeight       *decimal.Decimal `json:"gross_weight,omitempty"`
	NetWeight         *decimal.Decimal `json:"net_weight,omitempty"`
	StoneWeight       *decimal.Decimal `json:"stone_weight,omitempty"`
	MetalRate         *decimal.Decimal `json:"metal_rate,omitempty"`
	MakingChargeType  *string          `json:"making_charge_type,omitempty"`
	MakingChargeValue *decimal.Decimal `json:"making_charge_value,omitempty"`
	WastagePercentage *decimal.Decimal `json:"wastage_percentage,omitempty"`
	StonePrice        *decimal.Decimal `json:"stone_price,omitempty"`
	GSTPercentage     *decimal.Decimal `json:"gst_percentage,omitempty"`
	StockQty          *int             `json:"stock_qty,omitempty" validate:"omitempty,min=0"`
	IsActive          *bool            `json:"is_active,omitempty"`
}

func CreateVariant(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		productID, err := uuid.Parse(payload.ProductID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid product id"))
			return
		}

		purity, err := enums.ParsePurity(payload.Purity)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid purity"))
			return
		}

		makingType, err := enums.ParseMakingChargeType(payload.MakingChargeType)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid making charge type"))
			return
		}

		variant, err := svc.Create(r.Context(), variants.CreateVariantInput{
			TenantID:          id.TenantID,
			ProductID:         productID,
			SKU:               payload.SKU,
			Purity:            purity,
			GrossWeight:       payload.GrossWeight,
			NetWeight:         payload.NetWeight,
			StoneWeight:       payload.StoneWeight,
			MetalRate:         payload.MetalRate,
			MakingChargeType:  makingType,
			MakingChargeValue: payload.MakingChargeValue,
			WastagePercentage: payload.WastagePercentage,
			StonePrice:        payload.StonePrice,
			GSTPercentage:     payload.GSTPercentage,
			StockQty:          payload.StockQty,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, variant)
	}
}

func GetVariant(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variantID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variant, err := svc.Get(r.Context(), id.TenantID, variantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, variant)
	}
}

func ListVariants(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := variantFilterFromQuery(r)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, total, err := svc.List(r.Context(), id.TenantID, filter)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, listed, int(total))
	}
}

func UpdateVariant(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variantID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateVariantRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := variants.UpdateVariantInput{
			TenantID:          id.TenantID,
			VariantID:         variantID,
			SKU:               payload.SKU,
			GrossWeight:       payload.GrossWeight,
			NetWeight:         payload.NetWeight,
			StoneWeight:       payload.StoneWeight,
			MetalRate:         payload.MetalRate,
			MakingChargeValue: payload.MakingChargeValue,
			WastagePercentage: payload.WastagePercentage,
			StonePrice:        payload.StonePrice,
			GSTPercentage:     payload.GSTPercentage,
			StockQty:          payload.StockQty,
			IsActive:          payload.IsActive,
		}
		if payload.Purity != nil {
			purity, err := enums.ParsePurity(*payload.Purity)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid purity"))
				return
			}
			input.Purity = &purity
		}
		if payload.MakingChargeType != nil {
			makingType, err := enums.ParseMakingChargeType(*payload.MakingChargeType)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid making charge type"))
				return
			}
			input.MakingChargeType = &makingType
		}

		variant, err := svc.Update(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, variant)
	}
}

func DeleteVariant(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variantID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Deactivate(r.Context(), id.TenantID, variantID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, http.StatusOK, "variant deactivated")
	}
}

// QuoteVariant returns the full price breakdown without persisting anything.
func QuoteVariant(svc variants.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		variantID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		breakdown, err := svc.Quote(r.Context(), id.TenantID, variantID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, breakdown)
	}
}

func variantFilterFromQuery(r *http.Request) (variants.ListFilter, error) {
	var filter variants.ListFilter

	productID, err := validators.ParseQueryUUID(r, "product_id")
	if err != nil {
		return filter, err
	}
	filter.ProductID = productID

	filter.Purity = strings.TrimSpace(r.URL.Query().Get("purity"))

	activeOnly, err := validators.ParseQueryBool(r, "active")
	if err != nil {
		return filter, err
	}
	filter.ActiveOnly = activeOnly

	inStock, err := validators.ParseQueryBool(r, "in_stock")
	if err != nil {
		return filter, err
	}
	filter.InStock = inStock

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
