package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jewelmandi/jewelmandi-backend/api/responses"
	"github.com/jewelmandi/jewelmandi-backend/api/validators"
	"github.com/jewelmandi/jewelmandi-backend/internal/orders"
	"github.com/jewelmandi/jewelmandi-backend/internal/tenant"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
	"github.com/jewelmandi/jewelmandi-backend/pkg/logger"
)

type orderItemRequest struct {
	VariantID string `json:"variant_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity" validate:"required,min=1"`
}

type createOrderRequest struct {
	CustomerID string             `json:"customer_id" validate:"required,uuid"`
	Items      []orderItemRequest `json:"items" validate:"required,min=1,dive"`
	PaidAmount decimal.Decimal    `json:"paid_amount"`
	OrderDate  *time.Time         `json:"order_date,omitempty"`
	Notes      *string            `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

type updateOrderRequest struct {
	OrderStatus   *string          `json:"order_status,omitempty"`
	PaymentStatus *string          `json:"payment_status,omitempty"`
	PaidAmount    *decimal.Decimal `json:"paid_amount,omitempty"`
	Notes         *string          `json:"notes,omitempty" validate:"omitempty,max=1000"`
}

func CreateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := uuid.Parse(payload.CustomerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid customer id"))
			return
		}

		items := make([]orders.OrderItemInput, 0, len(payload.Items))
		for _, item := range payload.Items {
			variantID, err := uuid.Parse(item.VariantID)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid variant id"))
				return
			}
			items = append(items, orders.OrderItemInput{VariantID: variantID, Quantity: item.Quantity})
		}

		order, err := svc.Create(r.Context(), orders.CreateOrderInput{
			TenantID:   id.TenantID,
			CustomerID: customerID,
			Items:      items,
			PaidAmount: payload.PaidAmount,
			OrderDate:  payload.OrderDate,
			Notes:      payload.Notes,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, order)
	}
}

func GetOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Get(r.Context(), id.TenantID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func ListOrders(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		filter, err := orderFilterFromQuery(r)
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

func UpdateOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateOrderRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		input := orders.UpdateOrderInput{
			TenantID:   id.TenantID,
			OrderID:    orderID,
			PaidAmount: payload.PaidAmount,
			Notes:      payload.Notes,
		}
		if payload.OrderStatus != nil {
			status, err := enums.ParseOrderStatus(*payload.OrderStatus)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid order status"))
				return
			}
			input.OrderStatus = &status
		}
		if payload.PaymentStatus != nil {
			status, err := enums.ParsePaymentStatus(*payload.PaymentStatus)
			if err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid payment status"))
				return
			}
			input.PaymentStatus = &status
		}

		order, err := svc.Update(r.Context(), input)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

// CancelOrder releases reserved stock and reverses the unpaid balance delta.
func CancelOrder(svc orders.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		orderID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		order, err := svc.Cancel(r.Context(), id.TenantID, orderID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, order)
	}
}

func orderFilterFromQuery(r *http.Request) (orders.ListFilter, error) {
	var filter orders.ListFilter

	customerID, err := validators.ParseQueryUUID(r, "customer_id")
	if err != nil {
		return filter, err
	}
	filter.CustomerID = customerID

	filter.OrderStatus = strings.TrimSpace(r.URL.Query().Get("order_status"))
	filter.PaymentStatus = strings.TrimSpace(r.URL.Query().Get("payment_status"))

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
