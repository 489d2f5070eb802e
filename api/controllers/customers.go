package controllers

import (
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"github.com/jewelmandi/jewelmandi-backend/api/responses"
	"github.com/jewelmandi/jewelmandi-backend/api/validators"
	"github.com/jewelmandi/jewelmandi-backend/internal/customers"
	"github.com/jewelmandi/jewelmandi-backend/internal/tenant"
	"github.com/jewelmandi/jewelmandi-backend/pkg/logger"
	"github.com/jewelmandi/jewelmandi-backend/pkg/types"
)

type addressRequest struct {
	Line1   string `json:"line1,omitempty" validate:"omitempty,max=200"`
	City    string `json:"city,omitempty" validate:"omitempty,max=100"`
	State   string `json:"state,omitempty" validate:"omitempty,max=100"`
	Pincode string `json:"pincode,omitempty" validate:"omitempty,max=10"`
}

type createCustomerRequest struct {
	Name      string          `json:"name" validate:"required,min=1,max=200"`
	Mobile    string          `json:"mobile" validate:"required,min=5,max=20"`
	Email     *string         `json:"email,omitempty" validate:"omitempty,email"`
	ShopName  *string         `json:"shop_name,omitempty" validate:"omitempty,max=200"`
	GSTNumber *string         `json:"gst_number,omitempty" validate:"omitempty,max=20"`
	Address   *addressRequest `json:"address,omitempty"`
}

type updateCustomerRequest struct {
	Name      *string         `json:"name,omitempty" validate:"omitempty,min=1,max=200"`
	Mobile    *string         `json:"mobile,omitempty" validate:"omitempty,min=5,max=20"`
	Email     *string         `json:"email,omitempty" validate:"omitempty,email"`
	ShopName  *string         `json:"shop_name,omitempty" validate:"omitempty,max=200"`
	GSTNumber *string         `json:"gst_number,omitempty" validate:"omitempty,max=20"`
	Address   *addressRequest `json:"address,omitempty"`
	IsActive  *bool           `json:"is_active,omitempty"`
}

func (a *addressRequest) toAddress() *types.Address {
	if a == nil {
		return nil
	}
	return &types.Address{
		Line1:   a.Line1,
		City:    a.City,
		State:   a.State,
		Pincode: a.Pincode,
	}
}

func CreateCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload createCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Create(r.Context(), customers.CreateCustomerInput{
			TenantID:  id.TenantID,
			Name:      payload.Name,
			Mobile:    payload.Mobile,
			Email:     payload.Email,
			ShopName:  payload.ShopName,
			GSTNumber: payload.GSTNumber,
			Address:   payload.Address.toAddress(),
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccessStatus(w, http.StatusCreated, customer)
	}
}

func GetCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Get(r.Context(), id.TenantID, customerID)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}

func ListCustomers(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		activeOnly, err := validators.ParseQueryBool(r, "active")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		limit, err := validators.ParseQueryInt(r, "limit", defaultPageSize, 1, maxPageSize)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}
		offset, err := validators.ParseQueryInt(r, "offset", 0, 0, 1<<30)
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		listed, total, err := svc.List(r.Context(), id.TenantID, customers.ListFilter{
			Search:     strings.TrimSpace(r.URL.Query().Get("search")),
			ActiveOnly: activeOnly,
			Limit:      limit,
			Offset:     offset,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteList(w, listed, int(total))
	}
}

func UpdateCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		var payload updateCustomerRequest
		if err := validators.DecodeJSONBody(r, &payload); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customer, err := svc.Update(r.Context(), customers.UpdateCustomerInput{
			TenantID:   id.TenantID,
			CustomerID: customerID,
			Name:       payload.Name,
			Mobile:     payload.Mobile,
			Email:      payload.Email,
			ShopName:   payload.ShopName,
			GSTNumber:  payload.GSTNumber,
			Address:    payload.Address.toAddress(),
			IsActive:   payload.IsActive,
		})
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteSuccess(w, customer)
	}
}

func DeleteCustomer(svc customers.Service, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := tenant.MustFromContext(r.Context())
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		customerID, err := validators.ParsePathUUID(chi.URLParam(r, "id"), "id")
		if err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		if err := svc.Deactivate(r.Context(), id.TenantID, customerID); err != nil {
			responses.WriteError(r.Context(), logg, w, err)
			return
		}

		responses.WriteMessage(w, http.StatusOK, "customer deactivated")
	}
}
