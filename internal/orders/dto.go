package orders

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
)

// OrderItemInput is one requested line on order placement.
type OrderItemInput struct {
	VariantID uuid.UUID `json:"variant_id"`
	Quantity  int       `json:"quantity"`
}

// CreateOrderInput carries everything order placement needs.
type CreateOrderInput struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	Items      []OrderItemInput
	PaidAmount decimal.Decimal
	OrderDate  *time.Time
	Notes      *string
}

// UpdateOrderInput is the administrative override. Status changes follow the
// state machine; cancellation is only reachable through Cancel. paid_amount
// edits here do not touch the customer balance ledger.
type UpdateOrderInput struct {
	TenantID      uuid.UUID
	OrderID       uuid.UUID
	OrderStatus   *enums.OrderStatus
	PaymentStatus *enums.PaymentStatus
	PaidAmount    *decimal.Decimal
	Notes         *string
}
