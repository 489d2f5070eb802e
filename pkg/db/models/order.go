package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
)

// Order is never hard-deleted; cancellation is its only terminal mutation
// besides completion.
type Order struct {
	ID            uuid.UUID           `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TenantID      uuid.UUID           `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	OrderNumber   string              `gorm:"column:order_number;not null;uniqueIndex" json:"order_number"`
	CustomerID    uuid.UUID           `gorm:"column:customer_id;type:uuid;not null;index" json:"customer_id"`
	OrderDate     time.Time           `gorm:"column:order_date;not null" json:"order_date"`
	TotalAmount   decimal.Decimal     `gorm:"column:total_amount;type:numeric(14,2);not null;default:0" json:"total_amount"`
	PaidAmount    decimal.Decimal     `gorm:"column:paid_amount;type:numeric(14,2);not null;default:0" json:"paid_amount"`
	PaymentStatus enums.PaymentStatus `gorm:"column:payment_status;not null;default:'pending'" json:"payment_status"`
	OrderStatus   enums.OrderStatus   `gorm:"column:order_status;not null;default:'placed'" json:"order_status"`
	Notes         *string             `gorm:"column:notes" json:"notes,omitempty"`
	Customer      *Customer           `gorm:"foreignKey:CustomerID" json:"customer,omitempty"`
	Items         []OrderItem         `gorm:"foreignKey:OrderID" json:"items,omitempty"`
	CreatedAt     time.Time           `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt     time.Time           `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (o *Order) BeforeCreate(*gorm.DB) error {
	if o.ID == uuid.Nil {
		o.ID = uuid.New()
	}
	return nil
}
