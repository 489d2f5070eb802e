package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/pkg/types"
)

// Customer is a wholesale buyer. OutstandingAmount equals the sum of
// (total - paid) over the customer's non-cancelled orders; the order flow
// maintains it by applying exact deltas, never by recomputing from scratch.
type Customer struct {
	ID                uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TenantID          uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	Name              string          `gorm:"column:name;not null" json:"name"`
	Mobile            string          `gorm:"column:mobile;not null" json:"mobile"`
	Email             *string         `gorm:"column:email" json:"email,omitempty"`
	ShopName          *string         `gorm:"column:shop_name" json:"shop_name,omitempty"`
	GSTNumber         *string         `gorm:"column:gst_number" json:"gst_number,omitempty"`
	Address           *types.Address  `gorm:"column:address;type:jsonb;serializer:json" json:"address,omitempty"`
	OutstandingAmount decimal.Decimal `gorm:"column:outstanding_amount;type:numeric(14,2);not null;default:0" json:"outstanding_amount"`
	IsActive          bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	CreatedAt         time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (c *Customer) BeforeCreate(*gorm.DB) error {
	if c.ID == uuid.Nil {
		c.ID = uuid.New()
	}
	return nil
}
