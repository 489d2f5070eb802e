package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// OrderItem is an immutable line snapshot. Weights and prices are copied from
// the variant at order time so later catalog edits never alter history.
type OrderItem struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TenantID     uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	OrderID      uuid.UUID       `gorm:"column:order_id;type:uuid;not null;index" json:"order_id"`
	VariantID    uuid.UUID       `gorm:"column:variant_id;type:uuid;not null" json:"variant_id"`
	Quantity     int             `gorm:"column:quantity;not null" json:"quantity"`
	GrossWeight  decimal.Decimal `gorm:"column:gross_weight;type:numeric(10,3);not null" json:"gross_weight"`
	NetWeight    decimal.Decimal `gorm:"column:net_weight;type:numeric(10,3);not null" json:"net_weight"`
	PricePerUnit decimal.Decimal `gorm:"column:price_per_unit;type:numeric(12,2);not null" json:"price_per_unit"`
	TotalPrice   decimal.Decimal `gorm:"column:total_price;type:numeric(14,2);not null" json:"total_price"`
	Variant      *ProductVariant `gorm:"foreignKey:VariantID" json:"variant,omitempty"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (i *OrderItem) BeforeCreate(*gorm.DB) error {
	if i.ID == uuid.Nil {
		i.ID = uuid.New()
	}
	return nil
}
