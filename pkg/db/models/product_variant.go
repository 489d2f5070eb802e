package models

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
)

// ProductVariant is the sellable SKU. FinalPrice is materialized: it is
// recomputed and persisted on every write that touches a pricing input, never
// derived lazily at read time.
type ProductVariant struct {
	ID                uuid.UUID              `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TenantID          uuid.UUID              `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	ProductID         uuid.UUID              `gorm:"column:product_id;type:uuid;not null;index" json:"product_id"`
	SKU               string                 `gorm:"column:sku;not null;uniqueIndex" json:"sku"`
	Purity            enums.Purity           `gorm:"column:purity;not null" json:"purity"`
	GrossWeight       decimal.Decimal        `gorm:"column:gross_weight;type:numeric(10,3);not null" json:"gross_weight"`
	NetWeight         decimal.Decimal        `gorm:"column:net_weight;type:numeric(10,3);not null" json:"net_weight"`
	StoneWeight       decimal.Decimal        `gorm:"column:stone_weight;type:numeric(10,3);not null;default:0" json:"stone_weight"`
	MetalRate         decimal.Decimal        `gorm:"column:metal_rate;type:numeric(12,2);not null" json:"metal_rate"`
	MakingChargeType  enums.MakingChargeType `gorm:"column:making_charge_type;not null" json:"making_charge_type"`
	MakingChargeValue decimal.Decimal        `gorm:"column:making_charge_value;type:numeric(12,2);not null" json:"making_charge_value"`
	WastagePercentage decimal.Decimal        `gorm:"column:wastage_percentage;type:numeric(5,2);not null;default:0" json:"wastage_percentage"`
	StonePrice        decimal.Decimal        `gorm:"column:stone_price;type:numeric(12,2);not null;default:0" json:"stone_price"`
	GSTPercentage     decimal.Decimal        `gorm:"column:gst_percentage;type:numeric(5,2);not null;default:3" json:"gst_percentage"`
	FinalPrice        decimal.Decimal        `gorm:"column:final_price;type:numeric(12,2);not null" json:"final_price"`
	StockQty          int                    `gorm:"column:stock_qty;not null;default:0" json:"stock_qty"`
	IsActive          bool                   `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Product           *Product               `gorm:"foreignKey:ProductID" json:"product,omitempty"`
	CreatedAt         time.Time              `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt         time.Time              `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (v *ProductVariant) BeforeCreate(*gorm.DB) error {
	if v.ID == uuid.Nil {
		v.ID = uuid.New()
	}
	return nil
}
