package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
)

// Product is a catalog design; sellable configurations live on its variants.
type Product struct {
	ID          uuid.UUID       `gorm:"column:id;type:uuid;primaryKey" json:"id"`
	TenantID    uuid.UUID       `gorm:"column:tenant_id;type:uuid;not null;index" json:"tenant_id"`
	CategoryID  uuid.UUID       `gorm:"column:category_id;type:uuid;not null" json:"category_id"`
	Name        string          `gorm:"column:name;not null" json:"name"`
	DesignCode  *string         `gorm:"column:design_code;uniqueIndex" json:"design_code,omitempty"`
	Description *string         `gorm:"column:description" json:"description,omitempty"`
	MetalType   enums.MetalType `gorm:"column:metal_type;not null" json:"metal_type"`
	Images      []string        `gorm:"column:images;type:jsonb;serializer:json" json:"images"`
	IsActive    bool            `gorm:"column:is_active;not null;default:true" json:"is_active"`
	Category    *Category       `gorm:"foreignKey:CategoryID" json:"category,omitempty"`
	CreatedAt   time.Time       `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (p *Product) BeforeCreate(*gorm.DB) error {
	if p.ID == uuid.Nil {
		p.ID = uuid.New()
	}
	return nil
}
