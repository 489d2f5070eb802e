package variants

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/pkg/db/models"
)

// Repository persists product variants.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, variant *models.ProductVariant) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]models.ProductVariant, int64, error)
	Update(ctx context.Context, variant *models.ProductVariant) error
}

// ListFilter narrows variant listings.
type ListFilter struct {
	ProductID  *uuid.UUID
	Purity     string
	ActiveOnly bool
	InStock    bool
	Limit      int
	Offset     int
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a variant repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).Create(variant).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.ProductVariant, error) {
	var variant models.ProductVariant
	err := r.db.WithContext(ctx).
		Preload("Product").
		Where("id = ?", id).
		First(&variant).Error
	if err != nil {
		return nil, err
	}
	return &variant, nil
}

func (r *repository) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]models.ProductVariant, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.ProductVariant{}).
		Where("tenant_id = ?", tenantID)

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.InStock {
		query = query.Where("stock_qty > 0")
	}
	if filter.ProductID != nil {
		query = query.Where("product_id = ?", *filter.ProductID)
	}
	if filter.Purity != "" {
		query = query.Where("purity = ?", filter.Purity)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}

	var variants []models.ProductVariant
	if err := query.Preload("Product").Order("created_at DESC").Find(&variants).Error; err != nil {
		return nil, 0, err
	}
	return variants, total, nil
}

func (r *repository) Update(ctx context.Context, variant *models.ProductVariant) error {
	return r.db.WithContext(ctx).Save(variant).Error
}
