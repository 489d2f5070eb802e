package customers

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/pkg/db/models"
)

// Repository persists customers and applies outstanding-balance deltas.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, customer *models.Customer) error
	FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]models.Customer, int64, error)
	Update(ctx context.Context, customer *models.Customer) error
	AdjustOutstanding(ctx context.Context, tenantID, customerID uuid.UUID, delta decimal.Decimal) error
}

// ListFilter narrows customer listings.
type ListFilter struct {
	Search     string
	ActiveOnly bool
	Limit      int
	Offset     int
}

type repository struct {
	db *gorm.DB
}

// NewRepository builds a customer repository bound to the provided DB.
func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repository{db: tx}
}

func (r *repository) Create(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Create(customer).Error
}

func (r *repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Customer, error) {
	var customer models.Customer
	err := r.db.WithContext(ctx).
		Where("id = ?", id).
		First(&customer).Error
	if err != nil {
		return nil, err
	}
	return &customer, nil
}

func (r *repository) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]models.Customer, int64, error) {
	query := r.db.WithContext(ctx).
		Model(&models.Customer{}).
		Where("tenant_id = ?", tenantID)

	if filter.ActiveOnly {
		query = query.Where("is_active = ?", true)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name LIKE ? OR mobile LIKE ?", pattern, pattern)
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

	var customers []models.Customer
	if err := query.Order("created_at DESC").Find(&customers).Error; err != nil {
		return nil, 0, err
	}
	return customers, total, nil
}

func (r *repository) Update(ctx context.Context, customer *models.Customer) error {
	return r.db.WithContext(ctx).Save(customer).Error
}

// AdjustOutstanding applies an additive delta. The balance is never written
// absolutely: concurrent order flows each contribute their own exact delta.
func (r *repository) AdjustOutstanding(ctx context.Context, tenantID, customerID uuid.UUID, delta decimal.Decimal) error {
	if delta.IsZero() {
		return nil
	}
	return r.db.WithContext(ctx).Exec(`
		UPDATE customers
		SET outstanding_amount = outstanding_amount + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND tenant_id = ?
	`, delta, customerID, tenantID).Error
}
