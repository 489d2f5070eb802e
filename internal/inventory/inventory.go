// Package inventory applies guarded stock movements on product variants.
// Every mutation runs inside the caller's transaction and is written as a
// single conditional UPDATE so concurrent orders can never oversell.
package inventory

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
)

// Reserver decrements stock when an order line is accepted.
type Reserver interface {
	Reserve(ctx context.Context, tx *gorm.DB, tenantID, variantID uuid.UUID, qty int) error
}

// Releaser returns stock when an order is cancelled.
type Releaser interface {
	Release(ctx context.Context, tx *gorm.DB, tenantID, variantID uuid.UUID, qty int) error
}

// Mover combines both stock directions.
type Mover interface {
	Reserver
	Releaser
}

type moverImpl struct{}

// NewMover exposes the default guarded-UPDATE implementation.
func NewMover() Mover {
	return moverImpl{}
}

func (moverImpl) Reserve(ctx context.Context, tx *gorm.DB, tenantID, variantID uuid.UUID, qty int) error {
	if qty <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "quantity must be positive")
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock reservation")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE product_variants
		SET stock_qty = stock_qty - ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND tenant_id = ? AND stock_qty >= ?
	`, qty, variantID, tenantID, qty)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "reserve stock")
	}
	if res.RowsAffected == 0 {
		return pkgerrors.New(pkgerrors.CodeInsufficientStock, "insufficient stock for variant")
	}
	return nil
}

func (moverImpl) Release(ctx context.Context, tx *gorm.DB, tenantID, variantID uuid.UUID, qty int) error {
	if qty <= 0 {
		return nil
	}
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for stock release")
	}

	res := tx.WithContext(ctx).Exec(`
		UPDATE product_variants
		SET stock_qty = stock_qty + ?,
			updated_at = CURRENT_TIMESTAMP
		WHERE id = ? AND tenant_id = ?
	`, qty, variantID, tenantID)
	if res.Error != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, res.Error, "release stock")
	}
	return nil
}
