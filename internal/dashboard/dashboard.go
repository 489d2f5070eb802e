package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/pkg/db/models"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
)

// lowStockThreshold marks variants that need restocking on the dashboard.
const lowStockThreshold = 5

// Summary is the tenant-wide snapshot shown on the admin home screen.
// Revenue excludes cancelled orders; stock value prices remaining units at
// their materialized final price.
type Summary struct {
	Products       int64            `json:"products"`
	Variants       int64            `json:"variants"`
	Customers      int64            `json:"customers"`
	Orders         int64            `json:"orders"`
	LowStock       int64            `json:"low_stock_variants"`
	OrdersByStatus map[string]int64 `json:"orders_by_status"`

	TotalRevenue       decimal.Decimal `json:"total_revenue"`
	TotalCollected     decimal.Decimal `json:"total_collected"`
	OutstandingBalance decimal.Decimal `json:"outstanding_balance"`
	StockValue         decimal.Decimal `json:"stock_value"`
}

// Service aggregates tenant metrics.
type Service interface {
	Summary(ctx context.Context, tenantID uuid.UUID) (*Summary, error)
}

type service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) (Service, error) {
	if db == nil {
		return nil, fmt.Errorf("db handle required")
	}
	return &service{db: db}, nil
}

func (s *service) Summary(ctx context.Context, tenantID uuid.UUID) (*Summary, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}

	summary := &Summary{
		OrdersByStatus:     map[string]int64{},
		TotalRevenue:       decimal.Zero,
		TotalCollected:     decimal.Zero,
		OutstandingBalance: decimal.Zero,
		StockValue:         decimal.Zero,
	}
	q := s.db.WithContext(ctx)

	counts := []struct {
		model any
		dest  *int64
	}{
		{&models.Product{}, &summary.Products},
		{&models.ProductVariant{}, &summary.Variants},
		{&models.Customer{}, &summary.Customers},
		{&models.Order{}, &summary.Orders},
	}
	for _, c := range counts {
		if err := q.Model(c.model).Where("tenant_id = ?", tenantID).Count(c.dest).Error; err != nil {
			return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting rows")
		}
	}

	if err := q.Model(&models.ProductVariant{}).
		Where("tenant_id = ? AND is_active = ? AND stock_qty < ?", tenantID, true, lowStockThreshold).
		Count(&summary.LowStock).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "counting low stock")
	}

	var statusRows []struct {
		OrderStatus string
		Total       int64
	}
	if err := q.Model(&models.Order{}).
		Select("order_status, COUNT(*) AS total").
		Where("tenant_id = ?", tenantID).
		Group("order_status").
		Scan(&statusRows).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "grouping orders by status")
	}
	for _, row := range statusRows {
		summary.OrdersByStatus[row.OrderStatus] = row.Total
	}

	var revenue struct {
		Revenue   decimal.Decimal
		Collected decimal.Decimal
	}
	if err := q.Model(&models.Order{}).
		Select("COALESCE(SUM(total_amount), 0) AS revenue, COALESCE(SUM(paid_amount), 0) AS collected").
		Where("tenant_id = ? AND order_status <> ?", tenantID, enums.OrderStatusCancelled).
		Scan(&revenue).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summing revenue")
	}
	summary.TotalRevenue = revenue.Revenue
	summary.TotalCollected = revenue.Collected

	var outstanding struct {
		Total decimal.Decimal
	}
	if err := q.Model(&models.Customer{}).
		Select("COALESCE(SUM(outstanding_amount), 0) AS total").
		Where("tenant_id = ?", tenantID).
		Scan(&outstanding).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summing outstanding")
	}
	summary.OutstandingBalance = outstanding.Total

	var stock struct {
		Value decimal.Decimal
	}
	if err := q.Model(&models.ProductVariant{}).
		Select("COALESCE(SUM(final_price * stock_qty), 0) AS value").
		Where("tenant_id = ? AND is_active = ?", tenantID, true).
		Scan(&stock).Error; err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "summing stock value")
	}
	summary.StockValue = stock.Value

	return summary, nil
}
