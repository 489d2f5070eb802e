package dashboard

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/pkg/db/models"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
)

func dec(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(
		&models.Category{}, &models.Product{}, &models.ProductVariant{},
		&models.Customer{}, &models.Order{}, &models.OrderItem{},
	); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func seedTenant(t *testing.T, conn *gorm.DB, tenantID uuid.UUID) {
	t.Helper()

	category := &models.Category{TenantID: tenantID, Name: "Rings", IsActive: true}
	if err := conn.Create(category).Error; err != nil {
		t.Fatalf("seed category: %v", err)
	}
	product := &models.Product{
		TenantID:   tenantID,
		CategoryID: category.ID,
		Name:       "Band",
		MetalType:  enums.MetalGold,
		IsActive:   true,
	}
	if err := conn.Create(product).Error; err != nil {
		t.Fatalf("seed product: %v", err)
	}

	// SKUs are globally unique, so the seed must not collide across tenants.
	skuPrefix := tenantID.String()[:8]
	variants := []*models.ProductVariant{
		{
			TenantID: tenantID, ProductID: product.ID, SKU: skuPrefix + "-A-1", Purity: enums.Purity22K,
			GrossWeight: dec("10"), NetWeight: dec("10"), MetalRate: dec("5000"),
			MakingChargeType: enums.MakingChargeFixed, MakingChargeValue: dec("1000"),
			FinalPrice: dec("100"), StockQty: 10, IsActive: true,
		},
		{
			TenantID: tenantID, ProductID: product.ID, SKU: skuPrefix + "-A-2", Purity: enums.Purity22K,
			GrossWeight: dec("5"), NetWeight: dec("5"), MetalRate: dec("5000"),
			MakingChargeType: enums.MakingChargeFixed, MakingChargeValue: dec("1000"),
			FinalPrice: dec("50"), StockQty: 2, IsActive: true,
		},
	}
	for _, v := range variants {
		if err := conn.Create(v).Error; err != nil {
			t.Fatalf("seed variant %s: %v", v.SKU, err)
		}
	}

	customer := &models.Customer{
		TenantID:          tenantID,
		Name:              "Soni Traders",
		Mobile:            "9000000001",
		OutstandingAmount: dec("1500"),
		IsActive:          true,
	}
	if err := conn.Create(customer).Error; err != nil {
		t.Fatalf("seed customer: %v", err)
	}

	orders := []*models.Order{
		{
			TenantID: tenantID, OrderNumber: "ORD-1-" + tenantID.String()[:8], CustomerID: customer.ID,
			TotalAmount: dec("2000"), PaidAmount: dec("500"),
			PaymentStatus: enums.PaymentStatusPartial, OrderStatus: enums.OrderStatusPlaced,
		},
		{
			TenantID: tenantID, OrderNumber: "ORD-2-" + tenantID.String()[:8], CustomerID: customer.ID,
			TotalAmount: dec("3000"), PaidAmount: dec("3000"),
			PaymentStatus: enums.PaymentStatusPaid, OrderStatus: enums.OrderStatusCompleted,
		},
		{
			TenantID: tenantID, OrderNumber: "ORD-3-" + tenantID.String()[:8], CustomerID: customer.ID,
			TotalAmount: dec("9999"), PaidAmount: dec("0"),
			PaymentStatus: enums.PaymentStatusPending, OrderStatus: enums.OrderStatusCancelled,
		},
	}
	for _, o := range orders {
		if err := conn.Create(o).Error; err != nil {
			t.Fatalf("seed order %s: %v", o.OrderNumber, err)
		}
	}
}

func TestSummary(t *testing.T) {
	conn := newTestDB(t)
	tenantID := uuid.New()
	seedTenant(t, conn, tenantID)
	// A second tenant's data must never leak into the summary.
	seedTenant(t, conn, uuid.New())

	svc, err := NewService(conn)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}

	summary, err := svc.Summary(context.Background(), tenantID)
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}

	if summary.Products != 1 || summary.Variants != 2 || summary.Customers != 1 || summary.Orders != 3 {
		t.Fatalf("unexpected counts %+v", summary)
	}
	if summary.LowStock != 1 {
		t.Fatalf("low stock = %d, want 1", summary.LowStock)
	}
	if summary.OrdersByStatus["placed"] != 1 || summary.OrdersByStatus["completed"] != 1 || summary.OrdersByStatus["cancelled"] != 1 {
		t.Fatalf("unexpected status breakdown %+v", summary.OrdersByStatus)
	}

	// Cancelled order excluded from revenue.
	if summary.TotalRevenue.StringFixed(2) != "5000.00" {
		t.Fatalf("revenue = %s, want 5000.00", summary.TotalRevenue.StringFixed(2))
	}
	if summary.TotalCollected.StringFixed(2) != "3500.00" {
		t.Fatalf("collected = %s, want 3500.00", summary.TotalCollected.StringFixed(2))
	}
	if summary.OutstandingBalance.StringFixed(2) != "1500.00" {
		t.Fatalf("outstanding = %s, want 1500.00", summary.OutstandingBalance.StringFixed(2))
	}
	// 100*10 + 50*2 = 1100.
	if summary.StockValue.StringFixed(2) != "1100.00" {
		t.Fatalf("stock value = %s, want 1100.00", summary.StockValue.StringFixed(2))
	}
}

func TestSummary_EmptyTenant(t *testing.T) {
	conn := newTestDB(t)
	svc, err := NewService(conn)
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}

	summary, err := svc.Summary(context.Background(), uuid.New())
	if err != nil {
		t.Fatalf("summary failed: %v", err)
	}
	if summary.Orders != 0 || !summary.TotalRevenue.IsZero() || !summary.StockValue.IsZero() {
		t.Fatalf("expected zeroed summary, got %+v", summary)
	}
}
