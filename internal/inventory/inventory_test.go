package inventory

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/pkg/db/models"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
)

func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.ProductVariant{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	return conn
}

func seedVariant(t *testing.T, conn *gorm.DB, tenantID uuid.UUID, stock int) *models.ProductVariant {
	t.Helper()
	variant := &models.ProductVariant{
		TenantID:          tenantID,
		ProductID:         uuid.New(),
		SKU:               "SKU-" + uuid.NewString()[:8],
		Purity:            enums.Purity22K,
		GrossWeight:       decimal.NewFromFloat(10.5),
		NetWeight:         decimal.NewFromInt(10),
		MetalRate:         decimal.NewFromInt(5000),
		MakingChargeType:  enums.MakingChargePerGram,
		MakingChargeValue: decimal.NewFromInt(300),
		GSTPercentage:     decimal.NewFromInt(3),
		FinalPrice:        decimal.NewFromInt(55620),
		StockQty:          stock,
		IsActive:          true,
	}
	if err := conn.Create(variant).Error; err != nil {
		t.Fatalf("seed variant failed: %v", err)
	}
	return variant
}

func currentStock(t *testing.T, conn *gorm.DB, id uuid.UUID) int {
	t.Helper()
	var variant models.ProductVariant
	if err := conn.First(&variant, "id = ?", id).Error; err != nil {
		t.Fatalf("load variant failed: %v", err)
	}
	return variant.StockQty
}

func TestReserve_DecrementsStock(t *testing.T) {
	conn := newTestDB(t)
	tenantID := uuid.New()
	variant := seedVariant(t, conn, tenantID, 5)
	mover := NewMover()

	if err := mover.Reserve(context.Background(), conn, tenantID, variant.ID, 3); err != nil {
		t.Fatalf("reserve failed: %v", err)
	}
	if got := currentStock(t, conn, variant.ID); got != 2 {
		t.Fatalf("stock = %d, want 2", got)
	}
}

func TestReserve_InsufficientStock(t *testing.T) {
	conn := newTestDB(t)
	tenantID := uuid.New()
	variant := seedVariant(t, conn, tenantID, 2)
	mover := NewMover()

	err := mover.Reserve(context.Background(), conn, tenantID, variant.ID, 3)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock error, got %v", err)
	}
	if got := currentStock(t, conn, variant.ID); got != 2 {
		t.Fatalf("stock should be unchanged, got %d", got)
	}
}

func TestReserve_LastUnitGoesToOneCaller(t *testing.T) {
	conn := newTestDB(t)
	tenantID := uuid.New()
	variant := seedVariant(t, conn, tenantID, 1)
	mover := NewMover()
	ctx := context.Background()

	if err := mover.Reserve(ctx, conn, tenantID, variant.ID, 1); err != nil {
		t.Fatalf("first reserve failed: %v", err)
	}
	err := mover.Reserve(ctx, conn, tenantID, variant.ID, 1)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("expected insufficient stock on second reserve, got %v", err)
	}
	if got := currentStock(t, conn, variant.ID); got != 0 {
		t.Fatalf("stock = %d, want 0", got)
	}
}

func TestReserve_ConcurrentCallersGetExactlyOneUnit(t *testing.T) {
	conn := newTestDB(t)
	// sqlite allows a single writer; one pooled connection keeps the
	// racing updates from failing with SQLITE_BUSY.
	sqlDB, err := conn.DB()
	if err != nil {
		t.Fatalf("unwrap sql db: %v", err)
	}
	sqlDB.SetMaxOpenConns(1)

	tenantID := uuid.New()
	variant := seedVariant(t, conn, tenantID, 1)
	mover := NewMover()

	const callers = 8
	results := make(chan error, callers)
	var wg sync.WaitGroup
	for i := 0; i < callers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			results <- mover.Reserve(context.Background(), conn, tenantID, variant.ID, 1)
		}()
	}
	wg.Wait()
	close(results)

	wins, losses := 0, 0
	for resErr := range results {
		if resErr == nil {
			wins++
			continue
		}
		appErr := pkgerrors.As(resErr)
		if appErr == nil || appErr.Code() != pkgerrors.CodeInsufficientStock {
			t.Fatalf("unexpected error: %v", resErr)
		}
		losses++
	}
	if wins != 1 || losses != callers-1 {
		t.Fatalf("wins = %d losses = %d, want exactly one winner", wins, losses)
	}
	if got := currentStock(t, conn, variant.ID); got != 0 {
		t.Fatalf("stock = %d, want 0", got)
	}
}

func TestReserve_ScopedToTenant(t *testing.T) {
	conn := newTestDB(t)
	variant := seedVariant(t, conn, uuid.New(), 5)
	mover := NewMover()

	err := mover.Reserve(context.Background(), conn, uuid.New(), variant.ID, 1)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeInsufficientStock {
		t.Fatalf("cross-tenant reserve should not match any row, got %v", err)
	}
	if got := currentStock(t, conn, variant.ID); got != 5 {
		t.Fatalf("stock should be untouched, got %d", got)
	}
}

func TestRelease_RestoresStock(t *testing.T) {
	conn := newTestDB(t)
	tenantID := uuid.New()
	variant := seedVariant(t, conn, tenantID, 0)
	mover := NewMover()

	if err := mover.Release(context.Background(), conn, tenantID, variant.ID, 4); err != nil {
		t.Fatalf("release failed: %v", err)
	}
	if got := currentStock(t, conn, variant.ID); got != 4 {
		t.Fatalf("stock = %d, want 4", got)
	}
}

func TestReserve_RejectsNonPositiveQty(t *testing.T) {
	mover := NewMover()
	err := mover.Reserve(context.Background(), nil, uuid.New(), uuid.New(), 0)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestRelease_NoopOnZeroQty(t *testing.T) {
	mover := NewMover()
	if err := mover.Release(context.Background(), nil, uuid.New(), uuid.New(), 0); err != nil {
		t.Fatalf("zero release should be a noop, got %v", err)
	}
}
