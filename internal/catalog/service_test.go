package catalog

import (
	"context"
	"fmt"
	"testing"

	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/pkg/db/models"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
)

func newTestService(t *testing.T) Service {
	t.Helper()
	conn, err := gorm.Open(sqlite.Open(fmt.Sprintf("file:%s?mode=memory&cache=shared", uuid.NewString())), &gorm.Config{
		SkipDefaultTransaction: true,
	})
	if err != nil {
		t.Fatalf("failed to open sqlite: %v", err)
	}
	if err := conn.AutoMigrate(&models.Category{}, &models.Product{}); err != nil {
		t.Fatalf("failed to migrate: %v", err)
	}
	svc, err := NewService(NewRepository(conn))
	if err != nil {
		t.Fatalf("failed to build service: %v", err)
	}
	return svc
}

func seedCategory(t *testing.T, svc Service, tenantID uuid.UUID, name string) *models.Category {
	t.Helper()
	category, err := svc.CreateCategory(context.Background(), CreateCategoryInput{
		TenantID: tenantID,
		Name:     name,
	})
	if err != nil {
		t.Fatalf("seed category failed: %v", err)
	}
	return category
}

func TestCategoryLifecycle(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tenantID := uuid.New()

	created := seedCategory(t, svc, tenantID, "Rings")

	listed, err := svc.ListCategories(ctx, tenantID, false)
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if len(listed) != 1 || listed[0].Name != "Rings" {
		t.Fatalf("unexpected listing %+v", listed)
	}

	newName := "Gold Rings"
	updated, err := svc.UpdateCategory(ctx, UpdateCategoryInput{
		TenantID:   tenantID,
		CategoryID: created.ID,
		Name:       &newName,
	})
	if err != nil {
		t.Fatalf("update failed: %v", err)
	}
	if updated.Name != "Gold Rings" {
		t.Fatalf("name not updated: %s", updated.Name)
	}

	if err := svc.DeactivateCategory(ctx, tenantID, created.ID); err != nil {
		t.Fatalf("deactivate failed: %v", err)
	}
	active, err := svc.ListCategories(ctx, tenantID, true)
	if err != nil {
		t.Fatalf("list active failed: %v", err)
	}
	if len(active) != 0 {
		t.Fatalf("deactivated category should not be listed as active: %+v", active)
	}
}

func TestCategory_TenantGuard(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()

	created := seedCategory(t, svc, uuid.New(), "Chains")

	_, err := svc.UpdateCategory(ctx, UpdateCategoryInput{
		TenantID:   uuid.New(),
		CategoryID: created.ID,
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden, got %v", err)
	}
}

func TestCreateProduct(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	category := seedCategory(t, svc, tenantID, "Bangles")

	code := "bg-101"
	product, err := svc.CreateProduct(ctx, CreateProductInput{
		TenantID:   tenantID,
		CategoryID: category.ID,
		Name:       "Kada Bangle",
		DesignCode: &code,
		MetalType:  enums.MetalGold,
		Images:     []string{"https://cdn.example/bg-101.jpg"},
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}
	if product.DesignCode == nil || *product.DesignCode != "BG-101" {
		t.Fatalf("design code should be upper-cased, got %v", product.DesignCode)
	}

	got, err := svc.GetProduct(ctx, tenantID, product.ID)
	if err != nil {
		t.Fatalf("get failed: %v", err)
	}
	if got.Category == nil || got.Category.Name != "Bangles" {
		t.Fatalf("category not preloaded: %+v", got.Category)
	}
}

func TestCreateProduct_DuplicateDesignCode(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	category := seedCategory(t, svc, tenantID, "Rings")

	code := "RG-1"
	input := CreateProductInput{
		TenantID:   tenantID,
		CategoryID: category.ID,
		Name:       "Solitaire",
		DesignCode: &code,
		MetalType:  enums.MetalGold,
	}
	if _, err := svc.CreateProduct(ctx, input); err != nil {
		t.Fatalf("first create failed: %v", err)
	}

	input.Name = "Another Solitaire"
	_, err := svc.CreateProduct(ctx, input)
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeDuplicateKey {
		t.Fatalf("expected duplicate key error, got %v", err)
	}
}

func TestCreateProduct_UnknownCategory(t *testing.T) {
	svc := newTestService(t)
	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		TenantID:   uuid.New(),
		CategoryID: uuid.New(),
		Name:       "Orphan",
		MetalType:  enums.MetalSilver,
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeNotFound {
		t.Fatalf("expected not found for unknown category, got %v", err)
	}
}

func TestCreateProduct_ForeignCategory(t *testing.T) {
	svc := newTestService(t)
	foreignCategory := seedCategory(t, svc, uuid.New(), "Foreign")

	_, err := svc.CreateProduct(context.Background(), CreateProductInput{
		TenantID:   uuid.New(),
		CategoryID: foreignCategory.ID,
		Name:       "Trespasser",
		MetalType:  enums.MetalGold,
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeForbidden {
		t.Fatalf("expected forbidden for foreign category, got %v", err)
	}
}

func TestListProducts_FilterByCategory(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	rings := seedCategory(t, svc, tenantID, "Rings")
	chains := seedCategory(t, svc, tenantID, "Chains")

	for _, seed := range []struct {
		name     string
		category uuid.UUID
	}{
		{"Ring A", rings.ID},
		{"Ring B", rings.ID},
		{"Chain A", chains.ID},
	} {
		if _, err := svc.CreateProduct(ctx, CreateProductInput{
			TenantID:   tenantID,
			CategoryID: seed.category,
			Name:       seed.name,
			MetalType:  enums.MetalGold,
		}); err != nil {
			t.Fatalf("create %q failed: %v", seed.name, err)
		}
	}

	products, total, err := svc.ListProducts(ctx, tenantID, ProductFilter{CategoryID: &rings.ID})
	if err != nil {
		t.Fatalf("list failed: %v", err)
	}
	if total != 2 || len(products) != 2 {
		t.Fatalf("expected 2 ring products, got total=%d len=%d", total, len(products))
	}
}

func TestUpdateProduct_InvalidMetalType(t *testing.T) {
	svc := newTestService(t)
	ctx := context.Background()
	tenantID := uuid.New()
	category := seedCategory(t, svc, tenantID, "Rings")

	product, err := svc.CreateProduct(ctx, CreateProductInput{
		TenantID:   tenantID,
		CategoryID: category.ID,
		Name:       "Band",
		MetalType:  enums.MetalGold,
	})
	if err != nil {
		t.Fatalf("create failed: %v", err)
	}

	bad := enums.MetalType("copper")
	_, err = svc.UpdateProduct(ctx, UpdateProductInput{
		TenantID:  tenantID,
		ProductID: product.ID,
		MetalType: &bad,
	})
	appErr := pkgerrors.As(err)
	if appErr == nil || appErr.Code() != pkgerrors.CodeValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
}
