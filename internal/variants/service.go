package variants

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jewelmandi/jewelmandi-backend/internal/pricing"
	"github.com/jewelmandi/jewelmandi-backend/internal/tenant"
	"github.com/jewelmandi/jewelmandi-backend/pkg/db"
	"github.com/jewelmandi/jewelmandi-backend/pkg/db/models"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
)

// ProductResolver checks the parent product exists and belongs to the tenant.
type ProductResolver interface {
	GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error)
}

// Service defines tenant-scoped variant operations. The materialized
// final_price is recomputed here, synchronously, on every pricing-input
// write; reads never derive it.
type Service interface {
	Create(ctx context.Context, input CreateVariantInput) (*models.ProductVariant, error)
	Get(ctx context.Context, tenantID, variantID uuid.UUID) (*models.ProductVariant, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]models.ProductVariant, int64, error)
	Update(ctx context.Context, input UpdateVariantInput) (*models.ProductVariant, error)
	Deactivate(ctx context.Context, tenantID, variantID uuid.UUID) error
	Quote(ctx context.Context, tenantID, variantID uuid.UUID) (*pricing.Breakdown, error)
}

type service struct {
	repo     Repository
	products ProductResolver
}

// CreateVariantInput carries the fields accepted on variant creation.
type CreateVariantInput struct {
	TenantID          uuid.UUID
	ProductID         uuid.UUID
	SKU               string
	Purity            enums.Purity
	GrossWeight       decimal.Decimal
	NetWeight         decimal.Decimal
	StoneWeight       decimal.Decimal
	MetalRate         decimal.Decimal
	MakingChargeType  enums.MakingChargeType
	MakingChargeValue decimal.Decimal
	WastagePercentage decimal.Decimal
	StonePrice        decimal.Decimal
	GSTPercentage     *decimal.Decimal
	StockQty          int
}

// UpdateVariantInput carries a partial variant update. Direct StockQty writes
// are last-write-wins; only the order flow moves stock atomically.
type UpdateVariantInput struct {
	TenantID          uuid.UUID
	VariantID         uuid.UUID
	SKU               *string
	Purity            *enums.Purity
	GrossWeight       *decimal.Decimal
	NetWeight         *decimal.Decimal
	StoneWeight       *decimal.Decimal
	MetalRate         *decimal.Decimal
	MakingChargeType  *enums.MakingChargeType
	MakingChargeValue *decimal.Decimal
	WastagePercentage *decimal.Decimal
	StonePrice        *decimal.Decimal
	GSTPercentage     *decimal.Decimal
	StockQty          *int
	IsActive          *bool
}

var defaultGST = decimal.NewFromInt(3)

// NewService wires a variant service with its repository and product resolver.
func NewService(repo Repository, products ProductResolver) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("variants repository required")
	}
	if products == nil {
		return nil, fmt.Errorf("product resolver required")
	}
	return &service{repo: repo, products: products}, nil
}

func (s *service) Create(ctx context.Context, input CreateVariantInput) (*models.ProductVariant, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	sku := strings.ToUpper(strings.TrimSpace(input.SKU))
	if sku == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku required")
	}
	if !input.Purity.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid purity %q", input.Purity))
	}
	if input.StockQty < 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock qty cannot be negative")
	}
	if input.NetWeight.GreaterThan(input.GrossWeight) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "net weight cannot exceed gross weight")
	}
	if _, err := s.products.GetProduct(ctx, input.TenantID, input.ProductID); err != nil {
		return nil, err
	}

	gst := defaultGST
	if input.GSTPercentage != nil {
		gst = *input.GSTPercentage
	}

	variant := &models.ProductVariant{
		TenantID:          input.TenantID,
		ProductID:         input.ProductID,
		SKU:               sku,
		Purity:            input.Purity,
		GrossWeight:       input.GrossWeight,
		NetWeight:         input.NetWeight,
		StoneWeight:       input.StoneWeight,
		MetalRate:         input.MetalRate,
		MakingChargeType:  input.MakingChargeType,
		MakingChargeValue: input.MakingChargeValue,
		WastagePercentage: input.WastagePercentage,
		StonePrice:        input.StonePrice,
		GSTPercentage:     gst,
		StockQty:          input.StockQty,
		IsActive:          true,
	}

	if err := s.reprice(variant); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, variant); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateKey, "sku already in use").
				WithDetails(map[string]string{"field": "sku"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating variant")
	}
	return variant, nil
}

func (s *service) Get(ctx context.Context, tenantID, variantID uuid.UUID) (*models.ProductVariant, error) {
	return s.resolve(ctx, tenantID, variantID)
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]models.ProductVariant, int64, error) {
	if tenantID == uuid.Nil {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	variants, total, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing variants")
	}
	return variants, total, nil
}

func (s *service) Update(ctx context.Context, input UpdateVariantInput) (*models.ProductVariant, error) {
	variant, err := s.resolve(ctx, input.TenantID, input.VariantID)
	if err != nil {
		return nil, err
	}

	repriceNeeded := false

	if input.SKU != nil {
		sku := strings.ToUpper(strings.TrimSpace(*input.SKU))
		if sku == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "sku cannot be empty")
		}
		variant.SKU = sku
	}
	if input.Purity != nil {
		if !input.Purity.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid purity %q", *input.Purity))
		}
		variant.Purity = *input.Purity
	}
	if input.GrossWeight != nil {
		variant.GrossWeight = *input.GrossWeight
	}
	if input.NetWeight != nil {
		variant.NetWeight = *input.NetWeight
		repriceNeeded = true
	}
	if input.StoneWeight != nil {
		variant.StoneWeight = *input.StoneWeight
	}
	if input.MetalRate != nil {
		variant.MetalRate = *input.MetalRate
		repriceNeeded = true
	}
	if input.MakingChargeType != nil {
		variant.MakingChargeType = *input.MakingChargeType
		repriceNeeded = true
	}
	if input.MakingChargeValue != nil {
		variant.MakingChargeValue = *input.MakingChargeValue
		repriceNeeded = true
	}
	if input.WastagePercentage != nil {
		variant.WastagePercentage = *input.WastagePercentage
		repriceNeeded = true
	}
	if input.StonePrice != nil {
		variant.StonePrice = *input.StonePrice
		repriceNeeded = true
	}
	if input.GSTPercentage != nil {
		variant.GSTPercentage = *input.GSTPercentage
		repriceNeeded = true
	}
	if input.StockQty != nil {
		if *input.StockQty < 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "stock qty cannot be negative")
		}
		variant.StockQty = *input.StockQty
	}
	if input.IsActive != nil {
		variant.IsActive = *input.IsActive
	}

	if variant.NetWeight.GreaterThan(variant.GrossWeight) {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "net weight cannot exceed gross weight")
	}

	if repriceNeeded {
		if err := s.reprice(variant); err != nil {
			return nil, err
		}
	}

	if err := s.repo.Update(ctx, variant); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateKey, "sku already in use").
				WithDetails(map[string]string{"field": "sku"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating variant")
	}
	return variant, nil
}

func (s *service) Deactivate(ctx context.Context, tenantID, variantID uuid.UUID) error {
	variant, err := s.resolve(ctx, tenantID, variantID)
	if err != nil {
		return err
	}
	if !variant.IsActive {
		return nil
	}
	variant.IsActive = false
	if err := s.repo.Update(ctx, variant); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivating variant")
	}
	return nil
}

// Quote recomputes the full breakdown from current inputs without persisting.
func (s *service) Quote(ctx context.Context, tenantID, variantID uuid.UUID) (*pricing.Breakdown, error) {
	variant, err := s.resolve(ctx, tenantID, variantID)
	if err != nil {
		return nil, err
	}
	breakdown, err := pricing.Compute(pricingInputs(variant))
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeValidation, err, "computing price")
	}
	return &breakdown, nil
}

func (s *service) reprice(variant *models.ProductVariant) error {
	breakdown, err := pricing.Compute(pricingInputs(variant))
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "computing price")
	}
	variant.FinalPrice = breakdown.FinalPrice
	return nil
}

func pricingInputs(variant *models.ProductVariant) pricing.Inputs {
	return pricing.Inputs{
		NetWeight:         variant.NetWeight,
		MetalRate:         variant.MetalRate,
		WastagePercentage: variant.WastagePercentage,
		MakingChargeType:  variant.MakingChargeType,
		MakingChargeValue: variant.MakingChargeValue,
		StonePrice:        variant.StonePrice,
		GSTPercentage:     variant.GSTPercentage,
	}
}

func (s *service) resolve(ctx context.Context, tenantID, variantID uuid.UUID) (*models.ProductVariant, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if variantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id required")
	}
	variant, err := s.repo.FindByID(ctx, variantID)
	var rowTenant uuid.UUID
	if variant != nil {
		rowTenant = variant.TenantID
	}
	if guardErr := tenant.Resolve(err, "variant", rowTenant, tenantID); guardErr != nil {
		return nil, guardErr
	}
	return variant, nil
}
