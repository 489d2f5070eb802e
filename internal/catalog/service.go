package catalog

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/jewelmandi/jewelmandi-backend/internal/tenant"
	"github.com/jewelmandi/jewelmandi-backend/pkg/db"
	"github.com/jewelmandi/jewelmandi-backend/pkg/db/models"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
)

// Service defines tenant-scoped catalog operations.
type Service interface {
	CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error)
	ListCategories(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]models.Category, error)
	UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*models.Category, error)
	DeactivateCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error

	CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error)
	GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error)
	ListProducts(ctx context.Context, tenantID uuid.UUID, filter ProductFilter) ([]models.Product, int64, error)
	UpdateProduct(ctx context.Context, input UpdateProductInput) (*models.Product, error)
	DeactivateProduct(ctx context.Context, tenantID, productID uuid.UUID) error
}

type service struct {
	repo Repository
}

// CreateCategoryInput carries the fields accepted on category creation.
type CreateCategoryInput struct {
	TenantID    uuid.UUID
	Name        string
	Description *string
	ImageURL    *string
}

// UpdateCategoryInput carries a partial category update.
type UpdateCategoryInput struct {
	TenantID    uuid.UUID
	CategoryID  uuid.UUID
	Name        *string
	Description *string
	ImageURL    *string
	IsActive    *bool
}

// CreateProductInput carries the fields accepted on product creation.
type CreateProductInput struct {
	TenantID    uuid.UUID
	CategoryID  uuid.UUID
	Name        string
	DesignCode  *string
	Description *string
	MetalType   enums.MetalType
	Images      []string
}

// UpdateProductInput carries a partial product update.
type UpdateProductInput struct {
	TenantID    uuid.UUID
	ProductID   uuid.UUID
	CategoryID  *uuid.UUID
	Name        *string
	DesignCode  *string
	Description *string
	MetalType   *enums.MetalType
	Images      []string
	IsActive    *bool
}

// NewService wires a catalog service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("catalog repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateCategory(ctx context.Context, input CreateCategoryInput) (*models.Category, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name required")
	}

	category := &models.Category{
		TenantID:    input.TenantID,
		Name:        name,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		IsActive:    true,
	}
	if err := s.repo.CreateCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating category")
	}
	return category, nil
}

func (s *service) ListCategories(ctx context.Context, tenantID uuid.UUID, activeOnly bool) ([]models.Category, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	categories, err := s.repo.ListCategories(ctx, tenantID, activeOnly)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing categories")
	}
	return categories, nil
}

func (s *service) UpdateCategory(ctx context.Context, input UpdateCategoryInput) (*models.Category, error) {
	category, err := s.resolveCategory(ctx, input.TenantID, input.CategoryID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "category name cannot be empty")
		}
		category.Name = name
	}
	if input.Description != nil {
		category.Description = input.Description
	}
	if input.ImageURL != nil {
		category.ImageURL = input.ImageURL
	}
	if input.IsActive != nil {
		category.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating category")
	}
	return category, nil
}

func (s *service) DeactivateCategory(ctx context.Context, tenantID, categoryID uuid.UUID) error {
	category, err := s.resolveCategory(ctx, tenantID, categoryID)
	if err != nil {
		return err
	}
	if !category.IsActive {
		return nil
	}
	category.IsActive = false
	if err := s.repo.UpdateCategory(ctx, category); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivating category")
	}
	return nil
}

func (s *service) CreateProduct(ctx context.Context, input CreateProductInput) (*models.Product, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name required")
	}
	if !input.MetalType.IsValid() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid metal type %q", input.MetalType))
	}
	if _, err := s.resolveCategory(ctx, input.TenantID, input.CategoryID); err != nil {
		return nil, err
	}

	product := &models.Product{
		TenantID:    input.TenantID,
		CategoryID:  input.CategoryID,
		Name:        name,
		DesignCode:  normalizeCode(input.DesignCode),
		Description: input.Description,
		MetalType:   input.MetalType,
		Images:      input.Images,
		IsActive:    true,
	}
	if err := s.repo.CreateProduct(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateKey, "design code already in use").
				WithDetails(map[string]string{"field": "design_code"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating product")
	}
	return product, nil
}

func (s *service) GetProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	return s.resolveProduct(ctx, tenantID, productID)
}

func (s *service) ListProducts(ctx context.Context, tenantID uuid.UUID, filter ProductFilter) ([]models.Product, int64, error) {
	if tenantID == uuid.Nil {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	products, total, err := s.repo.ListProducts(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing products")
	}
	return products, total, nil
}

func (s *service) UpdateProduct(ctx context.Context, input UpdateProductInput) (*models.Product, error) {
	product, err := s.resolveProduct(ctx, input.TenantID, input.ProductID)
	if err != nil {
		return nil, err
	}

	if input.CategoryID != nil {
		if _, err := s.resolveCategory(ctx, input.TenantID, *input.CategoryID); err != nil {
			return nil, err
		}
		product.CategoryID = *input.CategoryID
	}
	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "product name cannot be empty")
		}
		product.Name = name
	}
	if input.DesignCode != nil {
		product.DesignCode = normalizeCode(input.DesignCode)
	}
	if input.Description != nil {
		product.Description = input.Description
	}
	if input.MetalType != nil {
		if !input.MetalType.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid metal type %q", *input.MetalType))
		}
		product.MetalType = *input.MetalType
	}
	if input.Images != nil {
		product.Images = input.Images
	}
	if input.IsActive != nil {
		product.IsActive = *input.IsActive
	}

	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		if db.IsUniqueViolation(err, "") {
			return nil, pkgerrors.New(pkgerrors.CodeDuplicateKey, "design code already in use").
				WithDetails(map[string]string{"field": "design_code"})
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating product")
	}
	return product, nil
}

func (s *service) DeactivateProduct(ctx context.Context, tenantID, productID uuid.UUID) error {
	product, err := s.resolveProduct(ctx, tenantID, productID)
	if err != nil {
		return err
	}
	if !product.IsActive {
		return nil
	}
	product.IsActive = false
	if err := s.repo.UpdateProduct(ctx, product); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivating product")
	}
	return nil
}

func (s *service) resolveCategory(ctx context.Context, tenantID, categoryID uuid.UUID) (*models.Category, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if categoryID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "category id required")
	}
	category, err := s.repo.FindCategoryByID(ctx, categoryID)
	var rowTenant uuid.UUID
	if category != nil {
		rowTenant = category.TenantID
	}
	if guardErr := tenant.Resolve(err, "category", rowTenant, tenantID); guardErr != nil {
		return nil, guardErr
	}
	return category, nil
}

func (s *service) resolveProduct(ctx context.Context, tenantID, productID uuid.UUID) (*models.Product, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if productID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "product id required")
	}
	product, err := s.repo.FindProductByID(ctx, productID)
	var rowTenant uuid.UUID
	if product != nil {
		rowTenant = product.TenantID
	}
	if guardErr := tenant.Resolve(err, "product", rowTenant, tenantID); guardErr != nil {
		return nil, guardErr
	}
	return product, nil
}

func normalizeCode(code *string) *string {
	if code == nil {
		return nil
	}
	trimmed := strings.ToUpper(strings.TrimSpace(*code))
	if trimmed == "" {
		return nil
	}
	return &trimmed
}
