package customers

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/internal/tenant"
	"github.com/jewelmandi/jewelmandi-backend/pkg/db/models"
	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
	"github.com/jewelmandi/jewelmandi-backend/pkg/types"
)

// Service defines tenant-scoped customer operations.
type Service interface {
	Create(ctx context.Context, input CreateCustomerInput) (*models.Customer, error)
	Get(ctx context.Context, tenantID, customerID uuid.UUID) (*models.Customer, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]models.Customer, int64, error)
	Update(ctx context.Context, input UpdateCustomerInput) (*models.Customer, error)
	Deactivate(ctx context.Context, tenantID, customerID uuid.UUID) error
	AdjustOutstanding(ctx context.Context, tx *gorm.DB, tenantID, customerID uuid.UUID, delta decimal.Decimal) error
}

type service struct {
	repo Repository
}

// CreateCustomerInput carries the fields accepted on customer creation.
type CreateCustomerInput struct {
	TenantID  uuid.UUID
	Name      string
	Mobile    string
	Email     *string
	ShopName  *string
	GSTNumber *string
	Address   *types.Address
}

// UpdateCustomerInput carries a partial customer update. Nil fields are left
// untouched; outstanding_amount is never writable here.
type UpdateCustomerInput struct {
	TenantID   uuid.UUID
	CustomerID uuid.UUID
	Name       *string
	Mobile     *string
	Email      *string
	ShopName   *string
	GSTNumber  *string
	Address    *types.Address
	IsActive   *bool
}

// NewService wires a customer service with the provided repository.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("customers repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) Create(ctx context.Context, input CreateCustomerInput) (*models.Customer, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	name := strings.TrimSpace(input.Name)
	mobile := strings.TrimSpace(input.Mobile)
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name required")
	}
	if mobile == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer mobile required")
	}

	customer := &models.Customer{
		TenantID:          input.TenantID,
		Name:              name,
		Mobile:            mobile,
		Email:             input.Email,
		ShopName:          input.ShopName,
		GSTNumber:         input.GSTNumber,
		Address:           input.Address,
		OutstandingAmount: decimal.Zero,
		IsActive:          true,
	}
	if err := s.repo.Create(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating customer")
	}
	return customer, nil
}

func (s *service) Get(ctx context.Context, tenantID, customerID uuid.UUID) (*models.Customer, error) {
	return s.resolve(ctx, tenantID, customerID)
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]models.Customer, int64, error) {
	if tenantID == uuid.Nil {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	customers, total, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing customers")
	}
	return customers, total, nil
}

func (s *service) Update(ctx context.Context, input UpdateCustomerInput) (*models.Customer, error) {
	customer, err := s.resolve(ctx, input.TenantID, input.CustomerID)
	if err != nil {
		return nil, err
	}

	if input.Name != nil {
		name := strings.TrimSpace(*input.Name)
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer name cannot be empty")
		}
		customer.Name = name
	}
	if input.Mobile != nil {
		mobile := strings.TrimSpace(*input.Mobile)
		if mobile == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer mobile cannot be empty")
		}
		customer.Mobile = mobile
	}
	if input.Email != nil {
		customer.Email = input.Email
	}
	if input.ShopName != nil {
		customer.ShopName = input.ShopName
	}
	if input.GSTNumber != nil {
		customer.GSTNumber = input.GSTNumber
	}
	if input.Address != nil {
		customer.Address = input.Address
	}
	if input.IsActive != nil {
		customer.IsActive = *input.IsActive
	}

	if err := s.repo.Update(ctx, customer); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating customer")
	}
	return customer, nil
}

// Deactivate soft-deletes: orders keep referencing the customer row.
func (s *service) Deactivate(ctx context.Context, tenantID, customerID uuid.UUID) error {
	customer, err := s.resolve(ctx, tenantID, customerID)
	if err != nil {
		return err
	}
	if !customer.IsActive {
		return nil
	}
	customer.IsActive = false
	if err := s.repo.Update(ctx, customer); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "deactivating customer")
	}
	return nil
}

// AdjustOutstanding applies a signed balance delta inside the caller's
// transaction. Order create passes total−paid, cancel passes the negation.
func (s *service) AdjustOutstanding(ctx context.Context, tx *gorm.DB, tenantID, customerID uuid.UUID, delta decimal.Decimal) error {
	if tx == nil {
		return pkgerrors.New(pkgerrors.CodeDependency, "transaction required for balance adjustment")
	}
	if customerID == uuid.Nil {
		return pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if err := s.repo.WithTx(tx).AdjustOutstanding(ctx, tenantID, customerID, delta); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "adjusting outstanding balance")
	}
	return nil
}

func (s *service) resolve(ctx context.Context, tenantID, customerID uuid.UUID) (*models.Customer, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if customerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	customer, err := s.repo.FindByID(ctx, customerID)
	if guardErr := tenant.Resolve(err, "customer", tenantTag(customer), tenantID); guardErr != nil {
		return nil, guardErr
	}
	return customer, nil
}

func tenantTag(customer *models.Customer) uuid.UUID {
	if customer == nil {
		return uuid.Nil
	}
	return customer.TenantID
}
