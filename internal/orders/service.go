package orders

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/internal/inventory"
	"github.com/jewelmandi/jewelmandi-backend/internal/tenant"
	"github.com/jewelmandi/jewelmandi-backend/pkg/db"
	"github.com/jewelmandi/jewelmandi-backend/pkg/db/models"
	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
)

type txRunner interface {
	WithTx(ctx context.Context, fn func(tx *gorm.DB) error) error
}

type balanceAdjuster interface {
	AdjustOutstanding(ctx context.Context, tx *gorm.DB, tenantID, customerID uuid.UUID, delta decimal.Decimal) error
}

// Service defines the transactional order operations.
type Service interface {
	Create(ctx context.Context, input CreateOrderInput) (*models.Order, error)
	Cancel(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error)
	Update(ctx context.Context, input UpdateOrderInput) (*models.Order, error)
	Get(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error)
	List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]models.Order, int64, error)
}

type service struct {
	repo    Repository
	tx      txRunner
	stock   inventory.Mover
	balance balanceAdjuster
}

// NewService builds an order service with the required dependencies.
func NewService(repo Repository, tx txRunner, stock inventory.Mover, balance balanceAdjuster) (Service, error) {
	if repo == nil {
		return nil, fmt.Errorf("orders repository required")
	}
	if tx == nil {
		return nil, fmt.Errorf("transaction runner required")
	}
	if stock == nil {
		return nil, fmt.Errorf("inventory mover required")
	}
	if balance == nil {
		return nil, fmt.Errorf("balance adjuster required")
	}
	return &service{repo: repo, tx: tx, stock: stock, balance: balance}, nil
}

// Create places an order atomically: stock reservation, price snapshot, order
// persistence, and the outstanding-balance delta either all commit or none do.
func (s *service) Create(ctx context.Context, input CreateOrderInput) (*models.Order, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if input.CustomerID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "customer id required")
	}
	if len(input.Items) == 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order requires at least one item")
	}
	for _, item := range input.Items {
		if item.VariantID == uuid.Nil {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "variant id required on every item")
		}
		if item.Quantity <= 0 {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item quantity must be positive")
		}
	}
	if input.PaidAmount.IsNegative() {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "paid amount cannot be negative")
	}

	var orderID uuid.UUID
	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		customer, err := repo.FindCustomerByID(ctx, input.CustomerID)
		if guardErr := tenant.Resolve(err, "customer", customerTenant(customer), input.TenantID); guardErr != nil {
			return guardErr
		}

		total := decimal.Zero
		items := make([]models.OrderItem, 0, len(input.Items))
		for _, line := range input.Items {
			variant, err := repo.FindVariantByID(ctx, line.VariantID)
			if guardErr := tenant.Resolve(err, "variant", variantTenant(variant), input.TenantID); guardErr != nil {
				return guardErr
			}
			// Inactive variants are invisible to ordering.
			if !variant.IsActive {
				return pkgerrors.New(pkgerrors.CodeNotFound, "variant not found")
			}

			if err := s.stock.Reserve(ctx, tx, input.TenantID, variant.ID, line.Quantity); err != nil {
				if appErr := pkgerrors.As(err); appErr != nil && appErr.Code() == pkgerrors.CodeInsufficientStock {
					return pkgerrors.New(pkgerrors.CodeInsufficientStock,
						fmt.Sprintf("insufficient stock for %s", variant.SKU)).
						WithDetails(map[string]any{"sku": variant.SKU, "requested": line.Quantity})
				}
				return err
			}

			lineTotal := variant.FinalPrice.Mul(decimal.NewFromInt(int64(line.Quantity)))
			total = total.Add(lineTotal)
			items = append(items, models.OrderItem{
				TenantID:     input.TenantID,
				VariantID:    variant.ID,
				Quantity:     line.Quantity,
				GrossWeight:  variant.GrossWeight,
				NetWeight:    variant.NetWeight,
				PricePerUnit: variant.FinalPrice,
				TotalPrice:   lineTotal,
			})
		}

		orderDate := time.Now()
		if input.OrderDate != nil {
			orderDate = *input.OrderDate
		}

		order := &models.Order{
			TenantID:      input.TenantID,
			OrderNumber:   newOrderNumber(time.Now()),
			CustomerID:    customer.ID,
			OrderDate:     orderDate,
			TotalAmount:   total,
			PaidAmount:    input.PaidAmount,
			PaymentStatus: enums.DerivePaymentStatus(input.PaidAmount, total),
			OrderStatus:   enums.OrderStatusPlaced,
			Notes:         input.Notes,
		}
		if err := repo.CreateOrder(ctx, order); err != nil {
			if db.IsUniqueViolation(err, "") {
				return pkgerrors.New(pkgerrors.CodeDuplicateKey, "order number collision").
					WithDetails(map[string]string{"field": "order_number"})
			}
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order")
		}

		for i := range items {
			items[i].OrderID = order.ID
		}
		if err := repo.CreateOrderItems(ctx, items); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "creating order items")
		}

		if err := s.balance.AdjustOutstanding(ctx, tx, input.TenantID, customer.ID, total.Sub(input.PaidAmount)); err != nil {
			return err
		}

		orderID = order.ID
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, input.TenantID, orderID)
}

// Cancel reverses a placed order: stock returns, the unpaid balance delta is
// undone, and the order is marked cancelled, all in one transaction.
func (s *service) Cancel(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	err := s.tx.WithTx(ctx, func(tx *gorm.DB) error {
		repo := s.repo.WithTx(tx)

		order, err := repo.FindOrderByID(ctx, orderID)
		if guardErr := tenant.Resolve(err, "order", orderTenant(order), tenantID); guardErr != nil {
			return guardErr
		}
		if order.OrderStatus == enums.OrderStatusCancelled {
			return pkgerrors.New(pkgerrors.CodeAlreadyCancelled, "order is already cancelled")
		}
		if !order.OrderStatus.CanTransitionTo(enums.OrderStatusCancelled) {
			return pkgerrors.New(pkgerrors.CodeInvalidTransition,
				fmt.Sprintf("cannot cancel a %s order", order.OrderStatus))
		}

		for _, item := range order.Items {
			if err := s.stock.Release(ctx, tx, tenantID, item.VariantID, item.Quantity); err != nil {
				return err
			}
		}

		unpaid := order.TotalAmount.Sub(order.PaidAmount)
		if err := s.balance.AdjustOutstanding(ctx, tx, tenantID, order.CustomerID, unpaid.Neg()); err != nil {
			return err
		}

		order.OrderStatus = enums.OrderStatusCancelled
		if err := repo.UpdateOrder(ctx, order); err != nil {
			return pkgerrors.Wrap(pkgerrors.CodeDependency, err, "cancelling order")
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return s.Get(ctx, tenantID, orderID)
}

// Update is the administrative override. It deliberately skips the balance
// ledger on paid_amount changes and refuses cancellation, which has its own
// path with stock and ledger reversal.
func (s *service) Update(ctx context.Context, input UpdateOrderInput) (*models.Order, error) {
	if input.TenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if input.OrderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}

	order, err := s.repo.FindOrderByID(ctx, input.OrderID)
	if guardErr := tenant.Resolve(err, "order", orderTenant(order), input.TenantID); guardErr != nil {
		return nil, guardErr
	}

	if input.OrderStatus != nil {
		next := *input.OrderStatus
		if !next.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid order status %q", next))
		}
		if next == enums.OrderStatusCancelled && order.OrderStatus != enums.OrderStatusCancelled {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidTransition,
				"cancellation must go through the cancel endpoint")
		}
		if !order.OrderStatus.CanTransitionTo(next) {
			return nil, pkgerrors.New(pkgerrors.CodeInvalidTransition,
				fmt.Sprintf("cannot move order from %s to %s", order.OrderStatus, next))
		}
		order.OrderStatus = next
	}

	if input.PaidAmount != nil {
		if input.PaidAmount.IsNegative() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "paid amount cannot be negative")
		}
		order.PaidAmount = *input.PaidAmount
		order.PaymentStatus = enums.DerivePaymentStatus(order.PaidAmount, order.TotalAmount)
	}
	if input.PaymentStatus != nil {
		if !input.PaymentStatus.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, fmt.Sprintf("invalid payment status %q", *input.PaymentStatus))
		}
		order.PaymentStatus = *input.PaymentStatus
	}
	if input.Notes != nil {
		order.Notes = input.Notes
	}

	if err := s.repo.UpdateOrder(ctx, order); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "updating order")
	}
	return s.Get(ctx, input.TenantID, order.ID)
}

func (s *service) Get(ctx context.Context, tenantID, orderID uuid.UUID) (*models.Order, error) {
	if tenantID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if orderID == uuid.Nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "order id required")
	}
	order, err := s.repo.FindOrderDetail(ctx, orderID)
	if guardErr := tenant.Resolve(err, "order", orderTenant(order), tenantID); guardErr != nil {
		return nil, guardErr
	}
	return order, nil
}

func (s *service) List(ctx context.Context, tenantID uuid.UUID, filter ListFilter) ([]models.Order, int64, error) {
	if tenantID == uuid.Nil {
		return nil, 0, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	orders, total, err := s.repo.List(ctx, tenantID, filter)
	if err != nil {
		return nil, 0, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "listing orders")
	}
	return orders, total, nil
}

// newOrderNumber builds a human-readable, collision-unlikely order number.
// The unique index on order_number backs it up; a collision surfaces as
// DUPLICATE_KEY and the client retries.
func newOrderNumber(now time.Time) string {
	return fmt.Sprintf("ORD-%d-%03d", now.UnixMilli(), rand.Intn(1000))
}

func customerTenant(c *models.Customer) uuid.UUID {
	if c == nil {
		return uuid.Nil
	}
	return c.TenantID
}

func variantTenant(v *models.ProductVariant) uuid.UUID {
	if v == nil {
		return uuid.Nil
	}
	return v.TenantID
}

func orderTenant(o *models.Order) uuid.UUID {
	if o == nil {
		return uuid.Nil
	}
	return o.TenantID
}
