// Package tenant centralizes tenancy identity and row-level access checks.
// The identity is derived from verified JWT claims only; request bodies and
// query strings are never trusted for tenant scoping.
package tenant

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/jewelmandi/jewelmandi-backend/pkg/enums"
	pkgerrors "github.com/jewelmandi/jewelmandi-backend/pkg/errors"
)

type ctxKey struct{}

// Identity is the authenticated principal attached to each request.
type Identity struct {
	UserID   uuid.UUID
	TenantID uuid.UUID
	Role     enums.UserRole
	AccessID string
}

// WithIdentity attaches the authenticated identity to the context.
func WithIdentity(ctx context.Context, id Identity) context.Context {
	return context.WithValue(ctx, ctxKey{}, id)
}

// FromContext returns the identity stored by the auth middleware.
func FromContext(ctx context.Context) (Identity, bool) {
	id, ok := ctx.Value(ctxKey{}).(Identity)
	return id, ok
}

// MustFromContext returns the identity or an unauthorized error when absent.
func MustFromContext(ctx context.Context) (Identity, error) {
	id, ok := FromContext(ctx)
	if !ok || id.TenantID == uuid.Nil {
		return Identity{}, pkgerrors.New(pkgerrors.CodeUnauthorized, "authentication required")
	}
	return id, nil
}

// Authorize compares a resolved row's tenant against the caller's tenant.
// A mismatch deliberately reveals existence: the row was found, the caller
// may not touch it.
func Authorize(rowTenantID, callerTenantID uuid.UUID) error {
	if rowTenantID != callerTenantID {
		return pkgerrors.New(pkgerrors.CodeForbidden, "resource belongs to another tenant")
	}
	return nil
}

// WrapLookup converts repository lookup failures into API errors: a missing
// row becomes NOT_FOUND, anything else a dependency failure.
func WrapLookup(err error, resource string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, fmt.Sprintf("%s not found", resource))
	}
	return pkgerrors.Wrap(pkgerrors.CodeDependency, err, fmt.Sprintf("loading %s", resource))
}

// Resolve applies the full guard sequence for a fetched row.
func Resolve(err error, resource string, rowTenantID, callerTenantID uuid.UUID) error {
	if err != nil {
		return WrapLookup(err, resource)
	}
	return Authorize(rowTenantID, callerTenantID)
}
