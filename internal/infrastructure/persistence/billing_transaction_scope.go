package persistence

import (
	"context"

	"github.com/gymtrack/backend/internal/application/billing"
	"github.com/gymtrack/backend/internal/domain/debt"
	"github.com/gymtrack/backend/internal/domain/membership"
	"github.com/gymtrack/backend/internal/domain/payment"
	"gorm.io/gorm"
)

// GormBillingTransactionScope implements billing.TransactionScope using
// GORM transactions. Every repository handed to the callback is bound to
// the same transaction, so a failed cascade rolls back all of its writes.
type GormBillingTransactionScope struct {
	db *gorm.DB
}

// NewGormBillingTransactionScope creates a new GormBillingTransactionScope
func NewGormBillingTransactionScope(db *gorm.DB) *GormBillingTransactionScope {
	return &GormBillingTransactionScope{db: db}
}

// Execute runs the given function within a database transaction
func (s *GormBillingTransactionScope) Execute(ctx context.Context, fn func(repos billing.Repositories) error) error {
	return s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		repos := &gormBillingRepositories{tx: tx}
		return fn(repos)
	})
}

// gormBillingRepositories provides transaction-scoped repositories
type gormBillingRepositories struct {
	tx *gorm.DB
}

func (r *gormBillingRepositories) Memberships() membership.Repository {
	return NewGormMembershipRepository(r.tx)
}

func (r *gormBillingRepositories) Payments() payment.Repository {
	return NewGormPaymentRepository(r.tx)
}

func (r *gormBillingRepositories) Debts() debt.Repository {
	return NewGormDebtRepository(r.tx)
}

var (
	_ billing.TransactionScope = (*GormBillingTransactionScope)(nil)
	_ billing.Repositories     = (*gormBillingRepositories)(nil)
)
