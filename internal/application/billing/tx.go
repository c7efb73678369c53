package billing

import (
	"context"

	"github.com/gymtrack/backend/internal/domain/debt"
	"github.com/gymtrack/backend/internal/domain/membership"
	"github.com/gymtrack/backend/internal/domain/payment"
)

// TransactionScope provides transactional access to the billing
// repositories. The membership and debt cascades are multi-step writes
// across memberships, payments and debts; running them through a scope
// makes the whole cascade commit or roll back atomically.
type TransactionScope interface {
	// Execute runs the given function within a database transaction.
	// If the function returns an error, the transaction is rolled back.
	Execute(ctx context.Context, fn func(repos Repositories) error) error
}

// Repositories provides access to the billing repositories within a
// transaction. All repositories returned share the same underlying
// database transaction.
type Repositories interface {
	// Memberships returns the membership repository scoped to the current transaction
	Memberships() membership.Repository
	// Payments returns the payment repository scoped to the current transaction
	Payments() payment.Repository
	// Debts returns the debt repository scoped to the current transaction
	Debts() debt.Repository
}

// NoOpTransactionScope runs cascades without a real transaction. Useful
// in tests, where the repositories are mocks and atomicity is not under
// test.
type NoOpTransactionScope struct {
	memberships membership.Repository
	payments    payment.Repository
	debts       debt.Repository
}

// NewNoOpTransactionScope creates a NoOpTransactionScope over the given
// repositories.
func NewNoOpTransactionScope(
	memberships membership.Repository,
	payments payment.Repository,
	debts debt.Repository,
) *NoOpTransactionScope {
	return &NoOpTransactionScope{
		memberships: memberships,
		payments:    payments,
		debts:       debts,
	}
}

// Execute runs the function directly against the wrapped repositories.
func (s *NoOpTransactionScope) Execute(_ context.Context, fn func(repos Repositories) error) error {
	return fn(s)
}

// Memberships returns the membership repository.
func (s *NoOpTransactionScope) Memberships() membership.Repository {
	return s.memberships
}

// Payments returns the payment repository.
func (s *NoOpTransactionScope) Payments() payment.Repository {
	return s.payments
}

// Debts returns the debt repository.
func (s *NoOpTransactionScope) Debts() debt.Repository {
	return s.debts
}

var _ TransactionScope = (*NoOpTransactionScope)(nil)
