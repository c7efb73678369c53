package debt

import (
	"context"

	"github.com/shopspring/decimal"
)

// MemberDebtSummary aggregates a member's outstanding debt for the
// members-with-debt report.
type MemberDebtSummary struct {
	MemberID uint
	Name     string
	Phone    string
	Email    string
	Total    decimal.Decimal
}

// Repository defines the interface for debt persistence
type Repository interface {
	// FindByID finds a debt by its ID
	FindByID(ctx context.Context, id uint) (*Debt, error)

	// FindAll finds all debts, latest due date first
	FindAll(ctx context.Context) ([]Debt, error)

	// FindOutstanding finds pending and partial debts, soonest due date
	// first
	FindOutstanding(ctx context.Context) ([]Debt, error)

	// FindByMember finds a member's debts, latest due date first
	FindByMember(ctx context.Context, memberID uint) ([]Debt, error)

	// TotalOutstanding sums the pending amount over pending and partial
	// debts
	TotalOutstanding(ctx context.Context) (decimal.Decimal, error)

	// MembersWithDebt aggregates outstanding debt per member, largest
	// total first
	MembersWithDebt(ctx context.Context) ([]MemberDebtSummary, error)

	// Save creates or updates a debt
	Save(ctx context.Context, debt *Debt) error
}
