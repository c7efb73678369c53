package payment

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// MonthSummary aggregates payments for a calendar month.
type MonthSummary struct {
	Count   int64
	Total   decimal.Decimal
	Average decimal.Decimal
}

// MethodTotal aggregates payments by method for a calendar month.
type MethodTotal struct {
	Method Method
	Count  int64
	Total  decimal.Decimal
}

// PlanIncome aggregates membership-linked payments per plan.
type PlanIncome struct {
	Plan  string
	Count int64
	Total decimal.Decimal
}

// Repository defines the interface for payment persistence
type Repository interface {
	// FindByID finds a payment by its ID
	FindByID(ctx context.Context, id uint) (*Payment, error)

	// FindAll finds all payments, newest first
	FindAll(ctx context.Context) ([]Payment, error)

	// FindByMember finds a member's payments, newest first
	FindByMember(ctx context.Context, memberID uint) ([]Payment, error)

	// FindByMemberAndConcept finds a member's payments with exactly the
	// given concept string, newest first. Used by the debt
	// reconciliation to locate the payment absorbing a correction.
	FindByMemberAndConcept(ctx context.Context, memberID uint, concept string) ([]Payment, error)

	// FindEarliestByMembership finds the oldest payment linked to a
	// membership, or ErrNotFound. The earliest payment is treated as the
	// original membership payment when reconciling edits.
	FindEarliestByMembership(ctx context.Context, membershipID uint) (*Payment, error)

	// SummaryForMonth computes count, sum and average of payments dated
	// in the given month
	SummaryForMonth(ctx context.Context, t time.Time) (MonthSummary, error)

	// TotalsByMethod breaks payments dated in the given month down by
	// method
	TotalsByMethod(ctx context.Context, t time.Time) ([]MethodTotal, error)

	// IncomeForMonth sums payments dated in the given month
	IncomeForMonth(ctx context.Context, t time.Time) (decimal.Decimal, error)

	// IncomeByPlan sums membership-linked payments per plan, highest
	// income first
	IncomeByPlan(ctx context.Context) ([]PlanIncome, error)

	// Save creates or updates a payment
	Save(ctx context.Context, payment *Payment) error
}
