package debt

import (
	"strings"
	"time"

	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the repayment state of a debt
type Status string

const (
	StatusPending   Status = "pending"
	StatusPartial   Status = "partial"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
)

// MembershipConceptMarker identifies debts raised for a membership cycle.
// Edits to such debts mirror the paid amount into the member's active
// membership.
const MembershipConceptMarker = "Membership"

// Debt is an outstanding balance owed by a member.
//
// Invariants, restored by Recalculate after every mutation of the
// amounts:
//
//	PendingAmount == max(TotalAmount - PaidAmount, 0)
//	Status == pending  when PaidAmount == 0
//	Status == partial  when 0 < PaidAmount < TotalAmount
//	Status == paid     when PaidAmount >= TotalAmount
type Debt struct {
	shared.BaseEntity
	MemberID      uint
	TotalAmount   decimal.Decimal
	PaidAmount    decimal.Decimal
	PendingAmount decimal.Decimal
	Concept       string
	DueDate       time.Time
	Status        Status
}

// New creates a debt. The due date defaults to now when zero; pending
// amount and status are derived from the amounts.
func New(memberID uint, total, paid decimal.Decimal, concept string, dueDate time.Time) (*Debt, error) {
	if total.IsNegative() || paid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "debt amounts cannot be negative")
	}
	if dueDate.IsZero() {
		dueDate = time.Now()
	}

	d := &Debt{
		BaseEntity:  shared.NewBaseEntity(),
		MemberID:    memberID,
		TotalAmount: total,
		PaidAmount:  paid,
		Concept:     concept,
		DueDate:     dueDate,
	}
	d.Recalculate()
	return d, nil
}

// Recalculate restores the derived fields from the amounts. Pending is
// total minus paid floored at zero, and the status is a pure function of
// (paid, total).
func (d *Debt) Recalculate() {
	d.PendingAmount = d.TotalAmount.Sub(d.PaidAmount)
	if d.PendingAmount.Sign() < 0 {
		d.PendingAmount = decimal.Zero
	}

	switch {
	case d.PaidAmount.Cmp(d.TotalAmount) >= 0:
		d.Status = StatusPaid
		d.PendingAmount = decimal.Zero
	case d.PaidAmount.Sign() > 0:
		d.Status = StatusPartial
	default:
		d.Status = StatusPending
	}
}

// ApplyPayment adds an installment to the paid amount and restores the
// invariants.
func (d *Debt) ApplyPayment(amount decimal.Decimal) error {
	if amount.Sign() <= 0 {
		return shared.NewDomainError("INVALID_INPUT", "installment amount must be positive")
	}
	d.PaidAmount = d.PaidAmount.Add(amount)
	d.Recalculate()
	d.UpdatedAt = time.Now()
	return nil
}

// IsOutstanding reports whether the debt still has money owed on it.
func (d *Debt) IsOutstanding() bool {
	return d.Status == StatusPending || d.Status == StatusPartial
}

// IsMembershipDebt reports whether the debt was raised for a membership
// cycle, by concept marker.
func (d *Debt) IsMembershipDebt() bool {
	return strings.Contains(d.Concept, MembershipConceptMarker)
}

// Patch holds optional field updates for a debt. Nil fields are left
// untouched by Merge. AmountsChanged reports whether the patch touches
// the figures that drive the derived fields.
type Patch struct {
	TotalAmount *decimal.Decimal
	PaidAmount  *decimal.Decimal
	Concept     *string
	DueDate     *time.Time
	Status      *Status
}

// AmountsChanged reports whether the patch modifies total or paid amount.
func (p Patch) AmountsChanged() bool {
	return p.TotalAmount != nil || p.PaidAmount != nil
}

// Merge returns a copy of the debt with the patch applied. Derived
// fields are recomputed only when the amounts changed; an explicit
// Status in the patch is otherwise preserved as-is. The receiver is not
// modified.
func (d Debt) Merge(p Patch) Debt {
	if p.TotalAmount != nil {
		d.TotalAmount = *p.TotalAmount
	}
	if p.PaidAmount != nil {
		d.PaidAmount = *p.PaidAmount
	}
	if p.Concept != nil {
		d.Concept = *p.Concept
	}
	if p.DueDate != nil {
		d.DueDate = *p.DueDate
	}
	if p.Status != nil {
		d.Status = *p.Status
	}
	if p.AmountsChanged() {
		d.Recalculate()
	}
	d.UpdatedAt = time.Now()
	return d
}
