package membership

import (
	"time"

	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Status represents the lifecycle state of a membership
type Status string

const (
	StatusActive    Status = "active"
	StatusExpired   Status = "expired"
	StatusCancelled Status = "cancelled"
	StatusFrozen    Status = "frozen"
)

// Membership is a time-bounded subscription binding a member to a plan.
// At most one membership per member may be active at any time; creating a
// new one cancels all previously active ones. The invariant is enforced by
// the lifecycle service, not by a store constraint.
type Membership struct {
	shared.BaseEntity
	MemberID   uint
	PlanID     uint
	StartDate  time.Time
	EndDate    time.Time
	MonthsPaid int
	AmountPaid decimal.Decimal
	Status     Status
}

// New creates an active membership starting now. The end date is the
// start plus monthsPaid calendar months.
func New(memberID, planID uint, monthsPaid int, amountPaid decimal.Decimal) (*Membership, error) {
	if monthsPaid < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "months paid must be at least 1")
	}
	if amountPaid.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "amount paid cannot be negative")
	}

	start := time.Now()
	return &Membership{
		BaseEntity: shared.NewBaseEntity(),
		MemberID:   memberID,
		PlanID:     planID,
		StartDate:  start,
		EndDate:    start.AddDate(0, monthsPaid, 0),
		MonthsPaid: monthsPaid,
		AmountPaid: amountPaid,
		Status:     StatusActive,
	}, nil
}

// Cancel transitions the membership to cancelled.
func (m *Membership) Cancel() {
	m.Status = StatusCancelled
	m.UpdatedAt = time.Now()
}

// IsActive reports whether the membership is currently in the active state.
func (m *Membership) IsActive() bool {
	return m.Status == StatusActive
}

// DaysRemaining returns the whole days between now and the end date,
// rounded up. Negative when the membership end date has passed.
func (m *Membership) DaysRemaining(now time.Time) int {
	d := m.EndDate.Sub(now)
	days := int(d.Hours() / 24)
	if d > 0 && d%(24*time.Hour) != 0 {
		days++
	}
	return days
}

// Patch holds optional field updates for a membership. Nil fields are
// left untouched by Merge.
type Patch struct {
	PlanID     *uint
	StartDate  *time.Time
	EndDate    *time.Time
	MonthsPaid *int
	AmountPaid *decimal.Decimal
	Status     *Status
}

// Merge returns a copy of the membership with the patch applied. The
// receiver is not modified.
func (m Membership) Merge(p Patch) Membership {
	if p.PlanID != nil {
		m.PlanID = *p.PlanID
	}
	if p.StartDate != nil {
		m.StartDate = *p.StartDate
	}
	if p.EndDate != nil {
		m.EndDate = *p.EndDate
	}
	if p.MonthsPaid != nil {
		m.MonthsPaid = *p.MonthsPaid
	}
	if p.AmountPaid != nil {
		m.AmountPaid = *p.AmountPaid
	}
	if p.Status != nil {
		m.Status = *p.Status
	}
	m.UpdatedAt = time.Now()
	return m
}
