package plan

import (
	"strings"
	"time"

	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Plan represents a membership tier: a monthly price for a number of
// months, plus a benefit description.
type Plan struct {
	shared.BaseEntity
	Name           string
	Description    string
	Price          decimal.Decimal
	DurationMonths int
	Benefits       string
	Active         bool
}

// NewPlan creates a new active plan.
func NewPlan(name string, price decimal.Decimal, durationMonths int) (*Plan, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "plan name is required")
	}
	if price.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "plan price cannot be negative")
	}
	if durationMonths < 1 {
		return nil, shared.NewDomainError("INVALID_INPUT", "plan duration must be at least one month")
	}

	return &Plan{
		BaseEntity:     shared.NewBaseEntity(),
		Name:           name,
		Price:          price,
		DurationMonths: durationMonths,
		Active:         true,
	}, nil
}

// Deactivate retires the plan from the catalog without removing it.
func (p *Plan) Deactivate() {
	p.Active = false
	p.UpdatedAt = time.Now()
}
