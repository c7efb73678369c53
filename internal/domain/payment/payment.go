package payment

import (
	"time"

	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Method represents how a payment was made
type Method string

const (
	MethodCash     Method = "cash"
	MethodCard     Method = "card"
	MethodTransfer Method = "transfer"
	MethodOther    Method = "other"
)

// ValidMethod reports whether m is a known payment method.
func ValidMethod(m Method) bool {
	switch m {
	case MethodCash, MethodCard, MethodTransfer, MethodOther:
		return true
	}
	return false
}

// Payment records money received from a member. Payments are never
// deleted; downstream corrections adjust the amount instead.
type Payment struct {
	shared.BaseEntity
	MemberID      uint
	MembershipID  *uint
	Amount        decimal.Decimal
	Method        Method
	Concept       string
	Period        string
	ReceiptNumber string
	Notes         string
	PaidAt        time.Time
}

// New creates a payment dated now. Method defaults to cash when empty.
func New(memberID uint, amount decimal.Decimal, method Method, concept string) (*Payment, error) {
	if amount.IsNegative() {
		return nil, shared.NewDomainError("INVALID_INPUT", "payment amount cannot be negative")
	}
	if method == "" {
		method = MethodCash
	}
	if !ValidMethod(method) {
		return nil, shared.NewDomainError("INVALID_INPUT", "unknown payment method")
	}

	return &Payment{
		BaseEntity: shared.NewBaseEntity(),
		MemberID:   memberID,
		Amount:     amount,
		Method:     method,
		Concept:    concept,
		PaidAt:     time.Now(),
	}, nil
}

// AdjustAmount applies a signed correction to the payment amount,
// clamping the result at zero.
func (p *Payment) AdjustAmount(delta decimal.Decimal) {
	p.Amount = p.Amount.Add(delta)
	if p.Amount.IsNegative() {
		p.Amount = decimal.Zero
	}
	p.UpdatedAt = time.Now()
}

// PeriodLabel formats a payment period as YYYY-MM.
func PeriodLabel(t time.Time) string {
	return t.Format("2006-01")
}
