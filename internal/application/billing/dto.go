package billing

import (
	"time"

	"github.com/gymtrack/backend/internal/domain/debt"
	"github.com/gymtrack/backend/internal/domain/membership"
	"github.com/gymtrack/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// CreateMembershipRequest carries the input for assigning a membership.
type CreateMembershipRequest struct {
	MemberID   uint
	PlanID     uint
	AmountPaid decimal.Decimal
	MonthsPaid int
	Method     payment.Method
	ReceiptURL string
}

// MembershipResult is the outcome of a membership assignment: the
// membership itself plus the payment and debt the cascade derived, when
// any.
type MembershipResult struct {
	Membership *MembershipResponse `json:"membership"`
	Payment    *PaymentResponse    `json:"payment"`
	Debt       *DebtResponse       `json:"debt"`
	Message    string              `json:"message"`
}

// MembershipResponse is the API shape of a membership.
type MembershipResponse struct {
	ID         uint              `json:"id"`
	MemberID   uint              `json:"member_id"`
	MemberName string            `json:"member_name,omitempty"`
	PlanID     uint              `json:"plan_id"`
	PlanName   string            `json:"plan_name,omitempty"`
	StartDate  time.Time         `json:"start_date"`
	EndDate    time.Time         `json:"end_date"`
	MonthsPaid int               `json:"months_paid"`
	AmountPaid decimal.Decimal   `json:"amount_paid"`
	Status     membership.Status `json:"status"`
	CreatedAt  time.Time         `json:"created_at"`
}

// ToMembershipResponse maps a domain membership to its API shape.
func ToMembershipResponse(m *membership.Membership) *MembershipResponse {
	return &MembershipResponse{
		ID:         m.ID,
		MemberID:   m.MemberID,
		PlanID:     m.PlanID,
		StartDate:  m.StartDate,
		EndDate:    m.EndDate,
		MonthsPaid: m.MonthsPaid,
		AmountPaid: m.AmountPaid,
		Status:     m.Status,
		CreatedAt:  m.CreatedAt,
	}
}

// ExpiringMembershipResponse is a row of the expiring-soon report.
type ExpiringMembershipResponse struct {
	MemberID      uint      `json:"member_id"`
	MemberName    string    `json:"member_name"`
	Phone         string    `json:"phone"`
	Plan          string    `json:"plan"`
	EndDate       time.Time `json:"end_date"`
	DaysRemaining int       `json:"days_remaining"`
}

// ExpiredMembershipResponse is a row of the expired report.
type ExpiredMembershipResponse struct {
	MemberID    uint      `json:"member_id"`
	MemberName  string    `json:"member_name"`
	Phone       string    `json:"phone"`
	Plan        string    `json:"plan"`
	EndDate     time.Time `json:"end_date"`
	DaysOverdue int       `json:"days_overdue"`
}

// PaymentResponse is the API shape of a payment.
type PaymentResponse struct {
	ID            uint            `json:"id"`
	MemberID      uint            `json:"member_id"`
	MemberName    string          `json:"member_name,omitempty"`
	MembershipID  *uint           `json:"membership_id,omitempty"`
	Amount        decimal.Decimal `json:"amount"`
	Method        payment.Method  `json:"method"`
	Concept       string          `json:"concept"`
	Period        string          `json:"period,omitempty"`
	ReceiptNumber string          `json:"receipt_number,omitempty"`
	Notes         string          `json:"notes,omitempty"`
	PaidAt        time.Time       `json:"paid_at"`
}

// ToPaymentResponse maps a domain payment to its API shape.
func ToPaymentResponse(p *payment.Payment) *PaymentResponse {
	return &PaymentResponse{
		ID:            p.ID,
		MemberID:      p.MemberID,
		MembershipID:  p.MembershipID,
		Amount:        p.Amount,
		Method:        p.Method,
		Concept:       p.Concept,
		Period:        p.Period,
		ReceiptNumber: p.ReceiptNumber,
		Notes:         p.Notes,
		PaidAt:        p.PaidAt,
	}
}

// CreatePaymentRequest carries the input for recording a standalone
// payment.
type CreatePaymentRequest struct {
	MemberID      uint
	MembershipID  *uint
	Amount        decimal.Decimal
	Method        payment.Method
	Concept       string
	Period        string
	ReceiptNumber string
	Notes         string
}

// PaymentMonthSummaryResponse aggregates the current month's payments.
type PaymentMonthSummaryResponse struct {
	Count   int64           `json:"count"`
	Total   decimal.Decimal `json:"total"`
	Average decimal.Decimal `json:"average"`
}

// PaymentMethodTotalResponse is a row of the by-method breakdown.
type PaymentMethodTotalResponse struct {
	Method payment.Method  `json:"method"`
	Count  int64           `json:"count"`
	Total  decimal.Decimal `json:"total"`
}

// CreateDebtRequest carries the input for raising a debt by hand.
type CreateDebtRequest struct {
	MemberID    uint
	TotalAmount decimal.Decimal
	PaidAmount  decimal.Decimal
	Concept     string
	DueDate     *time.Time
}

// DebtPaymentRequest carries an installment against a debt.
type DebtPaymentRequest struct {
	Amount decimal.Decimal
	Method payment.Method
}

// DebtPaymentResult bundles the updated debt with the payment the
// installment recorded.
type DebtPaymentResult struct {
	Debt    *DebtResponse    `json:"debt"`
	Payment *PaymentResponse `json:"payment"`
	Message string           `json:"message"`
}

// DebtResponse is the API shape of a debt.
type DebtResponse struct {
	ID            uint            `json:"id"`
	MemberID      uint            `json:"member_id"`
	MemberName    string          `json:"member_name,omitempty"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	PaidAmount    decimal.Decimal `json:"paid_amount"`
	PendingAmount decimal.Decimal `json:"pending_amount"`
	Concept       string          `json:"concept"`
	DueDate       time.Time       `json:"due_date"`
	Status        debt.Status     `json:"status"`
}

// ToDebtResponse maps a domain debt to its API shape.
func ToDebtResponse(d *debt.Debt) *DebtResponse {
	return &DebtResponse{
		ID:            d.ID,
		MemberID:      d.MemberID,
		TotalAmount:   d.TotalAmount,
		PaidAmount:    d.PaidAmount,
		PendingAmount: d.PendingAmount,
		Concept:       d.Concept,
		DueDate:       d.DueDate,
		Status:        d.Status,
	}
}

// MemberDebtSummaryResponse is a row of the members-with-debt report.
type MemberDebtSummaryResponse struct {
	MemberID uint            `json:"member_id"`
	Name     string          `json:"name"`
	Phone    string          `json:"phone,omitempty"`
	Email    string          `json:"email,omitempty"`
	Total    decimal.Decimal `json:"total_debt"`
}
