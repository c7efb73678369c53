package billing

import (
	"context"
	"time"

	"github.com/gymtrack/backend/internal/domain/member"
	"github.com/gymtrack/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// PaymentService records standalone payments and serves the payment
// reports. Payments tied to memberships and debts are written by the
// membership and debt services; this one covers one-off charges like
// day passes or merchandise.
type PaymentService struct {
	payments payment.Repository
	members  member.Repository
}

// NewPaymentService creates a new PaymentService.
func NewPaymentService(payments payment.Repository, members member.Repository) *PaymentService {
	return &PaymentService{payments: payments, members: members}
}

// Create records a payment.
func (s *PaymentService) Create(ctx context.Context, req CreatePaymentRequest) (*PaymentResponse, error) {
	if _, err := s.members.FindByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	p, err := payment.New(req.MemberID, req.Amount, req.Method, req.Concept)
	if err != nil {
		return nil, err
	}
	p.MembershipID = req.MembershipID
	p.ReceiptNumber = req.ReceiptNumber
	p.Notes = req.Notes
	if req.Period != "" {
		p.Period = req.Period
	} else {
		p.Period = payment.PeriodLabel(p.PaidAt)
	}

	if err := s.payments.Save(ctx, p); err != nil {
		return nil, err
	}
	return ToPaymentResponse(p), nil
}

// Get returns a single payment.
func (s *PaymentService) Get(ctx context.Context, id uint) (*PaymentResponse, error) {
	p, err := s.payments.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPaymentResponse(p), nil
}

// List returns all payments, newest first, with member names expanded.
func (s *PaymentService) List(ctx context.Context) ([]PaymentResponse, error) {
	ps, err := s.payments.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, ps)
}

// ListByMember returns a member's payments, newest first.
func (s *PaymentService) ListByMember(ctx context.Context, memberID uint) ([]PaymentResponse, error) {
	ps, err := s.payments.FindByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, ps)
}

// MonthSummary aggregates the payments dated in the month containing t.
func (s *PaymentService) MonthSummary(ctx context.Context, t time.Time) (*PaymentMonthSummaryResponse, error) {
	sum, err := s.payments.SummaryForMonth(ctx, t)
	if err != nil {
		return nil, err
	}
	return &PaymentMonthSummaryResponse{
		Count:   sum.Count,
		Total:   sum.Total,
		Average: sum.Average,
	}, nil
}

// TotalsByMethod breaks the month containing t down by payment method.
func (s *PaymentService) TotalsByMethod(ctx context.Context, t time.Time) ([]PaymentMethodTotalResponse, error) {
	rows, err := s.payments.TotalsByMethod(ctx, t)
	if err != nil {
		return nil, err
	}
	out := make([]PaymentMethodTotalResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, PaymentMethodTotalResponse{
			Method: r.Method,
			Count:  r.Count,
			Total:  r.Total,
		})
	}
	return out, nil
}

// IncomeForMonth sums the payments dated in the month containing t.
func (s *PaymentService) IncomeForMonth(ctx context.Context, t time.Time) (decimal.Decimal, error) {
	return s.payments.IncomeForMonth(ctx, t)
}

// expand maps payments to responses with member names resolved.
func (s *PaymentService) expand(ctx context.Context, ps []payment.Payment) ([]PaymentResponse, error) {
	out := make([]PaymentResponse, 0, len(ps))
	for i := range ps {
		r := ToPaymentResponse(&ps[i])
		if mem, err := s.members.FindByID(ctx, ps[i].MemberID); err == nil {
			r.MemberName = mem.FullName()
		}
		out = append(out, *r)
	}
	return out, nil
}
