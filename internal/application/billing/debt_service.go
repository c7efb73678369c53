package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/gymtrack/backend/internal/domain/debt"
	"github.com/gymtrack/backend/internal/domain/member"
	"github.com/gymtrack/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

// DebtService manages member debts. Edits to the paid figure are
// reconciled against the payment ledger so the recorded payments keep
// matching what the debt says was paid, and membership debts mirror
// their paid amount into the member's active membership.
type DebtService struct {
	debts   debt.Repository
	members member.Repository
	tx      TransactionScope
}

// NewDebtService creates a new DebtService.
func NewDebtService(debts debt.Repository, members member.Repository, tx TransactionScope) *DebtService {
	return &DebtService{debts: debts, members: members, tx: tx}
}

// Create raises a debt by hand, outside the membership cascade.
func (s *DebtService) Create(ctx context.Context, req CreateDebtRequest) (*DebtResponse, error) {
	if _, err := s.members.FindByID(ctx, req.MemberID); err != nil {
		return nil, err
	}

	var due time.Time
	if req.DueDate != nil {
		due = *req.DueDate
	}
	d, err := debt.New(req.MemberID, req.TotalAmount, req.PaidAmount, req.Concept, due)
	if err != nil {
		return nil, err
	}
	if err := s.debts.Save(ctx, d); err != nil {
		return nil, err
	}
	return ToDebtResponse(d), nil
}

// Get returns a single debt.
func (s *DebtService) Get(ctx context.Context, id uint) (*DebtResponse, error) {
	d, err := s.debts.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToDebtResponse(d), nil
}

// List returns all debts with member names expanded.
func (s *DebtService) List(ctx context.Context) ([]DebtResponse, error) {
	ds, err := s.debts.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, ds)
}

// ListOutstanding returns pending and partial debts with member names
// expanded, soonest due first.
func (s *DebtService) ListOutstanding(ctx context.Context) ([]DebtResponse, error) {
	ds, err := s.debts.FindOutstanding(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, ds)
}

// ListByMember returns a member's debts.
func (s *DebtService) ListByMember(ctx context.Context, memberID uint) ([]DebtResponse, error) {
	ds, err := s.debts.FindByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, ds)
}

// MembersWithDebt reports aggregate outstanding balances per member.
func (s *DebtService) MembersWithDebt(ctx context.Context) ([]MemberDebtSummaryResponse, error) {
	rows, err := s.debts.MembersWithDebt(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]MemberDebtSummaryResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, MemberDebtSummaryResponse{
			MemberID: r.MemberID,
			Name:     r.Name,
			Phone:    r.Phone,
			Email:    r.Email,
			Total:    r.Total,
		})
	}
	return out, nil
}

// TotalOutstanding sums the pending amount over all open debts.
func (s *DebtService) TotalOutstanding(ctx context.Context) (decimal.Decimal, error) {
	return s.debts.TotalOutstanding(ctx)
}

// Update merges the patch into the debt. When the amounts change the
// payment ledger is reconciled: the member's most recent payment with
// the debt's concept absorbs the paid-amount delta (floored at zero),
// and when no such payment exists a positive delta is recorded as a
// fresh adjustment payment. Membership debts also push the new paid
// figure into the member's active membership. Concept-only edits touch
// neither ledger.
func (s *DebtService) Update(ctx context.Context, id uint, patch debt.Patch) (*DebtResponse, error) {
	var out *DebtResponse
	err := s.tx.Execute(ctx, func(repos Repositories) error {
		d, err := repos.Debts().FindByID(ctx, id)
		if err != nil {
			return err
		}

		oldPaid := d.PaidAmount
		merged := d.Merge(patch)
		if err := repos.Debts().Save(ctx, &merged); err != nil {
			return err
		}

		if patch.AmountsChanged() {
			delta := merged.PaidAmount.Sub(oldPaid)
			if !delta.IsZero() {
				if err := s.syncPaymentLedger(ctx, repos, &merged, delta); err != nil {
					return err
				}
			}
			if merged.IsMembershipDebt() {
				if err := s.mirrorIntoMembership(ctx, repos, &merged); err != nil {
					return err
				}
			}
		}

		out = ToDebtResponse(&merged)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// RegisterPayment records an installment against the debt. The debt's
// figures are recalculated, a payment is written to the ledger, and
// membership debts mirror the new paid amount into the active
// membership. A single installment covering the full balance settles
// the debt in one call.
func (s *DebtService) RegisterPayment(ctx context.Context, id uint, req DebtPaymentRequest) (*DebtPaymentResult, error) {
	var result DebtPaymentResult
	err := s.tx.Execute(ctx, func(repos Repositories) error {
		d, err := repos.Debts().FindByID(ctx, id)
		if err != nil {
			return err
		}

		// An installment against an already settled debt still lands
		// in the ledger; the pending balance just stays at zero.
		if err := d.ApplyPayment(req.Amount); err != nil {
			return err
		}
		if err := repos.Debts().Save(ctx, d); err != nil {
			return err
		}

		pay, err := payment.New(d.MemberID, req.Amount, req.Method, "Debt payment: "+d.Concept)
		if err != nil {
			return err
		}
		if err := repos.Payments().Save(ctx, pay); err != nil {
			return err
		}

		if d.IsMembershipDebt() {
			if err := s.mirrorIntoMembership(ctx, repos, d); err != nil {
				return err
			}
		}

		result = DebtPaymentResult{
			Debt:    ToDebtResponse(d),
			Payment: ToPaymentResponse(pay),
		}
		if d.Status == debt.StatusPaid {
			result.Message = "Installment recorded. Debt fully paid."
		} else {
			result.Message = fmt.Sprintf("Installment recorded. Remaining balance: $%s", d.PendingAmount.StringFixed(2))
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// syncPaymentLedger makes the payment ledger reflect an edited paid
// amount. The most recent payment carrying the debt's concept absorbs
// the delta; when none exists, a positive delta becomes a new
// adjustment payment and a negative one is dropped.
func (s *DebtService) syncPaymentLedger(ctx context.Context, repos Repositories, d *debt.Debt, delta decimal.Decimal) error {
	matches, err := repos.Payments().FindByMemberAndConcept(ctx, d.MemberID, d.Concept)
	if err != nil {
		return err
	}
	if len(matches) > 0 {
		p := &matches[0]
		p.AdjustAmount(delta)
		return repos.Payments().Save(ctx, p)
	}
	if delta.Sign() > 0 {
		adj, err := payment.New(d.MemberID, delta, payment.MethodCash, "Adjustment: "+d.Concept)
		if err != nil {
			return err
		}
		return repos.Payments().Save(ctx, adj)
	}
	return nil
}

// mirrorIntoMembership copies the debt's paid amount into the member's
// active membership. A member without an active membership is left
// alone.
func (s *DebtService) mirrorIntoMembership(ctx context.Context, repos Repositories, d *debt.Debt) error {
	actives, err := repos.Memberships().FindActiveByMember(ctx, d.MemberID)
	if err != nil {
		return err
	}
	if len(actives) == 0 {
		return nil
	}
	m := &actives[0]
	m.AmountPaid = d.PaidAmount
	return repos.Memberships().Save(ctx, m)
}

// expand maps debts to responses with member names resolved.
func (s *DebtService) expand(ctx context.Context, ds []debt.Debt) ([]DebtResponse, error) {
	out := make([]DebtResponse, 0, len(ds))
	for i := range ds {
		r := ToDebtResponse(&ds[i])
		if mem, err := s.members.FindByID(ctx, ds[i].MemberID); err == nil {
			r.MemberName = mem.FullName()
		}
		out = append(out, *r)
	}
	return out, nil
}
