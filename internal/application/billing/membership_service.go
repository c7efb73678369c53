package billing

import (
	"context"
	"fmt"
	"time"

	"github.com/gymtrack/backend/internal/domain/debt"
	"github.com/gymtrack/backend/internal/domain/member"
	"github.com/gymtrack/backend/internal/domain/membership"
	"github.com/gymtrack/backend/internal/domain/payment"
	"github.com/gymtrack/backend/internal/domain/plan"
	"github.com/shopspring/decimal"
)

// expiringWindowDays is the look-ahead for the expiring-soon report.
const expiringWindowDays = 7

// MembershipService handles the membership lifecycle: assignment with
// the derived payment/debt cascade, renewal, expiry reports and
// after-the-fact edits.
type MembershipService struct {
	memberships membership.Repository
	payments    payment.Repository
	debts       debt.Repository
	plans       plan.Repository
	members     member.Repository
	tx          TransactionScope
}

// NewMembershipService creates a new MembershipService.
func NewMembershipService(
	memberships membership.Repository,
	payments payment.Repository,
	debts debt.Repository,
	plans plan.Repository,
	members member.Repository,
	tx TransactionScope,
) *MembershipService {
	return &MembershipService{
		memberships: memberships,
		payments:    payments,
		debts:       debts,
		plans:       plans,
		members:     members,
		tx:          tx,
	}
}

// membershipConcept formats the concept shared by the payment and the
// debt a membership assignment derives. The concept embeds the plan name
// and starts with the membership marker the debt ledger keys on.
func membershipConcept(planName string, months int) string {
	return fmt.Sprintf("%s %s - %d month(s)", debt.MembershipConceptMarker, planName, months)
}

// Create assigns a new membership to a member. All previously active
// memberships for the member are cancelled first; a payment is recorded
// when money was handed over, and a debt is raised when the amount falls
// short of the plan price times months. The whole cascade runs in one
// transaction.
func (s *MembershipService) Create(ctx context.Context, req CreateMembershipRequest) (*MembershipResult, error) {
	p, err := s.plans.FindByID(ctx, req.PlanID)
	if err != nil {
		return nil, err
	}
	mem, err := s.members.FindByID(ctx, req.MemberID)
	if err != nil {
		return nil, err
	}

	months := req.MonthsPaid
	if months < 1 {
		months = 1
	}
	totalDue := p.Price.Mul(decimal.NewFromInt(int64(months)))
	amountPaid := req.AmountPaid
	if amountPaid.IsNegative() {
		amountPaid = decimal.Zero
	}

	var result MembershipResult
	err = s.tx.Execute(ctx, func(repos Repositories) error {
		actives, err := repos.Memberships().FindActiveByMember(ctx, req.MemberID)
		if err != nil {
			return err
		}
		for i := range actives {
			actives[i].Cancel()
			if err := repos.Memberships().Save(ctx, &actives[i]); err != nil {
				return err
			}
		}

		m, err := membership.New(req.MemberID, req.PlanID, months, amountPaid)
		if err != nil {
			return err
		}
		if err := repos.Memberships().Save(ctx, m); err != nil {
			return err
		}

		concept := membershipConcept(p.Name, months)

		var pay *payment.Payment
		if amountPaid.Sign() > 0 {
			pay, err = payment.New(req.MemberID, amountPaid, req.Method, concept)
			if err != nil {
				return err
			}
			pay.MembershipID = &m.ID
			pay.Period = payment.PeriodLabel(m.StartDate)
			if req.ReceiptURL != "" {
				pay.Notes = "Receipt: " + req.ReceiptURL
			}
			if err := repos.Payments().Save(ctx, pay); err != nil {
				return err
			}
		}

		var d *debt.Debt
		if amountPaid.Cmp(totalDue) < 0 {
			d, err = debt.New(req.MemberID, totalDue, amountPaid, concept, m.EndDate)
			if err != nil {
				return err
			}
			if err := repos.Debts().Save(ctx, d); err != nil {
				return err
			}
		}

		result = MembershipResult{
			Membership: ToMembershipResponse(m),
			Message:    assignmentMessage(amountPaid, pay, d),
		}
		result.Membership.MemberName = mem.FullName()
		result.Membership.PlanName = p.Name
		if pay != nil {
			result.Payment = ToPaymentResponse(pay)
		}
		if d != nil {
			result.Debt = ToDebtResponse(d)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &result, nil
}

// assignmentMessage summarizes which parts of the cascade fired.
func assignmentMessage(amountPaid decimal.Decimal, pay *payment.Payment, d *debt.Debt) string {
	switch {
	case pay != nil && d == nil:
		return fmt.Sprintf("Membership assigned. Payment of $%s recorded.", amountPaid.StringFixed(2))
	case pay != nil && d != nil:
		return fmt.Sprintf("Membership assigned. Payment of $%s recorded. Outstanding debt: $%s",
			amountPaid.StringFixed(2), d.PendingAmount.StringFixed(2))
	case pay == nil && d != nil:
		return fmt.Sprintf("Membership assigned. Outstanding debt: $%s", d.PendingAmount.StringFixed(2))
	default:
		return "Membership assigned successfully"
	}
}

// Update merges the patch into the membership. When the paid amount
// changes, the earliest payment linked to the membership is overwritten
// to the new value; if no such payment exists an adjustment payment is
// recorded for a positive delta.
func (s *MembershipService) Update(ctx context.Context, id uint, patch membership.Patch) (*MembershipResponse, error) {
	var out *MembershipResponse
	err := s.tx.Execute(ctx, func(repos Repositories) error {
		m, err := repos.Memberships().FindByID(ctx, id)
		if err != nil {
			return err
		}

		oldPaid := m.AmountPaid
		merged := m.Merge(patch)
		if err := repos.Memberships().Save(ctx, &merged); err != nil {
			return err
		}

		if patch.AmountPaid != nil {
			newPaid := *patch.AmountPaid
			original, err := repos.Payments().FindEarliestByMembership(ctx, id)
			switch {
			case err == nil:
				original.Amount = newPaid
				if err := repos.Payments().Save(ctx, original); err != nil {
					return err
				}
			case isNotFound(err):
				delta := newPaid.Sub(oldPaid)
				if delta.Sign() > 0 {
					adj, err := payment.New(merged.MemberID, delta, payment.MethodCash,
						fmt.Sprintf("Membership #%d adjustment", id))
					if err != nil {
						return err
					}
					adj.MembershipID = &merged.ID
					if err := repos.Payments().Save(ctx, adj); err != nil {
						return err
					}
				}
			default:
				return err
			}
		}

		out = ToMembershipResponse(&merged)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// List returns all memberships with member and plan names expanded.
func (s *MembershipService) List(ctx context.Context) ([]MembershipResponse, error) {
	all, err := s.memberships.FindAll(ctx)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, all)
}

// ListActive returns active memberships with member and plan names
// expanded.
func (s *MembershipService) ListActive(ctx context.Context) ([]MembershipResponse, error) {
	actives, err := s.memberships.FindByStatus(ctx, membership.StatusActive)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, actives)
}

// ListByMember returns a member's memberships with plan names expanded.
func (s *MembershipService) ListByMember(ctx context.Context, memberID uint) ([]MembershipResponse, error) {
	ms, err := s.memberships.FindByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	return s.expand(ctx, ms)
}

// ListExpiring reports active memberships ending within the next seven
// days. An empty window is a not-found condition.
func (s *MembershipService) ListExpiring(ctx context.Context) ([]ExpiringMembershipResponse, error) {
	now := time.Now()
	ms, err := s.memberships.FindActiveEndingBetween(ctx, now, now.AddDate(0, 0, expiringWindowDays))
	if err != nil {
		return nil, err
	}
	if len(ms) == 0 {
		return nil, notFound("no memberships expiring soon")
	}

	out := make([]ExpiringMembershipResponse, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		mem, err := s.members.FindByID(ctx, m.MemberID)
		if err != nil {
			return nil, err
		}
		p, err := s.plans.FindByID(ctx, m.PlanID)
		if err != nil {
			return nil, err
		}
		out = append(out, ExpiringMembershipResponse{
			MemberID:      mem.ID,
			MemberName:    mem.FullName(),
			Phone:         mem.Phone,
			Plan:          p.Name,
			EndDate:       m.EndDate,
			DaysRemaining: m.DaysRemaining(now),
		})
	}
	return out, nil
}

// ListExpired reports memberships in the expired state with days overdue.
func (s *MembershipService) ListExpired(ctx context.Context) ([]ExpiredMembershipResponse, error) {
	now := time.Now()
	ms, err := s.memberships.FindByStatus(ctx, membership.StatusExpired)
	if err != nil {
		return nil, err
	}

	out := make([]ExpiredMembershipResponse, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		mem, err := s.members.FindByID(ctx, m.MemberID)
		if err != nil {
			return nil, err
		}
		p, err := s.plans.FindByID(ctx, m.PlanID)
		if err != nil {
			return nil, err
		}
		out = append(out, ExpiredMembershipResponse{
			MemberID:    mem.ID,
			MemberName:  mem.FullName(),
			Phone:       mem.Phone,
			Plan:        p.Name,
			EndDate:     m.EndDate,
			DaysOverdue: -m.DaysRemaining(now),
		})
	}
	return out, nil
}

// FindActiveForMember returns the member's active membership, or
// ErrNotFound.
func (s *MembershipService) FindActiveForMember(ctx context.Context, memberID uint) (*MembershipResponse, error) {
	actives, err := s.memberships.FindActiveByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	if len(actives) == 0 {
		return nil, notFound("member has no active membership")
	}
	resp, err := s.expand(ctx, actives[:1])
	if err != nil {
		return nil, err
	}
	return &resp[0], nil
}

// FindLatestForMember returns the member's active membership when one
// exists, otherwise the most recent one by end date.
func (s *MembershipService) FindLatestForMember(ctx context.Context, memberID uint) (*MembershipResponse, error) {
	if active, err := s.FindActiveForMember(ctx, memberID); err == nil {
		return active, nil
	} else if !isNotFound(err) {
		return nil, err
	}

	latest, err := s.memberships.FindLatestByMember(ctx, memberID)
	if err != nil {
		return nil, err
	}
	resp, err := s.expand(ctx, []membership.Membership{*latest})
	if err != nil {
		return nil, err
	}
	return &resp[0], nil
}

// expand maps memberships to responses with member and plan names
// resolved.
func (s *MembershipService) expand(ctx context.Context, ms []membership.Membership) ([]MembershipResponse, error) {
	out := make([]MembershipResponse, 0, len(ms))
	for i := range ms {
		r := ToMembershipResponse(&ms[i])
		if mem, err := s.members.FindByID(ctx, ms[i].MemberID); err == nil {
			r.MemberName = mem.FullName()
		}
		if p, err := s.plans.FindByID(ctx, ms[i].PlanID); err == nil {
			r.PlanName = p.Name
		}
		out = append(out, *r)
	}
	return out, nil
}
