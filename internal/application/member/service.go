package member

import (
	"context"
	"strings"
	"time"

	"github.com/gymtrack/backend/internal/application/billing"
	"github.com/gymtrack/backend/internal/domain/debt"
	"github.com/gymtrack/backend/internal/domain/member"
	"github.com/gymtrack/backend/internal/domain/membership"
	"github.com/gymtrack/backend/internal/domain/plan"
	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// expiringSoonDays is the threshold below which an active membership is
// flagged on the roster.
const expiringSoonDays = 7

// MemberService manages member registration and the roster views that
// join membership standing and debt position onto each member.
type MemberService struct {
	members     member.Repository
	memberships membership.Repository
	plans       plan.Repository
	debts       debt.Repository
}

// NewMemberService creates a new MemberService.
func NewMemberService(
	members member.Repository,
	memberships membership.Repository,
	plans plan.Repository,
	debts debt.Repository,
) *MemberService {
	return &MemberService{
		members:     members,
		memberships: memberships,
		plans:       plans,
		debts:       debts,
	}
}

// Create registers a member. The member code is derived from the
// current member count; national ID and email must not collide with an
// existing member.
func (s *MemberService) Create(ctx context.Context, req CreateMemberRequest) (*MemberResponse, error) {
	count, err := s.members.Count(ctx)
	if err != nil {
		return nil, err
	}

	m, err := member.NewMember(member.FormatCode(count+1), req.FirstName, req.LastName)
	if err != nil {
		return nil, err
	}
	if req.NationalID != "" {
		if err := m.SetNationalID(req.NationalID); err != nil {
			return nil, err
		}
		if err := s.ensureNationalIDFree(ctx, m.NationalID, 0); err != nil {
			return nil, err
		}
	}
	if req.Email != "" {
		if err := s.ensureEmailFree(ctx, req.Email, 0); err != nil {
			return nil, err
		}
		m.Email = req.Email
	}

	m.Phone = req.Phone
	m.BirthDate = req.BirthDate
	m.Gender = req.Gender
	m.Address = req.Address
	m.PhotoURL = req.PhotoURL
	m.EmergencyContact = req.EmergencyContact
	m.EmergencyPhone = req.EmergencyPhone
	m.Notes = req.Notes

	if err := s.members.Save(ctx, m); err != nil {
		return nil, err
	}
	return ToMemberResponse(m), nil
}

// Get returns a single member.
func (s *MemberService) Get(ctx context.Context, id uint) (*MemberResponse, error) {
	m, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToMemberResponse(m), nil
}

// List returns members, optionally restricted to active ones.
func (s *MemberService) List(ctx context.Context, activeOnly bool) ([]MemberResponse, error) {
	var (
		ms  []member.Member
		err error
	)
	if activeOnly {
		ms, err = s.members.FindActive(ctx)
	} else {
		ms, err = s.members.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]MemberResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *ToMemberResponse(&ms[i]))
	}
	return out, nil
}

// Search finds members by name, cedula or member code. An empty query
// yields an empty result without touching the store.
func (s *MemberService) Search(ctx context.Context, query string) ([]MemberResponse, error) {
	if strings.TrimSpace(query) == "" {
		return []MemberResponse{}, nil
	}
	ms, err := s.members.Search(ctx, query)
	if err != nil {
		return nil, err
	}
	out := make([]MemberResponse, 0, len(ms))
	for i := range ms {
		out = append(out, *ToMemberResponse(&ms[i]))
	}
	return out, nil
}

// ListDetailed returns the front-desk roster: every active member with
// their membership standing and outstanding debt.
func (s *MemberService) ListDetailed(ctx context.Context) ([]MemberListItem, error) {
	ms, err := s.members.FindActive(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]MemberListItem, 0, len(ms))
	for i := range ms {
		m := &ms[i]
		item := MemberListItem{
			ID:          m.ID,
			Code:        m.Code,
			FullName:    m.FullName(),
			Phone:       m.Phone,
			Alert:       AlertNoMembership,
			PendingDebt: decimal.Zero,
		}

		if active, ok, err := s.activeMembership(ctx, m.ID); err != nil {
			return nil, err
		} else if ok {
			item.Alert = AlertActive
			item.EndDate = &active.EndDate
			item.DaysRemaining = active.DaysRemaining(now)
			if item.DaysRemaining <= expiringSoonDays {
				item.Alert = AlertExpiringSoon
			}
			if p, err := s.plans.FindByID(ctx, active.PlanID); err == nil {
				item.PlanName = p.Name
			}
		} else if s.hasFormerMembership(ctx, m.ID) {
			item.Alert = AlertExpired
		}

		pending, err := s.pendingDebt(ctx, m.ID)
		if err != nil {
			return nil, err
		}
		item.PendingDebt = pending
		item.HasDebt = pending.Sign() > 0

		out = append(out, item)
	}
	return out, nil
}

// GetFull returns the member detail view: the member, their active
// membership and every open debt.
func (s *MemberService) GetFull(ctx context.Context, id uint) (*MemberFullResponse, error) {
	m, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	full := &MemberFullResponse{
		Member:       ToMemberResponse(m),
		PendingDebts: []billing.DebtResponse{},
		TotalDebt:    decimal.Zero,
	}

	if active, ok, err := s.activeMembership(ctx, id); err != nil {
		return nil, err
	} else if ok {
		resp := billing.ToMembershipResponse(active)
		resp.MemberName = m.FullName()
		if p, err := s.plans.FindByID(ctx, active.PlanID); err == nil {
			resp.PlanName = p.Name
		}
		full.ActiveMembership = resp
	}

	ds, err := s.debts.FindByMember(ctx, id)
	if err != nil {
		return nil, err
	}
	for i := range ds {
		if !ds[i].IsOutstanding() {
			continue
		}
		full.PendingDebts = append(full.PendingDebts, *billing.ToDebtResponse(&ds[i]))
		full.TotalDebt = full.TotalDebt.Add(ds[i].PendingAmount)
	}
	return full, nil
}

// Update merges the patch into the member. A changed national ID or
// email is validated and checked for collisions first.
func (s *MemberService) Update(ctx context.Context, id uint, patch member.Patch) (*MemberResponse, error) {
	m, err := s.members.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if patch.NationalID != nil && *patch.NationalID != m.NationalID {
		if err := m.SetNationalID(*patch.NationalID); err != nil {
			return nil, err
		}
		if err := s.ensureNationalIDFree(ctx, *patch.NationalID, id); err != nil {
			return nil, err
		}
	}
	if patch.Email != nil && *patch.Email != m.Email && *patch.Email != "" {
		if err := s.ensureEmailFree(ctx, *patch.Email, id); err != nil {
			return nil, err
		}
	}

	merged := m.Merge(patch)
	if err := s.members.Save(ctx, &merged); err != nil {
		return nil, err
	}
	return ToMemberResponse(&merged), nil
}

// Deactivate soft-deletes a member, keeping the row for history.
func (s *MemberService) Deactivate(ctx context.Context, id uint) error {
	m, err := s.members.FindByID(ctx, id)
	if err != nil {
		return err
	}
	m.Deactivate()
	return s.members.Save(ctx, m)
}

// Delete removes a member permanently.
func (s *MemberService) Delete(ctx context.Context, id uint) error {
	return s.members.Delete(ctx, id)
}

// Count returns total and active member counts for the dashboard.
func (s *MemberService) Count(ctx context.Context) (total, active int64, err error) {
	if total, err = s.members.Count(ctx); err != nil {
		return 0, 0, err
	}
	if active, err = s.members.CountActive(ctx); err != nil {
		return 0, 0, err
	}
	return total, active, nil
}

// activeMembership returns the member's active membership when present.
func (s *MemberService) activeMembership(ctx context.Context, memberID uint) (*membership.Membership, bool, error) {
	actives, err := s.memberships.FindActiveByMember(ctx, memberID)
	if err != nil {
		return nil, false, err
	}
	if len(actives) == 0 {
		return nil, false, nil
	}
	return &actives[0], true, nil
}

// hasFormerMembership reports whether the member ever held a membership.
func (s *MemberService) hasFormerMembership(ctx context.Context, memberID uint) bool {
	_, err := s.memberships.FindLatestByMember(ctx, memberID)
	return err == nil
}

// pendingDebt sums the open balances of a member's debts.
func (s *MemberService) pendingDebt(ctx context.Context, memberID uint) (decimal.Decimal, error) {
	ds, err := s.debts.FindByMember(ctx, memberID)
	if err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for i := range ds {
		if ds[i].IsOutstanding() {
			total = total.Add(ds[i].PendingAmount)
		}
	}
	return total, nil
}

func (s *MemberService) ensureNationalIDFree(ctx context.Context, nationalID string, selfID uint) error {
	existing, err := s.members.FindByNationalID(ctx, nationalID)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return shared.NewDomainError("ALREADY_EXISTS", "a member with this cedula already exists")
	}
	return nil
}

func (s *MemberService) ensureEmailFree(ctx context.Context, email string, selfID uint) error {
	existing, err := s.members.FindByEmail(ctx, email)
	if err != nil {
		if isNotFound(err) {
			return nil
		}
		return err
	}
	if existing.ID != selfID {
		return shared.NewDomainError("ALREADY_EXISTS", "a member with this email already exists")
	}
	return nil
}

func isNotFound(err error) bool {
	de, ok := err.(*shared.DomainError)
	return ok && de.Code == "NOT_FOUND"
}
