package dashboard

import (
	"context"
	"time"

	"github.com/gymtrack/backend/internal/domain/attendance"
	"github.com/gymtrack/backend/internal/domain/debt"
	"github.com/gymtrack/backend/internal/domain/member"
	"github.com/gymtrack/backend/internal/domain/membership"
	"github.com/gymtrack/backend/internal/domain/payment"
	"github.com/shopspring/decimal"
)

const topMembersLimit = 5

// Summary is the landing-page snapshot of the gym's state.
type Summary struct {
	ActiveMembers      int64           `json:"active_members"`
	ActiveMemberships  int64           `json:"active_memberships"`
	ExpiredMemberships int64           `json:"expired_memberships"`
	MonthIncome        decimal.Decimal `json:"month_income"`
	TotalDebt          decimal.Decimal `json:"total_debt"`
	TodayVisits        int64           `json:"today_visits"`
}

// TopMember is one row of the most-frequent-visitors widget.
type TopMember struct {
	MemberID     uint   `json:"member_id"`
	Name         string `json:"name"`
	Visits       int64  `json:"visits"`
	TotalMinutes int64  `json:"total_minutes"`
}

// PlanIncome is one row of the income-by-plan widget.
type PlanIncome struct {
	Plan  string          `json:"plan"`
	Count int64           `json:"payment_count"`
	Total decimal.Decimal `json:"total"`
}

// DashboardService composes the read-side aggregates shown on the
// landing page. It only reads; every figure comes from the other
// contexts' repositories.
type DashboardService struct {
	members     member.Repository
	memberships membership.Repository
	payments    payment.Repository
	debts       debt.Repository
	attendances attendance.Repository
}

// NewDashboardService creates a new DashboardService.
func NewDashboardService(
	members member.Repository,
	memberships membership.Repository,
	payments payment.Repository,
	debts debt.Repository,
	attendances attendance.Repository,
) *DashboardService {
	return &DashboardService{
		members:     members,
		memberships: memberships,
		payments:    payments,
		debts:       debts,
		attendances: attendances,
	}
}

// Summary builds the landing-page snapshot.
func (s *DashboardService) Summary(ctx context.Context) (*Summary, error) {
	activeMembers, err := s.members.CountActive(ctx)
	if err != nil {
		return nil, err
	}
	activeMemberships, err := s.memberships.CountByStatus(ctx, membership.StatusActive)
	if err != nil {
		return nil, err
	}
	expiredMemberships, err := s.memberships.CountByStatus(ctx, membership.StatusExpired)
	if err != nil {
		return nil, err
	}
	monthIncome, err := s.payments.IncomeForMonth(ctx, time.Now())
	if err != nil {
		return nil, err
	}
	totalDebt, err := s.debts.TotalOutstanding(ctx)
	if err != nil {
		return nil, err
	}
	todayVisits, err := s.attendances.CountToday(ctx)
	if err != nil {
		return nil, err
	}

	return &Summary{
		ActiveMembers:      activeMembers,
		ActiveMemberships:  activeMemberships,
		ExpiredMemberships: expiredMemberships,
		MonthIncome:        monthIncome,
		TotalDebt:          totalDebt,
		TodayVisits:        todayVisits,
	}, nil
}

// TopMembers returns the five most frequent visitors over the trailing
// 30 days.
func (s *DashboardService) TopMembers(ctx context.Context) ([]TopMember, error) {
	rows, err := s.attendances.TopMembers(ctx, topMembersLimit)
	if err != nil {
		return nil, err
	}

	out := make([]TopMember, 0, len(rows))
	for _, r := range rows {
		out = append(out, TopMember{
			MemberID:     r.MemberID,
			Name:         r.Name,
			Visits:       r.Visits,
			TotalMinutes: r.TotalMinutes,
		})
	}
	return out, nil
}

// IncomeByPlan breaks membership payments down per plan.
func (s *DashboardService) IncomeByPlan(ctx context.Context) ([]PlanIncome, error) {
	rows, err := s.payments.IncomeByPlan(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]PlanIncome, 0, len(rows))
	for _, r := range rows {
		out = append(out, PlanIncome{
			Plan:  r.Plan,
			Count: r.Count,
			Total: r.Total,
		})
	}
	return out, nil
}
