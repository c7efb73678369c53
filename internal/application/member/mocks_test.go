package member

import (
	"context"
	"time"

	"github.com/gymtrack/backend/internal/domain/debt"
	"github.com/gymtrack/backend/internal/domain/member"
	"github.com/gymtrack/backend/internal/domain/membership"
	"github.com/gymtrack/backend/internal/domain/plan"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
)

// MockMemberRepository is a mock implementation of member.Repository
type MockMemberRepository struct {
	mock.Mock
}

func (m *MockMemberRepository) FindByID(ctx context.Context, id uint) (*member.Member, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindAll(ctx context.Context) ([]member.Member, error) {
	args := m.Called(ctx)
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindActive(ctx context.Context) ([]member.Member, error) {
	args := m.Called(ctx)
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByNationalID(ctx context.Context, nationalID string) (*member.Member, error) {
	args := m.Called(ctx, nationalID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*member.Member), args.Error(1)
}

func (m *MockMemberRepository) Search(ctx context.Context, query string) ([]member.Member, error) {
	args := m.Called(ctx, query)
	return args.Get(0).([]member.Member), args.Error(1)
}

func (m *MockMemberRepository) Count(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberRepository) CountActive(ctx context.Context) (int64, error) {
	args := m.Called(ctx)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMemberRepository) Save(ctx context.Context, mem *member.Member) error {
	args := m.Called(ctx, mem)
	return args.Error(0)
}

func (m *MockMemberRepository) Delete(ctx context.Context, id uint) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// MockMembershipRepository is a mock implementation of membership.Repository
type MockMembershipRepository struct {
	mock.Mock
}

func (m *MockMembershipRepository) FindByID(ctx context.Context, id uint) (*membership.Membership, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindAll(ctx context.Context) ([]membership.Membership, error) {
	args := m.Called(ctx)
	return args.Get(0).([]membership.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindByMember(ctx context.Context, memberID uint) ([]membership.Membership, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]membership.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindActiveByMember(ctx context.Context, memberID uint) ([]membership.Membership, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]membership.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindLatestByMember(ctx context.Context, memberID uint) (*membership.Membership, error) {
	args := m.Called(ctx, memberID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*membership.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindByStatus(ctx context.Context, status membership.Status) ([]membership.Membership, error) {
	args := m.Called(ctx, status)
	return args.Get(0).([]membership.Membership), args.Error(1)
}

func (m *MockMembershipRepository) FindActiveEndingBetween(ctx context.Context, from, to time.Time) ([]membership.Membership, error) {
	args := m.Called(ctx, from, to)
	return args.Get(0).([]membership.Membership), args.Error(1)
}

func (m *MockMembershipRepository) CountByStatus(ctx context.Context, status membership.Status) (int64, error) {
	args := m.Called(ctx, status)
	return args.Get(0).(int64), args.Error(1)
}

func (m *MockMembershipRepository) Save(ctx context.Context, ms *membership.Membership) error {
	args := m.Called(ctx, ms)
	return args.Error(0)
}

// MockPlanRepository is a mock implementation of plan.Repository
type MockPlanRepository struct {
	mock.Mock
}

func (m *MockPlanRepository) FindByID(ctx context.Context, id uint) (*plan.Plan, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*plan.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindAll(ctx context.Context) ([]plan.Plan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]plan.Plan), args.Error(1)
}

func (m *MockPlanRepository) FindActive(ctx context.Context) ([]plan.Plan, error) {
	args := m.Called(ctx)
	return args.Get(0).([]plan.Plan), args.Error(1)
}

func (m *MockPlanRepository) Save(ctx context.Context, p *plan.Plan) error {
	args := m.Called(ctx, p)
	return args.Error(0)
}

// MockDebtRepository is a mock implementation of debt.Repository
type MockDebtRepository struct {
	mock.Mock
}

func (m *MockDebtRepository) FindByID(ctx context.Context, id uint) (*debt.Debt, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*debt.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindAll(ctx context.Context) ([]debt.Debt, error) {
	args := m.Called(ctx)
	return args.Get(0).([]debt.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindOutstanding(ctx context.Context) ([]debt.Debt, error) {
	args := m.Called(ctx)
	return args.Get(0).([]debt.Debt), args.Error(1)
}

func (m *MockDebtRepository) FindByMember(ctx context.Context, memberID uint) ([]debt.Debt, error) {
	args := m.Called(ctx, memberID)
	return args.Get(0).([]debt.Debt), args.Error(1)
}

func (m *MockDebtRepository) TotalOutstanding(ctx context.Context) (decimal.Decimal, error) {
	args := m.Called(ctx)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockDebtRepository) MembersWithDebt(ctx context.Context) ([]debt.MemberDebtSummary, error) {
	args := m.Called(ctx)
	return args.Get(0).([]debt.MemberDebtSummary), args.Error(1)
}

func (m *MockDebtRepository) Save(ctx context.Context, d *debt.Debt) error {
	args := m.Called(ctx, d)
	return args.Error(0)
}
