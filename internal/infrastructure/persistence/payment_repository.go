package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gymtrack/backend/internal/domain/payment"
	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/gymtrack/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormPaymentRepository implements payment.Repository using GORM
type GormPaymentRepository struct {
	db *gorm.DB
}

// NewGormPaymentRepository creates a new GormPaymentRepository
func NewGormPaymentRepository(db *gorm.DB) *GormPaymentRepository {
	return &GormPaymentRepository{db: db}
}

// FindByID finds a payment by its ID
func (r *GormPaymentRepository) FindByID(ctx context.Context, id uint) (*payment.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all payments, newest first
func (r *GormPaymentRepository) FindAll(ctx context.Context) ([]payment.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Order("paid_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByMember finds a member's payments, newest first
func (r *GormPaymentRepository) FindByMember(ctx context.Context, memberID uint) ([]payment.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("paid_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindByMemberAndConcept finds a member's payments with exactly the given
// concept, newest first
func (r *GormPaymentRepository) FindByMemberAndConcept(ctx context.Context, memberID uint, concept string) ([]payment.Payment, error) {
	var paymentModels []models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND concept = ?", memberID, concept).
		Order("paid_at DESC").
		Find(&paymentModels).Error; err != nil {
		return nil, err
	}
	return toDomainPayments(paymentModels), nil
}

// FindEarliestByMembership finds the oldest payment linked to a membership
func (r *GormPaymentRepository) FindEarliestByMembership(ctx context.Context, membershipID uint) (*payment.Payment, error) {
	var model models.PaymentModel
	if err := r.db.WithContext(ctx).
		Where("membership_id = ?", membershipID).
		Order("paid_at ASC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// SummaryForMonth computes count, sum and average of payments dated in the
// given month
func (r *GormPaymentRepository) SummaryForMonth(ctx context.Context, t time.Time) (payment.MonthSummary, error) {
	from, to := monthBounds(t)

	var row struct {
		Count   int64
		Total   decimal.Decimal
		Average decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total, COALESCE(AVG(amount), 0) AS average").
		Where("paid_at >= ? AND paid_at < ?", from, to).
		Scan(&row).Error; err != nil {
		return payment.MonthSummary{}, err
	}
	return payment.MonthSummary{
		Count:   row.Count,
		Total:   row.Total,
		Average: row.Average,
	}, nil
}

// TotalsByMethod breaks payments dated in the given month down by method
func (r *GormPaymentRepository) TotalsByMethod(ctx context.Context, t time.Time) ([]payment.MethodTotal, error) {
	from, to := monthBounds(t)

	var rows []struct {
		Method payment.Method
		Count  int64
		Total  decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("method, COUNT(*) AS count, COALESCE(SUM(amount), 0) AS total").
		Where("paid_at >= ? AND paid_at < ?", from, to).
		Group("method").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	totals := make([]payment.MethodTotal, len(rows))
	for i, row := range rows {
		totals[i] = payment.MethodTotal{
			Method: row.Method,
			Count:  row.Count,
			Total:  row.Total,
		}
	}
	return totals, nil
}

// IncomeForMonth sums payments dated in the given month
func (r *GormPaymentRepository) IncomeForMonth(ctx context.Context, t time.Time) (decimal.Decimal, error) {
	from, to := monthBounds(t)

	var row struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("COALESCE(SUM(amount), 0) AS total").
		Where("paid_at >= ? AND paid_at < ?", from, to).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// IncomeByPlan sums membership-linked payments per plan, highest income
// first
func (r *GormPaymentRepository) IncomeByPlan(ctx context.Context) ([]payment.PlanIncome, error) {
	var rows []struct {
		Plan  string
		Count int64
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.PaymentModel{}).
		Select("plans.name AS plan, COUNT(*) AS count, COALESCE(SUM(payments.amount), 0) AS total").
		Joins("JOIN memberships ON memberships.id = payments.membership_id").
		Joins("JOIN plans ON plans.id = memberships.plan_id").
		Group("plans.name").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	incomes := make([]payment.PlanIncome, len(rows))
	for i, row := range rows {
		incomes[i] = payment.PlanIncome{
			Plan:  row.Plan,
			Count: row.Count,
			Total: row.Total,
		}
	}
	return incomes, nil
}

// Save creates or updates a payment
func (r *GormPaymentRepository) Save(ctx context.Context, p *payment.Payment) error {
	var model models.PaymentModel
	model.FromDomain(p)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	p.ID = model.ID
	return nil
}

func toDomainPayments(paymentModels []models.PaymentModel) []payment.Payment {
	payments := make([]payment.Payment, len(paymentModels))
	for i := range paymentModels {
		payments[i] = *paymentModels[i].ToDomain()
	}
	return payments
}

// monthBounds returns the [start, next-month-start) window containing t.
func monthBounds(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 1, 0)
}

var _ payment.Repository = (*GormPaymentRepository)(nil)
