package persistence

import (
	"context"
	"errors"

	"github.com/gymtrack/backend/internal/domain/debt"
	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/gymtrack/backend/internal/infrastructure/persistence/models"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormDebtRepository implements debt.Repository using GORM
type GormDebtRepository struct {
	db *gorm.DB
}

// NewGormDebtRepository creates a new GormDebtRepository
func NewGormDebtRepository(db *gorm.DB) *GormDebtRepository {
	return &GormDebtRepository{db: db}
}

// FindByID finds a debt by its ID
func (r *GormDebtRepository) FindByID(ctx context.Context, id uint) (*debt.Debt, error) {
	var model models.DebtModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all debts, latest due date first
func (r *GormDebtRepository) FindAll(ctx context.Context) ([]debt.Debt, error) {
	var debtModels []models.DebtModel
	if err := r.db.WithContext(ctx).
		Order("due_date DESC").
		Find(&debtModels).Error; err != nil {
		return nil, err
	}
	return toDomainDebts(debtModels), nil
}

// FindOutstanding finds pending and partial debts, soonest due date first
func (r *GormDebtRepository) FindOutstanding(ctx context.Context) ([]debt.Debt, error) {
	var debtModels []models.DebtModel
	if err := r.db.WithContext(ctx).
		Where("status IN ?", []debt.Status{debt.StatusPending, debt.StatusPartial}).
		Order("due_date ASC").
		Find(&debtModels).Error; err != nil {
		return nil, err
	}
	return toDomainDebts(debtModels), nil
}

// FindByMember finds a member's debts, latest due date first
func (r *GormDebtRepository) FindByMember(ctx context.Context, memberID uint) ([]debt.Debt, error) {
	var debtModels []models.DebtModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("due_date DESC").
		Find(&debtModels).Error; err != nil {
		return nil, err
	}
	return toDomainDebts(debtModels), nil
}

// TotalOutstanding sums the pending amount over pending and partial debts
func (r *GormDebtRepository) TotalOutstanding(ctx context.Context) (decimal.Decimal, error) {
	var row struct {
		Total decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.DebtModel{}).
		Select("COALESCE(SUM(pending_amount), 0) AS total").
		Where("status IN ?", []debt.Status{debt.StatusPending, debt.StatusPartial}).
		Scan(&row).Error; err != nil {
		return decimal.Zero, err
	}
	return row.Total, nil
}

// MembersWithDebt aggregates outstanding debt per member, largest total
// first
func (r *GormDebtRepository) MembersWithDebt(ctx context.Context) ([]debt.MemberDebtSummary, error) {
	var rows []struct {
		MemberID uint
		Name     string
		Phone    string
		Email    string
		Total    decimal.Decimal
	}
	if err := r.db.WithContext(ctx).
		Model(&models.DebtModel{}).
		Select("debts.member_id, members.first_name || ' ' || members.last_name AS name, members.phone, members.email, COALESCE(SUM(debts.pending_amount), 0) AS total").
		Joins("JOIN members ON members.id = debts.member_id").
		Where("debts.status IN ?", []debt.Status{debt.StatusPending, debt.StatusPartial}).
		Group("debts.member_id, members.first_name, members.last_name, members.phone, members.email").
		Order("total DESC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	summaries := make([]debt.MemberDebtSummary, len(rows))
	for i, row := range rows {
		summaries[i] = debt.MemberDebtSummary{
			MemberID: row.MemberID,
			Name:     row.Name,
			Phone:    row.Phone,
			Email:    row.Email,
			Total:    row.Total,
		}
	}
	return summaries, nil
}

// Save creates or updates a debt
func (r *GormDebtRepository) Save(ctx context.Context, d *debt.Debt) error {
	var model models.DebtModel
	model.FromDomain(d)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	d.ID = model.ID
	return nil
}

func toDomainDebts(debtModels []models.DebtModel) []debt.Debt {
	debts := make([]debt.Debt, len(debtModels))
	for i := range debtModels {
		debts[i] = *debtModels[i].ToDomain()
	}
	return debts
}

var _ debt.Repository = (*GormDebtRepository)(nil)
