package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gymtrack/backend/internal/domain/membership"
	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/gymtrack/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMembershipRepository implements membership.Repository using GORM
type GormMembershipRepository struct {
	db *gorm.DB
}

// NewGormMembershipRepository creates a new GormMembershipRepository
func NewGormMembershipRepository(db *gorm.DB) *GormMembershipRepository {
	return &GormMembershipRepository{db: db}
}

// FindByID finds a membership by its ID
func (r *GormMembershipRepository) FindByID(ctx context.Context, id uint) (*membership.Membership, error) {
	var model models.MembershipModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all memberships
func (r *GormMembershipRepository) FindAll(ctx context.Context) ([]membership.Membership, error) {
	var membershipModels []models.MembershipModel
	if err := r.db.WithContext(ctx).
		Order("end_date DESC").
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}
	return toDomainMemberships(membershipModels), nil
}

// FindByMember finds all memberships for a member, most recent end date
// first
func (r *GormMembershipRepository) FindByMember(ctx context.Context, memberID uint) ([]membership.Membership, error) {
	var membershipModels []models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("end_date DESC").
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}
	return toDomainMemberships(membershipModels), nil
}

// FindActiveByMember finds the member's active memberships, most recent
// end date first
func (r *GormMembershipRepository) FindActiveByMember(ctx context.Context, memberID uint) ([]membership.Membership, error) {
	var membershipModels []models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND status = ?", memberID, membership.StatusActive).
		Order("end_date DESC").
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}
	return toDomainMemberships(membershipModels), nil
}

// FindLatestByMember finds the member's most recent membership by end date
func (r *GormMembershipRepository) FindLatestByMember(ctx context.Context, memberID uint) (*membership.Membership, error) {
	var model models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ?", memberID).
		Order("end_date DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByStatus finds memberships in the given state, most recent end date
// first
func (r *GormMembershipRepository) FindByStatus(ctx context.Context, status membership.Status) ([]membership.Membership, error) {
	var membershipModels []models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("status = ?", status).
		Order("end_date DESC").
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}
	return toDomainMemberships(membershipModels), nil
}

// FindActiveEndingBetween finds active memberships whose end date falls in
// [from, to], soonest first
func (r *GormMembershipRepository) FindActiveEndingBetween(ctx context.Context, from, to time.Time) ([]membership.Membership, error) {
	var membershipModels []models.MembershipModel
	if err := r.db.WithContext(ctx).
		Where("status = ? AND end_date BETWEEN ? AND ?", membership.StatusActive, from, to).
		Order("end_date ASC").
		Find(&membershipModels).Error; err != nil {
		return nil, err
	}
	return toDomainMemberships(membershipModels), nil
}

// CountByStatus counts memberships in the given state
func (r *GormMembershipRepository) CountByStatus(ctx context.Context, status membership.Status) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MembershipModel{}).
		Where("status = ?", status).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a membership
func (r *GormMembershipRepository) Save(ctx context.Context, m *membership.Membership) error {
	var model models.MembershipModel
	model.FromDomain(m)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	m.ID = model.ID
	return nil
}

func toDomainMemberships(membershipModels []models.MembershipModel) []membership.Membership {
	memberships := make([]membership.Membership, len(membershipModels))
	for i := range membershipModels {
		memberships[i] = *membershipModels[i].ToDomain()
	}
	return memberships
}

var _ membership.Repository = (*GormMembershipRepository)(nil)
