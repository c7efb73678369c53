package persistence

import (
	"context"
	"errors"
	"strings"

	"github.com/gymtrack/backend/internal/domain/member"
	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/gymtrack/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormMemberRepository implements member.Repository using GORM
type GormMemberRepository struct {
	db *gorm.DB
}

// NewGormMemberRepository creates a new GormMemberRepository
func NewGormMemberRepository(db *gorm.DB) *GormMemberRepository {
	return &GormMemberRepository{db: db}
}

// FindByID finds a member by its ID
func (r *GormMemberRepository) FindByID(ctx context.Context, id uint) (*member.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all members, newest first
func (r *GormMemberRepository) FindAll(ctx context.Context) ([]member.Member, error) {
	var memberModels []models.MemberModel
	if err := r.db.WithContext(ctx).
		Order("registered_at DESC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}
	return toDomainMembers(memberModels), nil
}

// FindActive finds all active members, newest first
func (r *GormMemberRepository) FindActive(ctx context.Context) ([]member.Member, error) {
	var memberModels []models.MemberModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("registered_at DESC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}
	return toDomainMembers(memberModels), nil
}

// FindByNationalID finds a member by cedula
func (r *GormMemberRepository) FindByNationalID(ctx context.Context, nationalID string) (*member.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).
		Where("national_id = ?", nationalID).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindByEmail finds a member by email
func (r *GormMemberRepository) FindByEmail(ctx context.Context, email string) (*member.Member, error) {
	var model models.MemberModel
	if err := r.db.WithContext(ctx).
		Where("email = ?", strings.ToLower(email)).
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// Search finds members whose name, surname, cedula or member code
// contains the query, case-insensitively
func (r *GormMemberRepository) Search(ctx context.Context, query string) ([]member.Member, error) {
	pattern := "%" + strings.TrimSpace(query) + "%"
	var memberModels []models.MemberModel
	if err := r.db.WithContext(ctx).
		Where("first_name ILIKE ? OR last_name ILIKE ? OR national_id ILIKE ? OR code ILIKE ?",
			pattern, pattern, pattern, pattern).
		Order("registered_at DESC").
		Find(&memberModels).Error; err != nil {
		return nil, err
	}
	return toDomainMembers(memberModels), nil
}

// Count counts all members, active or not
func (r *GormMemberRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// CountActive counts active members
func (r *GormMemberRepository) CountActive(ctx context.Context) (int64, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.MemberModel{}).
		Where("active = ?", true).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// Save creates or updates a member
func (r *GormMemberRepository) Save(ctx context.Context, m *member.Member) error {
	var model models.MemberModel
	model.FromDomain(m)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	m.ID = model.ID
	return nil
}

// Delete removes a member permanently
func (r *GormMemberRepository) Delete(ctx context.Context, id uint) error {
	result := r.db.WithContext(ctx).Delete(&models.MemberModel{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return shared.ErrNotFound
	}
	return nil
}

func toDomainMembers(memberModels []models.MemberModel) []member.Member {
	members := make([]member.Member, len(memberModels))
	for i := range memberModels {
		members[i] = *memberModels[i].ToDomain()
	}
	return members
}

var _ member.Repository = (*GormMemberRepository)(nil)
