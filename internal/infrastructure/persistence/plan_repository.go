package persistence

import (
	"context"
	"errors"

	"github.com/gymtrack/backend/internal/domain/plan"
	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/gymtrack/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// GormPlanRepository implements plan.Repository using GORM
type GormPlanRepository struct {
	db *gorm.DB
}

// NewGormPlanRepository creates a new GormPlanRepository
func NewGormPlanRepository(db *gorm.DB) *GormPlanRepository {
	return &GormPlanRepository{db: db}
}

// FindByID finds a plan by its ID
func (r *GormPlanRepository) FindByID(ctx context.Context, id uint) (*plan.Plan, error) {
	var model models.PlanModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindAll finds all plans
func (r *GormPlanRepository) FindAll(ctx context.Context) ([]plan.Plan, error) {
	var planModels []models.PlanModel
	if err := r.db.WithContext(ctx).
		Order("price ASC").
		Find(&planModels).Error; err != nil {
		return nil, err
	}
	return toDomainPlans(planModels), nil
}

// FindActive finds plans currently offered
func (r *GormPlanRepository) FindActive(ctx context.Context) ([]plan.Plan, error) {
	var planModels []models.PlanModel
	if err := r.db.WithContext(ctx).
		Where("active = ?", true).
		Order("price ASC").
		Find(&planModels).Error; err != nil {
		return nil, err
	}
	return toDomainPlans(planModels), nil
}

// Save creates or updates a plan
func (r *GormPlanRepository) Save(ctx context.Context, p *plan.Plan) error {
	var model models.PlanModel
	model.FromDomain(p)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	p.ID = model.ID
	return nil
}

func toDomainPlans(planModels []models.PlanModel) []plan.Plan {
	plans := make([]plan.Plan, len(planModels))
	for i := range planModels {
		plans[i] = *planModels[i].ToDomain()
	}
	return plans
}

var _ plan.Repository = (*GormPlanRepository)(nil)
