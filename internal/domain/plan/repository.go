package plan

import (
	"context"
)

// Repository defines the interface for plan persistence
type Repository interface {
	// FindByID finds a plan by its ID
	FindByID(ctx context.Context, id uint) (*Plan, error)

	// FindAll finds all plans
	FindAll(ctx context.Context) ([]Plan, error)

	// FindActive finds plans currently offered
	FindActive(ctx context.Context) ([]Plan, error)

	// Save creates or updates a plan
	Save(ctx context.Context, plan *Plan) error
}
