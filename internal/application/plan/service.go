package plan

import (
	"context"

	"github.com/gymtrack/backend/internal/domain/plan"
	"github.com/shopspring/decimal"
)

// CreatePlanRequest carries the input for creating a plan.
type CreatePlanRequest struct {
	Name           string
	Description    string
	Price          decimal.Decimal
	DurationMonths int
	Benefits       string
}

// PlanResponse is the API shape of a plan.
type PlanResponse struct {
	ID             uint            `json:"id"`
	Name           string          `json:"name"`
	Description    string          `json:"description,omitempty"`
	Price          decimal.Decimal `json:"price"`
	DurationMonths int             `json:"duration_months"`
	Benefits       string          `json:"benefits,omitempty"`
	Active         bool            `json:"active"`
}

// ToPlanResponse maps a domain plan to its API shape.
func ToPlanResponse(p *plan.Plan) *PlanResponse {
	return &PlanResponse{
		ID:             p.ID,
		Name:           p.Name,
		Description:    p.Description,
		Price:          p.Price,
		DurationMonths: p.DurationMonths,
		Benefits:       p.Benefits,
		Active:         p.Active,
	}
}

// PlanService manages the plan catalog.
type PlanService struct {
	plans plan.Repository
}

// NewPlanService creates a new PlanService.
func NewPlanService(plans plan.Repository) *PlanService {
	return &PlanService{plans: plans}
}

// Create adds a plan to the catalog.
func (s *PlanService) Create(ctx context.Context, req CreatePlanRequest) (*PlanResponse, error) {
	p, err := plan.NewPlan(req.Name, req.Price, req.DurationMonths)
	if err != nil {
		return nil, err
	}
	p.Description = req.Description
	p.Benefits = req.Benefits

	if err := s.plans.Save(ctx, p); err != nil {
		return nil, err
	}
	return ToPlanResponse(p), nil
}

// Get returns a single plan.
func (s *PlanService) Get(ctx context.Context, id uint) (*PlanResponse, error) {
	p, err := s.plans.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	return ToPlanResponse(p), nil
}

// List returns plans, optionally restricted to the ones currently
// offered.
func (s *PlanService) List(ctx context.Context, activeOnly bool) ([]PlanResponse, error) {
	var (
		ps  []plan.Plan
		err error
	)
	if activeOnly {
		ps, err = s.plans.FindActive(ctx)
	} else {
		ps, err = s.plans.FindAll(ctx)
	}
	if err != nil {
		return nil, err
	}

	out := make([]PlanResponse, 0, len(ps))
	for i := range ps {
		out = append(out, *ToPlanResponse(&ps[i]))
	}
	return out, nil
}
