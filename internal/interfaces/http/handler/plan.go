package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	planapp "github.com/gymtrack/backend/internal/application/plan"
)

// PlanHandler handles plan-related API endpoints
type PlanHandler struct {
	BaseHandler
	planService *planapp.PlanService
}

// NewPlanHandler creates a new PlanHandler
func NewPlanHandler(planService *planapp.PlanService) *PlanHandler {
	return &PlanHandler{planService: planService}
}

// CreatePlanRequest represents a request to create a plan
type CreatePlanRequest struct {
	Name           string  `json:"name" binding:"required,min=1,max=100"`
	Description    string  `json:"description" binding:"max=500"`
	Price          float64 `json:"price" binding:"required,gt=0"`
	DurationMonths int     `json:"duration_months" binding:"required,min=1"`
	Benefits       string  `json:"benefits"`
}

// Create creates a plan
func (h *PlanHandler) Create(c *gin.Context) {
	var req CreatePlanRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	created, err := h.planService.Create(c.Request.Context(), planapp.CreatePlanRequest{
		Name:           req.Name,
		Description:    req.Description,
		Price:          decimal.NewFromFloat(req.Price),
		DurationMonths: req.DurationMonths,
		Benefits:       req.Benefits,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// List returns all plans, or only offered ones with ?active=true
func (h *PlanHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	plans, err := h.planService.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, plans)
}

// GetByID returns a single plan
func (h *PlanHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.planService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}
