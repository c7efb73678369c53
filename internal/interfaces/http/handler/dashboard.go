package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/gymtrack/backend/internal/application/dashboard"
)

// DashboardHandler handles back-office dashboard endpoints
type DashboardHandler struct {
	BaseHandler
	dashboardService *dashboard.DashboardService
}

// NewDashboardHandler creates a new DashboardHandler
func NewDashboardHandler(dashboardService *dashboard.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

// Summary returns the front-page aggregate counters
func (h *DashboardHandler) Summary(c *gin.Context) {
	summary, err := h.dashboardService.Summary(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// TopMembers returns the most frequent visitors over the trailing 30 days
func (h *DashboardHandler) TopMembers(c *gin.Context) {
	top, err := h.dashboardService.TopMembers(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, top)
}

// IncomeByPlan breaks membership income down per plan
func (h *DashboardHandler) IncomeByPlan(c *gin.Context) {
	rows, err := h.dashboardService.IncomeByPlan(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, rows)
}
