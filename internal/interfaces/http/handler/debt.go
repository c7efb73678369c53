package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gymtrack/backend/internal/application/billing"
	"github.com/gymtrack/backend/internal/domain/debt"
	"github.com/gymtrack/backend/internal/domain/payment"
)

// DebtHandler handles debt-related API endpoints
type DebtHandler struct {
	BaseHandler
	debtService *billing.DebtService
}

// NewDebtHandler creates a new DebtHandler
func NewDebtHandler(debtService *billing.DebtService) *DebtHandler {
	return &DebtHandler{debtService: debtService}
}

// CreateDebtRequest represents a request to raise a debt by hand
type CreateDebtRequest struct {
	MemberID    uint       `json:"member_id" binding:"required"`
	TotalAmount float64    `json:"total_amount" binding:"required,gt=0"`
	PaidAmount  float64    `json:"paid_amount" binding:"gte=0"`
	Concept     string     `json:"concept" binding:"required,min=1,max=255"`
	DueDate     *time.Time `json:"due_date"`
}

// UpdateDebtRequest represents a request to correct a debt. Changing the
// amounts reconciles the payment ledger.
type UpdateDebtRequest struct {
	TotalAmount *float64   `json:"total_amount" binding:"omitempty,gt=0"`
	PaidAmount  *float64   `json:"paid_amount" binding:"omitempty,gte=0"`
	Concept     *string    `json:"concept" binding:"omitempty,min=1,max=255"`
	DueDate     *time.Time `json:"due_date"`
	Status      *string    `json:"status" binding:"omitempty,oneof=pending partial paid cancelled"`
}

// DebtInstallmentRequest represents an installment against a debt
type DebtInstallmentRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
	Method string  `json:"payment_method" binding:"omitempty,oneof=cash card transfer other"`
}

// Create raises a debt
func (h *DebtHandler) Create(c *gin.Context) {
	var req CreateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	created, err := h.debtService.Create(c.Request.Context(), billing.CreateDebtRequest{
		MemberID:    req.MemberID,
		TotalAmount: decimal.NewFromFloat(req.TotalAmount),
		PaidAmount:  decimal.NewFromFloat(req.PaidAmount),
		Concept:     req.Concept,
		DueDate:     req.DueDate,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// List returns all debts
func (h *DebtHandler) List(c *gin.Context) {
	debts, err := h.debtService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debts)
}

// ListPending returns outstanding debts, soonest due first
func (h *DebtHandler) ListPending(c *gin.Context) {
	debts, err := h.debtService.ListOutstanding(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debts)
}

// ListByMember returns a member's debts
func (h *DebtHandler) ListByMember(c *gin.Context) {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	debts, err := h.debtService.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, debts)
}

// MembersWithDebt returns the per-member outstanding debt report
func (h *DebtHandler) MembersWithDebt(c *gin.Context) {
	summaries, err := h.debtService.MembersWithDebt(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summaries)
}

// GetByID returns a single debt
func (h *DebtHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	d, err := h.debtService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, d)
}

// Update corrects a debt, reconciling the payment ledger when amounts
// changed
func (h *DebtHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req UpdateDebtRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	patch := debt.Patch{
		Concept: req.Concept,
		DueDate: req.DueDate,
	}
	if req.TotalAmount != nil {
		total := decimal.NewFromFloat(*req.TotalAmount)
		patch.TotalAmount = &total
	}
	if req.PaidAmount != nil {
		paid := decimal.NewFromFloat(*req.PaidAmount)
		patch.PaidAmount = &paid
	}
	if req.Status != nil {
		status := debt.Status(*req.Status)
		patch.Status = &status
	}

	updated, err := h.debtService.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// RegisterPayment records an installment against a debt
func (h *DebtHandler) RegisterPayment(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req DebtInstallmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	result, err := h.debtService.RegisterPayment(c.Request.Context(), id, billing.DebtPaymentRequest{
		Amount: decimal.NewFromFloat(req.Amount),
		Method: payment.Method(req.Method),
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, result)
}
