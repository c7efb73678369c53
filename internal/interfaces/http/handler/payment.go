package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gymtrack/backend/internal/application/billing"
	"github.com/gymtrack/backend/internal/domain/payment"
)

// PaymentHandler handles payment-related API endpoints. Membership and
// debt payments are written by their own services; Create here covers
// one-off charges like day passes or merchandise.
type PaymentHandler struct {
	BaseHandler
	paymentService *billing.PaymentService
}

// NewPaymentHandler creates a new PaymentHandler
func NewPaymentHandler(paymentService *billing.PaymentService) *PaymentHandler {
	return &PaymentHandler{paymentService: paymentService}
}

// CreatePaymentRequest represents a request to record a standalone
// payment
type CreatePaymentRequest struct {
	MemberID      uint    `json:"member_id" binding:"required"`
	MembershipID  *uint   `json:"membership_id"`
	Amount        float64 `json:"amount" binding:"required,gt=0"`
	Method        string  `json:"payment_method" binding:"omitempty,oneof=cash card transfer other"`
	Concept       string  `json:"concept" binding:"required,min=1,max=255"`
	Period        string  `json:"period" binding:"omitempty,max=20"`
	ReceiptNumber string  `json:"receipt_number" binding:"omitempty,max=50"`
	Notes         string  `json:"notes"`
}

// Create records a standalone payment
func (h *PaymentHandler) Create(c *gin.Context) {
	var req CreatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	created, err := h.paymentService.Create(c.Request.Context(), billing.CreatePaymentRequest{
		MemberID:      req.MemberID,
		MembershipID:  req.MembershipID,
		Amount:        decimal.NewFromFloat(req.Amount),
		Method:        payment.Method(req.Method),
		Concept:       req.Concept,
		Period:        req.Period,
		ReceiptNumber: req.ReceiptNumber,
		Notes:         req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, created)
}

// List returns all payments, most recent first
func (h *PaymentHandler) List(c *gin.Context) {
	payments, err := h.paymentService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// MonthSummary returns count, total and average for a month. Accepts an
// optional ?month=YYYY-MM, defaulting to the current month.
func (h *PaymentHandler) MonthSummary(c *gin.Context) {
	month, err := monthQuery(c)
	if err != nil {
		h.BadRequest(c, "month must be in YYYY-MM format")
		return
	}

	summary, err := h.paymentService.MonthSummary(c.Request.Context(), month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, summary)
}

// ByMethod returns payment totals grouped by method for a month. Accepts
// an optional ?month=YYYY-MM, defaulting to the current month.
func (h *PaymentHandler) ByMethod(c *gin.Context) {
	month, err := monthQuery(c)
	if err != nil {
		h.BadRequest(c, "month must be in YYYY-MM format")
		return
	}

	totals, err := h.paymentService.TotalsByMethod(c.Request.Context(), month)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, totals)
}

// ListByMember returns a member's payment history
func (h *PaymentHandler) ListByMember(c *gin.Context) {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	payments, err := h.paymentService.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, payments)
}

// GetByID returns a single payment
func (h *PaymentHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	p, err := h.paymentService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, p)
}

func monthQuery(c *gin.Context) (time.Time, error) {
	raw := c.Query("month")
	if raw == "" {
		return time.Now(), nil
	}
	return time.Parse("2006-01", raw)
}
