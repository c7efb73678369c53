package handler

import (
	"errors"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gymtrack/backend/internal/application/billing"
	"github.com/gymtrack/backend/internal/domain/membership"
	"github.com/gymtrack/backend/internal/domain/payment"
	"github.com/gymtrack/backend/internal/infrastructure/storage"
)

// MembershipHandler handles membership-related API endpoints
type MembershipHandler struct {
	BaseHandler
	membershipService *billing.MembershipService
	receipts          *storage.ReceiptStore
}

// NewMembershipHandler creates a new MembershipHandler
func NewMembershipHandler(membershipService *billing.MembershipService, receipts *storage.ReceiptStore) *MembershipHandler {
	return &MembershipHandler{
		membershipService: membershipService,
		receipts:          receipts,
	}
}

// CreateMembershipRequest represents a request to assign a membership
type CreateMembershipRequest struct {
	MemberID   uint    `json:"member_id" binding:"required"`
	PlanID     uint    `json:"plan_id" binding:"required"`
	AmountPaid float64 `json:"amount_paid" binding:"gte=0"`
	MonthsPaid int     `json:"months_paid" binding:"omitempty,min=1"`
	Method     string  `json:"payment_method" binding:"omitempty,oneof=cash card transfer other"`
	ReceiptURL string  `json:"receipt_url"`
}

// UpdateMembershipRequest represents a request to update a membership
type UpdateMembershipRequest struct {
	PlanID     *uint      `json:"plan_id"`
	StartDate  *time.Time `json:"start_date"`
	EndDate    *time.Time `json:"end_date"`
	MonthsPaid *int       `json:"months_paid" binding:"omitempty,min=1"`
	AmountPaid *float64   `json:"amount_paid" binding:"omitempty,gte=0"`
	Status     *string    `json:"status" binding:"omitempty,oneof=active expired cancelled frozen"`
}

// UploadReceiptRequest represents a base64 receipt upload
type UploadReceiptRequest struct {
	MemberName string `json:"member_name" binding:"required"`
	FileName   string `json:"file_name"`
	FileType   string `json:"file_type"`
	Base64Data string `json:"base64_data"`
}

// UploadReceiptResponse is the soft-failure envelope for receipt uploads
type UploadReceiptResponse struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	URL      string `json:"url,omitempty"`
	Filename string `json:"filename,omitempty"`
}

// Create assigns a membership, cancelling previous active ones and
// deriving the payment and debt
func (h *MembershipHandler) Create(c *gin.Context) {
	var req CreateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	months := req.MonthsPaid
	if months == 0 {
		months = 1
	}

	result, err := h.membershipService.Create(c.Request.Context(), billing.CreateMembershipRequest{
		MemberID:   req.MemberID,
		PlanID:     req.PlanID,
		AmountPaid: decimal.NewFromFloat(req.AmountPaid),
		MonthsPaid: months,
		Method:     payment.Method(req.Method),
		ReceiptURL: req.ReceiptURL,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Created(c, result)
}

// List returns all memberships
func (h *MembershipHandler) List(c *gin.Context) {
	memberships, err := h.membershipService.List(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, memberships)
}

// ListActive returns active memberships
func (h *MembershipHandler) ListActive(c *gin.Context) {
	memberships, err := h.membershipService.ListActive(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, memberships)
}

// ListExpiring returns active memberships ending within the next week
func (h *MembershipHandler) ListExpiring(c *gin.Context) {
	memberships, err := h.membershipService.ListExpiring(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, memberships)
}

// ListExpired returns expired memberships
func (h *MembershipHandler) ListExpired(c *gin.Context) {
	memberships, err := h.membershipService.ListExpired(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, memberships)
}

// ListByMember returns a member's membership history
func (h *MembershipHandler) ListByMember(c *gin.Context) {
	memberID, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	memberships, err := h.membershipService.ListByMember(c.Request.Context(), memberID)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, memberships)
}

// Update modifies a membership and reconciles its payment when the
// amount changed
func (h *MembershipHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req UpdateMembershipRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	patch := membership.Patch{
		PlanID:     req.PlanID,
		StartDate:  req.StartDate,
		EndDate:    req.EndDate,
		MonthsPaid: req.MonthsPaid,
	}
	if req.AmountPaid != nil {
		amount := decimal.NewFromFloat(*req.AmountPaid)
		patch.AmountPaid = &amount
	}
	if req.Status != nil {
		status := membership.Status(*req.Status)
		patch.Status = &status
	}

	updated, err := h.membershipService.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// UploadReceipt stores a base64-encoded transfer receipt. Failures are
// reported in the body rather than via error statuses so the front desk
// flow can continue without the receipt.
func (h *MembershipHandler) UploadReceipt(c *gin.Context) {
	var req UploadReceiptRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	stored, err := h.receipts.Save(req.MemberName, req.FileName, req.Base64Data)
	if err != nil {
		message := "Could not store the receipt"
		switch {
		case errors.Is(err, storage.ErrEmptyFile):
			message = "No file received"
		case errors.Is(err, storage.ErrFileTooLarge):
			message = "File exceeds the maximum allowed size"
		}
		h.Success(c, UploadReceiptResponse{Success: false, Message: message})
		return
	}

	h.Success(c, UploadReceiptResponse{
		Success:  true,
		Message:  "Receipt uploaded",
		URL:      stored.URL,
		Filename: stored.Filename,
	})
}
