package handler

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"github.com/gymtrack/backend/internal/application/billing"
	memberapp "github.com/gymtrack/backend/internal/application/member"
	"github.com/gymtrack/backend/internal/domain/member"
	"github.com/gymtrack/backend/internal/domain/payment"
)

// MemberHandler handles member-related API endpoints
type MemberHandler struct {
	BaseHandler
	memberService     *memberapp.MemberService
	membershipService *billing.MembershipService
}

// NewMemberHandler creates a new MemberHandler
func NewMemberHandler(memberService *memberapp.MemberService, membershipService *billing.MembershipService) *MemberHandler {
	return &MemberHandler{
		memberService:     memberService,
		membershipService: membershipService,
	}
}

// CreateMemberRequest represents a request to register a new member.
// When plan_id is set, a membership is assigned in the same request and
// the payment/debt cascade runs off the amount_paid.
type CreateMemberRequest struct {
	FirstName        string     `json:"first_name" binding:"required,min=1,max=100"`
	LastName         string     `json:"last_name" binding:"required,min=1,max=100"`
	NationalID       string     `json:"national_id" binding:"omitempty,max=10"`
	Email            string     `json:"email" binding:"omitempty,email,max=200"`
	Phone            string     `json:"phone" binding:"max=50"`
	BirthDate        *time.Time `json:"birth_date"`
	Gender           string     `json:"gender" binding:"omitempty,oneof=M F other"`
	Address          string     `json:"address" binding:"max=500"`
	PhotoURL         string     `json:"photo_url"`
	EmergencyContact string     `json:"emergency_contact" binding:"max=200"`
	EmergencyPhone   string     `json:"emergency_phone" binding:"max=50"`
	Notes            string     `json:"notes"`

	PlanID     *uint    `json:"plan_id"`
	MonthsPaid int      `json:"months_paid" binding:"omitempty,min=1"`
	AmountPaid *float64 `json:"amount_paid" binding:"omitempty,gte=0"`
	Method     string   `json:"payment_method" binding:"omitempty,oneof=cash card transfer other"`
}

// UpdateMemberRequest represents a request to update a member
type UpdateMemberRequest struct {
	FirstName        *string    `json:"first_name" binding:"omitempty,min=1,max=100"`
	LastName         *string    `json:"last_name" binding:"omitempty,min=1,max=100"`
	NationalID       *string    `json:"national_id" binding:"omitempty,max=10"`
	Email            *string    `json:"email" binding:"omitempty,email,max=200"`
	Phone            *string    `json:"phone" binding:"omitempty,max=50"`
	BirthDate        *time.Time `json:"birth_date"`
	Gender           *string    `json:"gender" binding:"omitempty,oneof=M F other"`
	Address          *string    `json:"address" binding:"omitempty,max=500"`
	PhotoURL         *string    `json:"photo_url"`
	EmergencyContact *string    `json:"emergency_contact" binding:"omitempty,max=200"`
	EmergencyPhone   *string    `json:"emergency_phone" binding:"omitempty,max=50"`
	Notes            *string    `json:"notes"`
	Active           *bool      `json:"active"`
}

// MemberWithMembershipResponse is the creation response when the request
// also assigned a membership.
type MemberWithMembershipResponse struct {
	Member     *memberapp.MemberResponse `json:"member"`
	Membership *billing.MembershipResult `json:"membership,omitempty"`
}

// Create registers a member, optionally assigning an initial membership
func (h *MemberHandler) Create(c *gin.Context) {
	var req CreateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	created, err := h.memberService.Create(c.Request.Context(), memberapp.CreateMemberRequest{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		NationalID:       req.NationalID,
		Email:            req.Email,
		Phone:            req.Phone,
		BirthDate:        req.BirthDate,
		Gender:           member.Gender(req.Gender),
		Address:          req.Address,
		PhotoURL:         req.PhotoURL,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		Notes:            req.Notes,
	})
	if err != nil {
		h.HandleError(c, err)
		return
	}

	resp := MemberWithMembershipResponse{Member: created}

	if req.PlanID != nil {
		months := req.MonthsPaid
		if months == 0 {
			months = 1
		}
		amount := decimal.Zero
		if req.AmountPaid != nil {
			amount = decimal.NewFromFloat(*req.AmountPaid)
		}
		result, err := h.membershipService.Create(c.Request.Context(), billing.CreateMembershipRequest{
			MemberID:   created.ID,
			PlanID:     *req.PlanID,
			AmountPaid: amount,
			MonthsPaid: months,
			Method:     payment.Method(req.Method),
		})
		if err != nil {
			// The member is already registered; report the membership
			// failure without rolling the member back.
			h.HandleError(c, err)
			return
		}
		resp.Membership = result
	}

	h.Created(c, resp)
}

// List returns all members, or only active ones with ?active=true
func (h *MemberHandler) List(c *gin.Context) {
	activeOnly := c.Query("active") == "true"

	members, err := h.memberService.List(c.Request.Context(), activeOnly)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, members)
}

// ListDetailed returns the front-desk roster with membership alerts and
// debt totals
func (h *MemberHandler) ListDetailed(c *gin.Context) {
	items, err := h.memberService.ListDetailed(c.Request.Context())
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, items)
}

// Search finds members by name, cedula or code. A missing or blank q
// simply returns an empty list.
func (h *MemberHandler) Search(c *gin.Context) {
	members, err := h.memberService.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, members)
}

// GetByID returns a single member
func (h *MemberHandler) GetByID(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	m, err := h.memberService.Get(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, m)
}

// GetFull returns a member with their active membership and open debts
func (h *MemberHandler) GetFull(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	full, err := h.memberService.GetFull(c.Request.Context(), id)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, full)
}

// Update modifies a member
func (h *MemberHandler) Update(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	var req UpdateMemberRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.BindingError(c, err)
		return
	}

	patch := member.Patch{
		FirstName:        req.FirstName,
		LastName:         req.LastName,
		NationalID:       req.NationalID,
		Email:            req.Email,
		Phone:            req.Phone,
		BirthDate:        req.BirthDate,
		Address:          req.Address,
		PhotoURL:         req.PhotoURL,
		EmergencyContact: req.EmergencyContact,
		EmergencyPhone:   req.EmergencyPhone,
		Notes:            req.Notes,
		Active:           req.Active,
	}
	if req.Gender != nil {
		g := member.Gender(*req.Gender)
		patch.Gender = &g
	}

	updated, err := h.memberService.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, updated)
}

// Deactivate soft-deletes a member
func (h *MemberHandler) Deactivate(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.memberService.Deactivate(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Member deactivated"})
}

// Delete removes a member permanently
func (h *MemberHandler) Delete(c *gin.Context) {
	id, err := parseIDParam(c, "id")
	if err != nil {
		h.BadRequest(c, err.Error())
		return
	}

	if err := h.memberService.Delete(c.Request.Context(), id); err != nil {
		h.HandleError(c, err)
		return
	}
	h.Success(c, gin.H{"message": "Member deleted"})
}
