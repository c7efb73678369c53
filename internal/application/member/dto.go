package member

import (
	"time"

	"github.com/gymtrack/backend/internal/application/billing"
	"github.com/gymtrack/backend/internal/domain/member"
	"github.com/shopspring/decimal"
)

// MembershipAlert classifies a member's standing for the front desk
// roster.
type MembershipAlert string

const (
	AlertNoMembership MembershipAlert = "NO_MEMBERSHIP"
	AlertExpired      MembershipAlert = "EXPIRED"
	AlertExpiringSoon MembershipAlert = "EXPIRING_SOON"
	AlertActive       MembershipAlert = "ACTIVE"
)

// CreateMemberRequest carries the input for registering a member. The
// member code is generated, never supplied.
type CreateMemberRequest struct {
	FirstName        string
	LastName         string
	NationalID       string
	Email            string
	Phone            string
	BirthDate        *time.Time
	Gender           member.Gender
	Address          string
	PhotoURL         string
	EmergencyContact string
	EmergencyPhone   string
	Notes            string
}

// MemberResponse is the API shape of a member.
type MemberResponse struct {
	ID               uint          `json:"id"`
	Code             string        `json:"code"`
	FirstName        string        `json:"first_name"`
	LastName         string        `json:"last_name"`
	FullName         string        `json:"full_name"`
	NationalID       string        `json:"national_id,omitempty"`
	Email            string        `json:"email,omitempty"`
	Phone            string        `json:"phone,omitempty"`
	BirthDate        *time.Time    `json:"birth_date,omitempty"`
	Gender           member.Gender `json:"gender,omitempty"`
	Address          string        `json:"address,omitempty"`
	PhotoURL         string        `json:"photo_url,omitempty"`
	EmergencyContact string        `json:"emergency_contact,omitempty"`
	EmergencyPhone   string        `json:"emergency_phone,omitempty"`
	Notes            string        `json:"notes,omitempty"`
	Active           bool          `json:"active"`
	RegisteredAt     time.Time     `json:"registered_at"`
}

// ToMemberResponse maps a domain member to its API shape.
func ToMemberResponse(m *member.Member) *MemberResponse {
	return &MemberResponse{
		ID:               m.ID,
		Code:             m.Code,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
		FullName:         m.FullName(),
		NationalID:       m.NationalID,
		Email:            m.Email,
		Phone:            m.Phone,
		BirthDate:        m.BirthDate,
		Gender:           m.Gender,
		Address:          m.Address,
		PhotoURL:         m.PhotoURL,
		EmergencyContact: m.EmergencyContact,
		EmergencyPhone:   m.EmergencyPhone,
		Notes:            m.Notes,
		Active:           m.Active,
		RegisteredAt:     m.RegisteredAt,
	}
}

// MemberListItem is a roster row: the member plus their membership
// standing and debt position.
type MemberListItem struct {
	ID            uint            `json:"id"`
	Code          string          `json:"code"`
	FullName      string          `json:"full_name"`
	Phone         string          `json:"phone,omitempty"`
	Alert         MembershipAlert `json:"alert"`
	PlanName      string          `json:"plan_name,omitempty"`
	EndDate       *time.Time      `json:"end_date,omitempty"`
	DaysRemaining int             `json:"days_remaining"`
	PendingDebt   decimal.Decimal `json:"pending_debt"`
	HasDebt       bool            `json:"has_debt"`
}

// MemberFullResponse is the member detail view: the member plus their
// active membership and open debts.
type MemberFullResponse struct {
	Member           *MemberResponse             `json:"member"`
	ActiveMembership *billing.MembershipResponse `json:"active_membership,omitempty"`
	PendingDebts     []billing.DebtResponse      `json:"pending_debts"`
	TotalDebt        decimal.Decimal             `json:"total_debt"`
}
