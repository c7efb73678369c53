package member

import (
	"fmt"
	"strings"
	"time"

	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/gymtrack/backend/internal/domain/shared/valueobject"
)

// CodePrefix is the prefix for generated member codes.
const CodePrefix = "GYM"

// Gender represents a member's declared gender
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "other"
)

// Member represents a gym patron. Members are never hard-deleted in the
// normal flow; deactivation flips the Active flag.
type Member struct {
	shared.BaseEntity
	Code             string
	FirstName        string
	LastName         string
	NationalID       string
	Email            string
	Phone            string
	BirthDate        *time.Time
	Gender           Gender
	Address          string
	PhotoURL         string
	EmergencyContact string
	EmergencyPhone   string
	Notes            string
	Active           bool
	RegisteredAt     time.Time
}

// NewMember creates a new active member. The member code is assigned by
// the caller (sequential, via FormatCode) and the national ID, when
// present, must be a valid cedula.
func NewMember(code, firstName, lastName string) (*Member, error) {
	firstName = strings.TrimSpace(firstName)
	lastName = strings.TrimSpace(lastName)
	if firstName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "first name is required")
	}
	if lastName == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "last name is required")
	}
	if code == "" {
		return nil, shared.NewDomainError("INVALID_INPUT", "member code is required")
	}

	return &Member{
		BaseEntity:   shared.NewBaseEntity(),
		Code:         code,
		FirstName:    firstName,
		LastName:     lastName,
		Active:       true,
		RegisteredAt: time.Now(),
	}, nil
}

// FormatCode formats the nth member code as GYM-NNNN, zero-padded.
func FormatCode(n int64) string {
	return fmt.Sprintf("%s-%04d", CodePrefix, n)
}

// FullName returns the member's display name.
func (m *Member) FullName() string {
	return m.FirstName + " " + m.LastName
}

// SetNationalID validates and sets the member's cedula.
func (m *Member) SetNationalID(nationalID string) error {
	if err := valueobject.CedulaError(nationalID); err != nil {
		return err
	}
	m.NationalID = nationalID
	m.UpdatedAt = time.Now()
	return nil
}

// Deactivate flips the active flag. Deactivation is the normal removal
// path; the row is kept for history.
func (m *Member) Deactivate() {
	m.Active = false
	m.UpdatedAt = time.Now()
}

// Patch holds optional field updates for a member. Nil fields are left
// untouched by Merge. The national ID is validated by the service
// before merging.
type Patch struct {
	FirstName        *string
	LastName         *string
	NationalID       *string
	Email            *string
	Phone            *string
	BirthDate        *time.Time
	Gender           *Gender
	Address          *string
	PhotoURL         *string
	EmergencyContact *string
	EmergencyPhone   *string
	Notes            *string
	Active           *bool
}

// Merge returns a copy of the member with the patch applied. The
// receiver is not modified.
func (m Member) Merge(p Patch) Member {
	if p.FirstName != nil {
		m.FirstName = *p.FirstName
	}
	if p.LastName != nil {
		m.LastName = *p.LastName
	}
	if p.NationalID != nil {
		m.NationalID = *p.NationalID
	}
	if p.Email != nil {
		m.Email = *p.Email
	}
	if p.Phone != nil {
		m.Phone = *p.Phone
	}
	if p.BirthDate != nil {
		m.BirthDate = p.BirthDate
	}
	if p.Gender != nil {
		m.Gender = *p.Gender
	}
	if p.Address != nil {
		m.Address = *p.Address
	}
	if p.PhotoURL != nil {
		m.PhotoURL = *p.PhotoURL
	}
	if p.EmergencyContact != nil {
		m.EmergencyContact = *p.EmergencyContact
	}
	if p.EmergencyPhone != nil {
		m.EmergencyPhone = *p.EmergencyPhone
	}
	if p.Notes != nil {
		m.Notes = *p.Notes
	}
	if p.Active != nil {
		m.Active = *p.Active
	}
	m.UpdatedAt = time.Now()
	return m
}
