package models

import (
	"time"

	"github.com/gymtrack/backend/internal/domain/member"
)

// MemberModel is the persistence model for the Member domain entity.
type MemberModel struct {
	BaseModel
	Code             string        `gorm:"type:varchar(20);not null;uniqueIndex"`
	FirstName        string        `gorm:"type:varchar(100);not null"`
	LastName         string        `gorm:"type:varchar(100);not null"`
	NationalID       string        `gorm:"type:varchar(10);index"`
	Email            string        `gorm:"type:varchar(200);index"`
	Phone            string        `gorm:"type:varchar(50)"`
	BirthDate        *time.Time    `gorm:"type:date"`
	Gender           member.Gender `gorm:"type:varchar(10)"`
	Address          string        `gorm:"type:text"`
	PhotoURL         string        `gorm:"type:text"`
	EmergencyContact string        `gorm:"type:varchar(200)"`
	EmergencyPhone   string        `gorm:"type:varchar(50)"`
	Notes            string        `gorm:"type:text"`
	Active           bool          `gorm:"not null;default:true;index"`
	RegisteredAt     time.Time     `gorm:"not null"`
}

// TableName returns the table name for GORM
func (MemberModel) TableName() string {
	return "members"
}

// ToDomain converts the persistence model to a domain Member entity.
func (m *MemberModel) ToDomain() *member.Member {
	return &member.Member{
		BaseEntity:       m.BaseModel.ToDomain(),
		Code:             m.Code,
		FirstName:        m.FirstName,
		LastName:         m.LastName,
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

// FromDomain populates the persistence model from a domain Member entity.
func (m *MemberModel) FromDomain(e *member.Member) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.Code = e.Code
	m.FirstName = e.FirstName
	m.LastName = e.LastName
	m.NationalID = e.NationalID
	m.Email = e.Email
	m.Phone = e.Phone
	m.BirthDate = e.BirthDate
	m.Gender = e.Gender
	m.Address = e.Address
	m.PhotoURL = e.PhotoURL
	m.EmergencyContact = e.EmergencyContact
	m.EmergencyPhone = e.EmergencyPhone
	m.Notes = e.Notes
	m.Active = e.Active
	m.RegisteredAt = e.RegisteredAt
}
