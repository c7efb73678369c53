package models

import (
	"time"

	"github.com/gymtrack/backend/internal/domain/attendance"
)

// AttendanceModel is the persistence model for the Attendance domain entity.
type AttendanceModel struct {
	BaseModel
	MemberID        uint       `gorm:"not null;index"`
	CheckedInAt     time.Time  `gorm:"not null;index"`
	CheckedOutAt    *time.Time
	DurationMinutes *int
}

// TableName returns the table name for GORM
func (AttendanceModel) TableName() string {
	return "attendances"
}

// ToDomain converts the persistence model to a domain Attendance entity.
func (m *AttendanceModel) ToDomain() *attendance.Attendance {
	return &attendance.Attendance{
		BaseEntity:      m.BaseModel.ToDomain(),
		MemberID:        m.MemberID,
		CheckedInAt:     m.CheckedInAt,
		CheckedOutAt:    m.CheckedOutAt,
		DurationMinutes: m.DurationMinutes,
	}
}

// FromDomain populates the persistence model from a domain Attendance entity.
func (m *AttendanceModel) FromDomain(e *attendance.Attendance) {
	m.FromDomainBaseEntity(e.BaseEntity)
	m.MemberID = e.MemberID
	m.CheckedInAt = e.CheckedInAt
	m.CheckedOutAt = e.CheckedOutAt
	m.DurationMinutes = e.DurationMinutes
}
