package attendance

import (
	"time"

	"github.com/gymtrack/backend/internal/domain/shared"
)

// Attendance is a check-in/check-out pair for a member's gym visit.
// Duration stays nil until check-out and is persisted in whole minutes.
type Attendance struct {
	shared.BaseEntity
	MemberID        uint
	CheckedInAt     time.Time
	CheckedOutAt    *time.Time
	DurationMinutes *int
}

// NewCheckIn records a member entering the gym now.
func NewCheckIn(memberID uint) *Attendance {
	return &Attendance{
		BaseEntity:  shared.NewBaseEntity(),
		MemberID:    memberID,
		CheckedInAt: time.Now(),
	}
}

// IsOpen reports whether the visit has no check-out yet.
func (a *Attendance) IsOpen() bool {
	return a.CheckedOutAt == nil
}

// CheckOut closes the visit at the given time and derives the duration,
// floored to whole minutes.
func (a *Attendance) CheckOut(at time.Time) error {
	if !a.IsOpen() {
		return shared.ErrInvalidState
	}
	minutes := MinutesBetween(a.CheckedInAt, at)
	a.CheckedOutAt = &at
	a.DurationMinutes = &minutes
	a.UpdatedAt = at
	return nil
}

// MinutesElapsed returns the whole minutes since check-in for an open
// visit.
func (a *Attendance) MinutesElapsed(now time.Time) int {
	return MinutesBetween(a.CheckedInAt, now)
}

// MinutesBetween returns the floor of the elapsed whole minutes between
// two instants.
func MinutesBetween(from, to time.Time) int {
	return int(to.Sub(from) / time.Minute)
}
