package attendance

import (
	"context"
)

// WeekdayStat aggregates visits for one day of the week over a trailing
// window.
type WeekdayStat struct {
	Weekday        string
	Visits         int64
	AverageMinutes float64
}

// MemberVisits aggregates a member's visits over a trailing window.
type MemberVisits struct {
	MemberID     uint
	Name         string
	Visits       int64
	TotalMinutes int64
}

// Repository defines the interface for attendance persistence
type Repository interface {
	// FindByID finds an attendance record by its ID
	FindByID(ctx context.Context, id uint) (*Attendance, error)

	// FindOpenByMember finds the member's most recent visit without a
	// check-out, or ErrNotFound
	FindOpenByMember(ctx context.Context, memberID uint) (*Attendance, error)

	// FindToday finds today's visits, newest first
	FindToday(ctx context.Context) ([]Attendance, error)

	// FindOpenToday finds today's visits that have not checked out
	FindOpenToday(ctx context.Context) ([]Attendance, error)

	// CountToday counts today's visits
	CountToday(ctx context.Context) (int64, error)

	// StatsByWeekday aggregates visits per day of week over the trailing
	// 30 days
	StatsByWeekday(ctx context.Context) ([]WeekdayStat, error)

	// TopMembers finds the most frequent visitors over the trailing 30
	// days
	TopMembers(ctx context.Context, limit int) ([]MemberVisits, error)

	// Save creates or updates an attendance record
	Save(ctx context.Context, attendance *Attendance) error
}
