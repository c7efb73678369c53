package attendance

import (
	"context"
	"fmt"
	"time"

	"github.com/gymtrack/backend/internal/domain/attendance"
	"github.com/gymtrack/backend/internal/domain/member"
	"github.com/gymtrack/backend/internal/domain/shared"
)

// VisitResponse is the API shape of an attendance record.
type VisitResponse struct {
	ID              uint       `json:"id"`
	MemberID        uint       `json:"member_id"`
	MemberName      string     `json:"member_name,omitempty"`
	CheckedInAt     time.Time  `json:"checked_in_at"`
	CheckedOutAt    *time.Time `json:"checked_out_at,omitempty"`
	DurationMinutes *int       `json:"duration_minutes,omitempty"`
}

// CheckOutResult reports a check-out attempt. A missing open visit is a
// soft failure rather than an error so the front desk can show the
// message as-is.
type CheckOutResult struct {
	Success bool           `json:"success"`
	Message string         `json:"message"`
	Visit   *VisitResponse `json:"visit,omitempty"`
}

// InsideResponse is a currently-in-the-gym row with elapsed minutes.
type InsideResponse struct {
	VisitResponse
	MinutesSoFar int `json:"minutes_so_far"`
}

// WeekdayStatResponse is one row of the per-weekday visit breakdown.
type WeekdayStatResponse struct {
	Weekday        string  `json:"weekday"`
	Visits         int64   `json:"visits"`
	AverageMinutes float64 `json:"average_minutes"`
}

// TopMemberResponse is one row of the most-frequent-visitors report.
type TopMemberResponse struct {
	MemberID     uint   `json:"member_id"`
	Name         string `json:"name"`
	Visits       int64  `json:"visits"`
	TotalMinutes int64  `json:"total_minutes"`
}

// AttendanceService tracks gym visits: check-in/check-out pairs and the
// reports derived from them.
type AttendanceService struct {
	attendances attendance.Repository
	members     member.Repository
}

// NewAttendanceService creates a new AttendanceService.
func NewAttendanceService(attendances attendance.Repository, members member.Repository) *AttendanceService {
	return &AttendanceService{attendances: attendances, members: members}
}

// CheckIn opens a visit for the member. Every call inserts a new row,
// even when an earlier visit is still open; check-out always closes the
// most recent one.
func (s *AttendanceService) CheckIn(ctx context.Context, memberID uint) (*VisitResponse, error) {
	m, err := s.members.FindByID(ctx, memberID)
	if err != nil {
		return nil, err
	}

	visit := attendance.NewCheckIn(memberID)
	if err := s.attendances.Save(ctx, visit); err != nil {
		return nil, err
	}

	r := toVisitResponse(visit)
	r.MemberName = m.FullName()
	return r, nil
}

// CheckOut closes the member's open visit and derives the duration in
// whole minutes. A member with no open visit gets a soft failure.
func (s *AttendanceService) CheckOut(ctx context.Context, memberID uint) (*CheckOutResult, error) {
	if _, err := s.members.FindByID(ctx, memberID); err != nil {
		return nil, err
	}

	open, err := s.attendances.FindOpenByMember(ctx, memberID)
	if err != nil {
		if isNotFound(err) {
			return &CheckOutResult{
				Success: false,
				Message: "No open check-in found for this member",
			}, nil
		}
		return nil, err
	}

	if err := open.CheckOut(time.Now()); err != nil {
		return nil, err
	}
	if err := s.attendances.Save(ctx, open); err != nil {
		return nil, err
	}

	return &CheckOutResult{
		Success: true,
		Message: fmt.Sprintf("Checked out after %d minute(s)", *open.DurationMinutes),
		Visit:   toVisitResponse(open),
	}, nil
}

// Today returns today's visits with member names expanded.
func (s *AttendanceService) Today(ctx context.Context) ([]VisitResponse, error) {
	visits, err := s.attendances.FindToday(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]VisitResponse, 0, len(visits))
	for i := range visits {
		r := toVisitResponse(&visits[i])
		if m, err := s.members.FindByID(ctx, visits[i].MemberID); err == nil {
			r.MemberName = m.FullName()
		}
		out = append(out, *r)
	}
	return out, nil
}

// CurrentlyIn returns the visitors inside right now with minutes
// elapsed since check-in.
func (s *AttendanceService) CurrentlyIn(ctx context.Context) ([]InsideResponse, error) {
	visits, err := s.attendances.FindOpenToday(ctx)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	out := make([]InsideResponse, 0, len(visits))
	for i := range visits {
		r := toVisitResponse(&visits[i])
		if m, err := s.members.FindByID(ctx, visits[i].MemberID); err == nil {
			r.MemberName = m.FullName()
		}
		out = append(out, InsideResponse{
			VisitResponse: *r,
			MinutesSoFar:  visits[i].MinutesElapsed(now),
		})
	}
	return out, nil
}

// CountToday counts today's visits for the dashboard.
func (s *AttendanceService) CountToday(ctx context.Context) (int64, error) {
	return s.attendances.CountToday(ctx)
}

// StatsByWeekday breaks the trailing 30 days of visits down per day of
// the week.
func (s *AttendanceService) StatsByWeekday(ctx context.Context) ([]WeekdayStatResponse, error) {
	stats, err := s.attendances.StatsByWeekday(ctx)
	if err != nil {
		return nil, err
	}

	out := make([]WeekdayStatResponse, 0, len(stats))
	for _, st := range stats {
		out = append(out, WeekdayStatResponse{
			Weekday:        st.Weekday,
			Visits:         st.Visits,
			AverageMinutes: st.AverageMinutes,
		})
	}
	return out, nil
}

// TopMembers returns the most frequent visitors over the trailing 30
// days.
func (s *AttendanceService) TopMembers(ctx context.Context, limit int) ([]TopMemberResponse, error) {
	rows, err := s.attendances.TopMembers(ctx, limit)
	if err != nil {
		return nil, err
	}

	out := make([]TopMemberResponse, 0, len(rows))
	for _, r := range rows {
		out = append(out, TopMemberResponse{
			MemberID:     r.MemberID,
			Name:         r.Name,
			Visits:       r.Visits,
			TotalMinutes: r.TotalMinutes,
		})
	}
	return out, nil
}

func toVisitResponse(a *attendance.Attendance) *VisitResponse {
	return &VisitResponse{
		ID:              a.ID,
		MemberID:        a.MemberID,
		CheckedInAt:     a.CheckedInAt,
		CheckedOutAt:    a.CheckedOutAt,
		DurationMinutes: a.DurationMinutes,
	}
}

func isNotFound(err error) bool {
	de, ok := err.(*shared.DomainError)
	return ok && de.Code == "NOT_FOUND"
}
