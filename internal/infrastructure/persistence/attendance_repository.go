package persistence

import (
	"context"
	"errors"
	"time"

	"github.com/gymtrack/backend/internal/domain/attendance"
	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/gymtrack/backend/internal/infrastructure/persistence/models"
	"gorm.io/gorm"
)

// statsWindowDays is the trailing window for attendance aggregates.
const statsWindowDays = 30

// GormAttendanceRepository implements attendance.Repository using GORM
type GormAttendanceRepository struct {
	db *gorm.DB
}

// NewGormAttendanceRepository creates a new GormAttendanceRepository
func NewGormAttendanceRepository(db *gorm.DB) *GormAttendanceRepository {
	return &GormAttendanceRepository{db: db}
}

// FindByID finds an attendance record by its ID
func (r *GormAttendanceRepository) FindByID(ctx context.Context, id uint) (*attendance.Attendance, error) {
	var model models.AttendanceModel
	if err := r.db.WithContext(ctx).First(&model, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindOpenByMember finds the member's most recent visit without a
// check-out
func (r *GormAttendanceRepository) FindOpenByMember(ctx context.Context, memberID uint) (*attendance.Attendance, error) {
	var model models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("member_id = ? AND checked_out_at IS NULL", memberID).
		Order("checked_in_at DESC").
		First(&model).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return model.ToDomain(), nil
}

// FindToday finds today's visits, newest first
func (r *GormAttendanceRepository) FindToday(ctx context.Context) ([]attendance.Attendance, error) {
	from, to := dayBounds(time.Now())

	var attendanceModels []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("checked_in_at >= ? AND checked_in_at < ?", from, to).
		Order("checked_in_at DESC").
		Find(&attendanceModels).Error; err != nil {
		return nil, err
	}
	return toDomainAttendances(attendanceModels), nil
}

// FindOpenToday finds today's visits that have not checked out
func (r *GormAttendanceRepository) FindOpenToday(ctx context.Context) ([]attendance.Attendance, error) {
	from, to := dayBounds(time.Now())

	var attendanceModels []models.AttendanceModel
	if err := r.db.WithContext(ctx).
		Where("checked_in_at >= ? AND checked_in_at < ? AND checked_out_at IS NULL", from, to).
		Order("checked_in_at DESC").
		Find(&attendanceModels).Error; err != nil {
		return nil, err
	}
	return toDomainAttendances(attendanceModels), nil
}

// CountToday counts today's visits
func (r *GormAttendanceRepository) CountToday(ctx context.Context) (int64, error) {
	from, to := dayBounds(time.Now())

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.AttendanceModel{}).
		Where("checked_in_at >= ? AND checked_in_at < ?", from, to).
		Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// StatsByWeekday aggregates visits per day of week over the trailing 30
// days
func (r *GormAttendanceRepository) StatsByWeekday(ctx context.Context) ([]attendance.WeekdayStat, error) {
	since := time.Now().AddDate(0, 0, -statsWindowDays)

	var rows []struct {
		Weekday        string
		Visits         int64
		AverageMinutes float64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.AttendanceModel{}).
		Select("TRIM(TO_CHAR(checked_in_at, 'Day')) AS weekday, COUNT(*) AS visits, COALESCE(AVG(duration_minutes), 0) AS average_minutes").
		Where("checked_in_at >= ?", since).
		Group("TRIM(TO_CHAR(checked_in_at, 'Day')), EXTRACT(DOW FROM checked_in_at)").
		Order("EXTRACT(DOW FROM checked_in_at)").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	stats := make([]attendance.WeekdayStat, len(rows))
	for i, row := range rows {
		stats[i] = attendance.WeekdayStat{
			Weekday:        row.Weekday,
			Visits:         row.Visits,
			AverageMinutes: row.AverageMinutes,
		}
	}
	return stats, nil
}

// TopMembers finds the most frequent visitors over the trailing 30 days
func (r *GormAttendanceRepository) TopMembers(ctx context.Context, limit int) ([]attendance.MemberVisits, error) {
	since := time.Now().AddDate(0, 0, -statsWindowDays)

	var rows []struct {
		MemberID     uint
		Name         string
		Visits       int64
		TotalMinutes int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.AttendanceModel{}).
		Select("attendances.member_id, members.first_name || ' ' || members.last_name AS name, COUNT(*) AS visits, COALESCE(SUM(attendances.duration_minutes), 0) AS total_minutes").
		Joins("JOIN members ON members.id = attendances.member_id").
		Where("attendances.checked_in_at >= ?", since).
		Group("attendances.member_id, members.first_name, members.last_name").
		Order("visits DESC").
		Limit(limit).
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	visits := make([]attendance.MemberVisits, len(rows))
	for i, row := range rows {
		visits[i] = attendance.MemberVisits{
			MemberID:     row.MemberID,
			Name:         row.Name,
			Visits:       row.Visits,
			TotalMinutes: row.TotalMinutes,
		}
	}
	return visits, nil
}

// Save creates or updates an attendance record
func (r *GormAttendanceRepository) Save(ctx context.Context, a *attendance.Attendance) error {
	var model models.AttendanceModel
	model.FromDomain(a)
	if err := r.db.WithContext(ctx).Save(&model).Error; err != nil {
		return err
	}
	a.ID = model.ID
	return nil
}

func toDomainAttendances(attendanceModels []models.AttendanceModel) []attendance.Attendance {
	attendances := make([]attendance.Attendance, len(attendanceModels))
	for i := range attendanceModels {
		attendances[i] = *attendanceModels[i].ToDomain()
	}
	return attendances
}

// dayBounds returns the [midnight, next-midnight) window containing t.
func dayBounds(t time.Time) (time.Time, time.Time) {
	from := time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, t.Location())
	return from, from.AddDate(0, 0, 1)
}

var _ attendance.Repository = (*GormAttendanceRepository)(nil)
