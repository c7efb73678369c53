package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gymtrack/backend/internal/domain/membership"
	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMockMembershipRepository(t *testing.T) (*GormMembershipRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormMembershipRepository(gormDB), mock, mockDB
}

func membershipRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "member_id", "plan_id", "start_date", "end_date", "months_paid", "amount_paid", "status"})
}

func TestGormMembershipRepository_FindActiveByMember(t *testing.T) {
	t.Run("filters on member and active status", func(t *testing.T) {
		repo, mock, mockDB := newMockMembershipRepository(t)
		defer mockDB.Close()

		rows := membershipRows().
			AddRow(12, 7, 1, time.Now(), time.Now().AddDate(0, 1, 0), 1, decimal.NewFromInt(30), "active")

		mock.ExpectQuery(`SELECT \* FROM "memberships" WHERE member_id = \$1 AND status = \$2 ORDER BY end_date DESC`).
			WithArgs(uint(7), membership.StatusActive).
			WillReturnRows(rows)

		memberships, err := repo.FindActiveByMember(context.Background(), 7)

		assert.NoError(t, err)
		require.Len(t, memberships, 1)
		assert.Equal(t, membership.StatusActive, memberships[0].Status)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMembershipRepository_FindLatestByMember(t *testing.T) {
	t.Run("returns not found when the member has no memberships", func(t *testing.T) {
		repo, mock, mockDB := newMockMembershipRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "memberships" WHERE member_id = \$1 ORDER BY end_date DESC.* LIMIT .*`).
			WithArgs(uint(7), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		m, err := repo.FindLatestByMember(context.Background(), 7)

		assert.Nil(t, m)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMembershipRepository_FindActiveEndingBetween(t *testing.T) {
	t.Run("selects active memberships inside the window, soonest first", func(t *testing.T) {
		repo, mock, mockDB := newMockMembershipRepository(t)
		defer mockDB.Close()

		from := time.Date(2026, time.August, 30, 0, 0, 0, 0, time.UTC)
		to := from.AddDate(0, 0, 7)

		rows := membershipRows().
			AddRow(12, 7, 1, from.AddDate(0, -1, 3), from.AddDate(0, 0, 3), 1, decimal.NewFromInt(30), "active")

		mock.ExpectQuery(`SELECT \* FROM "memberships" WHERE status = \$1 AND end_date BETWEEN \$2 AND \$3 ORDER BY end_date ASC`).
			WithArgs(membership.StatusActive, from, to).
			WillReturnRows(rows)

		memberships, err := repo.FindActiveEndingBetween(context.Background(), from, to)

		assert.NoError(t, err)
		require.Len(t, memberships, 1)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormMembershipRepository_CountByStatus(t *testing.T) {
	t.Run("counts memberships in the given state", func(t *testing.T) {
		repo, mock, mockDB := newMockMembershipRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT count\(\*\) FROM "memberships" WHERE status = \$1`).
			WithArgs(membership.StatusExpired).
			WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(6))

		count, err := repo.CountByStatus(context.Background(), membership.StatusExpired)

		assert.NoError(t, err)
		assert.Equal(t, int64(6), count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
