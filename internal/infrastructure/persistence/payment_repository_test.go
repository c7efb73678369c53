package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/gymtrack/backend/internal/domain/payment"
	"github.com/gymtrack/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newMockPaymentRepository(t *testing.T) (*GormPaymentRepository, sqlmock.Sqlmock, *sql.DB) {
	gormDB, mock, mockDB := newMockDB(t)
	return NewGormPaymentRepository(gormDB), mock, mockDB
}

func paymentRows() *sqlmock.Rows {
	return sqlmock.NewRows([]string{"id", "member_id", "amount", "method", "concept", "period", "paid_at"})
}

func TestGormPaymentRepository_FindByMemberAndConcept(t *testing.T) {
	t.Run("matches the concept exactly, newest first", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		rows := paymentRows().
			AddRow(3, 7, decimal.NewFromInt(30), "cash", "Membership Monthly - 1 month(s)", "2026-08", time.Now())

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE member_id = \$1 AND concept = \$2 ORDER BY paid_at DESC`).
			WithArgs(uint(7), "Membership Monthly - 1 month(s)").
			WillReturnRows(rows)

		payments, err := repo.FindByMemberAndConcept(context.Background(), 7, "Membership Monthly - 1 month(s)")

		assert.NoError(t, err)
		require.Len(t, payments, 1)
		assert.Equal(t, uint(3), payments[0].ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_FindEarliestByMembership(t *testing.T) {
	t.Run("picks the oldest payment", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		rows := paymentRows().
			AddRow(3, 7, decimal.NewFromInt(30), "cash", "Membership Monthly - 1 month(s)", "2026-08", time.Now())

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE membership_id = \$1 ORDER BY paid_at ASC.* LIMIT .*`).
			WithArgs(uint(12), 1).
			WillReturnRows(rows)

		p, err := repo.FindEarliestByMembership(context.Background(), 12)

		assert.NoError(t, err)
		require.NotNil(t, p)
		assert.Equal(t, uint(3), p.ID)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("returns not found when the membership has no payments", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT \* FROM "payments" WHERE membership_id = \$1 ORDER BY paid_at ASC.* LIMIT .*`).
			WithArgs(uint(12), 1).
			WillReturnError(gorm.ErrRecordNotFound)

		p, err := repo.FindEarliestByMembership(context.Background(), 12)

		assert.Nil(t, p)
		assert.Equal(t, shared.ErrNotFound, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_SummaryForMonth(t *testing.T) {
	t.Run("aggregates count, total and average over the month window", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		month := time.Date(2026, time.August, 15, 12, 0, 0, 0, time.UTC)
		from := time.Date(2026, time.August, 1, 0, 0, 0, 0, time.UTC)
		to := time.Date(2026, time.September, 1, 0, 0, 0, 0, time.UTC)

		rows := sqlmock.NewRows([]string{"count", "total", "average"}).
			AddRow(4, decimal.NewFromInt(180), decimal.NewFromInt(45))

		mock.ExpectQuery(`SELECT COUNT\(\*\) AS count, COALESCE\(SUM\(amount\), 0\) AS total, COALESCE\(AVG\(amount\), 0\) AS average FROM "payments" WHERE paid_at >= \$1 AND paid_at < \$2`).
			WithArgs(from, to).
			WillReturnRows(rows)

		summary, err := repo.SummaryForMonth(context.Background(), month)

		assert.NoError(t, err)
		assert.Equal(t, int64(4), summary.Count)
		assert.True(t, summary.Total.Equal(decimal.NewFromInt(180)))
		assert.True(t, summary.Average.Equal(decimal.NewFromInt(45)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_TotalsByMethod(t *testing.T) {
	t.Run("groups month payments by method", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"method", "count", "total"}).
			AddRow("cash", 3, decimal.NewFromInt(120)).
			AddRow("transfer", 1, decimal.NewFromInt(60))

		mock.ExpectQuery(`SELECT method, COUNT\(\*\) AS count, COALESCE\(SUM\(amount\), 0\) AS total FROM "payments" WHERE paid_at >= \$1 AND paid_at < \$2 GROUP BY "method" ORDER BY total DESC`).
			WillReturnRows(rows)

		totals, err := repo.TotalsByMethod(context.Background(), time.Now())

		assert.NoError(t, err)
		require.Len(t, totals, 2)
		assert.Equal(t, payment.MethodCash, totals[0].Method)
		assert.True(t, totals[0].Total.Equal(decimal.NewFromInt(120)))
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormPaymentRepository_IncomeByPlan(t *testing.T) {
	t.Run("joins memberships and plans", func(t *testing.T) {
		repo, mock, mockDB := newMockPaymentRepository(t)
		defer mockDB.Close()

		rows := sqlmock.NewRows([]string{"plan", "count", "total"}).
			AddRow("Monthly", 10, decimal.NewFromInt(300)).
			AddRow("Quarterly", 2, decimal.NewFromInt(160))

		mock.ExpectQuery(`SELECT plans.name AS plan, COUNT\(\*\) AS count, COALESCE\(SUM\(payments.amount\), 0\) AS total FROM "payments" JOIN memberships ON memberships.id = payments.membership_id JOIN plans ON plans.id = memberships.plan_id GROUP BY "plans"."name" ORDER BY total DESC`).
			WillReturnRows(rows)

		incomes, err := repo.IncomeByPlan(context.Background())

		assert.NoError(t, err)
		require.Len(t, incomes, 2)
		assert.Equal(t, "Monthly", incomes[0].Plan)
		assert.Equal(t, int64(10), incomes[0].Count)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
