package persistence

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func newMockStatsRepository(t *testing.T) (*GormSaleStatsRepository, sqlmock.Sqlmock, *sql.DB) {
	mockDB, mock, err := sqlmock.New()
	require.NoError(t, err)

	dialector := postgres.New(postgres.Config{
		Conn:       mockDB,
		DriverName: "postgres",
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	return NewGormSaleStatsRepository(gormDB), mock, mockDB
}

func TestGormSaleStatsRepository_GetStats(t *testing.T) {
	t.Run("computes average from count and revenue", func(t *testing.T) {
		repo, mock, mockDB := newMockStatsRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) as total_sales, COALESCE\(SUM\(total_amount\), 0\) as total_revenue FROM "sales" WHERE is_active = \$1 AND payment_status <> \$2`).
			WithArgs(true, "cancelled").
			WillReturnRows(sqlmock.NewRows([]string{"total_sales", "total_revenue"}).AddRow(4, "1000"))

		stats, err := repo.GetStats(context.Background(), sales.StatsFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(4), stats.TotalSales)
		assert.Equal(t, "1000", stats.TotalRevenue.String())
		assert.Equal(t, "250", stats.AverageSale.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("empty range yields zeroes without dividing", func(t *testing.T) {
		repo, mock, mockDB := newMockStatsRepository(t)
		defer mockDB.Close()

		start := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 1, 2, 0, 0, 0, 0, time.UTC)

		mock.ExpectQuery(`SELECT COUNT\(\*\) as total_sales, COALESCE\(SUM\(total_amount\), 0\) as total_revenue FROM "sales" WHERE .*created_at >= \$3 AND created_at <= \$4`).
			WithArgs(true, "cancelled", start, end).
			WillReturnRows(sqlmock.NewRows([]string{"total_sales", "total_revenue"}).AddRow(0, "0"))

		stats, err := repo.GetStats(context.Background(), sales.StatsFilter{Start: start, End: end})

		require.NoError(t, err)
		assert.Zero(t, stats.TotalSales)
		assert.True(t, stats.TotalRevenue.IsZero())
		assert.True(t, stats.AverageSale.IsZero())
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleStatsRepository_GetDailySales(t *testing.T) {
	t.Run("returns only days with sales, newest first", func(t *testing.T) {
		repo, mock, mockDB := newMockStatsRepository(t)
		defer mockDB.Close()

		today := time.Now().Truncate(24 * time.Hour)
		threeDaysAgo := today.AddDate(0, 0, -3)

		rows := sqlmock.NewRows([]string{"date", "sales_count", "revenue"}).
			AddRow(today, 2, "340").
			AddRow(threeDaysAgo, 1, "120")

		mock.ExpectQuery(`SELECT DATE\(created_at\) as date, COUNT\(\*\) as sales_count, COALESCE\(SUM\(total_amount\), 0\) as revenue FROM "sales" WHERE .*GROUP BY DATE\(created_at\) ORDER BY date DESC`).
			WillReturnRows(rows)

		daily, err := repo.GetDailySales(context.Background(), 7)

		require.NoError(t, err)
		require.Len(t, daily, 2)
		assert.Equal(t, int64(2), daily[0].SalesCount)
		assert.Equal(t, "340", daily[0].Revenue.String())
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("cutoff is midnight of the oldest day in the window", func(t *testing.T) {
		repo, mock, mockDB := newMockStatsRepository(t)
		defer mockDB.Close()

		// A 7-day window means today plus the previous six full calendar
		// days, not 7*24h back from the current instant.
		now := time.Now()
		want := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
			AddDate(0, 0, -6)

		mock.ExpectQuery(`SELECT DATE\(created_at\) as date, COUNT\(\*\) as sales_count, COALESCE\(SUM\(total_amount\), 0\) as revenue FROM "sales" WHERE .*created_at >= \$3`).
			WithArgs(true, "cancelled", want).
			WillReturnRows(sqlmock.NewRows([]string{"date", "sales_count", "revenue"}))

		_, err := repo.GetDailySales(context.Background(), 7)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestGormSaleStatsRepository_GetSalesBreakdown(t *testing.T) {
	t.Run("adds units sold to the summary", func(t *testing.T) {
		repo, mock, mockDB := newMockStatsRepository(t)
		defer mockDB.Close()

		mock.ExpectQuery(`SELECT COUNT\(\*\) as total_sales, COALESCE\(SUM\(total_amount\), 0\) as total_revenue FROM "sales"`).
			WillReturnRows(sqlmock.NewRows([]string{"total_sales", "total_revenue"}).AddRow(2, "500"))
		mock.ExpectQuery(`SELECT COALESCE\(SUM\(si\.quantity\), 0\) as total_items_sold FROM sale_items si JOIN sales s ON s\.id = si\.sale_id`).
			WillReturnRows(sqlmock.NewRows([]string{"total_items_sold"}).AddRow(9))

		breakdown, err := repo.GetSalesBreakdown(context.Background(), sales.StatsFilter{})

		require.NoError(t, err)
		assert.Equal(t, int64(2), breakdown.TotalSales)
		assert.Equal(t, int64(9), breakdown.TotalItemsSold)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
