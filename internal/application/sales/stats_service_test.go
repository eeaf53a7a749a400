package sales

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestStatsServiceGetStats(t *testing.T) {
	ctx := context.Background()

	t.Run("widens a date-only end to cover its whole day", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewSaleStatsService(repo)

		start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		// A sale rung up at 14:00 on the 31st must fall inside the range
		wantEnd := time.Date(2026, 8, 31, 23, 59, 59, 999999999, time.UTC)

		repo.On("GetStats", ctx, sales.StatsFilter{Start: start, End: wantEnd}).Return(&sales.SaleStats{
			TotalSales:   12,
			TotalRevenue: decimal.NewFromInt(4800),
			AverageSale:  decimal.NewFromInt(400),
		}, nil)

		resp, err := service.GetStats(ctx, &start, &end)
		require.NoError(t, err)
		assert.Equal(t, int64(12), resp.TotalSales)
		assert.True(t, resp.TotalRevenue.Equal(decimal.NewFromInt(4800)))
		assert.True(t, resp.AverageSale.Equal(decimal.NewFromInt(400)))
	})

	t.Run("end with a clock component passes through untouched", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewSaleStatsService(repo)

		start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 8, 31, 17, 30, 0, 0, time.UTC)

		repo.On("GetStats", ctx, sales.StatsFilter{Start: start, End: end}).Return(&sales.SaleStats{
			TotalRevenue: decimal.Zero,
			AverageSale:  decimal.Zero,
		}, nil)

		_, err := service.GetStats(ctx, &start, &end)
		require.NoError(t, err)
		repo.AssertCalled(t, "GetStats", ctx, sales.StatsFilter{Start: start, End: end})
	})

	t.Run("empty range yields zeroes, not an error", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewSaleStatsService(repo)

		repo.On("GetStats", ctx, mock.Anything).Return(&sales.SaleStats{
			TotalRevenue: decimal.Zero,
			AverageSale:  decimal.Zero,
		}, nil)

		resp, err := service.GetStats(ctx, nil, nil)
		require.NoError(t, err)
		assert.Equal(t, int64(0), resp.TotalSales)
		assert.True(t, resp.TotalRevenue.IsZero())
		assert.True(t, resp.AverageSale.IsZero())
	})

	t.Run("rejects inverted range", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewSaleStatsService(repo)

		start := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)

		_, err := service.GetStats(ctx, &start, &end)
		require.Error(t, err)
		repo.AssertNotCalled(t, "GetStats", mock.Anything, mock.Anything)
	})
}

func TestStatsServiceGetDailySales(t *testing.T) {
	ctx := context.Background()

	t.Run("formats dates and keeps sparse rows", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewSaleStatsService(repo)

		repo.On("GetDailySales", ctx, 7).Return([]sales.DailySales{
			{Date: time.Date(2026, 8, 28, 0, 0, 0, 0, time.UTC), SalesCount: 3, Revenue: decimal.NewFromInt(900)},
			{Date: time.Date(2026, 8, 25, 0, 0, 0, 0, time.UTC), SalesCount: 1, Revenue: decimal.NewFromInt(120)},
		}, nil)

		rows, err := service.GetDailySales(ctx, 7)
		require.NoError(t, err)
		require.Len(t, rows, 2)
		assert.Equal(t, "2026-08-28", rows[0].Date)
		assert.Equal(t, int64(3), rows[0].SalesCount)
		assert.Equal(t, "2026-08-25", rows[1].Date)
	})

	t.Run("no sales is an empty slice", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewSaleStatsService(repo)

		repo.On("GetDailySales", ctx, 30).Return([]sales.DailySales{}, nil)

		rows, err := service.GetDailySales(ctx, 30)
		require.NoError(t, err)
		assert.Empty(t, rows)
	})

	t.Run("rejects non-positive window", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewSaleStatsService(repo)

		_, err := service.GetDailySales(ctx, 0)
		require.Error(t, err)
	})

	t.Run("caps oversized window", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewSaleStatsService(repo)

		repo.On("GetDailySales", ctx, maxDailyWindow).Return([]sales.DailySales{}, nil)

		_, err := service.GetDailySales(ctx, 10000)
		require.NoError(t, err)
		repo.AssertCalled(t, "GetDailySales", ctx, maxDailyWindow)
	})
}

func TestStatsServiceGetSalesBreakdown(t *testing.T) {
	ctx := context.Background()

	t.Run("includes units sold and store filter", func(t *testing.T) {
		repo := new(MockStatsRepository)
		service := NewSaleStatsService(repo)

		storeID := uuid.New()
		start := time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)
		end := time.Date(2026, 8, 31, 0, 0, 0, 0, time.UTC)
		wantEnd := time.Date(2026, 8, 31, 23, 59, 59, 999999999, time.UTC)

		repo.On("GetSalesBreakdown", ctx, sales.StatsFilter{Start: start, End: wantEnd, StoreID: &storeID}).
			Return(&sales.SalesBreakdown{
				SaleStats: sales.SaleStats{
					TotalSales:   4,
					TotalRevenue: decimal.NewFromInt(1600),
					AverageSale:  decimal.NewFromInt(400),
				},
				TotalItemsSold: 52,
			}, nil)

		resp, err := service.GetSalesBreakdown(ctx, start, end, &storeID)
		require.NoError(t, err)
		assert.Equal(t, int64(52), resp.TotalItemsSold)
		assert.Equal(t, int64(4), resp.TotalSales)
	})
}
