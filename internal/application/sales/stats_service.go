package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
)

// maxDailyWindow caps the trailing daily-sales window
const maxDailyWindow = 365

// SaleStatsService is the statistics aggregator: revenue summaries and
// daily trends over active, non-cancelled sales. All heavy lifting runs
// in SQL through the stats repository.
type SaleStatsService struct {
	statsRepo sales.SaleStatsRepository
}

// NewSaleStatsService creates a new SaleStatsService
func NewSaleStatsService(statsRepo sales.SaleStatsRepository) *SaleStatsService {
	return &SaleStatsService{statsRepo: statsRepo}
}

// GetStats returns total count, revenue and average sale value over the
// optional time range. A range with no sales yields zeroes.
func (s *SaleStatsService) GetStats(ctx context.Context, start, end *time.Time) (*SaleStatsResponse, error) {
	if start != nil && end != nil && end.Before(*start) {
		return nil, shared.NewDomainError("INVALID_INPUT", "End date cannot be before start date")
	}

	filter := sales.StatsFilter{}
	if start != nil {
		filter.Start = *start
	}
	if end != nil {
		filter.End = endOfRangeDay(*end)
	}

	stats, err := s.statsRepo.GetStats(ctx, filter)
	if err != nil {
		return nil, err
	}

	response := ToSaleStatsResponse(stats)
	return &response, nil
}

// GetDailySales returns per-day sales over the trailing window, most
// recent first. Days without sales are absent; no sales at all is an
// empty slice, not an error.
func (s *SaleStatsService) GetDailySales(ctx context.Context, days int) ([]DailySalesResponse, error) {
	if days <= 0 {
		return nil, shared.NewDomainError("INVALID_INPUT", "Days must be positive")
	}
	if days > maxDailyWindow {
		days = maxDailyWindow
	}

	rows, err := s.statsRepo.GetDailySales(ctx, days)
	if err != nil {
		return nil, err
	}

	return ToDailySalesResponses(rows), nil
}

// GetSalesBreakdown returns the range summary plus total units sold,
// optionally restricted to a single store.
func (s *SaleStatsService) GetSalesBreakdown(ctx context.Context, start, end time.Time, storeID *uuid.UUID) (*SalesBreakdownResponse, error) {
	if !start.IsZero() && !end.IsZero() && end.Before(start) {
		return nil, shared.NewDomainError("INVALID_INPUT", "End date cannot be before start date")
	}

	if !end.IsZero() {
		end = endOfRangeDay(end)
	}

	breakdown, err := s.statsRepo.GetSalesBreakdown(ctx, sales.StatsFilter{
		Start:   start,
		End:     end,
		StoreID: storeID,
	})
	if err != nil {
		return nil, err
	}

	return &SalesBreakdownResponse{
		SaleStatsResponse: SaleStatsResponse{
			TotalSales:   breakdown.TotalSales,
			TotalRevenue: breakdown.TotalRevenue,
			AverageSale:  breakdown.AverageSale,
		},
		TotalItemsSold: breakdown.TotalItemsSold,
	}, nil
}
