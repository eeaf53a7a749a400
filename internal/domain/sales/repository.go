package sales

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// SaleRepository defines the interface for sale persistence
type SaleRepository interface {
	// FindByID finds a sale with its items by ID.
	// When includeInactive is false, a soft-deleted sale is reported as not found.
	FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*Sale, error)

	// FindBySaleNumber finds a sale by its human-readable number
	FindBySaleNumber(ctx context.Context, saleNumber string) (*Sale, error)

	// FindAll finds all sales matching the filter, items preloaded
	FindAll(ctx context.Context, filter shared.Filter) ([]Sale, error)

	// Save creates or updates a sale together with its items
	Save(ctx context.Context, sale *Sale) error

	// SaveWithLock saves the sale header under optimistic version locking
	SaveWithLock(ctx context.Context, sale *Sale) error

	// Count counts sales matching the filter.
	// It must share its predicate set with FindAll so a page and its total
	// can never disagree.
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySaleNumber checks if a sale number is already taken
	ExistsBySaleNumber(ctx context.Context, saleNumber string) (bool, error)

	// GenerateSaleNumber generates the next sale number (POS-YYYY-NNNNN)
	GenerateSaleNumber(ctx context.Context) (string, error)
}

// SaleStats is the aggregate revenue summary over a time range
type SaleStats struct {
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	AverageSale  decimal.Decimal `json:"average_sale"`
}

// DailySales is one day's worth of sales, present only for days with sales
type DailySales struct {
	Date       time.Time       `json:"date"`
	SalesCount int64           `json:"sales_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// SalesBreakdown extends SaleStats with the number of units sold
type SalesBreakdown struct {
	SaleStats
	TotalItemsSold int64 `json:"total_items_sold"`
}

// StatsFilter bounds a statistics query.
// Zero Start/End mean an unbounded side of the range.
type StatsFilter struct {
	Start   time.Time
	End     time.Time
	StoreID *uuid.UUID
}

// SaleStatsRepository defines the read model for revenue statistics.
// All aggregation runs in SQL; cancelled and soft-deleted sales are
// always excluded.
type SaleStatsRepository interface {
	// GetStats returns count, revenue and average over the range.
	// An empty range yields zeroes, never an error.
	GetStats(ctx context.Context, filter StatsFilter) (*SaleStats, error)

	// GetDailySales returns per-day rows over the trailing window,
	// most recent first. Days without sales are simply absent.
	GetDailySales(ctx context.Context, days int) ([]DailySales, error)

	// GetSalesBreakdown returns stats plus total units sold, optionally
	// restricted to one store.
	GetSalesBreakdown(ctx context.Context, filter StatsFilter) (*SalesBreakdown, error)
}
