package persistence

import (
	"context"
	"time"

	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GormSaleStatsRepository implements SaleStatsRepository using GORM.
// All aggregation runs in SQL; Go never loads result rows to sum them.
type GormSaleStatsRepository struct {
	db *gorm.DB
}

// NewGormSaleStatsRepository creates a new GormSaleStatsRepository
func NewGormSaleStatsRepository(db *gorm.DB) *GormSaleStatsRepository {
	return &GormSaleStatsRepository{db: db}
}

// GetStats returns count, revenue and average over the range
func (r *GormSaleStatsRepository) GetStats(ctx context.Context, filter sales.StatsFilter) (*sales.SaleStats, error) {
	type statsResult struct {
		TotalSales   int64
		TotalRevenue decimal.Decimal
	}

	var result statsResult
	query := r.scopedQuery(ctx, filter).
		Select("COUNT(*) as total_sales, COALESCE(SUM(total_amount), 0) as total_revenue")

	if err := query.Scan(&result).Error; err != nil {
		return nil, err
	}

	stats := &sales.SaleStats{
		TotalSales:   result.TotalSales,
		TotalRevenue: result.TotalRevenue,
	}
	if result.TotalSales > 0 {
		stats.AverageSale = result.TotalRevenue.Div(decimal.NewFromInt(result.TotalSales))
	}
	return stats, nil
}

// GetDailySales returns per-day rows over the trailing window, most recent
// first. Days without any sales are simply absent from the result.
// A window of N days means today plus the previous N-1 full calendar days,
// so the cutoff sits at midnight rather than N*24h ago.
func (r *GormSaleStatsRepository) GetDailySales(ctx context.Context, days int) ([]sales.DailySales, error) {
	now := time.Now()
	since := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location()).
		AddDate(0, 0, -(days - 1))

	type dailyResult struct {
		Date       time.Time
		SalesCount int64
		Revenue    decimal.Decimal
	}

	var results []dailyResult
	err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Select("DATE(created_at) as date, COUNT(*) as sales_count, COALESCE(SUM(total_amount), 0) as revenue").
		Where("is_active = ?", true).
		Where("payment_status <> ?", sales.PaymentStatusCancelled).
		Where("created_at >= ?", since).
		Group("DATE(created_at)").
		Order("date DESC").
		Scan(&results).Error
	if err != nil {
		return nil, err
	}

	daily := make([]sales.DailySales, len(results))
	for i, row := range results {
		daily[i] = sales.DailySales{
			Date:       row.Date,
			SalesCount: row.SalesCount,
			Revenue:    row.Revenue,
		}
	}
	return daily, nil
}

// GetSalesBreakdown returns stats plus total units sold
func (r *GormSaleStatsRepository) GetSalesBreakdown(ctx context.Context, filter sales.StatsFilter) (*sales.SalesBreakdown, error) {
	stats, err := r.GetStats(ctx, filter)
	if err != nil {
		return nil, err
	}

	type itemsResult struct {
		TotalItemsSold int64
	}

	var items itemsResult
	query := r.db.WithContext(ctx).
		Table("sale_items si").
		Select("COALESCE(SUM(si.quantity), 0) as total_items_sold").
		Joins("JOIN sales s ON s.id = si.sale_id").
		Where("s.is_active = ?", true).
		Where("s.payment_status <> ?", sales.PaymentStatusCancelled)

	if !filter.Start.IsZero() {
		query = query.Where("s.created_at >= ?", filter.Start)
	}
	if !filter.End.IsZero() {
		query = query.Where("s.created_at <= ?", filter.End)
	}
	if filter.StoreID != nil {
		query = query.Where("s.store_id = ?", *filter.StoreID)
	}

	if err := query.Scan(&items).Error; err != nil {
		return nil, err
	}

	return &sales.SalesBreakdown{
		SaleStats:      *stats,
		TotalItemsSold: items.TotalItemsSold,
	}, nil
}

// scopedQuery applies the exclusions every statistic shares: soft-deleted
// and cancelled sales never count, and the optional range and store bounds.
func (r *GormSaleStatsRepository) scopedQuery(ctx context.Context, filter sales.StatsFilter) *gorm.DB {
	query := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("is_active = ?", true).
		Where("payment_status <> ?", sales.PaymentStatusCancelled)

	if !filter.Start.IsZero() {
		query = query.Where("created_at >= ?", filter.Start)
	}
	if !filter.End.IsZero() {
		query = query.Where("created_at <= ?", filter.End)
	}
	if filter.StoreID != nil {
		query = query.Where("store_id = ?", *filter.StoreID)
	}

	return query
}

// Ensure GormSaleStatsRepository implements SaleStatsRepository
var _ sales.SaleStatsRepository = (*GormSaleStatsRepository)(nil)
