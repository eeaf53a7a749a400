package persistence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"gorm.io/gorm"
)

// GormSaleRepository implements SaleRepository using GORM
type GormSaleRepository struct {
	db *gorm.DB
}

// NewGormSaleRepository creates a new GormSaleRepository
func NewGormSaleRepository(db *gorm.DB) *GormSaleRepository {
	return &GormSaleRepository{db: db}
}

// FindByID finds a sale with its items by ID
func (r *GormSaleRepository) FindByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*sales.Sale, error) {
	query := r.db.WithContext(ctx).Preload("Items").Where("id = ?", id)
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	var sale sales.Sale
	if err := query.First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindBySaleNumber finds a sale by its human-readable number
func (r *GormSaleRepository) FindBySaleNumber(ctx context.Context, saleNumber string) (*sales.Sale, error) {
	var sale sales.Sale
	if err := r.db.WithContext(ctx).
		Preload("Items").
		Where("sale_number = ?", saleNumber).
		First(&sale).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.ErrNotFound
		}
		return nil, err
	}
	return &sale, nil
}

// FindAll finds all sales matching the filter, items preloaded
func (r *GormSaleRepository) FindAll(ctx context.Context, filter shared.Filter) ([]sales.Sale, error) {
	var result []sales.Sale
	query := r.applyFilter(
		r.db.WithContext(ctx).Model(&sales.Sale{}).Preload("Items"),
		filter,
	)
	if err := query.Find(&result).Error; err != nil {
		return nil, err
	}
	return result, nil
}

// Save creates or updates a sale together with its items
func (r *GormSaleRepository) Save(ctx context.Context, sale *sales.Sale) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Items").Save(sale).Error; err != nil {
			return err
		}

		currentItemIDs := make([]uuid.UUID, len(sale.Items))
		for i, item := range sale.Items {
			currentItemIDs[i] = item.ID
		}

		// Remove line items that are no longer on the sale
		if len(currentItemIDs) > 0 {
			if err := tx.Where("sale_id = ? AND id NOT IN ?", sale.ID, currentItemIDs).
				Delete(&sales.SaleItem{}).Error; err != nil {
				return err
			}
		} else {
			if err := tx.Where("sale_id = ?", sale.ID).
				Delete(&sales.SaleItem{}).Error; err != nil {
				return err
			}
		}

		for i := range sale.Items {
			sale.Items[i].SaleID = sale.ID
			if err := tx.Save(&sale.Items[i]).Error; err != nil {
				return err
			}
		}

		return nil
	})
}

// SaveWithLock saves the sale header under optimistic version locking.
// Domain mutations have already bumped sale.Version, so the row must still
// carry the previous version for the update to land.
func (r *GormSaleRepository) SaveWithLock(ctx context.Context, sale *sales.Sale) error {
	sale.UpdatedAt = time.Now()

	result := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("id = ? AND version = ?", sale.ID, sale.Version-1).
		Updates(map[string]interface{}{
			"total_amount":   sale.TotalAmount,
			"discount":       sale.Discount,
			"tax":            sale.Tax,
			"payment_status": sale.PaymentStatus,
			"notes":          sale.Notes,
			"is_active":      sale.IsActive,
			"version":        sale.Version,
			"updated_at":     sale.UpdatedAt,
		})

	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		var count int64
		if err := r.db.WithContext(ctx).
			Model(&sales.Sale{}).
			Where("id = ?", sale.ID).
			Count(&count).Error; err != nil {
			return err
		}
		if count == 0 {
			return shared.ErrNotFound
		}
		return shared.ErrConcurrencyConflict
	}
	return nil
}

// Count counts sales matching the filter
func (r *GormSaleRepository) Count(ctx context.Context, filter shared.Filter) (int64, error) {
	var count int64
	query := r.applyFilterWithoutPagination(r.db.WithContext(ctx).Model(&sales.Sale{}), filter)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

// ExistsBySaleNumber checks if a sale number is already taken
func (r *GormSaleRepository) ExistsBySaleNumber(ctx context.Context, saleNumber string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("sale_number = ?", saleNumber).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

// GenerateSaleNumber generates the next sale number.
// Format: POS-YYYY-NNNNN (e.g., POS-2026-00001), sequence resets each year.
// Callers run this inside the sale transaction; the advisory lock on the
// year prefix serializes concurrent generations until that transaction
// commits, so two terminals can never be handed the same number.
func (r *GormSaleRepository) GenerateSaleNumber(ctx context.Context) (string, error) {
	year := time.Now().Year()
	prefix := fmt.Sprintf("POS-%d-", year)

	if err := r.db.WithContext(ctx).
		Exec("SELECT pg_advisory_xact_lock(hashtext(?))", prefix).Error; err != nil {
		return "", err
	}

	// Length before value: once the sequence outgrows five digits the
	// plain lexicographic max would be wrong.
	var lastSale sales.Sale
	err := r.db.WithContext(ctx).
		Model(&sales.Sale{}).
		Where("sale_number LIKE ?", prefix+"%").
		Order("LENGTH(sale_number) DESC, sale_number DESC").
		First(&lastSale).Error

	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return "", err
	}

	var nextNum int64 = 1
	if err == nil && lastSale.SaleNumber != "" {
		parts := strings.Split(lastSale.SaleNumber, "-")
		if len(parts) == 3 {
			var num int64
			if _, parseErr := fmt.Sscanf(parts[2], "%d", &num); parseErr == nil {
				nextNum = num + 1
			}
		}
	}

	return fmt.Sprintf("%s%05d", prefix, nextNum), nil
}

func (r *GormSaleRepository) applyFilter(query *gorm.DB, filter shared.Filter) *gorm.DB {
	query = r.applyFilterWithoutPagination(query, filter)

	if filter.Page > 0 && filter.PageSize > 0 {
		offset := (filter.Page - 1) * filter.PageSize
		query = query.Offset(offset).Limit(filter.PageSize)
	}

	orderBy := ValidateSortField(filter.OrderBy, SaleSortFields, "created_at")
	query = query.Order(orderBy + " " + ValidateSortOrder(filter.OrderDir))

	return query
}

// applyFilterWithoutPagination holds the single predicate set shared by
// FindAll and Count, so a page and its total always agree.
func (r *GormSaleRepository) applyFilterWithoutPagination(query *gorm.DB, filter shared.Filter) *gorm.DB {
	if filter.Search != "" {
		query = query.Where("sale_number ILIKE ?", "%"+filter.Search+"%")
	}

	// Soft-deleted sales are hidden unless explicitly requested
	includeInactive := false
	if v, ok := filter.Filters["include_inactive"]; ok {
		if b, isBool := v.(bool); isBool {
			includeInactive = b
		}
	}
	if !includeInactive {
		query = query.Where("is_active = ?", true)
	}

	for key, value := range filter.Filters {
		switch key {
		case "customer_id":
			query = query.Where("customer_id = ?", value)
		case "store_id":
			query = query.Where("store_id = ?", value)
		case "payment_status":
			query = query.Where("payment_status = ?", value)
		case "payment_method":
			query = query.Where("payment_method = ?", value)
		case "start_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at >= ?", t)
			}
		case "end_date":
			if t, ok := value.(time.Time); ok {
				query = query.Where("created_at <= ?", t)
			}
		}
	}

	return query
}

// Ensure GormSaleRepository implements SaleRepository
var _ sales.SaleRepository = (*GormSaleRepository)(nil)
