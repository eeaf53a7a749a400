package catalog

import (
	"context"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
)

// ProductRepository defines the interface for product persistence.
// DecrementStock and IncrementStock form the inventory ledger contract:
// they are the only operations allowed to change stock after product
// creation, and they must be atomic at the database level.
type ProductRepository interface {
	// FindByID finds a product by its ID
	FindByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// FindBySKU finds a product by its SKU
	FindBySKU(ctx context.Context, sku string) (*Product, error)

	// FindByIDs finds multiple products by their IDs
	FindByIDs(ctx context.Context, ids []uuid.UUID) ([]Product, error)

	// FindAll finds all products matching the filter
	FindAll(ctx context.Context, filter shared.Filter) ([]Product, error)

	// Save creates or updates a product
	Save(ctx context.Context, product *Product) error

	// SaveWithLock persists the descriptive fields of an existing product
	// using optimistic version locking. It never writes stock_quantity, so
	// a catalog edit holding a stale read cannot undo a concurrent sale's
	// decrement.
	SaveWithLock(ctx context.Context, product *Product) error

	// Delete deletes a product
	Delete(ctx context.Context, id uuid.UUID) error

	// Count counts products matching the filter
	Count(ctx context.Context, filter shared.Filter) (int64, error)

	// ExistsBySKU checks if a product with the given SKU exists
	ExistsBySKU(ctx context.Context, sku string) (bool, error)

	// DecrementStock atomically decrements a product's stock by quantity.
	// The decrement succeeds only when at least quantity units are on hand;
	// otherwise it returns ErrInsufficientStock. A missing product returns
	// ErrNotFound.
	DecrementStock(ctx context.Context, id uuid.UUID, quantity int64) error

	// IncrementStock atomically increments a product's stock by quantity.
	// A missing product returns ErrNotFound.
	IncrementStock(ctx context.Context, id uuid.UUID, quantity int64) error
}
