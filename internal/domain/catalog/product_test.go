package catalog

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewProduct(t *testing.T) {
	t.Run("creates product with valid inputs", func(t *testing.T) {
		product, err := NewProduct("SKU-001", "Espresso Beans 1kg", "bag", decimal.NewFromInt(450), 25)
		require.NoError(t, err)
		require.NotNil(t, product)

		assert.Equal(t, "SKU-001", product.SKU)
		assert.Equal(t, "Espresso Beans 1kg", product.Name)
		assert.Equal(t, "bag", product.Unit)
		assert.True(t, product.UnitPrice.Equal(decimal.NewFromInt(450)))
		assert.Equal(t, int64(25), product.StockQuantity)
		assert.Equal(t, ProductStatusActive, product.Status)
		assert.NotEmpty(t, product.ID)
		assert.Equal(t, 1, product.GetVersion())
	})

	t.Run("converts SKU to uppercase", func(t *testing.T) {
		product, err := NewProduct("sku-001", "Espresso Beans 1kg", "bag", decimal.NewFromInt(450), 0)
		require.NoError(t, err)
		assert.Equal(t, "SKU-001", product.SKU)
	})

	t.Run("defaults unit to pcs", func(t *testing.T) {
		product, err := NewProduct("SKU-002", "Paper Cup", "", decimal.NewFromInt(2), 0)
		require.NoError(t, err)
		assert.Equal(t, "pcs", product.Unit)
	})

	t.Run("publishes ProductCreated event", func(t *testing.T) {
		product, err := NewProduct("SKU-003", "Espresso Beans 1kg", "bag", decimal.NewFromInt(450), 10)
		require.NoError(t, err)

		events := product.GetDomainEvents()
		require.Len(t, events, 1)
		assert.Equal(t, EventTypeProductCreated, events[0].EventType())

		event, ok := events[0].(*ProductCreatedEvent)
		require.True(t, ok)
		assert.Equal(t, product.ID, event.ProductID)
		assert.Equal(t, product.SKU, event.SKU)
		assert.Equal(t, int64(10), event.StockQuantity)
	})

	t.Run("fails with empty SKU", func(t *testing.T) {
		_, err := NewProduct("", "Espresso Beans 1kg", "bag", decimal.NewFromInt(450), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "SKU is required")
	})

	t.Run("fails with empty name", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "", "bag", decimal.NewFromInt(450), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "name is required")
	})

	t.Run("fails with negative price", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "Espresso Beans 1kg", "bag", decimal.NewFromInt(-1), 0)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "cannot be negative")
	})

	t.Run("fails with negative opening stock", func(t *testing.T) {
		_, err := NewProduct("SKU-001", "Espresso Beans 1kg", "bag", decimal.NewFromInt(450), -5)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "Opening stock cannot be negative")
	})
}

func TestProductUpdate(t *testing.T) {
	newProduct := func(t *testing.T) *Product {
		product, err := NewProduct("SKU-001", "Espresso Beans 1kg", "bag", decimal.NewFromInt(450), 25)
		require.NoError(t, err)
		product.ClearDomainEvents()
		return product
	}

	t.Run("updates name, description and price", func(t *testing.T) {
		product := newProduct(t)

		err := product.Update("House Blend 1kg", "Medium roast", decimal.NewFromInt(520))
		require.NoError(t, err)

		assert.Equal(t, "House Blend 1kg", product.Name)
		assert.Equal(t, "Medium roast", product.Description)
		assert.True(t, product.UnitPrice.Equal(decimal.NewFromInt(520)))
		assert.Equal(t, 2, product.GetVersion())
	})

	t.Run("does not touch stock", func(t *testing.T) {
		product := newProduct(t)

		err := product.Update("House Blend 1kg", "", decimal.NewFromInt(520))
		require.NoError(t, err)
		assert.Equal(t, int64(25), product.StockQuantity)
	})

	t.Run("rejects negative price", func(t *testing.T) {
		product := newProduct(t)

		err := product.Update("House Blend 1kg", "", decimal.NewFromInt(-10))
		require.Error(t, err)
	})
}

func TestProductStatusTransitions(t *testing.T) {
	newProduct := func(t *testing.T) *Product {
		product, err := NewProduct("SKU-001", "Espresso Beans 1kg", "bag", decimal.NewFromInt(450), 0)
		require.NoError(t, err)
		return product
	}

	t.Run("deactivate then activate", func(t *testing.T) {
		product := newProduct(t)

		require.NoError(t, product.Deactivate())
		assert.Equal(t, ProductStatusInactive, product.Status)

		require.NoError(t, product.Activate())
		assert.Equal(t, ProductStatusActive, product.Status)
	})

	t.Run("cannot activate twice", func(t *testing.T) {
		product := newProduct(t)
		require.Error(t, product.Activate())
	})

	t.Run("discontinued is terminal", func(t *testing.T) {
		product := newProduct(t)

		require.NoError(t, product.Discontinue())
		require.Error(t, product.Activate())
		require.Error(t, product.Deactivate())
		require.Error(t, product.Discontinue())
	})
}

func TestProductHasStock(t *testing.T) {
	product, err := NewProduct("SKU-001", "Espresso Beans 1kg", "bag", decimal.NewFromInt(450), 10)
	require.NoError(t, err)

	assert.True(t, product.HasStock(10))
	assert.True(t, product.HasStock(1))
	assert.False(t, product.HasStock(11))
}
