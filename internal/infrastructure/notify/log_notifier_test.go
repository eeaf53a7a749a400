package notify

import (
	"context"
	"testing"

	"github.com/google/uuid"
	appsales "github.com/retailpos/backend/internal/application/sales"
	domainsales "github.com/retailpos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

var _ appsales.Notifier = (*LogNotifier)(nil)

func newObservedNotifier() (*LogNotifier, *observer.ObservedLogs) {
	core, logs := observer.New(zap.InfoLevel)
	return NewLogNotifier(zap.New(core)), logs
}

func buildSale(t *testing.T) *domainsales.Sale {
	t.Helper()
	sale, err := domainsales.NewSale("POS-2026-00001", uuid.New(), nil, domainsales.PaymentMethodCash, domainsales.PaymentStatusCompleted)
	require.NoError(t, err)
	_, err = sale.AddItem(uuid.New(), "Espresso", "SKU-ESP-01", 2, decimal.NewFromInt(3))
	require.NoError(t, err)
	return sale
}

func TestLogNotifierNotifySaleRecorded(t *testing.T) {
	notifier, logs := newObservedNotifier()
	sale := buildSale(t)
	event := domainsales.NewSaleRecordedEvent(sale)

	require.NoError(t, notifier.NotifySaleRecorded(context.Background(), event))

	entries := logs.FilterMessage("sale receipt notice").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "POS-2026-00001", fields["sale_number"])
	assert.Equal(t, int64(1), fields["item_count"])
}

func TestLogNotifierNotifySaleReversed(t *testing.T) {
	notifier, logs := newObservedNotifier()
	sale := buildSale(t)
	event := domainsales.NewSaleReversedEvent(sale)

	require.NoError(t, notifier.NotifySaleReversed(context.Background(), event))

	entries := logs.FilterMessage("sale cancellation notice").All()
	require.Len(t, entries, 1)
	fields := entries[0].ContextMap()
	assert.Equal(t, "POS-2026-00001", fields["sale_number"])
	assert.Equal(t, int64(2), fields["restored_units"])
}
