// Package notify delivers customer-facing notices about sale activity.
// The current implementation writes structured log lines; a real SMS or
// email gateway can replace it behind the same port.
package notify

import (
	"context"

	domainsales "github.com/retailpos/backend/internal/domain/sales"
	"go.uber.org/zap"
)

// LogNotifier records every notice as a structured log entry.
type LogNotifier struct {
	logger *zap.Logger
}

// NewLogNotifier creates a LogNotifier
func NewLogNotifier(logger *zap.Logger) *LogNotifier {
	return &LogNotifier{logger: logger.Named("notify")}
}

// NotifySaleRecorded emits a receipt notice for a freshly recorded sale
func (n *LogNotifier) NotifySaleRecorded(ctx context.Context, event *domainsales.SaleRecordedEvent) error {
	n.logger.Info("sale receipt notice",
		zap.String("sale_id", event.SaleID.String()),
		zap.String("sale_number", event.SaleNumber),
		zap.String("customer_id", event.CustomerID.String()),
		zap.String("total_amount", event.TotalAmount.String()),
		zap.Int("item_count", event.ItemCount),
		zap.String("payment_method", string(event.PaymentMethod)),
		zap.String("payment_status", string(event.PaymentStatus)),
	)
	return nil
}

// NotifySaleReversed emits a cancellation notice for a reversed sale
func (n *LogNotifier) NotifySaleReversed(ctx context.Context, event *domainsales.SaleReversedEvent) error {
	n.logger.Info("sale cancellation notice",
		zap.String("sale_id", event.SaleID.String()),
		zap.String("sale_number", event.SaleNumber),
		zap.String("customer_id", event.CustomerID.String()),
		zap.String("total_amount", event.TotalAmount.String()),
		zap.Int64("restored_units", event.RestoredUnits),
	)
	return nil
}
