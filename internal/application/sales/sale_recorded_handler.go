package sales

import (
	"context"
	"fmt"

	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"go.uber.org/zap"
)

// Notifier delivers customer-facing notices about sale activity.
// Implementations own the channel (SMS, email, ...); the engine only
// hands over the facts of the sale.
type Notifier interface {
	// NotifySaleRecorded sends a receipt notice for a freshly recorded sale
	NotifySaleRecorded(ctx context.Context, event *sales.SaleRecordedEvent) error
	// NotifySaleReversed sends a cancellation notice for a reversed sale
	NotifySaleReversed(ctx context.Context, event *sales.SaleReversedEvent) error
}

// SaleNotificationHandler subscribes to sale events and dispatches
// notifications. Dispatch is strictly fire-and-forget: failures are
// logged and never surface into the sale flow. The idempotency store
// keeps a re-published event from producing a duplicate notice.
type SaleNotificationHandler struct {
	notifier         Notifier
	idempotencyStore shared.IdempotencyStore
	idempotencyCfg   shared.IdempotencyConfig
	logger           *zap.Logger
}

// NewSaleNotificationHandler creates a new SaleNotificationHandler
func NewSaleNotificationHandler(
	notifier Notifier,
	idempotencyStore shared.IdempotencyStore,
	idempotencyCfg shared.IdempotencyConfig,
	logger *zap.Logger,
) *SaleNotificationHandler {
	return &SaleNotificationHandler{
		notifier:         notifier,
		idempotencyStore: idempotencyStore,
		idempotencyCfg:   idempotencyCfg,
		logger:           logger,
	}
}

// EventTypes returns the event types this handler is interested in
func (h *SaleNotificationHandler) EventTypes() []string {
	return []string{sales.EventTypeSaleRecorded, sales.EventTypeSaleReversed}
}

// Handle processes a sale event by dispatching the matching notification
func (h *SaleNotificationHandler) Handle(ctx context.Context, event shared.DomainEvent) error {
	if !h.shouldProcess(ctx, event) {
		return nil
	}

	var err error
	switch e := event.(type) {
	case *sales.SaleRecordedEvent:
		err = h.notifier.NotifySaleRecorded(ctx, e)
	case *sales.SaleReversedEvent:
		err = h.notifier.NotifySaleReversed(ctx, e)
	default:
		return fmt.Errorf("unexpected event type %s", event.EventType())
	}

	if err != nil {
		h.logger.Warn("Notification dispatch failed",
			zap.String("event_id", event.EventID().String()),
			zap.String("event_type", event.EventType()),
			zap.Error(err),
		)
	}

	// Never propagate dispatch failures into the sale flow
	return nil
}

// shouldProcess consults the idempotency store. A store fault counts as
// processable: delivering twice beats not delivering at all.
func (h *SaleNotificationHandler) shouldProcess(ctx context.Context, event shared.DomainEvent) bool {
	if h.idempotencyStore == nil || !h.idempotencyCfg.Enabled {
		return true
	}

	fresh, err := h.idempotencyStore.MarkProcessed(ctx, event.EventID().String(), h.idempotencyCfg.TTL)
	if err != nil {
		h.logger.Warn("Idempotency check failed, processing anyway",
			zap.String("event_id", event.EventID().String()),
			zap.Error(err),
		)
		return true
	}
	if !fresh {
		h.logger.Debug("Skipping already-processed event",
			zap.String("event_id", event.EventID().String()),
		)
	}
	return fresh
}

var _ shared.EventHandler = (*SaleNotificationHandler)(nil)
