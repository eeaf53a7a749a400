package sales

import (
	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// Aggregate type constant
const AggregateTypeSale = "Sale"

// Event type constants
const (
	EventTypeSaleRecorded             = "SaleRecorded"
	EventTypeSalePaymentStatusChanged = "SalePaymentStatusChanged"
	EventTypeSaleReversed             = "SaleReversed"
)

// SaleRecordedEvent is published after a sale has been committed.
// The notification dispatcher subscribes to it.
type SaleRecordedEvent struct {
	shared.BaseDomainEvent
	SaleID        uuid.UUID       `json:"sale_id"`
	SaleNumber    string          `json:"sale_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	ItemCount     int             `json:"item_count"`
	PaymentMethod PaymentMethod   `json:"payment_method"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
}

// NewSaleRecordedEvent creates a new SaleRecordedEvent
func NewSaleRecordedEvent(sale *Sale) *SaleRecordedEvent {
	return &SaleRecordedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleRecorded, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		SaleNumber:      sale.SaleNumber,
		CustomerID:      sale.CustomerID,
		TotalAmount:     sale.TotalAmount,
		ItemCount:       sale.ItemCount(),
		PaymentMethod:   sale.PaymentMethod,
		PaymentStatus:   sale.PaymentStatus,
	}
}

// SalePaymentStatusChangedEvent is published when a sale's payment status changes
type SalePaymentStatusChangedEvent struct {
	shared.BaseDomainEvent
	SaleID     uuid.UUID     `json:"sale_id"`
	SaleNumber string        `json:"sale_number"`
	OldStatus  PaymentStatus `json:"old_status"`
	NewStatus  PaymentStatus `json:"new_status"`
}

// NewSalePaymentStatusChangedEvent creates a new SalePaymentStatusChangedEvent
func NewSalePaymentStatusChangedEvent(sale *Sale, old, target PaymentStatus) *SalePaymentStatusChangedEvent {
	return &SalePaymentStatusChangedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSalePaymentStatusChanged, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		SaleNumber:      sale.SaleNumber,
		OldStatus:       old,
		NewStatus:       target,
	}
}

// SaleReversedEvent is published when a sale is soft-deleted and its stock restored
type SaleReversedEvent struct {
	shared.BaseDomainEvent
	SaleID        uuid.UUID       `json:"sale_id"`
	SaleNumber    string          `json:"sale_number"`
	CustomerID    uuid.UUID       `json:"customer_id"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	RestoredUnits int64           `json:"restored_units"`
}

// NewSaleReversedEvent creates a new SaleReversedEvent
func NewSaleReversedEvent(sale *Sale) *SaleReversedEvent {
	return &SaleReversedEvent{
		BaseDomainEvent: shared.NewBaseDomainEvent(EventTypeSaleReversed, AggregateTypeSale, sale.ID),
		SaleID:          sale.ID,
		SaleNumber:      sale.SaleNumber,
		CustomerID:      sale.CustomerID,
		TotalAmount:     sale.TotalAmount,
		RestoredUnits:   sale.TotalQuantity(),
	}
}
