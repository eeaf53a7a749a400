package sales

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
)

// PaymentMethod represents how a sale was paid
type PaymentMethod string

const (
	PaymentMethodCash         PaymentMethod = "cash"
	PaymentMethodCard         PaymentMethod = "card"
	PaymentMethodUPI          PaymentMethod = "upi"
	PaymentMethodEMI          PaymentMethod = "emi"
	PaymentMethodBankTransfer PaymentMethod = "bank_transfer"
	PaymentMethodCheque       PaymentMethod = "cheque"
)

// IsValid checks if the method is a known PaymentMethod
func (m PaymentMethod) IsValid() bool {
	switch m {
	case PaymentMethodCash, PaymentMethodCard, PaymentMethodUPI,
		PaymentMethodEMI, PaymentMethodBankTransfer, PaymentMethodCheque:
		return true
	}
	return false
}

// String returns the string representation of PaymentMethod
func (m PaymentMethod) String() string {
	return string(m)
}

// PaymentStatus represents the settlement state of a sale
type PaymentStatus string

const (
	PaymentStatusPending           PaymentStatus = "pending"
	PaymentStatusCompleted         PaymentStatus = "completed"
	PaymentStatusCancelled         PaymentStatus = "cancelled"
	PaymentStatusRefunded          PaymentStatus = "refunded"
	PaymentStatusPartiallyRefunded PaymentStatus = "partially_refunded"
)

// IsValid checks if the status is a known PaymentStatus
func (s PaymentStatus) IsValid() bool {
	switch s {
	case PaymentStatusPending, PaymentStatusCompleted, PaymentStatusCancelled,
		PaymentStatusRefunded, PaymentStatusPartiallyRefunded:
		return true
	}
	return false
}

// String returns the string representation of PaymentStatus
func (s PaymentStatus) String() string {
	return string(s)
}

// CanTransitionTo checks if the status can transition to the target status
func (s PaymentStatus) CanTransitionTo(target PaymentStatus) bool {
	switch s {
	case PaymentStatusPending:
		return target == PaymentStatusCompleted || target == PaymentStatusCancelled
	case PaymentStatusCompleted:
		return target == PaymentStatusRefunded || target == PaymentStatusPartiallyRefunded
	case PaymentStatusPartiallyRefunded:
		return target == PaymentStatusRefunded
	case PaymentStatusCancelled, PaymentStatusRefunded:
		return false // Terminal states
	}
	return false
}

// SaleItem represents a line item on a sale.
// ProductName, SKU and UnitPrice are snapshots taken at sale time; they are
// never re-derived from the catalog afterwards. TotalPrice is always
// recomputed from quantity and unit price, never trusted from input.
type SaleItem struct {
	ID          uuid.UUID
	SaleID      uuid.UUID
	ProductID   uuid.UUID
	ProductName string
	SKU         string
	Quantity    int64
	UnitPrice   decimal.Decimal
	TotalPrice  decimal.Decimal
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName returns the table name for GORM
func (SaleItem) TableName() string {
	return "sale_items"
}

// NewSaleItem creates a new sale line item with snapshotted product info
func NewSaleItem(saleID, productID uuid.UUID, productName, sku string, quantity int64, unitPrice decimal.Decimal) (*SaleItem, error) {
	if productID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_PRODUCT", "Product ID cannot be empty")
	}
	if productName == "" {
		return nil, shared.NewDomainError("INVALID_PRODUCT_NAME", "Product name cannot be empty")
	}
	if quantity <= 0 {
		return nil, shared.NewDomainError("INVALID_QUANTITY", "Quantity must be positive")
	}
	if unitPrice.IsNegative() {
		return nil, shared.NewDomainError("INVALID_PRICE", "Unit price cannot be negative")
	}

	now := time.Now()
	return &SaleItem{
		ID:          uuid.New(),
		SaleID:      saleID,
		ProductID:   productID,
		ProductName: productName,
		SKU:         sku,
		Quantity:    quantity,
		UnitPrice:   unitPrice,
		TotalPrice:  unitPrice.Mul(decimal.NewFromInt(quantity)),
		CreatedAt:   now,
		UpdatedAt:   now,
	}, nil
}

// Sale represents a completed point-of-sale transaction.
// It is the aggregate root for the sale engine: stock was decremented for
// every line when it was recorded, and the soft-delete reversal restores
// that stock exactly once.
type Sale struct {
	shared.BaseAggregateRoot
	SaleNumber    string
	CustomerID    uuid.UUID
	StoreID       *uuid.UUID
	Items         []SaleItem
	TotalAmount   decimal.Decimal
	Discount      decimal.Decimal
	Tax           decimal.Decimal
	PaymentMethod PaymentMethod
	PaymentStatus PaymentStatus
	Notes         string
	IsActive      bool
}

// TableName returns the table name for GORM
func (Sale) TableName() string {
	return "sales"
}

// NewSale creates a new sale in the given initial payment status.
// Only pending and completed are legal starting points; a POS terminal
// normally settles immediately.
func NewSale(saleNumber string, customerID uuid.UUID, storeID *uuid.UUID, method PaymentMethod, status PaymentStatus) (*Sale, error) {
	if saleNumber == "" {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot be empty")
	}
	if len(saleNumber) > 50 {
		return nil, shared.NewDomainError("INVALID_SALE_NUMBER", "Sale number cannot exceed 50 characters")
	}
	if customerID == uuid.Nil {
		return nil, shared.NewDomainError("INVALID_CUSTOMER", "Customer ID cannot be empty")
	}
	if !method.IsValid() {
		return nil, shared.NewDomainError("INVALID_PAYMENT_METHOD", fmt.Sprintf("Unknown payment method %q", method))
	}
	if status != PaymentStatusPending && status != PaymentStatusCompleted {
		return nil, shared.NewDomainError("INVALID_PAYMENT_STATUS", "A sale starts as pending or completed")
	}

	sale := &Sale{
		BaseAggregateRoot: shared.NewBaseAggregateRoot(),
		SaleNumber:        saleNumber,
		CustomerID:        customerID,
		StoreID:           storeID,
		Items:             make([]SaleItem, 0),
		TotalAmount:       decimal.Zero,
		Discount:          decimal.Zero,
		Tax:               decimal.Zero,
		PaymentMethod:     method,
		PaymentStatus:     status,
		IsActive:          true,
	}

	return sale, nil
}

// AddItem adds a line item to the sale and recalculates the total
func (s *Sale) AddItem(productID uuid.UUID, productName, sku string, quantity int64, unitPrice decimal.Decimal) (*SaleItem, error) {
	item, err := NewSaleItem(s.ID, productID, productName, sku, quantity, unitPrice)
	if err != nil {
		return nil, err
	}

	s.Items = append(s.Items, *item)
	s.recalculateTotal()
	s.UpdatedAt = time.Now()

	return item, nil
}

// ApplyAdjustments sets the sale-level discount and tax.
// The resulting total must stay non-negative.
func (s *Sale) ApplyAdjustments(discount, tax decimal.Decimal) error {
	if discount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot be negative")
	}
	if tax.IsNegative() {
		return shared.NewDomainError("INVALID_TAX", "Tax cannot be negative")
	}

	s.Discount = discount
	s.Tax = tax
	s.recalculateTotal()

	if s.TotalAmount.IsNegative() {
		return shared.NewDomainError("INVALID_DISCOUNT", "Discount cannot exceed the item total plus tax")
	}

	s.UpdatedAt = time.Now()
	return nil
}

// Finalize validates the assembled sale before it is persisted and emits
// the SaleRecorded event.
func (s *Sale) Finalize() error {
	if len(s.Items) == 0 {
		return shared.NewDomainError("NO_ITEMS", "A sale requires at least one item")
	}
	if s.TotalAmount.IsNegative() {
		return shared.NewDomainError("INVALID_AMOUNT", "Sale total cannot be negative")
	}

	s.AddDomainEvent(NewSaleRecordedEvent(s))
	return nil
}

// ChangePaymentStatus transitions the sale to a new payment status.
// Illegal transitions are rejected.
func (s *Sale) ChangePaymentStatus(target PaymentStatus) error {
	if !target.IsValid() {
		return shared.NewDomainError("INVALID_PAYMENT_STATUS", fmt.Sprintf("Unknown payment status %q", target))
	}
	if !s.PaymentStatus.CanTransitionTo(target) {
		return shared.NewDomainError("INVALID_STATE",
			fmt.Sprintf("Cannot transition payment status from %s to %s", s.PaymentStatus, target))
	}

	old := s.PaymentStatus
	s.PaymentStatus = target
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSalePaymentStatusChangedEvent(s, old, target))

	return nil
}

// SetNotes sets the free-form notes on the sale
func (s *Sale) SetNotes(notes string) {
	s.Notes = notes
	s.UpdatedAt = time.Now()
	s.IncrementVersion()
}

// Deactivate marks the sale as soft-deleted.
// Stock restoration is handled by the application service in the same
// transaction; an already-inactive sale cannot be deactivated again.
func (s *Sale) Deactivate() error {
	if !s.IsActive {
		return shared.ErrNotFound
	}

	s.IsActive = false
	s.UpdatedAt = time.Now()
	s.IncrementVersion()

	s.AddDomainEvent(NewSaleReversedEvent(s))

	return nil
}

// TotalQuantity returns the sum of all line quantities
func (s *Sale) TotalQuantity() int64 {
	var total int64
	for _, item := range s.Items {
		total += item.Quantity
	}
	return total
}

// ItemCount returns the number of line items
func (s *Sale) ItemCount() int {
	return len(s.Items)
}

// IsCancelled returns true if the payment was cancelled
func (s *Sale) IsCancelled() bool {
	return s.PaymentStatus == PaymentStatusCancelled
}

// recalculateTotal recomputes TotalAmount = sum(line totals) - discount + tax
func (s *Sale) recalculateTotal() {
	total := decimal.Zero
	for _, item := range s.Items {
		total = total.Add(item.TotalPrice)
	}
	s.TotalAmount = total.Sub(s.Discount).Add(s.Tax)
}
