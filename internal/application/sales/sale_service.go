package sales

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/catalog"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/retailpos/backend/internal/domain/shared"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// SaleService is the sale transaction engine: it records sales,
// atomically decrements product stock, and reverses both together.
type SaleService struct {
	saleRepo       sales.SaleRepository
	customerRepo   partner.CustomerRepository
	txScope        TransactionScope
	eventPublisher shared.EventPublisher
	logger         *zap.Logger
}

// NewSaleService creates a new SaleService
func NewSaleService(
	saleRepo sales.SaleRepository,
	customerRepo partner.CustomerRepository,
	txScope TransactionScope,
	logger *zap.Logger,
) *SaleService {
	return &SaleService{
		saleRepo:     saleRepo,
		customerRepo: customerRepo,
		txScope:      txScope,
		logger:       logger,
	}
}

// SetEventPublisher sets the event publisher for post-commit notifications
func (s *SaleService) SetEventPublisher(publisher shared.EventPublisher) {
	s.eventPublisher = publisher
}

// Create records a new sale. All validation happens before any write.
// The sale insert and every stock decrement run in one transaction: the
// conditional UPDATE that guards stock happens in the same transaction as
// the insert, so two terminals racing for the last unit cannot both win.
func (s *SaleService) Create(ctx context.Context, req CreateSaleRequest) (*SaleResponse, error) {
	status := sales.PaymentStatusCompleted
	if req.PaymentStatus != "" {
		status = sales.PaymentStatus(req.PaymentStatus)
	}
	method := sales.PaymentMethod(req.PaymentMethod)

	if err := validateCreateRequest(req, method, status); err != nil {
		return nil, err
	}

	// Customer must resolve before anything is written
	customer, err := s.customerRepo.FindByID(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, shared.ErrNotFound) {
			return nil, shared.NewDomainError("NOT_FOUND", "Customer not found")
		}
		return nil, err
	}

	var sale *sales.Sale
	err = s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		saleNumber, err := repos.SaleRepo().GenerateSaleNumber(ctx)
		if err != nil {
			return err
		}

		sale, err = sales.NewSale(saleNumber, customer.ID, req.StoreID, method, status)
		if err != nil {
			return err
		}

		products, err := s.loadProducts(ctx, repos.ProductRepo(), req.Items)
		if err != nil {
			return err
		}

		for _, input := range req.Items {
			product := products[input.ProductID]

			// Snapshot the price: request price wins, else current catalog price
			unitPrice := product.UnitPrice
			if input.UnitPrice != nil {
				unitPrice = *input.UnitPrice
			}

			if _, err := sale.AddItem(product.ID, product.Name, product.SKU, input.Quantity, unitPrice); err != nil {
				return err
			}
		}

		discount, tax := decimal.Zero, decimal.Zero
		if req.Discount != nil {
			discount = *req.Discount
		}
		if req.Tax != nil {
			tax = *req.Tax
		}
		if err := sale.ApplyAdjustments(discount, tax); err != nil {
			return err
		}
		if req.Notes != "" {
			sale.Notes = req.Notes
		}

		if err := sale.Finalize(); err != nil {
			return err
		}

		if err := repos.SaleRepo().Save(ctx, sale); err != nil {
			return err
		}

		// Conditional decrement per line; zero rows means the product
		// vanished or the stock guard failed
		for _, item := range sale.Items {
			if err := repos.ProductRepo().DecrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				if errors.Is(err, shared.ErrInsufficientStock) {
					return shared.NewDomainError("INSUFFICIENT_STOCK",
						fmt.Sprintf("Insufficient stock for product %s (%s): requested %d",
							item.ProductName, item.SKU, item.Quantity))
				}
				return err
			}
		}

		return nil
	})
	if err != nil {
		return nil, s.translateTxError(err, "record sale")
	}

	// Respond with the committed row, not the in-memory aggregate, so the
	// caller sees exactly what the database now holds.
	persisted, err := s.saleRepo.FindByID(ctx, sale.ID, false)
	if err != nil {
		return nil, s.translateTxError(err, "read back sale")
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(persisted, customer)
	return &response, nil
}

// GetByID retrieves a sale with its items and customer summary
func (s *SaleService) GetByID(ctx context.Context, id uuid.UUID, includeInactive bool) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id, includeInactive)
	if err != nil {
		return nil, err
	}

	customer, err := s.customerRepo.FindByID(ctx, sale.CustomerID)
	if err != nil && !errors.Is(err, shared.ErrNotFound) {
		return nil, err
	}

	response := ToSaleResponse(sale, customer)
	return &response, nil
}

// List retrieves sales matching the filter, newest first.
// The page and the total are produced from the same predicate set.
func (s *SaleService) List(ctx context.Context, filter SaleListFilter) ([]SaleResponse, int64, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.PageSize <= 0 {
		filter.PageSize = 20
	}

	domainFilter := shared.Filter{
		Page:     filter.Page,
		PageSize: filter.PageSize,
		OrderBy:  "created_at",
		OrderDir: "desc",
		Filters:  make(map[string]interface{}),
	}

	if filter.CustomerID != nil {
		domainFilter.Filters["customer_id"] = *filter.CustomerID
	}
	if filter.StoreID != nil {
		domainFilter.Filters["store_id"] = *filter.StoreID
	}
	if filter.PaymentStatus != nil {
		domainFilter.Filters["payment_status"] = *filter.PaymentStatus
	}
	if filter.StartDate != nil {
		domainFilter.Filters["start_date"] = *filter.StartDate
	}
	if filter.EndDate != nil {
		domainFilter.Filters["end_date"] = endOfRangeDay(*filter.EndDate)
	}
	if filter.IncludeInactive {
		domainFilter.Filters["include_inactive"] = true
	}

	items, err := s.saleRepo.FindAll(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	total, err := s.saleRepo.Count(ctx, domainFilter)
	if err != nil {
		return nil, 0, err
	}

	return ToSaleResponses(items), total, nil
}

// Update changes a sale's payment status and/or notes. Nothing else on a
// recorded sale is mutable. The write uses optimistic version locking.
func (s *SaleService) Update(ctx context.Context, id uuid.UUID, req UpdateSaleRequest) (*SaleResponse, error) {
	sale, err := s.saleRepo.FindByID(ctx, id, false)
	if err != nil {
		return nil, err
	}

	if req.PaymentStatus != nil {
		if err := sale.ChangePaymentStatus(sales.PaymentStatus(*req.PaymentStatus)); err != nil {
			return nil, err
		}
	}
	if req.Notes != nil {
		sale.SetNotes(*req.Notes)
	}

	if err := s.saleRepo.SaveWithLock(ctx, sale); err != nil {
		return nil, err
	}

	s.publishEvents(ctx, sale)

	response := ToSaleResponse(sale, nil)
	return &response, nil
}

// Delete reverses a sale: within one transaction the sale is soft-deleted
// and every line's stock is restored. The restore happens exactly once; a
// second delete of the same sale reports not found.
func (s *SaleService) Delete(ctx context.Context, id uuid.UUID) error {
	var sale *sales.Sale
	err := s.txScope.Execute(ctx, func(repos TransactionalRepositories) error {
		var err error
		sale, err = repos.SaleRepo().FindByID(ctx, id, false)
		if err != nil {
			return err
		}

		if err := sale.Deactivate(); err != nil {
			return err
		}

		for _, item := range sale.Items {
			if err := repos.ProductRepo().IncrementStock(ctx, item.ProductID, item.Quantity); err != nil {
				return err
			}
		}

		return repos.SaleRepo().SaveWithLock(ctx, sale)
	})
	if err != nil {
		return s.translateTxError(err, "reverse sale")
	}

	s.publishEvents(ctx, sale)

	return nil
}

// loadProducts resolves and validates every product referenced by the request
func (s *SaleService) loadProducts(ctx context.Context, repo catalog.ProductRepository, items []CreateSaleItemInput) (map[uuid.UUID]*catalog.Product, error) {
	ids := make([]uuid.UUID, 0, len(items))
	seen := make(map[uuid.UUID]bool, len(items))
	for _, item := range items {
		if !seen[item.ProductID] {
			seen[item.ProductID] = true
			ids = append(ids, item.ProductID)
		}
	}

	products, err := repo.FindByIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	byID := make(map[uuid.UUID]*catalog.Product, len(products))
	for i := range products {
		byID[products[i].ID] = &products[i]
	}

	for _, id := range ids {
		product, ok := byID[id]
		if !ok {
			return nil, shared.NewDomainError("NOT_FOUND", fmt.Sprintf("Product %s not found", id))
		}
		if !product.IsActive() {
			return nil, shared.NewDomainError("INVALID_STATE", fmt.Sprintf("Product %s (%s) is not sellable", product.Name, product.SKU))
		}
	}

	return byID, nil
}

// translateTxError passes domain errors through and converts storage
// faults into the retryable transaction-failed error
func (s *SaleService) translateTxError(err error, op string) error {
	var domainErr *shared.DomainError
	if errors.As(err, &domainErr) {
		return err
	}

	s.logger.Error("Sale transaction failed",
		zap.String("operation", op),
		zap.Error(err),
	)
	return shared.ErrTransactionFailed
}

// publishEvents forwards the aggregate's pending events to the bus.
// Dispatch is fire-and-forget: a dead bus never fails a committed sale.
func (s *SaleService) publishEvents(ctx context.Context, sale *sales.Sale) {
	if sale == nil || s.eventPublisher == nil {
		return
	}

	events := sale.GetDomainEvents()
	if len(events) == 0 {
		return
	}

	if err := s.eventPublisher.Publish(ctx, events...); err != nil {
		s.logger.Warn("Failed to publish sale events",
			zap.String("sale_id", sale.ID.String()),
			zap.Error(err),
		)
	}

	sale.ClearDomainEvents()
}

func validateCreateRequest(req CreateSaleRequest, method sales.PaymentMethod, status sales.PaymentStatus) error {
	if !method.IsValid() {
		return shared.NewDomainError("INVALID_INPUT", fmt.Sprintf("Unknown payment method %q", req.PaymentMethod))
	}
	if status != sales.PaymentStatusPending && status != sales.PaymentStatusCompleted {
		return shared.NewDomainError("INVALID_INPUT", "A sale starts as pending or completed")
	}
	if len(req.Items) == 0 {
		return shared.NewDomainError("INVALID_INPUT", "A sale requires at least one item")
	}
	for _, item := range req.Items {
		if item.ProductID == uuid.Nil {
			return shared.NewDomainError("INVALID_INPUT", "Every item needs a product ID")
		}
		if item.Quantity <= 0 {
			return shared.NewDomainError("INVALID_INPUT", "Item quantity must be positive")
		}
		if item.UnitPrice != nil && item.UnitPrice.IsNegative() {
			return shared.NewDomainError("INVALID_INPUT", "Item unit price cannot be negative")
		}
	}
	if req.Discount != nil && req.Discount.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Discount cannot be negative")
	}
	if req.Tax != nil && req.Tax.IsNegative() {
		return shared.NewDomainError("INVALID_INPUT", "Tax cannot be negative")
	}
	return nil
}
