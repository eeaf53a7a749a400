package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/retailpos/backend/internal/domain/partner"
	"github.com/retailpos/backend/internal/domain/sales"
	"github.com/shopspring/decimal"
)

// CreateSaleRequest represents a request to record a sale
type CreateSaleRequest struct {
	CustomerID    uuid.UUID             `json:"customer_id" binding:"required"`
	StoreID       *uuid.UUID            `json:"store_id"`
	Items         []CreateSaleItemInput `json:"items" binding:"required,min=1,dive"`
	Discount      *decimal.Decimal      `json:"discount"`
	Tax           *decimal.Decimal      `json:"tax"`
	PaymentMethod string                `json:"payment_method" binding:"required,paymentmethod"`
	PaymentStatus string                `json:"payment_status" binding:"omitempty,oneof=pending completed"`
	Notes         string                `json:"notes" binding:"omitempty,max=1000"`
}

// CreateSaleItemInput represents one line of the create request.
// UnitPrice is optional: when absent, the product's current price is
// snapshotted instead.
type CreateSaleItemInput struct {
	ProductID uuid.UUID        `json:"product_id" binding:"required"`
	Quantity  int64            `json:"quantity" binding:"required,gt=0"`
	UnitPrice *decimal.Decimal `json:"unit_price"`
}

// UpdateSaleRequest represents a request to update a sale.
// Only the payment status and notes are mutable after a sale is recorded.
type UpdateSaleRequest struct {
	PaymentStatus *string `json:"payment_status" binding:"omitempty,paymentstatus"`
	Notes         *string `json:"notes" binding:"omitempty,max=1000"`
}

// SaleListFilter represents filter options for the sale list
type SaleListFilter struct {
	CustomerID      *uuid.UUID `form:"customer_id"`
	StoreID         *uuid.UUID `form:"store_id"`
	PaymentStatus   *string    `form:"payment_status" binding:"omitempty,paymentstatus"`
	StartDate       *time.Time `form:"start_date" time_format:"2006-01-02"`
	EndDate         *time.Time `form:"end_date" time_format:"2006-01-02"`
	IncludeInactive bool       `form:"include_inactive"`
	Page            int        `form:"page" binding:"omitempty,min=1"`
	PageSize        int        `form:"page_size" binding:"omitempty,min=1,max=100"`
}

// endOfRangeDay widens a date-granular end bound to cover its whole
// calendar day, so an inclusive range like 2026-08-01..2026-08-28 keeps
// sales made during the 28th. Bounds carrying a clock component pass
// through untouched.
func endOfRangeDay(end time.Time) time.Time {
	if end.Hour() == 0 && end.Minute() == 0 && end.Second() == 0 && end.Nanosecond() == 0 {
		return end.AddDate(0, 0, 1).Add(-time.Nanosecond)
	}
	return end
}

// SaleItemResponse represents a sale line item in API responses
type SaleItemResponse struct {
	ID          uuid.UUID       `json:"id"`
	ProductID   uuid.UUID       `json:"product_id"`
	ProductName string          `json:"product_name"`
	SKU         string          `json:"sku"`
	Quantity    int64           `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	TotalPrice  decimal.Decimal `json:"total_price"`
}

// CustomerSummaryResponse is the customer block on a sale read-back
type CustomerSummaryResponse struct {
	ID    uuid.UUID `json:"id"`
	Name  string    `json:"name"`
	Phone string    `json:"phone,omitempty"`
	Email string    `json:"email,omitempty"`
}

// SaleResponse represents a sale in API responses
type SaleResponse struct {
	ID            uuid.UUID                `json:"id"`
	SaleNumber    string                   `json:"sale_number"`
	CustomerID    uuid.UUID                `json:"customer_id"`
	Customer      *CustomerSummaryResponse `json:"customer,omitempty"`
	StoreID       *uuid.UUID               `json:"store_id,omitempty"`
	Items         []SaleItemResponse       `json:"items"`
	ItemCount     int                      `json:"item_count"`
	TotalQuantity int64                    `json:"total_quantity"`
	TotalAmount   decimal.Decimal          `json:"total_amount"`
	Discount      decimal.Decimal          `json:"discount"`
	Tax           decimal.Decimal          `json:"tax"`
	PaymentMethod string                   `json:"payment_method"`
	PaymentStatus string                   `json:"payment_status"`
	Notes         string                   `json:"notes,omitempty"`
	IsActive      bool                     `json:"is_active"`
	CreatedAt     time.Time                `json:"created_at"`
	UpdatedAt     time.Time                `json:"updated_at"`
}

// SaleStatsResponse is the aggregate revenue summary for a range
type SaleStatsResponse struct {
	TotalSales   int64           `json:"total_sales"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	AverageSale  decimal.Decimal `json:"average_sale"`
}

// DailySalesResponse is one day of the trailing sales window
type DailySalesResponse struct {
	Date       string          `json:"date"`
	SalesCount int64           `json:"sales_count"`
	Revenue    decimal.Decimal `json:"revenue"`
}

// SalesBreakdownResponse is the stats summary plus units sold
type SalesBreakdownResponse struct {
	SaleStatsResponse
	TotalItemsSold int64 `json:"total_items_sold"`
}

// ToSaleResponse converts a sale aggregate to its API representation
func ToSaleResponse(sale *sales.Sale, customer *partner.Customer) SaleResponse {
	items := make([]SaleItemResponse, len(sale.Items))
	for i, item := range sale.Items {
		items[i] = SaleItemResponse{
			ID:          item.ID,
			ProductID:   item.ProductID,
			ProductName: item.ProductName,
			SKU:         item.SKU,
			Quantity:    item.Quantity,
			UnitPrice:   item.UnitPrice,
			TotalPrice:  item.TotalPrice,
		}
	}

	resp := SaleResponse{
		ID:            sale.ID,
		SaleNumber:    sale.SaleNumber,
		CustomerID:    sale.CustomerID,
		StoreID:       sale.StoreID,
		Items:         items,
		ItemCount:     sale.ItemCount(),
		TotalQuantity: sale.TotalQuantity(),
		TotalAmount:   sale.TotalAmount,
		Discount:      sale.Discount,
		Tax:           sale.Tax,
		PaymentMethod: sale.PaymentMethod.String(),
		PaymentStatus: sale.PaymentStatus.String(),
		Notes:         sale.Notes,
		IsActive:      sale.IsActive,
		CreatedAt:     sale.CreatedAt,
		UpdatedAt:     sale.UpdatedAt,
	}

	if customer != nil {
		resp.Customer = &CustomerSummaryResponse{
			ID:    customer.ID,
			Name:  customer.Name,
			Phone: customer.Phone,
			Email: customer.Email,
		}
	}

	return resp
}

// ToSaleResponses converts a slice of sales to API representations
func ToSaleResponses(items []sales.Sale) []SaleResponse {
	responses := make([]SaleResponse, len(items))
	for i := range items {
		responses[i] = ToSaleResponse(&items[i], nil)
	}
	return responses
}

// ToSaleStatsResponse converts the stats read model to its API representation
func ToSaleStatsResponse(stats *sales.SaleStats) SaleStatsResponse {
	return SaleStatsResponse{
		TotalSales:   stats.TotalSales,
		TotalRevenue: stats.TotalRevenue,
		AverageSale:  stats.AverageSale,
	}
}

// ToDailySalesResponses converts daily rows to API representations
func ToDailySalesResponses(rows []sales.DailySales) []DailySalesResponse {
	responses := make([]DailySalesResponse, len(rows))
	for i, row := range rows {
		responses[i] = DailySalesResponse{
			Date:       row.Date.Format("2006-01-02"),
			SalesCount: row.SalesCount,
			Revenue:    row.Revenue,
		}
	}
	return responses
}
