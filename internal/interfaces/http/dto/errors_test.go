package dto

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetHTTPStatus(t *testing.T) {
	tests := []struct {
		name string
		code string
		want int
	}{
		{"not found", ErrCodeNotFound, http.StatusNotFound},
		{"already exists", ErrCodeAlreadyExists, http.StatusConflict},
		{"concurrency conflict", ErrCodeConcurrencyConflict, http.StatusConflict},
		{"insufficient stock", ErrCodeInsufficientStock, http.StatusUnprocessableEntity},
		{"invalid state", ErrCodeInvalidState, http.StatusUnprocessableEntity},
		{"invalid input", ErrCodeInvalidInput, http.StatusBadRequest},
		{"validation", ErrCodeValidation, http.StatusBadRequest},
		{"transaction failed", ErrCodeTransactionFailed, http.StatusInternalServerError},
		{"unknown code falls back to 500", "ERR_SOMETHING_ELSE", http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, GetHTTPStatus(tt.code))
		})
	}
}

func TestNormalizeErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode("NOT_FOUND"))
	assert.Equal(t, ErrCodeInsufficientStock, NormalizeErrorCode("INSUFFICIENT_STOCK"))
	assert.Equal(t, ErrCodeTransactionFailed, NormalizeErrorCode("TRANSACTION_FAILED"))
	// Already normalized codes pass through untouched
	assert.Equal(t, ErrCodeNotFound, NormalizeErrorCode(ErrCodeNotFound))
	assert.Equal(t, "CUSTOM_CODE", NormalizeErrorCode("CUSTOM_CODE"))
}

// Every code the aggregates can emit must resolve to a 4xx-mapped wire
// code; anything that falls through ends up a 500 at the handler.
func TestDomainCodesMapToClientErrors(t *testing.T) {
	inputCodes := []string{
		"INVALID_AMOUNT", "INVALID_CODE", "INVALID_CUSTOMER", "INVALID_DISCOUNT",
		"INVALID_EMAIL", "INVALID_NAME", "INVALID_PAYMENT_METHOD",
		"INVALID_PAYMENT_STATUS", "INVALID_PHONE", "INVALID_PRICE",
		"INVALID_PRODUCT", "INVALID_PRODUCT_NAME", "INVALID_QUANTITY",
		"INVALID_SALE_NUMBER", "INVALID_SKU", "INVALID_STOCK", "INVALID_TAX",
		"NO_ITEMS",
	}
	for _, code := range inputCodes {
		t.Run(code, func(t *testing.T) {
			assert.Equal(t, ErrCodeInvalidInput, NormalizeErrorCode(code))
			assert.Equal(t, http.StatusBadRequest, GetHTTPStatus(NormalizeErrorCode(code)))
		})
	}

	stateCodes := []string{
		"ALREADY_ACTIVE", "ALREADY_DISCONTINUED", "ALREADY_INACTIVE",
		"CANNOT_ACTIVATE", "CANNOT_DEACTIVATE",
	}
	for _, code := range stateCodes {
		t.Run(code, func(t *testing.T) {
			assert.Equal(t, ErrCodeInvalidState, NormalizeErrorCode(code))
			assert.Equal(t, http.StatusUnprocessableEntity, GetHTTPStatus(NormalizeErrorCode(code)))
		})
	}
}

func TestNewSuccessResponseWithMeta(t *testing.T) {
	resp := NewSuccessResponseWithMeta([]string{"a", "b"}, 5, 1, 2)

	assert.True(t, resp.Success)
	assert.Equal(t, int64(5), resp.Meta.Total)
	assert.Equal(t, 3, resp.Meta.TotalPages)
}

func TestNewErrorResponseWithRequestID(t *testing.T) {
	resp := NewErrorResponseWithRequestID(ErrCodeNotFound, "sale not found", "req-123")

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeNotFound, resp.Error.Code)
	assert.Equal(t, "sale not found", resp.Error.Message)
	assert.Equal(t, "req-123", resp.Error.RequestID)
}

func TestNewValidationErrorResponse(t *testing.T) {
	details := []ValidationDetail{{Field: "payment_method", Message: "Must be one of: cash card upi emi bank_transfer cheque"}}
	resp := NewValidationErrorResponse("Request validation failed", "req-456", details)

	assert.False(t, resp.Success)
	assert.Equal(t, ErrCodeValidation, resp.Error.Code)
	assert.Len(t, resp.Error.Details, 1)
	assert.Equal(t, "payment_method", resp.Error.Details[0].Field)
}
