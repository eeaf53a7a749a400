package handler

import (
	"strconv"
	"time"

	salesapp "github.com/retailpos/backend/internal/application/sales"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// ReportHandler handles revenue reporting API endpoints
type ReportHandler struct {
	BaseHandler
	statsService *salesapp.SaleStatsService
}

// NewReportHandler creates a new ReportHandler
func NewReportHandler(statsService *salesapp.SaleStatsService) *ReportHandler {
	return &ReportHandler{statsService: statsService}
}

// RegisterRoutes registers report routes on the API group
func (h *ReportHandler) RegisterRoutes(rg *gin.RouterGroup) {
	reports := rg.Group("/reports/sales")
	{
		reports.GET("/stats", h.GetStats)
		reports.GET("/daily", h.GetDailySales)
		reports.GET("/summary", h.GetSummary)
	}
}

// GetStats returns sale count, revenue and average over an optional range
func (h *ReportHandler) GetStats(c *gin.Context) {
	start, ok := h.parseDate(c, "start")
	if !ok {
		return
	}
	end, ok := h.parseDate(c, "end")
	if !ok {
		return
	}
	if start != nil && end != nil && end.Before(*start) {
		h.BadRequest(c, "end must not be before start")
		return
	}

	stats, err := h.statsService.GetStats(c.Request.Context(), start, end)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, stats)
}

// GetDailySales returns per-day sale counts and revenue for a trailing window
func (h *ReportHandler) GetDailySales(c *gin.Context) {
	days := 7
	if raw := c.Query("days"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil || parsed < 1 || parsed > 365 {
			h.BadRequest(c, "days must be an integer between 1 and 365")
			return
		}
		days = parsed
	}

	daily, err := h.statsService.GetDailySales(c.Request.Context(), days)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, daily)
}

// GetSummary returns the stats plus units sold for a required range,
// optionally scoped to one store
func (h *ReportHandler) GetSummary(c *gin.Context) {
	start, ok := h.parseDate(c, "start")
	if !ok {
		return
	}
	end, ok := h.parseDate(c, "end")
	if !ok {
		return
	}
	if start == nil || end == nil {
		h.BadRequest(c, "start and end are required")
		return
	}
	if end.Before(*start) {
		h.BadRequest(c, "end must not be before start")
		return
	}

	var storeID *uuid.UUID
	if raw := c.Query("store_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			h.BadRequest(c, "Invalid store ID")
			return
		}
		storeID = &id
	}

	summary, err := h.statsService.GetSalesBreakdown(c.Request.Context(), *start, *end, storeID)
	if err != nil {
		h.HandleError(c, err)
		return
	}

	h.Success(c, summary)
}

// parseDate reads an optional YYYY-MM-DD query parameter
func (h *ReportHandler) parseDate(c *gin.Context, name string) (*time.Time, bool) {
	raw := c.Query(name)
	if raw == "" {
		return nil, true
	}
	parsed, err := time.Parse("2006-01-02", raw)
	if err != nil {
		h.BadRequest(c, name+" must be formatted as YYYY-MM-DD")
		return nil, false
	}
	return &parsed, true
}
