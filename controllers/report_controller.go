package controllers

import (
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"storefront-backend/apperrors"
	"storefront-backend/services"
	"storefront-backend/store"
)

// ReportController serves the back-office dashboards: sales figures,
// inventory status, the transaction history, and the spreadsheet export.
type ReportController struct {
	store   *store.Store
	reports *services.ReportService
	export  *services.ExportService
}

func NewReportController(st *store.Store, reports *services.ReportService, export *services.ExportService) *ReportController {
	return &ReportController{store: st, reports: reports, export: export}
}

// GetSummary returns the headline figures for the range.
func (rc *ReportController) GetSummary(c *gin.Context) {
	r, err := parseDateRange(c)
	if err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	c.JSON(http.StatusOK, rc.reports.Summary(r))
}

// GetRevenueByDay returns the per-day revenue series.
func (rc *ReportController) GetRevenueByDay(c *gin.Context) {
	r, err := parseDateRange(c)
	if err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"days": rc.reports.RevenueByDay(r)})
}

// GetSalesByMethod returns settle counts per payment method.
func (rc *ReportController) GetSalesByMethod(c *gin.Context) {
	r, err := parseDateRange(c)
	if err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	c.JSON(http.StatusOK, gin.H{"methods": rc.reports.SalesByPaymentMethod(r)})
}

// GetTopProducts returns the best sellers by units; limit defaults to 5.
func (rc *ReportController) GetTopProducts(c *gin.Context) {
	r, err := parseDateRange(c)
	if err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	limit := 5
	if l := c.Query("limit"); l != "" {
		n, convErr := strconv.Atoi(l)
		if convErr != nil || n < 1 {
			respondError(c, apperrors.New(http.StatusBadRequest, "limit must be a positive number", convErr))
			return
		}
		limit = n
	}
	c.JSON(http.StatusOK, gin.H{"products": rc.reports.TopProducts(r, limit)})
}

// GetInventoryStatus returns the live stock buckets.
func (rc *ReportController) GetInventoryStatus(c *gin.Context) {
	c.JSON(http.StatusOK, rc.reports.Inventory())
}

// GetSales lists the transaction history, optionally filtered by query
// text and date range.
func (rc *ReportController) GetSales(c *gin.Context) {
	r, err := parseDateRange(c)
	if err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	filter := services.HistoryFilter{Query: c.Query("q"), Range: r}
	c.JSON(http.StatusOK, gin.H{"sales": rc.export.FilterSales(filter)})
}

// ExportSales streams the filtered history as an .xlsx download.
func (rc *ReportController) ExportSales(c *gin.Context) {
	r, err := parseDateRange(c)
	if err != nil {
		respondError(c, apperrors.Wrap(apperrors.ErrValidation, err))
		return
	}
	filter := services.HistoryFilter{Query: c.Query("q"), Range: r}

	data, err := rc.export.ExportXLSX(filter)
	if err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("sales-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK,
		"application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}
