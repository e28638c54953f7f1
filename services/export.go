package services

import (
	"fmt"
	"strings"

	"github.com/xuri/excelize/v2"

	"storefront-backend/models"
	"storefront-backend/store"
)

const exportSheet = "Sales"

// HistoryFilter narrows the sale history: Query matches the transaction id
// or any item name as a case-insensitive substring, Range bounds the date.
type HistoryFilter struct {
	Query string
	Range DateRange
}

// ExportService filters the sale history and renders it to a spreadsheet.
type ExportService struct {
	store *store.Store
}

func NewExportService(st *store.Store) *ExportService {
	return &ExportService{store: st}
}

// FilterSales returns the sales matching the filter, in mirror order
// (newest first).
func (es *ExportService) FilterSales(f HistoryFilter) []models.Sale {
	q := strings.ToLower(f.Query)
	var out []models.Sale
	for _, s := range es.store.Sales() {
		if !f.Range.contains(s.Date) {
			continue
		}
		if q != "" && !saleMatches(s, q) {
			continue
		}
		out = append(out, s)
	}
	return out
}

func saleMatches(s models.Sale, q string) bool {
	if strings.Contains(strings.ToLower(s.ID), q) {
		return true
	}
	for _, item := range s.Items {
		if strings.Contains(strings.ToLower(item.Name), q) {
			return true
		}
	}
	return false
}

// ExportXLSX renders the filtered sales as a spreadsheet: transaction id,
// formatted date/time, normalized payment label, flattened item summary
// ("Nx name" per line item), and total amount.
func (es *ExportService) ExportXLSX(f HistoryFilter) ([]byte, error) {
	sales := es.FilterSales(f)

	file := excelize.NewFile()
	defer file.Close()
	if err := file.SetSheetName("Sheet1", exportSheet); err != nil {
		return nil, err
	}

	headers := []string{"Transaction ID", "Date", "Payment", "Items", "Total Amount"}
	for i, h := range headers {
		cell, err := excelize.CoordinatesToCellName(i+1, 1)
		if err != nil {
			return nil, err
		}
		if err := file.SetCellValue(exportSheet, cell, h); err != nil {
			return nil, err
		}
	}

	for row, s := range sales {
		values := []interface{}{
			s.ID,
			s.Date.Format("2006-01-02 15:04:05"),
			s.PaymentMethod.Label(),
			itemSummary(s.Items),
			s.Total,
		}
		for col, v := range values {
			cell, err := excelize.CoordinatesToCellName(col+1, row+2)
			if err != nil {
				return nil, err
			}
			if err := file.SetCellValue(exportSheet, cell, v); err != nil {
				return nil, err
			}
		}
	}

	buf, err := file.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func itemSummary(items []models.CartItem) string {
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprintf("%dx %s", item.Quantity, item.Name))
	}
	return strings.Join(parts, ", ")
}
