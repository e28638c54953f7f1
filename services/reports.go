package services

import (
	"sort"
	"time"

	"storefront-backend/models"
	"storefront-backend/store"
)

// Products with stock below this (but above zero) count as low stock.
const lowStockThreshold = 10

// DateRange bounds a report; zero values leave the bound open. End is
// inclusive to the end of its day.
type DateRange struct {
	Start time.Time
	End   time.Time
}

func (r DateRange) contains(t time.Time) bool {
	if !r.Start.IsZero() {
		day := time.Date(r.Start.Year(), r.Start.Month(), r.Start.Day(), 0, 0, 0, 0, r.Start.Location())
		if t.Before(day) {
			return false
		}
	}
	if !r.End.IsZero() {
		day := time.Date(r.End.Year(), r.End.Month(), r.End.Day(), 23, 59, 59, int(time.Second-time.Nanosecond), r.End.Location())
		if t.After(day) {
			return false
		}
	}
	return true
}

// SalesSummary are the headline figures over a date range. Profit is
// estimated against the current catalog cost, not a historical one, so a
// later cost edit shifts the estimate.
type SalesSummary struct {
	TotalRevenue      float64 `json:"totalRevenue"`
	TotalProfit       float64 `json:"totalProfit"`
	OrderCount        int     `json:"orderCount"`
	AverageOrderValue float64 `json:"averageOrderValue"`
}

// DayRevenue is one day's revenue on the by-day series.
type DayRevenue struct {
	Day     string  `json:"day"`
	Revenue float64 `json:"revenue"`
}

// MethodCount is the number of sales settled with one payment method.
type MethodCount struct {
	Method models.PaymentMethod `json:"method"`
	Count  int                  `json:"count"`
}

// ProductQuantity is units sold of one product, by name.
type ProductQuantity struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// InventoryStatus buckets the live catalog by stock level.
type InventoryStatus struct {
	InStock    int `json:"inStock"`
	LowStock   int `json:"lowStock"`
	OutOfStock int `json:"outOfStock"`
}

// ReportService derives sales and inventory figures from the store mirror.
type ReportService struct {
	store *store.Store
}

func NewReportService(st *store.Store) *ReportService {
	return &ReportService{store: st}
}

func (rs *ReportService) salesIn(r DateRange) []models.Sale {
	var out []models.Sale
	for _, s := range rs.store.Sales() {
		if r.contains(s.Date) {
			out = append(out, s)
		}
	}
	return out
}

// Summary computes the headline figures for the range.
func (rs *ReportService) Summary(r DateRange) SalesSummary {
	sales := rs.salesIn(r)
	products := rs.store.Products()
	costOf := make(map[string]float64, len(products))
	for _, p := range products {
		costOf[p.ID] = p.Cost
	}

	var summary SalesSummary
	var totalCost float64
	for _, s := range sales {
		summary.TotalRevenue += s.Total
		for _, item := range s.Items {
			totalCost += costOf[item.ID] * float64(item.Quantity)
		}
	}
	summary.OrderCount = len(sales)
	summary.TotalProfit = summary.TotalRevenue - totalCost
	if summary.OrderCount > 0 {
		summary.AverageOrderValue = summary.TotalRevenue / float64(summary.OrderCount)
	}
	return summary
}

// RevenueByDay aggregates revenue per calendar day, ascending.
func (rs *ReportService) RevenueByDay(r DateRange) []DayRevenue {
	byDay := make(map[string]float64)
	for _, s := range rs.salesIn(r) {
		byDay[s.Date.Format("2006-01-02")] += s.Total
	}
	days := make([]string, 0, len(byDay))
	for d := range byDay {
		days = append(days, d)
	}
	sort.Strings(days)
	out := make([]DayRevenue, 0, len(days))
	for _, d := range days {
		out = append(out, DayRevenue{Day: d, Revenue: byDay[d]})
	}
	return out
}

// SalesByPaymentMethod counts settled sales per method, descending.
func (rs *ReportService) SalesByPaymentMethod(r DateRange) []MethodCount {
	counts := make(map[models.PaymentMethod]int)
	for _, s := range rs.salesIn(r) {
		counts[s.PaymentMethod]++
	}
	out := make([]MethodCount, 0, len(counts))
	for m, c := range counts {
		out = append(out, MethodCount{Method: m, Count: c})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Method < out[j].Method
	})
	return out
}

// TopProducts returns the n best sellers by units over the range.
func (rs *ReportService) TopProducts(r DateRange, n int) []ProductQuantity {
	units := make(map[string]int)
	for _, s := range rs.salesIn(r) {
		for _, item := range s.Items {
			units[item.Name] += item.Quantity
		}
	}
	out := make([]ProductQuantity, 0, len(units))
	for name, q := range units {
		out = append(out, ProductQuantity{Name: name, Quantity: q})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Quantity != out[j].Quantity {
			return out[i].Quantity > out[j].Quantity
		}
		return out[i].Name < out[j].Name
	})
	if n > 0 && len(out) > n {
		out = out[:n]
	}
	return out
}

// Inventory buckets the current catalog by stock level; it is a live view,
// not bounded by any date range.
func (rs *ReportService) Inventory() InventoryStatus {
	var status InventoryStatus
	for _, p := range rs.store.Products() {
		switch {
		case p.Stock <= 0:
			status.OutOfStock++
		case p.Stock < lowStockThreshold:
			status.LowStock++
		default:
			status.InStock++
		}
	}
	return status
}
