package store

import (
	"sort"
	"strings"

	"storefront-backend/models"
)

// FilterState is the current catalog filter selection.
type FilterState struct {
	Query    string `json:"query"`
	Category string `json:"category"`
	Brand    string `json:"brand"`
}

// SetFilter replaces the process-wide filter selection.
func (s *Store) SetFilter(f FilterState) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.searchQuery = f.Query
	s.selectedCategory = f.Category
	s.selectedBrand = f.Brand
}

// Filter returns the current filter selection.
func (s *Store) Filter() FilterState {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return FilterState{Query: s.searchQuery, Category: s.selectedCategory, Brand: s.selectedBrand}
}

// FilteredProducts derives the subsequence of the catalog whose name
// contains the query (case-insensitive) and whose category and brand match
// the selections when set.
func (s *Store) FilteredProducts() []models.Product {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return filterProducts(s.products, s.searchQuery, s.selectedCategory, s.selectedBrand)
}

func filterProducts(products []models.Product, query, category, brand string) []models.Product {
	q := strings.ToLower(query)
	out := make([]models.Product, 0, len(products))
	for _, p := range products {
		if q != "" && !strings.Contains(strings.ToLower(p.Name), q) {
			continue
		}
		if category != "" && p.Category != category {
			continue
		}
		if brand != "" && p.Brand != brand {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Categories returns the distinct non-empty categories present across the
// live catalog, sorted. Facets are never persisted; they change as the
// catalog changes.
func (s *Store) Categories() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinct(s.products, func(p models.Product) string { return p.Category })
}

// Brands returns the distinct non-empty brands across the live catalog.
func (s *Store) Brands() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return distinct(s.products, func(p models.Product) string { return p.Brand })
}

func distinct(products []models.Product, key func(models.Product) string) []string {
	seen := make(map[string]struct{}, len(products))
	var out []string
	for _, p := range products {
		k := key(p)
		if k == "" {
			continue
		}
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
