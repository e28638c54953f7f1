package models

import "errors"

// Validation errors returned by Product.Validate. A mutation that would
// violate one of these must be rejected before any state changes.
var (
	ErrNameRequired     = errors.New("product name is required")
	ErrNegativePrice    = errors.New("price must not be negative")
	ErrNegativeCost     = errors.New("cost must not be negative")
	ErrNegativeStock    = errors.New("stock must not be negative")
	ErrPriceBelowCost   = errors.New("price must not be below cost")
	ErrNegativeDiscount = errors.New("discount price must not be negative")
)

// Product is a catalog entry. ID is the authoritative identity assigned by
// the gateway; before remote confirmation it holds a client-generated
// temporary value.
type Product struct {
	ID            string  `json:"id"`
	Code          string  `json:"code,omitempty"`
	Name          string  `json:"name"`
	Brand         string  `json:"brand"`
	Category      string  `json:"category"`
	Price         float64 `json:"price"`
	Cost          float64 `json:"cost"`
	Stock         int     `json:"stock"`
	Description   string  `json:"description"`
	Image         string  `json:"image"`
	IsSale        bool    `json:"isSale"`
	DiscountPrice float64 `json:"discountPrice,omitempty"`
}

// Validate checks the catalog invariants. Stock may later go negative
// through sales; the non-negative check applies to creation and edits only.
func (p *Product) Validate() error {
	if p.Name == "" {
		return ErrNameRequired
	}
	if p.Price < 0 {
		return ErrNegativePrice
	}
	if p.Cost < 0 {
		return ErrNegativeCost
	}
	if p.Stock < 0 {
		return ErrNegativeStock
	}
	if p.Price < p.Cost {
		return ErrPriceBelowCost
	}
	if p.IsSale && p.DiscountPrice < 0 {
		return ErrNegativeDiscount
	}
	return nil
}

// UnitPrice is the effective selling price: the discount price when the
// product is on sale, the regular price otherwise.
func (p *Product) UnitPrice() float64 {
	if p.IsSale && p.DiscountPrice > 0 {
		return p.DiscountPrice
	}
	return p.Price
}

// ProductPatch enumerates the mutable product fields. Only non-nil fields
// are applied locally and sent to the gateway, so unspecified fields are
// never overwritten remotely.
type ProductPatch struct {
	Code          *string  `json:"code,omitempty"`
	Name          *string  `json:"name,omitempty"`
	Brand         *string  `json:"brand,omitempty"`
	Category      *string  `json:"category,omitempty"`
	Price         *float64 `json:"price,omitempty"`
	Cost          *float64 `json:"cost,omitempty"`
	Stock         *int     `json:"stock,omitempty"`
	Description   *string  `json:"description,omitempty"`
	Image         *string  `json:"image,omitempty"`
	IsSale        *bool    `json:"isSale,omitempty"`
	DiscountPrice *float64 `json:"discountPrice,omitempty"`
}

// Apply merges the set fields into p.
func (patch *ProductPatch) Apply(p *Product) {
	if patch.Code != nil {
		p.Code = *patch.Code
	}
	if patch.Name != nil {
		p.Name = *patch.Name
	}
	if patch.Brand != nil {
		p.Brand = *patch.Brand
	}
	if patch.Category != nil {
		p.Category = *patch.Category
	}
	if patch.Price != nil {
		p.Price = *patch.Price
	}
	if patch.Cost != nil {
		p.Cost = *patch.Cost
	}
	if patch.Stock != nil {
		p.Stock = *patch.Stock
	}
	if patch.Description != nil {
		p.Description = *patch.Description
	}
	if patch.Image != nil {
		p.Image = *patch.Image
	}
	if patch.IsSale != nil {
		p.IsSale = *patch.IsSale
	}
	if patch.DiscountPrice != nil {
		p.DiscountPrice = *patch.DiscountPrice
	}
}

// IsEmpty reports whether no field is set.
func (patch *ProductPatch) IsEmpty() bool {
	return patch.Code == nil && patch.Name == nil && patch.Brand == nil &&
		patch.Category == nil && patch.Price == nil && patch.Cost == nil &&
		patch.Stock == nil && patch.Description == nil && patch.Image == nil &&
		patch.IsSale == nil && patch.DiscountPrice == nil
}
