package models

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// CatalogStats aggregates the catalog for the stats endpoint.
type CatalogStats struct {
	TotalItems      int   `json:"total_items"`
	TotalCategories int   `json:"total_categories"`
	TotalPrice      int64 `json:"total_price"`
	TotalSavings    int64 `json:"total_savings"`
}

// Product is a single catalog entry.
// Discount is an authored label and is not kept in sync with Price and OldPrice.
type Product struct {
	ID          int    `json:"id" csv:"id"`
	Name        string `json:"name" csv:"name"`
	Price       int    `json:"price" csv:"price"`
	OldPrice    int    `json:"oldPrice" csv:"old_price"`
	Discount    string `json:"discount" csv:"discount"`
	Image       string `json:"image" csv:"image"`
	Description string `json:"description" csv:"description"`
	Category    string `json:"category" csv:"category"`
}

var hundred = decimal.NewFromInt(100)

// DiscountPercent derives the discount from the prices, rounded to a whole percent.
func (p Product) DiscountPercent() int64 {
	if p.OldPrice <= 0 {
		return 0
	}
	ratio := decimal.NewFromInt(int64(p.Price)).Div(decimal.NewFromInt(int64(p.OldPrice)))
	return decimal.NewFromInt(1).Sub(ratio).Mul(hundred).Round(0).IntPart()
}

// DerivedDiscountLabel formats DiscountPercent the way labels are authored, e.g. "-15%".
func (p Product) DerivedDiscountLabel() string {
	return fmt.Sprintf("-%d%%", p.DiscountPercent())
}

// Savings is the difference between the old and the current price.
func (p Product) Savings() int {
	return p.OldPrice - p.Price
}
