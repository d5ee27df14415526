package model

import "github.com/shopspring/decimal"

// DefaultLowStockThreshold is the stock level at or below which a product is flagged.
const DefaultLowStockThreshold int64 = 5

// Product is the running aggregate of every transaction recorded for one product id.
type Product struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	TotalPurchased int64           `json:"total_purchased"`
	TotalSold      int64           `json:"total_sold"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	AveragePrice   decimal.Decimal `json:"average_price"`
}

// CurrentStock may be negative when more units were sold than purchased.
func (p Product) CurrentStock() int64 {
	return p.TotalPurchased - p.TotalSold
}

// InventoryValue values the current stock at the average purchase price.
func (p Product) InventoryValue() decimal.Decimal {
	return decimal.NewFromInt(p.CurrentStock()).Mul(p.AveragePrice)
}

// IsLowStock reports whether current stock is at or below threshold.
func (p Product) IsLowStock(threshold int64) bool {
	return p.CurrentStock() <= threshold
}

// InventoryItem is the list-inventory view of a product.
type InventoryItem struct {
	ProductID      string          `json:"product_id"`
	Name           string          `json:"name"`
	CurrentStock   int64           `json:"current_stock"`
	AveragePrice   decimal.Decimal `json:"average_price"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
	LowStock       bool            `json:"low_stock"`
}
