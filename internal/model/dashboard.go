package model

import "github.com/shopspring/decimal"

// Dashboard holds the four ledger-wide totals.
type Dashboard struct {
	TotalRevenue   decimal.Decimal `json:"total_revenue"`
	TotalCost      decimal.Decimal `json:"total_cost"`
	NetProfit      decimal.Decimal `json:"net_profit"`
	InventoryValue decimal.Decimal `json:"inventory_value"`
}
