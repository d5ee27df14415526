package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/model"
)

// ComputeDashboard sums revenue and cost over the ledger and values the stock
// held in products. It keeps no state between calls.
func ComputeDashboard(txs []model.Transaction, products []model.Product) model.Dashboard {
	revenue := decimal.Zero
	cost := decimal.Zero
	for _, t := range txs {
		switch t.Type {
		case model.TransactionTypeSale:
			revenue = revenue.Add(t.Amount())
		case model.TransactionTypePurchase:
			cost = cost.Add(t.Amount())
		}
	}

	inventoryValue := decimal.Zero
	for _, p := range products {
		inventoryValue = inventoryValue.Add(p.InventoryValue())
	}

	return model.Dashboard{
		TotalRevenue:   revenue,
		TotalCost:      cost,
		NetProfit:      revenue.Sub(cost),
		InventoryValue: inventoryValue,
	}
}

// Inventory projects aggregates into the list-inventory view, keeping their order.
func Inventory(products []model.Product, lowStockThreshold int64) []model.InventoryItem {
	items := make([]model.InventoryItem, 0, len(products))
	for _, p := range products {
		items = append(items, model.InventoryItem{
			ProductID:      p.ProductID,
			Name:           p.Name,
			CurrentStock:   p.CurrentStock(),
			AveragePrice:   p.AveragePrice,
			InventoryValue: p.InventoryValue(),
			LowStock:       p.IsLowStock(lowStockThreshold),
		})
	}
	return items
}
