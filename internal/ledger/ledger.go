// Package ledger folds transactions into product aggregates and computes
// dashboard totals. Every function is pure.
package ledger

import (
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/model"
)

// Apply returns the aggregate that results from adding t to existing.
// A nil existing aggregate starts from zero counters named after the transaction.
// A transaction of unknown type leaves the counters unchanged.
func Apply(existing *model.Product, t model.Transaction) model.Product {
	var p model.Product
	if existing != nil {
		p = *existing
	} else {
		p = model.Product{
			ProductID:    t.ProductID,
			Name:         t.ProductName,
			TotalCost:    decimal.Zero,
			TotalRevenue: decimal.Zero,
			AveragePrice: decimal.Zero,
		}
	}

	amount := t.Amount()
	switch t.Type {
	case model.TransactionTypePurchase:
		p.TotalPurchased += int64(t.Quantity)
		p.TotalCost = p.TotalCost.Add(amount)
	case model.TransactionTypeSale:
		p.TotalSold += int64(t.Quantity)
		p.TotalRevenue = p.TotalRevenue.Add(amount)
	}

	p.AveragePrice = AveragePrice(p.TotalCost, p.TotalPurchased)

	return p
}

// AveragePrice is totalCost/totalPurchased, or zero when nothing was purchased.
func AveragePrice(totalCost decimal.Decimal, totalPurchased int64) decimal.Decimal {
	if totalPurchased <= 0 {
		return decimal.Zero
	}
	return totalCost.Div(decimal.NewFromInt(totalPurchased))
}

// Replay rebuilds every aggregate from the ledger. Transactions must be in
// insertion order; aggregates are returned in order of first appearance.
func Replay(txs []model.Transaction) []model.Product {
	index := make(map[string]int)
	products := make([]model.Product, 0)

	for _, t := range txs {
		i, ok := index[t.ProductID]
		if !ok {
			products = append(products, Apply(nil, t))
			index[t.ProductID] = len(products) - 1
			continue
		}
		products[i] = Apply(&products[i], t)
	}

	return products
}
