package ledger_test

import (
	"math/rand/v2"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/ledger"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/model"
)

func TestComputeDashboard(t *testing.T) {
	t.Run("Should total the widget scenario", func(t *testing.T) {
		txs := []model.Transaction{
			purchase("P1", "Widget", 10, "2.00"),
			sale("P1", "Widget", 4, "5.00"),
		}

		d := ledger.ComputeDashboard(txs, ledger.Replay(txs))

		assert.Equal(t, "20.00", d.TotalRevenue.StringFixed(2))
		assert.Equal(t, "20.00", d.TotalCost.StringFixed(2))
		assert.Equal(t, "0.00", d.NetProfit.StringFixed(2))
		assert.Equal(t, "12.00", d.InventoryValue.StringFixed(2))
	})

	t.Run("Should skip unknown transaction types", func(t *testing.T) {
		refund := sale("P1", "Widget", 2, "5.00")
		refund.Type = "Refund"
		txs := []model.Transaction{
			purchase("P1", "Widget", 10, "2.00"),
			refund,
		}

		d := ledger.ComputeDashboard(txs, nil)

		assert.True(t, d.TotalRevenue.IsZero())
		assert.Equal(t, "20.00", d.TotalCost.StringFixed(2))
	})

	t.Run("Should be zero for an empty ledger", func(t *testing.T) {
		d := ledger.ComputeDashboard(nil, nil)

		assert.True(t, d.TotalRevenue.IsZero())
		assert.True(t, d.TotalCost.IsZero())
		assert.True(t, d.NetProfit.IsZero())
		assert.True(t, d.InventoryValue.IsZero())
	})

	t.Run("Should match independent sums and be idempotent", func(t *testing.T) {
		r := rand.New(rand.NewPCG(3, 4))
		txs := randomLedger(r, 150)
		products := ledger.Replay(txs)

		revenue, cost := decimal.Zero, decimal.Zero
		for _, tx := range txs {
			amount := tx.Price.Mul(decimal.NewFromInt(int64(tx.Quantity)))
			if tx.Type == model.TransactionTypeSale {
				revenue = revenue.Add(amount)
			} else {
				cost = cost.Add(amount)
			}
		}
		value := decimal.Zero
		for _, p := range products {
			value = value.Add(decimal.NewFromInt(p.TotalPurchased - p.TotalSold).Mul(p.AveragePrice))
		}

		first := ledger.ComputeDashboard(txs, products)
		second := ledger.ComputeDashboard(txs, products)

		assert.True(t, revenue.Equal(first.TotalRevenue))
		assert.True(t, cost.Equal(first.TotalCost))
		assert.True(t, revenue.Sub(cost).Equal(first.NetProfit))
		assert.True(t, value.Equal(first.InventoryValue))
		assert.Equal(t, first, second)
	})
}

func TestInventory(t *testing.T) {
	products := ledger.Replay([]model.Transaction{
		purchase("P1", "Widget", 10, "2.00"),
		sale("P1", "Widget", 4, "5.00"),
		purchase("P2", "Gadget", 3, "1.50"),
	})

	items := ledger.Inventory(products, model.DefaultLowStockThreshold)

	require.Len(t, items, 2)
	assert.Equal(t, "P1", items[0].ProductID)
	assert.Equal(t, "Widget", items[0].Name)
	assert.Equal(t, int64(6), items[0].CurrentStock)
	assert.Equal(t, "2.00", items[0].AveragePrice.StringFixed(2))
	assert.Equal(t, "12.00", items[0].InventoryValue.StringFixed(2))
	assert.False(t, items[0].LowStock)

	assert.Equal(t, int64(3), items[1].CurrentStock)
	assert.Equal(t, "4.50", items[1].InventoryValue.StringFixed(2))
	assert.True(t, items[1].LowStock)

	assert.Empty(t, ledger.Inventory(nil, model.DefaultLowStockThreshold))
}
