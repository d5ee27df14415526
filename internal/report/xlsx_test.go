package report_test

import (
	"bytes"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/model"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/report"
)

func TestWriteInventoryXLSX(t *testing.T) {
	items := []model.InventoryItem{
		{
			ProductID:      "P1",
			Name:           "Widget",
			CurrentStock:   6,
			AveragePrice:   decimal.RequireFromString("2.1"),
			InventoryValue: decimal.RequireFromString("12.6"),
		},
		{
			ProductID:      "P2",
			Name:           "Gadget",
			CurrentStock:   1,
			AveragePrice:   decimal.RequireFromString("5"),
			InventoryValue: decimal.RequireFromString("5"),
			LowStock:       true,
		},
	}
	dash := model.Dashboard{
		TotalRevenue:   decimal.RequireFromString("27"),
		TotalCost:      decimal.RequireFromString("20"),
		NetProfit:      decimal.RequireFromString("7"),
		InventoryValue: decimal.RequireFromString("17.6"),
	}

	var buf bytes.Buffer
	require.NoError(t, report.WriteInventoryXLSX(&buf, items, dash))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	assert.Equal(t, []string{report.InventorySheet, report.DashboardSheet}, f.GetSheetList())

	rows, err := f.GetRows(report.InventorySheet)
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, []string{"Product ID", "Name", "Current Stock", "Average Price", "Inventory Value", "Low Stock"}, rows[0])
	assert.Equal(t, []string{"P1", "Widget", "6", "2.10", "12.60", "no"}, rows[1])
	assert.Equal(t, []string{"P2", "Gadget", "1", "5.00", "5.00", "yes"}, rows[2])

	dashRows, err := f.GetRows(report.DashboardSheet)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		{"Total Revenue", "27.00"},
		{"Total Cost", "20.00"},
		{"Net Profit", "7.00"},
		{"Inventory Value", "17.60"},
	}, dashRows)
}

func TestWriteInventoryXLSXEmpty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, report.WriteInventoryXLSX(&buf, nil, model.Dashboard{}))

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	t.Cleanup(func() { _ = f.Close() })

	rows, err := f.GetRows(report.InventorySheet)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
