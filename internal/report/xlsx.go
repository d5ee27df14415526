// Package report renders inventory snapshots into downloadable documents.
package report

import (
	"fmt"
	"io"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/model"
)

const (
	InventorySheet = "Inventory"
	DashboardSheet = "Dashboard"

	ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
)

var inventoryHeader = []any{"Product ID", "Name", "Current Stock", "Average Price", "Inventory Value", "Low Stock"}

// WriteInventoryXLSX writes a workbook with one row per product on the
// Inventory sheet and the four ledger totals on the Dashboard sheet. Money is
// written as 2dp text so spreadsheets never round it through float.
func WriteInventoryXLSX(w io.Writer, items []model.InventoryItem, dash model.Dashboard) (err error) {
	f := excelize.NewFile()
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("close workbook: %w", cerr)
		}
	}()

	// NewFile starts with a single "Sheet1".
	if err := f.SetSheetName("Sheet1", InventorySheet); err != nil {
		return fmt.Errorf("rename sheet: %w", err)
	}
	if err := writeInventory(f, items); err != nil {
		return err
	}

	if _, err := f.NewSheet(DashboardSheet); err != nil {
		return fmt.Errorf("new sheet %s: %w", DashboardSheet, err)
	}
	if err := writeDashboard(f, dash); err != nil {
		return err
	}

	if _, err := f.WriteTo(w); err != nil {
		return fmt.Errorf("write workbook: %w", err)
	}
	return nil
}

func writeInventory(f *excelize.File, items []model.InventoryItem) error {
	headerStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	if err != nil {
		return fmt.Errorf("new header style: %w", err)
	}
	lowStockStyle, err := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true, Color: "C00000"}})
	if err != nil {
		return fmt.Errorf("new low stock style: %w", err)
	}

	if err := f.SetSheetRow(InventorySheet, "A1", &inventoryHeader); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := f.SetRowStyle(InventorySheet, 1, 1, headerStyle); err != nil {
		return fmt.Errorf("style header: %w", err)
	}

	for i, item := range items {
		rowNum := i + 2
		cell, err := excelize.CoordinatesToCellName(1, rowNum)
		if err != nil {
			return err
		}

		lowStock := "no"
		if item.LowStock {
			lowStock = "yes"
		}
		row := []any{
			item.ProductID,
			item.Name,
			item.CurrentStock,
			money(item.AveragePrice),
			money(item.InventoryValue),
			lowStock,
		}
		if err := f.SetSheetRow(InventorySheet, cell, &row); err != nil {
			return fmt.Errorf("write row for product %s: %w", item.ProductID, err)
		}

		if item.LowStock {
			if err := f.SetRowStyle(InventorySheet, rowNum, rowNum, lowStockStyle); err != nil {
				return fmt.Errorf("style row for product %s: %w", item.ProductID, err)
			}
		}
	}

	return f.SetColWidth(InventorySheet, "A", "F", 18)
}

func writeDashboard(f *excelize.File, dash model.Dashboard) error {
	rows := [][]any{
		{"Total Revenue", money(dash.TotalRevenue)},
		{"Total Cost", money(dash.TotalCost)},
		{"Net Profit", money(dash.NetProfit)},
		{"Inventory Value", money(dash.InventoryValue)},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		if err != nil {
			return err
		}
		if err := f.SetSheetRow(DashboardSheet, cell, &row); err != nil {
			return fmt.Errorf("write dashboard row %d: %w", i+1, err)
		}
	}
	return f.SetColWidth(DashboardSheet, "A", "B", 18)
}

func money(d decimal.Decimal) string {
	return d.StringFixed(2)
}
