package http

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/model"
)

// RecordTransactionRequest uses pointers so a missing field is told apart
// from a zero value.
type RecordTransactionRequest struct {
	Type        *string          `json:"type" validate:"required"`
	ProductID   *string          `json:"productId" validate:"required"`
	ProductName *string          `json:"productName" validate:"required"`
	Quantity    *int             `json:"quantity" validate:"required"`
	Price       *decimal.Decimal `json:"price" validate:"required"`
}

type TransactionResponse struct {
	ID          int64           `json:"id"`
	Type        string          `json:"type"`
	ProductID   string          `json:"productId"`
	ProductName string          `json:"productName"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Date        time.Time       `json:"date"`
}

type ProductResponse struct {
	ProductID      string          `json:"productId"`
	Name           string          `json:"name"`
	TotalPurchased int64           `json:"totalPurchased"`
	TotalSold      int64           `json:"totalSold"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	AveragePrice   decimal.Decimal `json:"averagePrice"`
	CurrentStock   int64           `json:"currentStock"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
}

type RecordTransactionResponse struct {
	Transaction TransactionResponse `json:"transaction"`
	Product     ProductResponse     `json:"product"`
}

type InventoryItemResponse struct {
	ProductID      string          `json:"productId"`
	Name           string          `json:"name"`
	CurrentStock   int64           `json:"currentStock"`
	AveragePrice   decimal.Decimal `json:"averagePrice"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
	LowStock       bool            `json:"lowStock"`
}

type DashboardTotals struct {
	TotalRevenue   string `json:"totalRevenue"`
	TotalCost      string `json:"totalCost"`
	NetProfit      string `json:"netProfit"`
	InventoryValue string `json:"inventoryValue"`
}

type DashboardResponse struct {
	TotalRevenue   decimal.Decimal `json:"totalRevenue"`
	TotalCost      decimal.Decimal `json:"totalCost"`
	NetProfit      decimal.Decimal `json:"netProfit"`
	InventoryValue decimal.Decimal `json:"inventoryValue"`
	Formatted      DashboardTotals `json:"formatted"`
}

type RebuildResponse struct {
	Rebuilt int `json:"rebuilt"`
}

type HealthResponse struct {
	Status string `json:"status"`
}

func newTransactionResponse(t model.Transaction) TransactionResponse {
	return TransactionResponse{
		ID:          t.ID,
		Type:        t.Type.String(),
		ProductID:   t.ProductID,
		ProductName: t.ProductName,
		Quantity:    t.Quantity,
		Price:       t.Price,
		Date:        t.Date,
	}
}

func newProductResponse(p model.Product) ProductResponse {
	return ProductResponse{
		ProductID:      p.ProductID,
		Name:           p.Name,
		TotalPurchased: p.TotalPurchased,
		TotalSold:      p.TotalSold,
		TotalCost:      p.TotalCost,
		TotalRevenue:   p.TotalRevenue,
		AveragePrice:   p.AveragePrice,
		CurrentStock:   p.CurrentStock(),
		InventoryValue: p.InventoryValue(),
	}
}

func newInventoryItemResponse(item model.InventoryItem) InventoryItemResponse {
	return InventoryItemResponse{
		ProductID:      item.ProductID,
		Name:           item.Name,
		CurrentStock:   item.CurrentStock,
		AveragePrice:   item.AveragePrice,
		InventoryValue: item.InventoryValue,
		LowStock:       item.LowStock,
	}
}

func newDashboardResponse(d model.Dashboard) DashboardResponse {
	return DashboardResponse{
		TotalRevenue:   d.TotalRevenue,
		TotalCost:      d.TotalCost,
		NetProfit:      d.NetProfit,
		InventoryValue: d.InventoryValue,
		Formatted: DashboardTotals{
			TotalRevenue:   d.TotalRevenue.StringFixed(2),
			TotalCost:      d.TotalCost.StringFixed(2),
			NetProfit:      d.NetProfit.StringFixed(2),
			InventoryValue: d.InventoryValue.StringFixed(2),
		},
	}
}
