package model

import (
	"fmt"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionType is the direction of a stock movement.
type TransactionType string

const (
	TransactionTypePurchase TransactionType = "Purchase"
	TransactionTypeSale     TransactionType = "Sale"
)

// Validate implements the enum validation contract.
func (t TransactionType) Validate() error {
	switch t {
	case TransactionTypePurchase, TransactionTypeSale:
		return nil
	default:
		return fmt.Errorf("unknown transaction type: %q", string(t))
	}
}

func (t TransactionType) String() string {
	return string(t)
}

// Transaction is an immutable ledger entry.
type Transaction struct {
	ID          int64           `json:"id"`
	Type        TransactionType `json:"type"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
	Date        time.Time       `json:"date"`
}

// Amount returns quantity times unit price.
func (t Transaction) Amount() decimal.Decimal {
	return t.Price.Mul(decimal.NewFromInt(int64(t.Quantity)))
}
