package event

import (
	"context"
	"log/slog"
	"time"

	"github.com/shopspring/decimal"
)

const TopicTransactionRecorded = "inventory.transaction.recorded"

type TransactionRecordedEvent struct {
	TransactionID int64           `json:"transaction_id"`
	Type          string          `json:"type"`
	ProductID     string          `json:"product_id"`
	ProductName   string          `json:"product_name"`
	Quantity      int             `json:"quantity"`
	Price         decimal.Decimal `json:"price"`
	Date          time.Time       `json:"date"`
	CurrentStock  int64           `json:"current_stock"`
	LowStock      bool            `json:"low_stock"`
}

func (s *Service) handleTransactionRecordedEvent(ctx context.Context, ev TransactionRecordedEvent) error {
	attrs := []any{
		slog.Int64("transaction_id", ev.TransactionID),
		slog.String("type", ev.Type),
		slog.String("product_id", ev.ProductID),
		slog.Int64("current_stock", ev.CurrentStock),
	}

	if ev.LowStock {
		s.logger.WarnContext(ctx, "product stock is low", attrs...)
		return nil
	}

	s.logger.InfoContext(ctx, "transaction recorded", attrs...)
	return nil
}
