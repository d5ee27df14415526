package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/model"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/storage/db"
)

type CreateTransactionParams struct {
	Type        model.TransactionType
	ProductID   string
	ProductName string
	Quantity    int
	Price       decimal.Decimal
	Date        time.Time
}

type TransactionRepository interface {
	WithDB(db db.DB) TransactionRepository
	// CreateTransaction appends a ledger entry. The id is assigned by the store.
	CreateTransaction(ctx context.Context, params CreateTransactionParams) (model.Transaction, error)
	// ListAllTransactions returns the ledger in insertion order.
	ListAllTransactions(ctx context.Context) ([]model.Transaction, error)
	// LockLedger blocks concurrent appends until the surrounding transaction ends.
	LockLedger(ctx context.Context) error
}

type transactionRepository struct {
	db db.DB
}

func NewTransactionRepository(db db.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r transactionRepository) WithDB(db db.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

func (r transactionRepository) CreateTransaction(ctx context.Context, params CreateTransactionParams) (model.Transaction, error) {
	price, err := decimalToNumeric(params.Price)
	if err != nil {
		return model.Transaction{}, fmt.Errorf("convert price: %w", err)
	}

	var id int64
	if err := r.db.QueryRow(ctx, `
		INSERT INTO transactions (type, product_id, product_name, quantity, price, date)
		VALUES (@type, @product_id, @product_name, @quantity, @price, @date)
		RETURNING id
	`, pgx.NamedArgs{
		"type":         string(params.Type),
		"product_id":   params.ProductID,
		"product_name": params.ProductName,
		"quantity":     params.Quantity,
		"price":        price,
		"date":         params.Date,
	}).Scan(&id); err != nil {
		return model.Transaction{}, fmt.Errorf("insert transaction: %w", err)
	}

	return model.Transaction{
		ID:          id,
		Type:        params.Type,
		ProductID:   params.ProductID,
		ProductName: params.ProductName,
		Quantity:    params.Quantity,
		Price:       params.Price,
		Date:        params.Date,
	}, nil
}

func (r transactionRepository) LockLedger(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, `LOCK TABLE transactions IN SHARE MODE`); err != nil {
		return fmt.Errorf("lock transactions: %w", err)
	}
	return nil
}

func (r transactionRepository) ListAllTransactions(ctx context.Context) ([]model.Transaction, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, type, product_id, product_name, quantity, price, date
		FROM transactions
		ORDER BY id
	`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()

	txs := make([]model.Transaction, 0)
	for rows.Next() {
		var (
			t     model.Transaction
			typ   string
			price pgtype.Numeric
		)
		if err := rows.Scan(&t.ID, &typ, &t.ProductID, &t.ProductName, &t.Quantity, &price, &t.Date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}

		t.Type = model.TransactionType(typ)
		if t.Price, err = numericToDecimal(price); err != nil {
			return nil, fmt.Errorf("convert price of transaction %d: %w", t.ID, err)
		}
		t.Date = t.Date.UTC()

		txs = append(txs, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate transactions: %w", err)
	}

	return txs, nil
}
