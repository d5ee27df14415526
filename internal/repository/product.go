package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgtype"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/model"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/storage/db"
)

type ProductRepository interface {
	WithDB(db db.DB) ProductRepository
	// LockProduct serializes writers of one aggregate until the surrounding
	// transaction ends. It works for product ids that have no row yet.
	LockProduct(ctx context.Context, productID string) error
	// GetProduct reports found=false for a product id that was never recorded.
	GetProduct(ctx context.Context, productID string) (product model.Product, found bool, err error)
	UpsertProduct(ctx context.Context, product model.Product) error
	ListAllProducts(ctx context.Context) ([]model.Product, error)
}

type productRepository struct {
	db db.DB
}

func NewProductRepository(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) WithDB(db db.DB) ProductRepository {
	return &productRepository{db: db}
}

func (r productRepository) LockProduct(ctx context.Context, productID string) error {
	if _, err := r.db.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext($1))`, productID); err != nil {
		return fmt.Errorf("lock product %s: %w", productID, err)
	}
	return nil
}

const selectProductColumns = `
	SELECT product_id, name, total_purchased, total_sold, total_cost, total_revenue, average_price
	FROM products
`

func (r productRepository) GetProduct(ctx context.Context, productID string) (model.Product, bool, error) {
	row := r.db.QueryRow(ctx, selectProductColumns+` WHERE product_id = $1`, productID)

	product, err := scanProduct(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return model.Product{}, false, nil
	}
	if err != nil {
		return model.Product{}, false, fmt.Errorf("get product %s: %w", productID, err)
	}

	return product, true, nil
}

func (r productRepository) UpsertProduct(ctx context.Context, product model.Product) error {
	totalCost, err := decimalToNumeric(product.TotalCost)
	if err != nil {
		return fmt.Errorf("convert total cost: %w", err)
	}
	totalRevenue, err := decimalToNumeric(product.TotalRevenue)
	if err != nil {
		return fmt.Errorf("convert total revenue: %w", err)
	}
	averagePrice, err := decimalToNumeric(product.AveragePrice)
	if err != nil {
		return fmt.Errorf("convert average price: %w", err)
	}

	args := pgx.NamedArgs{
		"product_id":      product.ProductID,
		"name":            product.Name,
		"total_purchased": product.TotalPurchased,
		"total_sold":      product.TotalSold,
		"total_cost":      totalCost,
		"total_revenue":   totalRevenue,
		"average_price":   averagePrice,
	}

	if _, err := r.db.Exec(ctx, `
		INSERT INTO products (product_id, name, total_purchased, total_sold, total_cost, total_revenue, average_price)
		VALUES (@product_id, @name, @total_purchased, @total_sold, @total_cost, @total_revenue, @average_price)
		ON CONFLICT (product_id) DO UPDATE SET
			name            = EXCLUDED.name,
			total_purchased = EXCLUDED.total_purchased,
			total_sold      = EXCLUDED.total_sold,
			total_cost      = EXCLUDED.total_cost,
			total_revenue   = EXCLUDED.total_revenue,
			average_price   = EXCLUDED.average_price
	`, args); err != nil {
		return fmt.Errorf("upsert product %s: %w", product.ProductID, err)
	}

	return nil
}

func (r productRepository) ListAllProducts(ctx context.Context) ([]model.Product, error) {
	rows, err := r.db.Query(ctx, selectProductColumns)
	if err != nil {
		return nil, fmt.Errorf("query products: %w", err)
	}
	defer rows.Close()

	products := make([]model.Product, 0)
	for rows.Next() {
		product, err := scanProduct(rows)
		if err != nil {
			return nil, fmt.Errorf("scan product: %w", err)
		}
		products = append(products, product)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate products: %w", err)
	}

	return products, nil
}

func scanProduct(row pgx.Row) (model.Product, error) {
	var (
		p                      model.Product
		cost, revenue, average pgtype.Numeric
	)
	if err := row.Scan(&p.ProductID, &p.Name, &p.TotalPurchased, &p.TotalSold, &cost, &revenue, &average); err != nil {
		return model.Product{}, err
	}

	var err error
	if p.TotalCost, err = numericToDecimal(cost); err != nil {
		return model.Product{}, fmt.Errorf("convert total cost: %w", err)
	}
	if p.TotalRevenue, err = numericToDecimal(revenue); err != nil {
		return model.Product{}, fmt.Errorf("convert total revenue: %w", err)
	}
	if p.AveragePrice, err = numericToDecimal(average); err != nil {
		return model.Product{}, fmt.Errorf("convert average price: %w", err)
	}

	return p, nil
}
