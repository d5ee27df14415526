package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/event"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/ledger"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/model"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/repository"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/storage/db"
	"github.com/tuanvumaihuynh/inventory-ledger/pkg/outbox"
	"github.com/tuanvumaihuynh/inventory-ledger/pkg/validator"
)

type RecordTransactionParams struct {
	Type        model.TransactionType `validate:"enum"`
	ProductID   string                `validate:"notblank"`
	ProductName string                `validate:"notblank"`
	Quantity    int                   `validate:"gt=0,lte=2147483647"`
	Price       decimal.Decimal       `validate:"decimal_gte=0"`
}

type RecordTransactionResult struct {
	Transaction model.Transaction
	Product     model.Product
}

type InventoryService interface {
	// RecordTransaction validates the input, appends it to the ledger and
	// updates the product aggregate as one atomic write.
	RecordTransaction(ctx context.Context, params RecordTransactionParams) (RecordTransactionResult, error)
	ListInventory(ctx context.Context) ([]model.InventoryItem, error)
	GetProduct(ctx context.Context, productID string) (model.Product, error)
	ListTransactions(ctx context.Context) ([]model.Transaction, error)
	Dashboard(ctx context.Context) (model.Dashboard, error)
	// RebuildProducts recomputes every aggregate from the ledger and returns
	// how many were written.
	RebuildProducts(ctx context.Context) (int, error)
}

type inventoryService struct {
	db                db.DB
	validator         validator.Validator
	transactionRepo   repository.TransactionRepository
	productRepo       repository.ProductRepository
	outboxMsgRepo     repository.OutboxMsgRepository
	lowStockThreshold int64
	now               func() time.Time
}

func NewInventoryService(
	db db.DB,
	validator validator.Validator,
	transactionRepo repository.TransactionRepository,
	productRepo repository.ProductRepository,
	outboxMsgRepo repository.OutboxMsgRepository,
	lowStockThreshold int64,
) InventoryService {
	return &inventoryService{
		db:                db,
		validator:         validator,
		transactionRepo:   transactionRepo,
		productRepo:       productRepo,
		outboxMsgRepo:     outboxMsgRepo,
		lowStockThreshold: lowStockThreshold,
		now:               func() time.Time { return time.Now().UTC() },
	}
}

func (s *inventoryService) RecordTransaction(ctx context.Context, params RecordTransactionParams) (RecordTransactionResult, error) {
	params.ProductID = strings.TrimSpace(params.ProductID)
	params.ProductName = strings.TrimSpace(params.ProductName)

	if err := s.validator.Validate(params); err != nil {
		return RecordTransactionResult{}, apperr.ValidationErr.WrapParent(err)
	}

	var result RecordTransactionResult
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		productRepo := s.productRepo.WithDB(db)

		if err := productRepo.LockProduct(ctx, params.ProductID); err != nil {
			return fmt.Errorf("product repository lock product: %w", err)
		}

		tx, err := s.transactionRepo.
			WithDB(db).
			CreateTransaction(ctx, repository.CreateTransactionParams{
				Type:        params.Type,
				ProductID:   params.ProductID,
				ProductName: params.ProductName,
				Quantity:    params.Quantity,
				Price:       params.Price,
				Date:        s.now(),
			})
		if err != nil {
			return fmt.Errorf("transaction repository create transaction: %w", err)
		}

		existing, found, err := productRepo.GetProduct(ctx, params.ProductID)
		if err != nil {
			return fmt.Errorf("product repository get product: %w", err)
		}

		var prior *model.Product
		if found {
			prior = &existing
		}
		product := ledger.Apply(prior, tx)

		if err := productRepo.UpsertProduct(ctx, product); err != nil {
			return fmt.Errorf("product repository upsert product: %w", err)
		}

		evBytes, err := json.Marshal(s.transactionRecordedEvent(tx, product))
		if err != nil {
			return fmt.Errorf("marshal event: %w", err)
		}

		partitionKey := product.ProductID
		if err := s.outboxMsgRepo.
			WithDB(db).
			CreateOutboxMsg(ctx, repository.CreateOutboxMsgParams{
				Topic:        event.TopicTransactionRecorded,
				Headers:      outbox.BuildHeaders(ctx),
				Payload:      evBytes,
				PartitionKey: &partitionKey,
			}); err != nil {
			return fmt.Errorf("outbox msg repository create outbox msg: %w", err)
		}

		result = RecordTransactionResult{Transaction: tx, Product: product}
		return nil
	}); err != nil {
		return RecordTransactionResult{}, apperr.WriteErr.WrapParent(fmt.Errorf("db with tx: %w", err))
	}

	return result, nil
}

func (s *inventoryService) transactionRecordedEvent(tx model.Transaction, product model.Product) event.TransactionRecordedEvent {
	return event.TransactionRecordedEvent{
		TransactionID: tx.ID,
		Type:          tx.Type.String(),
		ProductID:     tx.ProductID,
		ProductName:   product.Name,
		Quantity:      tx.Quantity,
		Price:         tx.Price,
		Date:          tx.Date,
		CurrentStock:  product.CurrentStock(),
		LowStock:      product.IsLowStock(s.lowStockThreshold),
	}
}

func (s *inventoryService) ListInventory(ctx context.Context) ([]model.InventoryItem, error) {
	products, err := s.productRepo.ListAllProducts(ctx)
	if err != nil {
		return nil, fmt.Errorf("product repository list all products: %w", err)
	}

	return ledger.Inventory(products, s.lowStockThreshold), nil
}

func (s *inventoryService) GetProduct(ctx context.Context, productID string) (model.Product, error) {
	product, found, err := s.productRepo.GetProduct(ctx, strings.TrimSpace(productID))
	if err != nil {
		return model.Product{}, fmt.Errorf("product repository get product: %w", err)
	}
	if !found {
		return model.Product{}, apperr.ProductNotFoundErr
	}

	return product, nil
}

func (s *inventoryService) ListTransactions(ctx context.Context) ([]model.Transaction, error) {
	txs, err := s.transactionRepo.ListAllTransactions(ctx)
	if err != nil {
		return nil, fmt.Errorf("transaction repository list all transactions: %w", err)
	}

	return txs, nil
}

func (s *inventoryService) Dashboard(ctx context.Context) (model.Dashboard, error) {
	var (
		txs      []model.Transaction
		products []model.Product
	)
	if err := s.db.WithReadTx(ctx, func(db db.DB) error {
		var err error
		if txs, err = s.transactionRepo.WithDB(db).ListAllTransactions(ctx); err != nil {
			return fmt.Errorf("transaction repository list all transactions: %w", err)
		}
		if products, err = s.productRepo.WithDB(db).ListAllProducts(ctx); err != nil {
			return fmt.Errorf("product repository list all products: %w", err)
		}
		return nil
	}); err != nil {
		return model.Dashboard{}, fmt.Errorf("db with read tx: %w", err)
	}

	return ledger.ComputeDashboard(txs, products), nil
}

func (s *inventoryService) RebuildProducts(ctx context.Context) (int, error) {
	var count int
	if err := s.db.WithTx(ctx, func(db db.DB) error {
		transactionRepo := s.transactionRepo.WithDB(db)
		if err := transactionRepo.LockLedger(ctx); err != nil {
			return fmt.Errorf("transaction repository lock ledger: %w", err)
		}

		txs, err := transactionRepo.ListAllTransactions(ctx)
		if err != nil {
			return fmt.Errorf("transaction repository list all transactions: %w", err)
		}

		productRepo := s.productRepo.WithDB(db)
		products := ledger.Replay(txs)
		for _, product := range products {
			if err := productRepo.UpsertProduct(ctx, product); err != nil {
				return fmt.Errorf("product repository upsert product: %w", err)
			}
		}

		count = len(products)
		return nil
	}); err != nil {
		return 0, apperr.WriteErr.WrapParent(fmt.Errorf("db with tx: %w", err))
	}

	return count, nil
}
