package service_test

import (
	"context"
	"errors"
	"maps"
	"slices"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/model"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/repository"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/storage/db"
)

var errInjected = errors.New("injected failure")

// memStore is an in-memory stand-in for the ledger tables.
type memStore struct {
	txs      []model.Transaction
	products map[string]model.Product
	order    []string
	outbox   []repository.CreateOutboxMsgParams
	nextID   int64

	// failOn names a repository operation that returns errInjected.
	failOn string
	locks  []string
}

func newMemStore() *memStore {
	return &memStore{products: map[string]model.Product{}}
}

func (m *memStore) clone() memStore {
	c := *m
	c.txs = slices.Clone(m.txs)
	c.products = maps.Clone(m.products)
	c.order = slices.Clone(m.order)
	c.outbox = slices.Clone(m.outbox)
	return c
}

func (m *memStore) fail(op string) error {
	if m.failOn == op {
		return errInjected
	}
	return nil
}

// fakeDB runs tx functions against memStore and restores the snapshot when
// they fail.
type fakeDB struct {
	db.DB
	store *memStore
}

func (d *fakeDB) WithTx(_ context.Context, txFunc func(db.DB) error) error {
	snapshot := d.store.clone()
	if err := txFunc(d); err != nil {
		*d.store = snapshot
		return err
	}
	return nil
}

func (d *fakeDB) WithReadTx(ctx context.Context, txFunc func(db.DB) error) error {
	return d.WithTx(ctx, txFunc)
}

type fakeTransactionRepo struct{ store *memStore }

func (r fakeTransactionRepo) WithDB(db.DB) repository.TransactionRepository { return r }

func (r fakeTransactionRepo) CreateTransaction(_ context.Context, params repository.CreateTransactionParams) (model.Transaction, error) {
	if err := r.store.fail("create_transaction"); err != nil {
		return model.Transaction{}, err
	}
	r.store.nextID++
	tx := model.Transaction{
		ID:          r.store.nextID,
		Type:        params.Type,
		ProductID:   params.ProductID,
		ProductName: params.ProductName,
		Quantity:    params.Quantity,
		Price:       params.Price,
		Date:        params.Date,
	}
	r.store.txs = append(r.store.txs, tx)
	return tx, nil
}

func (r fakeTransactionRepo) ListAllTransactions(context.Context) ([]model.Transaction, error) {
	if err := r.store.fail("list_transactions"); err != nil {
		return nil, err
	}
	return slices.Clone(r.store.txs), nil
}

func (r fakeTransactionRepo) LockLedger(context.Context) error {
	r.store.locks = append(r.store.locks, "ledger")
	return nil
}

type fakeProductRepo struct{ store *memStore }

func (r fakeProductRepo) WithDB(db.DB) repository.ProductRepository { return r }

func (r fakeProductRepo) LockProduct(_ context.Context, productID string) error {
	r.store.locks = append(r.store.locks, productID)
	return nil
}

func (r fakeProductRepo) GetProduct(_ context.Context, productID string) (model.Product, bool, error) {
	if err := r.store.fail("get_product"); err != nil {
		return model.Product{}, false, err
	}
	p, ok := r.store.products[productID]
	return p, ok, nil
}

func (r fakeProductRepo) UpsertProduct(_ context.Context, product model.Product) error {
	if err := r.store.fail("upsert_product"); err != nil {
		return err
	}
	if _, ok := r.store.products[product.ProductID]; !ok {
		r.store.order = append(r.store.order, product.ProductID)
	}
	r.store.products[product.ProductID] = product
	return nil
}

func (r fakeProductRepo) ListAllProducts(context.Context) ([]model.Product, error) {
	if err := r.store.fail("list_products"); err != nil {
		return nil, err
	}
	products := make([]model.Product, 0, len(r.store.order))
	for _, id := range r.store.order {
		products = append(products, r.store.products[id])
	}
	return products, nil
}

type fakeOutboxMsgRepo struct{ store *memStore }

func (r fakeOutboxMsgRepo) WithDB(db.DB) repository.OutboxMsgRepository { return r }

func (r fakeOutboxMsgRepo) CreateOutboxMsg(_ context.Context, params repository.CreateOutboxMsgParams) error {
	if err := r.store.fail("create_outbox_msg"); err != nil {
		return err
	}
	r.store.outbox = append(r.store.outbox, params)
	return nil
}

func (r fakeOutboxMsgRepo) ListUnprocessedOutboxMsgs(context.Context, repository.ListUnprocessedOutboxMsgsParams) ([]repository.ListUnprocessedOutboxMsgsResult, error) {
	return nil, nil
}

func (r fakeOutboxMsgRepo) BulkUpdateOutboxMsgs(context.Context, repository.BulkUpdateOutboxMsgsParams) error {
	return nil
}
