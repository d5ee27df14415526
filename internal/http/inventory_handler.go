package http

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/oapi-codegen/runtime"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/model"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/report"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/service"
	"github.com/tuanvumaihuynh/inventory-ledger/pkg/validator"
)

const defaultMaxBodyBytes = 1 << 20 // 1 MB

type inventoryHandler struct {
	validator    validator.Validator
	inventorySvc service.InventoryService
	maxBodyBytes int64
}

func newInventoryHandler(validator validator.Validator, inventorySvc service.InventoryService, maxBodyBytes int64) *inventoryHandler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = defaultMaxBodyBytes
	}
	return &inventoryHandler{
		validator:    validator,
		inventorySvc: inventorySvc,
		maxBodyBytes: maxBodyBytes,
	}
}

func (h *inventoryHandler) RecordTransaction(w http.ResponseWriter, r *http.Request) error {
	var req RecordTransactionRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err := dec.Decode(&req); err != nil {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("decode request body: %w", err))
	}
	if err := h.validator.Validate(req); err != nil {
		return apperr.ValidationErr.WrapParent(err)
	}

	res, err := h.inventorySvc.RecordTransaction(r.Context(), service.RecordTransactionParams{
		Type:        model.TransactionType(*req.Type),
		ProductID:   *req.ProductID,
		ProductName: *req.ProductName,
		Quantity:    *req.Quantity,
		Price:       *req.Price,
	})
	if err != nil {
		return fmt.Errorf("inventory service record transaction: %w", err)
	}

	writeJSON(w, http.StatusCreated, RecordTransactionResponse{
		Transaction: newTransactionResponse(res.Transaction),
		Product:     newProductResponse(res.Product),
	})
	return nil
}

func (h *inventoryHandler) ListTransactions(w http.ResponseWriter, r *http.Request) error {
	txs, err := h.inventorySvc.ListTransactions(r.Context())
	if err != nil {
		return fmt.Errorf("inventory service list transactions: %w", err)
	}

	items := make([]TransactionResponse, 0, len(txs))
	for _, t := range txs {
		items = append(items, newTransactionResponse(t))
	}

	writeJSON(w, http.StatusOK, items)
	return nil
}

func (h *inventoryHandler) ListInventory(w http.ResponseWriter, r *http.Request) error {
	inventory, err := h.inventorySvc.ListInventory(r.Context())
	if err != nil {
		return fmt.Errorf("inventory service list inventory: %w", err)
	}

	items := make([]InventoryItemResponse, 0, len(inventory))
	for _, item := range inventory {
		items = append(items, newInventoryItemResponse(item))
	}

	writeJSON(w, http.StatusOK, items)
	return nil
}

func (h *inventoryHandler) ExportInventory(w http.ResponseWriter, r *http.Request) error {
	inventory, err := h.inventorySvc.ListInventory(r.Context())
	if err != nil {
		return fmt.Errorf("inventory service list inventory: %w", err)
	}
	dash, err := h.inventorySvc.Dashboard(r.Context())
	if err != nil {
		return fmt.Errorf("inventory service dashboard: %w", err)
	}

	// Render fully before writing headers so a failure still becomes a JSON error.
	var buf bytes.Buffer
	if err := report.WriteInventoryXLSX(&buf, inventory, dash); err != nil {
		return fmt.Errorf("write inventory workbook: %w", err)
	}

	w.Header().Set("Content-Type", report.ContentType)
	w.Header().Set("Content-Disposition", `attachment; filename="inventory.xlsx"`)
	w.WriteHeader(http.StatusOK)
	//nolint:errcheck
	buf.WriteTo(w)
	return nil
}

func (h *inventoryHandler) GetProduct(w http.ResponseWriter, r *http.Request) error {
	var productID string
	err := runtime.BindStyledParameterWithOptions("simple", "productId", chi.URLParam(r, "productId"), &productID,
		runtime.BindStyledParameterOptions{ParamLocation: runtime.ParamLocationPath, Explode: false, Required: true})
	if err != nil {
		return apperr.ValidationErr.WrapParent(fmt.Errorf("bind productId: %w", err))
	}

	product, err := h.inventorySvc.GetProduct(r.Context(), productID)
	if err != nil {
		return fmt.Errorf("inventory service get product: %w", err)
	}

	writeJSON(w, http.StatusOK, newProductResponse(product))
	return nil
}

func (h *inventoryHandler) RebuildProducts(w http.ResponseWriter, r *http.Request) error {
	n, err := h.inventorySvc.RebuildProducts(r.Context())
	if err != nil {
		return fmt.Errorf("inventory service rebuild products: %w", err)
	}

	writeJSON(w, http.StatusOK, RebuildResponse{Rebuilt: n})
	return nil
}

func (h *inventoryHandler) Dashboard(w http.ResponseWriter, r *http.Request) error {
	dash, err := h.inventorySvc.Dashboard(r.Context())
	if err != nil {
		return fmt.Errorf("inventory service dashboard: %w", err)
	}

	writeJSON(w, http.StatusOK, newDashboardResponse(dash))
	return nil
}
