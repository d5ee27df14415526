package apperr

import "github.com/tuanvumaihuynh/inventory-ledger/pkg/zerror"

const (
	ValidationErrorCode         = "VALIDATION_FAILED"
	StorageUnavailableErrorCode = "STORAGE_UNAVAILABLE"
	WriteErrorCode              = "TRANSACTION_WRITE_FAILED"
	ProductNotFoundErrorCode    = "PRODUCT_NOT_FOUND"
)

var (
	ValidationErr = zerror.NewValidationFailed(ValidationErrorCode, "validation error")

	// StorageUnavailableErr means the ledger store could not be opened. The
	// process cannot serve anything until a fresh open succeeds.
	StorageUnavailableErr = zerror.NewServiceUnavailable(StorageUnavailableErrorCode, "storage unavailable")

	// WriteErr means the atomic transaction+product write failed and nothing
	// was persisted. The same input may be retried.
	WriteErr = zerror.NewServiceUnavailable(WriteErrorCode, "transaction could not be saved, please retry")

	ProductNotFoundErr = zerror.NewNotFound(ProductNotFoundErrorCode, "product not found")
)
