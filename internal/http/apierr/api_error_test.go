package apierr_test

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tuanvumaihuynh/inventory-ledger/internal/apperr"
	"github.com/tuanvumaihuynh/inventory-ledger/internal/http/apierr"
	"github.com/tuanvumaihuynh/inventory-ledger/pkg/validator"
)

func TestNew(t *testing.T) {
	v, err := validator.NewDefaultValidator()
	require.NoError(t, err)

	type input struct {
		Quantity int `validate:"gt=0"`
	}

	var body struct {
		Quantity *int `json:"quantity"`
	}
	decodeErr := json.Unmarshal([]byte(`{"quantity":2.5}`), &body)
	require.Error(t, decodeErr)

	tests := []struct {
		name    string
		err     error
		status  int
		code    string
		details []apierr.FieldError
	}{
		{
			name:   "validation error with field details",
			err:    fmt.Errorf("service: %w", apperr.ValidationErr.WrapParent(v.Validate(input{}))),
			status: http.StatusBadRequest,
			code:   apperr.ValidationErrorCode,
			details: []apierr.FieldError{
				{Field: "Quantity", Message: "must be greater than 0"},
			},
		},
		{
			name:   "bare validator error",
			err:    v.Validate(input{}),
			status: http.StatusBadRequest,
			code:   "validationError",
			details: []apierr.FieldError{
				{Field: "Quantity", Message: "must be greater than 0"},
			},
		},
		{
			name:   "json type mismatch names the field",
			err:    apperr.ValidationErr.WrapParent(fmt.Errorf("decode request body: %w", decodeErr)),
			status: http.StatusBadRequest,
			code:   apperr.ValidationErrorCode,
			details: []apierr.FieldError{
				{Field: "quantity", Message: "must be an integer"},
			},
		},
		{
			name:   "product not found",
			err:    fmt.Errorf("handler: %w", apperr.ProductNotFoundErr),
			status: http.StatusNotFound,
			code:   apperr.ProductNotFoundErrorCode,
		},
		{
			name:   "write error",
			err:    apperr.WriteErr.WrapParent(errors.New("commit failed")),
			status: http.StatusServiceUnavailable,
			code:   apperr.WriteErrorCode,
		},
		{
			name:   "storage unavailable",
			err:    apperr.StorageUnavailableErr,
			status: http.StatusServiceUnavailable,
			code:   apperr.StorageUnavailableErrorCode,
		},
		{
			name:   "unknown error",
			err:    errors.New("boom"),
			status: http.StatusInternalServerError,
			code:   "internalServerError",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := apierr.New(tt.err)

			assert.Equal(t, tt.status, res.StatusCode)
			assert.Equal(t, tt.code, res.Code)
			assert.Equal(t, tt.details, res.Details)
		})
	}
}
