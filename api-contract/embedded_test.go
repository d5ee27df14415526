package apicontract_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apicontract "github.com/tuanvumaihuynh/inventory-ledger/api-contract"
)

func TestLoad(t *testing.T) {
	doc, err := apicontract.Load(context.Background())
	require.NoError(t, err)

	assert.Equal(t, "Inventory Ledger API", doc.Info.Title)

	for _, path := range []string{
		"/transactions",
		"/inventory",
		"/inventory/export",
		"/products/{productId}",
		"/products/rebuild",
		"/dashboard",
		"/healthz",
	} {
		assert.NotNil(t, doc.Paths.Value(path), path)
	}

	post := doc.Paths.Value("/transactions").Post
	require.NotNil(t, post)
	schema := post.RequestBody.Value.Content.Get("application/json").Schema.Value
	assert.ElementsMatch(t, []string{"type", "productId", "productName", "quantity", "price"}, schema.Required)
}
