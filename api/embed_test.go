package api_test

import (
	"testing"

	"storefront/api"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	doc, err := api.Load(t.Context())

	require.NoError(t, err)
	for _, path := range []string{
		"/api/login",
		"/api/products",
		"/api/orders",
		"/api/orders/{id}",
		"/api/orders/{id}/status",
		"/api/driver/deliveries",
		"/api/health",
	} {
		assert.NotNil(t, doc.Paths.Find(path), path)
	}
	assert.NotEmpty(t, api.Document())
}
