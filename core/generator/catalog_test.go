package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	apperrors "github.com/hyperterse/seeder/core/shared/errors"
)

func TestDefaultCatalog_IsValid(t *testing.T) {
	catalog := DefaultCatalog()
	assert.Len(t, catalog, 10)
	require.NoError(t, ValidateCatalog(catalog))
}

func TestParseCatalog(t *testing.T) {
	content := []byte(`products:
  - sku: BOOK-GO-101
    name: The Go Programming Language
    category: Books
    subcategory: Programming
    brand: Addison-Wesley
    price: 39.99
    compare_at_price: 49.99
    description: Learn Go from its designers
    tags: [book, go]
    specifications:
      pages: 380
      format: paperback
    stock: 12
    featured: true
`)

	catalog, err := ParseCatalog(content)
	require.NoError(t, err)
	require.Len(t, catalog, 1)
	assert.Equal(t, "BOOK-GO-101", catalog[0].SKU)
	require.NotNil(t, catalog[0].CompareAtPrice)
	assert.Equal(t, 49.99, *catalog[0].CompareAtPrice)
	assert.Equal(t, 380, catalog[0].Specifications["pages"])
	assert.True(t, catalog[0].Featured)
}

func TestParseCatalog_Invalid(t *testing.T) {
	tests := []struct {
		name    string
		content string
		code    apperrors.ErrorCode
	}{
		{"malformed yaml", "products: [", apperrors.ErrCodeConfiguration},
		{"empty", "products: []", apperrors.ErrCodeEmptyInput},
		{"missing sku", "products:\n  - name: A\n    category: C\n    price: 1\n", apperrors.ErrCodeInvalidInput},
		{"negative price", "products:\n  - sku: A\n    name: A\n    category: C\n    price: -1\n", apperrors.ErrCodeInvalidInput},
		{"compare below price", "products:\n  - sku: A\n    name: A\n    category: C\n    price: 10\n    compare_at_price: 5\n", apperrors.ErrCodeInvalidInput},
		{"duplicate sku", "products:\n  - sku: A\n    name: A\n    category: C\n  - sku: A\n    name: B\n    category: C\n", apperrors.ErrCodeInvalidInput},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseCatalog([]byte(tt.content))
			require.Error(t, err)
			assert.Equal(t, tt.code, apperrors.CodeOf(err))
		})
	}
}

func TestLoadCatalog(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.yaml")
	require.NoError(t, os.WriteFile(path, []byte("products:\n  - sku: A\n    name: A\n    category: C\n    price: 1\n"), 0o644))

	catalog, err := LoadCatalog(path)
	require.NoError(t, err)
	assert.Len(t, catalog, 1)

	_, err = LoadCatalog(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.True(t, apperrors.IsConfiguration(err))
}
