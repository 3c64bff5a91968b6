package product_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/go-arrower/catalog/aassert"
	"github.com/go-arrower/catalog/product"
)

func TestProduct_fieldsAreMapped(t *testing.T) {
	t.Parallel()

	// FormatProduct and View.Product copy field by field.
	aassert.NumFields(t, 5, product.Product{})
	aassert.NumFields(t, 3, product.View{})
}

func TestFormatProduct(t *testing.T) {
	t.Parallel()

	tests := map[string]struct {
		in       product.Product
		expected product.View
	}{
		"all fields": {
			product.Product{ID: 1, Name: "Lamp", Price: 19.99, Description: "bright", Stock: 3},
			product.View{ID: 1, Name: "Lamp", Price: 19.99},
		},
		"zero product": {
			product.Product{},
			product.View{},
		},
		"not yet created": {
			product.Product{Name: "Chair", Price: 49},
			product.View{Name: "Chair", Price: 49},
		},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			t.Parallel()

			v := product.FormatProduct(tt.in)
			assert.Equal(t, tt.expected, v)

			assert.Equal(t, v, v.Format(), "formatting a view is idempotent")
			assert.Equal(t, v, product.FormatProduct(v.Product()), "formatting a view is idempotent")
		})
	}
}

func TestID_String(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "42", product.ID(42).String())
	assert.Equal(t, "0", product.ID(0).String())
}
