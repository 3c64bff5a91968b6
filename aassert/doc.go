// Package aassert provides assertions that go beyond
// what stretchr/testify/assert is offering.
// The assertions follow the design decisions of testify/assert as close as possible.
//
// # Example
//
// Guard a function mapping one struct to another, so a new field
// is not silently dropped by it:
//
//	func TestFormatProduct(t *testing.T) {
//		aassert.NumFields(t, 5, product.Product{})
//		aassert.NumFields(t, 3, product.View{})
//	}
package aassert
