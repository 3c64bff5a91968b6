package aassert

import (
	"fmt"
	"reflect"
	"testing"

	"github.com/stretchr/testify/assert"
)

// NumFields asserts that the given struct object has the expected number of public fields.
// Public fields of nested and embedded structs are counted as well,
// also if they are behind a pointer, in a slice or a map.
func NumFields(t *testing.T, expected int, object any, msgAndArgs ...any) bool {
	t.Helper()

	typ := reflect.TypeOf(object)
	if typ != nil && typ.Kind() == reflect.Ptr {
		typ = typ.Elem()
	}

	if typ == nil || typ.Kind() != reflect.Struct {
		return assert.Fail(t, "invalid argument, it has to be a struct", msgAndArgs...)
	}

	fields := numFields(typ)
	if fields != expected {
		t.Log("INFO: The number of public fields of the struct: `" + typ.String() + "` changed.")
		t.Log("      If it is mapped from one layer to another one, ensure the mapping and its test data are correct.")
		t.Log("      Then correct the calling test case: `" + t.Name() + "` to the right expected count.")

		return assert.Fail(t, fmt.Sprintf("struct changed, it has: %d fields, expected: %d", fields, expected), msgAndArgs...)
	}

	return true
}

func numFields(typ reflect.Type) int {
	switch typ.Kind() { //nolint:exhaustive // all other kinds have no fields
	case reflect.Ptr, reflect.Slice, reflect.Array, reflect.Map:
		return numFields(typ.Elem())
	case reflect.Struct:
		var fields int

		for i := range typ.NumField() {
			if field := typ.Field(i); field.IsExported() {
				fields += 1 + numFields(field.Type)
			}
		}

		return fields
	default:
		return 0
	}
}
