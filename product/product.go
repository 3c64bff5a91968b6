// Package product is the product catalog: the Product entity, its postgres
// Repository and the Service that exposes products to callers as Views.
package product

import (
	"errors"
	"strconv"
)

// ErrEmptyResult is returned when a lookup by id finds no product.
var ErrEmptyResult = errors.New("empty result")

// ID is the primary key of a Product. It is assigned by the store on creation.
type ID int64

func (id ID) String() string {
	return strconv.FormatInt(int64(id), 10)
}

// Product is a record of the products table.
type Product struct {
	ID          ID      `db:"id"          json:"id"`
	Name        string  `db:"name"        json:"name"`
	Price       float64 `db:"price"       json:"price"`
	Description string  `db:"description" json:"description"`
	Stock       int     `db:"stock"       json:"stock"`
}

// View is the representation of a Product shown to callers.
type View struct {
	ID    ID      `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// FormatProduct projects p to a View. All other fields are dropped.
func FormatProduct(p Product) View {
	return View{
		ID:    p.ID,
		Name:  p.Name,
		Price: p.Price,
	}
}

// Format returns the View itself, so formatting is idempotent.
func (v View) Format() View {
	return v
}

// Product returns a Product with the fields of the View set.
func (v View) Product() Product {
	return Product{
		ID:    v.ID,
		Name:  v.Name,
		Price: v.Price,
	}
}
