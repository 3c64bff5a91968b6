package product_test

import (
	"context"
	"errors"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/brianvoe/gofakeit/v6"
	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/go-arrower/catalog/postgres"
	"github.com/go-arrower/catalog/product"
	"github.com/go-arrower/catalog/repository"
)

var (
	ctx           = context.Background()
	errConnFailed = errors.New("connection refused")
)

var columns = []string{"id", "name", "price", "description", "stock"}

func testProduct() product.Product {
	return product.Product{
		Name:        gofakeit.ProductName(),
		Price:       gofakeit.Price(1, 100),
		Description: gofakeit.ProductDescription(),
		Stock:       gofakeit.IntRange(0, 50),
	}
}

// newMockConn returns a conn backed by sqlmock, that expects exactly the queries set up on the mock.
func newMockConn(t *testing.T) (repository.Conn, sqlmock.Sqlmock) {
	t.Helper()

	db, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherEqual))
	require.NoError(t, err)

	t.Cleanup(func() {
		assert.NoError(t, mock.ExpectationsWereMet())
		_ = db.Close()
	})

	return postgres.NewSQLConn(sqlx.NewDb(db, "postgres")), mock
}

// fakeRepository records the calls made to it and returns the configured results.
type fakeRepository struct {
	calls []string

	products []product.Product
	mutation repository.Mutation[product.Product, product.ID]
	err      error
}

var _ repository.Repository[product.Product, product.ID] = (*fakeRepository)(nil)

func (r *fakeRepository) FindAll(_ context.Context) ([]product.Product, error) {
	r.calls = append(r.calls, "FindAll")

	return r.products, r.err
}

func (r *fakeRepository) FindByID(_ context.Context, _ product.ID) ([]product.Product, error) {
	r.calls = append(r.calls, "FindByID")

	return r.products, r.err
}

func (r *fakeRepository) Create(_ context.Context, _ product.Product) (repository.Mutation[product.Product, product.ID], error) {
	r.calls = append(r.calls, "Create")

	return r.mutation, r.err
}

func (r *fakeRepository) Update(_ context.Context, _ product.Product) (repository.Mutation[product.Product, product.ID], error) {
	r.calls = append(r.calls, "Update")

	return r.mutation, r.err
}

func (r *fakeRepository) Delete(_ context.Context, _ product.ID) (repository.Mutation[product.Product, product.ID], error) {
	r.calls = append(r.calls, "Delete")

	return r.mutation, r.err
}
