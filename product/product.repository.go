package product

import (
	"context"
	"fmt"

	"github.com/Masterminds/squirrel"

	"github.com/go-arrower/catalog/repository"
)

const table = "products"

var columns = []string{"id", "name", "price", "description", "stock"} //nolint:gochecknoglobals // read only

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar) //nolint:gochecknoglobals,lll // squirrel recommends this

var _ repository.Repository[Product, ID] = (*Repository)(nil)

// NewRepository returns a Repository issuing its queries on conn.
// The caller owns conn.
func NewRepository(conn repository.Conn) *Repository {
	return &Repository{conn: conn}
}

// Repository is the postgres binding of repository.Repository for products.
// Each method issues exactly one query and returns errors of the conn unchanged.
type Repository struct {
	conn repository.Conn
}

func (repo *Repository) FindAll(ctx context.Context) ([]Product, error) {
	sql, args, err := psql.Select(columns...).From(table).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: could not build query: %v", repository.ErrInvalidQuery, err) //nolint:errorlint,lll // prevent err in api
	}

	products := []Product{}

	err = repo.conn.Select(ctx, &products, sql, args...)
	if err != nil {
		return nil, err //nolint:wrapcheck // errors of the conn are not changed
	}

	return products, nil
}

func (repo *Repository) FindByID(ctx context.Context, id ID) ([]Product, error) {
	sql, args, err := psql.Select(columns...).From(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return nil, fmt.Errorf("%w: could not build query: %v", repository.ErrInvalidQuery, err) //nolint:errorlint,lll // prevent err in api
	}

	products := []Product{}

	err = repo.conn.Select(ctx, &products, sql, args...)
	if err != nil {
		return nil, err //nolint:wrapcheck // errors of the conn are not changed
	}

	return products, nil
}

// Create inserts p and returns the id the database assigned to it.
// The ID of p is ignored.
func (repo *Repository) Create(ctx context.Context, p Product) (repository.Mutation[Product, ID], error) {
	sql, args, err := psql.Insert(table).
		Columns(columns[1:]...).
		Values(p.Name, p.Price, p.Description, p.Stock).
		Suffix("RETURNING id").
		ToSql()
	if err != nil {
		return repository.Mutation[Product, ID]{}, fmt.Errorf("%w: could not build query: %v", repository.ErrInvalidQuery, err) //nolint:errorlint,lll // prevent err in api
	}

	var id ID

	err = repo.conn.Get(ctx, &id, sql, args...)
	if err != nil {
		return repository.Mutation[Product, ID]{}, err //nolint:wrapcheck // errors of the conn are not changed
	}

	p.ID = id

	return repository.Mutation[Product, ID]{
		ID:           id,
		RowsAffected: 1,
		Entity:       p,
	}, nil
}

// Update overwrites all fields of the product with the ID of p.
// The returned Mutation carries the row as stored, or the zero Product if no row matched.
func (repo *Repository) Update(ctx context.Context, p Product) (repository.Mutation[Product, ID], error) {
	sql, args, err := psql.Update(table).
		Set("name", p.Name).
		Set("price", p.Price).
		Set("description", p.Description).
		Set("stock", p.Stock).
		Where(squirrel.Eq{"id": p.ID}).
		Suffix("RETURNING id, name, price, description, stock").
		ToSql()
	if err != nil {
		return repository.Mutation[Product, ID]{}, fmt.Errorf("%w: could not build query: %v", repository.ErrInvalidQuery, err) //nolint:errorlint,lll // prevent err in api
	}

	var updated []Product

	err = repo.conn.Select(ctx, &updated, sql, args...)
	if err != nil {
		return repository.Mutation[Product, ID]{}, err //nolint:wrapcheck // errors of the conn are not changed
	}

	if len(updated) == 0 {
		return repository.Mutation[Product, ID]{ID: p.ID}, nil
	}

	return repository.Mutation[Product, ID]{
		ID:           updated[0].ID,
		RowsAffected: int64(len(updated)),
		Entity:       updated[0],
	}, nil
}

func (repo *Repository) Delete(ctx context.Context, id ID) (repository.Mutation[Product, ID], error) {
	sql, args, err := psql.Delete(table).Where(squirrel.Eq{"id": id}).ToSql()
	if err != nil {
		return repository.Mutation[Product, ID]{}, fmt.Errorf("%w: could not build query: %v", repository.ErrInvalidQuery, err) //nolint:errorlint,lll // prevent err in api
	}

	n, err := repo.conn.Exec(ctx, sql, args...)
	if err != nil {
		return repository.Mutation[Product, ID]{}, err //nolint:wrapcheck // errors of the conn are not changed
	}

	return repository.Mutation[Product, ID]{ID: id, RowsAffected: n}, nil
}
