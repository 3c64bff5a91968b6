package repository

import (
	"context"
	"errors"
	"fmt"
)

var (
	ErrNotImplemented = errors.New("method must be implemented")
	ErrNotFound       = errors.New("not found")
	ErrInvalidQuery   = errors.New("invalid query")
	ErrStorage        = errors.New("storage error")
)

// Conn is the query connection a Repository translates its operations into.
// It is owned by the caller: a Repository never opens, pools, or closes it.
//
// Select scans all returned rows into dest, which is a pointer to a slice.
// Get scans exactly one row into dest, e.g. the result of a RETURNING clause.
// Exec runs a statement without a result set and reports the rows affected.
type Conn interface {
	Select(ctx context.Context, dest any, sql string, args ...any) error
	Get(ctx context.Context, dest any, sql string, args ...any) error
	Exec(ctx context.Context, sql string, args ...any) (int64, error)
}

// Mutation is the outcome of a write operation.
//
// ID is the identifier assigned by the store on Create.
// Entity is the entity as stored after the write, if the binding can return it;
// it is the zero value otherwise, e.g. if no row matched an Update.
type Mutation[E any, ID id] struct {
	ID           ID
	RowsAffected int64
	Entity       E
}

// Repository is the uniform contract to access the entities E of one type.
// Every method maps to exactly one query of the underlying store.
type Repository[E any, ID id] interface {
	FindAll(ctx context.Context) ([]E, error)
	FindByID(ctx context.Context, id ID) ([]E, error)

	Create(ctx context.Context, entity E) (Mutation[E, ID], error)
	Update(ctx context.Context, entity E) (Mutation[E, ID], error)
	Delete(ctx context.Context, id ID) (Mutation[E, ID], error)
}

// id are the types allowed as a primary key used in the generic Repository.
type id interface {
	~string |
		~int | ~int8 | ~int16 | ~int32 | ~int64 |
		~uint | ~uint8 | ~uint16 | ~uint32 | ~uint64
}

var _ Repository[struct{}, int] = Unimplemented[struct{}, int]{}

// Unimplemented can be embedded into a repository to satisfy the Repository interface,
// before all methods are written. Each method it provides fails with ErrNotImplemented
// and never issues a query.
type Unimplemented[E any, ID id] struct{}

func (Unimplemented[E, ID]) FindAll(_ context.Context) ([]E, error) {
	return nil, fmt.Errorf("%w: FindAll", ErrNotImplemented)
}

func (Unimplemented[E, ID]) FindByID(_ context.Context, _ ID) ([]E, error) {
	return nil, fmt.Errorf("%w: FindByID", ErrNotImplemented)
}

func (Unimplemented[E, ID]) Create(_ context.Context, _ E) (Mutation[E, ID], error) {
	return Mutation[E, ID]{}, fmt.Errorf("%w: Create", ErrNotImplemented)
}

func (Unimplemented[E, ID]) Update(_ context.Context, _ E) (Mutation[E, ID], error) {
	return Mutation[E, ID]{}, fmt.Errorf("%w: Update", ErrNotImplemented)
}

func (Unimplemented[E, ID]) Delete(_ context.Context, _ ID) (Mutation[E, ID], error) {
	return Mutation[E, ID]{}, fmt.Errorf("%w: Delete", ErrNotImplemented)
}
