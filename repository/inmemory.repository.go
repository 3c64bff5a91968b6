package repository

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"reflect"
	"slices"
	"sync"

	"github.com/google/uuid"
)

var ErrAlreadyExists = errors.New("exists already")

var errIDFieldWrong = errors.New("the ID field used as primary key is wrong")

// Option configures a MemoryRepository.
type Option func(config *repoConfig)

type repoConfig struct {
	idFieldName string
	store       Store
	storeName   string
}

// WithIDField sets the name of the struct field used as primary key.
// If not set, the entity is expected to have a field with the name "ID".
func WithIDField(name string) Option {
	return func(config *repoConfig) {
		config.idFieldName = name
	}
}

// WithStore sets a Store used to persist the repository after each write.
//
// There are no transactions: if the Store fails, the write is undone in memory
// and the error is returned.
func WithStore(store Store) Option {
	return func(config *repoConfig) {
		config.store = store
	}
}

// WithStoreName overwrites the name the Store uses for this repository.
// It defaults to the entity's type name with a ".json" suffix.
func WithStoreName(name string) Option {
	return func(config *repoConfig) {
		config.storeName = name
	}
}

var _ Repository[struct{ ID int }, int] = (*MemoryRepository[struct{ ID int }, int])(nil)

// NewMemoryRepository returns a Repository keeping entities of type E in memory.
// Integer IDs are assigned from a sequence, string IDs are random UUIDs.
// If a Store is given, existing data is loaded from it.
func NewMemoryRepository[E any, ID id](opts ...Option) (*MemoryRepository[E, ID], error) {
	repo := &MemoryRepository[E, ID]{
		mu:   sync.Mutex{},
		data: make(map[ID]E),
		repoConfig: repoConfig{
			idFieldName: "ID",
			store:       noopStore{},
			storeName:   reflect.TypeOf(new(E)).Elem().Name() + ".json",
		},
	}

	for _, opt := range opts {
		opt(&repo.repoConfig)
	}

	entityType := reflect.TypeOf(new(E)).Elem()
	if entityType.Kind() != reflect.Struct {
		return nil, fmt.Errorf("%w: entity has to be a struct, got: %s", errIDFieldWrong, entityType.Kind())
	}

	field, ok := entityType.FieldByName(repo.idFieldName)
	if !ok {
		return nil, fmt.Errorf("%w: entity does not have the field with name: %s", errIDFieldWrong, repo.idFieldName)
	}

	if !field.IsExported() {
		return nil, fmt.Errorf("%w: field %s is not exported", errIDFieldWrong, repo.idFieldName)
	}

	if idType := reflect.TypeOf(*new(ID)); field.Type != idType {
		return nil, fmt.Errorf("%w: field %s is of type %s, not %s", errIDFieldWrong, repo.idFieldName, field.Type, idType)
	}

	err := repo.store.Load(repo.storeName, &repo.data)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("could not load data for memory repository: %w", err)
	}

	for id := range repo.data {
		if id > repo.lastID {
			repo.lastID = id
		}
	}

	return repo, nil
}

// MemoryRepository implements Repository without any database.
// All methods are safe for concurrent use.
type MemoryRepository[E any, ID id] struct {
	mu     sync.Mutex
	data   map[ID]E
	lastID ID

	repoConfig
}

func (repo *MemoryRepository[E, ID]) FindAll(_ context.Context) ([]E, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	result := make([]E, 0, len(repo.data))

	for _, id := range slices.Sorted(maps.Keys(repo.data)) {
		result = append(result, repo.data[id])
	}

	return result, nil
}

func (repo *MemoryRepository[E, ID]) FindByID(_ context.Context, id ID) ([]E, error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	if e, ok := repo.data[id]; ok {
		return []E{e}, nil
	}

	return []E{}, nil
}

// Create stores entity. If its ID field is empty, a new ID is assigned first.
func (repo *MemoryRepository[E, ID]) Create(_ context.Context, entity E) (Mutation[E, ID], error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	id, err := repo.getID(entity)
	if err != nil {
		return Mutation[E, ID]{}, err
	}

	if id == *new(ID) {
		id = repo.nextID()

		if err = repo.setID(&entity, id); err != nil {
			return Mutation[E, ID]{}, err
		}
	}

	if _, found := repo.data[id]; found {
		return Mutation[E, ID]{}, fmt.Errorf("%w: %v", ErrAlreadyExists, id)
	}

	repo.data[id] = entity

	if err = repo.store.Store(repo.storeName, repo.data); err != nil {
		delete(repo.data, id)

		return Mutation[E, ID]{}, fmt.Errorf("%w: could not save: %w", ErrStorage, err)
	}

	repo.lastID = max(repo.lastID, id)

	return Mutation[E, ID]{ID: id, RowsAffected: 1, Entity: entity}, nil
}

// Update replaces the stored entity with the same ID.
// Updating an entity that does not exist affects no rows and is not an error.
func (repo *MemoryRepository[E, ID]) Update(_ context.Context, entity E) (Mutation[E, ID], error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	id, err := repo.getID(entity)
	if err != nil {
		return Mutation[E, ID]{}, err
	}

	old, found := repo.data[id]
	if !found {
		return Mutation[E, ID]{}, nil
	}

	repo.data[id] = entity

	if err = repo.store.Store(repo.storeName, repo.data); err != nil {
		repo.data[id] = old

		return Mutation[E, ID]{}, fmt.Errorf("%w: could not save: %w", ErrStorage, err)
	}

	return Mutation[E, ID]{ID: id, RowsAffected: 1, Entity: entity}, nil
}

func (repo *MemoryRepository[E, ID]) Delete(_ context.Context, id ID) (Mutation[E, ID], error) {
	repo.mu.Lock()
	defer repo.mu.Unlock()

	old, found := repo.data[id]
	if !found {
		return Mutation[E, ID]{ID: id}, nil
	}

	delete(repo.data, id)

	if err := repo.store.Store(repo.storeName, repo.data); err != nil {
		repo.data[id] = old

		return Mutation[E, ID]{}, fmt.Errorf("%w: could not save: %w", ErrStorage, err)
	}

	return Mutation[E, ID]{ID: id, RowsAffected: 1}, nil
}

// nextID has to be called with the mutex locked.
func (repo *MemoryRepository[E, ID]) nextID() ID {
	var id ID

	switch v := reflect.ValueOf(&id).Elem(); v.Kind() { //nolint:exhaustive // id constraint limits the kinds
	case reflect.String:
		v.SetString(uuid.New().String())
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v.SetInt(reflect.ValueOf(repo.lastID).Int() + 1)
	default:
		v.SetUint(reflect.ValueOf(repo.lastID).Uint() + 1)
	}

	return id
}

func (repo *MemoryRepository[E, ID]) getID(entity E) (ID, error) {
	field := reflect.ValueOf(entity).FieldByName(repo.idFieldName)

	id, ok := field.Interface().(ID)
	if !ok {
		var want ID

		return want, fmt.Errorf("%w: field %s is of type %s, not %T",
			errIDFieldWrong, repo.idFieldName, field.Type(), want)
	}

	return id, nil
}

func (repo *MemoryRepository[E, ID]) setID(entity *E, id ID) error {
	field := reflect.ValueOf(entity).Elem().FieldByName(repo.idFieldName)
	if !field.CanSet() {
		return fmt.Errorf("%w: field %s can not be set", errIDFieldWrong, repo.idFieldName)
	}

	field.Set(reflect.ValueOf(id))

	return nil
}
