//nolint:govet // allow shadow declaration of ctx (from the testdata) as this file is to showcase and should be clean.
package repository_test

import (
	"context"
	"fmt"

	"github.com/go-arrower/catalog/repository"
)

func Example_overwriteRepositoryMethodWithOwnBehaviour() {
	ctx := context.Background()

	repo := NewElementMemoryRepository()
	_, _ = repo.Create(ctx, Element{ID: 1})

	all, _ := repo.FindAll(ctx)
	fmt.Println(len(all))

	// Output: 0
}

type Element struct {
	ID int
}

func NewElementMemoryRepository() *ElementMemoryRepository {
	repo, _ := repository.NewMemoryRepository[Element, int]()

	return &ElementMemoryRepository{
		MemoryRepository: repo,
	}
}

type ElementMemoryRepository struct {
	*repository.MemoryRepository[Element, int]
}

// FindAll overwrites the existing FindAll method with your own implementation.
func (repo *ElementMemoryRepository) FindAll(_ context.Context) ([]Element, error) {
	return []Element{}, nil
}
