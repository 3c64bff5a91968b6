package product

import (
	"context"
	"fmt"

	"github.com/go-arrower/catalog/repository"
)

// NewService returns a Service working on repo.
func NewService(repo repository.Repository[Product, ID]) *Service {
	return &Service{repo: repo}
}

// Service exposes the products of a repository as Views.
// Each operation makes exactly one call to the repository and returns its errors unchanged.
type Service struct {
	repo repository.Repository[Product, ID]
}

// GetAllProducts returns all products formatted, in the order of the repository.
func (s *Service) GetAllProducts(ctx context.Context) ([]View, error) {
	products, err := s.repo.FindAll(ctx)
	if err != nil {
		return nil, err //nolint:wrapcheck // errors of the repository are not changed
	}

	views := make([]View, 0, len(products))
	for _, p := range products {
		views = append(views, FormatProduct(p))
	}

	return views, nil
}

// GetProductByID returns the formatted product with the given id.
// If no product exists, the error wraps ErrEmptyResult.
func (s *Service) GetProductByID(ctx context.Context, id ID) (View, error) {
	products, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return View{}, err //nolint:wrapcheck // errors of the repository are not changed
	}

	if len(products) == 0 {
		return View{}, fmt.Errorf("%w: product %s", ErrEmptyResult, id)
	}

	return FormatProduct(products[0]), nil
}

// AddProduct creates p and returns it with the ID assigned by the repository.
func (s *Service) AddProduct(ctx context.Context, p Product) (Product, error) {
	res, err := s.repo.Create(ctx, p)
	if err != nil {
		return Product{}, err //nolint:wrapcheck // errors of the repository are not changed
	}

	p.ID = res.ID

	return p, nil
}

// UpdateProduct updates p and returns the stored product formatted.
// If no product matched, the zero View is returned.
func (s *Service) UpdateProduct(ctx context.Context, p Product) (View, error) {
	res, err := s.repo.Update(ctx, p)
	if err != nil {
		return View{}, err //nolint:wrapcheck // errors of the repository are not changed
	}

	return FormatProduct(res.Entity), nil
}

// DeleteProduct deletes the product with the given id.
// The message is the same, whether a product was deleted or not.
func (s *Service) DeleteProduct(ctx context.Context, id ID) (string, error) {
	_, err := s.repo.Delete(ctx, id)
	if err != nil {
		return "", err //nolint:wrapcheck // errors of the repository are not changed
	}

	return "Product " + id.String() + " deleted successfully", nil
}

// RemoveProduct deletes the product with the given id.
// Unlike DeleteProduct, it fails with repository.ErrNotFound if no product was deleted.
func (s *Service) RemoveProduct(ctx context.Context, id ID) error {
	res, err := s.repo.Delete(ctx, id)
	if err != nil {
		return err //nolint:wrapcheck // errors of the repository are not changed
	}

	if res.RowsAffected == 0 {
		return fmt.Errorf("%w: product %s", repository.ErrNotFound, id)
	}

	return nil
}

// FormatProduct projects p to its View, see the package level FormatProduct.
func (s *Service) FormatProduct(p Product) View {
	return FormatProduct(p)
}
