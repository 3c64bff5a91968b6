package product

import (
	"context"

	"github.com/go-arrower/catalog/app"
)

func NewGetAllProductsQueryHandler(svc *Service) app.Query[GetAllProductsQuery, []View] {
	return &getAllProductsQueryHandler{svc: svc}
}

type getAllProductsQueryHandler struct {
	svc *Service
}

type GetAllProductsQuery struct{}

func (h *getAllProductsQueryHandler) H(ctx context.Context, _ GetAllProductsQuery) ([]View, error) {
	return h.svc.GetAllProducts(ctx)
}
