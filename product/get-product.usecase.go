package product

import (
	"context"

	"github.com/go-arrower/catalog/app"
)

func NewGetProductQueryHandler(svc *Service) app.Query[GetProductQuery, View] {
	return &getProductQueryHandler{svc: svc}
}

type getProductQueryHandler struct {
	svc *Service
}

type GetProductQuery struct {
	ID ID
}

func (h *getProductQueryHandler) H(ctx context.Context, query GetProductQuery) (View, error) {
	return h.svc.GetProductByID(ctx, query.ID)
}
