package product

import (
	"context"

	"github.com/go-arrower/catalog/app"
)

func NewUpdateProductRequestHandler(svc *Service) app.Request[UpdateProductRequest, View] {
	return &updateProductRequestHandler{svc: svc}
}

type updateProductRequestHandler struct {
	svc *Service
}

type UpdateProductRequest struct {
	Product Product
}

func (h *updateProductRequestHandler) H(ctx context.Context, req UpdateProductRequest) (View, error) {
	return h.svc.UpdateProduct(ctx, req.Product)
}
