package product

import (
	"context"

	"github.com/go-arrower/catalog/app"
)

func NewAddProductRequestHandler(svc *Service) app.Request[AddProductRequest, Product] {
	return &addProductRequestHandler{svc: svc}
}

type addProductRequestHandler struct {
	svc *Service
}

type AddProductRequest struct {
	Product Product
}

func (h *addProductRequestHandler) H(ctx context.Context, req AddProductRequest) (Product, error) {
	return h.svc.AddProduct(ctx, req.Product)
}
