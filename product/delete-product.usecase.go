package product

import (
	"context"

	"github.com/go-arrower/catalog/app"
)

// NewDeleteProductRequestHandler is a Request, not a Command, as the caller gets a confirmation message.
func NewDeleteProductRequestHandler(svc *Service) app.Request[DeleteProductRequest, string] {
	return &deleteProductRequestHandler{svc: svc}
}

type deleteProductRequestHandler struct {
	svc *Service
}

type DeleteProductRequest struct {
	ID ID
}

func (h *deleteProductRequestHandler) H(ctx context.Context, req DeleteProductRequest) (string, error) {
	return h.svc.DeleteProduct(ctx, req.ID)
}
