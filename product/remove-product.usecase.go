package product

import (
	"context"

	"github.com/go-arrower/catalog/app"
)

// NewRemoveProductCommandHandler is the strict variant of NewDeleteProductRequestHandler:
// it reports a missing product as an error instead of a message.
func NewRemoveProductCommandHandler(svc *Service) app.Command[RemoveProductCommand] {
	return &removeProductCommandHandler{svc: svc}
}

type removeProductCommandHandler struct {
	svc *Service
}

type RemoveProductCommand struct {
	ID ID
}

func (h *removeProductCommandHandler) H(ctx context.Context, cmd RemoveProductCommand) error {
	return h.svc.RemoveProduct(ctx, cmd.ID)
}
