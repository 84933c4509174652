package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// RegisterPickupPaymentCommandHandler uploads the receipt photo and then
// stores the cash-register entry on the order. The upload happens outside the
// transaction; an orphaned photo is harmless.
type RegisterPickupPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	evidence   ports.EvidenceStore
}

func NewRegisterPickupPaymentCommandHandler(
	uowFactory OrderUoWFactory,
	evidence ports.EvidenceStore,
) RegisterPickupPaymentCommandHandler {
	return RegisterPickupPaymentCommandHandler{uowFactory: uowFactory, evidence: evidence}
}

// Handle returns the URL of the stored evidence.
func (h RegisterPickupPaymentCommandHandler) Handle(ctx context.Context, cmd RegisterPickupPaymentCommand) (string, error) {
	if err := cmd.Validate(); err != nil {
		return "", err
	}
	if err := cmd.Actor().Require("register pickup payment", kernel.RoleLogistics, kernel.RoleTreasury); err != nil {
		return "", err
	}

	name := fmt.Sprintf("pickup/%s/%s", cmd.OrderID(), cmd.PhotoName())
	url, err := h.evidence.Upload(ctx, name, cmd.PhotoContentType(), cmd.Photo())
	if err != nil {
		return "", fmt.Errorf("upload pickup evidence: %w", err)
	}

	entry, err := order.NewPickupPayment(cmd.Amount(), cmd.Method(), url, cmd.Actor().UserID(), now())
	if err != nil {
		return "", err
	}

	_, err = transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.RegisterPickupPayment(entry)
	})
	if err != nil {
		return "", err
	}
	return url, nil
}
