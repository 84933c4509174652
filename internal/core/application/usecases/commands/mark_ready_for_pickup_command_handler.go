package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// MarkReadyForPickupCommandHandler releases a packed order. Warehouse pickups
// that still owe money fail with a PreconditionFailedError until a
// cash-register entry with evidence exists.
type MarkReadyForPickupCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     order.Policy
}

func NewMarkReadyForPickupCommandHandler(uowFactory OrderUoWFactory, policy order.Policy) MarkReadyForPickupCommandHandler {
	return MarkReadyForPickupCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h MarkReadyForPickupCommandHandler) Handle(ctx context.Context, cmd MarkReadyForPickupCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Require("mark ready for pickup", kernel.RoleLogistics); err != nil {
		return err
	}

	_, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.MarkReadyForPickup(h.policy)
	})
	return err
}
