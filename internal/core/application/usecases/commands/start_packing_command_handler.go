package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// StartPackingCommandHandler starts packing. The free-shipping threshold is
// read before the transaction opens so no lock is held across that call.
type StartPackingCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     order.Policy
	settings   ports.SettingsProvider
}

func NewStartPackingCommandHandler(
	uowFactory OrderUoWFactory,
	policy order.Policy,
	settings ports.SettingsProvider,
) StartPackingCommandHandler {
	return StartPackingCommandHandler{uowFactory: uowFactory, policy: policy, settings: settings}
}

func (h StartPackingCommandHandler) Handle(ctx context.Context, cmd StartPackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Require("start packing", kernel.RoleLogistics); err != nil {
		return err
	}

	threshold, err := h.settings.FreeShippingThreshold(ctx)
	if err != nil {
		return fmt.Errorf("read free shipping threshold: %w", err)
	}

	_, err = transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.StartPacking(cmd.CarrierID(), threshold, h.policy)
	})
	return err
}
