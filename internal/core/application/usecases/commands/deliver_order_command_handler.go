package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// DeliverOrderCommandHandler moves an order to delivered_to_carrier or
// delivered_warehouse. Warehouse hand-over may also be recorded by treasury,
// who usually takes the counter payment.
type DeliverOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     order.Policy
}

func NewDeliverOrderCommandHandler(uowFactory OrderUoWFactory, policy order.Policy) DeliverOrderCommandHandler {
	return DeliverOrderCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h DeliverOrderCommandHandler) Handle(ctx context.Context, cmd DeliverOrderCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.StatusUnknown, err
	}

	var change func(o *order.Order) error
	switch cmd.Handover() {
	case HandoverWarehouse:
		if err := cmd.Actor().Require("deliver at warehouse", kernel.RoleLogistics, kernel.RoleTreasury); err != nil {
			return order.StatusUnknown, err
		}
		change = func(o *order.Order) error { return o.DeliverAtWarehouse(h.policy) }
	default:
		if err := cmd.Actor().Require("deliver to carrier", kernel.RoleLogistics); err != nil {
			return order.StatusUnknown, err
		}
		change = (*order.Order).DeliverToCarrier
	}

	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), change)
	if err != nil {
		return order.StatusUnknown, err
	}
	return o.Status(), nil
}
