package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
)

// MarkDeliveryFailedCommandHandler records a failed attempt. The order keeps
// its status so logistics can re-assign or re-route it.
type MarkDeliveryFailedCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewMarkDeliveryFailedCommandHandler(uowFactory DeliveryUoWFactory) MarkDeliveryFailedCommandHandler {
	return MarkDeliveryFailedCommandHandler{uowFactory: uowFactory}
}

func (h MarkDeliveryFailedCommandHandler) Handle(ctx context.Context, cmd MarkDeliveryFailedCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Require("mark delivery failed", kernel.RoleCourier); err != nil {
		return err
	}

	_, _, err := transitionDelivery(ctx, h.uowFactory, cmd.OrderID(), cmd.CourierID(),
		func(o *order.Order) error {
			return o.MarkDeliveryFailed(cmd.CourierID(), cmd.Reason())
		},
		func(t *tracking.DeliveryTracking, at time.Time) error {
			return t.Fail(cmd.Reason(), at)
		})
	return err
}
