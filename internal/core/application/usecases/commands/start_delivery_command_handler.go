package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
)

type StartDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewStartDeliveryCommandHandler(uowFactory DeliveryUoWFactory) StartDeliveryCommandHandler {
	return StartDeliveryCommandHandler{uowFactory: uowFactory}
}

func (h StartDeliveryCommandHandler) Handle(ctx context.Context, cmd StartDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Require("start delivery", kernel.RoleCourier); err != nil {
		return err
	}

	_, _, err := transitionDelivery(ctx, h.uowFactory, cmd.OrderID(), cmd.CourierID(),
		func(o *order.Order) error {
			return o.StartDelivery(cmd.CourierID())
		},
		func(t *tracking.DeliveryTracking, at time.Time) error {
			return t.StartDelivery(at)
		})
	return err
}
