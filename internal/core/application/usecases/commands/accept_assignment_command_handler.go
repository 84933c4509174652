package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
)

type AcceptAssignmentCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewAcceptAssignmentCommandHandler(uowFactory DeliveryUoWFactory) AcceptAssignmentCommandHandler {
	return AcceptAssignmentCommandHandler{uowFactory: uowFactory}
}

func (h AcceptAssignmentCommandHandler) Handle(ctx context.Context, cmd AcceptAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Require("accept assignment", kernel.RoleCourier); err != nil {
		return err
	}

	_, _, err := transitionDelivery(ctx, h.uowFactory, cmd.OrderID(), cmd.CourierID(),
		func(o *order.Order) error {
			return o.AcceptAssignment(cmd.CourierID())
		},
		func(t *tracking.DeliveryTracking, at time.Time) error {
			return t.Accept(at)
		})
	return err
}
