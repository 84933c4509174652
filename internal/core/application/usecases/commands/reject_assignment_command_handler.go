package commands

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
)

// RejectAssignmentCommandHandler lets a courier decline an assignment. The
// order goes back to logistics and the tracking cycle is closed as
// returned_to_logistics.
type RejectAssignmentCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewRejectAssignmentCommandHandler(uowFactory DeliveryUoWFactory) RejectAssignmentCommandHandler {
	return RejectAssignmentCommandHandler{uowFactory: uowFactory}
}

func (h RejectAssignmentCommandHandler) Handle(ctx context.Context, cmd RejectAssignmentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Require("reject assignment", kernel.RoleCourier); err != nil {
		return err
	}

	_, _, err := transitionDelivery(ctx, h.uowFactory, cmd.OrderID(), cmd.CourierID(),
		func(o *order.Order) error {
			return o.RejectAssignment(cmd.CourierID(), cmd.Reason())
		},
		func(t *tracking.DeliveryTracking, at time.Time) error {
			return t.Reject(cmd.Reason(), at)
		})
	return err
}
