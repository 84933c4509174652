package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
)

// CompleteDeliveryCommandHandler closes a courier delivery. The amounts the
// courier reports are stored on the tracking cycle and later become the
// expected cash of the courier's daily closing.
type CompleteDeliveryCommandHandler struct {
	uowFactory DeliveryUoWFactory
	policy     order.Policy
	settings   ports.SettingsProvider
}

func NewCompleteDeliveryCommandHandler(
	uowFactory DeliveryUoWFactory,
	policy order.Policy,
	settings ports.SettingsProvider,
) CompleteDeliveryCommandHandler {
	return CompleteDeliveryCommandHandler{uowFactory: uowFactory, policy: policy, settings: settings}
}

func (h CompleteDeliveryCommandHandler) Handle(ctx context.Context, cmd CompleteDeliveryCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Require("complete delivery", kernel.RoleCourier); err != nil {
		return err
	}

	threshold, err := h.settings.FreeShippingThreshold(ctx)
	if err != nil {
		return fmt.Errorf("read free shipping threshold: %w", err)
	}

	var collected order.Collection
	_, _, err = transitionDelivery(ctx, h.uowFactory, cmd.OrderID(), cmd.CourierID(),
		func(o *order.Order) error {
			var completeErr error
			collected, completeErr = o.CompleteDelivery(cmd.CourierID(), cmd.Collection(), threshold, h.policy)
			return completeErr
		},
		func(t *tracking.DeliveryTracking, at time.Time) error {
			return t.Complete(collected, cmd.Notes(), cmd.Location(), at)
		})
	return err
}
