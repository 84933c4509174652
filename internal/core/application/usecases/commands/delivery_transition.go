package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
)

// courierCommand is the base of every command a courier issues about an order
// assigned to them. The courier is always the calling actor.
type courierCommand struct {
	orderCommand
}

func newCourierCommand(actor kernel.Actor, orderID kernel.UUID) (courierCommand, error) {
	base, err := newOrderCommand(actor, orderID)
	if err != nil {
		return courierCommand{}, err
	}
	return courierCommand{orderCommand: base}, nil
}

func (c courierCommand) CourierID() kernel.UUID {
	return c.actor.UserID()
}

// transitionDelivery applies changeOrder to an order, then changeTracking to
// the courier's current tracking cycle, and saves both in one unit of work.
// The order is checked first so a courier who does not hold the order gets an
// authorization error rather than a missing tracking row.
func transitionDelivery(
	ctx context.Context,
	uowFactory DeliveryUoWFactory,
	orderID, courierID kernel.UUID,
	changeOrder func(o *order.Order) error,
	changeTracking func(t *tracking.DeliveryTracking, at time.Time) error,
) (*order.Order, *tracking.DeliveryTracking, error) {
	uow := uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, orderID)
	if err != nil {
		return nil, nil, err
	}

	if err = changeOrder(o); err != nil {
		return nil, nil, err
	}

	trackingRepo := uow.TrackingRepository()
	t, err := trackingRepo.GetLatestForCourier(ctx, orderID, courierID)
	if err != nil {
		return nil, nil, err
	}

	if err = changeTracking(t, now()); err != nil {
		return nil, nil, err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return nil, nil, fmt.Errorf("update order %s: %w", o.OrderNumber(), err)
	}
	if err = trackingRepo.Update(ctx, t); err != nil {
		return nil, nil, fmt.Errorf("update delivery tracking %s: %w", t.ID(), err)
	}

	if err = uow.Commit(ctx); err != nil {
		return nil, nil, err
	}

	return o, t, nil
}
