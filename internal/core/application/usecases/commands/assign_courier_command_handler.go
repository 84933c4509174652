package commands

import (
	"context"
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"
)

// AssignCourierCommandHandler assigns a courier and opens a tracking cycle.
// When the same courier gets the order back after a failed attempt the failed
// cycle is reused instead of opening a new one.
type AssignCourierCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewAssignCourierCommandHandler(uowFactory DeliveryUoWFactory) AssignCourierCommandHandler {
	return AssignCourierCommandHandler{uowFactory: uowFactory}
}

func (h AssignCourierCommandHandler) Handle(ctx context.Context, cmd AssignCourierCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Require("assign courier", kernel.RoleLogistics); err != nil {
		return err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	o, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return err
	}

	if err = o.AssignCourier(cmd.CourierID()); err != nil {
		return err
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return fmt.Errorf("update order %s: %w", o.OrderNumber(), err)
	}

	at := now()
	trackingRepo := uow.TrackingRepository()
	latest, err := trackingRepo.GetLatest(ctx, cmd.OrderID())
	switch {
	case err == nil && latest.CourierID().IsEqual(cmd.CourierID()) && latest.Status() == order.MessengerDeliveryFailed:
		if err = latest.Reassign(at); err != nil {
			return err
		}
		if err = trackingRepo.Update(ctx, latest); err != nil {
			return err
		}
	case err == nil || errors.Is(err, errs.ErrObjectNotFound):
		t, newErr := tracking.NewDeliveryTracking(kernel.NewUUID(), cmd.OrderID(), cmd.CourierID(), at)
		if newErr != nil {
			return newErr
		}
		if err = trackingRepo.Add(ctx, t); err != nil {
			return err
		}
	default:
		return err
	}

	return uow.Commit(ctx)
}
