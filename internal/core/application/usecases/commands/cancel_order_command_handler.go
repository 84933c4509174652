package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

type CancelOrderCommandHandler struct {
	uowFactory DeliveryUoWFactory
}

func NewCancelOrderCommandHandler(uowFactory DeliveryUoWFactory) CancelOrderCommandHandler {
	return CancelOrderCommandHandler{uowFactory: uowFactory}
}

// Handle cancels the order. When a courier still holds it, that courier's
// tracking cycle is closed in the same unit of work.
func (h CancelOrderCommandHandler) Handle(ctx context.Context, cmd CancelOrderCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Require("cancel order", kernel.RoleBiller, kernel.RoleLogistics); err != nil {
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

	courierID := o.MessengerID()
	if err = o.Cancel(cmd.Reason()); err != nil {
		return err
	}

	if courierID != nil {
		trackingRepo := uow.TrackingRepository()
		t, err := trackingRepo.GetLatestForCourier(ctx, o.ID(), *courierID)
		if err != nil {
			return err
		}
		if err = t.Cancel(cmd.Reason(), now()); err != nil {
			return err
		}
		if err = trackingRepo.Update(ctx, t); err != nil {
			return fmt.Errorf("update delivery tracking %s: %w", t.ID(), err)
		}
	}

	if err = orderRepo.Update(ctx, o); err != nil {
		return fmt.Errorf("update order %s: %w", o.OrderNumber(), err)
	}

	return uow.Commit(ctx)
}
