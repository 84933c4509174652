package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

type FinishPackingCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewFinishPackingCommandHandler(uowFactory OrderUoWFactory) FinishPackingCommandHandler {
	return FinishPackingCommandHandler{uowFactory: uowFactory}
}

func (h FinishPackingCommandHandler) Handle(ctx context.Context, cmd FinishPackingCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Require("finish packing", kernel.RoleLogistics); err != nil {
		return err
	}

	_, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), (*order.Order).FinishPacking)
	return err
}
