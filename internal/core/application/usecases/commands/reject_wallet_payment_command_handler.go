package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

type RejectWalletPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRejectWalletPaymentCommandHandler(uowFactory OrderUoWFactory) RejectWalletPaymentCommandHandler {
	return RejectWalletPaymentCommandHandler{uowFactory: uowFactory}
}

func (h RejectWalletPaymentCommandHandler) Handle(ctx context.Context, cmd RejectWalletPaymentCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Require("reject wallet payment", kernel.RoleTreasury); err != nil {
		return err
	}

	_, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.RejectWalletPayment(cmd.Reason())
	})
	return err
}
