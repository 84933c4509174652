package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// ApproveWalletPaymentCommandHandler records treasury's validation and
// releases the order to logistics. An amount outside tolerance fails with an
// *errs.AmountMismatchError and nothing is stored.
type ApproveWalletPaymentCommandHandler struct {
	uowFactory OrderUoWFactory
	policy     order.Policy
}

func NewApproveWalletPaymentCommandHandler(uowFactory OrderUoWFactory, policy order.Policy) ApproveWalletPaymentCommandHandler {
	return ApproveWalletPaymentCommandHandler{uowFactory: uowFactory, policy: policy}
}

func (h ApproveWalletPaymentCommandHandler) Handle(ctx context.Context, cmd ApproveWalletPaymentCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.StatusUnknown, err
	}
	if err := cmd.Actor().Require("approve wallet payment", kernel.RoleTreasury); err != nil {
		return order.StatusUnknown, err
	}

	validation, err := order.NewPaymentValidation(
		cmd.DeclaredAmount(), cmd.Provider(), cmd.Reference(), cmd.Actor().UserID(), now(),
	)
	if err != nil {
		return order.StatusUnknown, err
	}

	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		return o.ApproveWalletPayment(validation, h.policy)
	})
	if err != nil {
		return order.StatusUnknown, err
	}
	return o.Status(), nil
}
