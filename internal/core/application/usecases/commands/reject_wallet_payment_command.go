package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectWalletPaymentCommandIsNotConstructed = errors.New(
	"RejectWalletPaymentCommand must be created via NewRejectWalletPaymentCommand constructor",
)

// RejectWalletPaymentCommand cancels an order whose funds treasury could not
// find. A reason is mandatory.
type RejectWalletPaymentCommand struct {
	orderCommand
	reason string

	guard guard.ConstructorGuard
}

func NewRejectWalletPaymentCommand(actor kernel.Actor, orderID kernel.UUID, reason string) (RejectWalletPaymentCommand, error) {
	base, baseErr := newOrderCommand(actor, orderID)
	reason, reasonErr := requireText("rejection reason", reason)
	if err := errors.Join(baseErr, reasonErr); err != nil {
		return RejectWalletPaymentCommand{}, err
	}
	return RejectWalletPaymentCommand{orderCommand: base, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c RejectWalletPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRejectWalletPaymentCommandIsNotConstructed)
}

func (c RejectWalletPaymentCommand) Reason() string {
	return c.reason
}
