package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAcceptCashCommandIsNotConstructed = errors.New(
	"AcceptCashCommand must be created via NewAcceptCashCommand constructor",
)

// AcceptCashCommand confirms treasury physically received an order's cash.
// The accepting user is the calling actor.
type AcceptCashCommand struct {
	orderCommand
	guard guard.ConstructorGuard
}

func NewAcceptCashCommand(actor kernel.Actor, orderID kernel.UUID) (AcceptCashCommand, error) {
	base, err := newOrderCommand(actor, orderID)
	if err != nil {
		return AcceptCashCommand{}, err
	}
	return AcceptCashCommand{orderCommand: base, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptCashCommand) Validate() error {
	return c.guard.Validate(ErrAcceptCashCommandIsNotConstructed)
}
