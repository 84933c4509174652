package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkReadyForPickupCommandIsNotConstructed = errors.New(
	"MarkReadyForPickupCommand must be created via NewMarkReadyForPickupCommand constructor",
)

type MarkReadyForPickupCommand struct {
	orderCommand
	guard guard.ConstructorGuard
}

func NewMarkReadyForPickupCommand(actor kernel.Actor, orderID kernel.UUID) (MarkReadyForPickupCommand, error) {
	base, err := newOrderCommand(actor, orderID)
	if err != nil {
		return MarkReadyForPickupCommand{}, err
	}
	return MarkReadyForPickupCommand{orderCommand: base, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkReadyForPickupCommand) Validate() error {
	return c.guard.Validate(ErrMarkReadyForPickupCommandIsNotConstructed)
}
