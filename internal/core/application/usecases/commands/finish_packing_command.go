package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrFinishPackingCommandIsNotConstructed = errors.New(
	"FinishPackingCommand must be created via NewFinishPackingCommand constructor",
)

type FinishPackingCommand struct {
	orderCommand
	guard guard.ConstructorGuard
}

func NewFinishPackingCommand(actor kernel.Actor, orderID kernel.UUID) (FinishPackingCommand, error) {
	base, err := newOrderCommand(actor, orderID)
	if err != nil {
		return FinishPackingCommand{}, err
	}
	return FinishPackingCommand{orderCommand: base, guard: guard.NewConstructorGuard()}, nil
}

func (c FinishPackingCommand) Validate() error {
	return c.guard.Validate(ErrFinishPackingCommandIsNotConstructed)
}
