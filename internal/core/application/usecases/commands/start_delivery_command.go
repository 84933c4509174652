package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartDeliveryCommandIsNotConstructed = errors.New(
	"StartDeliveryCommand must be created via NewStartDeliveryCommand constructor",
)

type StartDeliveryCommand struct {
	courierCommand
	guard guard.ConstructorGuard
}

func NewStartDeliveryCommand(actor kernel.Actor, orderID kernel.UUID) (StartDeliveryCommand, error) {
	base, err := newCourierCommand(actor, orderID)
	if err != nil {
		return StartDeliveryCommand{}, err
	}
	return StartDeliveryCommand{courierCommand: base, guard: guard.NewConstructorGuard()}, nil
}

func (c StartDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrStartDeliveryCommandIsNotConstructed)
}
