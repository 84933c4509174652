package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrUpdateFreeShippingThresholdCommandIsNotConstructed = errors.New(
	"UpdateFreeShippingThresholdCommand must be created via NewUpdateFreeShippingThresholdCommand constructor",
)

// UpdateFreeShippingThresholdCommand changes the order total from which
// locally delivered orders ship for free. Zero disables free shipping.
type UpdateFreeShippingThresholdCommand struct {
	actor     kernel.Actor
	threshold kernel.Money

	guard guard.ConstructorGuard
}

func NewUpdateFreeShippingThresholdCommand(
	actor kernel.Actor,
	threshold kernel.Money,
) (UpdateFreeShippingThresholdCommand, error) {
	if err := actor.Validate(); err != nil {
		return UpdateFreeShippingThresholdCommand{}, err
	}
	return UpdateFreeShippingThresholdCommand{
		actor:     actor,
		threshold: threshold,
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (c UpdateFreeShippingThresholdCommand) Validate() error {
	return c.guard.Validate(ErrUpdateFreeShippingThresholdCommandIsNotConstructed)
}

func (c UpdateFreeShippingThresholdCommand) Actor() kernel.Actor {
	return c.actor
}

func (c UpdateFreeShippingThresholdCommand) Threshold() kernel.Money {
	return c.threshold
}
