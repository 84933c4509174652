package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrStartPackingCommandIsNotConstructed = errors.New(
	"StartPackingCommand must be created via NewStartPackingCommand constructor",
)

// StartPackingCommand moves an order into packing. carrierID may be nil for
// warehouse pickups or when the order already has a carrier.
type StartPackingCommand struct {
	orderCommand
	carrierID *kernel.UUID

	guard guard.ConstructorGuard
}

func NewStartPackingCommand(actor kernel.Actor, orderID kernel.UUID, carrierID *kernel.UUID) (StartPackingCommand, error) {
	base, err := newOrderCommand(actor, orderID)
	if err != nil {
		return StartPackingCommand{}, err
	}
	if carrierID != nil {
		if err = carrierID.Validate(); err != nil {
			return StartPackingCommand{}, err
		}
	}
	return StartPackingCommand{orderCommand: base, carrierID: carrierID, guard: guard.NewConstructorGuard()}, nil
}

func (c StartPackingCommand) Validate() error {
	return c.guard.Validate(ErrStartPackingCommandIsNotConstructed)
}

func (c StartPackingCommand) CarrierID() *kernel.UUID {
	return c.carrierID
}
