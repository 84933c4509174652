package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrDispatchOrderCommandIsNotConstructed = errors.New(
	"DispatchOrderCommand must be created via NewDispatchOrderCommand constructor",
)

// DispatchOrderCommand hands an order to its carrier. The tracking number is
// mandatory for national carriers.
type DispatchOrderCommand struct {
	orderCommand
	trackingNumber string

	guard guard.ConstructorGuard
}

func NewDispatchOrderCommand(actor kernel.Actor, orderID kernel.UUID, trackingNumber string) (DispatchOrderCommand, error) {
	base, err := newOrderCommand(actor, orderID)
	if err != nil {
		return DispatchOrderCommand{}, err
	}
	return DispatchOrderCommand{
		orderCommand:   base,
		trackingNumber: strings.TrimSpace(trackingNumber),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c DispatchOrderCommand) Validate() error {
	return c.guard.Validate(ErrDispatchOrderCommandIsNotConstructed)
}

func (c DispatchOrderCommand) TrackingNumber() string {
	return c.trackingNumber
}
