package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrMarkDeliveryFailedCommandIsNotConstructed = errors.New(
	"MarkDeliveryFailedCommand must be created via NewMarkDeliveryFailedCommand constructor",
)

type MarkDeliveryFailedCommand struct {
	courierCommand
	reason string

	guard guard.ConstructorGuard
}

func NewMarkDeliveryFailedCommand(actor kernel.Actor, orderID kernel.UUID, reason string) (MarkDeliveryFailedCommand, error) {
	base, baseErr := newCourierCommand(actor, orderID)
	reason, reasonErr := requireText("failure reason", reason)
	if err := errors.Join(baseErr, reasonErr); err != nil {
		return MarkDeliveryFailedCommand{}, err
	}
	return MarkDeliveryFailedCommand{courierCommand: base, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c MarkDeliveryFailedCommand) Validate() error {
	return c.guard.Validate(ErrMarkDeliveryFailedCommandIsNotConstructed)
}

func (c MarkDeliveryFailedCommand) Reason() string {
	return c.reason
}
