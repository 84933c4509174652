package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAcceptAssignmentCommandIsNotConstructed = errors.New(
	"AcceptAssignmentCommand must be created via NewAcceptAssignmentCommand constructor",
)

type AcceptAssignmentCommand struct {
	courierCommand
	guard guard.ConstructorGuard
}

func NewAcceptAssignmentCommand(actor kernel.Actor, orderID kernel.UUID) (AcceptAssignmentCommand, error) {
	base, err := newCourierCommand(actor, orderID)
	if err != nil {
		return AcceptAssignmentCommand{}, err
	}
	return AcceptAssignmentCommand{courierCommand: base, guard: guard.NewConstructorGuard()}, nil
}

func (c AcceptAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrAcceptAssignmentCommandIsNotConstructed)
}
