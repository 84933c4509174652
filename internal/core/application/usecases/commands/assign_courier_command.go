package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrAssignCourierCommandIsNotConstructed = errors.New(
	"AssignCourierCommand must be created via NewAssignCourierCommand constructor",
)

// AssignCourierCommand attaches an in-house courier to an order.
type AssignCourierCommand struct {
	orderCommand
	courierID kernel.UUID

	guard guard.ConstructorGuard
}

func NewAssignCourierCommand(actor kernel.Actor, orderID, courierID kernel.UUID) (AssignCourierCommand, error) {
	base, baseErr := newOrderCommand(actor, orderID)
	if err := errors.Join(baseErr, courierID.Validate()); err != nil {
		return AssignCourierCommand{}, err
	}
	return AssignCourierCommand{orderCommand: base, courierID: courierID, guard: guard.NewConstructorGuard()}, nil
}

func (c AssignCourierCommand) Validate() error {
	return c.guard.Validate(ErrAssignCourierCommandIsNotConstructed)
}

func (c AssignCourierCommand) CourierID() kernel.UUID {
	return c.courierID
}
