package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrRejectAssignmentCommandIsNotConstructed = errors.New(
	"RejectAssignmentCommand must be created via NewRejectAssignmentCommand constructor",
)

type RejectAssignmentCommand struct {
	courierCommand
	reason string

	guard guard.ConstructorGuard
}

func NewRejectAssignmentCommand(actor kernel.Actor, orderID kernel.UUID, reason string) (RejectAssignmentCommand, error) {
	base, baseErr := newCourierCommand(actor, orderID)
	reason, reasonErr := requireText("rejection reason", reason)
	if err := errors.Join(baseErr, reasonErr); err != nil {
		return RejectAssignmentCommand{}, err
	}
	return RejectAssignmentCommand{courierCommand: base, reason: reason, guard: guard.NewConstructorGuard()}, nil
}

func (c RejectAssignmentCommand) Validate() error {
	return c.guard.Validate(ErrRejectAssignmentCommandIsNotConstructed)
}

func (c RejectAssignmentCommand) Reason() string {
	return c.reason
}
