package commands

import (
	"errors"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDeliverOrderCommandIsNotConstructed = errors.New(
	"DeliverOrderCommand must be created via NewDeliverOrderCommand constructor",
)

// Handover is where an order left the company's custody without a courier.
type Handover string

const (
	HandoverCarrier   Handover = "carrier"
	HandoverWarehouse Handover = "warehouse"
)

// DeliverOrderCommand closes an order handed to a carrier or picked up at
// the warehouse counter.
type DeliverOrderCommand struct {
	orderCommand
	handover Handover

	guard guard.ConstructorGuard
}

func NewDeliverOrderCommand(actor kernel.Actor, orderID kernel.UUID, handover Handover) (DeliverOrderCommand, error) {
	base, baseErr := newOrderCommand(actor, orderID)
	var handoverErr error
	if handover != HandoverCarrier && handover != HandoverWarehouse {
		handoverErr = errs.NewValueIsInvalidErrorWithCause("handover", fmt.Errorf("%q is not carrier or warehouse", string(handover)))
	}
	if err := errors.Join(baseErr, handoverErr); err != nil {
		return DeliverOrderCommand{}, err
	}
	return DeliverOrderCommand{orderCommand: base, handover: handover, guard: guard.NewConstructorGuard()}, nil
}

func (c DeliverOrderCommand) Validate() error {
	return c.guard.Validate(ErrDeliverOrderCommandIsNotConstructed)
}

func (c DeliverOrderCommand) Handover() Handover {
	return c.handover
}
