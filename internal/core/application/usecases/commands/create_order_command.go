package commands

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCreateOrderCommandIsNotConstructed = errors.New(
	"CreateOrderCommand must be created via NewCreateOrderCommand constructor",
)

// CreateOrderCommand registers a billed order in pending_billing.
//
// Example:
//
//	cmd, err := NewCreateOrderCommand(actor, "FV-1001", order.CommercialFacts{
//	    TotalAmount:           kernel.MustMoney(100000),
//	    ShippingPaymentMethod: order.ShippingCollectOnDelivery,
//	}, invoiceNotes)
//	if err != nil {
//	    return fmt.Errorf("invalid order data: %w", err)
//	}
//	orderID, err := handler.Handle(ctx, cmd)
type CreateOrderCommand struct { //nolint:recvcheck //using for validation
	actor       kernel.Actor
	orderNumber string
	facts       order.CommercialFacts
	notes       string

	guard guard.ConstructorGuard
}

// NewCreateOrderCommand validates the caller and the order number. Commercial
// facts are validated by the aggregate.
func NewCreateOrderCommand(
	actor kernel.Actor,
	orderNumber string,
	facts order.CommercialFacts,
	notes string,
) (CreateOrderCommand, error) {
	cmd := CreateOrderCommand{
		actor: actor,
		facts: facts,
		notes: notes,
		guard: guard.NewConstructorGuard(),
	}

	number, numberErr := requireText("order number", orderNumber)
	if err := errors.Join(actor.Validate(), numberErr); err != nil {
		return CreateOrderCommand{}, err
	}
	cmd.orderNumber = number

	return cmd, nil
}

func (c CreateOrderCommand) Validate() error {
	return c.guard.Validate(ErrCreateOrderCommandIsNotConstructed)
}

func (c CreateOrderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c CreateOrderCommand) OrderNumber() string {
	return c.orderNumber
}

func (c CreateOrderCommand) Facts() order.CommercialFacts {
	return c.facts
}

// Notes returns the free-text invoice notes, possibly empty.
func (c CreateOrderCommand) Notes() string {
	return c.notes
}
