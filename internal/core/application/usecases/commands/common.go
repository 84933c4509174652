package commands

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// now is the clock used by handlers for recorded timestamps.
var now = func() time.Time { return time.Now().UTC() }

// orderCommand carries the fields shared by every command acting on one order.
type orderCommand struct {
	actor   kernel.Actor
	orderID kernel.UUID
}

func newOrderCommand(actor kernel.Actor, orderID kernel.UUID) (orderCommand, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return orderCommand{}, err
	}
	return orderCommand{actor: actor, orderID: orderID}, nil
}

func (c orderCommand) Actor() kernel.Actor {
	return c.actor
}

func (c orderCommand) OrderID() kernel.UUID {
	return c.orderID
}

func requireText(paramName, value string) (string, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return "", errs.NewValueIsRequiredError(paramName)
	}
	return value, nil
}
