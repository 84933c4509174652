package queries

import (
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/guard"
)

var ErrGetShippingLabelQueryIsNotConstructed = errors.New(
	"GetShippingLabelQuery must be created via NewGetShippingLabelQuery constructor",
)

type GetShippingLabelQuery struct {
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetShippingLabelQuery(actor kernel.Actor, orderID kernel.UUID) (GetShippingLabelQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetShippingLabelQuery{}, err
	}
	return GetShippingLabelQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetShippingLabelQuery) Validate() error {
	return q.guard.Validate(ErrGetShippingLabelQueryIsNotConstructed)
}

func (q GetShippingLabelQuery) Actor() kernel.Actor  { return q.actor }
func (q GetShippingLabelQuery) OrderID() kernel.UUID { return q.orderID }

// ShippingLabel is a rendered document ready to be sent to a printer.
type ShippingLabel struct {
	FileName    string
	ContentType string
	Content     []byte
}
