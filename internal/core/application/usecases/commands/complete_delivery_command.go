package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrCompleteDeliveryCommandIsNotConstructed = errors.New(
	"CompleteDeliveryCommand must be created via NewCompleteDeliveryCommand constructor",
)

// CompleteDeliveryCommand reports a successful hand-over and what the courier
// collected at the door. Location is optional.
type CompleteDeliveryCommand struct {
	courierCommand
	collection order.Collection
	notes      string
	location   *kernel.GeoPoint

	guard guard.ConstructorGuard
}

func NewCompleteDeliveryCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	collection order.Collection,
	notes string,
	location *kernel.GeoPoint,
) (CompleteDeliveryCommand, error) {
	base, baseErr := newCourierCommand(actor, orderID)
	errList := []error{baseErr}
	if collection.ProductMethod != nil {
		errList = append(errList, collection.ProductMethod.Validate())
	}
	if collection.FeeMethod != nil {
		errList = append(errList, collection.FeeMethod.Validate())
	}
	if location != nil {
		errList = append(errList, location.Validate())
	}
	if err := errors.Join(errList...); err != nil {
		return CompleteDeliveryCommand{}, err
	}

	return CompleteDeliveryCommand{
		courierCommand: base,
		collection:     collection,
		notes:          strings.TrimSpace(notes),
		location:       location,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c CompleteDeliveryCommand) Validate() error {
	return c.guard.Validate(ErrCompleteDeliveryCommandIsNotConstructed)
}

func (c CompleteDeliveryCommand) Collection() order.Collection { return c.collection }
func (c CompleteDeliveryCommand) Notes() string                { return c.notes }
func (c CompleteDeliveryCommand) Location() *kernel.GeoPoint   { return c.location }
