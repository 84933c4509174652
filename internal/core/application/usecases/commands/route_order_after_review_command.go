package commands

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRouteOrderAfterReviewCommandIsNotConstructed = errors.New(
	"RouteOrderAfterReviewCommand must be created via NewRouteOrderAfterReviewCommand constructor",
)

// RouteOrderAfterReviewCommand is billing's release of a reviewed order.
type RouteOrderAfterReviewCommand struct {
	orderCommand
	paymentMethod  order.PaymentMethod
	deliveryMethod order.DeliveryMethod
	shippingDate   time.Time

	guard guard.ConstructorGuard
}

func NewRouteOrderAfterReviewCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	paymentMethod order.PaymentMethod,
	deliveryMethod order.DeliveryMethod,
	shippingDate time.Time,
) (RouteOrderAfterReviewCommand, error) {
	base, baseErr := newOrderCommand(actor, orderID)
	var dateErr error
	if shippingDate.IsZero() {
		dateErr = errs.NewValueIsRequiredError("shipping date")
	}
	if err := errors.Join(baseErr, paymentMethod.Validate(), deliveryMethod.Validate(), dateErr); err != nil {
		return RouteOrderAfterReviewCommand{}, err
	}

	return RouteOrderAfterReviewCommand{
		orderCommand:   base,
		paymentMethod:  paymentMethod,
		deliveryMethod: deliveryMethod,
		shippingDate:   shippingDate,
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c RouteOrderAfterReviewCommand) Validate() error {
	return c.guard.Validate(ErrRouteOrderAfterReviewCommandIsNotConstructed)
}

func (c RouteOrderAfterReviewCommand) PaymentMethod() order.PaymentMethod   { return c.paymentMethod }
func (c RouteOrderAfterReviewCommand) DeliveryMethod() order.DeliveryMethod { return c.deliveryMethod }
func (c RouteOrderAfterReviewCommand) ShippingDate() time.Time              { return c.shippingDate }
