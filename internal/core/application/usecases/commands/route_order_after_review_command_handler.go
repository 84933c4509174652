package commands

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// RouteOrderAfterReviewCommandHandler sends a reviewed order to wallet
// review or straight to logistics, depending on how it is paid and delivered.
type RouteOrderAfterReviewCommandHandler struct {
	uowFactory OrderUoWFactory
}

func NewRouteOrderAfterReviewCommandHandler(uowFactory OrderUoWFactory) RouteOrderAfterReviewCommandHandler {
	return RouteOrderAfterReviewCommandHandler{uowFactory: uowFactory}
}

// Handle returns the status the order was routed to.
func (h RouteOrderAfterReviewCommandHandler) Handle(ctx context.Context, cmd RouteOrderAfterReviewCommand) (order.Status, error) {
	if err := cmd.Validate(); err != nil {
		return order.StatusUnknown, err
	}
	if err := cmd.Actor().Require("route order after review", kernel.RoleBiller); err != nil {
		return order.StatusUnknown, err
	}

	o, err := transitionOrder(ctx, h.uowFactory, cmd.OrderID(), func(o *order.Order) error {
		_, routeErr := o.RouteAfterReview(cmd.PaymentMethod(), cmd.DeliveryMethod(), cmd.ShippingDate())
		return routeErr
	})
	if err != nil {
		return order.StatusUnknown, err
	}
	return o.Status(), nil
}
