package queries

import (
	"context"
	"fmt"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

type GetShippingLabelQueryHandler struct {
	orders   ports.OrderRepository
	renderer ports.DocumentRenderer
}

func NewGetShippingLabelQueryHandler(orders ports.OrderRepository, renderer ports.DocumentRenderer) GetShippingLabelQueryHandler {
	return GetShippingLabelQueryHandler{orders: orders, renderer: renderer}
}

// Handle renders the label of an order that is being prepared or has left
// the warehouse. Cancelled orders and orders still in billing have none.
func (h GetShippingLabelQueryHandler) Handle(ctx context.Context, query GetShippingLabelQuery) (ShippingLabel, error) {
	if err := query.Validate(); err != nil {
		return ShippingLabel{}, err
	}
	if err := query.Actor().Require("print shipping label", kernel.RoleLogistics); err != nil {
		return ShippingLabel{}, err
	}

	o, err := h.orders.Get(ctx, query.OrderID())
	if err != nil {
		return ShippingLabel{}, err
	}
	switch o.Status() {
	case order.StatusPendingBilling, order.StatusWalletReview, order.StatusCancelled:
		return ShippingLabel{}, errs.NewPreconditionFailedError(
			fmt.Sprintf("no shipping label for an order in status %s", o.Status()))
	}

	content, contentType, err := h.renderer.RenderShippingLabel(ctx, o.Snapshot())
	if err != nil {
		return ShippingLabel{}, fmt.Errorf("render shipping label: %w", err)
	}
	fileName := "label-" + o.OrderNumber()
	if strings.HasPrefix(contentType, "text/plain") {
		fileName += ".txt"
	}
	return ShippingLabel{
		FileName:    fileName,
		ContentType: contentType,
		Content:     content,
	}, nil
}
