package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetOrderQueryIsNotConstructed = errors.New(
	"GetOrderQuery must be created via NewGetOrderQuery constructor",
)

// GetOrderQuery reads one order with its workflow state and the latest
// delivery cycle. Couriers may only read orders assigned to them.
type GetOrderQuery struct {
	actor   kernel.Actor
	orderID kernel.UUID

	guard guard.ConstructorGuard
}

func NewGetOrderQuery(actor kernel.Actor, orderID kernel.UUID) (GetOrderQuery, error) {
	if err := errors.Join(actor.Validate(), orderID.Validate()); err != nil {
		return GetOrderQuery{}, err
	}
	return GetOrderQuery{actor: actor, orderID: orderID, guard: guard.NewConstructorGuard()}, nil
}

func (q GetOrderQuery) Validate() error {
	return q.guard.Validate(ErrGetOrderQueryIsNotConstructed)
}

func (q GetOrderQuery) Actor() kernel.Actor  { return q.actor }
func (q GetOrderQuery) OrderID() kernel.UUID { return q.orderID }

type GetOrderQueryResponse struct {
	ID                    kernel.UUID
	OrderNumber           string
	Status                string
	MessengerStatus       string
	MessengerID           *kernel.UUID
	CarrierID             *kernel.UUID
	TrackingNumber        string
	TotalAmount           decimal.Decimal
	PaidAmount            decimal.Decimal
	ExternalBalance       *decimal.Decimal
	DeliveryFee           decimal.Decimal
	DeliveryFeeDue        *decimal.Decimal
	PaymentMethod         string
	DeliveryMethod        string
	ShippingPaymentMethod string
	ShippingDate          *time.Time
	Recipient             order.Recipient
	DeliveryAttempts      int
	CancellationReason    string
	Version               int
	UpdatedAt             time.Time
	Delivery              *DeliveryCycleResponse
}

// DeliveryCycleResponse summarizes the most recent courier assignment.
type DeliveryCycleResponse struct {
	CourierID            kernel.UUID
	Status               string
	AssignedAt           time.Time
	AcceptedAt           *time.Time
	StartedDeliveryAt    *time.Time
	DeliveredAt          *time.Time
	FailedAt             *time.Time
	CancelledAt          *time.Time
	RejectionReason      string
	FailureReason        string
	CancelReason         string
	PaymentCollected     decimal.Decimal
	DeliveryFeeCollected decimal.Decimal
	Notes                string
}
