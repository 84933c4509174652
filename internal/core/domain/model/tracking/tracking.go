package tracking

import (
	"errors"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
)

var ErrTrackingIsNotConstructed = errors.New("DeliveryTracking must be created via NewDeliveryTracking constructor")

// DeliveryTracking records one courier's progress on one order. It is kept
// in step with the order's messenger status by the application layer; the
// timestamps are only ever set, never cleared.
type DeliveryTracking struct {
	id        kernel.UUID
	orderID   kernel.UUID
	courierID kernel.UUID
	status    order.MessengerStatus

	assignedAt        time.Time
	acceptedAt        *time.Time
	rejectedAt        *time.Time
	rejectionReason   string
	startedDeliveryAt *time.Time
	deliveredAt       *time.Time
	failedAt          *time.Time
	failureReason     string
	cancelledAt       *time.Time
	cancelReason      string

	paymentCollected     kernel.Money
	deliveryFeeCollected kernel.Money
	paymentMethod        *order.CollectionMethod
	deliveryFeeMethod    *order.CollectionMethod
	notes                string
	location             *kernel.GeoPoint

	isConstructed bool
}

// NewDeliveryTracking opens a tracking cycle for a fresh assignment.
func NewDeliveryTracking(id, orderID, courierID kernel.UUID, assignedAt time.Time) (*DeliveryTracking, error) {
	if err := errors.Join(id.Validate(), orderID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}
	if assignedAt.IsZero() {
		return nil, errs.NewValueIsRequiredError("assigned at")
	}
	return &DeliveryTracking{
		id:            id,
		orderID:       orderID,
		courierID:     courierID,
		status:        order.MessengerAssigned,
		assignedAt:    assignedAt,
		isConstructed: true,
	}, nil
}

func (t *DeliveryTracking) Validate() error {
	if t == nil || !t.isConstructed {
		return ErrTrackingIsNotConstructed
	}
	return nil
}

func (t *DeliveryTracking) ID() kernel.UUID                        { return t.id }
func (t *DeliveryTracking) OrderID() kernel.UUID                   { return t.orderID }
func (t *DeliveryTracking) CourierID() kernel.UUID                 { return t.courierID }
func (t *DeliveryTracking) Status() order.MessengerStatus          { return t.status }
func (t *DeliveryTracking) AssignedAt() time.Time                  { return t.assignedAt }
func (t *DeliveryTracking) AcceptedAt() *time.Time                 { return t.acceptedAt }
func (t *DeliveryTracking) RejectedAt() *time.Time                 { return t.rejectedAt }
func (t *DeliveryTracking) RejectionReason() string                { return t.rejectionReason }
func (t *DeliveryTracking) StartedDeliveryAt() *time.Time          { return t.startedDeliveryAt }
func (t *DeliveryTracking) DeliveredAt() *time.Time                { return t.deliveredAt }
func (t *DeliveryTracking) FailedAt() *time.Time                   { return t.failedAt }
func (t *DeliveryTracking) FailureReason() string                  { return t.failureReason }
func (t *DeliveryTracking) CancelledAt() *time.Time                { return t.cancelledAt }
func (t *DeliveryTracking) CancelReason() string                   { return t.cancelReason }
func (t *DeliveryTracking) PaymentCollected() kernel.Money         { return t.paymentCollected }
func (t *DeliveryTracking) DeliveryFeeCollected() kernel.Money     { return t.deliveryFeeCollected }
func (t *DeliveryTracking) PaymentMethod() *order.CollectionMethod { return t.paymentMethod }
func (t *DeliveryTracking) DeliveryFeeMethod() *order.CollectionMethod {
	return t.deliveryFeeMethod
}
func (t *DeliveryTracking) Notes() string              { return t.notes }
func (t *DeliveryTracking) Location() *kernel.GeoPoint { return t.location }

// IsOpen reports whether the cycle can still be continued by the same courier.
func (t *DeliveryTracking) IsOpen() bool {
	return t.status != order.MessengerReturnedToLogistics && t.status != order.MessengerDelivered
}

// ExpectedCash is what the courier should hand over for this delivery.
func (t *DeliveryTracking) ExpectedCash() kernel.Money {
	return t.paymentCollected.Add(t.deliveryFeeCollected)
}

// Reassign refreshes the cycle when the same courier gets the order again
// after a failed attempt.
func (t *DeliveryTracking) Reassign(at time.Time) error {
	if t.status != order.MessengerDeliveryFailed && t.status != order.MessengerAssigned {
		return errs.NewInvalidTransitionError("reassign", t.status.String())
	}
	t.status = order.MessengerAssigned
	t.assignedAt = at
	return nil
}

func (t *DeliveryTracking) Accept(at time.Time) error {
	if err := t.expect("accept", order.MessengerAssigned); err != nil {
		return err
	}
	t.status = order.MessengerAccepted
	t.acceptedAt = &at
	return nil
}

// Reject closes the cycle; a later assignment opens a new one.
func (t *DeliveryTracking) Reject(reason string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}
	if err := t.expect("reject", order.MessengerAssigned); err != nil {
		return err
	}
	t.status = order.MessengerReturnedToLogistics
	t.rejectedAt = &at
	t.rejectionReason = reason
	return nil
}

func (t *DeliveryTracking) StartDelivery(at time.Time) error {
	if err := t.expect("start delivery", order.MessengerAccepted); err != nil {
		return err
	}
	t.status = order.MessengerInDelivery
	t.startedDeliveryAt = &at
	return nil
}

// Complete stores what was collected at the door.
func (t *DeliveryTracking) Complete(c order.Collection, notes string, location *kernel.GeoPoint, at time.Time) error {
	if err := t.expect("complete delivery", order.MessengerInDelivery); err != nil {
		return err
	}
	if location != nil {
		if err := location.Validate(); err != nil {
			return err
		}
	}
	t.status = order.MessengerDelivered
	t.deliveredAt = &at
	t.paymentCollected = c.ProductCollected()
	t.deliveryFeeCollected = c.FeeCollected()
	t.paymentMethod = c.ProductMethod
	t.deliveryFeeMethod = c.FeeMethod
	t.notes = strings.TrimSpace(notes)
	t.location = location
	return nil
}

func (t *DeliveryTracking) Fail(reason string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("failure reason")
	}
	if err := t.expect("mark delivery failed", order.MessengerInDelivery); err != nil {
		return err
	}
	t.status = order.MessengerDeliveryFailed
	t.failedAt = &at
	t.failureReason = reason
	return nil
}

// Cancel closes a cycle whose order was cancelled before the courier
// delivered it. The goods go back to logistics.
func (t *DeliveryTracking) Cancel(reason string, at time.Time) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}
	switch t.status {
	case order.MessengerAssigned, order.MessengerAccepted, order.MessengerInDelivery, order.MessengerDeliveryFailed:
	default:
		return errs.NewInvalidTransitionError("cancel", t.status.String())
	}
	t.status = order.MessengerReturnedToLogistics
	t.cancelledAt = &at
	t.cancelReason = reason
	return nil
}

func (t *DeliveryTracking) expect(operation string, status order.MessengerStatus) error {
	if t.status != status {
		return errs.NewInvalidTransitionError(operation, t.status.String())
	}
	return nil
}
