package tracking

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// Snapshot is the persisted form of a DeliveryTracking.
type Snapshot struct {
	ID                   kernel.UUID
	OrderID              kernel.UUID
	CourierID            kernel.UUID
	Status               order.MessengerStatus
	AssignedAt           time.Time
	AcceptedAt           *time.Time
	RejectedAt           *time.Time
	RejectionReason      string
	StartedDeliveryAt    *time.Time
	DeliveredAt          *time.Time
	FailedAt             *time.Time
	FailureReason        string
	CancelledAt          *time.Time
	CancelReason         string
	PaymentCollected     kernel.Money
	DeliveryFeeCollected kernel.Money
	PaymentMethod        *order.CollectionMethod
	DeliveryFeeMethod    *order.CollectionMethod
	Notes                string
	Location             *kernel.GeoPoint
}

func RestoreDeliveryTracking(s Snapshot) (*DeliveryTracking, error) {
	if err := errors.Join(s.ID.Validate(), s.OrderID.Validate(), s.CourierID.Validate(), s.Status.Validate()); err != nil {
		return nil, err
	}
	return &DeliveryTracking{
		id:                   s.ID,
		orderID:              s.OrderID,
		courierID:            s.CourierID,
		status:               s.Status,
		assignedAt:           s.AssignedAt,
		acceptedAt:           s.AcceptedAt,
		rejectedAt:           s.RejectedAt,
		rejectionReason:      s.RejectionReason,
		startedDeliveryAt:    s.StartedDeliveryAt,
		deliveredAt:          s.DeliveredAt,
		failedAt:             s.FailedAt,
		failureReason:        s.FailureReason,
		cancelledAt:          s.CancelledAt,
		cancelReason:         s.CancelReason,
		paymentCollected:     s.PaymentCollected,
		deliveryFeeCollected: s.DeliveryFeeCollected,
		paymentMethod:        s.PaymentMethod,
		deliveryFeeMethod:    s.DeliveryFeeMethod,
		notes:                s.Notes,
		location:             s.Location,
		isConstructed:        true,
	}, nil
}

func (t *DeliveryTracking) Snapshot() Snapshot {
	return Snapshot{
		ID:                   t.id,
		OrderID:              t.orderID,
		CourierID:            t.courierID,
		Status:               t.status,
		AssignedAt:           t.assignedAt,
		AcceptedAt:           t.acceptedAt,
		RejectedAt:           t.rejectedAt,
		RejectionReason:      t.rejectionReason,
		StartedDeliveryAt:    t.startedDeliveryAt,
		DeliveredAt:          t.deliveredAt,
		FailedAt:             t.failedAt,
		FailureReason:        t.failureReason,
		CancelledAt:          t.cancelledAt,
		CancelReason:         t.cancelReason,
		PaymentCollected:     t.paymentCollected,
		DeliveryFeeCollected: t.deliveryFeeCollected,
		PaymentMethod:        t.paymentMethod,
		DeliveryFeeMethod:    t.deliveryFeeMethod,
		Notes:                t.notes,
		Location:             t.location,
	}
}
