// Package trackingrepo persists delivery tracking cycles. One row is one
// courier assignment; rows are never deleted.
package trackingrepo

import (
	"errors"
	"time"

	"fulfillment/internal/adapters/out/postgres/dbtypes"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type TrackingDTO struct {
	ID        uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderID   uuid.UUID `gorm:"type:uuid;not null;index:idx_delivery_trackings_order"`
	CourierID uuid.UUID `gorm:"type:uuid;not null;index:idx_delivery_trackings_courier"`
	Status    string    `gorm:"size:32;not null"`

	AssignedAt        time.Time `gorm:"not null;index:idx_delivery_trackings_order"`
	AcceptedAt        *time.Time
	RejectedAt        *time.Time
	RejectionReason   string
	StartedDeliveryAt *time.Time
	DeliveredAt       *time.Time
	FailedAt          *time.Time
	FailureReason     string
	CancelledAt       *time.Time
	CancelReason      string

	PaymentCollected     decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	DeliveryFeeCollected decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	PaymentMethod        *string         `gorm:"size:16"`
	DeliveryFeeMethod    *string         `gorm:"size:16"`
	Notes                string
	Latitude             *float64
	Longitude            *float64
}

func (TrackingDTO) TableName() string {
	return "delivery_trackings"
}

func fromDomain(t *tracking.DeliveryTracking) TrackingDTO {
	s := t.Snapshot()
	dto := TrackingDTO{
		ID:                   s.ID.Bytes(),
		OrderID:              s.OrderID.Bytes(),
		CourierID:            s.CourierID.Bytes(),
		Status:               s.Status.String(),
		AssignedAt:           s.AssignedAt,
		AcceptedAt:           s.AcceptedAt,
		RejectedAt:           s.RejectedAt,
		RejectionReason:      s.RejectionReason,
		StartedDeliveryAt:    s.StartedDeliveryAt,
		DeliveredAt:          s.DeliveredAt,
		FailedAt:             s.FailedAt,
		FailureReason:        s.FailureReason,
		CancelledAt:          s.CancelledAt,
		CancelReason:         s.CancelReason,
		PaymentCollected:     s.PaymentCollected.Decimal(),
		DeliveryFeeCollected: s.DeliveryFeeCollected.Decimal(),
		PaymentMethod:        methodPtr(s.PaymentMethod),
		DeliveryFeeMethod:    methodPtr(s.DeliveryFeeMethod),
		Notes:                s.Notes,
	}
	if s.Location != nil {
		lat, lon := s.Location.Latitude(), s.Location.Longitude()
		dto.Latitude, dto.Longitude = &lat, &lon
	}
	return dto
}

func toDomain(dto TrackingDTO) (*tracking.DeliveryTracking, error) {
	id, idErr := dbtypes.ToUUID(dto.ID)
	orderID, orderErr := dbtypes.ToUUID(dto.OrderID)
	courierID, courierErr := dbtypes.ToUUID(dto.CourierID)
	status, statusErr := order.ParseMessengerStatus(dto.Status)
	payment, paymentErr := kernel.NewMoney(dto.PaymentCollected)
	fee, feeErr := kernel.NewMoney(dto.DeliveryFeeCollected)
	if err := errors.Join(idErr, orderErr, courierErr, statusErr, paymentErr, feeErr); err != nil {
		return nil, err
	}

	var location *kernel.GeoPoint
	if dto.Latitude != nil && dto.Longitude != nil {
		point, err := kernel.NewGeoPoint(*dto.Latitude, *dto.Longitude)
		if err != nil {
			return nil, err
		}
		location = &point
	}

	return tracking.RestoreDeliveryTracking(tracking.Snapshot{
		ID:                   id,
		OrderID:              orderID,
		CourierID:            courierID,
		Status:               status,
		AssignedAt:           dto.AssignedAt,
		AcceptedAt:           dto.AcceptedAt,
		RejectedAt:           dto.RejectedAt,
		RejectionReason:      dto.RejectionReason,
		StartedDeliveryAt:    dto.StartedDeliveryAt,
		DeliveredAt:          dto.DeliveredAt,
		FailedAt:             dto.FailedAt,
		FailureReason:        dto.FailureReason,
		CancelledAt:          dto.CancelledAt,
		CancelReason:         dto.CancelReason,
		PaymentCollected:     payment,
		DeliveryFeeCollected: fee,
		PaymentMethod:        toMethod(dto.PaymentMethod),
		DeliveryFeeMethod:    toMethod(dto.DeliveryFeeMethod),
		Notes:                dto.Notes,
		Location:             location,
	})
}

func methodPtr(m *order.CollectionMethod) *string {
	if m == nil {
		return nil
	}
	s := string(*m)
	return &s
}

func toMethod(s *string) *order.CollectionMethod {
	if s == nil {
		return nil
	}
	m := order.CollectionMethod(*s)
	return &m
}
