package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
)

// TrackingRepository persists delivery tracking cycles. Rows are never deleted.
type TrackingRepository interface {
	Add(ctx context.Context, aggregate *tracking.DeliveryTracking) error
	Update(ctx context.Context, aggregate *tracking.DeliveryTracking) error

	// GetLatest returns the most recently assigned cycle of an order.
	GetLatest(ctx context.Context, orderID kernel.UUID) (*tracking.DeliveryTracking, error)

	// GetLatestForCourier returns the most recently assigned cycle of an order
	// held by courierID.
	GetLatestForCourier(ctx context.Context, orderID, courierID kernel.UUID) (*tracking.DeliveryTracking, error)
}
