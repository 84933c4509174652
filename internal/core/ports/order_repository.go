// Package ports defines the contracts between the core and its adapters:
// repositories, the unit of work and the external collaborators.
package ports

import (
	"context"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// OrderRepository defines the persistence contract for order aggregates.
type OrderRepository interface {
	// Add persists a new order. A duplicate order number is a ValueIsInvalidError.
	Add(ctx context.Context, aggregate *order.Order) error

	// Update persists changes with a compare-and-swap on the aggregate version.
	// A concurrent writer makes it fail with a VersionIsInvalidError and
	// nothing is written.
	Update(ctx context.Context, aggregate *order.Order) error

	// Get retrieves an order by its identifier.
	Get(ctx context.Context, id kernel.UUID) (*order.Order, error)
}
