package ports

import (
	"context"
	"time"

	"fulfillment/internal/core/domain/model/cashclosing"
	"fulfillment/internal/core/domain/model/kernel"
)

// CashClosingRepository persists closings together with their details.
// Every "ForUpdate" read locks the closing row until the surrounding unit of
// work ends, serializing read-modify-write cycles per closing.
type CashClosingRepository interface {
	// GetOrCreateForUpdate returns the closing of courierID on date, creating
	// an empty one if none exists.
	GetOrCreateForUpdate(ctx context.Context, courierID kernel.UUID, date time.Time) (*cashclosing.CashClosing, error)

	// GetForUpdateByOrder returns the closing holding a detail for orderID.
	GetForUpdateByOrder(ctx context.Context, orderID kernel.UUID) (*cashclosing.CashClosing, error)

	GetForUpdate(ctx context.Context, id kernel.UUID) (*cashclosing.CashClosing, error)

	// ListIDsByDate returns the identifiers of all closings of a calendar day.
	ListIDsByDate(ctx context.Context, date time.Time) ([]kernel.UUID, error)

	// Save writes the closing row and upserts its details.
	Save(ctx context.Context, aggregate *cashclosing.CashClosing) error
}
