package trackingrepo

import (
	"context"
	"errors"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"

	"gorm.io/gorm"
)

// GormTrackingRepository implements ports.TrackingRepository using GORM.
type GormTrackingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormTrackingRepository(db *gorm.DB, tracker aggregateTracker) *GormTrackingRepository {
	return &GormTrackingRepository{
		db:      db,
		tracker: tracker,
	}
}

func (r *GormTrackingRepository) Add(ctx context.Context, aggregate *tracking.DeliveryTracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	if err := r.db.WithContext(ctx).Create(&dto).Error; err != nil {
		return err
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTrackingRepository) Update(ctx context.Context, aggregate *tracking.DeliveryTracking) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	dto := fromDomain(aggregate)
	result := r.db.WithContext(ctx).
		Model(&TrackingDTO{}).
		Where("id = ?", dto.ID).
		Select("*").
		Omit("id", "order_id", "courier_id").
		Updates(&dto)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("delivery tracking", aggregate.ID().String())
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormTrackingRepository) GetLatest(ctx context.Context, orderID kernel.UUID) (*tracking.DeliveryTracking, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	return r.latest(r.db.WithContext(ctx).Where("order_id = ?", orderID.Bytes()), orderID)
}

func (r *GormTrackingRepository) GetLatestForCourier(
	ctx context.Context,
	orderID, courierID kernel.UUID,
) (*tracking.DeliveryTracking, error) {
	if err := errors.Join(orderID.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}
	query := r.db.WithContext(ctx).Where("order_id = ? AND courier_id = ?", orderID.Bytes(), courierID.Bytes())
	return r.latest(query, orderID)
}

func (r *GormTrackingRepository) latest(query *gorm.DB, orderID kernel.UUID) (*tracking.DeliveryTracking, error) {
	var dto TrackingDTO
	if err := query.Order("assigned_at DESC").First(&dto).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("delivery tracking", orderID.String())
		}
		return nil, err
	}
	return toDomain(dto)
}
