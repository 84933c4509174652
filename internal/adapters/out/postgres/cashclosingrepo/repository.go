package cashclosingrepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/adapters/out/postgres/dbtypes"
	"fulfillment/internal/core/domain/model/cashclosing"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormCashClosingRepository implements ports.CashClosingRepository using GORM.
// Reads lock the closing row with SELECT ... FOR UPDATE so that concurrent
// declarations for the same courier and day are applied one after another.
type GormCashClosingRepository struct {
	db      *gorm.DB
	tracker aggregateTracker
}

type aggregateTracker interface {
	TrackAggregate(id kernel.UUID, aggregate any)
}

func NewGormCashClosingRepository(db *gorm.DB, tracker aggregateTracker) *GormCashClosingRepository {
	return &GormCashClosingRepository{
		db:      db,
		tracker: tracker,
	}
}

// GetOrCreateForUpdate inserts an empty closing unless one exists for the
// courier and day, then locks and loads it. The insert never fails on a
// concurrent creator.
func (r *GormCashClosingRepository) GetOrCreateForUpdate(
	ctx context.Context,
	courierID kernel.UUID,
	date time.Time,
) (*cashclosing.CashClosing, error) {
	fresh, err := cashclosing.NewCashClosing(kernel.NewUUID(), courierID, date)
	if err != nil {
		return nil, err
	}

	dto, _ := fromDomain(fresh)
	err = r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "courier_id"}, {Name: "closing_date"}},
			DoNothing: true,
		}).
		Create(&dto).Error
	if err != nil {
		return nil, fmt.Errorf("create cash closing: %w", err)
	}

	key := courierID.String() + "@" + fresh.ClosingDate().Format(time.DateOnly)
	return r.load(ctx, key, "courier_id = ? AND closing_date = ?", courierID.Bytes(), fresh.ClosingDate())
}

func (r *GormCashClosingRepository) GetForUpdateByOrder(
	ctx context.Context,
	orderID kernel.UUID,
) (*cashclosing.CashClosing, error) {
	if err := orderID.Validate(); err != nil {
		return nil, err
	}
	closingOfOrder := r.db.Model(&DetailDTO{}).Select("cash_closing_id").Where("order_id = ?", orderID.Bytes())
	return r.load(ctx, "order "+orderID.String(), "id IN (?)", closingOfOrder)
}

func (r *GormCashClosingRepository) GetForUpdate(ctx context.Context, id kernel.UUID) (*cashclosing.CashClosing, error) {
	if err := id.Validate(); err != nil {
		return nil, err
	}
	return r.load(ctx, id.String(), "id = ?", id.Bytes())
}

func (r *GormCashClosingRepository) ListIDsByDate(ctx context.Context, date time.Time) ([]kernel.UUID, error) {
	query, args, err := sq.Select("id").
		From(CashClosingDTO{}.TableName()).
		Where(sq.Eq{"closing_date": cashclosing.DateOf(date, time.UTC)}).
		OrderBy("id").
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build cash closing id query: %w", err)
	}

	var raw []uuid.UUID
	if err := r.db.WithContext(ctx).Raw(query, args...).Scan(&raw).Error; err != nil {
		return nil, err
	}

	ids := make([]kernel.UUID, 0, len(raw))
	for _, id := range raw {
		converted, err := dbtypes.ToUUID(id)
		if err != nil {
			return nil, err
		}
		ids = append(ids, converted)
	}
	return ids, nil
}

// Save updates the closing row and upserts every detail. Details are never
// removed.
func (r *GormCashClosingRepository) Save(ctx context.Context, aggregate *cashclosing.CashClosing) error {
	if err := aggregate.Validate(); err != nil {
		return err
	}

	closing, details := fromDomain(aggregate)
	db := r.db.WithContext(ctx)

	result := db.Model(&CashClosingDTO{}).
		Where("id = ?", closing.ID).
		Select("*").
		Omit("id", "courier_id", "closing_date", "created_at").
		Updates(&closing)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return errs.NewObjectNotFoundError("cash closing", aggregate.ID().String())
	}

	if len(details) > 0 {
		err := db.Clauses(clause.OnConflict{
			Columns: []clause.Column{{Name: "cash_closing_id"}, {Name: "order_id"}},
			DoUpdates: clause.AssignmentColumns([]string{
				"order_amount", "collected_amount", "status", "notes", "collected_at",
			}),
		}).Create(&details).Error
		if err != nil {
			return fmt.Errorf("save cash closing details: %w", err)
		}
	}

	r.tracker.TrackAggregate(aggregate.ID(), aggregate)
	return nil
}

func (r *GormCashClosingRepository) load(
	ctx context.Context,
	key string,
	query any,
	args ...any,
) (*cashclosing.CashClosing, error) {
	db := r.db.WithContext(ctx)

	var closing CashClosingDTO
	err := db.Clauses(clause.Locking{Strength: "UPDATE"}).
		Where(query, args...).
		First(&closing).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errs.NewObjectNotFoundError("cash closing", key)
		}
		return nil, err
	}

	var details []DetailDTO
	if err := db.Where("cash_closing_id = ?", closing.ID).Order("position").Find(&details).Error; err != nil {
		return nil, err
	}

	return toDomain(closing, details)
}
