package commands_test

import (
	"context"
	"errors"
	"maps"
	"slices"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/cashclosing"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"
)

// memoryStore keeps committed state as snapshots. Each unit of work works on
// a private copy that replaces the store only on Commit, so a failed command
// leaves no trace.
type memoryStore struct {
	orders    map[string]order.Snapshot
	trackings []tracking.Snapshot
	closings  map[string]cashclosing.Snapshot
}

func newMemoryStore() *memoryStore {
	return &memoryStore{
		orders:   map[string]order.Snapshot{},
		closings: map[string]cashclosing.Snapshot{},
	}
}

func (s *memoryStore) clone() *memoryStore {
	return &memoryStore{
		orders:    maps.Clone(s.orders),
		trackings: slices.Clone(s.trackings),
		closings:  maps.Clone(s.closings),
	}
}

func (s *memoryStore) Create() commands.UoW {
	return &memoryUoW{store: s}
}

func (s *memoryStore) order(id kernel.UUID) order.Snapshot {
	return s.orders[id.String()]
}

func (s *memoryStore) closingOf(orderID kernel.UUID) (cashclosing.Snapshot, bool) {
	for _, c := range s.closings {
		for _, d := range c.Details {
			if d.OrderID.IsEqual(orderID) {
				return c, true
			}
		}
	}
	return cashclosing.Snapshot{}, false
}

// Adapters narrowing the memory store to the smaller factories.
type memoryOrderUoWFactory struct{ store *memoryStore }

func (f memoryOrderUoWFactory) Create() commands.OrderUoW { return f.store.Create() }

type memoryDeliveryUoWFactory struct{ store *memoryStore }

func (f memoryDeliveryUoWFactory) Create() commands.DeliveryUoW { return f.store.Create() }

type memoryUoW struct {
	store  *memoryStore
	staged *memoryStore
}

func (u *memoryUoW) Begin(_ context.Context) error {
	if u.staged != nil {
		return errors.New("transaction already started")
	}
	u.staged = u.store.clone()
	return nil
}

func (u *memoryUoW) Commit(_ context.Context) error {
	if u.staged == nil {
		return errors.New("no active transaction")
	}
	*u.store = *u.staged
	u.staged = nil
	return nil
}

func (u *memoryUoW) Rollback(_ context.Context) error {
	u.staged = nil
	return nil
}

func (u *memoryUoW) OrderRepository() ports.OrderRepository {
	return memoryOrderRepo{u}
}

func (u *memoryUoW) TrackingRepository() ports.TrackingRepository {
	return memoryTrackingRepo{u}
}

func (u *memoryUoW) CashClosingRepository() ports.CashClosingRepository {
	return memoryClosingRepo{u}
}

type memoryOrderRepo struct{ u *memoryUoW }

func (r memoryOrderRepo) Add(_ context.Context, o *order.Order) error {
	if _, ok := r.u.staged.orders[o.ID().String()]; ok {
		return errs.NewValueIsInvalidError("order id")
	}
	o.SetVersion(1)
	r.u.staged.orders[o.ID().String()] = o.Snapshot()
	return nil
}

func (r memoryOrderRepo) Update(_ context.Context, o *order.Order) error {
	stored, ok := r.u.staged.orders[o.ID().String()]
	if !ok {
		return errs.NewObjectNotFoundError("order", o.ID())
	}
	if stored.Version != o.Version() {
		return errs.NewVersionIsInvalidError("order version")
	}
	o.SetVersion(o.Version() + 1)
	r.u.staged.orders[o.ID().String()] = o.Snapshot()
	return nil
}

func (r memoryOrderRepo) Get(_ context.Context, id kernel.UUID) (*order.Order, error) {
	s, ok := r.u.staged.orders[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("order", id)
	}
	return order.RestoreOrder(s)
}

type memoryTrackingRepo struct{ u *memoryUoW }

func (r memoryTrackingRepo) Add(_ context.Context, t *tracking.DeliveryTracking) error {
	r.u.staged.trackings = append(r.u.staged.trackings, t.Snapshot())
	return nil
}

func (r memoryTrackingRepo) Update(_ context.Context, t *tracking.DeliveryTracking) error {
	i := slices.IndexFunc(r.u.staged.trackings, func(s tracking.Snapshot) bool { return s.ID.IsEqual(t.ID()) })
	if i < 0 {
		return errs.NewObjectNotFoundError("delivery tracking", t.ID())
	}
	r.u.staged.trackings[i] = t.Snapshot()
	return nil
}

func (r memoryTrackingRepo) GetLatest(_ context.Context, orderID kernel.UUID) (*tracking.DeliveryTracking, error) {
	return r.latest(orderID, func(tracking.Snapshot) bool { return true })
}

func (r memoryTrackingRepo) GetLatestForCourier(_ context.Context, orderID, courierID kernel.UUID) (*tracking.DeliveryTracking, error) {
	return r.latest(orderID, func(s tracking.Snapshot) bool { return s.CourierID.IsEqual(courierID) })
}

func (r memoryTrackingRepo) latest(orderID kernel.UUID, match func(tracking.Snapshot) bool) (*tracking.DeliveryTracking, error) {
	for _, s := range slices.Backward(r.u.staged.trackings) {
		if s.OrderID.IsEqual(orderID) && match(s) {
			return tracking.RestoreDeliveryTracking(s)
		}
	}
	return nil, errs.NewObjectNotFoundError("delivery tracking", orderID)
}

type memoryClosingRepo struct{ u *memoryUoW }

func (r memoryClosingRepo) GetOrCreateForUpdate(_ context.Context, courierID kernel.UUID, date time.Time) (*cashclosing.CashClosing, error) {
	for _, s := range r.u.staged.closings {
		if s.CourierID.IsEqual(courierID) && s.ClosingDate.Equal(date) {
			return cashclosing.RestoreCashClosing(s)
		}
	}
	c, err := cashclosing.NewCashClosing(kernel.NewUUID(), courierID, date)
	if err != nil {
		return nil, err
	}
	r.u.staged.closings[c.ID().String()] = c.Snapshot()
	return c, nil
}

func (r memoryClosingRepo) GetForUpdateByOrder(_ context.Context, orderID kernel.UUID) (*cashclosing.CashClosing, error) {
	s, ok := r.u.staged.closingOf(orderID)
	if !ok {
		return nil, errs.NewObjectNotFoundError("cash closing", orderID)
	}
	return cashclosing.RestoreCashClosing(s)
}

func (r memoryClosingRepo) GetForUpdate(_ context.Context, id kernel.UUID) (*cashclosing.CashClosing, error) {
	s, ok := r.u.staged.closings[id.String()]
	if !ok {
		return nil, errs.NewObjectNotFoundError("cash closing", id)
	}
	return cashclosing.RestoreCashClosing(s)
}

func (r memoryClosingRepo) ListIDsByDate(_ context.Context, date time.Time) ([]kernel.UUID, error) {
	var ids []kernel.UUID
	for _, s := range r.u.staged.closings {
		if s.ClosingDate.Equal(date) {
			ids = append(ids, s.ID)
		}
	}
	return ids, nil
}

func (r memoryClosingRepo) Save(_ context.Context, c *cashclosing.CashClosing) error {
	r.u.staged.closings[c.ID().String()] = c.Snapshot()
	return nil
}
