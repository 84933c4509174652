package tracking_test

import (
	"testing"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTracking(t *testing.T) *tracking.DeliveryTracking {
	t.Helper()
	tr, err := tracking.NewDeliveryTracking(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Now())
	require.NoError(t, err)
	return tr
}

func TestNewDeliveryTracking(t *testing.T) {
	t.Run("starts assigned", func(t *testing.T) {
		tr := newTracking(t)

		require.NoError(t, tr.Validate())
		assert.Equal(t, order.MessengerAssigned, tr.Status())
		assert.Nil(t, tr.AcceptedAt())
		assert.True(t, tr.IsOpen())
	})

	t.Run("requires identifiers and a timestamp", func(t *testing.T) {
		_, err := tracking.NewDeliveryTracking(kernel.UUID{}, kernel.NewUUID(), kernel.NewUUID(), time.Now())
		require.ErrorIs(t, err, errs.ErrValueIsRequired)

		_, err = tracking.NewDeliveryTracking(kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), time.Time{})
		require.ErrorIs(t, err, errs.ErrValueIsRequired)
	})
}

func TestDeliveryTracking_Lifecycle(t *testing.T) {
	t.Run("happy path records every timestamp and the collection", func(t *testing.T) {
		tr := newTracking(t)
		now := time.Now()
		cash := order.CollectionCash
		geo, err := kernel.NewGeoPoint(6.2442, -75.5812)
		require.NoError(t, err)

		require.NoError(t, tr.Accept(now))
		require.NoError(t, tr.StartDelivery(now.Add(time.Minute)))
		require.NoError(t, tr.Complete(order.Collection{
			ProductMethod: &cash,
			ProductAmount: pointer.To(kernel.MustMoney(100000)),
			FeeMethod:     &cash,
			FeeAmount:     pointer.To(kernel.MustMoney(8000)),
		}, " left with doorman ", &geo, now.Add(time.Hour)))

		assert.Equal(t, order.MessengerDelivered, tr.Status())
		assert.NotNil(t, tr.AcceptedAt())
		assert.NotNil(t, tr.StartedDeliveryAt())
		assert.NotNil(t, tr.DeliveredAt())
		assert.Equal(t, "left with doorman", tr.Notes())
		assert.True(t, tr.ExpectedCash().Equal(kernel.MustMoney(108000)))
		assert.False(t, tr.IsOpen())
	})

	t.Run("reject closes the cycle", func(t *testing.T) {
		tr := newTracking(t)

		require.ErrorIs(t, tr.Reject("", time.Now()), errs.ErrValueIsRequired)
		require.NoError(t, tr.Reject("too far", time.Now()))

		assert.Equal(t, order.MessengerReturnedToLogistics, tr.Status())
		assert.Equal(t, "too far", tr.RejectionReason())
		assert.False(t, tr.IsOpen())
		require.ErrorIs(t, tr.Accept(time.Now()), errs.ErrInvalidTransition)
	})

	t.Run("failure can be followed by a re-assignment", func(t *testing.T) {
		tr := newTracking(t)
		require.NoError(t, tr.Accept(time.Now()))
		require.NoError(t, tr.StartDelivery(time.Now()))

		require.NoError(t, tr.Fail("closed gate", time.Now()))
		assert.Equal(t, order.MessengerDeliveryFailed, tr.Status())

		later := time.Now().Add(time.Hour)
		require.NoError(t, tr.Reassign(later))
		assert.Equal(t, order.MessengerAssigned, tr.Status())
		assert.Equal(t, later, tr.AssignedAt())
		assert.NotNil(t, tr.FailedAt())
	})

	t.Run("operations out of order are invalid transitions", func(t *testing.T) {
		tr := newTracking(t)

		require.ErrorIs(t, tr.StartDelivery(time.Now()), errs.ErrInvalidTransition)
		require.ErrorIs(t, tr.Complete(order.Collection{}, "", nil, time.Now()), errs.ErrInvalidTransition)
		require.ErrorIs(t, tr.Fail("x", time.Now()), errs.ErrInvalidTransition)
	})
}

func TestDeliveryTracking_Cancel(t *testing.T) {
	t.Run("closes a live cycle at any courier step", func(t *testing.T) {
		now := time.Now()
		steps := map[string]func(tr *tracking.DeliveryTracking){
			"assigned": func(*tracking.DeliveryTracking) {},
			"accepted": func(tr *tracking.DeliveryTracking) { require.NoError(t, tr.Accept(now)) },
			"in delivery": func(tr *tracking.DeliveryTracking) {
				require.NoError(t, tr.Accept(now))
				require.NoError(t, tr.StartDelivery(now))
			},
			"failed": func(tr *tracking.DeliveryTracking) {
				require.NoError(t, tr.Accept(now))
				require.NoError(t, tr.StartDelivery(now))
				require.NoError(t, tr.Fail("no one home", now))
			},
		}
		for name, prepare := range steps {
			t.Run(name, func(t *testing.T) {
				tr := newTracking(t)
				prepare(tr)
				at := now.Add(time.Hour)

				require.NoError(t, tr.Cancel(" customer moved ", at))

				assert.Equal(t, order.MessengerReturnedToLogistics, tr.Status())
				assert.Equal(t, "customer moved", tr.CancelReason())
				require.NotNil(t, tr.CancelledAt())
				assert.Equal(t, at, *tr.CancelledAt())
				assert.False(t, tr.IsOpen())
				require.ErrorIs(t, tr.StartDelivery(at), errs.ErrInvalidTransition)
			})
		}
	})

	t.Run("requires a reason", func(t *testing.T) {
		tr := newTracking(t)

		require.ErrorIs(t, tr.Cancel(" ", time.Now()), errs.ErrValueIsRequired)
		assert.Equal(t, order.MessengerAssigned, tr.Status())
	})

	t.Run("delivered and rejected cycles stay as they are", func(t *testing.T) {
		rejected := newTracking(t)
		require.NoError(t, rejected.Reject("too far", time.Now()))
		require.ErrorIs(t, rejected.Cancel("stop", time.Now()), errs.ErrInvalidTransition)

		delivered := newTracking(t)
		require.NoError(t, delivered.Accept(time.Now()))
		require.NoError(t, delivered.StartDelivery(time.Now()))
		require.NoError(t, delivered.Complete(order.Collection{}, "", nil, time.Now()))
		require.ErrorIs(t, delivered.Cancel("stop", time.Now()), errs.ErrInvalidTransition)
		assert.Nil(t, delivered.CancelledAt())
	})
}

func TestRestoreDeliveryTracking(t *testing.T) {
	tr := newTracking(t)
	require.NoError(t, tr.Accept(time.Now()))

	restored, err := tracking.RestoreDeliveryTracking(tr.Snapshot())

	require.NoError(t, err)
	assert.Equal(t, tr.Snapshot(), restored.Snapshot())
}
