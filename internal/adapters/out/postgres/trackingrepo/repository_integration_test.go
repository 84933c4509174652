package trackingrepo_test

import (
	"context"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/adapters/out/postgres/trackingrepo"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type TrackingRepositoryIntegrationTestSuite struct {
	suite.Suite
	database   *pgtest.Database
	repository *trackingrepo.GormTrackingRepository
	tracker    *MockAggregateTracker
}

func (suite *TrackingRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *TrackingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())

	suite.tracker = &MockAggregateTracker{}
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
	suite.repository = trackingrepo.NewGormTrackingRepository(suite.database.DB, suite.tracker)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestCompletedCycle_RoundTrips() {
	ctx := context.Background()
	assignedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	t := suite.newTracking(kernel.NewUUID(), kernel.NewUUID(), assignedAt)
	suite.Require().NoError(suite.repository.Add(ctx, t))

	cash := order.CollectionCash
	product := kernel.MustMoney(50000)
	fee := kernel.MustMoney(7750)
	location, err := kernel.NewGeoPoint(4.6097, -74.0817)
	suite.Require().NoError(err)
	suite.Require().NoError(t.Accept(assignedAt.Add(time.Minute)))
	suite.Require().NoError(t.StartDelivery(assignedAt.Add(time.Hour)))
	suite.Require().NoError(t.Complete(order.Collection{
		ProductMethod: &cash,
		ProductAmount: &product,
		FeeMethod:     &cash,
		FeeAmount:     &fee,
	}, "left with doorman", &location, assignedAt.Add(2*time.Hour)))
	suite.Require().NoError(suite.repository.Update(ctx, t))

	stored, err := suite.repository.GetLatest(ctx, t.OrderID())
	suite.Require().NoError(err)
	suite.True(stored.ID().IsEqual(t.ID()))
	suite.Equal(order.MessengerDelivered, stored.Status())
	suite.True(stored.ExpectedCash().Equal(kernel.MustMoney(57750)))
	suite.Require().NotNil(stored.PaymentMethod())
	suite.Equal(order.CollectionCash, *stored.PaymentMethod())
	suite.Require().NotNil(stored.DeliveryFeeMethod())
	suite.Equal("left with doorman", stored.Notes())
	suite.Require().NotNil(stored.Location())
	suite.InDelta(4.6097, stored.Location().Latitude(), 1e-9)
	suite.InDelta(-74.0817, stored.Location().Longitude(), 1e-9)
	suite.Require().NotNil(stored.DeliveredAt())
	suite.WithinDuration(assignedAt.Add(2*time.Hour), *stored.DeliveredAt(), time.Second)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestGetLatest_ReturnsMostRecentCycle() {
	ctx := context.Background()
	orderID := kernel.NewUUID()
	first := suite.newTracking(orderID, kernel.NewUUID(), time.Now().Add(-2*time.Hour))
	suite.Require().NoError(first.Reject("vehicle broke down", time.Now().Add(-time.Hour)))
	second := suite.newTracking(orderID, kernel.NewUUID(), time.Now())
	suite.Require().NoError(suite.repository.Add(ctx, first))
	suite.Require().NoError(suite.repository.Add(ctx, second))

	latest, err := suite.repository.GetLatest(ctx, orderID)
	suite.Require().NoError(err)
	suite.True(latest.ID().IsEqual(second.ID()))

	forFirst, err := suite.repository.GetLatestForCourier(ctx, orderID, first.CourierID())
	suite.Require().NoError(err)
	suite.True(forFirst.ID().IsEqual(first.ID()))
	suite.Equal(order.MessengerReturnedToLogistics, forFirst.Status())
	suite.Equal("vehicle broke down", forFirst.RejectionReason())
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestCancelledCycle_RoundTrips() {
	ctx := context.Background()
	assignedAt := time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	t := suite.newTracking(kernel.NewUUID(), kernel.NewUUID(), assignedAt)
	suite.Require().NoError(t.Accept(assignedAt.Add(time.Minute)))
	suite.Require().NoError(t.StartDelivery(assignedAt.Add(time.Hour)))
	suite.Require().NoError(suite.repository.Add(ctx, t))

	suite.Require().NoError(t.Cancel("customer moved", assignedAt.Add(90*time.Minute)))
	suite.Require().NoError(suite.repository.Update(ctx, t))

	stored, err := suite.repository.GetLatestForCourier(ctx, t.OrderID(), t.CourierID())
	suite.Require().NoError(err)
	suite.Equal(order.MessengerReturnedToLogistics, stored.Status())
	suite.Equal("customer moved", stored.CancelReason())
	suite.Require().NotNil(stored.CancelledAt())
	suite.WithinDuration(assignedAt.Add(90*time.Minute), *stored.CancelledAt(), time.Second)
	suite.Require().NotNil(stored.StartedDeliveryAt())
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestGetLatest_NoCycle_ReturnsNotFoundError() {
	ctx := context.Background()

	_, err := suite.repository.GetLatest(ctx, kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)

	_, err = suite.repository.GetLatestForCourier(ctx, kernel.NewUUID(), kernel.NewUUID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TrackingRepositoryIntegrationTestSuite) TestUpdate_NonExistentCycle_ReturnsNotFoundError() {
	t := suite.newTracking(kernel.NewUUID(), kernel.NewUUID(), time.Now())

	err := suite.repository.Update(context.Background(), t)

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *TrackingRepositoryIntegrationTestSuite) newTracking(orderID, courierID kernel.UUID, at time.Time) *tracking.DeliveryTracking {
	t, err := tracking.NewDeliveryTracking(kernel.NewUUID(), orderID, courierID, at)
	suite.Require().NoError(err)
	return t
}

func TestTrackingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(TrackingRepositoryIntegrationTestSuite))
}
