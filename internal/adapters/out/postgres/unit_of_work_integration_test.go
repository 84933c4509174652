package postgres_test

import (
	"context"
	"errors"
	"testing"
	"time"

	postgres_adapter "fulfillment/internal/adapters/out/postgres"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/cashclosing"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/tracking"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"go.uber.org/zap"
)

type MockEventPublisher struct {
	mock.Mock
}

func (m *MockEventPublisher) Publish(ctx context.Context, events ...kernel.DomainEvent) error {
	args := m.Called(ctx, events)
	return args.Error(0)
}

// UnitOfWorkIntegrationTestSuite verifies transaction boundaries and event
// publishing of the GORM unit of work against a real PostgreSQL.
type UnitOfWorkIntegrationTestSuite struct {
	suite.Suite
	database  *pgtest.Database
	publisher *MockEventPublisher
	factory   ports.UnitOfWorkFactory
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
}

func (suite *UnitOfWorkIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.publisher = &MockEventPublisher{}
	suite.factory = postgres_adapter.NewGormUnitOfWorkFactory(suite.database.DB, suite.publisher, zap.NewNop())
}

func (suite *UnitOfWorkIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWorkFactory_Create() {
	uow1 := suite.factory.Create()
	uow2 := suite.factory.Create()

	suite.NotSame(uow1, uow2, "Factory should create separate instances")
	suite.NotNil(uow1.OrderRepository())
	suite.NotNil(uow1.TrackingRepository())
	suite.NotNil(uow1.CashClosingRepository())
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_TransactionLifecycle() {
	ctx := context.Background()
	uow := suite.factory.Create()

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Begin(ctx), "Multiple begin calls should be safe")
	suite.Require().NoError(uow.Commit(ctx))

	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Require().Error(uow.Commit(ctx), "Should error when committing without active transaction")
	suite.Require().Error(uow.Rollback(ctx), "Should error when rolling back without active transaction")
}

// An order, its tracking cycle and the courier's closing are committed
// together and the recorded events are published once.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_CommitPersistsAllAggregatesAndPublishesEvents() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	o := suite.routedOrder("FV-2001")

	var published []kernel.DomainEvent
	suite.publisher.On("Publish", mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			published = append(published, args.Get(1).([]kernel.DomainEvent)...)
		}).
		Return(nil)

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(o.AssignCourier(courierID))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	t, err := tracking.NewDeliveryTracking(kernel.NewUUID(), o.ID(), courierID, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(uow.TrackingRepository().Add(ctx, t))
	closing, err := uow.CashClosingRepository().GetOrCreateForUpdate(ctx, courierID, time.Now())
	suite.Require().NoError(err)
	suite.Require().NoError(closing.Declare(o.ID(), kernel.MustMoney(100000), nil, ""))
	suite.Require().NoError(uow.CashClosingRepository().Save(ctx, closing))
	suite.Require().NoError(uow.Commit(ctx))

	suite.Empty(o.DomainEvents())
	suite.Empty(closing.DomainEvents())
	names := make([]string, 0, len(published))
	for _, e := range published {
		names = append(names, e.Name)
	}
	suite.Contains(names, order.EventStatusChanged)
	suite.Contains(names, cashclosing.EventCashDeclared)

	check := suite.factory.Create()
	stored, err := check.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.Equal(order.MessengerAssigned, stored.MessengerStatus())
	_, err = check.TrackingRepository().GetLatest(ctx, o.ID())
	suite.Require().NoError(err)
	_, err = check.CashClosingRepository().GetForUpdateByOrder(ctx, o.ID())
	suite.Require().NoError(err)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_RollbackDiscardsChangesAndEvents() {
	ctx := context.Background()
	o := suite.routedOrder("FV-2002")

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Rollback(ctx))

	suite.Empty(o.DomainEvents())
	suite.publisher.AssertNotCalled(suite.T(), "Publish", mock.Anything, mock.Anything)

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_PublishFailureDoesNotUndoCommit() {
	ctx := context.Background()
	o := suite.routedOrder("FV-2003")
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(errors.New("broker unavailable"))

	uow := suite.factory.Create()
	suite.Require().NoError(uow.Begin(ctx))
	suite.Require().NoError(uow.OrderRepository().Add(ctx, o))
	suite.Require().NoError(uow.Commit(ctx))

	_, err := suite.factory.Create().OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	suite.publisher.AssertCalled(suite.T(), "Publish", mock.Anything, mock.Anything)
}

// Two units of work editing the same order: the second commit loses the
// version race and writes nothing.
func (suite *UnitOfWorkIntegrationTestSuite) TestUnitOfWork_ConcurrentOrderEditsConflict() {
	ctx := context.Background()
	suite.publisher.On("Publish", mock.Anything, mock.Anything).Return(nil)
	o := suite.routedOrder("FV-2004")
	seed := suite.factory.Create()
	suite.Require().NoError(seed.Begin(ctx))
	suite.Require().NoError(seed.OrderRepository().Add(ctx, o))
	suite.Require().NoError(seed.Commit(ctx))

	first, second := suite.factory.Create(), suite.factory.Create()
	suite.Require().NoError(first.Begin(ctx))
	suite.Require().NoError(second.Begin(ctx))
	defer func() { _ = second.Rollback(ctx) }()

	a, err := first.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)
	b, err := second.OrderRepository().Get(ctx, o.ID())
	suite.Require().NoError(err)

	suite.Require().NoError(a.AssignCourier(kernel.NewUUID()))
	suite.Require().NoError(first.OrderRepository().Update(ctx, a))
	suite.Require().NoError(first.Commit(ctx))

	suite.Require().NoError(b.Cancel("duplicate invoice"))
	err = second.OrderRepository().Update(ctx, b)
	suite.Require().ErrorIs(err, errs.ErrVersionIsInvalid)
}

func (suite *UnitOfWorkIntegrationTestSuite) routedOrder(number string) *order.Order {
	o, err := order.NewOrder(kernel.NewUUID(), number, order.CommercialFacts{
		TotalAmount:           kernel.MustMoney(100000),
		ShippingPaymentMethod: order.ShippingPrepaidByCompany,
		Recipient:             order.Recipient{Name: "Andrés Ruiz", Phone: "3109876543", Address: "Cra 7 # 72-10", City: "Bogotá"},
	})
	suite.Require().NoError(err)
	_, err = o.RouteAfterReview(order.PaymentCashOnDelivery, order.DeliveryLocalCourier, time.Now())
	suite.Require().NoError(err)
	return o
}

func TestUnitOfWorkIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(UnitOfWorkIntegrationTestSuite))
}
