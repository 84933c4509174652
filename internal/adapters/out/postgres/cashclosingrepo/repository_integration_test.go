package cashclosingrepo_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/postgres/cashclosingrepo"
	"fulfillment/internal/adapters/out/postgres/pgtest"
	"fulfillment/internal/core/domain/model/cashclosing"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
	"gorm.io/gorm"
)

type MockAggregateTracker struct {
	mock.Mock
}

func (m *MockAggregateTracker) TrackAggregate(id kernel.UUID, aggregate any) {
	m.Called(id, aggregate)
}

type CashClosingRepositoryIntegrationTestSuite struct {
	suite.Suite
	database *pgtest.Database
	tracker  *MockAggregateTracker
	date     time.Time
}

func (suite *CashClosingRepositoryIntegrationTestSuite) SetupSuite() {
	database, err := pgtest.Start(context.Background())
	suite.Require().NoError(err)
	suite.database = database
	suite.date = time.Date(2026, 3, 2, 0, 0, 0, 0, time.UTC)
}

func (suite *CashClosingRepositoryIntegrationTestSuite) SetupTest() {
	suite.Require().NoError(suite.database.Truncate())
	suite.tracker = &MockAggregateTracker{}
	suite.tracker.On("TrackAggregate", mock.Anything, mock.Anything).Return()
}

func (suite *CashClosingRepositoryIntegrationTestSuite) TearDownSuite() {
	suite.Require().NoError(suite.database.Terminate(context.Background()))
}

func (suite *CashClosingRepositoryIntegrationTestSuite) repository(db *gorm.DB) *cashclosingrepo.GormCashClosingRepository {
	return cashclosingrepo.NewGormCashClosingRepository(db, suite.tracker)
}

func (suite *CashClosingRepositoryIntegrationTestSuite) TestGetOrCreateForUpdate_ReturnsSameClosingForCourierAndDay() {
	ctx := context.Background()
	repo := suite.repository(suite.database.DB)
	courierID := kernel.NewUUID()

	first, err := repo.GetOrCreateForUpdate(ctx, courierID, suite.date)
	suite.Require().NoError(err)
	second, err := repo.GetOrCreateForUpdate(ctx, courierID, suite.date)
	suite.Require().NoError(err)
	other, err := repo.GetOrCreateForUpdate(ctx, courierID, suite.date.AddDate(0, 0, 1))
	suite.Require().NoError(err)

	suite.True(first.ID().IsEqual(second.ID()))
	suite.False(first.ID().IsEqual(other.ID()))
	suite.Equal(cashclosing.StatusPending, first.Status())
	suite.True(first.ClosingDate().Equal(suite.date))
	suite.Empty(first.Details())
}

func (suite *CashClosingRepositoryIntegrationTestSuite) TestSave_PersistsDetailsAndTotals() {
	ctx := context.Background()
	repo := suite.repository(suite.database.DB)
	courierID, treasurer := kernel.NewUUID(), kernel.NewUUID()
	firstOrder, secondOrder := kernel.NewUUID(), kernel.NewUUID()

	closing, err := repo.GetOrCreateForUpdate(ctx, courierID, suite.date)
	suite.Require().NoError(err)
	declared := kernel.MustMoney(57700)
	suite.Require().NoError(closing.Declare(firstOrder, kernel.MustMoney(57750), nil, ""))
	suite.Require().NoError(closing.Declare(secondOrder, kernel.MustMoney(58000), &declared, "short 300"))
	suite.Require().NoError(closing.Accept(firstOrder, treasurer, time.Now()))
	suite.Require().NoError(repo.Save(ctx, closing))

	stored, err := repo.GetForUpdateByOrder(ctx, secondOrder)
	suite.Require().NoError(err)
	suite.True(stored.ID().IsEqual(closing.ID()))
	suite.Equal(cashclosing.StatusPartial, stored.Status())
	suite.True(stored.ExpectedAmount().Equal(kernel.MustMoney(115750)))
	suite.True(stored.DeclaredAmount().Equal(kernel.MustMoney(115450)))
	suite.Nil(stored.ApprovedBy())

	details := stored.Details()
	suite.Require().Len(details, 2)
	suite.True(details[0].OrderID().IsEqual(firstOrder))
	suite.True(details[0].IsCollected())
	suite.NotNil(details[0].CollectedAt())
	suite.True(details[1].CollectedAmount().Equal(declared))
	suite.Equal("short 300", details[1].Notes())

	suite.Require().NoError(stored.Accept(secondOrder, treasurer, time.Now()))
	suite.Require().NoError(repo.Save(ctx, stored))

	completed, err := repo.GetForUpdate(ctx, closing.ID())
	suite.Require().NoError(err)
	suite.Equal(cashclosing.StatusCompleted, completed.Status())
	suite.Require().NotNil(completed.ApprovedBy())
	suite.True(completed.ApprovedBy().IsEqual(treasurer))
	suite.Len(completed.Details(), 2)
}

func (suite *CashClosingRepositoryIntegrationTestSuite) TestGetForUpdateByOrder_UnknownOrder_ReturnsNotFoundError() {
	_, err := suite.repository(suite.database.DB).GetForUpdateByOrder(context.Background(), kernel.NewUUID())

	suite.Require().ErrorIs(err, errs.ErrObjectNotFound)
}

func (suite *CashClosingRepositoryIntegrationTestSuite) TestListIDsByDate_ReturnsOnlyThatDay() {
	ctx := context.Background()
	repo := suite.repository(suite.database.DB)

	a, err := repo.GetOrCreateForUpdate(ctx, kernel.NewUUID(), suite.date)
	suite.Require().NoError(err)
	b, err := repo.GetOrCreateForUpdate(ctx, kernel.NewUUID(), suite.date)
	suite.Require().NoError(err)
	_, err = repo.GetOrCreateForUpdate(ctx, kernel.NewUUID(), suite.date.AddDate(0, 0, -1))
	suite.Require().NoError(err)

	ids, err := repo.ListIDsByDate(ctx, suite.date.Add(15*time.Hour))
	suite.Require().NoError(err)

	suite.Len(ids, 2)
	got := []string{ids[0].String(), ids[1].String()}
	suite.ElementsMatch([]string{a.ID().String(), b.ID().String()}, got)
}

// Concurrent declarations for one courier and day must serialize on the
// closing row and both end up in the same closing.
func (suite *CashClosingRepositoryIntegrationTestSuite) TestConcurrentDeclarations_AreSerialized() {
	ctx := context.Background()
	courierID := kernel.NewUUID()
	orders := []kernel.UUID{kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID(), kernel.NewUUID()}

	var wg sync.WaitGroup
	errCh := make(chan error, len(orders))
	for _, orderID := range orders {
		wg.Add(1)
		go func(orderID kernel.UUID) {
			defer wg.Done()
			errCh <- suite.database.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
				repo := suite.repository(tx)
				closing, err := repo.GetOrCreateForUpdate(ctx, courierID, suite.date)
				if err != nil {
					return err
				}
				if err := closing.Declare(orderID, kernel.MustMoney(10000), nil, ""); err != nil {
					return err
				}
				return repo.Save(ctx, closing)
			})
		}(orderID)
	}
	wg.Wait()
	close(errCh)
	for err := range errCh {
		suite.Require().NoError(err)
	}

	ids, err := suite.repository(suite.database.DB).ListIDsByDate(ctx, suite.date)
	suite.Require().NoError(err)
	suite.Require().Len(ids, 1)

	closing, err := suite.repository(suite.database.DB).GetForUpdate(ctx, ids[0])
	suite.Require().NoError(err)
	suite.Len(closing.Details(), len(orders))
	suite.True(closing.ExpectedAmount().Equal(kernel.MustMoney(40000)))
	suite.True(closing.DeclaredAmount().Equal(kernel.MustMoney(40000)))
}

func TestCashClosingRepositoryIntegrationTestSuite(t *testing.T) {
	suite.Run(t, new(CashClosingRepositoryIntegrationTestSuite))
}
