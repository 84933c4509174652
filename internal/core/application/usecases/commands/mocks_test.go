package commands_test

import (
	"context"
	"io"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockOrderRepository struct{ mock.Mock }

func (m *MockOrderRepository) Add(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Update(ctx context.Context, o *order.Order) error {
	args := m.Called(ctx, o)
	return args.Error(0)
}

func (m *MockOrderRepository) Get(ctx context.Context, id kernel.UUID) (*order.Order, error) {
	args := m.Called(ctx, id)
	if o, ok := args.Get(0).(*order.Order); ok {
		return o, args.Error(1)
	}
	return nil, args.Error(1)
}

type MockOrderUoW struct{ mock.Mock }

func (m *MockOrderUoW) Begin(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Commit(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) Rollback(ctx context.Context) error {
	args := m.Called(ctx)
	return args.Error(0)
}

func (m *MockOrderUoW) OrderRepository() ports.OrderRepository {
	args := m.Called()
	return args.Get(0).(ports.OrderRepository)
}

type MockOrderUoWFactory struct{ mock.Mock }

func (m *MockOrderUoWFactory) Create() commands.OrderUoW {
	args := m.Called()
	return args.Get(0).(commands.OrderUoW)
}

type MockDeliveryUoW struct{ MockOrderUoW }

func (m *MockDeliveryUoW) TrackingRepository() ports.TrackingRepository {
	args := m.Called()
	return args.Get(0).(ports.TrackingRepository)
}

type MockDeliveryUoWFactory struct{ mock.Mock }

func (m *MockDeliveryUoWFactory) Create() commands.DeliveryUoW {
	args := m.Called()
	return args.Get(0).(commands.DeliveryUoW)
}

type MockSettingsProvider struct{ mock.Mock }

func (m *MockSettingsProvider) FreeShippingThreshold(ctx context.Context) (kernel.Money, error) {
	args := m.Called(ctx)
	return args.Get(0).(kernel.Money), args.Error(1)
}

func (m *MockSettingsProvider) SetFreeShippingThreshold(ctx context.Context, threshold kernel.Money) error {
	return m.Called(ctx, threshold).Error(0)
}

type MockEvidenceStore struct{ mock.Mock }

func (m *MockEvidenceStore) Upload(ctx context.Context, name, contentType string, content io.Reader) (string, error) {
	args := m.Called(ctx, name, contentType, content)
	return args.String(0), args.Error(1)
}

type MockNotesExtractor struct{ mock.Mock }

func (m *MockNotesExtractor) Extract(ctx context.Context, notes string) (order.Recipient, error) {
	args := m.Called(ctx, notes)
	return args.Get(0).(order.Recipient), args.Error(1)
}

// fixedThreshold is a SettingsProvider that always answers with the same value.
type fixedThreshold kernel.Money

func (f fixedThreshold) FreeShippingThreshold(context.Context) (kernel.Money, error) {
	return kernel.Money(f), nil
}

func newActor(t *testing.T, role kernel.Role) kernel.Actor {
	t.Helper()
	a, err := kernel.NewActor(kernel.NewUUID(), role)
	require.NoError(t, err)
	return a
}
