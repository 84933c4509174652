package redis_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"fulfillment/internal/adapters/out/redis"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	goredis "github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockClient struct {
	mock.Mock
}

func (m *MockClient) Get(ctx context.Context, key string) *goredis.StringCmd {
	args := m.Called(ctx, key)
	return goredis.NewStringResult(args.String(0), args.Error(1))
}

func (m *MockClient) Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd {
	args := m.Called(ctx, key, value, expiration)
	return goredis.NewStatusResult("OK", args.Error(0))
}

func TestSettingsStore_FreeShippingThreshold(t *testing.T) {
	fallback := kernel.MustMoney(150000)

	tests := []struct {
		name    string
		value   string
		err     error
		want    kernel.Money
		wantErr error
	}{
		{name: "stored value", value: "200000", want: kernel.MustMoney(200000)},
		{name: "decimal value", value: "99999.50", want: kernel.MustMoney(99999).Add(mustParse(t, "0.50"))},
		{name: "missing key uses default", err: goredis.Nil, want: fallback},
		{name: "unparseable value", value: "free", wantErr: errs.ErrValueIsInvalid},
		{name: "negative value", value: "-1", wantErr: errs.ErrValueIsInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			client := &MockClient{}
			client.On("Get", mock.Anything, "settings:threshold").Return(tt.value, tt.err)
			store := redis.NewSettingsStore(client, "settings:threshold", fallback)

			got, err := store.FreeShippingThreshold(context.Background())

			if tt.wantErr != nil {
				require.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.True(t, tt.want.Equal(got), "want %s, got %s", tt.want, got)
		})
	}

	t.Run("connection failure is returned", func(t *testing.T) {
		client := &MockClient{}
		client.On("Get", mock.Anything, redis.DefaultFreeShippingKey).Return("", errors.New("connection refused"))
		store := redis.NewSettingsStore(client, "", fallback)

		_, err := store.FreeShippingThreshold(context.Background())

		require.ErrorContains(t, err, "connection refused")
	})
}

func TestSettingsStore_SetFreeShippingThreshold(t *testing.T) {
	client := &MockClient{}
	client.On("Set", mock.Anything, redis.DefaultFreeShippingKey, "180000", time.Duration(0)).Return(nil)
	store := redis.NewSettingsStore(client, "", kernel.ZeroMoney)

	require.NoError(t, store.SetFreeShippingThreshold(context.Background(), kernel.MustMoney(180000)))
	client.AssertExpectations(t)
}

func mustParse(t *testing.T, s string) kernel.Money {
	t.Helper()
	m, err := kernel.MoneyFromString(s)
	require.NoError(t, err)
	return m
}
