// Package redis keeps business settings in Redis so they can change without
// a deploy.
package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	goredis "github.com/go-redis/redis/v8"
)

const DefaultFreeShippingKey = "fulfillment:settings:free_shipping_threshold"

type client interface {
	Get(ctx context.Context, key string) *goredis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *goredis.StatusCmd
}

// SettingsStore reads the free-shipping threshold from a single key. A
// missing key yields the configured default.
type SettingsStore struct {
	client   client
	key      string
	fallback kernel.Money
}

func NewSettingsStore(c client, key string, fallback kernel.Money) *SettingsStore {
	if key == "" {
		key = DefaultFreeShippingKey
	}
	return &SettingsStore{client: c, key: key, fallback: fallback}
}

// NewClient connects to addr and checks the connection.
func NewClient(ctx context.Context, addr, password string, db int) (*goredis.Client, error) {
	rdb := goredis.NewClient(&goredis.Options{
		Addr:         addr,
		Password:     password,
		DB:           db,
		PoolSize:     10,
		MinIdleConns: 2,
		MaxRetries:   3,
		DialTimeout:  5 * time.Second,
		ReadTimeout:  3 * time.Second,
		WriteTimeout: 3 * time.Second,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		_ = rdb.Close()
		return nil, fmt.Errorf("ping redis %s: %w", addr, err)
	}
	return rdb, nil
}

func (s *SettingsStore) FreeShippingThreshold(ctx context.Context) (kernel.Money, error) {
	raw, err := s.client.Get(ctx, s.key).Result()
	if errors.Is(err, goredis.Nil) {
		return s.fallback, nil
	}
	if err != nil {
		return kernel.Money{}, fmt.Errorf("get %s: %w", s.key, err)
	}

	threshold, err := kernel.MoneyFromString(raw)
	if err != nil {
		return kernel.Money{}, errs.NewValueIsInvalidErrorWithCause("free shipping threshold", err)
	}
	return threshold, nil
}

// SetFreeShippingThreshold stores a new threshold. Zero disables free shipping.
func (s *SettingsStore) SetFreeShippingThreshold(ctx context.Context, threshold kernel.Money) error {
	if err := s.client.Set(ctx, s.key, threshold.String(), 0).Err(); err != nil {
		return fmt.Errorf("set %s: %w", s.key, err)
	}
	return nil
}
