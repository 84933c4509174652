package guard_test

import (
	"errors"
	"testing"

	"fulfillment/internal/pkg/guard"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstructorGuard_Validate(t *testing.T) {
	t.Run("constructed_guard_passes", func(t *testing.T) {
		g := guard.NewConstructorGuard()

		require.NoError(t, g.Validate(errors.New("not constructed")))
		require.NoError(t, g.Validate(nil))
	})

	t.Run("zero_value_returns_supplied_error", func(t *testing.T) {
		var g guard.ConstructorGuard
		expected := errors.New("command not constructed")

		err := g.Validate(expected)

		require.Error(t, err)
		assert.Equal(t, expected, err)
	})

	t.Run("zero_value_returns_default_error_when_nil", func(t *testing.T) {
		var g guard.ConstructorGuard

		err := g.Validate(nil)

		require.Error(t, err)
		assert.Equal(t, guard.ErrDefaultConstructorGuard, err)
	})

	t.Run("embedded_guard_rejects_struct_literal", func(t *testing.T) {
		type command struct {
			amount int
			guard  guard.ConstructorGuard
		}
		errNotConstructed := errors.New("command must be created via constructor")

		valid := command{amount: 10, guard: guard.NewConstructorGuard()}
		invalid := command{amount: 10}

		require.NoError(t, valid.guard.Validate(errNotConstructed))
		require.ErrorIs(t, invalid.guard.Validate(errNotConstructed), errNotConstructed)
	})
}
