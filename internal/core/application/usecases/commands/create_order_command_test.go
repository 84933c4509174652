package commands_test

import (
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewCreateOrderCommand(t *testing.T) {
	facts := order.CommercialFacts{
		TotalAmount:           kernel.MustMoney(100000),
		ShippingPaymentMethod: order.ShippingPrepaidByCompany,
	}

	t.Run("valid input", func(t *testing.T) {
		biller := newActor(t, kernel.RoleBiller)
		cmd, err := commands.NewCreateOrderCommand(biller, "  FV-1001 ", facts, "leave at door")
		require.NoError(t, err)
		require.NoError(t, cmd.Validate())
		assert.Equal(t, "FV-1001", cmd.OrderNumber())
		assert.Equal(t, biller, cmd.Actor())
		assert.Equal(t, "leave at door", cmd.Notes())
	})

	t.Run("blank order number", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(newActor(t, kernel.RoleBiller), "  ", facts, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, errs.ErrValueIsRequired)
	})

	t.Run("missing actor", func(t *testing.T) {
		_, err := commands.NewCreateOrderCommand(kernel.Actor{}, "FV-1001", facts, "")
		require.Error(t, err)
		assert.ErrorIs(t, err, kernel.ErrUUIDIsNotConstructed)
	})

	t.Run("zero value is not constructed", func(t *testing.T) {
		err := commands.CreateOrderCommand{}.Validate()
		assert.ErrorIs(t, err, commands.ErrCreateOrderCommandIsNotConstructed)
	})
}
