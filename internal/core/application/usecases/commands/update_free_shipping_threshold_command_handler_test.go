package commands_test

import (
	"context"
	"testing"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestUpdateFreeShippingThresholdCommandHandler_Handle(t *testing.T) {
	t.Run("admin stores the new threshold", func(t *testing.T) {
		settings := &MockSettingsProvider{}
		settings.On("SetFreeShippingThreshold", mock.Anything, kernel.MustMoney(200000)).Return(nil)
		cmd, err := commands.NewUpdateFreeShippingThresholdCommand(newActor(t, kernel.RoleAdmin), kernel.MustMoney(200000))
		require.NoError(t, err)

		err = commands.NewUpdateFreeShippingThresholdCommandHandler(settings).Handle(context.Background(), cmd)

		require.NoError(t, err)
		settings.AssertExpectations(t)
	})

	t.Run("other roles are refused", func(t *testing.T) {
		settings := &MockSettingsProvider{}
		cmd, err := commands.NewUpdateFreeShippingThresholdCommand(newActor(t, kernel.RoleTreasury), kernel.ZeroMoney)
		require.NoError(t, err)

		err = commands.NewUpdateFreeShippingThresholdCommandHandler(settings).Handle(context.Background(), cmd)

		require.ErrorIs(t, err, errs.ErrUnauthorized)
		settings.AssertNotCalled(t, "SetFreeShippingThreshold", mock.Anything, mock.Anything)
	})

	t.Run("zero value command is rejected", func(t *testing.T) {
		err := commands.NewUpdateFreeShippingThresholdCommandHandler(&MockSettingsProvider{}).
			Handle(context.Background(), commands.UpdateFreeShippingThresholdCommand{})

		require.ErrorIs(t, err, commands.ErrUpdateFreeShippingThresholdCommandIsNotConstructed)
	})
}
