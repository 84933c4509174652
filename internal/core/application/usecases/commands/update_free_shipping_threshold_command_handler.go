package commands

import (
	"context"

	"fulfillment/internal/core/ports"
)

type UpdateFreeShippingThresholdCommandHandler struct {
	settings ports.SettingsStore
}

func NewUpdateFreeShippingThresholdCommandHandler(settings ports.SettingsStore) UpdateFreeShippingThresholdCommandHandler {
	return UpdateFreeShippingThresholdCommandHandler{settings: settings}
}

// Handle is restricted to administrators.
func (h UpdateFreeShippingThresholdCommandHandler) Handle(ctx context.Context, cmd UpdateFreeShippingThresholdCommand) error {
	if err := cmd.Validate(); err != nil {
		return err
	}
	if err := cmd.Actor().Require("update free shipping threshold"); err != nil {
		return err
	}
	return h.settings.SetFreeShippingThreshold(ctx, cmd.Threshold())
}
