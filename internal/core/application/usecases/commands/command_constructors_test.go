package commands_test

import (
	"bytes"
	"testing"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/AlekSi/pointer"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCommandConstructors_RejectInvalidInput(t *testing.T) {
	actor := newActor(t, kernel.RoleLogistics)
	id := kernel.NewUUID()

	tests := []struct {
		name    string
		build   func() error
		wantErr error
	}{
		{
			name: "route without shipping date",
			build: func() error {
				_, err := commands.NewRouteOrderAfterReviewCommand(actor, id, order.PaymentCash, order.DeliveryLocalCourier, time.Time{})
				return err
			},
			wantErr: errs.ErrValueIsRequired,
		},
		{
			name: "route with unknown payment method",
			build: func() error {
				_, err := commands.NewRouteOrderAfterReviewCommand(actor, id, "barter", order.DeliveryLocalCourier, time.Now())
				return err
			},
			wantErr: errs.ErrValueIsInvalid,
		},
		{
			name: "wallet approval with unknown provider",
			build: func() error {
				_, err := commands.NewApproveWalletPaymentCommand(actor, id, kernel.MustMoney(1000), "paypal", "X")
				return err
			},
			wantErr: errs.ErrValueIsInvalid,
		},
		{
			name: "pickup payment without photo",
			build: func() error {
				_, err := commands.NewRegisterPickupPaymentCommand(actor, id, kernel.MustMoney(1000), order.CollectionCash, "a.jpg", "image/jpeg", nil)
				return err
			},
			wantErr: errs.ErrValueIsRequired,
		},
		{
			name: "pickup payment of zero",
			build: func() error {
				_, err := commands.NewRegisterPickupPaymentCommand(actor, id, kernel.ZeroMoney, order.CollectionCash, "a.jpg", "image/jpeg", bytes.NewReader(nil))
				return err
			},
			wantErr: errs.ErrValueIsRequired,
		},
		{
			name: "deliver with unknown handover",
			build: func() error {
				_, err := commands.NewDeliverOrderCommand(actor, id, "drone")
				return err
			},
			wantErr: errs.ErrValueIsInvalid,
		},
		{
			name: "assign without courier",
			build: func() error {
				_, err := commands.NewAssignCourierCommand(actor, id, kernel.UUID{})
				return err
			},
			wantErr: kernel.ErrUUIDIsNotConstructed,
		},
		{
			name: "failed delivery without reason",
			build: func() error {
				_, err := commands.NewMarkDeliveryFailedCommand(actor, id, "")
				return err
			},
			wantErr: errs.ErrValueIsRequired,
		},
		{
			name: "complete delivery with unknown collection method",
			build: func() error {
				c := order.Collection{ProductMethod: pointer.To(order.CollectionMethod("cheque"))}
				_, err := commands.NewCompleteDeliveryCommand(actor, id, c, "", nil)
				return err
			},
			wantErr: errs.ErrValueIsInvalid,
		},
		{
			name: "declare without courier",
			build: func() error {
				_, err := commands.NewDeclareCashCommand(actor, id, kernel.UUID{}, nil, "")
				return err
			},
			wantErr: kernel.ErrUUIDIsNotConstructed,
		},
		{
			name: "accept cash without order",
			build: func() error {
				_, err := commands.NewAcceptCashCommand(actor, kernel.UUID{})
				return err
			},
			wantErr: kernel.ErrUUIDIsNotConstructed,
		},
		{
			name: "audit without date",
			build: func() error {
				_, err := commands.NewAuditCashClosingsCommand(time.Time{})
				return err
			},
			wantErr: errs.ErrValueIsRequired,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.build()
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.wantErr)
		})
	}
}

func TestCommands_ZeroValueIsNotConstructed(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		wantErr error
	}{
		{"route", commands.RouteOrderAfterReviewCommand{}.Validate(), commands.ErrRouteOrderAfterReviewCommandIsNotConstructed},
		{"start packing", commands.StartPackingCommand{}.Validate(), commands.ErrStartPackingCommandIsNotConstructed},
		{"dispatch", commands.DispatchOrderCommand{}.Validate(), commands.ErrDispatchOrderCommandIsNotConstructed},
		{"assign", commands.AssignCourierCommand{}.Validate(), commands.ErrAssignCourierCommandIsNotConstructed},
		{"complete", commands.CompleteDeliveryCommand{}.Validate(), commands.ErrCompleteDeliveryCommandIsNotConstructed},
		{"declare", commands.DeclareCashCommand{}.Validate(), commands.ErrDeclareCashCommandIsNotConstructed},
		{"accept", commands.AcceptCashCommand{}.Validate(), commands.ErrAcceptCashCommandIsNotConstructed},
		{"audit", commands.AuditCashClosingsCommand{}.Validate(), commands.ErrAuditCashClosingsCommandIsNotConstructed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.wantErr)
		})
	}
}

func TestCourierCommandsActOnBehalfOfTheCaller(t *testing.T) {
	courier := newActor(t, kernel.RoleCourier)
	cmd, err := commands.NewStartDeliveryCommand(courier, kernel.NewUUID())
	require.NoError(t, err)
	assert.True(t, cmd.CourierID().IsEqual(courier.UserID()))
}

func TestAuditCommandNormalizesDate(t *testing.T) {
	cmd, err := commands.NewAuditCashClosingsCommand(time.Date(2026, 5, 2, 17, 45, 0, 0, time.UTC))
	require.NoError(t, err)
	assert.Equal(t, time.Date(2026, 5, 2, 0, 0, 0, 0, time.UTC), cmd.Date())
}
