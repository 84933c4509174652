package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/guard"
)

var ErrApproveWalletPaymentCommandIsNotConstructed = errors.New(
	"ApproveWalletPaymentCommand must be created via NewApproveWalletPaymentCommand constructor",
)

// ApproveWalletPaymentCommand is treasury confirming that a transfer or
// electronic payment landed. provider and reference are required for
// electronic payments only; the aggregate enforces that.
type ApproveWalletPaymentCommand struct {
	orderCommand
	declaredAmount kernel.Money
	provider       order.ElectronicProvider
	reference      string

	guard guard.ConstructorGuard
}

func NewApproveWalletPaymentCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	declaredAmount kernel.Money,
	provider order.ElectronicProvider,
	reference string,
) (ApproveWalletPaymentCommand, error) {
	base, baseErr := newOrderCommand(actor, orderID)
	var providerErr error
	if provider != "" {
		providerErr = provider.Validate()
	}
	if err := errors.Join(baseErr, providerErr); err != nil {
		return ApproveWalletPaymentCommand{}, err
	}

	return ApproveWalletPaymentCommand{
		orderCommand:   base,
		declaredAmount: declaredAmount,
		provider:       provider,
		reference:      strings.TrimSpace(reference),
		guard:          guard.NewConstructorGuard(),
	}, nil
}

func (c ApproveWalletPaymentCommand) Validate() error {
	return c.guard.Validate(ErrApproveWalletPaymentCommandIsNotConstructed)
}

func (c ApproveWalletPaymentCommand) DeclaredAmount() kernel.Money       { return c.declaredAmount }
func (c ApproveWalletPaymentCommand) Provider() order.ElectronicProvider { return c.provider }
func (c ApproveWalletPaymentCommand) Reference() string                  { return c.reference }
