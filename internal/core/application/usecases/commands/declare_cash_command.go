package commands

import (
	"errors"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrDeclareCashCommandIsNotConstructed = errors.New(
	"DeclareCashCommand must be created via NewDeclareCashCommand constructor",
)

// DeclareCashCommand reports the cash a courier collected for a delivered
// order. A nil amount declares exactly what the delivery recorded.
type DeclareCashCommand struct {
	orderCommand
	courierID kernel.UUID
	amount    *kernel.Money
	notes     string

	guard guard.ConstructorGuard
}

func NewDeclareCashCommand(
	actor kernel.Actor,
	orderID, courierID kernel.UUID,
	amount *kernel.Money,
	notes string,
) (DeclareCashCommand, error) {
	base, baseErr := newOrderCommand(actor, orderID)
	errList := []error{baseErr, courierID.Validate()}
	if amount != nil && amount.Decimal().IsNegative() {
		errList = append(errList, errs.NewValueIsInvalidError("amount"))
	}
	if err := errors.Join(errList...); err != nil {
		return DeclareCashCommand{}, err
	}

	return DeclareCashCommand{
		orderCommand: base,
		courierID:    courierID,
		amount:       amount,
		notes:        strings.TrimSpace(notes),
		guard:        guard.NewConstructorGuard(),
	}, nil
}

func (c DeclareCashCommand) Validate() error {
	return c.guard.Validate(ErrDeclareCashCommandIsNotConstructed)
}

func (c DeclareCashCommand) CourierID() kernel.UUID { return c.courierID }
func (c DeclareCashCommand) Amount() *kernel.Money  { return c.amount }
func (c DeclareCashCommand) Notes() string          { return c.notes }
