package commands

import (
	"errors"
	"io"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrRegisterPickupPaymentCommandIsNotConstructed = errors.New(
	"RegisterPickupPaymentCommand must be created via NewRegisterPickupPaymentCommand constructor",
)

// RegisterPickupPaymentCommand records a counter payment for a warehouse
// pickup together with the photo of the receipt.
type RegisterPickupPaymentCommand struct {
	orderCommand
	amount           kernel.Money
	method           order.CollectionMethod
	photoName        string
	photoContentType string
	photo            io.Reader

	guard guard.ConstructorGuard
}

func NewRegisterPickupPaymentCommand(
	actor kernel.Actor,
	orderID kernel.UUID,
	amount kernel.Money,
	method order.CollectionMethod,
	photoName, photoContentType string,
	photo io.Reader,
) (RegisterPickupPaymentCommand, error) {
	base, baseErr := newOrderCommand(actor, orderID)
	errList := []error{baseErr, method.Validate()}
	if !amount.IsPositive() {
		errList = append(errList, errs.NewValueIsRequiredError("amount"))
	}
	if photo == nil {
		errList = append(errList, errs.NewValueIsRequiredError("photo"))
	}
	if err := errors.Join(errList...); err != nil {
		return RegisterPickupPaymentCommand{}, err
	}

	return RegisterPickupPaymentCommand{
		orderCommand:     base,
		amount:           amount,
		method:           method,
		photoName:        photoName,
		photoContentType: photoContentType,
		photo:            photo,
		guard:            guard.NewConstructorGuard(),
	}, nil
}

func (c RegisterPickupPaymentCommand) Validate() error {
	return c.guard.Validate(ErrRegisterPickupPaymentCommandIsNotConstructed)
}

func (c RegisterPickupPaymentCommand) Amount() kernel.Money           { return c.amount }
func (c RegisterPickupPaymentCommand) Method() order.CollectionMethod { return c.method }
func (c RegisterPickupPaymentCommand) PhotoName() string              { return c.photoName }
func (c RegisterPickupPaymentCommand) PhotoContentType() string       { return c.photoContentType }
func (c RegisterPickupPaymentCommand) Photo() io.Reader               { return c.photo }
