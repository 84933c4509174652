package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// PaymentValidation is treasury's record that funds for a wallet-reviewed
// order actually landed.
type PaymentValidation struct {
	amount      kernel.Money
	provider    ElectronicProvider
	reference   string
	validatedBy kernel.UUID
	validatedAt time.Time
}

// NewPaymentValidation builds a validation record. provider and reference are
// optional here; electronic orders require both when the record is applied.
func NewPaymentValidation(
	amount kernel.Money,
	provider ElectronicProvider,
	reference string,
	validatedBy kernel.UUID,
	validatedAt time.Time,
) (PaymentValidation, error) {
	var errList []error
	if !amount.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("declared amount", fmt.Errorf("%s is not positive", amount)))
	}
	if provider != "" {
		errList = append(errList, provider.Validate())
	}
	errList = append(errList, validatedBy.Validate())
	if validatedAt.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("validated at"))
	}
	if err := errors.Join(errList...); err != nil {
		return PaymentValidation{}, err
	}

	return PaymentValidation{
		amount:      amount,
		provider:    provider,
		reference:   strings.TrimSpace(reference),
		validatedBy: validatedBy,
		validatedAt: validatedAt,
	}, nil
}

func (v PaymentValidation) Amount() kernel.Money         { return v.amount }
func (v PaymentValidation) Provider() ElectronicProvider { return v.provider }
func (v PaymentValidation) Reference() string            { return v.reference }
func (v PaymentValidation) ValidatedBy() kernel.UUID     { return v.validatedBy }
func (v PaymentValidation) ValidatedAt() time.Time       { return v.validatedAt }

// PickupPayment is the cash-register entry made when a customer pays at the
// warehouse counter. The evidence URL points at the photo of the receipt.
type PickupPayment struct {
	amount       kernel.Money
	method       CollectionMethod
	evidenceURL  string
	registeredBy kernel.UUID
	registeredAt time.Time
}

func NewPickupPayment(
	amount kernel.Money,
	method CollectionMethod,
	evidenceURL string,
	registeredBy kernel.UUID,
	registeredAt time.Time,
) (PickupPayment, error) {
	var errList []error
	if !amount.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("amount", fmt.Errorf("%s is not positive", amount)))
	}
	errList = append(errList, method.Validate())
	if strings.TrimSpace(evidenceURL) == "" {
		errList = append(errList, errs.NewValueIsRequiredError("evidence url"))
	}
	errList = append(errList, registeredBy.Validate())
	if err := errors.Join(errList...); err != nil {
		return PickupPayment{}, err
	}

	return PickupPayment{
		amount:       amount,
		method:       method,
		evidenceURL:  strings.TrimSpace(evidenceURL),
		registeredBy: registeredBy,
		registeredAt: registeredAt,
	}, nil
}

func (p PickupPayment) Amount() kernel.Money      { return p.amount }
func (p PickupPayment) Method() CollectionMethod  { return p.method }
func (p PickupPayment) EvidenceURL() string       { return p.evidenceURL }
func (p PickupPayment) RegisteredBy() kernel.UUID { return p.registeredBy }
func (p PickupPayment) RegisteredAt() time.Time   { return p.registeredAt }

// Recipient holds the shipping contact for an order.
type Recipient struct {
	Name    string
	Phone   string
	Address string
	City    string
}

// Enrich fills blank fields from extracted. Explicitly entered values always win.
func (r Recipient) Enrich(extracted Recipient) Recipient {
	pick := func(explicit, fallback string) string {
		if strings.TrimSpace(explicit) != "" {
			return explicit
		}
		return strings.TrimSpace(fallback)
	}
	return Recipient{
		Name:    pick(r.Name, extracted.Name),
		Phone:   pick(r.Phone, extracted.Phone),
		Address: pick(r.Address, extracted.Address),
		City:    pick(r.City, extracted.City),
	}
}

// Collection is what a courier reports having collected at the door.
// Nil fields mean nothing was collected for that concept.
type Collection struct {
	ProductMethod *CollectionMethod
	ProductAmount *kernel.Money
	FeeMethod     *CollectionMethod
	FeeAmount     *kernel.Money
}

// ProductCollected returns the product amount or zero.
func (c Collection) ProductCollected() kernel.Money {
	if c.ProductAmount == nil {
		return kernel.ZeroMoney
	}
	return *c.ProductAmount
}

// FeeCollected returns the delivery fee amount or zero.
func (c Collection) FeeCollected() kernel.Money {
	if c.FeeAmount == nil {
		return kernel.ZeroMoney
	}
	return *c.FeeAmount
}

// PaymentFacts is the subset of an order the payment policy reasons about.
type PaymentFacts struct {
	TotalAmount           kernel.Money
	PaidAmount            kernel.Money
	ExternalBalance       *kernel.Money
	RequiresPayment       bool
	CollectDeliveryFee    bool
	PaymentMethod         PaymentMethod
	DeliveryMethod        DeliveryMethod
	ShippingPaymentMethod ShippingPaymentMethod
	DeliveryFee           kernel.Money
	DeliveryFeeExempt     bool
}

// Policy is the rule set transitions consult for payment and fee decisions.
type Policy interface {
	ProductAmountDue(f PaymentFacts) kernel.Money
	RequiresProductPayment(f PaymentFacts) bool
	DeliveryFeeDue(f PaymentFacts, freeShippingThreshold kernel.Money) kernel.Money
	MatchAmount(paramName string, expected, received kernel.Money) error
}
