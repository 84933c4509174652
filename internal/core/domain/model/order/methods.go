package order

import (
	"fmt"
	"slices"

	"fulfillment/internal/pkg/errs"
)

// PaymentMethod is how billing expects the product to be paid.
type PaymentMethod string

const (
	PaymentCash           PaymentMethod = "cash"
	PaymentBankTransfer   PaymentMethod = "bank_transfer"
	PaymentElectronic     PaymentMethod = "electronic"
	PaymentStoreCredit    PaymentMethod = "store_credit"
	PaymentCashOnDelivery PaymentMethod = "cash_on_delivery"
)

var paymentMethods = []PaymentMethod{
	PaymentCash, PaymentBankTransfer, PaymentElectronic, PaymentStoreCredit, PaymentCashOnDelivery,
}

func (m PaymentMethod) Validate() error {
	return validateEnum("payment method", m, paymentMethods)
}

// IsCashCollected reports whether money is collected in person.
func (m PaymentMethod) IsCashCollected() bool {
	return m == PaymentCash || m == PaymentCashOnDelivery
}

// DeliveryMethod is how the order reaches the customer.
type DeliveryMethod string

const (
	DeliveryWarehousePickup DeliveryMethod = "warehouse_pickup"
	DeliveryLocalCourier    DeliveryMethod = "local_courier"
	DeliveryExpressCourier  DeliveryMethod = "express_courier"
	DeliveryNationalCarrier DeliveryMethod = "national_carrier"
)

var deliveryMethods = []DeliveryMethod{
	DeliveryWarehousePickup, DeliveryLocalCourier, DeliveryExpressCourier, DeliveryNationalCarrier,
}

func (m DeliveryMethod) Validate() error {
	return validateEnum("delivery method", m, deliveryMethods)
}

// IsCourierEligible reports whether an in-house courier can be assigned.
func (m DeliveryMethod) IsCourierEligible() bool {
	return m == DeliveryLocalCourier || m == DeliveryExpressCourier
}

// IsLocal reports whether the method is served within the city.
func (m DeliveryMethod) IsLocal() bool {
	return m.IsCourierEligible()
}

func (m DeliveryMethod) IsPickup() bool {
	return m == DeliveryWarehousePickup
}

// ShippingPaymentMethod is who pays for shipping.
type ShippingPaymentMethod string

const (
	ShippingPrepaidByCompany  ShippingPaymentMethod = "prepaid_by_company"
	ShippingCollectOnDelivery ShippingPaymentMethod = "collect_on_delivery"
)

var shippingPaymentMethods = []ShippingPaymentMethod{ShippingPrepaidByCompany, ShippingCollectOnDelivery}

func (m ShippingPaymentMethod) Validate() error {
	return validateEnum("shipping payment method", m, shippingPaymentMethods)
}

// ElectronicProvider identifies the wallet or gateway behind an electronic payment.
type ElectronicProvider string

const (
	ProviderNequi     ElectronicProvider = "nequi"
	ProviderDaviplata ElectronicProvider = "daviplata"
	ProviderPSE       ElectronicProvider = "pse"
	ProviderCard      ElectronicProvider = "card"
)

var electronicProviders = []ElectronicProvider{ProviderNequi, ProviderDaviplata, ProviderPSE, ProviderCard}

func (p ElectronicProvider) Validate() error {
	return validateEnum("provider", p, electronicProviders)
}

// CollectionMethod is how a courier or the warehouse actually received money.
type CollectionMethod string

const (
	CollectionCash     CollectionMethod = "cash"
	CollectionTransfer CollectionMethod = "transfer"
)

var collectionMethods = []CollectionMethod{CollectionCash, CollectionTransfer}

func (m CollectionMethod) Validate() error {
	return validateEnum("collection method", m, collectionMethods)
}

func validateEnum[T ~string](paramName string, v T, allowed []T) error {
	if v == "" {
		return errs.NewValueIsRequiredError(paramName)
	}
	if !slices.Contains(allowed, v) {
		return errs.NewValueIsInvalidErrorWithCause(paramName, fmt.Errorf("%q is not one of %v", string(v), allowed))
	}
	return nil
}
