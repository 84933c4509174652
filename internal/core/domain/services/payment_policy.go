package services

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

var (
	toleranceRate  = decimal.RequireFromString("0.005")
	toleranceFloor = decimal.NewFromInt(200)
	toleranceCap   = decimal.NewFromInt(5000)
)

// PaymentPolicy is a stateless domain service deciding what money is owed on
// an order and whether a declared amount matches what was expected.
//
// Business rules:
//   - the product base prefers a positive external balance over the order total
//   - a delivery fee is never charged on prepaid shipping, exempt orders or
//     orders at or above the free-shipping threshold
//   - amounts match when they differ by no more than AmountTolerance, in
//     either direction
//
// Example usage:
//
//	policy := NewPaymentPolicy()
//	due := policy.ProductAmountDue(o.PaymentFacts())
//	if err := policy.MatchAmount("declared amount", o.TotalAmount(), declared); err != nil {
//	    // err is an *errs.AmountMismatchError carrying the signed difference
//	}
type PaymentPolicy struct{}

var _ order.Policy = PaymentPolicy{}

func NewPaymentPolicy() PaymentPolicy {
	return PaymentPolicy{}
}

// ProductAmountDue is max(0, base - paid), where base is the external
// balance when present and positive and the order total otherwise.
func (PaymentPolicy) ProductAmountDue(f order.PaymentFacts) kernel.Money {
	base := f.TotalAmount
	if f.ExternalBalance != nil && f.ExternalBalance.IsPositive() {
		base = *f.ExternalBalance
	}
	return base.SubFloor(f.PaidAmount)
}

// RequiresProductPayment reports whether someone must collect the product
// price before or at hand-over.
func (p PaymentPolicy) RequiresProductPayment(f order.PaymentFacts) bool {
	return p.ProductAmountDue(f).IsPositive() ||
		f.RequiresPayment ||
		f.PaymentMethod.IsCashCollected() ||
		(f.ExternalBalance != nil && f.ExternalBalance.IsPositive())
}

// DeliveryFeeDue returns the shipping fee to collect at the door. A zero
// threshold disables free shipping.
func (PaymentPolicy) DeliveryFeeDue(f order.PaymentFacts, freeShippingThreshold kernel.Money) kernel.Money {
	if f.ShippingPaymentMethod == order.ShippingPrepaidByCompany {
		return kernel.ZeroMoney
	}
	if freeShippingThreshold.IsPositive() && f.TotalAmount.GreaterThanOrEqual(freeShippingThreshold) {
		return kernel.ZeroMoney
	}
	if f.DeliveryFeeExempt {
		return kernel.ZeroMoney
	}
	if f.ShippingPaymentMethod == order.ShippingCollectOnDelivery || f.CollectDeliveryFee {
		return f.DeliveryFee
	}
	return kernel.ZeroMoney
}

// AmountToCollect is the product amount due plus the delivery fee due.
func (p PaymentPolicy) AmountToCollect(f order.PaymentFacts, freeShippingThreshold kernel.Money) kernel.Money {
	return p.ProductAmountDue(f).Add(p.DeliveryFeeDue(f, freeShippingThreshold))
}

// AmountTolerance is min(max(200, total * 0.005), 5000).
func (PaymentPolicy) AmountTolerance(total kernel.Money) decimal.Decimal {
	return decimal.Min(decimal.Max(toleranceFloor, total.Decimal().Mul(toleranceRate)), toleranceCap)
}

// MatchAmount fails with an AmountMismatchError when received differs from
// expected by more than the tolerance for expected.
func (p PaymentPolicy) MatchAmount(paramName string, expected, received kernel.Money) error {
	return p.MatchAgainstTotal(paramName, expected, expected, received)
}

// MatchAgainstTotal is MatchAmount with the tolerance taken from the order
// total rather than from expected. Used when expected includes a delivery fee.
func (p PaymentPolicy) MatchAgainstTotal(paramName string, orderTotal, expected, received kernel.Money) error {
	tolerance := p.AmountTolerance(orderTotal)
	diff := received.Decimal().Sub(expected.Decimal())
	if diff.Abs().GreaterThan(tolerance) {
		return errs.NewAmountMismatchError(paramName, expected.Decimal(), received.Decimal(), tolerance)
	}
	return nil
}
