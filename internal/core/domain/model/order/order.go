package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var (
	// ErrOrderIsNotConstructed is returned when an Order instance was not created through
	// NewOrder or RestoreOrder.
	ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")
)

// EventStatusChanged is raised on every top-level status change.
const EventStatusChanged = "order.status_changed"

// CommercialFacts are the billing inputs an order is created with.
type CommercialFacts struct {
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
	Recipient             Recipient
}

// Order is the unit of fulfillment and the aggregate root of the order
// lifecycle. Every change of status, courier sub-state or payment record goes
// through one of its guarded methods.
//
// Order follows these invariants:
//   - status only moves along the edges returned by getTransitions
//   - an order without a messenger has no messenger status, and the messenger
//     status is consistent with the top-level status (see ValidateConsistency)
//   - only the assigned courier may act on its own assignment
//   - cancelled and rejected orders always carry a reason
type Order struct {
	kernel.EventRecorder

	id          kernel.UUID
	orderNumber string
	recipient   Recipient

	totalAmount        kernel.Money
	paidAmount         kernel.Money
	externalBalance    *kernel.Money
	requiresPayment    bool
	collectDeliveryFee bool

	paymentMethod         PaymentMethod
	deliveryMethod        DeliveryMethod
	shippingPaymentMethod ShippingPaymentMethod
	shippingDate          *time.Time
	deliveryFee           kernel.Money
	deliveryFeeExempt     bool

	// deliveryFeeDue is the fee evaluated when packing started; nil until then.
	deliveryFeeDue *kernel.Money

	status           Status
	carrierID        *kernel.UUID
	trackingNumber   string
	messengerID      *kernel.UUID
	messengerStatus  MessengerStatus
	deliveryAttempts int

	paymentValidation  *PaymentValidation
	pickupPayment      *PickupPayment
	cancellationReason string

	// version is the optimistic concurrency token owned by persistence.
	version int

	isConstructed bool
}

// NewOrder creates an order in StatusPendingBilling.
//
// Payment and delivery methods may be left empty; billing fixes them when the
// order is routed after review.
func NewOrder(id kernel.UUID, orderNumber string, facts CommercialFacts) (*Order, error) {
	o := &Order{
		status:        StatusPendingBilling,
		isConstructed: true,
	}

	if err := errors.Join(
		o.setID(id),
		o.setOrderNumber(orderNumber),
		o.setCommercialFacts(facts),
	); err != nil {
		return nil, err
	}

	o.recordStatusChange("create", StatusUnknown)
	return o, nil
}

// Validate ensures the Order instance was properly constructed.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID                              { return o.id }
func (o *Order) OrderNumber() string                          { return o.orderNumber }
func (o *Order) Recipient() Recipient                         { return o.recipient }
func (o *Order) TotalAmount() kernel.Money                    { return o.totalAmount }
func (o *Order) PaidAmount() kernel.Money                     { return o.paidAmount }
func (o *Order) ExternalBalance() *kernel.Money               { return o.externalBalance }
func (o *Order) PaymentMethod() PaymentMethod                 { return o.paymentMethod }
func (o *Order) DeliveryMethod() DeliveryMethod               { return o.deliveryMethod }
func (o *Order) ShippingPaymentMethod() ShippingPaymentMethod { return o.shippingPaymentMethod }
func (o *Order) ShippingDate() *time.Time                     { return o.shippingDate }
func (o *Order) DeliveryFee() kernel.Money                    { return o.deliveryFee }
func (o *Order) DeliveryFeeExempt() bool                      { return o.deliveryFeeExempt }
func (o *Order) DeliveryFeeDue() *kernel.Money                { return o.deliveryFeeDue }
func (o *Order) Status() Status                               { return o.status }
func (o *Order) CarrierID() *kernel.UUID                      { return o.carrierID }
func (o *Order) TrackingNumber() string                       { return o.trackingNumber }
func (o *Order) MessengerID() *kernel.UUID                    { return o.messengerID }
func (o *Order) MessengerStatus() MessengerStatus             { return o.messengerStatus }
func (o *Order) DeliveryAttempts() int                        { return o.deliveryAttempts }
func (o *Order) PaymentValidation() *PaymentValidation        { return o.paymentValidation }
func (o *Order) PickupPayment() *PickupPayment                { return o.pickupPayment }
func (o *Order) CancellationReason() string                   { return o.cancellationReason }
func (o *Order) Version() int                                 { return o.version }

// SetVersion is called by the repository after a successful write.
func (o *Order) SetVersion(version int) {
	o.version = version
}

// PaymentFacts exposes the commercial facts the payment policy needs.
func (o *Order) PaymentFacts() PaymentFacts {
	return PaymentFacts{
		TotalAmount:           o.totalAmount,
		PaidAmount:            o.paidAmount,
		ExternalBalance:       o.externalBalance,
		RequiresPayment:       o.requiresPayment,
		CollectDeliveryFee:    o.collectDeliveryFee,
		PaymentMethod:         o.paymentMethod,
		DeliveryMethod:        o.deliveryMethod,
		ShippingPaymentMethod: o.shippingPaymentMethod,
		DeliveryFee:           o.deliveryFee,
		DeliveryFeeExempt:     o.deliveryFeeExempt,
	}
}

// EnrichRecipient merges best-effort extracted recipient data into blank fields.
func (o *Order) EnrichRecipient(extracted Recipient) {
	o.recipient = o.recipient.Enrich(extracted)
}

// RouteAfterReview fixes the payment and delivery methods chosen by billing
// and releases the order either to wallet review or straight to logistics.
func (o *Order) RouteAfterReview(payment PaymentMethod, delivery DeliveryMethod, shippingDate time.Time) (Status, error) {
	if err := errors.Join(payment.Validate(), delivery.Validate()); err != nil {
		return StatusUnknown, err
	}
	if shippingDate.IsZero() {
		return StatusUnknown, errs.NewValueIsRequiredError("shipping date")
	}

	if err := o.moveTo("route after review", RouteAfterReview(payment, delivery), StatusPendingBilling); err != nil {
		return StatusUnknown, err
	}

	o.paymentMethod = payment
	o.deliveryMethod = delivery
	o.shippingDate = &shippingDate
	return o.status, nil
}

// ApproveWalletPayment applies treasury's validation and releases the order
// to logistics. The declared amount must match the order total within the
// policy tolerance; electronic payments also need a provider and reference.
func (o *Order) ApproveWalletPayment(v PaymentValidation, policy Policy) error {
	if o.status != StatusWalletReview {
		return errs.NewInvalidTransitionError("approve wallet payment", o.status.String())
	}
	if o.paymentMethod == PaymentElectronic {
		if v.provider == "" {
			return errs.NewValueIsRequiredError("provider")
		}
		if v.reference == "" {
			return errs.NewValueIsRequiredError("transaction reference")
		}
	}
	if err := policy.MatchAmount("declared amount", o.totalAmount, v.amount); err != nil {
		return err
	}

	if err := o.moveTo("approve wallet payment", StatusInLogistics, StatusWalletReview); err != nil {
		return err
	}
	o.paymentValidation = &v
	// A matching transfer settles the product in full; the record keeps the actual figure.
	o.paidAmount = o.totalAmount
	return nil
}

// RejectWalletPayment cancels an order whose funds could not be confirmed.
func (o *Order) RejectWalletPayment(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}
	if err := o.moveTo("reject wallet payment", StatusCancelled, StatusWalletReview); err != nil {
		return err
	}
	o.cancellationReason = reason
	return nil
}

// StartPacking begins preparing the order. Orders leaving the warehouse need
// a carrier. For local orders whose shipping is collected on delivery the fee
// rule is evaluated now and its outcome persisted.
func (o *Order) StartPacking(carrierID *kernel.UUID, freeShippingThreshold kernel.Money, policy Policy) error {
	if o.status != StatusInLogistics {
		return errs.NewInvalidTransitionError("start packing", o.status.String())
	}
	if err := o.deliveryMethod.Validate(); err != nil {
		return err
	}
	if carrierID != nil {
		if err := carrierID.Validate(); err != nil {
			return err
		}
	}

	carrier := o.carrierID
	if carrierID != nil {
		carrier = carrierID
	}
	if !o.deliveryMethod.IsPickup() && carrier == nil {
		return errs.NewValueIsRequiredError("carrier")
	}

	var feeDue *kernel.Money
	if o.deliveryMethod.IsLocal() && o.shippingPaymentMethod == ShippingCollectOnDelivery {
		fee := policy.DeliveryFeeDue(o.PaymentFacts(), freeShippingThreshold)
		feeDue = &fee
	}

	if err := o.moveTo("start packing", StatusInPacking, StatusInLogistics); err != nil {
		return err
	}
	o.carrierID = carrier
	o.deliveryFeeDue = feeDue
	return nil
}

func (o *Order) FinishPacking() error {
	return o.moveTo("finish packing", StatusPacked, StatusInPacking)
}

// RegisterPickupPayment records the counter payment for a warehouse pickup.
func (o *Order) RegisterPickupPayment(p PickupPayment) error {
	if !o.deliveryMethod.IsPickup() {
		return errs.NewPreconditionFailedError("pickup payments are only registered for warehouse pickup orders")
	}
	if o.status.IsTerminal() || o.status == StatusPendingBilling || o.status == StatusWalletReview {
		return errs.NewInvalidTransitionError("register pickup payment", o.status.String())
	}
	o.pickupPayment = &p
	return nil
}

// MarkReadyForPickup makes a packed order available. A warehouse pickup that
// still owes money needs a registered counter payment with evidence first.
func (o *Order) MarkReadyForPickup(policy Policy) error {
	if o.status != StatusPacked {
		return errs.NewInvalidTransitionError("mark ready for pickup", o.status.String())
	}
	if err := o.checkPickupPaid(policy); err != nil {
		return err
	}
	return o.moveTo("mark ready for pickup", StatusReadyForPickup, StatusPacked)
}

// Dispatch hands the order to its carrier. National carriers need a tracking
// number. Orders held by an in-house courier leave through StartDelivery.
func (o *Order) Dispatch(trackingNumber string) error {
	trackingNumber = strings.TrimSpace(trackingNumber)
	if o.status != StatusPacked && o.status != StatusReadyForPickup {
		return errs.NewInvalidTransitionError("dispatch", o.status.String())
	}
	if o.deliveryMethod.IsPickup() {
		return errs.NewPreconditionFailedError("warehouse pickup orders are not dispatched")
	}
	if o.messengerID != nil {
		return errs.NewPreconditionFailedError("orders with an assigned courier leave through start delivery")
	}
	if o.deliveryMethod == DeliveryNationalCarrier && trackingNumber == "" {
		return errs.NewValueIsRequiredError("tracking number")
	}

	if err := o.moveTo("dispatch", StatusOutForDelivery, StatusPacked, StatusReadyForPickup); err != nil {
		return err
	}
	if trackingNumber != "" {
		o.trackingNumber = trackingNumber
	}
	return nil
}

func (o *Order) DeliverToCarrier() error {
	if o.deliveryMethod.IsPickup() {
		return errs.NewPreconditionFailedError("warehouse pickup orders are not handed to carriers")
	}
	if o.carrierID == nil {
		return errs.NewPreconditionFailedError("order has no carrier")
	}
	if o.messengerID != nil {
		return errs.NewPreconditionFailedError("orders with an assigned courier are completed by the courier")
	}
	return o.moveTo("deliver to carrier", StatusDeliveredToCarrier, StatusReadyForPickup, StatusOutForDelivery)
}

// DeliverAtWarehouse closes a pickup order handed over at the counter.
func (o *Order) DeliverAtWarehouse(policy Policy) error {
	if o.status != StatusReadyForPickup {
		return errs.NewInvalidTransitionError("deliver at warehouse", o.status.String())
	}
	if !o.deliveryMethod.IsPickup() {
		return errs.NewPreconditionFailedError("only warehouse pickup orders are delivered at the warehouse")
	}
	if err := o.checkPickupPaid(policy); err != nil {
		return err
	}
	return o.moveTo("deliver at warehouse", StatusDeliveredWarehouse, StatusReadyForPickup)
}

// Cancel stops a non-terminal order. A courier holding the order, even one
// already on the road, is released; the caller closes that courier's
// tracking cycle.
func (o *Order) Cancel(reason string) error {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return errs.NewValueIsRequiredError("cancellation reason")
	}
	if err := o.moveTo("cancel", StatusCancelled,
		StatusPendingBilling, StatusWalletReview, StatusInLogistics, StatusInPacking,
		StatusPacked, StatusReadyForPickup, StatusOutForDelivery); err != nil {
		return err
	}
	o.cancellationReason = reason
	o.messengerID = nil
	o.messengerStatus = MessengerNone
	return o.validateMessenger()
}

// AssignCourier attaches an in-house courier. Orders still being prepared
// become ready for pickup by the courier. A courier may be replaced after a
// failed attempt but not while an assignment is live.
func (o *Order) AssignCourier(courierID kernel.UUID) error {
	if err := courierID.Validate(); err != nil {
		return err
	}
	if !o.deliveryMethod.IsCourierEligible() {
		return errs.NewPreconditionFailedError(
			fmt.Sprintf("delivery method %q does not allow courier assignment", o.deliveryMethod))
	}
	if o.messengerStatus != MessengerNone && o.messengerStatus != MessengerDeliveryFailed {
		return errs.NewInvalidTransitionError("assign courier", "messenger status "+o.messengerStatus.String())
	}

	switch {
	case o.status.IsPreDispatch():
		if err := o.moveTo("assign courier", StatusReadyForPickup, StatusInLogistics, StatusInPacking, StatusPacked); err != nil {
			return err
		}
	case o.status == StatusReadyForPickup || o.status == StatusOutForDelivery:
	default:
		return errs.NewInvalidTransitionError("assign courier", o.status.String())
	}

	o.messengerID = &courierID
	o.messengerStatus = MessengerAssigned
	return o.validateMessenger()
}

func (o *Order) AcceptAssignment(courierID kernel.UUID) error {
	if err := o.requireMessenger("accept assignment", courierID, MessengerAssigned); err != nil {
		return err
	}
	o.messengerStatus = MessengerAccepted
	return o.validateMessenger()
}

// RejectAssignment returns the order to logistics: the courier is detached
// and the order may be assigned again.
func (o *Order) RejectAssignment(courierID kernel.UUID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("rejection reason")
	}
	if err := o.requireMessenger("reject assignment", courierID, MessengerAssigned); err != nil {
		return err
	}
	o.messengerID = nil
	o.messengerStatus = MessengerNone
	return o.validateMessenger()
}

func (o *Order) StartDelivery(courierID kernel.UUID) error {
	if err := o.requireMessenger("start delivery", courierID, MessengerAccepted); err != nil {
		return err
	}
	if o.status == StatusReadyForPickup {
		if err := o.moveTo("start delivery", StatusOutForDelivery, StatusReadyForPickup); err != nil {
			return err
		}
	}
	o.messengerStatus = MessengerInDelivery
	return o.validateMessenger()
}

// CompleteDelivery closes a courier delivery. Whether product payment or a
// delivery fee had to be collected is decided by policy; cash collections must
// carry a positive amount, and a cash order billed as cash cannot be switched
// to transfer at the door. The returned collection is what gets recorded on
// the delivery tracking row.
func (o *Order) CompleteDelivery(
	courierID kernel.UUID,
	c Collection,
	freeShippingThreshold kernel.Money,
	policy Policy,
) (Collection, error) {
	if err := o.requireMessenger("complete delivery", courierID, MessengerInDelivery); err != nil {
		return Collection{}, err
	}

	facts := o.PaymentFacts()
	if policy.RequiresProductPayment(facts) {
		if err := validateCollected("payment", c.ProductMethod, c.ProductAmount); err != nil {
			return Collection{}, err
		}
		if o.paymentMethod.IsCashCollected() && *c.ProductMethod == CollectionTransfer {
			return Collection{}, errs.NewPreconditionFailedError(
				fmt.Sprintf("order was billed as %s and cannot be collected by transfer", o.paymentMethod))
		}
	}

	feeDue := policy.DeliveryFeeDue(facts, freeShippingThreshold)
	if o.deliveryFeeDue != nil {
		feeDue = *o.deliveryFeeDue
	}
	if feeDue.IsPositive() {
		if err := validateCollected("delivery fee", c.FeeMethod, c.FeeAmount); err != nil {
			return Collection{}, err
		}
	}

	if err := o.moveTo("complete delivery", StatusDeliveredToCustomer, StatusOutForDelivery); err != nil {
		return Collection{}, err
	}
	o.messengerStatus = MessengerDelivered
	return c, o.validateMessenger()
}

// MarkDeliveryFailed records an unsuccessful attempt. The top-level status is
// left for logistics to re-route.
func (o *Order) MarkDeliveryFailed(courierID kernel.UUID, reason string) error {
	if strings.TrimSpace(reason) == "" {
		return errs.NewValueIsRequiredError("failure reason")
	}
	if err := o.requireMessenger("mark delivery failed", courierID, MessengerInDelivery); err != nil {
		return err
	}
	o.deliveryAttempts++
	o.messengerStatus = MessengerDeliveryFailed
	return o.validateMessenger()
}

func (o *Order) checkPickupPaid(policy Policy) error {
	if !o.deliveryMethod.IsPickup() || !policy.RequiresProductPayment(o.PaymentFacts()) {
		return nil
	}
	if o.pickupPayment == nil || o.pickupPayment.evidenceURL == "" {
		return errs.NewPreconditionFailedError("a cash-register entry with photographic evidence is required before pickup")
	}
	return nil
}

// requireMessenger checks the order is still open, the acting courier owns
// the assignment and the sub-state is the expected one.
func (o *Order) requireMessenger(operation string, courierID kernel.UUID, expected MessengerStatus) error {
	if o.status.IsTerminal() {
		return errs.NewInvalidTransitionError(operation, o.status.String())
	}
	if o.messengerID == nil {
		return errs.NewInvalidTransitionErrorWithCause(operation, o.status.String(), errors.New("no courier assigned"))
	}
	if !o.messengerID.IsEqual(courierID) {
		return errs.NewUnauthorizedError(courierID.String(), operation, "courier is not assigned to the order")
	}
	if o.messengerStatus != expected {
		return errs.NewInvalidTransitionError(operation, "messenger status "+o.messengerStatus.String())
	}
	return nil
}

func (o *Order) validateMessenger() error {
	return o.messengerStatus.ValidateConsistency(o.status, o.messengerID != nil)
}

func (o *Order) moveTo(operation string, next Status, from ...Status) error {
	newStatus, err := o.status.transition(operation, next, from...)
	if err != nil {
		return err
	}
	prev := o.status
	o.status = newStatus
	o.recordStatusChange(operation, prev)
	return nil
}

func (o *Order) recordStatusChange(operation string, from Status) {
	o.Record(kernel.NewDomainEvent(EventStatusChanged, o.id, map[string]string{
		"order_number": o.orderNumber,
		"operation":    operation,
		"from":         from.String(),
		"to":           o.status.String(),
	}))
}

func validateCollected(concept string, method *CollectionMethod, amount *kernel.Money) error {
	if method == nil {
		return errs.NewValueIsRequiredError(concept + " method")
	}
	if err := method.Validate(); err != nil {
		return err
	}
	if *method == CollectionCash && (amount == nil || !amount.IsPositive()) {
		return errs.NewValueIsRequiredErrorWithCause(concept+" amount", errors.New("cash collections must be positive"))
	}
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setOrderNumber(number string) error {
	number = strings.TrimSpace(number)
	if number == "" {
		return errs.NewValueIsRequiredError("order number")
	}
	o.orderNumber = number
	return nil
}

func (o *Order) setCommercialFacts(f CommercialFacts) error {
	var errList []error
	if !f.TotalAmount.IsPositive() {
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause("total amount",
			fmt.Errorf("%s is not positive", f.TotalAmount)))
	}
	if f.PaymentMethod != "" {
		errList = append(errList, f.PaymentMethod.Validate())
	}
	if f.DeliveryMethod != "" {
		errList = append(errList, f.DeliveryMethod.Validate())
	}
	errList = append(errList, f.ShippingPaymentMethod.Validate())
	if err := errors.Join(errList...); err != nil {
		return err
	}

	o.totalAmount = f.TotalAmount
	o.paidAmount = f.PaidAmount
	o.externalBalance = f.ExternalBalance
	o.requiresPayment = f.RequiresPayment
	o.collectDeliveryFee = f.CollectDeliveryFee
	o.paymentMethod = f.PaymentMethod
	o.deliveryMethod = f.DeliveryMethod
	o.shippingPaymentMethod = f.ShippingPaymentMethod
	o.deliveryFee = f.DeliveryFee
	o.deliveryFeeExempt = f.DeliveryFeeExempt
	o.recipient = f.Recipient
	return nil
}
