package order

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// PaymentValidationState is the persisted form of a PaymentValidation.
type PaymentValidationState struct {
	Amount      kernel.Money
	Provider    ElectronicProvider
	Reference   string
	ValidatedBy kernel.UUID
	ValidatedAt time.Time
}

// PickupPaymentState is the persisted form of a PickupPayment.
type PickupPaymentState struct {
	Amount       kernel.Money
	Method       CollectionMethod
	EvidenceURL  string
	RegisteredBy kernel.UUID
	RegisteredAt time.Time
}

// Snapshot is the full state of an order as stored by persistence adapters.
type Snapshot struct {
	ID                 kernel.UUID
	OrderNumber        string
	Facts              CommercialFacts
	ShippingDate       *time.Time
	DeliveryFeeDue     *kernel.Money
	Status             Status
	CarrierID          *kernel.UUID
	TrackingNumber     string
	MessengerID        *kernel.UUID
	MessengerStatus    MessengerStatus
	DeliveryAttempts   int
	PaymentValidation  *PaymentValidationState
	PickupPayment      *PickupPaymentState
	CancellationReason string
	Version            int
}

// RestoreOrder rebuilds an order from storage. The status and messenger
// consistency rules are checked so a corrupt row never becomes a live aggregate.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{isConstructed: true}

	if err := errors.Join(
		o.setID(s.ID),
		o.setOrderNumber(s.OrderNumber),
		o.setCommercialFacts(s.Facts),
		s.Status.Validate(),
		s.MessengerStatus.Validate(),
	); err != nil {
		return nil, err
	}

	o.shippingDate = s.ShippingDate
	o.deliveryFeeDue = s.DeliveryFeeDue
	o.status = s.Status
	o.carrierID = s.CarrierID
	o.trackingNumber = s.TrackingNumber
	o.messengerID = s.MessengerID
	o.messengerStatus = s.MessengerStatus
	o.deliveryAttempts = s.DeliveryAttempts
	o.cancellationReason = s.CancellationReason
	o.version = s.Version

	if v := s.PaymentValidation; v != nil {
		o.paymentValidation = &PaymentValidation{
			amount:      v.Amount,
			provider:    v.Provider,
			reference:   v.Reference,
			validatedBy: v.ValidatedBy,
			validatedAt: v.ValidatedAt,
		}
	}
	if p := s.PickupPayment; p != nil {
		o.pickupPayment = &PickupPayment{
			amount:       p.Amount,
			method:       p.Method,
			evidenceURL:  p.EvidenceURL,
			registeredBy: p.RegisteredBy,
			registeredAt: p.RegisteredAt,
		}
	}

	if err := o.validateMessenger(); err != nil {
		return nil, err
	}
	return o, nil
}

// Snapshot returns the state to persist.
func (o *Order) Snapshot() Snapshot {
	s := Snapshot{
		ID:          o.id,
		OrderNumber: o.orderNumber,
		Facts: CommercialFacts{
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
			Recipient:             o.recipient,
		},
		ShippingDate:       o.shippingDate,
		DeliveryFeeDue:     o.deliveryFeeDue,
		Status:             o.status,
		CarrierID:          o.carrierID,
		TrackingNumber:     o.trackingNumber,
		MessengerID:        o.messengerID,
		MessengerStatus:    o.messengerStatus,
		DeliveryAttempts:   o.deliveryAttempts,
		CancellationReason: o.cancellationReason,
		Version:            o.version,
	}
	if v := o.paymentValidation; v != nil {
		s.PaymentValidation = &PaymentValidationState{
			Amount:      v.amount,
			Provider:    v.provider,
			Reference:   v.reference,
			ValidatedBy: v.validatedBy,
			ValidatedAt: v.validatedAt,
		}
	}
	if p := o.pickupPayment; p != nil {
		s.PickupPayment = &PickupPaymentState{
			Amount:       p.amount,
			Method:       p.method,
			EvidenceURL:  p.evidenceURL,
			RegisteredBy: p.registeredBy,
			RegisteredAt: p.registeredAt,
		}
	}
	return s
}
