// Package orderrepo persists order aggregates with GORM. Statuses are stored
// by name and amounts as numeric columns.
package orderrepo

import (
	"errors"
	"time"

	"fulfillment/internal/adapters/out/postgres/dbtypes"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const orderNumberConstraint = "idx_orders_order_number"

// OrderDTO is the orders table row.
type OrderDTO struct {
	ID          uuid.UUID `gorm:"type:uuid;primaryKey"`
	OrderNumber string    `gorm:"size:64;not null;uniqueIndex:idx_orders_order_number"`

	TotalAmount        decimal.Decimal  `gorm:"type:numeric(14,2);not null"`
	PaidAmount         decimal.Decimal  `gorm:"type:numeric(14,2);not null;default:0"`
	ExternalBalance    *decimal.Decimal `gorm:"type:numeric(14,2)"`
	RequiresPayment    bool
	CollectDeliveryFee bool

	PaymentMethod         string `gorm:"size:32"`
	DeliveryMethod        string `gorm:"size:32"`
	ShippingPaymentMethod string `gorm:"size:32;not null"`
	ShippingDate          *time.Time

	DeliveryFee       decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	DeliveryFeeExempt bool
	DeliveryFeeDue    *decimal.Decimal `gorm:"type:numeric(14,2)"`

	Recipient RecipientDTO `gorm:"embedded;embeddedPrefix:recipient_"`

	Status           string     `gorm:"size:32;not null;index"`
	CarrierID        *uuid.UUID `gorm:"type:uuid"`
	TrackingNumber   string     `gorm:"size:64"`
	MessengerID      *uuid.UUID `gorm:"type:uuid;index"`
	MessengerStatus  string     `gorm:"size:32"`
	DeliveryAttempts int        `gorm:"not null;default:0"`

	Validation *PaymentValidationDTO `gorm:"embedded;embeddedPrefix:validation_"`
	Pickup     *PickupPaymentDTO     `gorm:"embedded;embeddedPrefix:pickup_"`

	CancellationReason string
	Version            int `gorm:"not null"`

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (OrderDTO) TableName() string {
	return "orders"
}

type RecipientDTO struct {
	Name    string
	Phone   string `gorm:"size:32"`
	Address string
	City    string `gorm:"size:64"`
}

// PaymentValidationDTO holds treasury's wallet validation. All columns are
// null until the order is approved.
type PaymentValidationDTO struct {
	Amount      *decimal.Decimal `gorm:"type:numeric(14,2)"`
	Provider    *string          `gorm:"size:32"`
	Reference   *string          `gorm:"size:128"`
	ValidatedBy *uuid.UUID       `gorm:"type:uuid"`
	ValidatedAt *time.Time
}

// PickupPaymentDTO holds the warehouse cash-register entry.
type PickupPaymentDTO struct {
	Amount       *decimal.Decimal `gorm:"type:numeric(14,2)"`
	Method       *string          `gorm:"size:16"`
	EvidenceURL  *string
	RegisteredBy *uuid.UUID `gorm:"type:uuid"`
	RegisteredAt *time.Time
}

func fromDomain(o *order.Order) OrderDTO {
	s := o.Snapshot()
	f := s.Facts

	dto := OrderDTO{
		ID:                    s.ID.Bytes(),
		OrderNumber:           s.OrderNumber,
		TotalAmount:           f.TotalAmount.Decimal(),
		PaidAmount:            f.PaidAmount.Decimal(),
		ExternalBalance:       dbtypes.DecimalPtr(f.ExternalBalance),
		RequiresPayment:       f.RequiresPayment,
		CollectDeliveryFee:    f.CollectDeliveryFee,
		PaymentMethod:         string(f.PaymentMethod),
		DeliveryMethod:        string(f.DeliveryMethod),
		ShippingPaymentMethod: string(f.ShippingPaymentMethod),
		ShippingDate:          s.ShippingDate,
		DeliveryFee:           f.DeliveryFee.Decimal(),
		DeliveryFeeExempt:     f.DeliveryFeeExempt,
		DeliveryFeeDue:        dbtypes.DecimalPtr(s.DeliveryFeeDue),
		Recipient: RecipientDTO{
			Name:    f.Recipient.Name,
			Phone:   f.Recipient.Phone,
			Address: f.Recipient.Address,
			City:    f.Recipient.City,
		},
		Status:             s.Status.String(),
		CarrierID:          dbtypes.UUIDPtr(s.CarrierID),
		TrackingNumber:     s.TrackingNumber,
		MessengerID:        dbtypes.UUIDPtr(s.MessengerID),
		MessengerStatus:    s.MessengerStatus.String(),
		DeliveryAttempts:   s.DeliveryAttempts,
		CancellationReason: s.CancellationReason,
		Version:            s.Version,
		Validation:         &PaymentValidationDTO{},
		Pickup:             &PickupPaymentDTO{},
	}

	if v := s.PaymentValidation; v != nil {
		amount := v.Amount.Decimal()
		provider := string(v.Provider)
		validatedBy := v.ValidatedBy.Bytes()
		dto.Validation = &PaymentValidationDTO{
			Amount:      &amount,
			Provider:    &provider,
			Reference:   &v.Reference,
			ValidatedBy: &validatedBy,
			ValidatedAt: &v.ValidatedAt,
		}
	}
	if p := s.PickupPayment; p != nil {
		amount := p.Amount.Decimal()
		method := string(p.Method)
		registeredBy := p.RegisteredBy.Bytes()
		dto.Pickup = &PickupPaymentDTO{
			Amount:       &amount,
			Method:       &method,
			EvidenceURL:  &p.EvidenceURL,
			RegisteredBy: &registeredBy,
			RegisteredAt: &p.RegisteredAt,
		}
	}
	return dto
}

func toDomain(dto OrderDTO) (*order.Order, error) {
	id, idErr := dbtypes.ToUUID(dto.ID)
	carrierID, carrierErr := dbtypes.ToUUIDPtr(dto.CarrierID)
	messengerID, messengerErr := dbtypes.ToUUIDPtr(dto.MessengerID)
	externalBalance, balanceErr := dbtypes.ToMoneyPtr(dto.ExternalBalance)
	feeDue, feeDueErr := dbtypes.ToMoneyPtr(dto.DeliveryFeeDue)
	total, totalErr := kernel.NewMoney(dto.TotalAmount)
	paid, paidErr := kernel.NewMoney(dto.PaidAmount)
	fee, feeErr := kernel.NewMoney(dto.DeliveryFee)
	status, statusErr := order.ParseStatus(dto.Status)
	messengerStatus, messengerStatusErr := order.ParseMessengerStatus(dto.MessengerStatus)
	validation, validationErr := toValidation(dto.Validation)
	pickup, pickupErr := toPickup(dto.Pickup)
	if err := errors.Join(idErr, carrierErr, messengerErr, balanceErr, feeDueErr, totalErr, paidErr, feeErr,
		statusErr, messengerStatusErr, validationErr, pickupErr); err != nil {
		return nil, err
	}

	return order.RestoreOrder(order.Snapshot{
		ID:          id,
		OrderNumber: dto.OrderNumber,
		Facts: order.CommercialFacts{
			TotalAmount:           total,
			PaidAmount:            paid,
			ExternalBalance:       externalBalance,
			RequiresPayment:       dto.RequiresPayment,
			CollectDeliveryFee:    dto.CollectDeliveryFee,
			PaymentMethod:         order.PaymentMethod(dto.PaymentMethod),
			DeliveryMethod:        order.DeliveryMethod(dto.DeliveryMethod),
			ShippingPaymentMethod: order.ShippingPaymentMethod(dto.ShippingPaymentMethod),
			DeliveryFee:           fee,
			DeliveryFeeExempt:     dto.DeliveryFeeExempt,
			Recipient: order.Recipient{
				Name:    dto.Recipient.Name,
				Phone:   dto.Recipient.Phone,
				Address: dto.Recipient.Address,
				City:    dto.Recipient.City,
			},
		},
		ShippingDate:       dto.ShippingDate,
		DeliveryFeeDue:     feeDue,
		Status:             status,
		CarrierID:          carrierID,
		TrackingNumber:     dto.TrackingNumber,
		MessengerID:        messengerID,
		MessengerStatus:    messengerStatus,
		DeliveryAttempts:   dto.DeliveryAttempts,
		PaymentValidation:  validation,
		PickupPayment:      pickup,
		CancellationReason: dto.CancellationReason,
		Version:            dto.Version,
	})
}

func toValidation(dto *PaymentValidationDTO) (*order.PaymentValidationState, error) {
	if dto == nil || dto.Amount == nil {
		return nil, nil
	}
	amount, err := kernel.NewMoney(*dto.Amount)
	if err != nil {
		return nil, err
	}
	state := &order.PaymentValidationState{Amount: amount}
	if dto.Provider != nil {
		state.Provider = order.ElectronicProvider(*dto.Provider)
	}
	if dto.Reference != nil {
		state.Reference = *dto.Reference
	}
	if dto.ValidatedBy != nil {
		if state.ValidatedBy, err = dbtypes.ToUUID(*dto.ValidatedBy); err != nil {
			return nil, err
		}
	}
	if dto.ValidatedAt != nil {
		state.ValidatedAt = *dto.ValidatedAt
	}
	return state, nil
}

func toPickup(dto *PickupPaymentDTO) (*order.PickupPaymentState, error) {
	if dto == nil || dto.Amount == nil {
		return nil, nil
	}
	amount, err := kernel.NewMoney(*dto.Amount)
	if err != nil {
		return nil, err
	}
	state := &order.PickupPaymentState{Amount: amount}
	if dto.Method != nil {
		state.Method = order.CollectionMethod(*dto.Method)
	}
	if dto.EvidenceURL != nil {
		state.EvidenceURL = *dto.EvidenceURL
	}
	if dto.RegisteredBy != nil {
		if state.RegisteredBy, err = dbtypes.ToUUID(*dto.RegisteredBy); err != nil {
			return nil, err
		}
	}
	if dto.RegisteredAt != nil {
		state.RegisteredAt = *dto.RegisteredAt
	}
	return state, nil
}
