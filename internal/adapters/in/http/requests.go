package http

import (
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/shopspring/decimal"
)

// Request bodies are checked against openapi.yaml before they are bound, so
// enum values and amount signs arrive already validated.

type RecipientRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
	City    string `json:"city"`
}

type CreateOrderRequest struct {
	OrderNumber           string           `json:"order_number"`
	TotalAmount           decimal.Decimal  `json:"total_amount"`
	PaidAmount            decimal.Decimal  `json:"paid_amount"`
	ExternalBalance       *decimal.Decimal `json:"external_balance"`
	RequiresPayment       bool             `json:"requires_payment"`
	CollectDeliveryFee    bool             `json:"collect_delivery_fee"`
	PaymentMethod         string           `json:"payment_method"`
	DeliveryMethod        string           `json:"delivery_method"`
	ShippingPaymentMethod string           `json:"shipping_payment_method"`
	DeliveryFee           decimal.Decimal  `json:"delivery_fee"`
	DeliveryFeeExempt     bool             `json:"delivery_fee_exempt"`
	Recipient             RecipientRequest `json:"recipient"`
	Notes                 string           `json:"notes"`
}

func (r CreateOrderRequest) facts() (order.CommercialFacts, error) {
	total, err := kernel.NewMoney(r.TotalAmount)
	if err != nil {
		return order.CommercialFacts{}, err
	}
	paid, err := kernel.NewMoney(r.PaidAmount)
	if err != nil {
		return order.CommercialFacts{}, err
	}
	fee, err := kernel.NewMoney(r.DeliveryFee)
	if err != nil {
		return order.CommercialFacts{}, err
	}
	balance, err := toMoneyPtr(r.ExternalBalance)
	if err != nil {
		return order.CommercialFacts{}, err
	}

	return order.CommercialFacts{
		TotalAmount:           total,
		PaidAmount:            paid,
		ExternalBalance:       balance,
		RequiresPayment:       r.RequiresPayment,
		CollectDeliveryFee:    r.CollectDeliveryFee,
		PaymentMethod:         order.PaymentMethod(r.PaymentMethod),
		DeliveryMethod:        order.DeliveryMethod(r.DeliveryMethod),
		ShippingPaymentMethod: order.ShippingPaymentMethod(r.ShippingPaymentMethod),
		DeliveryFee:           fee,
		DeliveryFeeExempt:     r.DeliveryFeeExempt,
		Recipient: order.Recipient{
			Name:    r.Recipient.Name,
			Phone:   r.Recipient.Phone,
			Address: r.Recipient.Address,
			City:    r.Recipient.City,
		},
	}, nil
}

type RouteOrderRequest struct {
	PaymentMethod  string             `json:"payment_method"`
	DeliveryMethod string             `json:"delivery_method"`
	ShippingDate   openapi_types.Date `json:"shipping_date"`
}

type ApproveWalletPaymentRequest struct {
	DeclaredAmount decimal.Decimal `json:"declared_amount"`
	Provider       string          `json:"provider"`
	Reference      string          `json:"reference"`
}

type ReasonRequest struct {
	Reason string `json:"reason"`
}

type StartPackingRequest struct {
	CarrierID *string `json:"carrier_id"`
}

type DispatchOrderRequest struct {
	TrackingNumber string `json:"tracking_number"`
}

type DeliverOrderRequest struct {
	Handover string `json:"handover"`
}

type AssignCourierRequest struct {
	CourierID string `json:"courier_id"`
}

type CompleteDeliveryRequest struct {
	ProductMethod *string          `json:"product_method"`
	ProductAmount *decimal.Decimal `json:"product_amount"`
	FeeMethod     *string          `json:"fee_method"`
	FeeAmount     *decimal.Decimal `json:"fee_amount"`
	Notes         string           `json:"notes"`
	Latitude      *float64         `json:"latitude"`
	Longitude     *float64         `json:"longitude"`
}

func (r CompleteDeliveryRequest) collection() (order.Collection, error) {
	product, err := toMoneyPtr(r.ProductAmount)
	if err != nil {
		return order.Collection{}, err
	}
	fee, err := toMoneyPtr(r.FeeAmount)
	if err != nil {
		return order.Collection{}, err
	}
	return order.Collection{
		ProductMethod: collectionMethodPtr(r.ProductMethod),
		ProductAmount: product,
		FeeMethod:     collectionMethodPtr(r.FeeMethod),
		FeeAmount:     fee,
	}, nil
}

func (r CompleteDeliveryRequest) location() (*kernel.GeoPoint, error) {
	if r.Latitude == nil && r.Longitude == nil {
		return nil, nil
	}
	if r.Latitude == nil || r.Longitude == nil {
		return nil, errs.NewValueIsRequiredError("location")
	}
	p, err := kernel.NewGeoPoint(*r.Latitude, *r.Longitude)
	if err != nil {
		return nil, err
	}
	return &p, nil
}

type DeclareCashRequest struct {
	CourierID string           `json:"courier_id"`
	Amount    *decimal.Decimal `json:"amount"`
	Notes     string           `json:"notes"`
}

type FreeShippingThresholdRequest struct {
	Amount decimal.Decimal `json:"amount"`
}

func toMoneyPtr(d *decimal.Decimal) (*kernel.Money, error) {
	if d == nil {
		return nil, nil
	}
	m, err := kernel.NewMoney(*d)
	if err != nil {
		return nil, err
	}
	return &m, nil
}

func collectionMethodPtr(s *string) *order.CollectionMethod {
	if s == nil {
		return nil
	}
	m := order.CollectionMethod(*s)
	return &m
}
