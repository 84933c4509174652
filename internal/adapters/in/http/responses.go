package http

import (
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/cashclosing"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/shopspring/decimal"
)

type IDResponse struct {
	ID string `json:"id"`
}

type StatusResponse struct {
	Status string `json:"status"`
}

type EvidenceResponse struct {
	EvidenceURL string `json:"evidence_url"`
}

type DeliveryCycleResponse struct {
	CourierID            string          `json:"courier_id"`
	Status               string          `json:"status"`
	AssignedAt           time.Time       `json:"assigned_at"`
	AcceptedAt           *time.Time      `json:"accepted_at,omitempty"`
	StartedDeliveryAt    *time.Time      `json:"started_delivery_at,omitempty"`
	DeliveredAt          *time.Time      `json:"delivered_at,omitempty"`
	FailedAt             *time.Time      `json:"failed_at,omitempty"`
	CancelledAt          *time.Time      `json:"cancelled_at,omitempty"`
	RejectionReason      string          `json:"rejection_reason,omitempty"`
	FailureReason        string          `json:"failure_reason,omitempty"`
	CancelReason         string          `json:"cancel_reason,omitempty"`
	PaymentCollected     decimal.Decimal `json:"payment_collected"`
	DeliveryFeeCollected decimal.Decimal `json:"delivery_fee_collected"`
	Notes                string          `json:"notes,omitempty"`
}

type OrderResponse struct {
	ID                    string                 `json:"id"`
	OrderNumber           string                 `json:"order_number"`
	Status                string                 `json:"status"`
	MessengerStatus       string                 `json:"messenger_status,omitempty"`
	MessengerID           *string                `json:"messenger_id,omitempty"`
	CarrierID             *string                `json:"carrier_id,omitempty"`
	TrackingNumber        string                 `json:"tracking_number,omitempty"`
	TotalAmount           decimal.Decimal        `json:"total_amount"`
	PaidAmount            decimal.Decimal        `json:"paid_amount"`
	ExternalBalance       *decimal.Decimal       `json:"external_balance,omitempty"`
	DeliveryFee           decimal.Decimal        `json:"delivery_fee"`
	DeliveryFeeDue        *decimal.Decimal       `json:"delivery_fee_due,omitempty"`
	PaymentMethod         string                 `json:"payment_method,omitempty"`
	DeliveryMethod        string                 `json:"delivery_method,omitempty"`
	ShippingPaymentMethod string                 `json:"shipping_payment_method"`
	ShippingDate          *time.Time             `json:"shipping_date,omitempty"`
	Recipient             RecipientRequest       `json:"recipient"`
	DeliveryAttempts      int                    `json:"delivery_attempts"`
	CancellationReason    string                 `json:"cancellation_reason,omitempty"`
	Version               int                    `json:"version"`
	UpdatedAt             time.Time              `json:"updated_at"`
	Delivery              *DeliveryCycleResponse `json:"delivery,omitempty"`
}

func newOrderResponse(r queries.GetOrderQueryResponse) OrderResponse {
	resp := OrderResponse{
		ID:                    r.ID.String(),
		OrderNumber:           r.OrderNumber,
		Status:                r.Status,
		MessengerStatus:       r.MessengerStatus,
		MessengerID:           uuidString(r.MessengerID),
		CarrierID:             uuidString(r.CarrierID),
		TrackingNumber:        r.TrackingNumber,
		TotalAmount:           r.TotalAmount,
		PaidAmount:            r.PaidAmount,
		ExternalBalance:       r.ExternalBalance,
		DeliveryFee:           r.DeliveryFee,
		DeliveryFeeDue:        r.DeliveryFeeDue,
		PaymentMethod:         r.PaymentMethod,
		DeliveryMethod:        r.DeliveryMethod,
		ShippingPaymentMethod: r.ShippingPaymentMethod,
		ShippingDate:          r.ShippingDate,
		Recipient: RecipientRequest{
			Name:    r.Recipient.Name,
			Phone:   r.Recipient.Phone,
			Address: r.Recipient.Address,
			City:    r.Recipient.City,
		},
		DeliveryAttempts:   r.DeliveryAttempts,
		CancellationReason: r.CancellationReason,
		Version:            r.Version,
		UpdatedAt:          r.UpdatedAt,
	}
	if d := r.Delivery; d != nil {
		resp.Delivery = &DeliveryCycleResponse{
			CourierID:            d.CourierID.String(),
			Status:               d.Status,
			AssignedAt:           d.AssignedAt,
			AcceptedAt:           d.AcceptedAt,
			StartedDeliveryAt:    d.StartedDeliveryAt,
			DeliveredAt:          d.DeliveredAt,
			FailedAt:             d.FailedAt,
			CancelledAt:          d.CancelledAt,
			RejectionReason:      d.RejectionReason,
			FailureReason:        d.FailureReason,
			CancelReason:         d.CancelReason,
			PaymentCollected:     d.PaymentCollected,
			DeliveryFeeCollected: d.DeliveryFeeCollected,
			Notes:                d.Notes,
		}
	}
	return resp
}

type CashClosingDetailResponse struct {
	OrderID         string          `json:"order_id"`
	OrderNumber     string          `json:"order_number,omitempty"`
	OrderAmount     decimal.Decimal `json:"order_amount"`
	CollectedAmount decimal.Decimal `json:"collected_amount"`
	Status          string          `json:"status"`
	Notes           string          `json:"notes,omitempty"`
	CollectedAt     *time.Time      `json:"collected_at,omitempty"`
}

type CashClosingResponse struct {
	ID             string                      `json:"id"`
	CourierID      string                      `json:"courier_id"`
	ClosingDate    string                      `json:"closing_date"`
	ExpectedAmount decimal.Decimal             `json:"expected_amount"`
	DeclaredAmount decimal.Decimal             `json:"declared_amount"`
	Difference     decimal.Decimal             `json:"difference"`
	Status         string                      `json:"status"`
	ApprovedBy     *string                     `json:"approved_by,omitempty"`
	ApprovedAt     *time.Time                  `json:"approved_at,omitempty"`
	Details        []CashClosingDetailResponse `json:"details"`
	Discrepancy    *ErrorResponse              `json:"discrepancy,omitempty"`
}

func newClosingQueryResponse(r queries.GetCashClosingQueryResponse) CashClosingResponse {
	resp := CashClosingResponse{
		ID:             r.ID.String(),
		CourierID:      r.CourierID.String(),
		ClosingDate:    r.ClosingDate.Format(time.DateOnly),
		ExpectedAmount: r.ExpectedAmount,
		DeclaredAmount: r.DeclaredAmount,
		Difference:     r.Difference,
		Status:         r.Status,
		ApprovedBy:     uuidString(r.ApprovedBy),
		ApprovedAt:     r.ApprovedAt,
		Details:        make([]CashClosingDetailResponse, 0, len(r.Details)),
	}
	for _, d := range r.Details {
		resp.Details = append(resp.Details, CashClosingDetailResponse{
			OrderID:         d.OrderID.String(),
			OrderNumber:     d.OrderNumber,
			OrderAmount:     d.OrderAmount,
			CollectedAmount: d.CollectedAmount,
			Status:          d.Status,
			Notes:           d.Notes,
			CollectedAt:     d.CollectedAt,
		})
	}
	return resp
}

func newClosingSnapshotResponse(s cashclosing.Snapshot) CashClosingResponse {
	resp := CashClosingResponse{
		ID:             s.ID.String(),
		CourierID:      s.CourierID.String(),
		ClosingDate:    s.ClosingDate.Format(time.DateOnly),
		ExpectedAmount: s.ExpectedAmount.Decimal(),
		DeclaredAmount: s.DeclaredAmount.Decimal(),
		Difference:     s.DeclaredAmount.Decimal().Sub(s.ExpectedAmount.Decimal()),
		Status:         string(s.Status),
		ApprovedBy:     uuidString(s.ApprovedBy),
		ApprovedAt:     s.ApprovedAt,
		Details:        make([]CashClosingDetailResponse, 0, len(s.Details)),
	}
	for _, d := range s.Details {
		resp.Details = append(resp.Details, CashClosingDetailResponse{
			OrderID:         d.OrderID.String(),
			OrderAmount:     d.OrderAmount.Decimal(),
			CollectedAmount: d.CollectedAmount.Decimal(),
			Status:          string(d.Status),
			Notes:           d.Notes,
			CollectedAt:     d.CollectedAt,
		})
	}
	return resp
}

func newAcceptCashResponse(r commands.AcceptCashResult) CashClosingResponse {
	resp := newClosingSnapshotResponse(r.Closing)
	if m := r.Discrepancy; m != nil {
		resp.Discrepancy = &ErrorResponse{
			Message:    m.Error(),
			Field:      m.ParamName,
			Expected:   m.Expected.String(),
			Received:   m.Received.String(),
			Difference: m.Difference.String(),
		}
	}
	return resp
}

func uuidString(id *kernel.UUID) *string {
	if id == nil {
		return nil
	}
	s := id.String()
	return &s
}
