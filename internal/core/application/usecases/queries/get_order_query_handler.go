package queries

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

// GetOrderQueryHandler reads orders straight from the tables, bypassing the
// aggregates.
type GetOrderQueryHandler struct {
	db *gorm.DB
}

func NewGetOrderQueryHandler(db *gorm.DB) GetOrderQueryHandler {
	return GetOrderQueryHandler{db: db}
}

type orderRow struct {
	ID                    uuid.UUID
	OrderNumber           string
	Status                string
	MessengerStatus       string
	MessengerID           *uuid.UUID
	CarrierID             *uuid.UUID
	TrackingNumber        string
	TotalAmount           decimal.Decimal
	PaidAmount            decimal.Decimal
	ExternalBalance       *decimal.Decimal
	DeliveryFee           decimal.Decimal
	DeliveryFeeDue        *decimal.Decimal
	PaymentMethod         string
	DeliveryMethod        string
	ShippingPaymentMethod string
	ShippingDate          *time.Time
	RecipientName         string
	RecipientPhone        string
	RecipientAddress      string
	RecipientCity         string
	DeliveryAttempts      int
	CancellationReason    string
	Version               int
	UpdatedAt             time.Time
}

type cycleRow struct {
	CourierID            uuid.UUID
	Status               string
	AssignedAt           time.Time
	AcceptedAt           *time.Time
	StartedDeliveryAt    *time.Time
	DeliveredAt          *time.Time
	FailedAt             *time.Time
	CancelledAt          *time.Time
	RejectionReason      string
	FailureReason        string
	CancelReason         string
	PaymentCollected     decimal.Decimal
	DeliveryFeeCollected decimal.Decimal
	Notes                string
}

func (h GetOrderQueryHandler) Handle(ctx context.Context, query GetOrderQuery) (GetOrderQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetOrderQueryResponse{}, err
	}

	sql, args, err := sq.Select(
		"id", "order_number", "status", "messenger_status", "messenger_id", "carrier_id", "tracking_number",
		"total_amount", "paid_amount", "external_balance", "delivery_fee", "delivery_fee_due",
		"payment_method", "delivery_method", "shipping_payment_method", "shipping_date",
		"recipient_name", "recipient_phone", "recipient_address", "recipient_city",
		"delivery_attempts", "cancellation_reason", "version", "updated_at",
	).
		From("orders").
		Where(sq.Eq{"id": query.OrderID().Bytes()}).
		ToSql()
	if err != nil {
		return GetOrderQueryResponse{}, fmt.Errorf("build order query: %w", err)
	}

	var row orderRow
	result := h.db.WithContext(ctx).Raw(sql, args...).Scan(&row)
	if result.Error != nil {
		return GetOrderQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetOrderQueryResponse{}, errs.NewObjectNotFoundError("order", query.OrderID().String())
	}

	actor := query.Actor()
	if actor.Role() == kernel.RoleCourier && (row.MessengerID == nil || *row.MessengerID != actor.UserID().Bytes()) {
		return GetOrderQueryResponse{}, errs.NewUnauthorizedError(actor.String(), "read order", "order is not assigned to this courier")
	}

	resp, err := row.toResponse()
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	resp.Delivery, err = h.latestCycle(ctx, query.OrderID())
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	return resp, nil
}

func (h GetOrderQueryHandler) latestCycle(ctx context.Context, orderID kernel.UUID) (*DeliveryCycleResponse, error) {
	sql, args, err := sq.Select(
		"courier_id", "status", "assigned_at", "accepted_at", "started_delivery_at", "delivered_at", "failed_at",
		"cancelled_at", "rejection_reason", "failure_reason", "cancel_reason",
		"payment_collected", "delivery_fee_collected", "notes",
	).
		From("delivery_trackings").
		Where(sq.Eq{"order_id": orderID.Bytes()}).
		OrderBy("assigned_at DESC").
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build delivery cycle query: %w", err)
	}

	var row cycleRow
	result := h.db.WithContext(ctx).Raw(sql, args...).Scan(&row)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		return nil, nil
	}

	courierID, err := kernel.UUIDFromBytes(row.CourierID[:])
	if err != nil {
		return nil, err
	}
	return &DeliveryCycleResponse{
		CourierID:            courierID,
		Status:               row.Status,
		AssignedAt:           row.AssignedAt,
		AcceptedAt:           row.AcceptedAt,
		StartedDeliveryAt:    row.StartedDeliveryAt,
		DeliveredAt:          row.DeliveredAt,
		FailedAt:             row.FailedAt,
		CancelledAt:          row.CancelledAt,
		RejectionReason:      row.RejectionReason,
		FailureReason:        row.FailureReason,
		CancelReason:         row.CancelReason,
		PaymentCollected:     row.PaymentCollected,
		DeliveryFeeCollected: row.DeliveryFeeCollected,
		Notes:                row.Notes,
	}, nil
}

func (r orderRow) toResponse() (GetOrderQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	messengerID, err := optionalUUID(r.MessengerID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}
	carrierID, err := optionalUUID(r.CarrierID)
	if err != nil {
		return GetOrderQueryResponse{}, err
	}

	return GetOrderQueryResponse{
		ID:                    id,
		OrderNumber:           r.OrderNumber,
		Status:                r.Status,
		MessengerStatus:       r.MessengerStatus,
		MessengerID:           messengerID,
		CarrierID:             carrierID,
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
		Recipient: order.Recipient{
			Name:    r.RecipientName,
			Phone:   r.RecipientPhone,
			Address: r.RecipientAddress,
			City:    r.RecipientCity,
		},
		DeliveryAttempts:   r.DeliveryAttempts,
		CancellationReason: r.CancellationReason,
		Version:            r.Version,
		UpdatedAt:          r.UpdatedAt,
	}, nil
}

func optionalUUID(raw *uuid.UUID) (*kernel.UUID, error) {
	if raw == nil {
		return nil, nil
	}
	id, err := kernel.UUIDFromBytes(raw[:])
	if err != nil {
		return nil, err
	}
	return &id, nil
}
