package queries

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"

	sq "github.com/Masterminds/squirrel"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type GetCashClosingQueryHandler struct {
	db *gorm.DB
}

func NewGetCashClosingQueryHandler(db *gorm.DB) GetCashClosingQueryHandler {
	return GetCashClosingQueryHandler{db: db}
}

type closingRow struct {
	ID             uuid.UUID
	CourierID      uuid.UUID
	ClosingDate    time.Time
	ExpectedAmount decimal.Decimal
	DeclaredAmount decimal.Decimal
	Status         string
	ApprovedBy     *uuid.UUID
	ApprovedAt     *time.Time
}

type detailRow struct {
	OrderID         uuid.UUID
	OrderNumber     string
	OrderAmount     decimal.Decimal
	CollectedAmount decimal.Decimal
	Status          string
	Notes           string
	CollectedAt     *time.Time
}

// Handle returns the closing with its details in declaration order. Couriers
// read only their own closings; treasury and logistics read any.
func (h GetCashClosingQueryHandler) Handle(
	ctx context.Context,
	query GetCashClosingQuery,
) (GetCashClosingQueryResponse, error) {
	if err := query.Validate(); err != nil {
		return GetCashClosingQueryResponse{}, err
	}
	actor := query.Actor()
	if actor.Role() == kernel.RoleCourier {
		if !actor.UserID().IsEqual(query.CourierID()) {
			return GetCashClosingQueryResponse{}, errs.NewUnauthorizedError(
				actor.String(), "read cash closing", "couriers read only their own closings")
		}
	} else if err := actor.Require("read cash closing", kernel.RoleTreasury, kernel.RoleLogistics); err != nil {
		return GetCashClosingQueryResponse{}, err
	}

	sql, args, err := sq.Select(
		"id", "courier_id", "closing_date", "expected_amount", "declared_amount", "status", "approved_by", "approved_at",
	).
		From("cash_closings").
		Where(sq.Eq{"courier_id": query.CourierID().Bytes(), "closing_date": query.Date()}).
		ToSql()
	if err != nil {
		return GetCashClosingQueryResponse{}, fmt.Errorf("build cash closing query: %w", err)
	}

	var closing closingRow
	result := h.db.WithContext(ctx).Raw(sql, args...).Scan(&closing)
	if result.Error != nil {
		return GetCashClosingQueryResponse{}, result.Error
	}
	if result.RowsAffected == 0 {
		return GetCashClosingQueryResponse{}, errs.NewObjectNotFoundError(
			"cash closing", query.CourierID().String()+"@"+query.Date().Format(time.DateOnly))
	}

	sql, args, err = sq.Select(
		"d.order_id", "COALESCE(o.order_number, '') AS order_number", "d.order_amount", "d.collected_amount",
		"d.status", "d.notes", "d.collected_at",
	).
		From("cash_closing_details d").
		LeftJoin("orders o ON o.id = d.order_id").
		Where(sq.Eq{"d.cash_closing_id": closing.ID}).
		OrderBy("d.position").
		ToSql()
	if err != nil {
		return GetCashClosingQueryResponse{}, fmt.Errorf("build cash closing details query: %w", err)
	}

	var details []detailRow
	if err := h.db.WithContext(ctx).Raw(sql, args...).Scan(&details).Error; err != nil {
		return GetCashClosingQueryResponse{}, err
	}

	return closing.toResponse(details)
}

func (r closingRow) toResponse(details []detailRow) (GetCashClosingQueryResponse, error) {
	id, err := kernel.UUIDFromBytes(r.ID[:])
	if err != nil {
		return GetCashClosingQueryResponse{}, err
	}
	courierID, err := kernel.UUIDFromBytes(r.CourierID[:])
	if err != nil {
		return GetCashClosingQueryResponse{}, err
	}
	approvedBy, err := optionalUUID(r.ApprovedBy)
	if err != nil {
		return GetCashClosingQueryResponse{}, err
	}

	resp := GetCashClosingQueryResponse{
		ID:             id,
		CourierID:      courierID,
		ClosingDate:    r.ClosingDate.UTC(),
		ExpectedAmount: r.ExpectedAmount,
		DeclaredAmount: r.DeclaredAmount,
		Difference:     r.DeclaredAmount.Sub(r.ExpectedAmount),
		Status:         r.Status,
		ApprovedBy:     approvedBy,
		ApprovedAt:     r.ApprovedAt,
		Details:        make([]CashClosingDetailResponse, 0, len(details)),
	}
	for _, d := range details {
		orderID, err := kernel.UUIDFromBytes(d.OrderID[:])
		if err != nil {
			return GetCashClosingQueryResponse{}, err
		}
		resp.Details = append(resp.Details, CashClosingDetailResponse{
			OrderID:         orderID,
			OrderNumber:     d.OrderNumber,
			OrderAmount:     d.OrderAmount,
			CollectedAmount: d.CollectedAmount,
			Status:          d.Status,
			Notes:           d.Notes,
			CollectedAt:     d.CollectedAt,
		})
	}
	return resp, nil
}
