// Package cashclosingrepo persists the per-courier daily cash ledger.
package cashclosingrepo

import (
	"errors"
	"time"

	"fulfillment/internal/adapters/out/postgres/dbtypes"
	"fulfillment/internal/core/domain/model/cashclosing"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// CashClosingDTO is one courier's ledger for one calendar day.
type CashClosingDTO struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CourierID      uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cash_closings_courier_date"`
	ClosingDate    time.Time       `gorm:"type:date;not null;uniqueIndex:idx_cash_closings_courier_date;index"`
	ExpectedAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	DeclaredAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Status         string          `gorm:"size:16;not null"`
	ApprovedBy     *uuid.UUID      `gorm:"type:uuid"`
	ApprovedAt     *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

func (CashClosingDTO) TableName() string {
	return "cash_closings"
}

// DetailDTO is one order line of a closing.
type DetailDTO struct {
	ID              uuid.UUID       `gorm:"type:uuid;primaryKey"`
	CashClosingID   uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cash_closing_details_order"`
	OrderID         uuid.UUID       `gorm:"type:uuid;not null;uniqueIndex:idx_cash_closing_details_order;index"`
	OrderAmount     decimal.Decimal `gorm:"type:numeric(14,2);not null"`
	CollectedAmount decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	Status          string          `gorm:"size:16;not null"`
	Notes           string
	CollectedAt     *time.Time
	Position        int `gorm:"not null"`
}

func (DetailDTO) TableName() string {
	return "cash_closing_details"
}

func fromDomain(c *cashclosing.CashClosing) (CashClosingDTO, []DetailDTO) {
	s := c.Snapshot()
	closing := CashClosingDTO{
		ID:             s.ID.Bytes(),
		CourierID:      s.CourierID.Bytes(),
		ClosingDate:    s.ClosingDate,
		ExpectedAmount: s.ExpectedAmount.Decimal(),
		DeclaredAmount: s.DeclaredAmount.Decimal(),
		Status:         string(s.Status),
		ApprovedBy:     dbtypes.UUIDPtr(s.ApprovedBy),
		ApprovedAt:     s.ApprovedAt,
	}

	details := make([]DetailDTO, 0, len(s.Details))
	for i, d := range s.Details {
		details = append(details, DetailDTO{
			ID:              d.ID.Bytes(),
			CashClosingID:   closing.ID,
			OrderID:         d.OrderID.Bytes(),
			OrderAmount:     d.OrderAmount.Decimal(),
			CollectedAmount: d.CollectedAmount.Decimal(),
			Status:          string(d.Status),
			Notes:           d.Notes,
			CollectedAt:     d.CollectedAt,
			Position:        i,
		})
	}
	return closing, details
}

func toDomain(closing CashClosingDTO, details []DetailDTO) (*cashclosing.CashClosing, error) {
	id, idErr := dbtypes.ToUUID(closing.ID)
	courierID, courierErr := dbtypes.ToUUID(closing.CourierID)
	approvedBy, approvedErr := dbtypes.ToUUIDPtr(closing.ApprovedBy)
	expected, expectedErr := kernel.NewMoney(closing.ExpectedAmount)
	declared, declaredErr := kernel.NewMoney(closing.DeclaredAmount)
	errList := []error{idErr, courierErr, approvedErr, expectedErr, declaredErr}

	snapshots := make([]cashclosing.DetailSnapshot, 0, len(details))
	for _, d := range details {
		detailID, detailErr := dbtypes.ToUUID(d.ID)
		orderID, orderErr := dbtypes.ToUUID(d.OrderID)
		orderAmount, amountErr := kernel.NewMoney(d.OrderAmount)
		collected, collectedErr := kernel.NewMoney(d.CollectedAmount)
		errList = append(errList, detailErr, orderErr, amountErr, collectedErr)
		snapshots = append(snapshots, cashclosing.DetailSnapshot{
			ID:              detailID,
			OrderID:         orderID,
			OrderAmount:     orderAmount,
			CollectedAmount: collected,
			Status:          cashclosing.CollectionStatus(d.Status),
			Notes:           d.Notes,
			CollectedAt:     d.CollectedAt,
		})
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return cashclosing.RestoreCashClosing(cashclosing.Snapshot{
		ID:             id,
		CourierID:      courierID,
		ClosingDate:    closing.ClosingDate.UTC(),
		ExpectedAmount: expected,
		DeclaredAmount: declared,
		Status:         cashclosing.Status(closing.Status),
		ApprovedBy:     approvedBy,
		ApprovedAt:     closing.ApprovedAt,
		Details:        snapshots,
	})
}
