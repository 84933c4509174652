package cashclosing

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

type DetailSnapshot struct {
	ID              kernel.UUID
	OrderID         kernel.UUID
	OrderAmount     kernel.Money
	CollectedAmount kernel.Money
	Status          CollectionStatus
	Notes           string
	CollectedAt     *time.Time
}

// Snapshot is the persisted form of a closing and its details.
type Snapshot struct {
	ID             kernel.UUID
	CourierID      kernel.UUID
	ClosingDate    time.Time
	ExpectedAmount kernel.Money
	DeclaredAmount kernel.Money
	Status         Status
	ApprovedBy     *kernel.UUID
	ApprovedAt     *time.Time
	Details        []DetailSnapshot
}

// RestoreCashClosing rebuilds a closing exactly as stored. Stored aggregates
// are kept as they are so that drift can be detected with Recompute.
func RestoreCashClosing(s Snapshot) (*CashClosing, error) {
	errList := []error{s.ID.Validate(), s.CourierID.Validate(), s.Status.Validate()}
	details := make([]*Detail, 0, len(s.Details))
	for _, ds := range s.Details {
		errList = append(errList, ds.ID.Validate(), ds.OrderID.Validate(), ds.Status.Validate())
		details = append(details, &Detail{
			id:              ds.ID,
			orderID:         ds.OrderID,
			orderAmount:     ds.OrderAmount,
			collectedAmount: ds.CollectedAmount,
			status:          ds.Status,
			notes:           ds.Notes,
			collectedAt:     ds.CollectedAt,
		})
	}
	if err := errors.Join(errList...); err != nil {
		return nil, err
	}

	return &CashClosing{
		id:             s.ID,
		courierID:      s.CourierID,
		closingDate:    s.ClosingDate,
		expectedAmount: s.ExpectedAmount,
		declaredAmount: s.DeclaredAmount,
		status:         s.Status,
		approvedBy:     s.ApprovedBy,
		approvedAt:     s.ApprovedAt,
		details:        details,
		isConstructed:  true,
	}, nil
}

func (c *CashClosing) Snapshot() Snapshot {
	s := Snapshot{
		ID:             c.id,
		CourierID:      c.courierID,
		ClosingDate:    c.closingDate,
		ExpectedAmount: c.expectedAmount,
		DeclaredAmount: c.declaredAmount,
		Status:         c.status,
		ApprovedBy:     c.approvedBy,
		ApprovedAt:     c.approvedAt,
		Details:        make([]DetailSnapshot, 0, len(c.details)),
	}
	for _, d := range c.details {
		s.Details = append(s.Details, DetailSnapshot{
			ID:              d.id,
			OrderID:         d.orderID,
			OrderAmount:     d.orderAmount,
			CollectedAmount: d.collectedAmount,
			Status:          d.status,
			Notes:           d.notes,
			CollectedAt:     d.collectedAt,
		})
	}
	return s
}
