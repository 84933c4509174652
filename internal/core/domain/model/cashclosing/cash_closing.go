package cashclosing

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

var ErrCashClosingIsNotConstructed = errors.New("CashClosing must be created via NewCashClosing constructor")

const (
	EventCashDeclared = "cash.declared"
	EventCashAccepted = "cash.accepted"
)

// CashClosing is a courier's reconciliation record for one calendar day.
//
// Invariants:
//   - expectedAmount and declaredAmount are the sums of the details'
//     order and collected amounts
//   - status is DeriveStatus(details); approvedBy and approvedAt are set
//     only while the closing is completed
//   - a collected detail's amount never changes
type CashClosing struct {
	kernel.EventRecorder

	id             kernel.UUID
	courierID      kernel.UUID
	closingDate    time.Time
	expectedAmount kernel.Money
	declaredAmount kernel.Money
	status         Status
	approvedBy     *kernel.UUID
	approvedAt     *time.Time
	details        []*Detail

	isConstructed bool
}

// DateOf returns the calendar day of t in loc, as midnight UTC.
func DateOf(t time.Time, loc *time.Location) time.Time {
	y, m, d := t.In(loc).Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// NewCashClosing opens an empty closing for courierID on date.
func NewCashClosing(id, courierID kernel.UUID, date time.Time) (*CashClosing, error) {
	if err := errors.Join(id.Validate(), courierID.Validate()); err != nil {
		return nil, err
	}
	if date.IsZero() {
		return nil, errs.NewValueIsRequiredError("closing date")
	}
	return &CashClosing{
		id:             id,
		courierID:      courierID,
		closingDate:    DateOf(date, time.UTC),
		expectedAmount: kernel.ZeroMoney,
		declaredAmount: kernel.ZeroMoney,
		status:         StatusPending,
		isConstructed:  true,
	}, nil
}

func (c *CashClosing) Validate() error {
	if c == nil || !c.isConstructed {
		return ErrCashClosingIsNotConstructed
	}
	return nil
}

func (c *CashClosing) ID() kernel.UUID              { return c.id }
func (c *CashClosing) CourierID() kernel.UUID       { return c.courierID }
func (c *CashClosing) ClosingDate() time.Time       { return c.closingDate }
func (c *CashClosing) ExpectedAmount() kernel.Money { return c.expectedAmount }
func (c *CashClosing) DeclaredAmount() kernel.Money { return c.declaredAmount }
func (c *CashClosing) Status() Status               { return c.status }
func (c *CashClosing) ApprovedBy() *kernel.UUID     { return c.approvedBy }
func (c *CashClosing) ApprovedAt() *time.Time       { return c.approvedAt }

// Details returns a copy of the detail list.
func (c *CashClosing) Details() []*Detail {
	out := make([]*Detail, len(c.details))
	copy(out, c.details)
	return out
}

// Detail returns the detail for orderID, or nil.
func (c *CashClosing) Detail(orderID kernel.UUID) *Detail {
	for _, d := range c.details {
		if d.orderID.IsEqual(orderID) {
			return d
		}
	}
	return nil
}

// Declare records what the courier says they collected for an order.
// declared defaults to expected. Once a detail is collected its amount is
// frozen: repeating the same amount is a no-op, a different one is an
// ImmutableStateConflictError.
func (c *CashClosing) Declare(orderID kernel.UUID, expected kernel.Money, declared *kernel.Money, notes string) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	amount := expected
	if declared != nil {
		amount = *declared
	}

	d := c.Detail(orderID)
	switch {
	case d != nil && d.IsCollected():
		if d.collectedAmount.Equal(amount) {
			return nil
		}
		return errs.NewImmutableStateConflictError("cash closing detail", d.id)
	case d != nil:
		d.orderAmount = expected
		d.collectedAmount = amount
		d.appendNote(notes)
	default:
		d = &Detail{
			id:              kernel.NewUUID(),
			orderID:         orderID,
			orderAmount:     expected,
			collectedAmount: amount,
			status:          CollectionPending,
		}
		d.appendNote(notes)
		c.details = append(c.details, d)
	}

	c.Recompute()
	c.record(EventCashDeclared, d)
	return nil
}

// Accept marks a declared detail as received by treasury. Accepting an
// already collected detail changes nothing.
func (c *CashClosing) Accept(orderID kernel.UUID, acceptedBy kernel.UUID, at time.Time) error {
	d := c.Detail(orderID)
	if d == nil {
		return errs.NewObjectNotFoundError("cash closing detail", orderID)
	}
	if d.IsCollected() {
		return nil
	}
	d.markCollected(acceptedBy, at)
	c.approve(acceptedBy, at)
	c.record(EventCashAccepted, d)
	return nil
}

// AcceptUndeclared is the recovery path for cash handed over without a prior
// declaration: the detail is created already collected at the expected amount.
func (c *CashClosing) AcceptUndeclared(orderID kernel.UUID, expected kernel.Money, acceptedBy kernel.UUID, at time.Time) error {
	if err := orderID.Validate(); err != nil {
		return err
	}
	if c.Detail(orderID) != nil {
		return c.Accept(orderID, acceptedBy, at)
	}
	d := &Detail{
		id:              kernel.NewUUID(),
		orderID:         orderID,
		orderAmount:     expected,
		collectedAmount: expected,
		status:          CollectionPending,
	}
	d.appendNote("accepted without declaration")
	d.markCollected(acceptedBy, at)
	c.details = append(c.details, d)
	c.approve(acceptedBy, at)
	c.record(EventCashAccepted, d)
	return nil
}

// Recompute rebuilds the aggregates from the details and reports whether
// anything changed.
func (c *CashClosing) Recompute() bool {
	expected, declared := kernel.ZeroMoney, kernel.ZeroMoney
	for _, d := range c.details {
		expected = expected.Add(d.orderAmount)
		declared = declared.Add(d.collectedAmount)
	}
	status := DeriveStatus(c.details)

	changed := !expected.Equal(c.expectedAmount) || !declared.Equal(c.declaredAmount) || status != c.status
	c.expectedAmount = expected
	c.declaredAmount = declared
	c.status = status
	if status != StatusCompleted && c.approvedBy != nil {
		c.approvedBy = nil
		c.approvedAt = nil
		changed = true
	}
	return changed
}

func (c *CashClosing) approve(by kernel.UUID, at time.Time) {
	c.Recompute()
	if c.status == StatusCompleted {
		c.approvedBy = &by
		c.approvedAt = &at
	}
}

func (c *CashClosing) record(name string, d *Detail) {
	c.Record(kernel.NewDomainEvent(name, c.id, map[string]string{
		"courier_id":       c.courierID.String(),
		"closing_date":     c.closingDate.Format(time.DateOnly),
		"order_id":         d.orderID.String(),
		"collected_amount": d.collectedAmount.String(),
		"closing_status":   string(c.status),
	}))
}
