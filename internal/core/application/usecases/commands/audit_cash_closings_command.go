package commands

import (
	"errors"
	"time"

	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"
)

var ErrAuditCashClosingsCommandIsNotConstructed = errors.New(
	"AuditCashClosingsCommand must be created via NewAuditCashClosingsCommand constructor",
)

// AuditCashClosingsCommand re-derives the aggregates of every closing of one
// calendar day. It is issued by the scheduler, not by a user.
type AuditCashClosingsCommand struct {
	date  time.Time
	guard guard.ConstructorGuard
}

func NewAuditCashClosingsCommand(date time.Time) (AuditCashClosingsCommand, error) {
	if date.IsZero() {
		return AuditCashClosingsCommand{}, errs.NewValueIsRequiredError("date")
	}
	y, m, d := date.Date()
	return AuditCashClosingsCommand{
		date:  time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		guard: guard.NewConstructorGuard(),
	}, nil
}

func (c AuditCashClosingsCommand) Validate() error {
	return c.guard.Validate(ErrAuditCashClosingsCommandIsNotConstructed)
}

func (c AuditCashClosingsCommand) Date() time.Time {
	return c.date
}
