package queries

import (
	"errors"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
	"fulfillment/internal/pkg/guard"

	"github.com/shopspring/decimal"
)

var ErrGetCashClosingQueryIsNotConstructed = errors.New(
	"GetCashClosingQuery must be created via NewGetCashClosingQuery constructor",
)

// GetCashClosingQuery reads one courier's ledger for a calendar day.
type GetCashClosingQuery struct {
	actor     kernel.Actor
	courierID kernel.UUID
	date      time.Time

	guard guard.ConstructorGuard
}

// NewGetCashClosingQuery takes the calendar date as given; only its year,
// month and day are used.
func NewGetCashClosingQuery(actor kernel.Actor, courierID kernel.UUID, date time.Time) (GetCashClosingQuery, error) {
	errList := []error{actor.Validate(), courierID.Validate()}
	if date.IsZero() {
		errList = append(errList, errs.NewValueIsRequiredError("closing date"))
	}
	if err := errors.Join(errList...); err != nil {
		return GetCashClosingQuery{}, err
	}
	y, m, d := date.Date()
	return GetCashClosingQuery{
		actor:     actor,
		courierID: courierID,
		date:      time.Date(y, m, d, 0, 0, 0, 0, time.UTC),
		guard:     guard.NewConstructorGuard(),
	}, nil
}

func (q GetCashClosingQuery) Validate() error {
	return q.guard.Validate(ErrGetCashClosingQueryIsNotConstructed)
}

func (q GetCashClosingQuery) Actor() kernel.Actor    { return q.actor }
func (q GetCashClosingQuery) CourierID() kernel.UUID { return q.courierID }
func (q GetCashClosingQuery) Date() time.Time        { return q.date }

type GetCashClosingQueryResponse struct {
	ID             kernel.UUID
	CourierID      kernel.UUID
	ClosingDate    time.Time
	ExpectedAmount decimal.Decimal
	DeclaredAmount decimal.Decimal
	Difference     decimal.Decimal
	Status         string
	ApprovedBy     *kernel.UUID
	ApprovedAt     *time.Time
	Details        []CashClosingDetailResponse
}

type CashClosingDetailResponse struct {
	OrderID         kernel.UUID
	OrderNumber     string
	OrderAmount     decimal.Decimal
	CollectedAmount decimal.Decimal
	Status          string
	Notes           string
	CollectedAt     *time.Time
}
