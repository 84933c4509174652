package commands

import (
	"context"
	"errors"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/cashclosing"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// AmountMatcher compares a received amount with the expected one using the
// tolerance of the order total.
type AmountMatcher interface {
	MatchAgainstTotal(paramName string, orderTotal, expected, received kernel.Money) error
}

// AcceptCashResult is the closing after acceptance. Discrepancy is set when
// the accepted amount differs from the expected one by more than the
// tolerance; acceptance still happens since the cash is in hand.
type AcceptCashResult struct {
	Closing     cashclosing.Snapshot
	Discrepancy *errs.AmountMismatchError
}

// AcceptCashCommandHandler marks an order's cash as received. Without a prior
// declaration the courier, amount and day are taken from the delivery
// tracking and the detail is created already collected.
type AcceptCashCommandHandler struct {
	uowFactory UoWFactory
	matcher    AmountMatcher
	location   *time.Location
}

func NewAcceptCashCommandHandler(uowFactory UoWFactory, matcher AmountMatcher, location *time.Location) AcceptCashCommandHandler {
	if location == nil {
		location = time.UTC
	}
	return AcceptCashCommandHandler{uowFactory: uowFactory, matcher: matcher, location: location}
}

func (h AcceptCashCommandHandler) Handle(ctx context.Context, cmd AcceptCashCommand) (AcceptCashResult, error) {
	if err := cmd.Validate(); err != nil {
		return AcceptCashResult{}, err
	}
	if err := cmd.Actor().Require("accept cash", kernel.RoleTreasury); err != nil {
		return AcceptCashResult{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return AcceptCashResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	o, err := uow.OrderRepository().Get(ctx, cmd.OrderID())
	if err != nil {
		return AcceptCashResult{}, err
	}

	at := now()
	acceptedBy := cmd.Actor().UserID()
	closingRepo := uow.CashClosingRepository()

	closing, err := closingRepo.GetForUpdateByOrder(ctx, cmd.OrderID())
	switch {
	case err == nil:
		if err = closing.Accept(cmd.OrderID(), acceptedBy, at); err != nil {
			return AcceptCashResult{}, err
		}
	case errors.Is(err, errs.ErrObjectNotFound):
		t, trackingErr := uow.TrackingRepository().GetLatest(ctx, cmd.OrderID())
		if trackingErr != nil {
			return AcceptCashResult{}, trackingErr
		}
		if t.DeliveredAt() == nil {
			return AcceptCashResult{}, errs.NewPreconditionFailedError("cash can only be accepted for a delivered order")
		}
		date := cashclosing.DateOf(*t.DeliveredAt(), h.location)
		closing, err = closingRepo.GetOrCreateForUpdate(ctx, t.CourierID(), date)
		if err != nil {
			return AcceptCashResult{}, fmt.Errorf("get cash closing of %s: %w", date.Format(time.DateOnly), err)
		}
		if err = closing.AcceptUndeclared(cmd.OrderID(), t.ExpectedCash(), acceptedBy, at); err != nil {
			return AcceptCashResult{}, err
		}
	default:
		return AcceptCashResult{}, err
	}

	if err = closingRepo.Save(ctx, closing); err != nil {
		return AcceptCashResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return AcceptCashResult{}, err
	}

	result := AcceptCashResult{Closing: closing.Snapshot()}
	d := closing.Detail(cmd.OrderID())
	var mismatch *errs.AmountMismatchError
	if matchErr := h.matcher.MatchAgainstTotal("collected amount", o.TotalAmount(), d.OrderAmount(), d.CollectedAmount()); errors.As(matchErr, &mismatch) {
		result.Discrepancy = mismatch
	}
	return result, nil
}
