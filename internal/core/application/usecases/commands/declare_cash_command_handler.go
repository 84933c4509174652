package commands

import (
	"context"
	"fmt"
	"time"

	"fulfillment/internal/core/domain/model/cashclosing"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/pkg/errs"
)

// DeclareCashCommandHandler files a courier's declaration into the closing of
// the day the order was delivered. Couriers declare for themselves; logistics
// and treasury may declare on a courier's behalf.
type DeclareCashCommandHandler struct {
	uowFactory UoWFactory
	location   *time.Location
}

// NewDeclareCashCommandHandler creates the handler. location is the business
// timezone that decides which calendar day a delivery belongs to.
func NewDeclareCashCommandHandler(uowFactory UoWFactory, location *time.Location) DeclareCashCommandHandler {
	if location == nil {
		location = time.UTC
	}
	return DeclareCashCommandHandler{uowFactory: uowFactory, location: location}
}

func (h DeclareCashCommandHandler) Handle(ctx context.Context, cmd DeclareCashCommand) (cashclosing.Snapshot, error) {
	if err := cmd.Validate(); err != nil {
		return cashclosing.Snapshot{}, err
	}
	if err := authorizeDeclaration(cmd.Actor(), cmd.CourierID()); err != nil {
		return cashclosing.Snapshot{}, err
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return cashclosing.Snapshot{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	t, err := uow.TrackingRepository().GetLatestForCourier(ctx, cmd.OrderID(), cmd.CourierID())
	if err != nil {
		return cashclosing.Snapshot{}, err
	}
	if t.DeliveredAt() == nil {
		return cashclosing.Snapshot{}, errs.NewPreconditionFailedError("cash can only be declared for a delivered order")
	}

	closingRepo := uow.CashClosingRepository()
	date := cashclosing.DateOf(*t.DeliveredAt(), h.location)
	closing, err := closingRepo.GetOrCreateForUpdate(ctx, cmd.CourierID(), date)
	if err != nil {
		return cashclosing.Snapshot{}, fmt.Errorf("get cash closing of %s: %w", date.Format(time.DateOnly), err)
	}

	if err = closing.Declare(cmd.OrderID(), t.ExpectedCash(), cmd.Amount(), cmd.Notes()); err != nil {
		return cashclosing.Snapshot{}, err
	}

	if err = closingRepo.Save(ctx, closing); err != nil {
		return cashclosing.Snapshot{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return cashclosing.Snapshot{}, err
	}

	return closing.Snapshot(), nil
}

func authorizeDeclaration(actor kernel.Actor, courierID kernel.UUID) error {
	if actor.Role() == kernel.RoleCourier {
		if !actor.UserID().IsEqual(courierID) {
			return errs.NewUnauthorizedError(string(actor.Role()), "declare cash", "couriers declare only their own collections")
		}
		return nil
	}
	return actor.Require("declare cash", kernel.RoleLogistics, kernel.RoleTreasury)
}
