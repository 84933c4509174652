package http

import (
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"

	"github.com/labstack/echo/v4"
)

func (s *Server) AssignCourier(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req AssignCourierRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return err
	}
	cmd, err := commands.NewAssignCourierCommand(actorFrom(c), id, courierID)
	if err != nil {
		return err
	}
	if err := s.h.AssignCourier.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) AcceptAssignment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewAcceptAssignmentCommand(actorFrom(c), id)
	if err != nil {
		return err
	}
	if err := s.h.AcceptAssignment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) RejectAssignment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ReasonRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewRejectAssignmentCommand(actorFrom(c), id, req.Reason)
	if err != nil {
		return err
	}
	if err := s.h.RejectAssignment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) StartDelivery(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewStartDeliveryCommand(actorFrom(c), id)
	if err != nil {
		return err
	}
	if err := s.h.StartDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) CompleteDelivery(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req CompleteDeliveryRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	collection, err := req.collection()
	if err != nil {
		return err
	}
	location, err := req.location()
	if err != nil {
		return err
	}
	cmd, err := commands.NewCompleteDeliveryCommand(actorFrom(c), id, collection, req.Notes, location)
	if err != nil {
		return err
	}
	if err := s.h.CompleteDelivery.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) MarkDeliveryFailed(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ReasonRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewMarkDeliveryFailedCommand(actorFrom(c), id, req.Reason)
	if err != nil {
		return err
	}
	if err := s.h.MarkDeliveryFailed.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// DeclareCash handles POST /api/v1/orders/:id/cash/declare. Without an amount
// the expected one is declared.
func (s *Server) DeclareCash(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req DeclareCashRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	courierID, err := kernel.UUIDFromString(req.CourierID)
	if err != nil {
		return err
	}
	amount, err := toMoneyPtr(req.Amount)
	if err != nil {
		return err
	}
	cmd, err := commands.NewDeclareCashCommand(actorFrom(c), id, courierID, amount, req.Notes)
	if err != nil {
		return err
	}
	closing, err := s.h.DeclareCash.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newClosingSnapshotResponse(closing))
}

// AcceptCash handles POST /api/v1/orders/:id/cash/accept. A discrepancy does
// not fail the request; it is reported next to the closing.
func (s *Server) AcceptCash(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewAcceptCashCommand(actorFrom(c), id)
	if err != nil {
		return err
	}
	result, err := s.h.AcceptCash.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newAcceptCashResponse(result))
}

// GetCashClosing handles GET /api/v1/couriers/:courierId/cash-closings/:date
// with date as YYYY-MM-DD.
func (s *Server) GetCashClosing(c echo.Context) error {
	courierID, err := pathUUID(c, "courierId")
	if err != nil {
		return err
	}
	date, err := pathDate(c, "date", "closing date")
	if err != nil {
		return err
	}
	query, err := queries.NewGetCashClosingQuery(actorFrom(c), courierID, date)
	if err != nil {
		return err
	}
	resp, err := s.h.GetCashClosing.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newClosingQueryResponse(resp))
}

// UpdateFreeShippingThreshold handles PUT /api/v1/settings/free-shipping-threshold.
func (s *Server) UpdateFreeShippingThreshold(c echo.Context) error {
	var req FreeShippingThresholdRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	threshold, err := kernel.NewMoney(req.Amount)
	if err != nil {
		return err
	}
	cmd, err := commands.NewUpdateFreeShippingThresholdCommand(actorFrom(c), threshold)
	if err != nil {
		return err
	}
	if err := s.h.UpdateFreeShippingThreshold.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}
