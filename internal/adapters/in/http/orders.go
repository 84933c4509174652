package http

import (
	"fmt"
	"net/http"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"

	"github.com/labstack/echo/v4"
)

// CreateOrder handles POST /api/v1/orders.
func (s *Server) CreateOrder(c echo.Context) error {
	var req CreateOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	facts, err := req.facts()
	if err != nil {
		return err
	}
	cmd, err := commands.NewCreateOrderCommand(actorFrom(c), req.OrderNumber, facts, req.Notes)
	if err != nil {
		return err
	}
	id, err := s.h.CreateOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, IDResponse{ID: id.String()})
}

// GetOrder handles GET /api/v1/orders/:id.
func (s *Server) GetOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetOrderQuery(actorFrom(c), id)
	if err != nil {
		return err
	}
	resp, err := s.h.GetOrder.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, newOrderResponse(resp))
}

// RouteOrder handles POST /api/v1/orders/:id/route.
func (s *Server) RouteOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req RouteOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewRouteOrderAfterReviewCommand(actorFrom(c), id,
		order.PaymentMethod(req.PaymentMethod), order.DeliveryMethod(req.DeliveryMethod), req.ShippingDate.Time)
	if err != nil {
		return err
	}
	status, err := s.h.RouteOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: status.String()})
}

func (s *Server) ApproveWalletPayment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ApproveWalletPaymentRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	amount, err := kernel.NewMoney(req.DeclaredAmount)
	if err != nil {
		return err
	}
	cmd, err := commands.NewApproveWalletPaymentCommand(actorFrom(c), id, amount,
		order.ElectronicProvider(req.Provider), req.Reference)
	if err != nil {
		return err
	}
	status, err := s.h.ApproveWalletPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: status.String()})
}

func (s *Server) RejectWalletPayment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ReasonRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewRejectWalletPaymentCommand(actorFrom(c), id, req.Reason)
	if err != nil {
		return err
	}
	if err := s.h.RejectWalletPayment.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) StartPacking(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req StartPackingRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	var carrierID *kernel.UUID
	if req.CarrierID != nil {
		parsed, err := kernel.UUIDFromString(*req.CarrierID)
		if err != nil {
			return err
		}
		carrierID = &parsed
	}
	cmd, err := commands.NewStartPackingCommand(actorFrom(c), id, carrierID)
	if err != nil {
		return err
	}
	if err := s.h.StartPacking.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) FinishPacking(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewFinishPackingCommand(actorFrom(c), id)
	if err != nil {
		return err
	}
	if err := s.h.FinishPacking.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) MarkReadyForPickup(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	cmd, err := commands.NewMarkReadyForPickupCommand(actorFrom(c), id)
	if err != nil {
		return err
	}
	if err := s.h.MarkReadyForPickup.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// RegisterPickupPayment handles the multipart form with fields amount and
// method and the photo file.
func (s *Server) RegisterPickupPayment(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	amount, err := kernel.MoneyFromString(c.FormValue("amount"))
	if err != nil {
		return err
	}
	header, err := c.FormFile("photo")
	if err != nil {
		return badRequest("photo is required")
	}
	photo, err := header.Open()
	if err != nil {
		return fmt.Errorf("open photo: %w", err)
	}
	defer photo.Close()

	cmd, err := commands.NewRegisterPickupPaymentCommand(actorFrom(c), id, amount,
		order.CollectionMethod(c.FormValue("method")), header.Filename, header.Header.Get(echo.HeaderContentType), photo)
	if err != nil {
		return err
	}
	url, err := s.h.RegisterPickupPayment.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, EvidenceResponse{EvidenceURL: url})
}

func (s *Server) DispatchOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req DispatchOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewDispatchOrderCommand(actorFrom(c), id, req.TrackingNumber)
	if err != nil {
		return err
	}
	if err := s.h.DispatchOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

func (s *Server) DeliverOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req DeliverOrderRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewDeliverOrderCommand(actorFrom(c), id, commands.Handover(req.Handover))
	if err != nil {
		return err
	}
	status, err := s.h.DeliverOrder.Handle(c.Request().Context(), cmd)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, StatusResponse{Status: status.String()})
}

func (s *Server) CancelOrder(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	var req ReasonRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	cmd, err := commands.NewCancelOrderCommand(actorFrom(c), id, req.Reason)
	if err != nil {
		return err
	}
	if err := s.h.CancelOrder.Handle(c.Request().Context(), cmd); err != nil {
		return err
	}
	return c.NoContent(http.StatusNoContent)
}

// GetShippingLabel handles GET /api/v1/orders/:id/label.
func (s *Server) GetShippingLabel(c echo.Context) error {
	id, err := pathUUID(c, "id")
	if err != nil {
		return err
	}
	query, err := queries.NewGetShippingLabelQuery(actorFrom(c), id)
	if err != nil {
		return err
	}
	label, err := s.h.GetShippingLabel.Handle(c.Request().Context(), query)
	if err != nil {
		return err
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", label.FileName))
	return c.Blob(http.StatusOK, label.ContentType, label.Content)
}
