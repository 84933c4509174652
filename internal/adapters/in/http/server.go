package http

import (
	"context"
	"net/http"
	"time"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/cashclosing"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
	openapi_types "github.com/oapi-codegen/runtime/types"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// CommandHandler runs a command that produces no result.
type CommandHandler[C any] interface {
	Handle(ctx context.Context, cmd C) error
}

// ResultHandler runs a command or query that returns a value.
type ResultHandler[C, R any] interface {
	Handle(ctx context.Context, cmd C) (R, error)
}

// Handlers are the use cases exposed over HTTP.
type Handlers struct {
	CreateOrder           ResultHandler[commands.CreateOrderCommand, kernel.UUID]
	RouteOrder            ResultHandler[commands.RouteOrderAfterReviewCommand, order.Status]
	ApproveWalletPayment  ResultHandler[commands.ApproveWalletPaymentCommand, order.Status]
	RejectWalletPayment   CommandHandler[commands.RejectWalletPaymentCommand]
	StartPacking          CommandHandler[commands.StartPackingCommand]
	FinishPacking         CommandHandler[commands.FinishPackingCommand]
	MarkReadyForPickup    CommandHandler[commands.MarkReadyForPickupCommand]
	RegisterPickupPayment ResultHandler[commands.RegisterPickupPaymentCommand, string]
	DispatchOrder         CommandHandler[commands.DispatchOrderCommand]
	DeliverOrder          ResultHandler[commands.DeliverOrderCommand, order.Status]
	CancelOrder           CommandHandler[commands.CancelOrderCommand]

	AssignCourier      CommandHandler[commands.AssignCourierCommand]
	AcceptAssignment   CommandHandler[commands.AcceptAssignmentCommand]
	RejectAssignment   CommandHandler[commands.RejectAssignmentCommand]
	StartDelivery      CommandHandler[commands.StartDeliveryCommand]
	CompleteDelivery   CommandHandler[commands.CompleteDeliveryCommand]
	MarkDeliveryFailed CommandHandler[commands.MarkDeliveryFailedCommand]

	DeclareCash ResultHandler[commands.DeclareCashCommand, cashclosing.Snapshot]
	AcceptCash  ResultHandler[commands.AcceptCashCommand, commands.AcceptCashResult]

	UpdateFreeShippingThreshold CommandHandler[commands.UpdateFreeShippingThresholdCommand]

	GetOrder         ResultHandler[queries.GetOrderQuery, queries.GetOrderQueryResponse]
	GetCashClosing   ResultHandler[queries.GetCashClosingQuery, queries.GetCashClosingQueryResponse]
	GetShippingLabel ResultHandler[queries.GetShippingLabelQuery, queries.ShippingLabel]
}

// Server translates HTTP requests into commands and queries.
type Server struct {
	h Handlers
}

func NewServer(handlers Handlers) *Server {
	return &Server{h: handlers}
}

// Register mounts the API under /api/v1 behind middleware, which runs in the
// order given: authentication first, then the request contract. /health,
// /metrics and the evidence files are public. evidenceDir may be empty.
func (s *Server) Register(e *echo.Echo, evidenceDir string, middleware ...echo.MiddlewareFunc) {
	e.GET("/health", func(c echo.Context) error {
		return c.String(http.StatusOK, "Healthy")
	})
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))
	if evidenceDir != "" {
		e.Static("/evidence", evidenceDir)
	}

	api := e.Group("/api/v1", middleware...)

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders/:id", s.GetOrder)
	api.POST("/orders/:id/route", s.RouteOrder)
	api.POST("/orders/:id/wallet/approve", s.ApproveWalletPayment)
	api.POST("/orders/:id/wallet/reject", s.RejectWalletPayment)
	api.POST("/orders/:id/packing/start", s.StartPacking)
	api.POST("/orders/:id/packing/finish", s.FinishPacking)
	api.POST("/orders/:id/ready-for-pickup", s.MarkReadyForPickup)
	api.POST("/orders/:id/pickup-payment", s.RegisterPickupPayment)
	api.POST("/orders/:id/dispatch", s.DispatchOrder)
	api.POST("/orders/:id/deliver", s.DeliverOrder)
	api.POST("/orders/:id/cancel", s.CancelOrder)
	api.GET("/orders/:id/label", s.GetShippingLabel)

	api.POST("/orders/:id/courier", s.AssignCourier)
	api.POST("/orders/:id/delivery/accept", s.AcceptAssignment)
	api.POST("/orders/:id/delivery/reject", s.RejectAssignment)
	api.POST("/orders/:id/delivery/start", s.StartDelivery)
	api.POST("/orders/:id/delivery/complete", s.CompleteDelivery)
	api.POST("/orders/:id/delivery/fail", s.MarkDeliveryFailed)

	api.POST("/orders/:id/cash/declare", s.DeclareCash)
	api.POST("/orders/:id/cash/accept", s.AcceptCash)
	api.GET("/couriers/:courierId/cash-closings/:date", s.GetCashClosing)

	api.PUT("/settings/free-shipping-threshold", s.UpdateFreeShippingThreshold)
}

func pathUUID(c echo.Context, name string) (kernel.UUID, error) {
	var id openapi_types.UUID
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &id)
	if err != nil {
		return kernel.UUID{}, badRequest("invalid " + name)
	}
	return kernel.UUIDFromString(id.String())
}

// pathDate reads a YYYY-MM-DD path parameter. A well formed but impossible
// date is a validation error.
func pathDate(c echo.Context, name, field string) (time.Time, error) {
	var date openapi_types.Date
	err := runtime.BindStyledParameterWithLocation("simple", false, name, runtime.ParamLocationPath, c.Param(name), &date)
	if err != nil {
		return time.Time{}, errs.NewValueIsInvalidErrorWithCause(field, err)
	}
	return date.Time, nil
}

func bind(c echo.Context, req any) error {
	if err := c.Bind(req); err != nil {
		return badRequest("invalid request body")
	}
	return nil
}
