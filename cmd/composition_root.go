package cmd

import (
	"time"

	httpin "fulfillment/internal/adapters/in/http"
	"fulfillment/internal/adapters/out/documents"
	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/services"
	"fulfillment/internal/core/ports"
	"fulfillment/internal/jobs"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

type CompositionRoot struct {
	gormDB     *gorm.DB
	uowFactory ports.UnitOfWorkFactory
	policy     services.PaymentPolicy
	settings   ports.SettingsStore
	evidence   ports.EvidenceStore
	renderer   ports.DocumentRenderer
	extractor  ports.NotesExtractor
	location   *time.Location
	auditSpec  string
	logger     *zap.Logger
}

// NewCompositionRoot wires use cases to the given adapters. The unit of work
// factory decides where committed events go.
func NewCompositionRoot(
	cfg Config,
	gormDB *gorm.DB,
	uowFactory ports.UnitOfWorkFactory,
	settings ports.SettingsStore,
	evidence ports.EvidenceStore,
	logger *zap.Logger,
) CompositionRoot {
	return CompositionRoot{
		gormDB:     gormDB,
		uowFactory: uowFactory,
		policy:     services.NewPaymentPolicy(),
		settings:   settings,
		evidence:   evidence,
		renderer:   documents.NewLabelRenderer(cfg.Business.LabelSender, cfg.Business.Location),
		extractor:  documents.NewNotesExtractor(),
		location:   cfg.Business.Location,
		auditSpec:  cfg.Jobs.CashClosingAuditSpec,
		logger:     logger,
	}
}

func (c *CompositionRoot) orderUoW() commands.OrderUoWFactory {
	return FuncOrderUoWFactory(func() commands.OrderUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) deliveryUoW() commands.DeliveryUoWFactory {
	return FuncDeliveryUoWFactory(func() commands.DeliveryUoW {
		return c.uowFactory.Create()
	})
}

func (c *CompositionRoot) uow() commands.UoWFactory {
	return FuncUoWFactory(func() commands.UoW {
		return c.uowFactory.Create()
	})
}

// HTTPHandlers returns every use case exposed by the HTTP adapter.
func (c *CompositionRoot) HTTPHandlers() httpin.Handlers {
	return httpin.Handlers{
		CreateOrder:           commands.NewCreateOrderCommandHandler(c.orderUoW(), c.extractor),
		RouteOrder:            commands.NewRouteOrderAfterReviewCommandHandler(c.orderUoW()),
		ApproveWalletPayment:  commands.NewApproveWalletPaymentCommandHandler(c.orderUoW(), c.policy),
		RejectWalletPayment:   commands.NewRejectWalletPaymentCommandHandler(c.orderUoW()),
		StartPacking:          commands.NewStartPackingCommandHandler(c.orderUoW(), c.policy, c.settings),
		FinishPacking:         commands.NewFinishPackingCommandHandler(c.orderUoW()),
		MarkReadyForPickup:    commands.NewMarkReadyForPickupCommandHandler(c.orderUoW(), c.policy),
		RegisterPickupPayment: commands.NewRegisterPickupPaymentCommandHandler(c.orderUoW(), c.evidence),
		DispatchOrder:         commands.NewDispatchOrderCommandHandler(c.orderUoW()),
		DeliverOrder:          commands.NewDeliverOrderCommandHandler(c.orderUoW(), c.policy),
		CancelOrder:           commands.NewCancelOrderCommandHandler(c.deliveryUoW()),

		AssignCourier:      commands.NewAssignCourierCommandHandler(c.deliveryUoW()),
		AcceptAssignment:   commands.NewAcceptAssignmentCommandHandler(c.deliveryUoW()),
		RejectAssignment:   commands.NewRejectAssignmentCommandHandler(c.deliveryUoW()),
		StartDelivery:      commands.NewStartDeliveryCommandHandler(c.deliveryUoW()),
		CompleteDelivery:   commands.NewCompleteDeliveryCommandHandler(c.deliveryUoW(), c.policy, c.settings),
		MarkDeliveryFailed: commands.NewMarkDeliveryFailedCommandHandler(c.deliveryUoW()),

		DeclareCash: commands.NewDeclareCashCommandHandler(c.uow(), c.location),
		AcceptCash:  commands.NewAcceptCashCommandHandler(c.uow(), c.policy, c.location),

		UpdateFreeShippingThreshold: commands.NewUpdateFreeShippingThresholdCommandHandler(c.settings),

		GetOrder:         queries.NewGetOrderQueryHandler(c.gormDB),
		GetCashClosing:   queries.NewGetCashClosingQueryHandler(c.gormDB),
		GetShippingLabel: c.CreateGetShippingLabelQueryHandler(),
	}
}

// CreateGetShippingLabelQueryHandler reads the order outside a transaction.
func (c *CompositionRoot) CreateGetShippingLabelQueryHandler() queries.GetShippingLabelQueryHandler {
	return queries.NewGetShippingLabelQueryHandler(c.uowFactory.Create().OrderRepository(), c.renderer)
}

func (c *CompositionRoot) CreateJobManager() *jobs.JobManager {
	return jobs.NewJobManager(
		commands.NewAuditCashClosingsCommandHandler(c.uow()),
		c.auditSpec,
		c.location,
		c.logger,
	)
}

type FuncOrderUoWFactory func() commands.OrderUoW

func (f FuncOrderUoWFactory) Create() commands.OrderUoW {
	return f()
}

type FuncDeliveryUoWFactory func() commands.DeliveryUoW

func (f FuncDeliveryUoWFactory) Create() commands.DeliveryUoW {
	return f()
}

type FuncUoWFactory func() commands.UoW

func (f FuncUoWFactory) Create() commands.UoW {
	return f()
}
