package commands

import (
	"context"
	"strings"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/ports"
)

// CreateOrderCommandHandler creates orders on behalf of billing. When invoice
// notes are supplied and an extractor is configured, blank recipient fields
// are filled from them.
type CreateOrderCommandHandler struct {
	uowFactory OrderUoWFactory
	extractor  ports.NotesExtractor
}

// NewCreateOrderCommandHandler creates the handler. extractor may be nil.
func NewCreateOrderCommandHandler(uowFactory OrderUoWFactory, extractor ports.NotesExtractor) CreateOrderCommandHandler {
	return CreateOrderCommandHandler{
		uowFactory: uowFactory,
		extractor:  extractor,
	}
}

// Handle creates the order and returns its identifier.
func (h CreateOrderCommandHandler) Handle(ctx context.Context, cmd CreateOrderCommand) (kernel.UUID, error) {
	if err := cmd.Validate(); err != nil {
		return kernel.UUID{}, err
	}
	if err := cmd.Actor().Require("create order", kernel.RoleBiller); err != nil {
		return kernel.UUID{}, err
	}

	o, err := order.NewOrder(kernel.NewUUID(), cmd.OrderNumber(), cmd.Facts())
	if err != nil {
		return kernel.UUID{}, err
	}

	if h.extractor != nil && strings.TrimSpace(cmd.Notes()) != "" {
		// Extraction is optional enrichment; a failure leaves the order as entered.
		if extracted, extractErr := h.extractor.Extract(ctx, cmd.Notes()); extractErr == nil {
			o.EnrichRecipient(extracted)
		}
	}

	uow := h.uowFactory.Create()
	if err = uow.Begin(ctx); err != nil {
		return kernel.UUID{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	if err = uow.OrderRepository().Add(ctx, o); err != nil {
		return kernel.UUID{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return kernel.UUID{}, err
	}

	return o.ID(), nil
}
