package commands

import (
	"context"
	"fmt"

	"fulfillment/internal/core/domain/model/kernel"
)

// AuditResult counts the closings examined and those whose stored aggregates
// had drifted from their details.
type AuditResult struct {
	Checked   int
	Corrected []kernel.UUID
}

// AuditCashClosingsCommandHandler recomputes each closing in its own unit of
// work so one bad closing does not hold locks on the rest.
type AuditCashClosingsCommandHandler struct {
	uowFactory UoWFactory
}

func NewAuditCashClosingsCommandHandler(uowFactory UoWFactory) AuditCashClosingsCommandHandler {
	return AuditCashClosingsCommandHandler{uowFactory: uowFactory}
}

func (h AuditCashClosingsCommandHandler) Handle(ctx context.Context, cmd AuditCashClosingsCommand) (AuditResult, error) {
	if err := cmd.Validate(); err != nil {
		return AuditResult{}, err
	}

	ids, err := h.listIDs(ctx, cmd)
	if err != nil {
		return AuditResult{}, err
	}

	var result AuditResult
	for _, id := range ids {
		corrected, err := h.audit(ctx, id)
		if err != nil {
			return result, fmt.Errorf("audit cash closing %s: %w", id, err)
		}
		result.Checked++
		if corrected {
			result.Corrected = append(result.Corrected, id)
		}
	}
	return result, nil
}

func (h AuditCashClosingsCommandHandler) listIDs(ctx context.Context, cmd AuditCashClosingsCommand) ([]kernel.UUID, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	ids, err := uow.CashClosingRepository().ListIDsByDate(ctx, cmd.Date())
	if err != nil {
		return nil, err
	}
	return ids, uow.Commit(ctx)
}

func (h AuditCashClosingsCommandHandler) audit(ctx context.Context, id kernel.UUID) (bool, error) {
	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return false, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	closingRepo := uow.CashClosingRepository()
	closing, err := closingRepo.GetForUpdate(ctx, id)
	if err != nil {
		return false, err
	}

	if !closing.Recompute() {
		return false, nil
	}

	if err = closingRepo.Save(ctx, closing); err != nil {
		return false, err
	}
	return true, uow.Commit(ctx)
}
