package ports

import (
	"context"
)

// UnitOfWorkFactory hands every command its own transaction scope.
type UnitOfWorkFactory interface {
	Create() UnitOfWork
}

// UnitOfWork wraps one database transaction for a single command.
//
// Repositories obtained from it share the transaction. Aggregates passed to
// Add or Save are tracked, and the events they recorded go to the
// EventPublisher once Commit returns nil. A failed or rolled back unit
// publishes nothing.
type UnitOfWork interface {
	Begin(ctx context.Context) error

	// Commit fails when Begin was not called.
	Commit(ctx context.Context) error

	// Rollback is deferred by handlers; after Commit it only reports that no
	// transaction is active.
	Rollback(ctx context.Context) error

	OrderRepository() OrderRepository
	TrackingRepository() TrackingRepository

	// CashClosingRepository locks the closing rows it reads only when called
	// between Begin and Commit.
	CashClosingRepository() CashClosingRepository
}
