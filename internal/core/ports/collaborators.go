package ports

import (
	"context"
	"io"

	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
)

// EvidenceStore keeps photographic evidence and returns a retrievable URL.
type EvidenceStore interface {
	Upload(ctx context.Context, name, contentType string, content io.Reader) (string, error)
}

// DocumentRenderer produces the shipping label for an order.
type DocumentRenderer interface {
	RenderShippingLabel(ctx context.Context, snapshot order.Snapshot) (content []byte, contentType string, err error)
}

// NotesExtractor parses recipient fields out of free-text invoice notes.
// Results are best effort and never override explicit fields.
type NotesExtractor interface {
	Extract(ctx context.Context, notes string) (order.Recipient, error)
}

// SettingsProvider reads business settings that change without a deploy.
type SettingsProvider interface {
	FreeShippingThreshold(ctx context.Context) (kernel.Money, error)
}

// EventPublisher delivers committed domain events to other systems.
type EventPublisher interface {
	Publish(ctx context.Context, events ...kernel.DomainEvent) error
}

// SettingsStore is a SettingsProvider that administrators can write to.
type SettingsStore interface {
	SettingsProvider
	SetFreeShippingThreshold(ctx context.Context, threshold kernel.Money) error
}
