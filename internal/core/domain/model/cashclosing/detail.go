package cashclosing

import (
	"strings"
	"time"

	"fulfillment/internal/core/domain/model/kernel"
)

// Detail is one order's contribution to a closing.
type Detail struct {
	id              kernel.UUID
	orderID         kernel.UUID
	orderAmount     kernel.Money
	collectedAmount kernel.Money
	status          CollectionStatus
	notes           string
	collectedAt     *time.Time
}

func (d *Detail) ID() kernel.UUID               { return d.id }
func (d *Detail) OrderID() kernel.UUID          { return d.orderID }
func (d *Detail) OrderAmount() kernel.Money     { return d.orderAmount }
func (d *Detail) CollectedAmount() kernel.Money { return d.collectedAmount }
func (d *Detail) Status() CollectionStatus      { return d.status }
func (d *Detail) Notes() string                 { return d.notes }
func (d *Detail) CollectedAt() *time.Time       { return d.collectedAt }
func (d *Detail) IsCollected() bool             { return d.status == CollectionCollected }

func (d *Detail) appendNote(note string) {
	note = strings.TrimSpace(note)
	if note == "" {
		return
	}
	if d.notes == "" {
		d.notes = note
		return
	}
	d.notes += "\n" + note
}

func (d *Detail) markCollected(by kernel.UUID, at time.Time) {
	d.status = CollectionCollected
	d.collectedAt = &at
	d.appendNote("accepted by " + by.String() + " at " + at.UTC().Format(time.RFC3339))
}
