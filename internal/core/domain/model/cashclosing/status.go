package cashclosing

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// Status of a courier's daily closing. It is never set directly: it is
// derived from the collection status of the closing's details.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPartial   Status = "partial"
	StatusCompleted Status = "completed"
)

func (s Status) Validate() error {
	switch s {
	case StatusPending, StatusPartial, StatusCompleted:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("closing status", fmt.Errorf("%q is not a valid closing status", string(s)))
}

// CollectionStatus of one order's money within a closing.
type CollectionStatus string

const (
	CollectionPending   CollectionStatus = "pending"
	CollectionCollected CollectionStatus = "collected"
)

func (s CollectionStatus) Validate() error {
	switch s {
	case CollectionPending, CollectionCollected:
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("collection status", fmt.Errorf("%q is not a valid collection status", string(s)))
}

// DeriveStatus is completed when there are details and all are collected,
// partial when some are collected, and pending otherwise.
func DeriveStatus(details []*Detail) Status {
	collected := 0
	for _, d := range details {
		if d.status == CollectionCollected {
			collected++
		}
	}
	switch {
	case len(details) > 0 && collected == len(details):
		return StatusCompleted
	case collected > 0:
		return StatusPartial
	default:
		return StatusPending
	}
}
