package order

import (
	"fmt"
	"slices"

	"fulfillment/internal/pkg/errs"
)

// Status represents the lifecycle state of an order.
//
// State transitions:
//
//	PendingBilling ──┬──> WalletReview ──> InLogistics
//	                 └──────────────────> InLogistics ──> InPacking ──> Packed
//	Packed ──┬──> ReadyForPickup ──┬──> OutForDelivery ──> Delivered{ToCustomer,ToCarrier}
//	         │                     └──> Delivered{ToCarrier,Warehouse}
//	         └──> OutForDelivery
//	InLogistics, InPacking ──> ReadyForPickup (courier assignment)
//	any non-terminal ──> Cancelled
//
// Delivered states and Cancelled are terminal.
type Status int

const (
	// StatusUnknown catches uninitialized values.
	StatusUnknown Status = iota
	StatusPendingBilling
	StatusWalletReview
	StatusInLogistics
	StatusInPacking
	StatusPacked
	StatusReadyForPickup
	StatusOutForDelivery
	StatusDeliveredToCustomer
	StatusDeliveredToCarrier
	StatusDeliveredWarehouse
	StatusCancelled
)

func getStatusStrings() map[Status]string {
	return map[Status]string{
		StatusUnknown:             "unknown",
		StatusPendingBilling:      "pending_billing",
		StatusWalletReview:        "wallet_review",
		StatusInLogistics:         "in_logistics",
		StatusInPacking:           "in_packing",
		StatusPacked:              "packed",
		StatusReadyForPickup:      "ready_for_pickup",
		StatusOutForDelivery:      "out_for_delivery",
		StatusDeliveredToCustomer: "delivered_to_customer",
		StatusDeliveredToCarrier:  "delivered_to_carrier",
		StatusDeliveredWarehouse:  "delivered_warehouse",
		StatusCancelled:           "cancelled",
	}
}

// getTransitions is the complete edge set of the order lifecycle.
// Every status change performed by Order is checked against it.
func getTransitions() map[Status][]Status {
	//nolint:exhaustive // terminal statuses have no outgoing edges
	return map[Status][]Status{
		StatusPendingBilling: {StatusWalletReview, StatusInLogistics, StatusCancelled},
		StatusWalletReview:   {StatusInLogistics, StatusCancelled},
		StatusInLogistics:    {StatusInPacking, StatusReadyForPickup, StatusCancelled},
		StatusInPacking:      {StatusPacked, StatusReadyForPickup, StatusCancelled},
		StatusPacked:         {StatusReadyForPickup, StatusOutForDelivery, StatusCancelled},
		StatusReadyForPickup: {
			StatusOutForDelivery,
			StatusDeliveredToCarrier,
			StatusDeliveredWarehouse,
			StatusCancelled,
		},
		StatusOutForDelivery: {StatusDeliveredToCustomer, StatusDeliveredToCarrier, StatusCancelled},
	}
}

// ParseStatus converts the persisted name back into a Status.
func ParseStatus(s string) (Status, error) {
	for status, name := range getStatusStrings() {
		if name == s && status != StatusUnknown {
			return status, nil
		}
	}
	return StatusUnknown, errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%q is not a valid status", s))
}

// Validate checks that s is one of the defined statuses.
func (s Status) Validate() error {
	if s == StatusUnknown {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	if _, ok := getStatusStrings()[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

func (s Status) String() string {
	if str, ok := getStatusStrings()[s]; ok {
		return str
	}
	return "unknown"
}

// IsTerminal reports whether no further transitions are possible.
func (s Status) IsTerminal() bool {
	switch s {
	case StatusDeliveredToCustomer, StatusDeliveredToCarrier, StatusDeliveredWarehouse, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsPreDispatch reports whether the order has not yet been handed to a courier or carrier.
func (s Status) IsPreDispatch() bool {
	return s == StatusInLogistics || s == StatusInPacking || s == StatusPacked
}

// CanTransitionTo reports whether next is reachable from s in one step.
func (s Status) CanTransitionTo(next Status) bool {
	return slices.Contains(getTransitions()[s], next)
}

// transition validates that operation may move s to next. from lists the
// statuses the operation accepts; the global edge set is checked as well.
func (s Status) transition(operation string, next Status, from ...Status) (Status, error) {
	if !slices.Contains(from, s) || !s.CanTransitionTo(next) {
		return StatusUnknown, errs.NewInvalidTransitionError(operation, s.String())
	}
	return next, nil
}
