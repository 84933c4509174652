package order

import (
	"fmt"

	"fulfillment/internal/pkg/errs"
)

// MessengerStatus is the courier sub-state of an order.
//
//	Assigned ──> Accepted ──> InDelivery ──┬──> Delivered
//	    │                                  └──> DeliveryFailed ──> Assigned (re-assignment)
//	    └──> ReturnedToLogistics (courier rejects)
//
// MessengerNone means no courier is attached. ReturnedToLogistics is only
// ever stored on the delivery tracking row: the order itself drops its
// courier when an assignment is rejected.
type MessengerStatus int

const (
	MessengerNone MessengerStatus = iota
	MessengerAssigned
	MessengerAccepted
	MessengerInDelivery
	MessengerDelivered
	MessengerDeliveryFailed
	MessengerReturnedToLogistics
)

func getMessengerStatusStrings() map[MessengerStatus]string {
	return map[MessengerStatus]string{
		MessengerNone:                "",
		MessengerAssigned:            "assigned",
		MessengerAccepted:            "accepted",
		MessengerInDelivery:          "in_delivery",
		MessengerDelivered:           "delivered",
		MessengerDeliveryFailed:      "delivery_failed",
		MessengerReturnedToLogistics: "returned_to_logistics",
	}
}

func ParseMessengerStatus(s string) (MessengerStatus, error) {
	for status, name := range getMessengerStatusStrings() {
		if name == s {
			return status, nil
		}
	}
	return MessengerNone, errs.NewValueIsInvalidErrorWithCause(
		"messenger status is invalid", fmt.Errorf("%q is not a valid messenger status", s))
}

func (m MessengerStatus) String() string {
	return getMessengerStatusStrings()[m]
}

func (m MessengerStatus) Validate() error {
	if _, ok := getMessengerStatusStrings()[m]; !ok {
		return errs.NewValueIsInvalidErrorWithCause(
			"messenger status is invalid", fmt.Errorf("%d is not a valid messenger status", m))
	}
	return nil
}

// ValidateConsistency enforces the mapping between the top-level status and
// the courier sub-state:
//   - no courier            ⇔ MessengerNone
//   - Assigned, Accepted    ⇒ ReadyForPickup, OutForDelivery or Cancelled
//   - InDelivery            ⇒ OutForDelivery
//   - Delivered             ⇒ DeliveredToCustomer
//   - DeliveryFailed        ⇒ OutForDelivery or Cancelled
func (m MessengerStatus) ValidateConsistency(status Status, hasCourier bool) error {
	if hasCourier != (m != MessengerNone) {
		return errs.NewValueIsInvalidErrorWithCause("messenger status is invalid",
			fmt.Errorf("messenger status %q does not match courier presence %t", m, hasCourier))
	}

	var allowed []Status
	//nolint:exhaustive // MessengerNone is compatible with every status
	switch m {
	case MessengerNone:
		return nil
	case MessengerAssigned, MessengerAccepted:
		allowed = []Status{StatusReadyForPickup, StatusOutForDelivery, StatusCancelled}
	case MessengerInDelivery:
		allowed = []Status{StatusOutForDelivery}
	case MessengerDelivered:
		allowed = []Status{StatusDeliveredToCustomer}
	case MessengerDeliveryFailed:
		allowed = []Status{StatusOutForDelivery, StatusCancelled}
	default:
		return errs.NewValueIsInvalidErrorWithCause("messenger status is invalid",
			fmt.Errorf("%q cannot be held by an order", m))
	}

	for _, s := range allowed {
		if s == status {
			return nil
		}
	}
	return errs.NewValueIsInvalidErrorWithCause("messenger status is invalid",
		fmt.Errorf("%q is inconsistent with order status %s", m, status))
}
