// Package order implements the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root; every status, courier sub-state and payment
//     record change goes through one of its guarded methods
//   - Status: the top-level lifecycle with an explicit edge set
//   - MessengerStatus: the courier sub-state kept consistent with Status
//   - PaymentMethod, DeliveryMethod, ShippingPaymentMethod, ElectronicProvider
//     and CollectionMethod: closed enumerations of the commercial facts
//   - RouteAfterReview: the pure routing decision taken when billing releases
//     an order
//
// Key business rules:
//   - cash collected in person skips wallet review; transfers and electronic
//     payments must be confirmed by treasury first
//   - only the assigned courier may accept, start, complete or fail a delivery
//   - warehouse pickups that owe money need a cash-register entry with evidence
//     before they are released
//   - cancellations and rejections always carry a reason
//
// Payment and fee decisions are delegated to a Policy supplied by the caller.
package order
