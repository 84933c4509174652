// Package kernel provides the shared domain primitives of the fulfillment service.
//
// The package includes:
//   - UUID: a value object for identifiers of orders, trackings, closings and users
//   - Money: a non-negative-aware decimal amount in the order currency
//   - Actor and Role: the caller identity supplied by the authentication collaborator
//   - GeoPoint: the validated geolocation recorded when a courier completes a delivery
//
// These primitives enforce their own invariants so aggregates never hold
// half-built values. They are immutable and safe for concurrent use.
package kernel
