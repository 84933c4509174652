// Package services contains stateless domain services.
//
// PaymentPolicy is the single source of truth for payment and fee decisions:
// how much product money is still owed, whether a delivery fee applies, and
// how far a declared amount may drift from the expected one.
package services
