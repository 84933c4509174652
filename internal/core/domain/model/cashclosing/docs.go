// Package cashclosing implements the cash reconciliation ledger: one
// CashClosing per courier per calendar day, holding one Detail per order
// whose money the courier declared or treasury accepted.
//
// Key business rules:
//   - a closing's status is a pure function of its details
//   - collected details are immutable
//   - treasury may accept cash that was never declared; the detail is then
//     created already collected
package cashclosing
