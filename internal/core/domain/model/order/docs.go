// Package order implements the Order aggregate and its lifecycle state machine.
//
// The package includes:
//   - Order: the aggregate root owning status, line items, total and timestamps
//   - Status: the closed set of lifecycle states
//   - TransitionTable: the state × role → next states authorization table
//   - Item: immutable line snapshot (product, quantity, unit price) taken at placement
//   - PaymentMethod: how the customer intends to pay
//
// Lifecycle:
//
//	placed ──> confirmed ──> preparing ──> ready ──> out_for_delivery ──> delivered
//	  │
//	  └──> cancelled
//
// Store moves orders up to ready (and may cancel while placed); drivers take them
// from ready to delivered. Customers have no write transitions. delivered and
// cancelled are terminal. Every change is recorded as a domain event.
package order
