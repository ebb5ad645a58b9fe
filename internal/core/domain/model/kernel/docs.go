// Package kernel holds the primitives shared by every aggregate of the storefront
// domain:
//   - UUID: identifier value object wrapping github.com/google/uuid
//   - Money: non-negative monetary amount backed by github.com/shopspring/decimal
//   - DomainEvent: a fact recorded by an aggregate and relayed through the outbox
//
// The zero value of UUID is invalid; the zero value of Money is a valid amount of 0.
package kernel
