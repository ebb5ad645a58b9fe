// Package services provides domain services that coordinate several aggregates
// in one business operation.
//
// The package includes:
//   - OrderPlacer: turns requested lines into an Order, pricing them from the
//     catalog and taking the stock out of the products involved
package services
