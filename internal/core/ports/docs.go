// Package ports defines the contracts between the application core and its
// adapters: repositories bound to a unit of work, the outbox, the event
// publisher and the idempotency store.
package ports
