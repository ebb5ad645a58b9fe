package order

import (
	"time"

	"storefront/internal/core/domain/model/kernel"
	"storefront/internal/core/domain/model/user"
)

// Event names written to the outbox.
const (
	EventPlaced        = "order.placed"
	EventStatusChanged = "order.status_changed"
)

// PlacedPayload describes a newly placed order.
type PlacedPayload struct {
	OrderID    string `json:"order_id"`
	CustomerID string `json:"customer_id"`
	Total      string `json:"total"`
	ItemCount  int    `json:"item_count"`
	Status     string `json:"status"`
}

// StatusChangedPayload describes one accepted transition.
type StatusChangedPayload struct {
	OrderID    string  `json:"order_id"`
	From       string  `json:"from"`
	To         string  `json:"to"`
	ActorID    string  `json:"actor_id"`
	ActorRole  string  `json:"actor_role"`
	DriverID   *string `json:"driver_id,omitempty"`
	CustomerID string  `json:"customer_id"`
}

func (o *Order) raisePlaced(now time.Time) {
	o.events = append(o.events, kernel.NewDomainEvent(EventPlaced, o.id, now, PlacedPayload{
		OrderID:    o.id.String(),
		CustomerID: o.customerID.String(),
		Total:      o.total.String(),
		ItemCount:  len(o.items),
		Status:     o.status.String(),
	}))
}

func (o *Order) raiseStatusChanged(actor user.Actor, from Status, now time.Time) {
	payload := StatusChangedPayload{
		OrderID:    o.id.String(),
		From:       from.String(),
		To:         o.status.String(),
		ActorID:    actor.ID().String(),
		ActorRole:  actor.Role().String(),
		CustomerID: o.customerID.String(),
	}
	if o.driverID != nil {
		driverID := o.driverID.String()
		payload.DriverID = &driverID
	}
	o.events = append(o.events, kernel.NewDomainEvent(EventStatusChanged, o.id, now, payload))
}
