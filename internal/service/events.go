package service

import "log"

// Routing keys published on the events exchange.
const (
	EventBookingCreated   = "booking.created"
	EventBookingConfirmed = "booking.confirmed"
	EventBookingCancelled = "booking.cancelled"
	EventBookingCompleted = "booking.completed"
	EventBookingNoShow    = "booking.no_show"
	EventPayoutRequested  = "payout.requested"
)

// EventPublisher abstracts the message broker so services can be tested
// without a live connection.
type EventPublisher interface {
	Publish(routingKey string, payload any) error
}

// publishEvent sends a best-effort event. Publish failures are logged and
// swallowed: the state change has already committed, events are advisory.
func publishEvent(pub EventPublisher, routingKey string, payload any) {
	if pub == nil {
		return
	}
	if err := pub.Publish(routingKey, payload); err != nil {
		log.Printf("[events] publish %s failed: %v", routingKey, err)
	}
}
