package consumer

import (
	"context"
	"encoding/json"
	"log"

	"github.com/glowslot/booking-platform/internal/models"
	"github.com/glowslot/booking-platform/internal/repository"
	amqp "github.com/rabbitmq/amqp091-go"
)

// ProfileConsumer mirrors customer profiles published by the identity service
// into the local database, so booking reads never cross service boundaries.
type ProfileConsumer struct {
	customerRepo repository.CustomerRepository
}

func NewProfileConsumer(customerRepo repository.CustomerRepository) *ProfileConsumer {
	return &ProfileConsumer{customerRepo: customerRepo}
}

func (pc *ProfileConsumer) Start(msgs <-chan amqp.Delivery) {
	go func() {
		for msg := range msgs {
			pc.handleMessage(msg)
		}
		log.Println("[ProfileConsumer] channel closed, stopping consumer")
	}()
}

type profileEvent struct {
	ID    string `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Phone string `json:"phone"`
}

func (pc *ProfileConsumer) handleMessage(msg amqp.Delivery) {
	var event profileEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		log.Printf("[ProfileConsumer] failed to unmarshal: %v", err)
		msg.Nack(false, false)
		return
	}
	if event.ID == "" {
		log.Printf("[ProfileConsumer] dropping %s event without id", msg.RoutingKey)
		msg.Nack(false, false)
		return
	}

	customer := &models.Customer{
		ID:              event.ID,
		Email:           event.Email,
		Name:            event.Name,
		Phone:           event.Phone,
		IsFirstTimeUser: true,
	}
	if err := pc.customerRepo.Upsert(context.Background(), customer); err != nil {
		log.Printf("[ProfileConsumer] failed to upsert customer %s: %v", event.ID, err)
		msg.Nack(false, true) // requeue
		return
	}

	log.Printf("[ProfileConsumer] synced customer %s (%s)", event.ID, msg.RoutingKey)
	msg.Ack(false)
}
