package messaging

import (
	"context"
	"encoding/json"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"github.com/hosanna-kids/sunday-school/teacher-portal/internal/core/ports"
)

type signupMessage struct {
	EventType string            `json:"event_type"`
	Event     ports.SignupEvent `json:"event"`
}

func (rmq *RabbitMQBroker) PublishSignupEvent(ctx context.Context, eventType string, evt ports.SignupEvent) error {
	body, err := json.Marshal(signupMessage{EventType: eventType, Event: evt})
	if err != nil {
		return err
	}

	// Respect context deadline
	if deadline, ok := ctx.Deadline(); ok {
		if time.Until(deadline) <= 0 {
			return ctx.Err()
		}
	}

	// Use circuit breaker to protect RabbitMQ publish operation
	_, err = rmq.cb.Execute(func() (interface{}, error) {
		err := rmq.ch.PublishWithContext(
			ctx,
			"",            // exchange (default)
			rmq.queueName, // routing key == queue name
			false,         // mandatory
			false,         // immediate
			amqp.Publishing{
				ContentType:  "application/json",
				DeliveryMode: amqp.Persistent,
				Body:         body,
			},
		)
		return nil, err
	})
	return err
}
