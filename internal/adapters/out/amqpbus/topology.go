// Package amqpbus implements the outbound event publisher and the broker
// topology over RabbitMQ. Events are routed by their type tag: the publisher
// sends to a topic exchange with the tag as the routing key, and consumer
// queues bind per tag. Rejected messages land on a companion dead-letter
// exchange and queue.
package amqpbus

import (
	"fmt"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Topology describes the broker resources one consumer queue needs.
type Topology struct {
	// Exchange is the topic exchange events are published to.
	Exchange string

	// Queue receives events whose type tag matches one of the bindings.
	Queue string

	// Bindings are the event type tags the queue subscribes to.
	Bindings []string

	// DeadLetterExchange and DeadLetterQueue receive messages the consumer
	// rejects permanently.
	DeadLetterExchange string
	DeadLetterQueue    string
}

// Declare creates the exchanges, queues, and bindings idempotently. Safe to
// call from both the publisher and the consumer on startup; the first caller
// creates the resources and later callers see them already in place.
func Declare(ch *amqp.Channel, topology Topology) error {
	err := ch.ExchangeDeclare(topology.Exchange, "topic", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare exchange %s: %w", topology.Exchange, err)
	}

	err = ch.ExchangeDeclare(topology.DeadLetterExchange, "fanout", true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare dead-letter exchange %s: %w", topology.DeadLetterExchange, err)
	}

	_, err = ch.QueueDeclare(topology.DeadLetterQueue, true, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("declare dead-letter queue %s: %w", topology.DeadLetterQueue, err)
	}

	if err = ch.QueueBind(topology.DeadLetterQueue, "", topology.DeadLetterExchange, false, nil); err != nil {
		return fmt.Errorf("bind dead-letter queue %s: %w", topology.DeadLetterQueue, err)
	}

	_, err = ch.QueueDeclare(topology.Queue, true, false, false, false, amqp.Table{
		"x-dead-letter-exchange": topology.DeadLetterExchange,
	})
	if err != nil {
		return fmt.Errorf("declare queue %s: %w", topology.Queue, err)
	}

	for _, binding := range topology.Bindings {
		if err = ch.QueueBind(topology.Queue, binding, topology.Exchange, false, nil); err != nil {
			return fmt.Errorf("bind queue %s to %s: %w", topology.Queue, binding, err)
		}
	}

	return nil
}
