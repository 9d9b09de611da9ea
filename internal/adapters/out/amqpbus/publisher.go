package amqpbus

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net"
	"sync"
	"time"

	"orderflow/internal/core/application/events"
	"orderflow/internal/core/ports"
	"orderflow/internal/pkg/retry"

	amqp "github.com/rabbitmq/amqp091-go"
)

// Publisher sends integration events to the RabbitMQ exchange with bounded
// retries on transient broker faults. Safe for concurrent use; all channel
// access is serialized because AMQP channels are not.
type Publisher struct {
	conn     *amqp.Connection
	exchange string
	policy   retry.Policy
	logger   *slog.Logger

	mu sync.Mutex
	ch *amqp.Channel
}

// NewPublisher opens a channel on the connection and returns a publisher for
// the given exchange. The connection stays owned by the caller; Close only
// releases the publisher's channel.
func NewPublisher(conn *amqp.Connection, exchange string, logger *slog.Logger) (*Publisher, error) {
	ch, err := conn.Channel()
	if err != nil {
		return nil, err
	}

	p := &Publisher{
		conn:     conn,
		exchange: exchange,
		logger:   logger.With("component", "event_publisher"),
		ch:       ch,
	}

	policy := retry.NewPolicy(IsTransient)
	policy.OnRetry = func(attempt int, err error, delay time.Duration) {
		p.logger.WarnContext(context.Background(), "event publish attempt failed, retrying",
			"attempt", attempt, "delay", delay.String(), "error", err)
	}
	p.policy = policy

	return p, nil
}

// Publish serializes the event to JSON and sends it with the event id as the
// message id and the type tag as both the message type and the routing key.
// Transient faults are retried per the policy; a broken channel is reopened
// before the next attempt. Failures surface as ports.PublishFailedError.
func (p *Publisher) Publish(ctx context.Context, event events.Event) error {
	body, err := json.Marshal(event)
	if err != nil {
		return ports.NewPublishFailedError(event.EventType(), event.EventID().String(), err)
	}

	msg := amqp.Publishing{
		MessageId:    event.EventID().String(),
		Type:         event.EventType(),
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	}

	err = p.policy.Do(ctx, func(ctx context.Context) error {
		return p.send(ctx, event.EventType(), msg)
	})
	if err != nil {
		return ports.NewPublishFailedError(event.EventType(), event.EventID().String(), err)
	}

	p.logger.DebugContext(ctx, "event published",
		"event_type", event.EventType(), "event_id", event.EventID().String())
	return nil
}

func (p *Publisher) send(ctx context.Context, routingKey string, msg amqp.Publishing) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		ch, err := p.conn.Channel()
		if err != nil {
			return err
		}
		p.ch = ch
	}

	return p.ch.PublishWithContext(ctx, p.exchange, routingKey, false, false, msg)
}

// Close releases the publisher's channel.
func (p *Publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.ch == nil || p.ch.IsClosed() {
		return nil
	}
	return p.ch.Close()
}

// IsTransient classifies broker errors worth retrying: closed channels and
// connections, broker-side faults the server marks recoverable, and network
// timeouts. Everything else (bad exchange, malformed frame, access refused)
// fails immediately.
func IsTransient(err error) bool {
	if errors.Is(err, amqp.ErrClosed) {
		return true
	}

	var amqpErr *amqp.Error
	if errors.As(err, &amqpErr) {
		return amqpErr.Recover || amqpErr.Code == amqp.ConnectionForced || amqpErr.Code == amqp.ChannelError
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return netErr.Timeout()
	}

	return false
}
