package worker

import (
	"context"
	"errors"
	"log/slog"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
	"golang.org/x/sync/semaphore"
)

// Dispatcher defaults. Processing is serial unless configured otherwise,
// matching the ordering guarantees of a single consumer.
const (
	DefaultMaxConcurrent     = 1
	DefaultHeartbeatInterval = 30 * time.Second
)

// DispatcherConfig carries the consumer settings.
type DispatcherConfig struct {
	// Queue is the broker queue deliveries are consumed from.
	Queue string

	// MaxConcurrent bounds in-flight handler calls. Zero means the default.
	MaxConcurrent int64

	// HeartbeatInterval is how often the dispatcher logs that it is alive.
	// Zero means the default.
	HeartbeatInterval time.Duration
}

// Dispatcher consumes deliveries from the queue and routes them through the
// registry. Settlement follows the handler outcome: success and unknown tags
// acknowledge, handler errors requeue for redelivery, and deserialization
// errors dead-letter because redelivery cannot fix a malformed body.
type Dispatcher struct {
	conn     *amqp.Connection
	registry *Registry
	config   DispatcherConfig
	logger   *slog.Logger

	sem *semaphore.Weighted
	wg  sync.WaitGroup
}

// NewDispatcher creates a dispatcher over an open broker connection. The
// connection stays owned by the caller.
func NewDispatcher(
	conn *amqp.Connection,
	registry *Registry,
	config DispatcherConfig,
	logger *slog.Logger,
) *Dispatcher {
	if config.MaxConcurrent <= 0 {
		config.MaxConcurrent = DefaultMaxConcurrent
	}
	if config.HeartbeatInterval <= 0 {
		config.HeartbeatInterval = DefaultHeartbeatInterval
	}

	return &Dispatcher{
		conn:     conn,
		registry: registry,
		config:   config,
		logger:   logger.With("component", "event_dispatcher"),
		sem:      semaphore.NewWeighted(config.MaxConcurrent),
	}
}

// Run consumes the queue until the context is cancelled or the channel
// closes. On cancellation the consumer stops taking new deliveries and
// drains in-flight handlers before returning. Broker-initiated channel
// closures are logged and returned so the caller can decide to reconnect.
func (d *Dispatcher) Run(ctx context.Context) error {
	ch, err := d.conn.Channel()
	if err != nil {
		return err
	}
	defer ch.Close()

	//nolint:gosec // MaxConcurrent is a small non-negative config value
	if err = ch.Qos(int(d.config.MaxConcurrent), 0, false); err != nil {
		return err
	}

	deliveries, err := ch.Consume(d.config.Queue, "", false, false, false, false, nil)
	if err != nil {
		return err
	}

	closed := ch.NotifyClose(make(chan *amqp.Error, 1))
	heartbeat := time.NewTicker(d.config.HeartbeatInterval)
	defer heartbeat.Stop()

	d.logger.InfoContext(ctx, "event dispatcher started",
		"queue", d.config.Queue, "max_concurrent", d.config.MaxConcurrent)

	for {
		select {
		case <-ctx.Done():
			d.logger.InfoContext(ctx, "event dispatcher stopping, draining in-flight handlers")
			d.wg.Wait()
			return nil

		case amqpErr := <-closed:
			d.wg.Wait()
			if amqpErr == nil {
				return nil
			}
			d.logger.ErrorContext(ctx, "broker channel closed", "error", amqpErr)
			return amqpErr

		case <-heartbeat.C:
			d.logger.InfoContext(ctx, "event dispatcher alive", "queue", d.config.Queue)

		case msg, ok := <-deliveries:
			if !ok {
				d.wg.Wait()
				return nil
			}

			if err = d.sem.Acquire(ctx, 1); err != nil {
				// cancelled while waiting for a slot; the unacked delivery
				// returns to the queue when the channel closes
				d.wg.Wait()
				return nil
			}

			d.wg.Add(1)
			go d.dispatch(ctx, msg)
		}
	}
}

func (d *Dispatcher) dispatch(ctx context.Context, msg amqp.Delivery) {
	defer d.wg.Done()
	defer d.sem.Release(1)

	handled, err := d.registry.TryHandle(ctx, msg.Type, msg.Body)

	switch {
	case err == nil && !handled:
		d.logger.WarnContext(ctx, "no handler registered for event, completing",
			"event_type", msg.Type, "message_id", msg.MessageId)
		d.settle(ctx, msg, msg.Ack(false))

	case err == nil:
		d.logger.DebugContext(ctx, "event handled",
			"event_type", msg.Type, "message_id", msg.MessageId)
		d.settle(ctx, msg, msg.Ack(false))

	case errors.Is(err, ErrDeserialization):
		d.logger.ErrorContext(ctx, "event body is malformed, dead-lettering",
			"event_type", msg.Type, "message_id", msg.MessageId, "error", err)
		d.settle(ctx, msg, msg.Nack(false, false))

	default:
		d.logger.ErrorContext(ctx, "event handler failed, returning event to queue",
			"event_type", msg.Type, "message_id", msg.MessageId, "error", err)
		d.settle(ctx, msg, msg.Nack(false, true))
	}
}

func (d *Dispatcher) settle(ctx context.Context, msg amqp.Delivery, err error) {
	if err != nil {
		d.logger.ErrorContext(ctx, "failed to settle delivery",
			"event_type", msg.Type, "message_id", msg.MessageId, "error", err)
	}
}
