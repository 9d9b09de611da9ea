package cmd

import (
	"fmt"
	"time"

	"orderflow/internal/adapters/out/amqpbus"
	"orderflow/internal/core/application/events"
)

// Config carries every setting the binaries read from the environment.
type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string

	AmqpURL            string
	EventsExchange     string
	NotificationsQueue string
	DeadLetterExchange string
	DeadLetterQueue    string

	WorkerMaxConcurrent int64
	MonitorInterval     time.Duration
	StuckThreshold      time.Duration
}

// PostgresDSN builds the database connection string.
func (c Config) PostgresDSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// Topology describes the broker resources both binaries declare on startup:
// the events exchange, the notification queue bound to every lifecycle
// event, and the dead-letter pair behind it.
func (c Config) Topology() amqpbus.Topology {
	return amqpbus.Topology{
		Exchange: c.EventsExchange,
		Queue:    c.NotificationsQueue,
		Bindings: []string{
			events.TypeOrderCreated,
			events.TypeOrderProcessed,
			events.TypeOrderShipped,
			events.TypeOrderCompleted,
			events.TypeOrderCancelled,
		},
		DeadLetterExchange: c.DeadLetterExchange,
		DeadLetterQueue:    c.DeadLetterQueue,
	}
}
