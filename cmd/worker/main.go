package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"orderflow/cmd"
	"orderflow/internal/adapters/out/amqpbus"
	"orderflow/internal/worker"
	"orderflow/internal/worker/notifications"

	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
)

func main() {
	configs := cmd.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	conn, err := amqp.Dial(configs.AmqpURL)
	if err != nil {
		log.Fatalf("Failed to connect to broker: %v", err)
	}
	defer conn.Close()

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open broker channel: %v", err)
	}
	if err = amqpbus.Declare(ch, configs.Topology()); err != nil {
		log.Fatalf("Failed to declare broker topology: %v", err)
	}
	ch.Close()

	registry := worker.NewRegistry()
	notifications.RegisterAll(registry, logger)

	dispatcher := worker.NewDispatcher(conn, registry, worker.DispatcherConfig{
		Queue:         configs.NotificationsQueue,
		MaxConcurrent: configs.WorkerMaxConcurrent,
	}, logger)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err = dispatcher.Run(ctx); err != nil {
		log.Fatalf("Event dispatcher stopped with error: %v", err)
	}

	logger.Info("notification worker stopped")
}
