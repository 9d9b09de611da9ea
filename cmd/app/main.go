package main

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"orderflow/cmd"
	apphttp "orderflow/internal/adapters/in/http"
	"orderflow/internal/adapters/out/amqpbus"
	"orderflow/internal/adapters/out/postgres/orderrepo"
	"orderflow/internal/jobs"

	"github.com/labstack/echo/v4"
	"github.com/labstack/gommon/log"
	amqp "github.com/rabbitmq/amqp091-go"
	gorm_postgres "gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func main() {
	configs := cmd.LoadConfig()
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))

	gormDB := mustOpenDatabase(configs)
	conn := mustConnectBroker(configs)
	defer conn.Close()

	publisher, err := amqpbus.NewPublisher(conn, configs.EventsExchange, logger)
	if err != nil {
		log.Fatalf("Failed to create event publisher: %v", err)
	}
	defer publisher.Close()

	root := cmd.NewCompositionRoot(configs, gormDB, publisher, logger)

	jobManager := jobs.NewJobManager(
		root.CreateGetStuckOrdersQueryHandler(),
		configs.MonitorInterval,
		configs.StuckThreshold,
		logger,
	)
	if err = jobManager.StartAll(); err != nil {
		log.Fatalf("Failed to start jobs: %v", err)
	}
	defer jobManager.StopAll()

	e := echo.New()
	server := apphttp.NewServer(
		root.CreateCreateOrderCommandHandler(),
		root.CreateProcessOrderCommandHandler(),
		root.CreateShipOrderCommandHandler(),
		root.CreateCompleteOrderCommandHandler(),
		root.CreateCancelOrderCommandHandler(),
		root.CreateGetOrderByIDQueryHandler(),
	)
	server.RegisterRoutes(e)

	go func() {
		if startErr := e.Start(fmt.Sprintf("0.0.0.0:%s", configs.HTTPPort)); startErr != nil &&
			startErr != http.ErrServerClosed {
			log.Fatalf("Web server failed: %v", startErr)
		}
	}()

	waitForShutdown(e, logger)
}

func mustOpenDatabase(configs cmd.Config) *gorm.DB {
	gormDB, err := gorm.Open(gorm_postgres.Open(configs.PostgresDSN()), &gorm.Config{})
	if err != nil {
		log.Fatalf("Failed to connect to database: %v", err)
	}

	if err = gormDB.AutoMigrate(&orderrepo.OrderDTO{}, &orderrepo.OrderItemDTO{}); err != nil {
		log.Fatalf("Failed to run database migrations: %v", err)
	}

	return gormDB
}

func mustConnectBroker(configs cmd.Config) *amqp.Connection {
	conn, err := amqp.Dial(configs.AmqpURL)
	if err != nil {
		log.Fatalf("Failed to connect to broker: %v", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		log.Fatalf("Failed to open broker channel: %v", err)
	}
	defer ch.Close()

	if err = amqpbus.Declare(ch, configs.Topology()); err != nil {
		log.Fatalf("Failed to declare broker topology: %v", err)
	}

	return conn
}

func waitForShutdown(e *echo.Echo, logger *slog.Logger) {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutdown signal received, stopping web server")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := e.Shutdown(ctx); err != nil {
		logger.Error("web server shutdown failed", "error", err)
	}
}
