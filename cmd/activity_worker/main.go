package main

import (
	"context"
	"errors"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"github.com/nexstu/socialgraph/config"
	"github.com/nexstu/socialgraph/internal/application"
	"github.com/nexstu/socialgraph/internal/domain/shared"
	"github.com/nexstu/socialgraph/internal/infrastructure/messaging"
	pginfra "github.com/nexstu/socialgraph/internal/infrastructure/postgres"
	"github.com/nexstu/socialgraph/pkg/helpers"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		log.Fatalf("invalid config: %v", err)
	}
	logger := helpers.NewLogger(cfg.AppName+"-activity-worker", cfg.Env, cfg.LogLevel)

	if !cfg.EventsEnabled {
		logger.Info("EVENTS_ENABLED=false; activity worker disabled")
		return
	}
	if cfg.RabbitMQURL == "" || cfg.RabbitMQEventsQueue == "" {
		log.Fatal("RabbitMQ not configured")
	}

	ctx := context.Background()
	pool, err := pginfra.NewPool(ctx, cfg.PostgresDSN(), pginfra.SettingsFromConfig(cfg))
	if err != nil {
		log.Fatalf("failed to connect to postgres: %v", err)
	}
	defer pool.Close()

	// Prefetch for fair dispatch
	consumer, err := helpers.NewRabbitConsumer(cfg.RabbitMQURL, cfg.RabbitMQEventsQueue, 16)
	if err != nil {
		log.Fatalf("amqp: %v", err)
	}
	defer consumer.Close()

	msgs, err := consumer.Deliveries("")
	if err != nil {
		log.Fatalf("consume: %v", err)
	}

	activities := application.NewActivityService(pginfra.NewActivityRepository(pool), logger)

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	done := make(chan struct{})

	go func() {
		for msg := range msgs {
			ev, err := messaging.DecodeFollowEvent(msg.Body)
			if err != nil {
				helpers.LogAt(logger, logrus.ErrorLevel, "bad follow event", err, logrus.Fields{"message_id": msg.MessageId})
				_ = msg.Nack(false, false)
				continue
			}

			c, cancel := context.WithTimeout(ctx, 10*time.Second)
			err = activities.RecordFollow(c, ev)
			cancel()
			switch {
			case err == nil:
				_ = msg.Ack(false)
			case errors.Is(err, shared.ErrNotFound):
				// one of the users is gone; retrying cannot help
				_ = msg.Nack(false, false)
			default:
				helpers.LogAt(logger, logrus.WarnLevel, "record activity failed", err, logrus.Fields{"message_id": msg.MessageId, "redelivered": msg.Redelivered})
				_ = msg.Nack(false, !msg.Redelivered)
			}
		}
		close(done)
	}()

	helpers.LogAt(logger, logrus.InfoLevel, "activity worker listening", nil, logrus.Fields{"queue": cfg.RabbitMQEventsQueue})
	<-stop
	logger.Info("shutting down...")
	consumer.Close()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
	}
}
