package app

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"go-hr-ticketing/internal/config"
	"go-hr-ticketing/internal/events"
	"go-hr-ticketing/internal/messaging/kafka/consumer"
	"go-hr-ticketing/internal/notification"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

const mailerGroupID = "hr-ticketing-mailer"

// RunConsumer delivers leave notification mail until SIGINT or SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

	if cfg.KafkaBroker == "" {
		return fmt.Errorf("KAFKA_BROKER is required")
	}
	if cfg.SMTP.Host == "" {
		return fmt.Errorf("SMTP_HOST is required")
	}

	mailer, err := notification.NewSMTPMailer(cfg.SMTP, logger)
	if err != nil {
		return err
	}

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.LeaveNotificationTopic,
		GroupID:        mailerGroupID,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go consumer.ConsumeLeaveNotifications(ctx, reader, mailer, logger)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("consumer shutting down")
	cancel()

	return nil
}
