// file: db/rabbitmq.go

package db

import (
	"fmt"
	"go-recruit-api/config"
	"go-recruit-api/logger"

	amqp "github.com/rabbitmq/amqp091-go"
)

// ConnectRabbitMQ dials the broker configured in AppConfig.
// The caller owns the connection and must close it on shutdown.
func ConnectRabbitMQ() (*amqp.Connection, error) {
	cfg := config.AppConfig.RabbitMQ

	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		logger.Log.WithError(err).Error("Failed to connect to RabbitMQ")
		return nil, fmt.Errorf("failed to connect to rabbitmq: %w", err)
	}

	logger.Log.Info("RabbitMQ connection established successfully")
	return conn, nil
}
