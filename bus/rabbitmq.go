// file: bus/rabbitmq.go

package bus

import (
	"context"
	"encoding/json"
	"fmt"
	"go-recruit-api/logger"
	"sync"

	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/sirupsen/logrus"
)

// RabbitMQBus implements IEventBus on top of a single topic exchange.
// Exchange, queues and bindings are all declared durable, so events survive a
// broker restart and are redelivered after a consumer crash.
type RabbitMQBus struct {
	conn     *amqp.Connection
	exchange string
	workers  int

	// amqp channels are not safe for concurrent publishing.
	pubMu sync.Mutex
	pubCh *amqp.Channel

	// One consuming channel per subscribed queue, closed on shutdown.
	consMu   sync.Mutex
	consumer []*amqp.Channel

	wg sync.WaitGroup
}

// NewRabbitMQBus declares the topic exchange and prepares a publishing channel.
// workers is the number of concurrent handler goroutines per subscribed queue.
func NewRabbitMQBus(conn *amqp.Connection, exchange string, workers int) (*RabbitMQBus, error) {
	if workers <= 0 {
		workers = 1
	}

	ch, err := conn.Channel()
	if err != nil {
		return nil, fmt.Errorf("failed to open publish channel: %w", err)
	}

	err = ch.ExchangeDeclare(exchange, "topic", true, false, false, false, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to declare exchange %s: %w", exchange, err)
	}

	return &RabbitMQBus{
		conn:     conn,
		exchange: exchange,
		workers:  workers,
		pubCh:    ch,
	}, nil
}

// Publish serializes the event as JSON and hands it to the broker.
// Callers invoke this only after their own state change is committed, so an
// error here is logged by the caller and never unwinds business data.
func (b *RabbitMQBus) Publish(ctx context.Context, routingKey string, event interface{}) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal event for %s: %w", routingKey, err)
	}

	b.pubMu.Lock()
	defer b.pubMu.Unlock()

	err = b.pubCh.PublishWithContext(ctx, b.exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish to %s: %w", routingKey, err)
	}

	logger.Log.WithFields(logrus.Fields{
		"routing_key": routingKey,
		"bytes":       len(body),
	}).Debug("Event published")
	return nil
}

// Subscribe binds a durable queue to the routing key and starts the worker
// pool. A handler error results in a negative acknowledgement with requeue, so
// the broker delivers the event again (at-least-once).
func (b *RabbitMQBus) Subscribe(queue, routingKey string, handler Handler) error {
	ch, err := b.conn.Channel()
	if err != nil {
		return fmt.Errorf("failed to open consumer channel for %s: %w", queue, err)
	}

	if _, err := ch.QueueDeclare(queue, true, false, false, false, nil); err != nil {
		return fmt.Errorf("failed to declare queue %s: %w", queue, err)
	}
	if err := ch.QueueBind(queue, routingKey, b.exchange, false, nil); err != nil {
		return fmt.Errorf("failed to bind queue %s to %s: %w", queue, routingKey, err)
	}
	if err := ch.Qos(b.workers, 0, false); err != nil {
		return fmt.Errorf("failed to set qos for %s: %w", queue, err)
	}

	deliveries, err := ch.Consume(queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("failed to start consuming %s: %w", queue, err)
	}

	b.consMu.Lock()
	b.consumer = append(b.consumer, ch)
	b.consMu.Unlock()

	for i := 0; i < b.workers; i++ {
		b.wg.Add(1)
		go b.worker(queue, routingKey, deliveries, handler)
	}

	logger.Log.WithFields(logrus.Fields{
		"queue":       queue,
		"routing_key": routingKey,
		"workers":     b.workers,
	}).Info("Subscribed to event queue")
	return nil
}

func (b *RabbitMQBus) worker(queue, routingKey string, deliveries <-chan amqp.Delivery, handler Handler) {
	defer b.wg.Done()

	for d := range deliveries {
		log := logger.Log.WithFields(logrus.Fields{
			"queue":       queue,
			"routing_key": routingKey,
		})

		if err := handler(context.Background(), d.Body); err != nil {
			log.WithError(err).Error("Event handler failed, requeueing for redelivery")
			if nackErr := d.Nack(false, true); nackErr != nil {
				log.WithError(nackErr).Error("Failed to nack delivery")
			}
			continue
		}

		if err := d.Ack(false); err != nil {
			log.WithError(err).Error("Failed to ack delivery")
		}
	}
}

// Close shuts down all consumer channels, waits for in-flight handlers, then
// closes the publishing channel. The connection itself belongs to the caller.
func (b *RabbitMQBus) Close() error {
	b.consMu.Lock()
	for _, ch := range b.consumer {
		ch.Close()
	}
	b.consumer = nil
	b.consMu.Unlock()

	b.wg.Wait()

	b.pubMu.Lock()
	defer b.pubMu.Unlock()
	return b.pubCh.Close()
}
