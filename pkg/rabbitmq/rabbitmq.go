package rabbitmq

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"gudang/internal/models"

	amqp "github.com/streadway/amqp"
)

// Channel is the subset of *amqp.Channel used by Client.
type Channel interface {
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Consume(queue, consumer string, autoAck, exclusive, noLocal, noWait bool, args amqp.Table) (<-chan amqp.Delivery, error)
	Close() error
}

// Client publishes and consumes stock movement events on one durable queue.
type Client struct {
	conn    *amqp.Connection
	channel Channel
	queue   string
	log     *slog.Logger
	mu      sync.Mutex // amqp channels must not be shared by concurrent publishers
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL   string
	Queue string
}

// NewClient connects to RabbitMQ, opens a channel and declares the queue.
func NewClient(cfg Config, log *slog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	client, err := NewClientWithChannel(ch, cfg.Queue, log)
	if err != nil {
		conn.Close()
		return nil, err
	}
	client.conn = conn
	return client, nil
}

// NewClientWithChannel builds a Client on an already open channel and declares the queue.
func NewClientWithChannel(ch Channel, queue string, log *slog.Logger) (*Client, error) {
	_, err := ch.QueueDeclare(
		queue, // name
		true,  // durable
		false, // delete when unused
		false, // exclusive
		false, // no-wait
		nil,   // arguments
	)
	if err != nil {
		ch.Close()
		return nil, fmt.Errorf("failed to declare %s: %w", queue, err)
	}

	log = log.With(slog.String("component", "rabbitmq"), slog.String("queue", queue))
	log.Info("RabbitMQ client connected and queue declared")

	return &Client{channel: ch, queue: queue, log: log}, nil
}

// Close closes the RabbitMQ channel and connection.
func (c *Client) Close() error {
	var errs []error
	if c.channel != nil {
		if err := c.channel.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close channel: %w", err))
		}
	}
	if c.conn != nil {
		if err := c.conn.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close connection: %w", err))
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("multiple errors occurred during RabbitMQ client close: %v", errs)
	}
	return nil
}

// PublishStockMovement publishes event as a persistent JSON message.
func (c *Client) PublishStockMovement(event models.StockMovementEvent) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal stock movement: %w", err)
	}

	c.mu.Lock()
	err = c.channel.Publish(
		"",      // default exchange
		c.queue, // routing key: the queue name
		false,   // mandatory
		false,   // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Body:         body,
			MessageId:    event.ID,
			Type:         event.Kind,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	c.mu.Unlock()
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}

	c.log.Debug("stock movement published", slog.String("event_id", event.ID), slog.String("kind", event.Kind))
	return nil
}

// ConsumeStockMovements delivers queued events to handler until ctx is done or
// the channel closes. Messages the handler fails on are requeued; messages
// that are not valid events are dropped.
func (c *Client) ConsumeStockMovements(ctx context.Context, handler func(models.StockMovementEvent) error) error {
	if c.channel == nil {
		return fmt.Errorf("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		c.queue, // queue
		"",      // consumer tag
		false,   // auto-ack
		false,   // exclusive
		false,   // no-local
		false,   // no-wait
		nil,     // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case msg, ok := <-msgs:
			if !ok {
				return fmt.Errorf("delivery channel closed")
			}
			c.handle(msg, handler)
		}
	}
}

func (c *Client) handle(msg amqp.Delivery, handler func(models.StockMovementEvent) error) {
	var event models.StockMovementEvent
	if err := json.Unmarshal(msg.Body, &event); err != nil {
		c.log.Warn("dropping malformed message", slog.Uint64("delivery_tag", msg.DeliveryTag), slog.String("error", err.Error()))
		if nackErr := msg.Nack(false, false); nackErr != nil {
			c.log.Error("failed to nack message", slog.String("error", nackErr.Error()))
		}
		return
	}

	if err := handler(event); err != nil {
		c.log.Warn("error processing message", slog.Uint64("delivery_tag", msg.DeliveryTag), slog.String("error", err.Error()))
		if nackErr := msg.Nack(false, true); nackErr != nil {
			c.log.Error("failed to nack message", slog.String("error", nackErr.Error()))
		}
		return
	}

	if ackErr := msg.Ack(false); ackErr != nil {
		c.log.Error("failed to ack message", slog.String("error", ackErr.Error()))
	}
}
