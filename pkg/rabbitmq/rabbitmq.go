package rabbitmq

import (
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"weatherapi/internal/models"

	"github.com/rs/zerolog/log"
	amqp "github.com/streadway/amqp"
)

// UserEventsQueue is the durable queue user lifecycle events are published to.
const UserEventsQueue = "user_events"

// Client holds the RabbitMQ connection and channel.
type Client struct {
	conn    *amqp.Connection
	channel *amqp.Channel
	mu      sync.Mutex // amqp.Channel is not safe for concurrent publishes
}

// Config holds RabbitMQ connection details.
type Config struct {
	URL string
}

// NewClient connects to RabbitMQ, opens a channel and declares the user events queue.
func NewClient(cfg Config) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if _, err := declareUserEvents(ch); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	log.Info().Str("queue", UserEventsQueue).Msg("RabbitMQ client connected")

	return &Client{
		conn:    conn,
		channel: ch,
	}, nil
}

func declareUserEvents(ch *amqp.Channel) (amqp.Queue, error) {
	q, err := ch.QueueDeclare(
		UserEventsQueue, // name
		true,            // durable
		false,           // delete when unused
		false,           // exclusive
		false,           // no-wait
		nil,             // arguments
	)
	if err != nil {
		return q, fmt.Errorf("failed to declare %s: %w", UserEventsQueue, err)
	}
	return q, nil
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
	return errors.Join(errs...)
}

// PublishUserEvent publishes event as persistent JSON to the user events queue.
func (c *Client) PublishUserEvent(event models.UserEvent) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available")
	}

	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to marshal user event: %w", err)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	err = c.channel.Publish(
		"",              // default exchange
		UserEventsQueue, // routing key: the queue name
		false,           // mandatory
		false,           // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			Type:         string(event.Type),
			Body:         body,
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
		})
	if err != nil {
		return fmt.Errorf("failed to publish message: %w", err)
	}
	return nil
}

// DecodeUserEvent parses a delivery body produced by PublishUserEvent.
func DecodeUserEvent(body []byte) (models.UserEvent, error) {
	var event models.UserEvent
	if err := json.Unmarshal(body, &event); err != nil {
		return event, fmt.Errorf("failed to decode user event: %w", err)
	}
	if event.Type == "" || event.UserID == "" {
		return event, errors.New("user event is missing type or user_id")
	}
	return event, nil
}

// ConsumeUserEvents delivers user events to handler in a background goroutine.
// Messages are acked when handler succeeds. Undecodable messages are dropped,
// handler failures are requeued once and dropped on redelivery.
func (c *Client) ConsumeUserEvents(handler func(models.UserEvent) error) error {
	if c.channel == nil {
		return errors.New("RabbitMQ channel is not available for consumption")
	}

	msgs, err := c.channel.Consume(
		UserEventsQueue, // queue
		"",              // consumer tag
		false,           // auto-ack
		false,           // exclusive
		false,           // no-local
		false,           // no-wait
		nil,             // args
	)
	if err != nil {
		return fmt.Errorf("failed to register consumer: %w", err)
	}

	go func() {
		for msg := range msgs {
			processDelivery(msg, handler)
		}
		log.Info().Str("queue", UserEventsQueue).Msg("User event consumer stopped")
	}()
	return nil
}

// acknowledger is the subset of amqp.Delivery used to settle a message.
type acknowledger interface {
	Ack(multiple bool) error
	Nack(multiple, requeue bool) error
}

func processDelivery(msg amqp.Delivery, handler func(models.UserEvent) error) {
	settle(&msg, msg.Body, msg.Redelivered, handler)
}

func settle(ack acknowledger, body []byte, redelivered bool, handler func(models.UserEvent) error) {
	event, err := DecodeUserEvent(body)
	if err != nil {
		log.Warn().Err(err).Msg("Dropping malformed user event")
		if nackErr := ack.Nack(false, false); nackErr != nil {
			log.Error().Err(nackErr).Msg("Error nacking message")
		}
		return
	}

	if err := handler(event); err != nil {
		log.Error().Err(err).Str("event", string(event.Type)).Msg("Error processing user event")
		if nackErr := ack.Nack(false, !redelivered); nackErr != nil {
			log.Error().Err(nackErr).Msg("Error nacking message")
		}
		return
	}

	if ackErr := ack.Ack(false); ackErr != nil {
		log.Error().Err(ackErr).Msg("Error acking message")
	}
}
