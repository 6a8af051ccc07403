package rabbit

//go:generate mockgen -source=client.go -destination=mocks/rabbit_mocks.go -package=mocks

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	amqp "github.com/rabbitmq/amqp091-go"
	"github.com/rs/zerolog"

	"confreg/internal/model"
)

const (
	routingKey     = "enrollment.changed"
	publishTimeout = 5 * time.Second
)

// Publisher queues a counter reconciliation for one session or activity.
type Publisher interface {
	PublishEnrollmentChanged(kind model.ParentKind, parentID int64) error
}

// Handler reconciles one decoded change. A returned error asks for a retry.
type Handler func(ctx context.Context, msg EnrollmentChanged) error

type Config struct {
	URL      string
	Exchange string
	Queue    string
	// ReconcileDelay holds messages on the delayed exchange so bursts of
	// enrollments on one parent settle before the counter is re-derived.
	ReconcileDelay time.Duration
}

// Client owns one connection and channel bound to the reconcile queue.
type Client struct {
	conn *amqp.Connection
	ch   *amqp.Channel
	cfg  Config
	log  *zerolog.Logger
}

func Dial(cfg Config, log *zerolog.Logger) (*Client, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, fmt.Errorf("dial rabbitmq: %w", err)
	}
	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("open rabbitmq channel: %w", err)
	}

	c := &Client{conn: conn, ch: ch, cfg: cfg, log: log}
	if err := c.declareTopology(); err != nil {
		c.Close()
		return nil, err
	}

	log.Info().
		Str("exchange", cfg.Exchange).
		Str("queue", cfg.Queue).
		Dur("reconcile_delay", cfg.ReconcileDelay).
		Msg("RabbitMQ initialized")
	return c, nil
}

// declareTopology binds the reconcile queue to a delayed-message exchange and
// limits each consumer to one unacked reconciliation.
func (c *Client) declareTopology() error {
	steps := []struct {
		name string
		run  func() error
	}{
		{"declare exchange", func() error {
			return c.ch.ExchangeDeclare(c.cfg.Exchange, "x-delayed-message", true, false, false, false,
				amqp.Table{"x-delayed-type": "direct"})
		}},
		{"declare queue", func() error {
			_, err := c.ch.QueueDeclare(c.cfg.Queue, true, false, false, false, nil)
			return err
		}},
		{"bind queue", func() error {
			return c.ch.QueueBind(c.cfg.Queue, routingKey, c.cfg.Exchange, false, nil)
		}},
		{"set prefetch", func() error {
			return c.ch.Qos(1, 0, false)
		}},
	}
	for _, step := range steps {
		if err := step.run(); err != nil {
			return fmt.Errorf("rabbitmq %s: %w", step.name, err)
		}
	}
	return nil
}

func (c *Client) Close() {
	if c.ch != nil {
		_ = c.ch.Close()
	}
	if c.conn != nil {
		_ = c.conn.Close()
	}
	c.log.Info().Msg("RabbitMQ connection closed")
}

func (c *Client) PublishEnrollmentChanged(kind model.ParentKind, parentID int64) error {
	body, err := json.Marshal(EnrollmentChanged{Kind: kind, ParentID: parentID})
	if err != nil {
		return fmt.Errorf("encode enrollment change: %w", err)
	}

	headers := amqp.Table{}
	if ms := c.cfg.ReconcileDelay.Milliseconds(); ms > 0 {
		headers["x-delay"] = int32(ms)
	}

	ctx, cancel := context.WithTimeout(context.Background(), publishTimeout)
	defer cancel()

	err = c.ch.PublishWithContext(ctx, c.cfg.Exchange, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		MessageId:    uuid.NewString(),
		Timestamp:    time.Now(),
		Headers:      headers,
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("publish %s %d: %w", kind, parentID, err)
	}
	return nil
}

// Consume feeds decoded changes to h until ctx is cancelled or the channel
// closes.
func (c *Client) Consume(ctx context.Context, h Handler) error {
	deliveries, err := c.ch.ConsumeWithContext(ctx, c.cfg.Queue, "", false, false, false, false, nil)
	if err != nil {
		return fmt.Errorf("consume %s: %w", c.cfg.Queue, err)
	}

	go func() {
		for d := range deliveries {
			settle(ctx, c.log, d, h)
		}
	}()
	c.log.Info().Str("queue", c.cfg.Queue).Msg("consuming enrollment changes")
	return nil
}

type settlement int

const (
	settleAck settlement = iota
	settleRetry
	settleDrop
)

// decide runs h on one delivery body. Malformed messages are dropped at once.
// A failed reconciliation is retried once and then dropped; the next change
// on the same parent re-derives the counter anyway.
func decide(ctx context.Context, body []byte, redelivered bool, h Handler) (settlement, error) {
	msg, err := decodeEnrollmentChanged(body)
	if err != nil {
		return settleDrop, err
	}
	if err := h(ctx, msg); err != nil {
		if redelivered {
			return settleDrop, err
		}
		return settleRetry, err
	}
	return settleAck, nil
}

func settle(ctx context.Context, log *zerolog.Logger, d amqp.Delivery, h Handler) {
	action, err := decide(ctx, d.Body, d.Redelivered, h)

	var ackErr error
	switch action {
	case settleAck:
		ackErr = d.Ack(false)
	case settleRetry:
		log.Warn().Err(err).Str("message_id", d.MessageId).Msg("reconciliation failed, requeueing")
		ackErr = d.Nack(false, true)
	case settleDrop:
		event := log.Error()
		if errors.Is(err, ErrMalformedMessage) {
			event = log.Warn()
		}
		event.Err(err).Str("message_id", d.MessageId).Bool("redelivered", d.Redelivered).Msg("dropping enrollment change")
		ackErr = d.Nack(false, false)
	}
	if ackErr != nil {
		log.Error().Err(ackErr).Str("message_id", d.MessageId).Msg("failed to settle delivery")
	}
}
