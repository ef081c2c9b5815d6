package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/rabbitmq/amqp091-go"
)

// AMQPPublisher publishes events to a durable topic exchange. The routing
// key is "<prefix>.<event type>", e.g. "ledger.contribution.created".
type AMQPPublisher struct {
	conn          *amqp091.Connection
	channel       *amqp091.Channel
	exchangeName  string
	routingPrefix string
}

// NewAMQPPublisher dials url and declares the exchange.
func NewAMQPPublisher(url, exchangeName, routingPrefix string) (*AMQPPublisher, error) {
	conn, err := amqp091.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("dial AMQP: %w", err)
	}

	channel, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("open channel: %w", err)
	}

	p := &AMQPPublisher{
		conn:          conn,
		channel:       channel,
		exchangeName:  exchangeName,
		routingPrefix: routingPrefix,
	}

	err = channel.ExchangeDeclare(
		exchangeName, // name
		"topic",      // type
		true,         // durable
		false,        // auto-deleted
		false,        // internal
		false,        // no-wait
		nil,          // arguments
	)
	if err != nil {
		p.Close()
		return nil, fmt.Errorf("declare exchange: %w", err)
	}

	return p, nil
}

// RoutingKey returns the key an event of type t is published under.
func RoutingKey(prefix string, t Type) string {
	if prefix == "" {
		return string(t)
	}
	return prefix + "." + string(t)
}

// Publish implements Publisher.
func (p *AMQPPublisher) Publish(ctx context.Context, e Event) error {
	body, err := e.ToJSON()
	if err != nil {
		return fmt.Errorf("marshal event: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	key := RoutingKey(p.routingPrefix, e.Type)
	err = p.channel.PublishWithContext(
		ctx,
		p.exchangeName, // exchange
		key,            // routing key
		false,          // mandatory
		false,          // immediate
		amqp091.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp091.Persistent,
			MessageId:    e.EntityID,
			Type:         string(e.Type),
			Timestamp:    e.OccurredAt,
			Body:         body,
		},
	)
	if err != nil {
		return fmt.Errorf("publish event: %w", err)
	}

	slog.DebugContext(ctx, "Published ledger event",
		"type", e.Type,
		"entity_id", e.EntityID,
		"exchange", p.exchangeName,
		"routing_key", key,
	)
	return nil
}

// Close closes the channel and connection.
func (p *AMQPPublisher) Close() error {
	if p.channel != nil {
		p.channel.Close()
	}
	if p.conn != nil {
		return p.conn.Close()
	}
	return nil
}
