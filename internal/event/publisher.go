package event

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"

	"actuarial-data-service/internal/config"
)

const (
	exchangeName = "actuarial.datasets"
	routingKey   = "dataset.generated"
)

// DatasetGeneratedEvent announces a completed generation run to downstream
// consumers (loaders, query demos).
type DatasetGeneratedEvent struct {
	RunID       string    `json:"run_id"`
	Seed        uint64    `json:"seed"`
	PolicyCount int       `json:"policy_count"`
	ClaimCount  int       `json:"claim_count"`
	CohortCount int       `json:"cohort_count"`
	OutputDir   string    `json:"output_dir"`
	GeneratedAt time.Time `json:"generated_at"`
}

// Publisher holds the RabbitMQ connection and channel.
type Publisher struct {
	connection *amqp.Connection
	channel    *amqp.Channel
}

// NewPublisher connects to RabbitMQ and declares the dataset exchange.
func NewPublisher(cfg config.RabbitMQConfig) (*Publisher, error) {
	connStr := fmt.Sprintf("amqp://%s:%s@%s:%s/",
		cfg.Username,
		cfg.Password,
		cfg.Host,
		cfg.Port,
	)

	conn, err := amqp.Dial(connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to connect to RabbitMQ: %w", err)
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("failed to open channel: %w", err)
	}

	if err := ch.ExchangeDeclare(exchangeName, "topic", true, false, false, false, nil); err != nil {
		ch.Close()
		conn.Close()
		return nil, fmt.Errorf("failed to declare exchange: %w", err)
	}

	slog.Info("connected to RabbitMQ", "host", cfg.Host, "port", cfg.Port, "exchange", exchangeName)
	return &Publisher{connection: conn, channel: ch}, nil
}

// PublishDatasetGenerated publishes the completion event.
func (p *Publisher) PublishDatasetGenerated(ctx context.Context, event DatasetGeneratedEvent) error {
	body, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("failed to encode event: %w", err)
	}

	err = p.channel.PublishWithContext(ctx, exchangeName, routingKey, false, false, amqp.Publishing{
		ContentType:  "application/json",
		DeliveryMode: amqp.Persistent,
		Timestamp:    time.Now().UTC(),
		Body:         body,
	})
	if err != nil {
		return fmt.Errorf("failed to publish dataset event: %w", err)
	}

	slog.Info("published dataset event", "routing_key", routingKey, "run_id", event.RunID)
	return nil
}

// Close closes the RabbitMQ channel and connection.
func (p *Publisher) Close() error {
	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			slog.Error("failed to close RabbitMQ channel", "error", err)
		}
	}
	if p.connection != nil {
		if err := p.connection.Close(); err != nil {
			slog.Error("failed to close RabbitMQ connection", "error", err)
			return err
		}
	}
	return nil
}
