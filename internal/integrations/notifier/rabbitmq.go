package notifier

import (
	"context"
	"fmt"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

// DefaultExchange topic exchange для событий записей
const DefaultExchange = "medical.appointments"

// RabbitMQPublisher публикует события в RabbitMQ
type RabbitMQPublisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	log      Logger
	mu       sync.Mutex
}

// NewRabbitMQPublisher подключается к брокеру и объявляет topic exchange
func NewRabbitMQPublisher(url, exchange string, log Logger) (*RabbitMQPublisher, error) {
	if exchange == "" {
		exchange = DefaultExchange
	}

	conn, err := amqp.Dial(url)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnect, err)
	}

	ch, err := conn.Channel()
	if err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("%w: open channel: %w", ErrConnect, err)
	}

	err = ch.ExchangeDeclare(
		exchange, // name
		"topic",  // type
		true,     // durable
		false,    // auto-deleted
		false,    // internal
		false,    // no-wait
		nil,      // arguments
	)
	if err != nil {
		_ = ch.Close()
		_ = conn.Close()
		return nil, fmt.Errorf("%w: declare exchange %s: %w", ErrConnect, exchange, err)
	}

	log.Info("Notifier: RabbitMQ publisher connected, exchange=%s", exchange)

	return &RabbitMQPublisher{
		conn:     conn,
		channel:  ch,
		exchange: exchange,
		log:      log,
	}, nil
}

// Publish отправляет сообщение в exchange с указанным routing key
func (p *RabbitMQPublisher) Publish(ctx context.Context, routingKey string, payload []byte) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	err := p.channel.PublishWithContext(ctx,
		p.exchange, // exchange
		routingKey, // routing key
		false,      // mandatory
		false,      // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			DeliveryMode: amqp.Persistent,
			Timestamp:    time.Now(),
			Body:         payload,
		},
	)
	if err != nil {
		return fmt.Errorf("%w: routing_key=%s: %w", ErrPublish, routingKey, err)
	}

	return nil
}

// Close закрывает канал и соединение
func (p *RabbitMQPublisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		if err := p.channel.Close(); err != nil {
			p.log.Warn("Notifier: error closing channel: %v", err)
		}
	}

	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return err
		}
	}

	p.log.Info("Notifier: RabbitMQ publisher closed")
	return nil
}

// NoopPublisher ничего не отправляет, только пишет в лог
// Используется при notifications.enabled = false
type NoopPublisher struct {
	log Logger
}

// NewNoopPublisher создает publisher, который ничего не делает
func NewNoopPublisher(log Logger) *NoopPublisher {
	return &NoopPublisher{log: log}
}

// Publish пишет событие в лог
func (p *NoopPublisher) Publish(_ context.Context, routingKey string, payload []byte) error {
	p.log.Info("Notifier: noop publish routing_key=%s, size=%d", routingKey, len(payload))
	return nil
}

// Close ничего не делает
func (p *NoopPublisher) Close() error {
	return nil
}
