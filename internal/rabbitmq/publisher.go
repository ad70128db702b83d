package rabbitmq

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	amqp "github.com/rabbitmq/amqp091-go"
)

const publishTimeout = 5 * time.Second

// Message is one JSON document published to the topic exchange.
type Message struct {
	ID   string
	Type string
	Body any
}

type Publisher interface {
	Publish(ctx context.Context, routingKey string, msg Message) error
	Close() error
}

type publisher struct {
	conn     *amqp.Connection
	channel  *amqp.Channel
	exchange string
	appID    string
	mu       sync.Mutex
}

// NewPublisher dials the broker and declares a durable topic exchange.
func NewPublisher(amqpURL, exchange, appID string) (Publisher, error) {
	conn, err := amqp.DialConfig(amqpURL, amqp.Config{
		Properties: amqp.Table{"connection_name": appID},
		Heartbeat:  10 * time.Second,
	})
	if err != nil {
		return nil, err
	}

	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, err
	}

	if err := ch.ExchangeDeclare(
		exchange,
		"topic",
		true,  // durable
		false, // auto-deleted
		false, // internal
		false, // no-wait
		nil,
	); err != nil {
		ch.Close()
		conn.Close()
		return nil, err
	}

	p := &publisher{conn: conn, channel: ch, exchange: exchange, appID: appID}
	go p.watch(ch.NotifyClose(make(chan *amqp.Error, 1)))
	return p, nil
}

// watch drops the channel once the broker closes it so later publishes fail
// fast with amqp.ErrClosed.
func (p *publisher) watch(closed <-chan *amqp.Error) {
	err, ok := <-closed
	if !ok {
		return
	}
	log.Printf("warning: RabbitMQ channel closed: %v", err)
	p.mu.Lock()
	p.channel = nil
	p.mu.Unlock()
}

func (p *publisher) Publish(ctx context.Context, routingKey string, msg Message) error {
	body, err := json.Marshal(msg.Body)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.channel == nil {
		return amqp.ErrClosed
	}

	ctx, cancel := context.WithTimeout(ctx, publishTimeout)
	defer cancel()

	return p.channel.PublishWithContext(ctx,
		p.exchange,
		routingKey,
		false, // mandatory
		false, // immediate
		amqp.Publishing{
			ContentType:  "application/json",
			MessageId:    msg.ID,
			Type:         msg.Type,
			AppId:        p.appID,
			Body:         body,
			Timestamp:    time.Now(),
			DeliveryMode: amqp.Persistent,
		},
	)
}

func (p *publisher) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.channel != nil {
		_ = p.channel.Close()
		p.channel = nil
	}
	if p.conn != nil {
		_ = p.conn.Close()
		p.conn = nil
	}
	return nil
}

type noopPublisher struct{}

// NewNoopPublisher returns a publisher that drops every message. It is used
// when no broker is configured or the broker is unreachable at startup.
func NewNoopPublisher() Publisher { return noopPublisher{} }

func (noopPublisher) Publish(_ context.Context, routingKey string, _ Message) error {
	log.Printf("warning: RabbitMQ not configured; skipping publish for %s", routingKey)
	return nil
}

func (noopPublisher) Close() error { return nil }
