package rmq

import (
	"context"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/streadway/amqp"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"

	"arithma_tech/config"
	"arithma_tech/entity"
	"arithma_tech/pkg/logger"
	"arithma_tech/pkg/rabbitmq"
)

// Channel is the subset of *amqp.Channel the publisher uses.
type Channel interface {
	ExchangeDeclare(name, kind string, durable, autoDelete, internal, noWait bool, args amqp.Table) error
	QueueDeclare(name string, durable, autoDelete, exclusive, noWait bool, args amqp.Table) (amqp.Queue, error)
	QueueBind(name, key, exchange string, noWait bool, args amqp.Table) error
	Publish(exchange, key string, mandatory, immediate bool, msg amqp.Publishing) error
	Close() error
}

// EventPublisher forwards committed history changes to a rabbitmq exchange.
type EventPublisher struct {
	ch       Channel
	conn     *amqp.Connection
	exchange string
	l        logger.Interface
}

// NewEventPublisher dials the broker and declares the exchange with its audit queue.
func NewEventPublisher(cfg config.RMQ, l logger.Interface) (*EventPublisher, error) {
	conn, err := rabbitmq.NewRabbitMQConn(cfg)
	if err != nil {
		return nil, err
	}
	ch, err := conn.Channel()
	if err != nil {
		conn.Close()
		return nil, errors.Wrap(err, "amqp.Connection.Channel")
	}

	p := NewEventPublisherWithChannel(ch, cfg.Exchange, l)
	p.conn = conn

	if err := p.SetupExchangeAndQueue(auditQueue, auditBindingKey); err != nil {
		p.Close()
		return nil, err
	}
	return p, nil
}

func NewEventPublisherWithChannel(ch Channel, exchange string, l logger.Interface) *EventPublisher {
	return &EventPublisher{ch: ch, exchange: exchange, l: l}
}

// SetupExchangeAndQueue create exchange and queue
func (p *EventPublisher) SetupExchangeAndQueue(queueName, bindingKey string) error {
	p.l.Info("Declaring exchange: %s", p.exchange)
	err := p.ch.ExchangeDeclare(
		p.exchange,
		exchangeKind,
		exchangeDurable,
		exchangeAutoDelete,
		exchangeInternal,
		exchangeNoWait,
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "Error ch.ExchangeDeclare")
	}

	queue, err := p.ch.QueueDeclare(
		queueName,
		queueDurable,
		queueAutoDelete,
		queueExclusive,
		queueNoWait,
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "Error ch.QueueDeclare")
	}

	err = p.ch.QueueBind(
		queue.Name,
		bindingKey,
		p.exchange,
		queueNoWait,
		nil,
	)
	if err != nil {
		return errors.Wrap(err, "Error ch.QueueBind")
	}

	p.l.Info("Queue %s bound to exchange %s with key %s", queue.Name, p.exchange, bindingKey)
	return nil
}

// Publish sends ev as JSON with routing key history.<type>.
func (p *EventPublisher) Publish(ctx context.Context, ev entity.HistoryEvent) error {
	_, span := otel.Tracer(traceName).Start(ctx, "Publish")
	defer span.End()

	key := routingPrefix + string(ev.Type)
	span.SetAttributes(attribute.String("routing_key", key))

	body, err := json.Marshal(ev)
	if err != nil {
		return errors.Wrap(err, "json.Marshal")
	}

	if err := p.ch.Publish(
		p.exchange,
		key,
		publishMandatory,
		publishImmediate,
		amqp.Publishing{
			ContentType:  contentType,
			DeliveryMode: amqp.Persistent,
			MessageId:    uuid.New().String(),
			Timestamp:    time.Now(),
			Body:         body,
		},
	); err != nil {
		span.RecordError(err)
		return errors.Wrap(err, "ch.Publish")
	}

	p.l.Debug("Published %s to exchange %s", key, p.exchange)
	return nil
}

// HandleHistoryEvent is registered as a history subscriber. Failures are logged only.
func (p *EventPublisher) HandleHistoryEvent(ev entity.HistoryEvent) {
	if err := p.Publish(context.Background(), ev); err != nil {
		p.l.Error(err, "rmq - HandleHistoryEvent")
	}
}

// Close closes the channel and, when owned, the connection.
func (p *EventPublisher) Close() error {
	if err := p.ch.Close(); err != nil {
		p.l.Error(err, "rmq - Close - channel")
		return err
	}
	if p.conn != nil {
		if err := p.conn.Close(); err != nil {
			return errors.Wrap(err, "amqp.Connection.Close")
		}
	}
	return nil
}
