package rabbitmq

import (
	"github.com/pkg/errors"
	"github.com/streadway/amqp"

	"arithma_tech/config"
)

// NewRabbitMQConn dials the broker named by cfg.
func NewRabbitMQConn(cfg config.RMQ) (*amqp.Connection, error) {
	conn, err := amqp.Dial(cfg.URL)
	if err != nil {
		return nil, errors.Wrap(err, "amqp.Dial")
	}
	return conn, nil
}
