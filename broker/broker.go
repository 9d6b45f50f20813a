// Package broker carries queue commands between clients and the server.
package broker

//go:generate mockgen -destination=mocks/broker.go -package=mocks listqueue/broker Broker

import (
	"context"
	"fmt"

	"github.com/inconshreveable/log15"

	"listqueue/config"
)

type Message struct {
	ID      string
	Body    string
	Receipt string
}

type Broker interface {
	// Receive waits for the next batch of messages. An empty batch with a
	// nil error means the wait timed out.
	Receive(ctx context.Context) ([]Message, error)
	Ack(ctx context.Context, msg Message) error
	Send(ctx context.Context, body string) error
}

func New(ctx context.Context, cfg *config.Config, logger log15.Logger) (Broker, error) {
	switch cfg.Broker {
	case config.BrokerSQS, "":
		b, err := NewSQS(cfg.Aws, cfg.ServerWaitTimeSeconds)
		if err != nil {
			return nil, err
		}
		return b, nil
	case config.BrokerRedis:
		b, err := NewRedis(ctx, cfg.Redis, logger)
		if err != nil {
			return nil, err
		}
		return b, nil
	default:
		return nil, fmt.Errorf("unsupported broker: %s", cfg.Broker)
	}
}
