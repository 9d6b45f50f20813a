package broker

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/inconshreveable/log15"
	"github.com/redis/go-redis/v9"

	"listqueue/config"
)

// RedisBroker is a reliable queue on two Redis lists: received messages are
// moved to a processing list and removed from it on ack.
type RedisBroker struct {
	client     *redis.Client
	key        string
	processing string
	block      time.Duration
}

func ConnectRedis(ctx context.Context, conf *config.RedisConfig, logger log15.Logger) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:            conf.Addr,
		Password:        conf.Password,
		DB:              conf.DB,
		MaxRetries:      3,
		MinRetryBackoff: 8 * time.Millisecond,
		MaxRetryBackoff: 512 * time.Millisecond,
		DialTimeout:     5 * time.Second,
		ReadTimeout:     time.Duration(conf.BlockSeconds+3) * time.Second, // outlives the BLMOVE block
		WriteTimeout:    3 * time.Second,
	})

	attempts := max(conf.MaxRetries, 1)

	var err error
	for i := range attempts {
		if i > 0 {
			backoff := time.Duration(1<<uint(i)) * time.Second
			logger.Info("Waiting before Redis retry", "backoff", backoff)
			select {
			case <-ctx.Done():
				client.Close()
				return nil, ctx.Err()
			case <-time.After(backoff):
			}
		}

		logger.Info("Connecting to Redis", "attempt", i+1, "max_retries", attempts)

		err = client.Ping(ctx).Err()
		if err == nil {
			logger.Info("Redis connected", "attempts_needed", i+1)
			return client, nil
		}

		logger.Warn("Redis ping failed", "attempt", i+1, "error", err)
	}

	client.Close()
	return nil, fmt.Errorf("failed to connect to Redis after %d attempts: %w", attempts, err)
}

func NewRedis(ctx context.Context, conf *config.RedisConfig, logger log15.Logger) (*RedisBroker, error) {
	if conf == nil {
		return nil, fmt.Errorf("redis config required")
	}

	client, err := ConnectRedis(ctx, conf, logger)
	if err != nil {
		return nil, err
	}
	return NewRedisWithClient(client, conf.Key, time.Duration(conf.BlockSeconds)*time.Second), nil
}

func NewRedisWithClient(client *redis.Client, key string, block time.Duration) *RedisBroker {
	return &RedisBroker{
		client:     client,
		key:        key,
		processing: key + ":processing",
		block:      block,
	}
}

func (b *RedisBroker) Receive(ctx context.Context) ([]Message, error) {
	body, err := b.client.BLMove(ctx, b.key, b.processing, "LEFT", "RIGHT", b.block).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			// timeout, no message
			return nil, nil
		}
		return nil, err
	}

	return []Message{{
		ID:      uuid.NewString(),
		Body:    body,
		Receipt: body,
	}}, nil
}

func (b *RedisBroker) Ack(ctx context.Context, msg Message) error {
	return b.client.LRem(ctx, b.processing, 1, msg.Receipt).Err()
}

func (b *RedisBroker) Send(ctx context.Context, body string) error {
	return b.client.RPush(ctx, b.key, body).Err()
}

func (b *RedisBroker) Close() error {
	return b.client.Close()
}
