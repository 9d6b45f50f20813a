package broker

import (
	"context"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/aws/aws-sdk-go/aws"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"listqueue/config"
	"listqueue/logging"
)

func TestIsFifo(t *testing.T) {
	tests := []struct {
		url  string
		want bool
	}{
		{"https://sqs.eu-west-1.amazonaws.com/123/items.fifo", true},
		{"https://sqs.eu-west-1.amazonaws.com/123/items", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := isFifo(tt.url); got != tt.want {
			t.Errorf("isFifo(%q) = %v, want %v", tt.url, got, tt.want)
		}
	}
}

func TestSQSBroker_SendInput(t *testing.T) {
	fifo := &SQSBroker{queueUrl: "https://sqs.eu-west-1.amazonaws.com/123/items.fifo", fifo: true}
	first, second := fifo.sendInput(`{"action":"List"}`), fifo.sendInput(`{"action":"List"}`)

	if aws.StringValue(first.MessageGroupId) != "listqueue" {
		t.Errorf("Expected group listqueue, got %q", aws.StringValue(first.MessageGroupId))
	}
	id := aws.StringValue(first.MessageDeduplicationId)
	if _, err := uuid.Parse(id); err != nil {
		t.Errorf("Expected uuid dedup id, got %q: %v", id, err)
	}
	if id == aws.StringValue(second.MessageDeduplicationId) {
		t.Error("Expected a fresh dedup id for every send")
	}

	standard := &SQSBroker{queueUrl: "https://sqs.eu-west-1.amazonaws.com/123/items"}
	in := standard.sendInput("body")
	if in.MessageGroupId != nil || in.MessageDeduplicationId != nil {
		t.Error("Expected no FIFO attributes on a standard queue")
	}
	if aws.StringValue(in.MessageBody) != "body" || aws.StringValue(in.QueueUrl) != standard.queueUrl {
		t.Errorf("Unexpected send input: %v", in)
	}
}

func TestNewSQS(t *testing.T) {
	if _, err := NewSQS(nil, 20); err == nil {
		t.Error("Expected error for nil aws config")
	}

	_, err := NewSQS(&config.AWSsqsConfig{QueueUrl: "u", Region: "eu-west-1"}, 20)
	if err == nil || !strings.Contains(err.Error(), "credentials") {
		t.Errorf("Expected credentials error for empty keys, got: %v", err)
	}

	b, err := NewSQS(&config.AWSsqsConfig{
		QueueUrl:     "http://localhost:4566/000000000000/items.fifo",
		Region:       "eu-west-1",
		Endpoint:     "http://localhost:4566",
		ClientId:     "id",
		ClientSecret: "secret",
	}, 5)
	if err != nil {
		t.Fatalf("NewSQS failed: %v", err)
	}
	if !b.fifo || b.waitTime != 5 {
		t.Errorf("Expected fifo broker with wait 5, got fifo=%v wait=%d", b.fifo, b.waitTime)
	}
}

func TestNew_UnsupportedBroker(t *testing.T) {
	_, err := New(context.Background(), &config.Config{Broker: "kafka"}, logging.Discard())
	if err == nil || !strings.Contains(err.Error(), "unsupported broker") {
		t.Errorf("Expected unsupported broker error, got: %v", err)
	}
}

func TestNewRedis_NilConfig(t *testing.T) {
	if _, err := NewRedis(context.Background(), nil, logging.Discard()); err == nil {
		t.Error("Expected error for nil redis config")
	}
}

func TestRedisBroker_Unreachable(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		MaxRetries:  -1,
		DialTimeout: 200 * time.Millisecond,
	})
	b := NewRedisWithClient(client, "items", 100*time.Millisecond)
	defer b.Close()

	if b.processing != "items:processing" {
		t.Errorf("Expected processing list items:processing, got %q", b.processing)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	msgs, err := b.Receive(ctx)
	if err == nil {
		t.Fatalf("Expected dial error, got %d messages", len(msgs))
	}
	if err := b.Send(ctx, "{}"); err == nil {
		t.Error("Expected dial error on Send")
	}
}

func newTestRedis(t *testing.T) (*RedisBroker, *miniredis.Miniredis) {
	t.Helper()
	s := miniredis.RunT(t)

	b, err := NewRedis(context.Background(), &config.RedisConfig{
		Addr:         s.Addr(),
		Key:          "items",
		MaxRetries:   1,
		BlockSeconds: 1,
	}, logging.Discard())
	if err != nil {
		t.Fatalf("NewRedis failed: %v", err)
	}
	t.Cleanup(func() { b.Close() })
	return b, s
}

func TestRedisBroker_ReliableQueue(t *testing.T) {
	b, s := newTestRedis(t)
	ctx := context.Background()

	for _, body := range []string{"first", "second"} {
		if err := b.Send(ctx, body); err != nil {
			t.Fatalf("Send(%q) failed: %v", body, err)
		}
	}
	if got, _ := s.List("items"); len(got) != 2 || got[0] != "first" {
		t.Fatalf("Expected [first second] on the main list, got %v", got)
	}

	msgs, err := b.Receive(ctx)
	if err != nil {
		t.Fatalf("Receive failed: %v", err)
	}
	if len(msgs) != 1 || msgs[0].Body != "first" || msgs[0].ID == "" {
		t.Fatalf("Expected the first message, got %+v", msgs)
	}

	processing, err := s.List("items:processing")
	if err != nil || len(processing) != 1 || processing[0] != "first" {
		t.Fatalf("Expected [first] in processing, got %v (%v)", processing, err)
	}
	if got, _ := s.List("items"); len(got) != 1 || got[0] != "second" {
		t.Errorf("Expected [second] left on the main list, got %v", got)
	}

	if err := b.Ack(ctx, msgs[0]); err != nil {
		t.Fatalf("Ack failed: %v", err)
	}
	if n, err := b.client.LLen(ctx, "items:processing").Result(); err != nil || n != 0 {
		t.Errorf("Expected empty processing list after ack, got %d (%v)", n, err)
	}
}

func TestRedisBroker_UnackedStaysInProcessing(t *testing.T) {
	b, s := newTestRedis(t)
	ctx := context.Background()

	if err := b.Send(ctx, "job"); err != nil {
		t.Fatalf("Send failed: %v", err)
	}
	if _, err := b.Receive(ctx); err != nil {
		t.Fatalf("Receive failed: %v", err)
	}

	if got, _ := s.List("items:processing"); len(got) != 1 || got[0] != "job" {
		t.Errorf("Expected unacked job kept in processing, got %v", got)
	}
	if n, _ := b.client.LLen(ctx, "items").Result(); n != 0 {
		t.Errorf("Expected main list drained, got %d", n)
	}
}

func TestRedisBroker_ReceiveTimeout(t *testing.T) {
	b, _ := newTestRedis(t)

	start := time.Now()
	msgs, err := b.Receive(context.Background())
	if err != nil {
		t.Fatalf("Expected no error on timeout, got: %v", err)
	}
	if msgs != nil {
		t.Errorf("Expected no messages, got %+v", msgs)
	}
	if elapsed := time.Since(start); elapsed < 500*time.Millisecond {
		t.Errorf("Expected Receive to block, returned after %v", elapsed)
	}
}
