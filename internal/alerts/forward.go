package alerts

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/go-redis/redis/v8"

	"github.com/sawpanic/cea/infra/breakers"
)

// Forwarder ships recorded alerts to an external consumer. The in-memory Log stays the
// source of truth; forwarding is best effort.
type Forwarder interface {
	Forward(ctx context.Context, alert Alert) error
}

// NopForwarder drops every alert.
type NopForwarder struct{}

func (NopForwarder) Forward(context.Context, Alert) error { return nil }

// RedisForwarder publishes alerts as JSON on a Redis pub/sub channel behind a circuit
// breaker, so an unreachable Redis costs one fast failure per request once tripped.
type RedisForwarder struct {
	client  *redis.Client
	channel string
	breaker *breakers.Breaker
}

// NewRedisForwarder wraps an existing client.
func NewRedisForwarder(client *redis.Client, channel string, breaker *breakers.Breaker) *RedisForwarder {
	return &RedisForwarder{client: client, channel: channel, breaker: breaker}
}

// Forward publishes alert. It returns the breaker error when the circuit is open.
func (f *RedisForwarder) Forward(ctx context.Context, alert Alert) error {
	payload, err := json.Marshal(alert)
	if err != nil {
		return fmt.Errorf("failed to encode alert: %w", err)
	}

	_, err = f.breaker.Execute(func() (any, error) {
		return f.client.Publish(ctx, f.channel, string(payload)).Result()
	})
	if err != nil {
		return fmt.Errorf("failed to publish alert to %s: %w", f.channel, err)
	}
	return nil
}

// Close releases the underlying client.
func (f *RedisForwarder) Close() error {
	return f.client.Close()
}
