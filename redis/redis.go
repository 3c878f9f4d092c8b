package redis

import (
	"context"
	"fmt"

	"github.com/redis/go-redis/v9"
)

// New connects to redis and verifies the connection. The client is handed to
// the lock and event packages by the caller.
func New(addr string) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   0,
	})
	if _, err := client.Ping(context.Background()).Result(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	return client, nil
}
