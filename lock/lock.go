// Package lock serializes booking admission per provider with a short redis
// lease, so concurrent requests across processes queue up instead of racing
// into the ledger's conflict check.
package lock

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	leaseTTL      = 5 * time.Second
	retryInterval = 25 * time.Millisecond
)

// ProviderLock acquires a per-provider lease in redis. Each lease carries a
// random token so a slow holder can never release a successor's lease.
type ProviderLock struct {
	client *redis.Client
}

func NewProviderLock(client *redis.Client) *ProviderLock {
	return &ProviderLock{client: client}
}

// Acquire blocks until the provider's lease is held or ctx is done. The
// returned func releases the lease; it is safe to call exactly once.
func (l *ProviderLock) Acquire(ctx context.Context, providerID uint) (func(), error) {
	key := fmt.Sprintf("booking:lock:%d", providerID)
	token := uuid.NewString()

	for {
		ok, err := l.client.SetNX(ctx, key, token, leaseTTL).Result()
		if err != nil {
			return nil, fmt.Errorf("acquire booking lock: %w", err)
		}
		if ok {
			break
		}
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(retryInterval):
		}
	}

	release := func() {
		// Only delete the lease if it is still ours; an expired lease may
		// already belong to another request.
		ctx, cancel := context.WithTimeout(context.Background(), time.Second)
		defer cancel()
		current, err := l.client.Get(ctx, key).Result()
		if err != nil || current != token {
			return
		}
		l.client.Del(ctx, key)
	}
	return release, nil
}
