package scheduler

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const leaseReleaseScript = `
if redis.call("GET", KEYS[1]) == ARGV[1] then
  return redis.call("DEL", KEYS[1])
end
return 0
`

// Lease is a redis-backed mutual exclusion guard so that two scheduler
// instances never run a reconciliation pass at the same time. The TTL
// bounds how long a crashed holder can block the next pass.
type Lease struct {
	client *redis.Client
	script *redis.Script
	key    string
	ttl    time.Duration
}

func NewLease(client *redis.Client, key string, ttl time.Duration) *Lease {
	if client == nil {
		return nil
	}
	return &Lease{
		client: client,
		script: redis.NewScript(leaseReleaseScript),
		key:    key,
		ttl:    ttl,
	}
}

// Acquire tries to take the lease. It returns the holder token and
// whether the lease was obtained.
func (l *Lease) Acquire(ctx context.Context) (string, bool, error) {
	if l == nil || l.client == nil {
		// No redis configured: single-instance deployment, nothing to
		// coordinate with.
		return "", true, nil
	}
	if l.key == "" {
		return "", false, errors.New("lease key is empty")
	}
	if l.ttl <= 0 {
		return "", false, errors.New("lease ttl must be positive")
	}

	token := uuid.NewString()
	ok, err := l.client.SetNX(ctx, l.key, token, l.ttl).Result()
	if err != nil {
		return "", false, err
	}
	return token, ok, nil
}

// Release gives the lease back, but only when the token still matches
// so an expired holder cannot delete its successor's lease.
func (l *Lease) Release(ctx context.Context, token string) error {
	if l == nil || l.client == nil {
		return nil
	}
	if token == "" {
		return nil
	}
	return l.script.Run(ctx, l.client, []string{l.key}, token).Err()
}
