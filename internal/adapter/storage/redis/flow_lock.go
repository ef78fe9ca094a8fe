package redis

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"cpi-resender/internal/core/ports"
	"cpi-resender/pkg/apperror"

	"github.com/google/uuid"
	goredis "github.com/redis/go-redis/v9"
)

const unlockScript = "if redis.call('get', KEYS[1]) == ARGV[1] then return redis.call('del', KEYS[1]) else return 0 end"

// errLockLost is returned by a release whose lock expired or was taken over.
var errLockLost = errors.New("lock expired or is held by another owner")

// FlowLocker implements ports.FlowLocker with SET NX PX and a
// compare-and-delete release.
type FlowLocker struct {
	client  *goredis.Client
	prefix  string
	wait    time.Duration
	pollMax time.Duration
}

// NewFlowLocker creates a locker that waits up to wait for a held lock.
func NewFlowLocker(client *goredis.Client, wait time.Duration) *FlowLocker {
	return &FlowLocker{
		client:  client,
		prefix:  "lock:",
		wait:    wait,
		pollMax: 100 * time.Millisecond,
	}
}

// Acquire blocks until the lock is taken, ctx ends or the wait elapses.
func (l *FlowLocker) Acquire(ctx context.Context, key string, ttl time.Duration) (ports.ReleaseFunc, error) {
	redisKey := l.prefix + key
	owner := uuid.NewString()
	deadline := time.Now().Add(l.wait)

	for {
		ok, err := l.client.SetNX(ctx, redisKey, owner, ttl).Result()
		if err != nil {
			return nil, fmt.Errorf("redis lock acquire: %w", err)
		}
		if ok {
			return l.release(redisKey, owner), nil
		}
		if !time.Now().Before(deadline) {
			return nil, apperror.ErrLockTimeout(fmt.Errorf("lock %s is already held", key))
		}

		pause := time.Duration(rand.Int63n(int64(l.pollMax))) + time.Millisecond
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(pause):
		}
	}
}

func (l *FlowLocker) release(redisKey, owner string) ports.ReleaseFunc {
	return func(ctx context.Context) error {
		res, err := l.client.Eval(ctx, unlockScript, []string{redisKey}, owner).Int64()
		if err != nil {
			return fmt.Errorf("redis lock release: %w", err)
		}
		if res == 0 {
			return fmt.Errorf("redis lock release %s: %w", redisKey, errLockLost)
		}
		return nil
	}
}
