package locker

import (
	"context"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestRedisLocker(t *testing.T) (*RedisLocker, *miniredis.Miniredis) {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewRedisLocker(client, RedisOptions{
		KeyPrefix:     "test:",
		TTL:           time.Second,
		RetryInterval: 5 * time.Millisecond,
	}), mr
}

func TestRedisLocker_LockAndRelease(t *testing.T) {
	l, mr := newTestRedisLocker(t)

	unlock, err := l.Lock(context.Background(), "stay:42")
	require.NoError(t, err)
	assert.True(t, mr.Exists("test:stay:42"))

	unlock()
	assert.False(t, mr.Exists("test:stay:42"))
}

func TestRedisLocker_SecondLockWaitsForRelease(t *testing.T) {
	l, _ := newTestRedisLocker(t)

	unlock, err := l.Lock(context.Background(), "stay:1")
	require.NoError(t, err)

	acquired := make(chan struct{})
	go func() {
		second, err := l.Lock(context.Background(), "stay:1")
		if err == nil {
			second()
		}
		close(acquired)
	}()

	select {
	case <-acquired:
		t.Fatal("second lock acquired while first one is held")
	case <-time.After(50 * time.Millisecond):
	}

	unlock()

	select {
	case <-acquired:
	case <-time.After(time.Second):
		t.Fatal("second lock was not acquired after release")
	}
}

func TestRedisLocker_Timeout(t *testing.T) {
	l, _ := newTestRedisLocker(t)

	unlock, err := l.Lock(context.Background(), "visit:3")
	require.NoError(t, err)
	defer unlock()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = l.Lock(ctx, "visit:3")
	assert.ErrorIs(t, err, ErrLockTimeout)
}

func TestRedisLocker_ForeignTokenIsNotReleased(t *testing.T) {
	l, mr := newTestRedisLocker(t)

	unlock, err := l.Lock(context.Background(), "stay:5")
	require.NoError(t, err)

	// Блокировка истекла и её захватил другой владелец
	mr.FastForward(2 * time.Second)
	require.NoError(t, mr.Set("test:stay:5", "someone-else"))

	unlock()

	value, err := mr.Get("test:stay:5")
	require.NoError(t, err)
	assert.Equal(t, "someone-else", value)
}
