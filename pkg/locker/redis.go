package locker

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	defaultLockTTL       = 10 * time.Second
	defaultRetryInterval = 25 * time.Millisecond
	defaultKeyPrefix     = "estate-booking:lock:"
)

// Снимаем ключ только если он всё ещё принадлежит нам
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0
`)

// RedisOptions параметры распределённой блокировки
type RedisOptions struct {
	KeyPrefix     string
	TTL           time.Duration
	RetryInterval time.Duration
}

// RedisLocker блокировка по ключу для нескольких экземпляров сервиса (SET NX PX + токен владельца)
type RedisLocker struct {
	client        redis.UniversalClient
	prefix        string
	ttl           time.Duration
	retryInterval time.Duration
}

// NewRedisLocker создает распределённую блокировку
func NewRedisLocker(client redis.UniversalClient, opts RedisOptions) *RedisLocker {
	l := &RedisLocker{
		client:        client,
		prefix:        opts.KeyPrefix,
		ttl:           opts.TTL,
		retryInterval: opts.RetryInterval,
	}
	if l.prefix == "" {
		l.prefix = defaultKeyPrefix
	}
	if l.ttl <= 0 {
		l.ttl = defaultLockTTL
	}
	if l.retryInterval <= 0 {
		l.retryInterval = defaultRetryInterval
	}
	return l
}

// Lock повторяет SET NX, пока ключ не освободится или не истечет контекст.
// TTL ограничивает время жизни блокировки, если процесс-владелец упал.
func (l *RedisLocker) Lock(ctx context.Context, key string) (UnlockFunc, error) {
	redisKey := l.prefix + key
	token := uuid.NewString()

	ticker := time.NewTicker(l.retryInterval)
	defer ticker.Stop()

	for {
		ok, err := l.client.SetNX(ctx, redisKey, token, l.ttl).Result()
		if err != nil {
			if ctx.Err() != nil {
				return nil, fmt.Errorf("%w: %v", ErrLockTimeout, ctx.Err())
			}
			return nil, fmt.Errorf("%w: SetNX %s: %v", ErrLockBackend, redisKey, err)
		}
		if ok {
			break
		}

		select {
		case <-ctx.Done():
			return nil, fmt.Errorf("%w: %s: %v", ErrLockTimeout, redisKey, ctx.Err())
		case <-ticker.C:
		}
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			// Контекст запроса мог быть уже отменен, снимаем блокировку независимо от него
			releaseCtx, cancel := context.WithTimeout(context.Background(), l.ttl)
			defer cancel()
			_ = releaseScript.Run(releaseCtx, l.client, []string{redisKey}, token).Err()
		})
	}, nil
}
