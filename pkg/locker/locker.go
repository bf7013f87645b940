package locker

import (
	"context"
	"errors"
	"sync"
)

var (
	// ErrLockTimeout возвращается, если блокировку не удалось получить за отведенное время
	ErrLockTimeout = errors.New("locker: lock acquisition timed out")

	// ErrLockBackend возвращается при ошибках хранилища блокировок
	ErrLockBackend = errors.New("locker: backend error")
)

// UnlockFunc освобождает блокировку. Повторный вызов безопасен
type UnlockFunc func()

// Locker эксклюзивная блокировка по ключу ресурса
type Locker interface {
	Lock(ctx context.Context, key string) (UnlockFunc, error)
}

type keyEntry struct {
	ch   chan struct{}
	refs int
}

// KeyedMutex блокировка по ключу внутри одного процесса.
// Записи удаляются, когда на ключ никто не ссылается.
type KeyedMutex struct {
	mu   sync.Mutex
	keys map[string]*keyEntry
}

// NewKeyedMutex создает блокировку по ключам
func NewKeyedMutex() *KeyedMutex {
	return &KeyedMutex{keys: make(map[string]*keyEntry)}
}

// Lock ждет освобождения ключа или отмены контекста
func (k *KeyedMutex) Lock(ctx context.Context, key string) (UnlockFunc, error) {
	k.mu.Lock()
	entry, ok := k.keys[key]
	if !ok {
		entry = &keyEntry{ch: make(chan struct{}, 1)}
		k.keys[key] = entry
	}
	entry.refs++
	k.mu.Unlock()

	select {
	case entry.ch <- struct{}{}:
	case <-ctx.Done():
		k.release(key, entry)
		return nil, errors.Join(ErrLockTimeout, ctx.Err())
	}

	var once sync.Once
	return func() {
		once.Do(func() {
			<-entry.ch
			k.release(key, entry)
		})
	}, nil
}

func (k *KeyedMutex) release(key string, entry *keyEntry) {
	k.mu.Lock()
	defer k.mu.Unlock()

	entry.refs--
	if entry.refs == 0 {
		delete(k.keys, key)
	}
}

// Len возвращает число ключей, на которые сейчас кто-то ссылается
func (k *KeyedMutex) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()
	return len(k.keys)
}
