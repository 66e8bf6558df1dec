package cache

import (
	"context"
	"sync"
	"time"
)

// Noop never stores anything; every read is a miss.
type Noop struct{}

func (Noop) GetJSON(ctx context.Context, key string, dest interface{}) (bool, error) {
	return false, nil
}

func (Noop) SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	return nil
}

func (Noop) Delete(ctx context.Context, keys ...string) error {
	return nil
}

// LocalLocker serializes holders of the same key within one process.
type LocalLocker struct {
	mu   sync.Mutex
	held map[string]time.Time
}

func NewLocalLocker() *LocalLocker {
	return &LocalLocker{held: make(map[string]time.Time)}
}

func (l *LocalLocker) Obtain(ctx context.Context, key string, ttl time.Duration) (Unlock, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	now := time.Now()
	if expires, ok := l.held[key]; ok && now.Before(expires) {
		return nil, ErrLockNotObtained
	}
	expires := now.Add(ttl)
	l.held[key] = expires

	return func(context.Context) error {
		l.mu.Lock()
		defer l.mu.Unlock()
		// Only drop our own entry; it may have expired and been re-taken.
		if l.held[key].Equal(expires) {
			delete(l.held, key)
		}
		return nil
	}, nil
}
