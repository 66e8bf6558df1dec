// Package cache holds the Redis-backed read cache and distributed lock used by
// the payroll service, plus in-process fallbacks for when Redis is disabled.
package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/cmlabs-hris/hris-payroll-go/internal/pkg/apperror"
)

// ErrLockNotObtained is returned when another holder owns the lock.
var ErrLockNotObtained = fmt.Errorf("operation already running elsewhere: %w", apperror.ErrConflict)

type Cache interface {
	// GetJSON decodes the value at key into dest. found is false on a miss.
	GetJSON(ctx context.Context, key string, dest interface{}) (found bool, err error)
	SetJSON(ctx context.Context, key string, value interface{}, ttl time.Duration) error
	Delete(ctx context.Context, keys ...string) error
}

// Unlock releases a lock obtained from a Locker.
type Unlock func(ctx context.Context) error

type Locker interface {
	// Obtain takes key for ttl without waiting; ErrLockNotObtained when it is held.
	Obtain(ctx context.Context, key string, ttl time.Duration) (Unlock, error)
}

// Key joins parts into a namespaced cache key.
func Key(parts ...string) string {
	key := "hris-payroll"
	for _, p := range parts {
		key += ":" + p
	}
	return key
}
