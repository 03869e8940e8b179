package ports

import (
	"context"
	"time"
)

// UnlockFunc releases a distributed lock.
type UnlockFunc func(ctx context.Context) error

// DistributedLocker coordinates access to a document across replicas.
type DistributedLocker interface {
	// Lock acquires the lock for key (e.g. a document ID). It blocks until the
	// lock is acquired or ctx is done. The returned UnlockFunc must be called
	// to release the lock; ttl bounds how long a crashed holder keeps it.
	Lock(ctx context.Context, key string, ttl time.Duration) (UnlockFunc, error)
}
