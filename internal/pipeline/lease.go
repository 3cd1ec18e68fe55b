package pipeline

import (
	"context"
	"sync"
	"sync/atomic"

	"golang.org/x/sync/semaphore"
)

// Lease grants exclusive permission to run the pipeline
type Lease interface {
	// TryAcquire takes the lease without waiting. It returns ErrConcurrencyRejected
	// when the lease is held. The returned release func is safe to call more than once.
	TryAcquire(ctx context.Context) (release func(), err error)
	// Busy reports whether the lease is currently held
	Busy(ctx context.Context) (bool, error)
}

// LocalLease is a single-slot lease for one process
type LocalLease struct {
	sem  *semaphore.Weighted
	held atomic.Bool
}

// NewLocalLease returns an unheld local lease
func NewLocalLease() *LocalLease {
	return &LocalLease{sem: semaphore.NewWeighted(1)}
}

// TryAcquire implements Lease
func (l *LocalLease) TryAcquire(_ context.Context) (func(), error) {
	if !l.sem.TryAcquire(1) {
		return nil, ErrConcurrencyRejected
	}
	l.held.Store(true)

	var once sync.Once
	return func() {
		once.Do(func() {
			l.held.Store(false)
			l.sem.Release(1)
		})
	}, nil
}

// Busy implements Lease
func (l *LocalLease) Busy(_ context.Context) (bool, error) {
	return l.held.Load(), nil
}
