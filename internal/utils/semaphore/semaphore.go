package semaphore

import (
	"context"
	"time"

	"github.com/talx-hub/salon-bonus/internal/serviceerrs"
)

// Semaphore bounds the number of concurrently admitted operations.
type Semaphore struct {
	slots chan struct{}
}

func New(capacity uint64) *Semaphore {
	return &Semaphore{
		slots: make(chan struct{}, capacity),
	}
}

// Acquire waits for a free slot at most timeout. It gives up early when ctx
// is done, returning ctx.Err().
func (s *Semaphore) Acquire(ctx context.Context, timeout time.Duration) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	default:
	}

	timer := time.NewTimer(timeout)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return serviceerrs.ErrSemaphoreTimeoutExceeded
	case s.slots <- struct{}{}:
		return nil
	}
}

func (s *Semaphore) Release() {
	<-s.slots
}
