package watcher

import "context"

// semaphore bounds how many jobs run at once
type semaphore struct {
	slots chan struct{}
}

func newSemaphore(capacity int) *semaphore {
	return &semaphore{slots: make(chan struct{}, capacity)}
}

// acquire blocks until a slot frees up or ctx is done
func (s *semaphore) acquire(ctx context.Context) error {
	select {
	case s.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (s *semaphore) release() {
	<-s.slots
}

// busy reports the number of held slots
func (s *semaphore) busy() int {
	return len(s.slots)
}
