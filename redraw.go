package richgui

import (
	"context"
	"sync"
	"time"
)

// RedrawSignal is an edge-triggered wake flag shared between the frame loop and
// background goroutines. Post sets the flag once per idle period; Wait consumes it.
// Posting never touches UI state.
type RedrawSignal struct {
	mu      sync.Mutex
	cond    *sync.Cond
	pending bool
	// wake, if set, is called after a post that set the flag (e.g. to break a
	// blocking platform event wait).
	wake func()
}

// NewRedrawSignal creates a signal. wake may be nil.
func NewRedrawSignal(wake func()) *RedrawSignal {
	s := &RedrawSignal{wake: wake}
	s.cond = sync.NewCond(&s.mu)
	return s
}

// Post requests a redraw. Returns true if this call set the flag.
func (s *RedrawSignal) Post() bool {
	s.mu.Lock()
	if s.pending {
		s.mu.Unlock()
		return false
	}
	s.pending = true
	s.cond.Broadcast()
	wake := s.wake
	s.mu.Unlock()

	if wake != nil {
		wake()
	}
	return true
}

// Pending reports whether a redraw has been posted and not yet consumed.
func (s *RedrawSignal) Pending() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.pending
}

// Consume clears the flag and reports whether it was set.
func (s *RedrawSignal) Consume() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	was := s.pending
	s.pending = false
	return was
}

// Wait blocks until a redraw is posted or ctx is done, then clears the flag.
func (s *RedrawSignal) Wait(ctx context.Context) error {
	stop := context.AfterFunc(ctx, func() {
		s.mu.Lock()
		s.cond.Broadcast()
		s.mu.Unlock()
	})
	defer stop()

	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.pending {
		if err := ctx.Err(); err != nil {
			return err
		}
		s.cond.Wait()
	}
	s.pending = false
	return nil
}

// BlinkTimer posts to a RedrawSignal at a fixed interval (e.g. for caret blinking)
// while it is enabled.
type BlinkTimer struct {
	signal   *RedrawSignal
	interval time.Duration

	mu      sync.Mutex
	enabled bool
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewBlinkTimer creates a stopped timer.
func NewBlinkTimer(signal *RedrawSignal, interval time.Duration) *BlinkTimer {
	return &BlinkTimer{signal: signal, interval: interval}
}

// Start launches the timer goroutine. It stops when ctx is done or Stop is called.
func (t *BlinkTimer) Start(ctx context.Context) {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.cancel != nil {
		return
	}
	ctx, t.cancel = context.WithCancel(ctx)
	t.done = make(chan struct{})
	go t.run(ctx, t.done)
}

func (t *BlinkTimer) run(ctx context.Context, done chan struct{}) {
	defer close(done)
	ticker := time.NewTicker(t.interval)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if t.Enabled() {
				t.signal.Post()
			}
		}
	}
}

// SetEnabled turns posting on or off without stopping the goroutine.
func (t *BlinkTimer) SetEnabled(v bool) {
	t.mu.Lock()
	t.enabled = v
	t.mu.Unlock()
}

// Enabled reports whether the timer currently posts.
func (t *BlinkTimer) Enabled() bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.enabled
}

// Stop ends the goroutine and waits for it to exit.
func (t *BlinkTimer) Stop() {
	t.mu.Lock()
	cancel, done := t.cancel, t.done
	t.cancel, t.done = nil, nil
	t.mu.Unlock()
	if cancel != nil {
		cancel()
		<-done
	}
}
