package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/cenkalti/backoff/v4"
	"golang.org/x/sync/errgroup"
)

// WriteFunc performs one remote write. It must be safe to repeat.
type WriteFunc func(ctx context.Context) error

// Failure records a remote write that exhausted its retries.
type Failure struct {
	Description string    `json:"description"`
	Attempts    int       `json:"attempts"`
	Error       string    `json:"error"`
	FailedAt    time.Time `json:"failedAt"`
}

// WriterConfig tunes the remote write queue.
type WriterConfig struct {
	Workers      int
	MaxAttempts  int
	Backoff      time.Duration // delay before the second attempt, doubled after each retry
	WriteTimeout time.Duration // per attempt
	OnFailure    func(Failure)
}

// Writer executes remote writes on a bounded pool. Jobs carry no ordering
// guarantee relative to each other. A job that keeps failing is logged and
// kept in Failures; local state is never touched.
type Writer struct {
	cfg WriterConfig

	// workers runs at most cfg.Workers writes at once. queued holds the
	// handoffs waiting for a free slot so Enqueue never blocks.
	workers errgroup.Group
	queued  errgroup.Group

	ctx    context.Context
	cancel context.CancelFunc

	mu       sync.Mutex
	closed   bool
	failures []Failure
}

// NewWriter sizes the pool.
func NewWriter(cfg WriterConfig) *Writer {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.MaxAttempts < 1 {
		cfg.MaxAttempts = 1
	}
	if cfg.Backoff <= 0 {
		cfg.Backoff = 500 * time.Millisecond
	}
	if cfg.WriteTimeout <= 0 {
		cfg.WriteTimeout = 10 * time.Second
	}

	ctx, cancel := context.WithCancel(context.Background())
	w := &Writer{cfg: cfg, ctx: ctx, cancel: cancel}
	w.workers.SetLimit(cfg.Workers)
	return w
}

// Enqueue schedules fn and returns immediately.
func (w *Writer) Enqueue(description string, fn WriteFunc) {
	w.mu.Lock()
	if w.closed {
		w.mu.Unlock()
		log.Printf("⚠️  Write queue closed, dropping %s", description)
		w.recordFailure(Failure{Description: description, Error: "write queue closed", FailedAt: time.Now()})
		return
	}
	defer w.mu.Unlock()

	job := func() error {
		w.run(description, fn)
		return nil
	}
	if w.workers.TryGo(job) {
		return
	}
	// Pool full: wait for a slot off the caller's goroutine.
	w.queued.Go(func() error {
		w.workers.Go(job)
		return nil
	})
}

// Drain blocks until every queued write has finished or failed.
func (w *Writer) Drain() {
	w.queued.Wait()
	w.workers.Wait()
}

// Close stops accepting writes and waits for the queue to drain until ctx is
// done. Writes still running after that see their context cancelled.
func (w *Writer) Close(ctx context.Context) error {
	w.mu.Lock()
	w.closed = true
	w.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		w.Drain()
		close(drained)
	}()

	var err error
	select {
	case <-drained:
	case <-ctx.Done():
		err = ctx.Err()
		w.cancel()
		<-drained
	}
	w.cancel()
	return err
}

// Failures returns a copy of the writes that gave up.
func (w *Writer) Failures() []Failure {
	w.mu.Lock()
	defer w.mu.Unlock()
	out := make([]Failure, len(w.failures))
	copy(out, w.failures)
	return out
}

func (w *Writer) retryPolicy() backoff.BackOffContext {
	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = w.cfg.Backoff
	policy.Multiplier = 2
	policy.RandomizationFactor = 0
	policy.MaxElapsedTime = 0
	return backoff.WithContext(backoff.WithMaxRetries(policy, uint64(w.cfg.MaxAttempts-1)), w.ctx)
}

func (w *Writer) run(description string, fn WriteFunc) {
	attempts := 0
	err := backoff.RetryNotify(func() error {
		attempts++
		ctx, cancel := context.WithTimeout(w.ctx, w.cfg.WriteTimeout)
		defer cancel()
		return fn(ctx)
	}, w.retryPolicy(), func(err error, wait time.Duration) {
		log.Printf("🔁 Retrying %s in %v: %v", description, wait, err)
	})
	if err == nil {
		return
	}

	log.Printf("❌ Remote write failed after %d attempt(s): %s: %v", attempts, description, err)
	w.recordFailure(Failure{
		Description: description,
		Attempts:    attempts,
		Error:       err.Error(),
		FailedAt:    time.Now(),
	})
}

func (w *Writer) recordFailure(f Failure) {
	w.mu.Lock()
	w.failures = append(w.failures, f)
	w.mu.Unlock()

	if w.cfg.OnFailure != nil {
		w.cfg.OnFailure(f)
	}
}
