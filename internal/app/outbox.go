package app

import (
	"context"
	"sync"
	"time"

	"element-quiz-service/internal/platform/logger"
)

// OutboxOptions tunes the persistence queue.
//
// With a single worker, writes reach the store in the order the rounds were
// played. More workers let writes for the same row race and the last one to
// complete wins.
type OutboxOptions struct {
	Workers   int
	QueueSize int
	Timeout   time.Duration // zero means no deadline
}

type task struct {
	name   string
	userID string
	run    func(ctx context.Context) error
}

// Outbox runs best-effort persistence writes off the gameplay path. Failed
// tasks are logged and forgotten.
type Outbox struct {
	log     *logger.Logger
	timeout time.Duration
	queue   chan task
	workers sync.WaitGroup

	mu     sync.RWMutex
	closed bool

	countMu  sync.Mutex
	inflight int
	waiters  []chan struct{}
}

func NewOutbox(log *logger.Logger, opts OutboxOptions) *Outbox {
	if log == nil {
		log = logger.Nop()
	}
	if opts.Workers <= 0 {
		opts.Workers = 1
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 256
	}
	o := &Outbox{
		log:     log,
		timeout: opts.Timeout,
		queue:   make(chan task, opts.QueueSize),
	}
	for i := 0; i < opts.Workers; i++ {
		o.workers.Add(1)
		go o.work()
	}
	return o
}

// Enqueue schedules run without blocking. It reports false when the task was
// dropped because the queue is full or closed.
func (o *Outbox) Enqueue(name, userID string, run func(ctx context.Context) error) bool {
	o.mu.RLock()
	defer o.mu.RUnlock()
	if o.closed {
		o.log.Warn("persistence outbox closed, dropping task", "task", name, "user_id", userID)
		return false
	}

	o.begin()
	select {
	case o.queue <- task{name: name, userID: userID, run: run}:
		return true
	default:
		o.done()
		o.log.Warn("persistence queue full, dropping task", "task", name, "user_id", userID)
		return false
	}
}

// Flush blocks until every queued and running task has finished.
func (o *Outbox) Flush(ctx context.Context) error {
	o.countMu.Lock()
	if o.inflight == 0 {
		o.countMu.Unlock()
		return nil
	}
	w := make(chan struct{})
	o.waiters = append(o.waiters, w)
	o.countMu.Unlock()

	select {
	case <-w:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Close stops intake and waits for the workers to drain the queue.
func (o *Outbox) Close(ctx context.Context) error {
	o.mu.Lock()
	if !o.closed {
		o.closed = true
		close(o.queue)
	}
	o.mu.Unlock()

	drained := make(chan struct{})
	go func() {
		o.workers.Wait()
		close(drained)
	}()
	select {
	case <-drained:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (o *Outbox) work() {
	defer o.workers.Done()
	for t := range o.queue {
		o.run(t)
		o.done()
	}
}

func (o *Outbox) run(t task) {
	ctx := context.Background()
	if o.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, o.timeout)
		defer cancel()
	}
	if err := t.run(ctx); err != nil {
		o.log.Warn("persistence task failed", "task", t.name, "user_id", t.userID, "error", err)
	}
}

func (o *Outbox) begin() {
	o.countMu.Lock()
	o.inflight++
	o.countMu.Unlock()
}

func (o *Outbox) done() {
	o.countMu.Lock()
	o.inflight--
	if o.inflight == 0 {
		for _, w := range o.waiters {
			close(w)
		}
		o.waiters = nil
	}
	o.countMu.Unlock()
}
