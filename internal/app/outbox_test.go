package app_test

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"element-quiz-service/internal/app"
)

func TestOutboxRunsTasksInOrder(t *testing.T) {
	outbox := app.NewOutbox(nil, app.OutboxOptions{Workers: 1})
	var (
		mu  sync.Mutex
		got []int
	)
	for i := 0; i < 50; i++ {
		i := i
		outbox.Enqueue("task", "u1", func(context.Context) error {
			mu.Lock()
			got = append(got, i)
			mu.Unlock()
			return nil
		})
	}
	if err := outbox.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
	for i, v := range got {
		if v != i {
			t.Fatalf("expected FIFO order, got %v", got)
		}
	}
	if len(got) != 50 {
		t.Fatalf("expected 50 tasks, got %d", len(got))
	}
}

func TestOutboxDropsWhenFull(t *testing.T) {
	outbox := app.NewOutbox(nil, app.OutboxOptions{Workers: 1, QueueSize: 1})
	release := make(chan struct{})
	started := make(chan struct{})

	outbox.Enqueue("blocker", "u1", func(context.Context) error {
		close(started)
		<-release
		return nil
	})
	<-started
	if !outbox.Enqueue("queued", "u1", func(context.Context) error { return nil }) {
		t.Fatalf("expected second task to fit in the queue")
	}
	if outbox.Enqueue("dropped", "u1", func(context.Context) error { return nil }) {
		t.Fatalf("expected full queue to drop the task")
	}
	close(release)
	if err := outbox.Flush(context.Background()); err != nil {
		t.Fatalf("flush: %v", err)
	}
}

func TestOutboxFailuresAreSwallowed(t *testing.T) {
	outbox := app.NewOutbox(nil, app.OutboxOptions{})
	var ran atomic.Int32
	outbox.Enqueue("fails", "u1", func(context.Context) error {
		ran.Add(1)
		return errors.New("boom")
	})
	outbox.Enqueue("after", "u1", func(context.Context) error {
		ran.Add(1)
		return nil
	})
	_ = outbox.Flush(context.Background())
	if ran.Load() != 2 {
		t.Fatalf("expected both tasks to run, got %d", ran.Load())
	}
}

func TestOutboxTimeout(t *testing.T) {
	outbox := app.NewOutbox(nil, app.OutboxOptions{Timeout: 10 * time.Millisecond})
	var hadDeadline atomic.Bool
	outbox.Enqueue("slow", "u1", func(ctx context.Context) error {
		_, ok := ctx.Deadline()
		hadDeadline.Store(ok)
		<-ctx.Done()
		return ctx.Err()
	})
	_ = outbox.Flush(context.Background())
	if !hadDeadline.Load() {
		t.Fatalf("expected task context to carry a deadline")
	}
}

func TestOutboxCloseDrainsAndRejects(t *testing.T) {
	outbox := app.NewOutbox(nil, app.OutboxOptions{Workers: 2})
	var ran atomic.Int32
	for i := 0; i < 10; i++ {
		outbox.Enqueue("task", "u1", func(context.Context) error {
			ran.Add(1)
			return nil
		})
	}
	if err := outbox.Close(context.Background()); err != nil {
		t.Fatalf("close: %v", err)
	}
	if ran.Load() != 10 {
		t.Fatalf("expected queued tasks to drain, got %d", ran.Load())
	}
	if outbox.Enqueue("late", "u1", func(context.Context) error { return nil }) {
		t.Fatalf("expected closed outbox to reject tasks")
	}
	if err := outbox.Close(context.Background()); err != nil {
		t.Fatalf("second close: %v", err)
	}
}

func TestOutboxFlushHonorsContext(t *testing.T) {
	outbox := app.NewOutbox(nil, app.OutboxOptions{})
	release := make(chan struct{})
	defer close(release)
	outbox.Enqueue("blocked", "u1", func(context.Context) error {
		<-release
		return nil
	})

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := outbox.Flush(ctx); !errors.Is(err, context.DeadlineExceeded) {
		t.Fatalf("expected deadline exceeded, got %v", err)
	}
}
