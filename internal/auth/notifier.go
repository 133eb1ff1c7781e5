package auth

import (
	"sync"

	"element-quiz-service/internal/domain"
)

type notifier struct {
	mu          sync.Mutex
	subscribers map[chan domain.SessionEvent]struct{}
}

func newNotifier() *notifier {
	return &notifier{subscribers: make(map[chan domain.SessionEvent]struct{})}
}

func (n *notifier) subscribe() (<-chan domain.SessionEvent, func()) {
	ch := make(chan domain.SessionEvent, 8)

	n.mu.Lock()
	n.subscribers[ch] = struct{}{}
	n.mu.Unlock()

	cancel := func() {
		n.mu.Lock()
		if _, ok := n.subscribers[ch]; ok {
			delete(n.subscribers, ch)
			close(ch)
		}
		n.mu.Unlock()
	}
	return ch, cancel
}

func (n *notifier) publish(ev domain.SessionEvent) {
	n.mu.Lock()
	defer n.mu.Unlock()
	for ch := range n.subscribers {
		select {
		case ch <- ev:
		default:
			// full: drop the oldest event
			select {
			case <-ch:
			default:
			}
			ch <- ev
		}
	}
}
