package settings

import "sync"

// Broadcaster fans settings snapshots out to subscribers. Each subscriber
// holds a buffered channel of one: a slow consumer keeps only the most recent
// snapshot rather than blocking publishers.
type Broadcaster struct {
	mu   sync.Mutex
	subs map[chan Snapshot]struct{}
}

// NewBroadcaster creates an empty Broadcaster.
func NewBroadcaster() *Broadcaster {
	return &Broadcaster{
		subs: make(map[chan Snapshot]struct{}),
	}
}

// Subscribe registers a new subscriber. The returned cancel function removes
// the subscription and must be called when the consumer is done.
func (b *Broadcaster) Subscribe() (<-chan Snapshot, func()) {
	ch := make(chan Snapshot, 1)

	b.mu.Lock()
	b.subs[ch] = struct{}{}
	b.mu.Unlock()

	cancel := func() {
		b.mu.Lock()
		delete(b.subs, ch)
		b.mu.Unlock()
	}

	return ch, cancel
}

// Publish delivers a snapshot to every subscriber, replacing any undelivered
// snapshot still sitting in a subscriber's buffer.
func (b *Broadcaster) Publish(s Snapshot) {
	b.mu.Lock()
	defer b.mu.Unlock()

	for ch := range b.subs {
		select {
		case ch <- s:
		default:
			select {
			case <-ch:
			default:
			}
			ch <- s
		}
	}
}

// Len returns the current subscriber count.
func (b *Broadcaster) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.subs)
}
