// Package events implements the in-process refresh signal used to tell
// unrelated views that server-held state changed and should be refetched.
//
// The bus is an explicit dependency: it is constructed once in main and
// passed by reference to the components that need it, which keeps teardown
// and tests deterministic.
package events

import "sync"

// Topic names a category of refresh signal.
type Topic string

// TopicPointsChanged is emitted after any mutation that affects the user's
// points balance (redemption, discard, profile refresh).
const TopicPointsChanged Topic = "points.changed"

// Callback is a zero-argument subscriber. Callbacks run synchronously on
// the emitting goroutine, in subscription order.
type Callback func()

type subscriber struct {
	id uint64
	cb Callback
}

// Bus is a process-wide ordered registry of callbacks per topic. The same
// callback may be subscribed more than once and will then be invoked once
// per registration.
type Bus struct {
	mu     sync.Mutex
	subs   map[Topic][]subscriber
	nextID uint64
}

func NewBus() *Bus {
	return &Bus{subs: make(map[Topic][]subscriber)}
}

// Subscription identifies one registration and can cancel it.
type Subscription struct {
	bus   *Bus
	topic Topic
	id    uint64
}

// Subscribe appends cb to the topic's registry and returns a handle used to
// unsubscribe. Subscribers are expected to unsubscribe on teardown so stale
// callbacks are not invoked.
func (b *Bus) Subscribe(topic Topic, cb Callback) *Subscription {
	b.mu.Lock()
	defer b.mu.Unlock()

	b.nextID++
	b.subs[topic] = append(b.subs[topic], subscriber{id: b.nextID, cb: cb})
	return &Subscription{bus: b, topic: topic, id: b.nextID}
}

// Unsubscribe removes the registration. It is a no-op if the registration
// was already removed.
func (s *Subscription) Unsubscribe() {
	if s == nil || s.bus == nil {
		return
	}
	b := s.bus
	b.mu.Lock()
	defer b.mu.Unlock()

	list := b.subs[s.topic]
	for i, sub := range list {
		if sub.id == s.id {
			b.subs[s.topic] = append(list[:i:i], list[i+1:]...)
			break
		}
	}
	s.bus = nil
}

// Emit invokes every callback currently subscribed to the topic,
// synchronously and in subscription order. A panic in one callback must not
// prevent the remaining callbacks from running, so each invocation is
// wrapped.
func (b *Bus) Emit(topic Topic) {
	b.mu.Lock()
	snapshot := make([]subscriber, len(b.subs[topic]))
	copy(snapshot, b.subs[topic])
	b.mu.Unlock()

	for _, sub := range snapshot {
		invoke(sub.cb)
	}
}

func invoke(cb Callback) {
	defer func() {
		_ = recover()
	}()
	cb()
}
