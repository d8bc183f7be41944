// Package event is the in-process publish/subscribe bus the dev server uses
// to route chat, invites and presence changes between sessions.
package event

import (
	"log/slog"
	"sync"
)

type HandlerFunc func(raw any)

type subscription struct {
	handler HandlerFunc
}

type Bus struct {
	mu       sync.RWMutex
	handlers map[string][]*subscription
}

func NewBus() *Bus {
	return &Bus{
		handlers: make(map[string][]*subscription),
	}
}

// Subscribe registers handler for topic and returns a function that removes
// it again.
func (b *Bus) Subscribe(topic string, handler HandlerFunc) (unsubscribe func()) {
	sub := &subscription{handler: handler}
	b.mu.Lock()
	b.handlers[topic] = append(b.handlers[topic], sub)
	b.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { b.remove(topic, sub) })
	}
}

func (b *Bus) remove(topic string, sub *subscription) {
	b.mu.Lock()
	defer b.mu.Unlock()
	subs := b.handlers[topic]
	for i, s := range subs {
		if s == sub {
			subs = append(subs[:i:i], subs[i+1:]...)
			break
		}
	}
	if len(subs) == 0 {
		delete(b.handlers, topic)
		return
	}
	b.handlers[topic] = subs
}

// Publish calls every handler of topic in subscription order on the
// caller's goroutine and reports how many were reached. Handlers must not
// block; a panicking handler is logged and skipped.
func (b *Bus) Publish(topic string, evt any) int {
	b.mu.RLock()
	subs := make([]*subscription, len(b.handlers[topic]))
	copy(subs, b.handlers[topic])
	b.mu.RUnlock()

	for _, sub := range subs {
		func() {
			defer func() {
				if r := recover(); r != nil {
					slog.Error("Event handler panicked", "topic", topic, "panic", r)
				}
			}()
			sub.handler(evt)
		}()
	}
	return len(subs)
}

// HasSubscribers reports whether anything listens on topic.
func (b *Bus) HasSubscribers(topic string) bool {
	b.mu.RLock()
	defer b.mu.RUnlock()
	return len(b.handlers[topic]) > 0
}
