// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package suggest

import "sync"

// Handler receives a published suggestion.
type Handler func(text string)

// Bus is a small scoped pub/sub for suggestion selections.
type Bus struct {
	mu       sync.Mutex
	handlers map[int]Handler
	nextID   int
}

// NewBus creates an empty bus.
func NewBus() *Bus {
	return &Bus{handlers: make(map[int]Handler)}
}

// Subscribe registers a handler and returns its unsubscribe func.
// Unsubscribing twice is a no-op.
func (b *Bus) Subscribe(h Handler) func() {
	b.mu.Lock()
	defer b.mu.Unlock()

	id := b.nextID
	b.nextID++
	b.handlers[id] = h

	return func() {
		b.mu.Lock()
		defer b.mu.Unlock()
		delete(b.handlers, id)
	}
}

// Publish delivers text to every current subscriber. Delivery is
// synchronous against a snapshot taken under the lock, so a handler may
// subscribe or unsubscribe without deadlocking. Publishing with no
// subscribers is a no-op.
func (b *Bus) Publish(text string) {
	b.mu.Lock()
	snapshot := make([]Handler, 0, len(b.handlers))
	for _, h := range b.handlers {
		snapshot = append(snapshot, h)
	}
	b.mu.Unlock()

	for _, h := range snapshot {
		h(text)
	}
}

// SubscriberCount returns the number of active subscribers.
func (b *Bus) SubscriberCount() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.handlers)
}

// Defaults returns the stock suggestion chips for an empty conversation.
func Defaults() []string {
	return []string{
		"Smartphones de gama media por menos de 800 soles",
		"Televisores LG de 60 pulgadas",
		"Televisores OLED de 55 pulgadas",
		"iPhone 12 o 13 por menos de 2000 soles",
	}
}
