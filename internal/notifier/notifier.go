// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

// Package notifier is an in-process publish/subscribe hub for store change
// events. Listeners run synchronously on the publishing goroutine, in
// subscription order.
package notifier

import (
	"sync"
)

// Event names a kind of notification.
type Event string

// EventStoreChanged is published after the contacts soup was modified by a
// sync down, re-sync or save.
const EventStoreChanged Event = "store_changed"

// Listener receives the payload of a published event.
type Listener func(payload any)

//go:generate mockgen -source=notifier.go -destination=../mock/notifier_mock.go -package=mock

// ChangeNotifier delivers events to their listeners.
type ChangeNotifier interface {
	// Subscribe registers listener for event and returns a function removing
	// it. The returned function is safe to call more than once.
	Subscribe(event Event, listener Listener) (unsubscribe func())
	Publish(event Event, payload any)
}

type subscription struct {
	id       uint64
	listener Listener
}

// Notifier is the default [ChangeNotifier].
type Notifier struct {
	mu     sync.RWMutex
	nextID uint64
	subs   map[Event][]subscription
}

func New() *Notifier {
	return &Notifier{subs: make(map[Event][]subscription)}
}

func (n *Notifier) Subscribe(event Event, listener Listener) func() {
	n.mu.Lock()
	n.nextID++
	id := n.nextID
	n.subs[event] = append(n.subs[event], subscription{id: id, listener: listener})
	n.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { n.remove(event, id) })
	}
}

func (n *Notifier) remove(event Event, id uint64) {
	n.mu.Lock()
	defer n.mu.Unlock()

	subs := n.subs[event]
	for i, s := range subs {
		if s.id == id {
			n.subs[event] = append(subs[:i:i], subs[i+1:]...)
			return
		}
	}
}

// Publish calls every listener of event. The listener list is copied first,
// so listeners may subscribe or unsubscribe while being notified.
func (n *Notifier) Publish(event Event, payload any) {
	n.mu.RLock()
	subs := append([]subscription(nil), n.subs[event]...)
	n.mu.RUnlock()

	for _, s := range subs {
		s.listener(payload)
	}
}
