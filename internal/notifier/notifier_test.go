// SPDX-License-Identifier: Apache-2.0
// Copyright 2026 Rasul Khiriev

package notifier

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNotifier_PublishInSubscriptionOrder(t *testing.T) {
	n := New()
	var got []string

	n.Subscribe(EventStoreChanged, func(payload any) { got = append(got, "first:"+payload.(string)) })
	n.Subscribe(EventStoreChanged, func(payload any) { got = append(got, "second:"+payload.(string)) })
	n.Subscribe("other", func(any) { got = append(got, "other") })

	n.Publish(EventStoreChanged, "a")
	n.Publish(EventStoreChanged, "b")

	assert.Equal(t, []string{"first:a", "second:a", "first:b", "second:b"}, got)
}

func TestNotifier_Unsubscribe(t *testing.T) {
	n := New()
	calls := 0

	unsubscribe := n.Subscribe(EventStoreChanged, func(any) { calls++ })
	keep := 0
	n.Subscribe(EventStoreChanged, func(any) { keep++ })

	n.Publish(EventStoreChanged, nil)
	unsubscribe()
	unsubscribe()
	n.Publish(EventStoreChanged, nil)

	assert.Equal(t, 1, calls)
	assert.Equal(t, 2, keep)
}

func TestNotifier_UnsubscribeDuringPublish(t *testing.T) {
	n := New()
	calls := 0

	var unsubscribe func()
	unsubscribe = n.Subscribe(EventStoreChanged, func(any) {
		calls++
		unsubscribe()
	})

	n.Publish(EventStoreChanged, nil)
	n.Publish(EventStoreChanged, nil)

	assert.Equal(t, 1, calls)
}

func TestNotifier_PublishWithoutListeners(t *testing.T) {
	assert.NotPanics(t, func() { New().Publish(EventStoreChanged, nil) })
}

func TestNotifier_ConcurrentUse(t *testing.T) {
	n := New()
	var (
		mu    sync.Mutex
		total int
		wg    sync.WaitGroup
	)

	for range 10 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			unsubscribe := n.Subscribe(EventStoreChanged, func(any) {
				mu.Lock()
				total++
				mu.Unlock()
			})
			n.Publish(EventStoreChanged, nil)
			unsubscribe()
		}()
	}
	wg.Wait()

	assert.Positive(t, total)
}
