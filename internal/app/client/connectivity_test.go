package client

import (
	"context"
	gosync "sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestConnectivityMonitor_ReportsTransitions(t *testing.T) {
	remote := newFakeRemote()
	remote.setOffline(true)

	m := NewConnectivityMonitor(remote, 10*time.Millisecond, testLogger())

	var mu gosync.Mutex
	var transitions []bool
	m.Subscribe(func(online bool) {
		mu.Lock()
		defer mu.Unlock()
		transitions = append(transitions, online)
	})

	m.Start(context.Background())
	defer m.Stop()

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(transitions) == 1 && !transitions[0]
	}, 2*time.Second, 10*time.Millisecond)
	assert.False(t, m.Online())

	remote.setOffline(false)

	assert.Eventually(t, func() bool {
		mu.Lock()
		defer mu.Unlock()
		return len(transitions) == 2 && transitions[1]
	}, 2*time.Second, 10*time.Millisecond)
	assert.True(t, m.Online())
}

func TestConnectivityMonitor_NoCallbackWithoutChange(t *testing.T) {
	remote := newFakeRemote()

	m := NewConnectivityMonitor(remote, 5*time.Millisecond, testLogger())

	var mu gosync.Mutex
	calls := 0
	m.Subscribe(func(bool) {
		mu.Lock()
		defer mu.Unlock()
		calls++
	})

	m.Start(context.Background())
	time.Sleep(60 * time.Millisecond)
	m.Stop()

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, 1, calls, "steady state must not emit repeated notifications")
}
