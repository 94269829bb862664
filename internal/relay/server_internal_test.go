package relay

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnsubscribe_StalledBufferKeepsQueueBounded(t *testing.T) {
	s := NewServer(Config{MaxQueue: 2})

	stalled := s.subscribe("chan-a")
	for i := 0; i < cap(stalled.send)+5; i++ {
		s.Deliver("chan-a", []byte(fmt.Sprint(i)))
	}
	s.requeue("chan-a", []byte("failed-write"))
	s.unsubscribe("chan-a", stalled)

	s.mu.Lock()
	queued := len(s.channels["chan-a"].queue)
	s.mu.Unlock()
	assert.Equal(t, 2, queued)

	done := make(chan *subscriber, 1)
	go func() { done <- s.subscribe("chan-a") }()
	var next *subscriber
	select {
	case next = <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("subscribe blocked on the queued backlog")
	}
	assert.Len(t, next.send, 2)

	other := make(chan struct{})
	go func() {
		s.Deliver("chan-b", []byte("x"))
		close(other)
	}()
	select {
	case <-other:
	case <-time.After(2 * time.Second):
		t.Fatal("deliver on another channel blocked")
	}
}

func TestRequeue_DropsOldestBeyondLimit(t *testing.T) {
	s := NewServer(Config{MaxQueue: 2})
	s.Deliver("chan-a", []byte("1"))
	s.Deliver("chan-a", []byte("2"))
	s.requeue("chan-a", []byte("0"))

	sub := s.subscribe("chan-a")
	require.Len(t, sub.send, 2)
	assert.Equal(t, "1", string(<-sub.send))
	assert.Equal(t, "2", string(<-sub.send))
}

func TestSweep_DropsIdleChannels(t *testing.T) {
	now := time.Unix(1_700_000_000, 0)
	s := NewServer(Config{IdleTTL: time.Minute, Now: func() time.Time { return now }})

	s.Deliver("stale", []byte("never read"))
	sub := s.subscribe("watched")
	now = now.Add(30 * time.Second)
	s.Deliver("fresh", []byte("recent"))

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1, s.Sweep())

	s.mu.Lock()
	_, stale := s.channels["stale"]
	_, fresh := s.channels["fresh"]
	_, watched := s.channels["watched"]
	s.mu.Unlock()
	assert.False(t, stale)
	assert.True(t, fresh)
	assert.True(t, watched, "channels with subscribers are kept")

	s.unsubscribe("watched", sub)
}
