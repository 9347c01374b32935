package ratelim

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestAllowExhaustsBurst(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()

	allowed := 0
	for i := 0; i < 50; i++ {
		if rl.Allow("10.0.0.1") {
			allowed++
		}
	}
	assert.GreaterOrEqual(t, allowed, rl.burst)
	assert.Less(t, allowed, 50)
}

func TestClientsAreIndependent(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()

	for i := 0; i < 50; i++ {
		rl.Allow("10.0.0.1")
	}
	assert.True(t, rl.Allow("10.0.0.2"))
}

func TestSweepDropsIdleClients(t *testing.T) {
	rl := NewRateLimiter()
	defer rl.Stop()

	rl.Allow("10.0.0.1")
	rl.mu.Lock()
	rl.lastSeen["10.0.0.1"] = time.Now().Add(-10 * time.Minute)
	rl.mu.Unlock()

	rl.sweep()

	rl.mu.Lock()
	defer rl.mu.Unlock()
	assert.Empty(t, rl.clients)
	assert.Empty(t, rl.lastSeen)
}

func TestStopEndsCleanup(t *testing.T) {
	rl := NewRateLimiter()
	rl.Stop()
	rl.Stop()

	select {
	case <-rl.quit:
	default:
		t.Fatal("cleanup goroutine not signalled to exit")
	}
}
