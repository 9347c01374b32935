package ratelim

import (
	"net"
	"net/http"
	"sync"
	"time"

	"ladle/utils"

	"github.com/julienschmidt/httprouter"
	"golang.org/x/time/rate"
)

// RateLimiter hands out a token bucket per client address.
type RateLimiter struct {
	mu       sync.Mutex
	clients  map[string]*rate.Limiter
	rate     rate.Limit
	burst    int
	lastSeen map[string]time.Time
	quit     chan struct{}
	stop     sync.Once
}

func NewRateLimiter() *RateLimiter {
	rl := &RateLimiter{
		clients:  make(map[string]*rate.Limiter),
		lastSeen: make(map[string]time.Time),
		rate:     rate.Limit(5),
		burst:    10,
		quit:     make(chan struct{}),
	}
	go rl.cleanup()
	return rl
}

// Stop ends the background cleanup goroutine. Safe to call more than once.
func (rl *RateLimiter) Stop() {
	rl.stop.Do(func() { close(rl.quit) })
}

func (rl *RateLimiter) limiterFor(addr string) *rate.Limiter {
	rl.mu.Lock()
	defer rl.mu.Unlock()

	lim, ok := rl.clients[addr]
	if !ok {
		lim = rate.NewLimiter(rl.rate, rl.burst)
		rl.clients[addr] = lim
	}
	rl.lastSeen[addr] = time.Now()
	return lim
}

// Allow reports whether the client may proceed.
func (rl *RateLimiter) Allow(addr string) bool {
	return rl.limiterFor(addr).Allow()
}

// Limit wraps a handler with the per-client bucket.
func (rl *RateLimiter) Limit(next httprouter.Handle) httprouter.Handle {
	return func(w http.ResponseWriter, r *http.Request, ps httprouter.Params) {
		host, _, err := net.SplitHostPort(r.RemoteAddr)
		if err != nil {
			host = r.RemoteAddr
		}
		if !rl.Allow(host) {
			utils.RespondWithError(w, http.StatusTooManyRequests, "Too many requests")
			return
		}
		next(w, r, ps)
	}
}

func (rl *RateLimiter) cleanup() {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-rl.quit:
			return
		case <-ticker.C:
			rl.sweep()
		}
	}
}

// sweep drops idle clients so the map does not grow without bound.
func (rl *RateLimiter) sweep() {
	rl.mu.Lock()
	defer rl.mu.Unlock()
	for addr, seen := range rl.lastSeen {
		if time.Since(seen) > 3*time.Minute {
			delete(rl.clients, addr)
			delete(rl.lastSeen, addr)
		}
	}
}

var defaultLimiter = NewRateLimiter()

// RateLimit wraps a handler with the package-default limiter.
func RateLimit(next httprouter.Handle) httprouter.Handle {
	return defaultLimiter.Limit(next)
}
