package http

import (
	"math"
	"sync"
	"time"
)

const (
	bucketCleanupThreshold = 1 * time.Hour
	cleanupInterval        = 30 * time.Minute
)

type clientBucket struct {
	tokens   float64
	lastSeen time.Time
}

// RateLimiter gives every client a bucket of capacity tokens that refills
// continuously, capacity tokens per window.
type RateLimiter struct {
	mu          sync.Mutex
	capacity    float64
	perToken    time.Duration
	now         func() time.Time
	clients     map[string]*clientBucket
	stopCleanup chan struct{}
	stopOnce    sync.Once
}

func NewRateLimiter(capacity int, window time.Duration) *RateLimiter {
	if capacity < 1 {
		capacity = 1
	}
	rl := &RateLimiter{
		capacity:    float64(capacity),
		perToken:    window / time.Duration(capacity),
		now:         time.Now,
		clients:     make(map[string]*clientBucket),
		stopCleanup: make(chan struct{}),
	}
	go rl.cleanupLoop()
	return rl
}

func (r *RateLimiter) cleanupLoop() {
	ticker := time.NewTicker(cleanupInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			r.cleanup()
		case <-r.stopCleanup:
			return
		}
	}
}

// cleanup forgets clients idle for longer than bucketCleanupThreshold; their
// buckets would be full again anyway.
func (r *RateLimiter) cleanup() {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	for client, bucket := range r.clients {
		if now.Sub(bucket.lastSeen) > bucketCleanupThreshold {
			delete(r.clients, client)
		}
	}
}

// Stop ends the cleanup goroutine. It is safe to call more than once.
func (r *RateLimiter) Stop() {
	r.stopOnce.Do(func() { close(r.stopCleanup) })
}

// Allow takes one token from the client's bucket. When the bucket is empty
// it reports how long until the next token is available.
func (r *RateLimiter) Allow(client string) (bool, time.Duration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	now := r.now()
	bucket, exists := r.clients[client]
	if !exists {
		r.clients[client] = &clientBucket{
			tokens:   r.capacity - 1,
			lastSeen: now,
		}
		return true, 0
	}

	if r.perToken > 0 {
		refill := float64(now.Sub(bucket.lastSeen)) / float64(r.perToken)
		bucket.tokens = math.Min(r.capacity, bucket.tokens+refill)
	} else {
		bucket.tokens = r.capacity
	}
	bucket.lastSeen = now

	if bucket.tokens < 1 {
		wait := time.Duration((1 - bucket.tokens) * float64(r.perToken))
		return false, wait
	}

	bucket.tokens--
	return true, 0
}
