// Package ratelimit implements an in-process token bucket for per-key
// rate limiting. Bucket state lives in a map guarded by a mutex; there is
// no shared backing store, so the limiter only holds across a single
// broker process.
package ratelimit

import (
	"sync"
	"time"
)

type bucket struct {
	tokens float64
	lastMS int64
}

// TokenBucket rate-limits per key (e.g. per remote address) in-process.
type TokenBucket struct {
	mu       sync.Mutex
	buckets  map[string]*bucket
	capacity float64
	refill   float64 // tokens per second
	clock    func() time.Time
}

// NewTokenBucket constructs a bucket with the given capacity and refill rate.
func NewTokenBucket(capacity int, refillPerSecond float64) *TokenBucket {
	return &TokenBucket{
		buckets:  make(map[string]*bucket),
		capacity: float64(capacity),
		refill:   refillPerSecond,
		clock:    time.Now,
	}
}

// Allow consumes a single token for key if one is available. It returns
// the allowed flag and the token count remaining after the attempt.
func (b *TokenBucket) Allow(key string) (bool, float64) {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.clock().UnixMilli()
	bk, ok := b.buckets[key]
	if !ok {
		bk = &bucket{tokens: b.capacity, lastMS: now}
		b.buckets[key] = bk
	}

	delta := now - bk.lastMS
	if delta < 0 {
		delta = 0
	}
	bk.tokens += float64(delta) / 1000 * b.refill
	if bk.tokens > b.capacity {
		bk.tokens = b.capacity
	}
	bk.lastMS = now

	if bk.tokens < 1 {
		return false, bk.tokens
	}
	bk.tokens--
	return true, bk.tokens
}
