package ratelimit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestTokenBucket_CapacityLimit(t *testing.T) {
	bucket := NewTokenBucket(2, 1)

	allowed, _ := bucket.Allow("tenant")
	require.True(t, allowed, "expected first token allowed")

	allowed, _ = bucket.Allow("tenant")
	require.True(t, allowed, "expected second token allowed")

	allowed, _ = bucket.Allow("tenant")
	require.False(t, allowed, "expected third token to be rejected")
}

func TestTokenBucket_Refill(t *testing.T) {
	bucket := NewTokenBucket(1, 1) // one token per second

	now := time.Unix(0, 0)
	bucket.clock = func() time.Time { return now }

	allowed, _ := bucket.Allow("tenant")
	require.True(t, allowed)

	allowed, _ = bucket.Allow("tenant")
	require.False(t, allowed, "bucket should be empty immediately after draining")

	now = now.Add(2 * time.Second)
	allowed, tokens := bucket.Allow("tenant")
	require.True(t, allowed, "expected a token to have refilled after 2s")
	require.InDelta(t, 0, tokens, 0.001)
}

func TestTokenBucket_IndependentKeys(t *testing.T) {
	bucket := NewTokenBucket(1, 1)

	allowed, _ := bucket.Allow("a")
	require.True(t, allowed)

	allowed, _ = bucket.Allow("b")
	require.True(t, allowed, "distinct keys must not share capacity")
}
