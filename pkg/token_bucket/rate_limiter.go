package token_bucket

import (
	"sync"
	"time"
)

// TokenBucket admits a request while tokens remain and refills them at a
// fixed rate up to capacity.
type TokenBucket struct {
	capacity   int
	tokens     int
	refillRate float64
	lastRefill time.Time
	now        func() time.Time
	mu         sync.Mutex
}

func NewTokenBucket(capacity int, refillRate float64) *TokenBucket {
	return newTokenBucket(capacity, refillRate, time.Now)
}

func newTokenBucket(capacity int, refillRate float64, now func() time.Time) *TokenBucket {
	return &TokenBucket{
		capacity:   capacity,
		tokens:     capacity,
		refillRate: refillRate,
		lastRefill: now(),
		now:        now,
	}
}

func (t *TokenBucket) Allow() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()

	if t.tokens > 0 {
		t.tokens--
		return true
	}
	return false
}

func (t *TokenBucket) refill() {
	now := t.now()
	elapsed := now.Sub(t.lastRefill).Seconds()
	if elapsed <= 0 {
		return
	}

	tokensToAdd := int(elapsed * t.refillRate)

	if tokensToAdd > 0 {
		t.tokens += tokensToAdd
		if t.tokens > t.capacity {
			t.tokens = t.capacity
		}
		t.lastRefill = now
	}
}

// full reports whether the bucket has refilled completely, i.e. its client
// has been idle long enough to be forgotten.
func (t *TokenBucket) full() bool {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.refill()
	return t.tokens >= t.capacity
}

// KeyedBuckets keeps one TokenBucket per client key.
type KeyedBuckets struct {
	capacity   int
	refillRate float64
	now        func() time.Time

	mu      sync.Mutex
	buckets map[string]*TokenBucket
}

func NewKeyedBuckets(capacity int, refillRate float64) *KeyedBuckets {
	return newKeyedBuckets(capacity, refillRate, time.Now)
}

func newKeyedBuckets(capacity int, refillRate float64, now func() time.Time) *KeyedBuckets {
	return &KeyedBuckets{
		capacity:   capacity,
		refillRate: refillRate,
		now:        now,
		buckets:    make(map[string]*TokenBucket),
	}
}

func (k *KeyedBuckets) Allow(key string) bool {
	k.mu.Lock()
	bucket, ok := k.buckets[key]
	if !ok {
		bucket = newTokenBucket(k.capacity, k.refillRate, k.now)
		k.buckets[key] = bucket
	}
	k.mu.Unlock()

	return bucket.Allow()
}

// Prune drops buckets that have refilled completely and returns how many
// were removed.
func (k *KeyedBuckets) Prune() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	removed := 0
	for key, bucket := range k.buckets {
		if bucket.full() {
			delete(k.buckets, key)
			removed++
		}
	}
	return removed
}

// Len is the number of clients currently tracked.
func (k *KeyedBuckets) Len() int {
	k.mu.Lock()
	defer k.mu.Unlock()

	return len(k.buckets)
}
