package token_bucket

import "time"

func NewTokenBucketWithClock(capacity int, refillRate float64, now func() time.Time) *TokenBucket {
	return newTokenBucket(capacity, refillRate, now)
}

func NewKeyedBucketsWithClock(capacity int, refillRate float64, now func() time.Time) *KeyedBuckets {
	return newKeyedBuckets(capacity, refillRate, now)
}
