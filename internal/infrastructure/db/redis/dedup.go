package redis

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

const defaultDedupTTL = time.Hour

// DedupChecker suppresses double submissions of the public contact form.
// Key format: lead:dedup:<sha256(email|message)>
type DedupChecker struct {
	client *redis.Client
	ttl    time.Duration
}

// NewDedupChecker creates a DedupChecker wrapping the given Redis client.
// A non-positive ttl falls back to one hour.
func NewDedupChecker(client *redis.Client, ttl time.Duration) *DedupChecker {
	if ttl <= 0 {
		ttl = defaultDedupTTL
	}
	return &DedupChecker{client: client, ttl: ttl}
}

// IsDuplicate reports whether this exact submission was seen recently.
func (d *DedupChecker) IsDuplicate(ctx context.Context, email, message string) (bool, error) {
	n, err := d.client.Exists(ctx, d.key(email, message)).Result()
	if err != nil {
		return false, fmt.Errorf("dedup check: %w", err)
	}
	return n > 0, nil
}

// Mark records that this submission was accepted (expires after the TTL).
func (d *DedupChecker) Mark(ctx context.Context, email, message string) error {
	return d.client.Set(ctx, d.key(email, message), "1", d.ttl).Err()
}

func (d *DedupChecker) key(email, message string) string {
	sum := sha256.Sum256([]byte(email + "|" + message))
	return "lead:dedup:" + hex.EncodeToString(sum[:])
}
