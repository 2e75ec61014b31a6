// Package guard holds the Redis-backed protections in front of the
// public intake endpoint: the double-submit guard and the per-client
// rate limiter.
package guard

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

// DedupeGuard rejects resubmissions of an identical form payload
// inside a short window. A user double-clicking submit dispatches two
// overlapping requests; only the first reaches Freshdesk.
type DedupeGuard interface {
	// FirstSeen reports whether this fingerprint is new inside the
	// window, claiming it atomically when it is.
	FirstSeen(ctx context.Context, email, message string) (bool, error)
}

type redisDedupeGuard struct {
	client *redis.Client
	window time.Duration
}

// NewDedupeGuard builds a Redis-backed guard. A zero window disables
// deduplication entirely.
func NewDedupeGuard(client *redis.Client, window time.Duration) DedupeGuard {
	return &redisDedupeGuard{client: client, window: window}
}

func (g *redisDedupeGuard) FirstSeen(ctx context.Context, email, message string) (bool, error) {
	if g.window <= 0 || g.client == nil {
		return true, nil
	}
	key := "intake:dedupe:" + fingerprint(email, message)
	return g.client.SetNX(ctx, key, 1, g.window).Result()
}

// fingerprint hashes the identifying submission fields. Email is
// case-insensitive per RFC 5321 common practice; the message is not.
func fingerprint(email, message string) string {
	h := sha256.New()
	h.Write([]byte(strings.ToLower(strings.TrimSpace(email))))
	h.Write([]byte{0})
	h.Write([]byte(message))
	return hex.EncodeToString(h.Sum(nil))
}
