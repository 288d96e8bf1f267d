// Package cache stores final answers under a short TTL so repeated questions
// skip the provider waterfall. Redis is the preferred backend; when it is
// unreachable at startup the process permanently degrades to an in-process
// map. Callers never see a storage error, only misses.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"log/slog"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"
)

const keyPrefix = "faqbot:answer:"

// Store is the answer cache contract. Get reports a miss for absent or
// expired entries; Set overwrites unconditionally.
type Store interface {
	Get(ctx context.Context, key string) (string, bool)
	Set(ctx context.Context, key, value string, ttl time.Duration)
}

// Key derives the cache key for a question: the SHA-256 of the normalized
// text (lowercased, whitespace collapsed, trailing punctuation trimmed)
// under a fixed prefix. Normalization lets trivially different phrasings of
// the same question share an entry.
func Key(question string) string {
	norm := strings.ToLower(strings.TrimSpace(question))
	norm = strings.Join(strings.Fields(norm), " ")
	norm = strings.TrimRight(norm, "?.!,")
	sum := sha256.Sum256([]byte(norm))
	return keyPrefix + hex.EncodeToString(sum[:])
}

// New probes Redis once and returns a Redis-backed store if it responds,
// otherwise the in-process fallback. The choice is permanent for the process
// lifetime.
func New(redisURL string) Store {
	opts, err := redis.ParseURL(redisURL)
	if err != nil {
		slog.Warn("invalid redis URL, using in-process cache", "error", err)
		return NewMemory()
	}

	client := redis.NewClient(opts)
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		slog.Warn("redis unreachable, using in-process cache", "error", err)
		client.Close()
		return NewMemory()
	}

	slog.Info("answer cache backed by redis", "addr", opts.Addr)
	return &redisStore{client: client}
}
