package biz

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"time"

	"github.com/kart-io/logger"
	goredis "github.com/redis/go-redis/v9"

	"github.com/kart-io/mentor-ai/internal/model"
	"github.com/kart-io/mentor-ai/pkg/utils/json"
)

// AnswerCache caches chat responses in Redis keyed by the exact question.
// A nil *AnswerCache is a valid no-op cache, so callers never branch.
type AnswerCache struct {
	client *goredis.Client
	ttl    time.Duration
}

// NewAnswerCache creates a cache with the given TTL.
func NewAnswerCache(client *goredis.Client, ttl time.Duration) *AnswerCache {
	return &AnswerCache{client: client, ttl: ttl}
}

// Key derives the cache key from everything that shapes the answer.
func (c *AnswerCache) Key(mentorSlug, message string, topK int) string {
	sum := sha256.Sum256([]byte(fmt.Sprintf("%s|%s|%d", mentorSlug, message, topK)))
	return "mentor-ai:chat:" + hex.EncodeToString(sum[:])
}

// Get returns the cached response for key, or false on miss. Cache errors
// are logged and treated as misses.
func (c *AnswerCache) Get(ctx context.Context, key string) (*model.ChatResponse, bool) {
	if c == nil || c.client == nil {
		return nil, false
	}
	data, err := c.client.Get(ctx, key).Bytes()
	if err != nil {
		if err != goredis.Nil {
			logger.Warnw("chat cache read failed", "error", err)
		}
		return nil, false
	}
	var resp model.ChatResponse
	if err := json.Unmarshal(data, &resp); err != nil {
		logger.Warnw("chat cache entry corrupt", "error", err)
		return nil, false
	}
	return &resp, true
}

// Set stores a response under key. Failures are logged, never propagated.
func (c *AnswerCache) Set(ctx context.Context, key string, resp *model.ChatResponse) {
	if c == nil || c.client == nil {
		return
	}
	data, err := json.Marshal(resp)
	if err != nil {
		logger.Warnw("chat cache marshal failed", "error", err)
		return
	}
	if err := c.client.Set(ctx, key, data, c.ttl).Err(); err != nil {
		logger.Warnw("chat cache write failed", "error", err)
	}
}
