package cache

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

const reactionCountTTL = 10 * time.Minute

// Connect parses a redis:// URL and verifies the server answers.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis url: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, fmt.Errorf("failed to connect redis: %w", err)
	}
	return client, nil
}

// ReactionCounts is a read-through cache of per-post reaction counts. The
// database stays authoritative: every failure here is logged and reported as a
// miss. A nil *ReactionCounts, or one without a client, caches nothing.
type ReactionCounts struct {
	client *redis.Client
	logger *slog.Logger
}

func NewReactionCounts(client *redis.Client, logger *slog.Logger) *ReactionCounts {
	if logger == nil {
		logger = slog.Default()
	}
	return &ReactionCounts{client: client, logger: logger}
}

func ReactionCountKey(postID string) string {
	return "reaction_count:" + postID
}

func (c *ReactionCounts) enabled() bool {
	return c != nil && c.client != nil
}

func (c *ReactionCounts) Get(ctx context.Context, postID string) (int64, bool) {
	if !c.enabled() {
		return 0, false
	}

	val, err := c.client.Get(ctx, ReactionCountKey(postID)).Result()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.logger.WarnContext(ctx, "reaction count cache read failed", "post_id", postID, "err", err)
		}
		return 0, false
	}

	n, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

func (c *ReactionCounts) Set(ctx context.Context, postID string, count int64) {
	if !c.enabled() {
		return
	}
	if err := c.client.Set(ctx, ReactionCountKey(postID), count, reactionCountTTL).Err(); err != nil {
		c.logger.WarnContext(ctx, "reaction count cache write failed", "post_id", postID, "err", err)
	}
}

func (c *ReactionCounts) Invalidate(ctx context.Context, postIDs ...string) {
	if !c.enabled() || len(postIDs) == 0 {
		return
	}

	keys := make([]string, 0, len(postIDs))
	for _, id := range postIDs {
		keys = append(keys, ReactionCountKey(id))
	}
	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		c.logger.WarnContext(ctx, "reaction count cache invalidation failed", "post_ids", postIDs, "err", err)
	}
}
