package cache

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
)

func TestReactionCountKey(t *testing.T) {
	assert.Equal(t, "reaction_count:p1", ReactionCountKey("p1"))
}

func TestReactionCountsDisabled(t *testing.T) {
	ctx := context.Background()

	var nilCache *ReactionCounts
	_, ok := nilCache.Get(ctx, "p1")
	assert.False(t, ok)
	nilCache.Set(ctx, "p1", 3)
	nilCache.Invalidate(ctx, "p1")

	noClient := NewReactionCounts(nil, nil)
	noClient.Set(ctx, "p1", 3)
	_, ok = noClient.Get(ctx, "p1")
	assert.False(t, ok)
}

func TestReactionCountsUnreachableServerIsAMiss(t *testing.T) {
	client := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 100 * time.Millisecond,
		MaxRetries:  -1,
	})
	defer client.Close()

	c := NewReactionCounts(client, slog.New(slog.NewTextHandler(io.Discard, nil)))
	ctx := context.Background()

	c.Set(ctx, "p1", 7)
	_, ok := c.Get(ctx, "p1")
	assert.False(t, ok)
	c.Invalidate(ctx, "p1")
}

func TestConnectRejectsBadURL(t *testing.T) {
	_, err := Connect(context.Background(), "not-a-url")
	assert.Error(t, err)
}
