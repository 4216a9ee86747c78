package testutil

import (
	"context"
	"errors"
	"io"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"anoa.com/socialfeed/internal/bootstrap"
	"anoa.com/socialfeed/internal/entity"
	"anoa.com/socialfeed/pkg/clock"
	"anoa.com/socialfeed/pkg/database"
	"anoa.com/socialfeed/pkg/storage"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// NewTestDB returns a migrated in-memory SQLite database with foreign keys
// enforced. A single connection keeps every query on the same database.
func NewTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := database.Open(sqlite.Open(":memory:?_foreign_keys=on"), false)
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, bootstrap.Migrate(db))

	t.Cleanup(func() {
		_ = sqlDB.Close()
	})
	return db
}

var fixtureSeq atomic.Int64

// fixtureTime hands out strictly increasing timestamps so ordering assertions
// never depend on clock resolution.
func fixtureTime() time.Time {
	return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC).Add(time.Duration(fixtureSeq.Add(1)) * time.Second)
}

func CreateUser(t *testing.T, db *gorm.DB, firstName string) *entity.User {
	t.Helper()
	user := &entity.User{FirstName: firstName, CreatedAt: fixtureTime()}
	require.NoError(t, db.Create(user).Error)
	return user
}

func CreatePost(t *testing.T, db *gorm.DB, userID, content string, imageURL *string) *entity.Post {
	t.Helper()
	post := &entity.Post{UserID: userID, Content: content, ImageURL: imageURL, CreatedAt: fixtureTime()}
	require.NoError(t, db.Create(post).Error)
	return post
}

func CreateComment(t *testing.T, db *gorm.DB, postID, userID, content string) *entity.Comment {
	t.Helper()
	comment := &entity.Comment{PostID: postID, UserID: userID, Content: content, CreatedAt: fixtureTime()}
	require.NoError(t, db.Create(comment).Error)
	return comment
}

func CreateReaction(t *testing.T, db *gorm.DB, postID, userID, reactionType string) *entity.Reaction {
	t.Helper()
	reaction := &entity.Reaction{PostID: postID, UserID: userID, Type: reactionType, CreatedAt: fixtureTime()}
	require.NoError(t, db.Create(reaction).Error)
	return reaction
}

// PutBlob stores a small image in store and returns its public path.
func PutBlob(t *testing.T, store storage.BlobStore, prefix string) string {
	t.Helper()
	key, err := store.Put(context.Background(), strings.NewReader("\x89PNG fixture"), storage.PutOptions{
		Prefix:      prefix,
		FileName:    "fixture.png",
		ContentType: "image/png",
	})
	require.NoError(t, err)
	return storage.PublicPath(key)
}

func Count(t *testing.T, db *gorm.DB, model any, query string, args ...any) int64 {
	t.Helper()
	var n int64
	require.NoError(t, db.Model(model).Where(query, args...).Count(&n).Error)
	return n
}

// FixedClock returns a clock pinned to a known instant.
func FixedClock() clock.Fixed {
	return clock.Fixed(time.Date(2024, 6, 1, 12, 0, 0, 0, time.UTC))
}

var ErrInjected = errors.New("injected failure")

// FlakyStore wraps a MemoryStore and fails the operations that are switched on.
type FlakyStore struct {
	*storage.MemoryStore
	FailPut    bool
	FailDelete bool
}

func NewFlakyStore() *FlakyStore {
	return &FlakyStore{MemoryStore: storage.NewMemoryStore()}
}

func (s *FlakyStore) Put(ctx context.Context, r io.Reader, opts storage.PutOptions) (string, error) {
	if s.FailPut {
		return "", ErrInjected
	}
	return s.MemoryStore.Put(ctx, r, opts)
}

func (s *FlakyStore) Delete(ctx context.Context, key string) error {
	if s.FailDelete {
		return ErrInjected
	}
	return s.MemoryStore.Delete(ctx, key)
}
