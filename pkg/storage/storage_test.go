package storage

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/s3/types"
	"github.com/aws/smithy-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewKey(t *testing.T) {
	key := NewKey("profile_u1_", "Photo.PNG")
	assert.True(t, strings.HasPrefix(key, "profile_u1_"))
	assert.True(t, strings.HasSuffix(key, ".png"))

	assert.NotEqual(t, NewKey("", "a.jpg"), NewKey("", "a.jpg"))
	assert.Equal(t, -1, strings.IndexAny(NewKey("", "evil.p%ng"), "%"))
	assert.Equal(t, "", filepath.Ext(NewKey("", "noext")))
}

func TestPublicPathRoundTrip(t *testing.T) {
	assert.Equal(t, "/uploads/abc.png", PublicPath("abc.png"))
	assert.Equal(t, "abc.png", KeyFromPath("/uploads/abc.png"))
	assert.Equal(t, "abc.png", KeyFromPath("abc.png"))
}

func TestOwnedKey(t *testing.T) {
	key, ok := OwnedKey("/uploads/abc.png")
	assert.True(t, ok)
	assert.Equal(t, "abc.png", key)

	_, ok = OwnedKey("https://cdn.example.com/abc.png")
	assert.False(t, ok)
	_, ok = OwnedKey("/uploads/../etc/passwd")
	assert.False(t, ok)
	_, ok = OwnedKey("/uploads/")
	assert.False(t, ok)
}

func TestIsImage(t *testing.T) {
	assert.True(t, IsImage("image/png"))
	assert.True(t, IsImage(" Image/JPEG"))
	assert.False(t, IsImage("text/plain"))
	assert.False(t, IsImage(""))
}

func testBlobStore(t *testing.T, store BlobStore) {
	t.Helper()
	ctx := context.Background()

	key, err := store.Put(ctx, bytes.NewReader([]byte("png-bytes")), PutOptions{FileName: "cat.png", ContentType: "image/png"})
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(key, ".png"))

	exists, err := store.Exists(ctx, key)
	require.NoError(t, err)
	assert.True(t, exists)

	data, err := store.Get(ctx, key)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(data))

	require.NoError(t, store.Delete(ctx, key))

	exists, err = store.Exists(ctx, key)
	require.NoError(t, err)
	assert.False(t, exists)

	_, err = store.Get(ctx, key)
	assert.ErrorIs(t, err, ErrBlobNotFound)

	// deleting again is a no-op
	assert.NoError(t, store.Delete(ctx, key))
}

func TestMemoryStore(t *testing.T) {
	testBlobStore(t, NewMemoryStore())
}

func TestFileSystemStore(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "uploads")
	store, err := NewFileSystemStore(dir)
	require.NoError(t, err)

	testBlobStore(t, store)
}

func TestFileSystemStoreWritesIntoBaseDir(t *testing.T) {
	dir := t.TempDir()
	store, err := NewFileSystemStore(dir)
	require.NoError(t, err)

	key, err := store.Put(context.Background(), strings.NewReader("x"), PutOptions{Prefix: "profile_1_", FileName: "me.jpg"})
	require.NoError(t, err)

	_, err = os.Stat(filepath.Join(dir, key))
	assert.NoError(t, err)
}

func TestFileSystemStoreRejectsTraversal(t *testing.T) {
	store, err := NewFileSystemStore(t.TempDir())
	require.NoError(t, err)

	_, err = store.Get(context.Background(), "../secret")
	assert.ErrorIs(t, err, ErrInvalidKey)
	assert.ErrorIs(t, store.Delete(context.Background(), ".."), ErrInvalidKey)
}

func TestNewBackendSelection(t *testing.T) {
	store, err := New(context.Background(), Config{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, store)

	store, err = New(context.Background(), Config{UploadDir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileSystemStore{}, store)

	_, err = New(context.Background(), Config{Backend: "ftp"})
	assert.Error(t, err)
}

func TestIsS3NotFound(t *testing.T) {
	assert.True(t, isS3NotFound(&types.NoSuchKey{}))
	assert.True(t, isS3NotFound(fmt.Errorf("head: %w", &types.NotFound{})))
	assert.True(t, isS3NotFound(&smithy.GenericAPIError{Code: "NoSuchKey"}))
	assert.False(t, isS3NotFound(&smithy.GenericAPIError{Code: "AccessDenied"}))
}

type failingDeleteStore struct {
	*MemoryStore
}

func (failingDeleteStore) Delete(ctx context.Context, key string) error {
	return errors.New("backend down")
}

func TestDiscard(t *testing.T) {
	ctx := context.Background()
	nop := slog.New(slog.NewTextHandler(io.Discard, nil))

	store := NewMemoryStore()
	key, err := store.Put(ctx, bytes.NewReader([]byte("x")), PutOptions{FileName: "a.png"})
	require.NoError(t, err)

	Discard(ctx, store, nop, "https://elsewhere.example.com/"+key)
	assert.Equal(t, 1, store.Len())

	Discard(ctx, store, nop, PublicPath(key))
	assert.Zero(t, store.Len())

	// Already gone and failing backends are both tolerated.
	Discard(ctx, store, nop, PublicPath(key))
	Discard(ctx, failingDeleteStore{NewMemoryStore()}, nop, PublicPath("b.png"))
}
