package storage

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

var (
	ErrBlobNotFound = errors.New("blob not found")
	ErrInvalidKey   = errors.New("invalid blob key")
)

// PublicPrefix is the path under which stored blobs are served and the form in
// which rows reference them.
const PublicPrefix = "/uploads/"

type PutOptions struct {
	// Prefix is prepended to the generated key, e.g. "profile_<userID>_".
	Prefix string
	// FileName is the client-side name; only its extension is kept.
	FileName    string
	ContentType string
}

// BlobStore stores uploaded images in a single flat namespace keyed by
// generated filenames.
type BlobStore interface {
	// Put stores the content and returns the generated key.
	Put(ctx context.Context, r io.Reader, opts PutOptions) (string, error)
	// Get returns ErrBlobNotFound when nothing is stored under key.
	Get(ctx context.Context, key string) ([]byte, error)
	// Delete is idempotent: deleting a missing key is not an error.
	Delete(ctx context.Context, key string) error
	Exists(ctx context.Context, key string) (bool, error)
}

type Config struct {
	Backend          string
	UploadDir        string
	S3               S3Config
	CloudinaryURL    string
	CloudinaryFolder string
}

const (
	BackendFilesystem = "filesystem"
	BackendS3         = "s3"
	BackendCloudinary = "cloudinary"
	BackendMemory     = "memory"
)

func New(ctx context.Context, cfg Config) (BlobStore, error) {
	switch cfg.Backend {
	case "", BackendFilesystem:
		return NewFileSystemStore(cfg.UploadDir)
	case BackendS3:
		return NewS3Store(ctx, cfg.S3)
	case BackendCloudinary:
		return NewCloudinaryStore(cfg.CloudinaryURL, cfg.CloudinaryFolder)
	case BackendMemory:
		return NewMemoryStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend %q", cfg.Backend)
	}
}

// NewKey builds "<prefix><uuid><ext>", keeping the extension only when it is
// a short alphanumeric suffix.
func NewKey(prefix, fileName string) string {
	return prefix + uuid.NewString() + cleanExt(fileName)
}

func cleanExt(fileName string) string {
	ext := strings.ToLower(filepath.Ext(fileName))
	if len(ext) < 2 || len(ext) > 10 {
		return ""
	}
	for _, r := range ext[1:] {
		if (r < 'a' || r > 'z') && (r < '0' || r > '9') {
			return ""
		}
	}
	return ext
}

func PublicPath(key string) string {
	return PublicPrefix + key
}

// KeyFromPath returns the last path segment of a stored reference.
func KeyFromPath(p string) string {
	if i := strings.LastIndex(p, "/"); i >= 0 {
		return p[i+1:]
	}
	return p
}

// IsImage reports whether a content type denotes an image.
func IsImage(contentType string) bool {
	return strings.HasPrefix(strings.ToLower(strings.TrimSpace(contentType)), "image/")
}

func validateKey(key string) error {
	if key == "" || key == "." || key == ".." || strings.ContainsAny(key, `/\`) {
		return ErrInvalidKey
	}
	return nil
}

// OwnedKey extracts the blob key from a row reference, reporting false for
// references that were not produced by a BlobStore (e.g. external URLs).
func OwnedKey(ref string) (string, bool) {
	if !strings.HasPrefix(ref, PublicPrefix) {
		return "", false
	}
	key := strings.TrimPrefix(ref, PublicPrefix)
	if validateKey(key) != nil {
		return "", false
	}
	return key, true
}

// Upload is a file received from a client, ready to be handed to a BlobStore.
type Upload struct {
	Reader      io.Reader
	FileName    string
	ContentType string
}

// Discard deletes the blob behind a row reference. Cleanup happens after the
// owning row is gone, so failures are logged and never returned.
func Discard(ctx context.Context, store BlobStore, logger *slog.Logger, ref string) {
	key, ok := OwnedKey(ref)
	if !ok {
		return
	}
	if err := store.Delete(ctx, key); err != nil {
		logger.WarnContext(ctx, "failed to delete blob", "key", key, "err", err)
	}
}
