package storage

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"path/filepath"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/uploader"
)

// CloudinaryStore maps each key to a Cloudinary public ID inside folder. The
// extension is dropped from the public ID; Cloudinary delivers the original
// format when none is requested.
type CloudinaryStore struct {
	cld        *cloudinary.Cloudinary
	folder     string
	httpClient *http.Client
}

// NewCloudinaryStore reads credentials from cloudinaryURL, or from the
// CLOUDINARY_URL environment variable when it is empty.
func NewCloudinaryStore(cloudinaryURL, folder string) (*CloudinaryStore, error) {
	var (
		cld *cloudinary.Cloudinary
		err error
	)
	if cloudinaryURL != "" {
		cld, err = cloudinary.NewFromURL(cloudinaryURL)
	} else {
		cld, err = cloudinary.New()
	}
	if err != nil {
		return nil, fmt.Errorf("failed to initialize cloudinary client: %w", err)
	}

	// Ensure HTTPS URLs by default.
	cld.Config.URL.Secure = true

	return &CloudinaryStore{
		cld:        cld,
		folder:     strings.Trim(folder, "/"),
		httpClient: &http.Client{Timeout: 30 * time.Second},
	}, nil
}

func (s *CloudinaryStore) publicID(key string) string {
	id := strings.TrimSuffix(key, filepath.Ext(key))
	if s.folder == "" {
		return id
	}
	return s.folder + "/" + id
}

func (s *CloudinaryStore) Put(ctx context.Context, r io.Reader, opts PutOptions) (string, error) {
	key := NewKey(opts.Prefix, opts.FileName)

	resp, err := s.cld.Upload.Upload(ctx, r, uploader.UploadParams{
		PublicID:       s.publicID(key),
		Overwrite:      api.Bool(false),
		UniqueFilename: api.Bool(false),
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload image to cloudinary: %w", err)
	}
	if resp.Error.Message != "" {
		return "", fmt.Errorf("cloudinary upload failed: %s", resp.Error.Message)
	}

	return key, nil
}

func (s *CloudinaryStore) Get(ctx context.Context, key string) ([]byte, error) {
	resp, err := s.fetch(ctx, http.MethodGet, key)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, ErrBlobNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("cloudinary delivery returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Delete treats "not found" as success, matching the other backends.
func (s *CloudinaryStore) Delete(ctx context.Context, key string) error {
	if err := validateKey(key); err != nil {
		return err
	}

	// Invalidate: true helps to clear CDN cache
	resp, err := s.cld.Upload.Destroy(ctx, uploader.DestroyParams{
		PublicID:   s.publicID(key),
		Invalidate: api.Bool(true),
	})
	if err != nil {
		return fmt.Errorf("failed to delete image from cloudinary: %w", err)
	}

	if resp.Result != "ok" && resp.Result != "not found" {
		return fmt.Errorf("cloudinary destroy api returned result: %s", resp.Result)
	}
	return nil
}

func (s *CloudinaryStore) Exists(ctx context.Context, key string) (bool, error) {
	resp, err := s.fetch(ctx, http.MethodHead, key)
	if err != nil {
		return false, err
	}
	resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("cloudinary delivery returned status %d", resp.StatusCode)
	}
}

func (s *CloudinaryStore) fetch(ctx context.Context, method, key string) (*http.Response, error) {
	if err := validateKey(key); err != nil {
		return nil, err
	}

	image, err := s.cld.Image(s.publicID(key))
	if err != nil {
		return nil, fmt.Errorf("failed to build cloudinary asset: %w", err)
	}
	deliveryURL, err := image.String()
	if err != nil {
		return nil, fmt.Errorf("failed to build cloudinary url: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, method, deliveryURL, nil)
	if err != nil {
		return nil, err
	}
	return s.httpClient.Do(req)
}
