// Package relay copies photo binaries from the social CDN into owned object
// storage, producing stable public URLs for the catalog.
package relay

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"time"
)

// Uploader is the slice of object storage the relay needs.
type Uploader interface {
	Put(ctx context.Context, key, contentType string, body []byte) error
	PublicURL(key string) string
}

type Relay struct {
	client *http.Client
	store  Uploader
}

func New(store Uploader) *Relay {
	return &Relay{
		client: &http.Client{
			Timeout: 60 * time.Second,
		},
		store: store,
	}
}

// ObjectKey derives the storage key for one photo. The key depends only on
// album and photo ids, so re-importing the same photo overwrites the same
// object instead of accumulating copies.
func ObjectKey(albumID, photoID string) string {
	return fmt.Sprintf("fb-%s-%s.jpg", albumID, photoID)
}

// Copy downloads a photo and re-uploads it under its deterministic key,
// returning the public URL. Both the download and the upload error are
// per-photo failures the caller records without aborting its batch.
func (r *Relay) Copy(ctx context.Context, albumID, photoID, sourceURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, sourceURL, nil)
	if err != nil {
		return "", fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("Accept", "image/webp,image/apng,image/*,*/*;q=0.8")

	resp, err := r.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("download image: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download image: unexpected status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("read image body: %w", err)
	}

	key := ObjectKey(albumID, photoID)
	if err := r.store.Put(ctx, key, "image/jpeg", body); err != nil {
		return "", fmt.Errorf("upload image: %w", err)
	}

	url := r.store.PublicURL(key)
	slog.Debug("relayed photo", "photo", photoID, "key", key, "bytes", len(body))
	return url, nil
}
