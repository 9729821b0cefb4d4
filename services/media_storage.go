// services/media_storage.go
package services

import (
	"bytes"
	"fmt"
	"image/jpeg"
	"os"
	"strings"

	"github.com/disintegration/imaging"
	storage "github.com/supabase-community/storage-go"
)

const (
	thumbMaxSize = 300
	thumbQuality = 60
)

// MediaStorage wraps the Supabase storage bucket holding identification
// scans and before/after photos.
type MediaStorage struct {
	client  *storage.Client
	bucket  string
	baseURL string
}

func NewMediaStorageFromEnv() *MediaStorage {
	baseURL := strings.TrimSuffix(os.Getenv("STORAGE_URL"), "/")
	bucket := os.Getenv("STORAGE_BUCKET")
	if bucket == "" {
		bucket = "sneakcare-media"
	}
	client := storage.NewClient(baseURL+"/storage/v1", os.Getenv("STORAGE_SERVICE_KEY"), nil)

	return &MediaStorage{
		client:  client,
		bucket:  bucket,
		baseURL: baseURL,
	}
}

func (s *MediaStorage) Bucket() string {
	return s.bucket
}

// Upload stores an object under the given key and returns its public URL.
func (s *MediaStorage) Upload(key string, data []byte, contentType string) (string, error) {
	upsert := true
	_, err := s.client.UploadFile(s.bucket, key, bytes.NewReader(data), storage.FileOptions{
		ContentType: &contentType,
		Upsert:      &upsert,
	})
	if err != nil {
		return "", fmt.Errorf("failed to upload file: %w", err)
	}
	return s.PublicURL(key), nil
}

func (s *MediaStorage) PublicURL(key string) string {
	return fmt.Sprintf("%s/storage/v1/object/public/%s/%s", s.baseURL, s.bucket, key)
}

func (s *MediaStorage) Delete(keys ...string) error {
	_, err := s.client.RemoveFile(s.bucket, keys)
	return err
}

// MakeThumbnail downsizes an image to fit 300px and re-encodes it as JPEG.
// Non-image payloads return an error; callers skip the thumbnail then.
func MakeThumbnail(data []byte) ([]byte, error) {
	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	thumb := imaging.Fit(img, thumbMaxSize, thumbMaxSize, imaging.Lanczos)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, thumb, &jpeg.Options{Quality: thumbQuality}); err != nil {
		return nil, fmt.Errorf("failed to encode thumbnail: %w", err)
	}
	return buf.Bytes(), nil
}
