// Package storage manages the media buckets listing photos and documents
// are uploaded into. Buckets are directories under a configured root.
package storage

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
)

// ExpectedBuckets are ensured at startup and probed by the health check.
var ExpectedBuckets = []string{
	"accommodations",
	"tours",
	"events",
	"products",
	"avatars",
}

type MediaStore struct {
	root string
	log  *zap.Logger
}

func NewMediaStore(root string, log *zap.Logger) *MediaStore {
	return &MediaStore{
		root: root,
		log:  log.With(zap.String("component", "media_store")),
	}
}

// EnsureBuckets creates every expected bucket that does not exist yet.
// Called once at startup.
func (s *MediaStore) EnsureBuckets() error {
	for _, bucket := range ExpectedBuckets {
		dir := filepath.Join(s.root, bucket)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("ensure bucket %s: %w", bucket, err)
		}
	}
	s.log.Info("Media buckets ready",
		zap.String("root", s.root),
		zap.Int("count", len(ExpectedBuckets)),
	)
	return nil
}

// BucketsOK reports whether every expected bucket is present and a
// directory. Used by the health check.
func (s *MediaStore) BucketsOK() bool {
	for _, bucket := range ExpectedBuckets {
		info, err := os.Stat(filepath.Join(s.root, bucket))
		if err != nil || !info.IsDir() {
			return false
		}
	}
	return true
}

// Path returns the on-disk location for an object in a bucket.
func (s *MediaStore) Path(bucket, object string) string {
	return filepath.Join(s.root, bucket, object)
}
