package storage

import (
	"os"
	"path/filepath"
	"testing"

	"go.uber.org/zap"
)

func TestEnsureBucketsCreatesAll(t *testing.T) {
	root := t.TempDir()
	store := NewMediaStore(root, zap.NewNop())

	if store.BucketsOK() {
		t.Fatal("buckets reported present before creation")
	}

	if err := store.EnsureBuckets(); err != nil {
		t.Fatalf("ensure buckets: %v", err)
	}
	if !store.BucketsOK() {
		t.Fatal("buckets missing after EnsureBuckets")
	}

	// Idempotent: a second run over existing directories succeeds.
	if err := store.EnsureBuckets(); err != nil {
		t.Fatalf("second ensure buckets: %v", err)
	}
}

func TestBucketsOKRejectsFileInPlaceOfDir(t *testing.T) {
	root := t.TempDir()
	store := NewMediaStore(root, zap.NewNop())
	if err := store.EnsureBuckets(); err != nil {
		t.Fatalf("ensure buckets: %v", err)
	}

	dir := filepath.Join(root, ExpectedBuckets[0])
	if err := os.RemoveAll(dir); err != nil {
		t.Fatalf("remove bucket: %v", err)
	}
	if err := os.WriteFile(dir, []byte("x"), 0644); err != nil {
		t.Fatalf("write file: %v", err)
	}

	if store.BucketsOK() {
		t.Fatal("a plain file must not pass as a bucket")
	}
}

func TestPathJoinsUnderRoot(t *testing.T) {
	store := NewMediaStore("/srv/media", zap.NewNop())

	got := store.Path("accommodations", "casa.jpg")
	want := filepath.Join("/srv/media", "accommodations", "casa.jpg")
	if got != want {
		t.Fatalf("Path = %q, want %q", got, want)
	}
}
