package cache

import (
	"bytes"
	"errors"
	"testing"
	"time"
)

func openTestCache(t *testing.T, ttl time.Duration) *PreviewCache {
	t.Helper()
	c, err := Open("", ttl)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestPreviewCacheRoundTrip(t *testing.T) {
	c := openTestCache(t, 0)

	if _, err := c.Get("p1", "thumb"); !errors.Is(err, ErrMiss) {
		t.Fatalf("Get() on empty cache error = %v, want ErrMiss", err)
	}

	data := []byte{0xFF, 0xD8, 0xFF, 0xE0}
	if err := c.Set("p1", "thumb", data); err != nil {
		t.Fatalf("Set() error = %v", err)
	}

	got, err := c.Get("p1", "thumb")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if !bytes.Equal(got, data) {
		t.Errorf("Get() = %v, want %v", got, data)
	}

	// Sizes are cached independently.
	if _, err := c.Get("p1", "medium"); !errors.Is(err, ErrMiss) {
		t.Errorf("Get(medium) error = %v, want ErrMiss", err)
	}
}

func TestPreviewCacheOnDisk(t *testing.T) {
	dir := t.TempDir()

	c, err := Open(dir, time.Hour)
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	if err := c.Set("p2", "medium", []byte("jpeg")); err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if err := c.Close(); err != nil {
		t.Fatalf("Close() error = %v", err)
	}

	reopened, err := Open(dir, time.Hour)
	if err != nil {
		t.Fatalf("reopen error = %v", err)
	}
	defer reopened.Close()

	got, err := reopened.Get("p2", "medium")
	if err != nil || string(got) != "jpeg" {
		t.Errorf("Get() after reopen = %q, %v", got, err)
	}
}
