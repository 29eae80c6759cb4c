package service

import (
	"bytes"
	"context"
	"errors"
	"image"
	"image/color"
	"image/png"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/disintegration/imaging"

	"portfolio-photo-sync/cache"
	"portfolio-photo-sync/models"
	"portfolio-photo-sync/repository"
)

func encodePNG(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for x := 0; x < w; x++ {
		for y := 0; y < h; y++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		t.Fatal(err)
	}
	return buf.Bytes()
}

func TestOptimizeImage(t *testing.T) {
	src := encodePNG(t, 1600, 900)

	tests := []struct {
		size       PreviewSize
		wantWidth  int
		wantHeight int
	}{
		{PreviewThumb, 300, 168},
		{PreviewMedium, 800, 450},
	}

	for _, tt := range tests {
		t.Run(string(tt.size), func(t *testing.T) {
			out, err := OptimizeImage(src, tt.size)
			if err != nil {
				t.Fatalf("OptimizeImage() error = %v", err)
			}
			img, err := imaging.Decode(bytes.NewReader(out))
			if err != nil {
				t.Fatalf("output does not decode: %v", err)
			}
			if b := img.Bounds(); b.Dx() != tt.wantWidth || b.Dy() != tt.wantHeight {
				t.Errorf("bounds = %dx%d, want %dx%d", b.Dx(), b.Dy(), tt.wantWidth, tt.wantHeight)
			}
		})
	}
}

func TestOptimizeImageKeepsSmallImages(t *testing.T) {
	out, err := OptimizeImage(encodePNG(t, 120, 80), PreviewThumb)
	if err != nil {
		t.Fatalf("OptimizeImage() error = %v", err)
	}
	img, err := imaging.Decode(bytes.NewReader(out))
	if err != nil {
		t.Fatal(err)
	}
	if b := img.Bounds(); b.Dx() != 120 || b.Dy() != 80 {
		t.Errorf("bounds = %dx%d, want 120x80", b.Dx(), b.Dy())
	}
}

func TestOptimizeImageRejectsGarbage(t *testing.T) {
	if _, err := OptimizeImage([]byte("not an image"), PreviewMedium); err == nil {
		t.Error("OptimizeImage() error = nil, want decode error")
	}
}

func TestParsePreviewSize(t *testing.T) {
	tests := []struct {
		in      string
		want    PreviewSize
		wantErr bool
	}{
		{"", PreviewMedium, false},
		{"thumb", PreviewThumb, false},
		{"medium", PreviewMedium, false},
		{"huge", "", true},
	}
	for _, tt := range tests {
		got, err := ParsePreviewSize(tt.in)
		if (err != nil) != tt.wantErr || got != tt.want {
			t.Errorf("ParsePreviewSize(%q) = %q, %v", tt.in, got, err)
		}
	}
}

func TestGetPreviewCachesRendition(t *testing.T) {
	src := encodePNG(t, 1000, 1000)
	var hits atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		hits.Add(1)
		w.Header().Set("Content-Type", "image/png")
		_, _ = w.Write(src)
	}))
	defer srv.Close()

	photos := repository.NewMemoryPhotoRepository()
	ctx := context.Background()
	if err := photos.Insert(ctx, &models.Photo{ID: "p1", ExternalID: "portfolio/a", ImageURL: srv.URL + "/a.png"}); err != nil {
		t.Fatal(err)
	}

	previews, err := cache.Open("", time.Hour)
	if err != nil {
		t.Fatal(err)
	}
	defer previews.Close()

	svc := NewPreviewService(photos, previews, 5*time.Second)

	first, err := svc.GetPreview(ctx, "p1", PreviewThumb)
	if err != nil {
		t.Fatalf("GetPreview() error = %v", err)
	}
	second, err := svc.GetPreview(ctx, "p1", PreviewThumb)
	if err != nil {
		t.Fatalf("second GetPreview() error = %v", err)
	}

	if !bytes.Equal(first, second) {
		t.Error("cached preview differs from the rendered one")
	}
	if n := hits.Load(); n != 1 {
		t.Errorf("origin fetched %d times, want 1", n)
	}
}

func TestGetPreviewUnknownPhoto(t *testing.T) {
	svc := NewPreviewService(repository.NewMemoryPhotoRepository(), nil, time.Second)

	_, err := svc.GetPreview(context.Background(), "missing", PreviewMedium)
	if !errors.Is(err, repository.ErrNotFound) {
		t.Fatalf("GetPreview() error = %v, want ErrNotFound", err)
	}
}

func TestGetPreviewOriginFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	photos := repository.NewMemoryPhotoRepository()
	ctx := context.Background()
	if err := photos.Insert(ctx, &models.Photo{ID: "p1", ExternalID: "portfolio/a", ImageURL: srv.URL}); err != nil {
		t.Fatal(err)
	}

	svc := NewPreviewService(photos, nil, time.Second)
	if _, err := svc.GetPreview(ctx, "p1", PreviewMedium); err == nil {
		t.Fatal("GetPreview() error = nil, want download error")
	}
}
