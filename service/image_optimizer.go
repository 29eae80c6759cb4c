package service

import (
	"bytes"
	"fmt"

	"github.com/disintegration/imaging"

	"portfolio-photo-sync/logging"
)

// PreviewSize names a rendition served by the preview endpoint.
type PreviewSize string

const (
	PreviewThumb  PreviewSize = "thumb"
	PreviewMedium PreviewSize = "medium"
)

type previewProfile struct {
	maxDim  int
	quality int
}

var previewProfiles = map[PreviewSize]previewProfile{
	PreviewThumb:  {maxDim: 300, quality: 60},
	PreviewMedium: {maxDim: 800, quality: 75},
}

// ParsePreviewSize maps a query value to a size. Empty means medium.
func ParsePreviewSize(s string) (PreviewSize, error) {
	if s == "" {
		return PreviewMedium, nil
	}
	size := PreviewSize(s)
	if _, ok := previewProfiles[size]; !ok {
		return "", fmt.Errorf("unknown preview size %q (use thumb or medium)", s)
	}
	return size, nil
}

// OptimizeImage decodes any supported format, fits it inside the size's box
// (aspect ratio kept, never upscaled) and re-encodes as JPEG.
// JPEG rather than WebP keeps the build free of cgo.
func OptimizeImage(imageData []byte, size PreviewSize) ([]byte, error) {
	p, ok := previewProfiles[size]
	if !ok {
		return nil, fmt.Errorf("unknown preview size %q", size)
	}

	img, err := imaging.Decode(bytes.NewReader(imageData), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}

	bounds := img.Bounds()
	if bounds.Dx() > p.maxDim || bounds.Dy() > p.maxDim {
		img = imaging.Fit(img, p.maxDim, p.maxDim, imaging.Lanczos)
		logging.Debug().
			Int("from_width", bounds.Dx()).Int("from_height", bounds.Dy()).
			Int("to_width", img.Bounds().Dx()).Int("to_height", img.Bounds().Dy()).
			Msg("🔄 Resized image")
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.JPEG, imaging.JPEGQuality(p.quality)); err != nil {
		return nil, fmt.Errorf("failed to encode to JPEG: %w", err)
	}
	return buf.Bytes(), nil
}
