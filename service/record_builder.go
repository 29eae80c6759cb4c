package service

import (
	"strings"
	"time"

	"github.com/google/uuid"

	"portfolio-photo-sync/models"
)

// UntitledPhoto is the title used when an asset path has no usable segment.
const UntitledPhoto = "Untitled"

// RecordBuilder maps eligible remote assets to unsaved catalog records.
type RecordBuilder struct {
	newID func() string
	now   func() time.Time
}

// NewRecordBuilder uses UUIDv7 ids (millisecond timestamp + random bits) and
// the UTC wall clock.
func NewRecordBuilder() *RecordBuilder {
	return &RecordBuilder{
		newID: func() string { return uuid.Must(uuid.NewV7()).String() },
		now:   func() time.Time { return time.Now().UTC() },
	}
}

// NewRecordBuilderWith injects the id generator and clock.
func NewRecordBuilderWith(newID func() string, now func() time.Time) *RecordBuilder {
	return &RecordBuilder{newID: newID, now: now}
}

// Build derives a Photo from asset. Synchronized photos are always published:
// anything uploaded under the portfolio scope is considered ready to show.
func (b *RecordBuilder) Build(asset models.RemoteAsset, ownerID string) models.Photo {
	ts := b.now()
	return models.Photo{
		ID:             b.newID(),
		ExternalID:     asset.ExternalID,
		Title:          titleFromPath(asset.DisplayPath()),
		Description:    firstNonEmpty(asset.Context.Caption, asset.Context.Description, asset.Context.Alt),
		Location:       strings.TrimSpace(asset.Context.Location),
		ImageURL:       asset.SecureURL,
		Width:          asset.Width,
		Height:         asset.Height,
		Published:      true,
		PhotographerID: ownerID,
		CreatedAt:      ts,
		UpdatedAt:      ts,
	}
}

// titleFromPath returns the last "/" segment of p.
func titleFromPath(p string) string {
	p = strings.TrimRight(strings.TrimSpace(p), "/")
	if i := strings.LastIndex(p, "/"); i >= 0 {
		p = p[i+1:]
	}
	if p = strings.TrimSpace(p); p == "" {
		return UntitledPhoto
	}
	return p
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v = strings.TrimSpace(v); v != "" {
			return v
		}
	}
	return ""
}
