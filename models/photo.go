package models

import (
	"strings"
	"time"
)

// AssetContext holds the optional free-form metadata a media host attaches to an
// asset. Every field is optional; an empty string means "not provided".
type AssetContext struct {
	Title       string `json:"title,omitempty"`
	Caption     string `json:"caption,omitempty"`
	Description string `json:"description,omitempty"`
	Alt         string `json:"alt,omitempty"`
	Location    string `json:"location,omitempty"`
}

// RemoteAsset represents an image as listed by the remote media host.
// It is a read-only snapshot taken at listing time.
type RemoteAsset struct {
	// ExternalID is the host's unique id and the catalog dedup key.
	ExternalID string `json:"externalId"`
	// Path is the hierarchical name used for classification and titles.
	// For Cloudinary it equals ExternalID (the public_id).
	Path      string       `json:"path"`
	SecureURL string       `json:"secureUrl"`
	Context   AssetContext `json:"context"`
	Tags      []string     `json:"tags,omitempty"`
	Format    string       `json:"format,omitempty"`
	Width     int          `json:"width"`
	Height    int          `json:"height"`
	CreatedAt time.Time    `json:"createdAt"`
}

// DisplayPath returns Path, falling back to ExternalID.
func (a RemoteAsset) DisplayPath() string {
	if a.Path != "" {
		return a.Path
	}
	return a.ExternalID
}

// HasTag reports whether the asset carries tag, ignoring case.
func (a RemoteAsset) HasTag(tag string) bool {
	for _, t := range a.Tags {
		if strings.EqualFold(strings.TrimSpace(t), tag) {
			return true
		}
	}
	return false
}

// Photo represents a row of the photos table (the local catalog record)
type Photo struct {
	ID             string    `json:"id"`
	ExternalID     string    `json:"cloudinaryId"`
	Title          string    `json:"title"`
	Description    string    `json:"description"`
	Location       string    `json:"location"`
	ImageURL       string    `json:"imageUrl"`
	Width          int       `json:"width"`
	Height         int       `json:"height"`
	Published      bool      `json:"published"`
	PhotographerID string    `json:"photographerId"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}
