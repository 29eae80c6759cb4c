package service

import (
	"context"
	"errors"
	"fmt"
	"path"
	"sort"
	"strings"
	"time"

	"google.golang.org/api/drive/v3"
	"google.golang.org/api/googleapi"
	"google.golang.org/api/option"

	"portfolio-photo-sync/config"
	"portfolio-photo-sync/logging"
	"portfolio-photo-sync/metrics"
	"portfolio-photo-sync/models"
)

const driveListFields = "nextPageToken, files(id, name, mimeType, createdTime, description, properties, imageMediaMetadata(width, height))"

var imageMimeTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/jpg":  true,
	"image/webp": true,
}

// DriveService lists photos kept in a Google Drive folder
// Implements AssetListerInterface
type DriveService struct {
	client   *drive.Service
	pageSize int
}

// NewDriveService creates a DriveService authenticated with a service account,
// either from a JSON file path or from inline JSON
func NewDriveService(ctx context.Context, cfg config.RemoteConfig) (*DriveService, error) {
	var opt option.ClientOption
	if cfg.DriveCredentialsJSON != "" {
		opt = option.WithCredentialsJSON([]byte(cfg.DriveCredentialsJSON))
	} else {
		opt = option.WithCredentialsFile(cfg.DriveCredentialsFile)
	}

	client, err := drive.NewService(ctx, opt, option.WithScopes(drive.DriveReadonlyScope))
	if err != nil {
		return nil, fmt.Errorf("failed to create drive service: %w", err)
	}
	return NewDriveServiceWithClient(client, cfg.PageSize), nil
}

// NewDriveServiceWithClient wraps an existing drive client
func NewDriveServiceWithClient(client *drive.Service, pageSize int) *DriveService {
	if pageSize <= 0 || pageSize > 1000 {
		pageSize = 100
	}
	return &DriveService{client: client, pageSize: pageSize}
}

// Ensure DriveService implements AssetListerInterface
var _ AssetListerInterface = (*DriveService)(nil)

// Provider returns "drive"
func (ds *DriveService) Provider() string { return "drive" }

// ListAssets lists all image files in a Google Drive folder
func (ds *DriveService) ListAssets(ctx context.Context, folderID string, maxResults int) ([]models.RemoteAsset, error) {
	folderID = strings.TrimSpace(folderID)
	if folderID == "" {
		return nil, ErrInvalidScope
	}

	start := time.Now()
	defer func() { metrics.RecordRemoteList(ds.Provider(), time.Since(start)) }()

	query := fmt.Sprintf("'%s' in parents and trashed=false and mimeType contains 'image/'", escapeDriveQuery(folderID))

	var assets []models.RemoteAsset
	pageToken := ""
	for {
		call := ds.client.Files.List().
			Q(query).
			Fields(driveListFields).
			OrderBy("createdTime desc").
			PageSize(int64(ds.pageSize)).
			Context(ctx)
		if pageToken != "" {
			call = call.PageToken(pageToken)
		}

		r, err := call.Do()
		if err != nil {
			return nil, driveTransportError(err)
		}

		for _, f := range r.Files {
			if !imageMimeTypes[strings.ToLower(f.MimeType)] {
				continue
			}
			assets = append(assets, driveFileToAsset(f))
		}

		pageToken = r.NextPageToken
		if pageToken == "" || (maxResults > 0 && len(assets) >= maxResults) {
			break
		}
	}

	if maxResults > 0 && len(assets) > maxResults {
		assets = assets[:maxResults]
	}
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].CreatedAt.After(assets[j].CreatedAt)
	})

	logging.Debug().Str("folder_id", folderID).Int("count", len(assets)).Msg("Listed Drive folder")
	return assets, nil
}

func driveFileToAsset(f *drive.File) models.RemoteAsset {
	createdAt, _ := time.Parse(time.RFC3339, f.CreatedTime)

	asset := models.RemoteAsset{
		ExternalID: f.Id,
		Path:       strings.TrimSuffix(f.Name, path.Ext(f.Name)),
		SecureURL:  fmt.Sprintf("https://drive.google.com/uc?id=%s", f.Id),
		Context: models.AssetContext{
			Title:    f.Properties["title"],
			Caption:  f.Description,
			Location: f.Properties["location"],
		},
		Tags:      splitTags(f.Properties["tags"]),
		Format:    strings.TrimPrefix(strings.ToLower(f.MimeType), "image/"),
		CreatedAt: createdAt,
	}
	if m := f.ImageMediaMetadata; m != nil {
		asset.Width = int(m.Width)
		asset.Height = int(m.Height)
	}
	return asset
}

func splitTags(raw string) []string {
	if raw == "" {
		return nil
	}
	var tags []string
	for _, t := range strings.Split(raw, ",") {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}
	return tags
}

var driveQueryEscaper = strings.NewReplacer(`\`, `\\`, `'`, `\'`)

// escapeDriveQuery quotes a value for use inside a single-quoted q literal.
func escapeDriveQuery(v string) string {
	return driveQueryEscaper.Replace(v)
}

func driveTransportError(err error) error {
	te := &TransportError{Provider: "drive", Err: err}
	var gErr *googleapi.Error
	if errors.As(err, &gErr) {
		te.StatusCode = gErr.Code
	}
	return te
}
