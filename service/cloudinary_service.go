package service

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cloudinary/cloudinary-go/v2"
	"github.com/cloudinary/cloudinary-go/v2/api"
	"github.com/cloudinary/cloudinary-go/v2/api/admin"
	cldconfig "github.com/cloudinary/cloudinary-go/v2/config"
	"github.com/goccy/go-json"

	"portfolio-photo-sync/config"
	"portfolio-photo-sync/logging"
	"portfolio-photo-sync/metrics"
	"portfolio-photo-sync/models"
)

// cloudinaryMaxPage is the Admin API's hard cap on max_results.
const cloudinaryMaxPage = 500

// CloudinaryService lists images through the Cloudinary Admin API
// Implements AssetListerInterface
type CloudinaryService struct {
	cld      *cloudinary.Cloudinary
	pageSize int
	timeout  time.Duration
}

// NewCloudinaryService creates a CloudinaryService from the remote configuration.
// BaseURL replaces the SDK's API host (tests point it at a local server).
func NewCloudinaryService(cfg config.RemoteConfig) (*CloudinaryService, error) {
	conf, err := cldconfig.NewFromParams(cfg.CloudName, cfg.APIKey, cfg.APISecret)
	if err != nil {
		return nil, fmt.Errorf("failed to configure cloudinary: %w", err)
	}
	if baseURL := strings.TrimRight(cfg.BaseURL, "/"); baseURL != "" {
		conf.API.UploadPrefix = baseURL
	}

	cld, err := cloudinary.NewFromConfiguration(*conf)
	if err != nil {
		return nil, fmt.Errorf("failed to create cloudinary client: %w", err)
	}

	pageSize := cfg.PageSize
	if pageSize <= 0 || pageSize > cloudinaryMaxPage {
		pageSize = cloudinaryMaxPage
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	return &CloudinaryService{cld: cld, pageSize: pageSize, timeout: timeout}, nil
}

// Ensure CloudinaryService implements AssetListerInterface
var _ AssetListerInterface = (*CloudinaryService)(nil)

// Provider returns "cloudinary"
func (s *CloudinaryService) Provider() string { return "cloudinary" }

// cloudinaryResource is the part of a listed resource the sync reads.
// SDK results are re-decoded into it so the context map keeps its custom keys.
type cloudinaryResource struct {
	PublicID  string    `json:"public_id"`
	Format    string    `json:"format"`
	CreatedAt time.Time `json:"created_at"`
	Width     int       `json:"width"`
	Height    int       `json:"height"`
	URL       string    `json:"url"`
	SecureURL string    `json:"secure_url"`
	Tags      []string  `json:"tags"`
	Context   struct {
		Custom map[string]string `json:"custom"`
	} `json:"context"`
}

// ListAssets pages through the uploaded images under the given prefix
func (s *CloudinaryService) ListAssets(ctx context.Context, scope string, maxResults int) ([]models.RemoteAsset, error) {
	scope = strings.TrimPrefix(strings.TrimSpace(scope), "/")
	if scope == "" {
		return nil, ErrInvalidScope
	}
	if maxResults <= 0 {
		maxResults = cloudinaryMaxPage
	}

	start := time.Now()
	defer func() { metrics.RecordRemoteList(s.Provider(), time.Since(start)) }()

	var assets []models.RemoteAsset
	cursor := ""
	for len(assets) < maxResults {
		limit := s.pageSize
		if remaining := maxResults - len(assets); remaining < limit {
			limit = remaining
		}

		page, next, err := s.fetchPage(ctx, scope, limit, cursor)
		if err != nil {
			return nil, err
		}

		for _, r := range page {
			assets = append(assets, r.toRemoteAsset())
		}
		logging.Debug().Str("scope", scope).Int("page_size", len(page)).Int("total", len(assets)).Msg("Fetched Cloudinary page")

		cursor = next
		if cursor == "" || len(page) == 0 {
			break
		}
	}

	if len(assets) > maxResults {
		assets = assets[:maxResults]
	}
	sort.SliceStable(assets, func(i, j int) bool {
		return assets[i].CreatedAt.After(assets[j].CreatedAt)
	})
	return assets, nil
}

func (s *CloudinaryService) fetchPage(ctx context.Context, prefix string, limit int, cursor string) ([]cloudinaryResource, string, error) {
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()

	res, err := s.cld.Admin.Assets(ctx, admin.AssetsParams{
		AssetType:    api.Image,
		DeliveryType: string(api.Upload),
		Prefix:       prefix,
		Tags:         api.Bool(true),
		Context:      api.Bool(true),
		MaxResults:   limit,
		NextCursor:   cursor,
	})
	if err != nil {
		return nil, "", &TransportError{Provider: s.Provider(), Err: err}
	}
	if res.Error.Message != "" {
		return nil, "", &TransportError{Provider: s.Provider(), Err: errors.New(res.Error.Message)}
	}

	raw, err := json.Marshal(res.Assets)
	if err != nil {
		return nil, "", &TransportError{Provider: s.Provider(), Err: fmt.Errorf("decode resources: %w", err)}
	}
	var page []cloudinaryResource
	if err := json.Unmarshal(raw, &page); err != nil {
		return nil, "", &TransportError{Provider: s.Provider(), Err: fmt.Errorf("decode resources: %w", err)}
	}
	return page, res.NextCursor, nil
}

func (r cloudinaryResource) toRemoteAsset() models.RemoteAsset {
	imageURL := r.SecureURL
	if imageURL == "" {
		imageURL = r.URL
	}

	custom := r.Context.Custom
	return models.RemoteAsset{
		ExternalID: r.PublicID,
		Path:       r.PublicID,
		SecureURL:  imageURL,
		Context: models.AssetContext{
			Title:       custom["title"],
			Caption:     custom["caption"],
			Description: custom["description"],
			Alt:         custom["alt"],
			Location:    custom["location"],
		},
		Tags:      r.Tags,
		Format:    r.Format,
		Width:     r.Width,
		Height:    r.Height,
		CreatedAt: r.CreatedAt,
	}
}
