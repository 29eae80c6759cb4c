package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"portfolio-photo-sync/logging"
	"portfolio-photo-sync/metrics"
	"portfolio-photo-sync/models"
	"portfolio-photo-sync/repository"
)

// MessageNothingToSync is the report message when no asset is eligible.
const MessageNothingToSync = "No photos found to synchronize"

// SyncSettings are the per-deployment inputs of a run.
type SyncSettings struct {
	// OwnerEmail identifies the user that owns every synchronized photo.
	OwnerEmail string
	// Scope is the folder or prefix listed on the media host.
	Scope string
	// MaxResults caps the listing. Zero lets the lister pick.
	MaxResults int
}

// SyncService imports remote assets into the local photo catalog
// Implements SyncServiceInterface
type SyncService struct {
	lister     AssetListerInterface
	photos     repository.PhotoRepositoryInterface
	users      repository.UserRepositoryInterface
	classifier *Classifier
	builder    *RecordBuilder
	settings   SyncSettings
}

// NewSyncService creates a new SyncService
func NewSyncService(
	lister AssetListerInterface,
	photos repository.PhotoRepositoryInterface,
	users repository.UserRepositoryInterface,
	classifier *Classifier,
	builder *RecordBuilder,
	settings SyncSettings,
) *SyncService {
	if classifier == nil {
		classifier = NewClassifier()
	}
	if builder == nil {
		builder = NewRecordBuilder()
	}
	return &SyncService{
		lister:     lister,
		photos:     photos,
		users:      users,
		classifier: classifier,
		builder:    builder,
		settings:   settings,
	}
}

// Ensure SyncService implements SyncServiceInterface
var _ SyncServiceInterface = (*SyncService)(nil)

// SyncPhotos runs one synchronization pass.
//
// The owner is resolved before the media host is contacted, so a missing owner
// never costs a remote call. Assets are processed one at a time; a failed lookup
// or insert is logged and counted, and the run moves on. Cancellation is
// honoured between assets, never in the middle of a write.
func (s *SyncService) SyncPhotos(ctx context.Context, opts SyncOptions) (*models.SyncReport, error) {
	report := &models.SyncReport{DryRun: opts.DryRun, StartedAt: time.Now().UTC()}
	logger := logging.With().Str("provider", s.lister.Provider()).Bool("dry_run", opts.DryRun).Logger()

	logger.Info().Str("scope", s.settings.Scope).Msg("🔄 Starting photo synchronization")

	owner, err := s.resolveOwner(ctx)
	if err != nil {
		s.finish(report, err)
		return nil, err
	}

	scope := strings.TrimSpace(s.settings.Scope)
	if scope == "" {
		err := &ConfigurationError{Reason: "sync scope is empty"}
		s.finish(report, err)
		return nil, err
	}

	assets, err := s.lister.ListAssets(ctx, scope, s.settings.MaxResults)
	if err != nil {
		err = s.classifyListError(err)
		logger.Error().Err(err).Msg("❌ Failed to list remote assets")
		s.finish(report, err)
		return nil, err
	}

	report.Total = len(assets)
	logger.Info().Int("count", len(assets)).Msg("📦 Processing remote assets")

	eligible := make([]models.RemoteAsset, 0, len(assets))
	for _, asset := range assets {
		decision := s.classifier.Classify(asset)
		if !decision.Eligible {
			logger.Debug().Str("external_id", asset.ExternalID).Str("reason", decision.Reason).Msg("🚫 Excluded")
			metrics.RecordAsset(metrics.OutcomeExcluded)
			report.Excluded++
			continue
		}
		eligible = append(eligible, asset)
	}

	for _, asset := range eligible {
		if err := ctx.Err(); err != nil {
			logger.Warn().Int("synced", report.Synced).Int("skipped", report.Skipped).Msg("⏹️  Synchronization canceled")
			s.finish(report, err)
			return nil, err
		}
		s.processAsset(ctx, asset, owner.ID, opts, report)
	}

	if len(eligible) == 0 {
		report.Message = MessageNothingToSync
	} else {
		report.Message = fmt.Sprintf("Synchronized %d new photos (%d already existed, %d found)",
			report.Synced, report.Skipped, report.Total)
	}

	s.finish(report, nil)
	logger.Info().
		Int("synced", report.Synced).
		Int("skipped", report.Skipped).
		Int("excluded", report.Excluded).
		Int("failed", report.Failed).
		Int("total", report.Total).
		Msg("🎉 Synchronization completed")
	return report, nil
}

func (s *SyncService) resolveOwner(ctx context.Context) (*models.Owner, error) {
	email := strings.TrimSpace(s.settings.OwnerEmail)
	if email == "" {
		return nil, &ConfigurationError{Reason: "owner email is not configured"}
	}

	owner, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, &ConfigurationError{Reason: fmt.Sprintf("owner %q not found", email), Err: err}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to resolve owner: %w", err)
	}
	return owner, nil
}

// classifyListError normalizes a listing failure into the fatal error kinds.
// A canceled listing is reported as cancellation even when the lister
// wrapped it in a TransportError.
func (s *SyncService) classifyListError(err error) error {
	var te *TransportError
	switch {
	case errors.Is(err, ErrInvalidScope):
		return &ConfigurationError{Reason: "invalid sync scope", Err: err}
	case errors.Is(err, context.Canceled):
		return fmt.Errorf("listing interrupted: %w", context.Canceled)
	case errors.Is(err, context.DeadlineExceeded):
		return fmt.Errorf("listing interrupted: %w", context.DeadlineExceeded)
	case errors.As(err, &te):
		return te
	default:
		return &TransportError{Provider: s.lister.Provider(), Err: err}
	}
}

func (s *SyncService) processAsset(ctx context.Context, asset models.RemoteAsset, ownerID string, opts SyncOptions, report *models.SyncReport) {
	id := asset.ExternalID

	exists, err := s.photos.ExistsByExternalID(ctx, id)
	if err != nil {
		lookupErr := &LookupError{ExternalID: id, Err: err}
		logging.Error().Err(lookupErr).Str("external_id", id).Msg("❌ Error checking existence")
		metrics.RecordAsset(metrics.OutcomeLookupError)
		report.Failed++
		return
	}
	if exists {
		logging.Debug().Str("external_id", id).Msg("⏭️  Skipping, already in catalog")
		metrics.RecordAsset(metrics.OutcomeSkipped)
		report.Skipped++
		return
	}

	photo := s.builder.Build(asset, ownerID)
	if opts.DryRun {
		logging.Info().Str("external_id", id).Str("title", photo.Title).Msg("🧪 Would import")
		metrics.RecordAsset(metrics.OutcomeSynced)
		report.Synced++
		return
	}

	// A started insert is allowed to finish even if the caller goes away.
	if err := s.photos.Insert(context.WithoutCancel(ctx), &photo); err != nil {
		persistErr := &PersistError{ExternalID: id, Err: err}
		if persistErr.IsDuplicate() {
			logging.Warn().Str("external_id", id).Msg("⚠️  Catalogued concurrently by another writer")
			metrics.RecordAsset(metrics.OutcomeDuplicate)
		} else {
			logging.Error().Err(persistErr).Str("external_id", id).Msg("❌ Error inserting photo")
			metrics.RecordAsset(metrics.OutcomePersistError)
		}
		report.Failed++
		return
	}

	logging.Info().Str("external_id", id).Str("photo_id", photo.ID).Msg("✅ Photo synchronized")
	metrics.RecordAsset(metrics.OutcomeSynced)
	report.Synced++
}

func (s *SyncService) finish(report *models.SyncReport, err error) {
	report.FinishedAt = time.Now().UTC()
	metrics.RecordSyncRun(runResult(err), report.FinishedAt.Sub(report.StartedAt))
}

func runResult(err error) string {
	var (
		cfgErr *ConfigurationError
		te     *TransportError
	)
	switch {
	case err == nil:
		return "success"
	case errors.As(err, &cfgErr):
		return "configuration_error"
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return "canceled"
	case errors.As(err, &te):
		return "transport_error"
	default:
		return "error"
	}
}
