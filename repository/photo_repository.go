package repository

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jackc/pgerrcode"
	"github.com/jackc/pgx/v5/pgconn"

	"portfolio-photo-sync/logging"
	"portfolio-photo-sync/models"
)

// PhotoRepository handles database operations for the photos table
// Implements PhotoRepositoryInterface
type PhotoRepository struct {
	db *sql.DB
}

// NewPhotoRepository creates a new PhotoRepository on an open connection pool
func NewPhotoRepository(db *sql.DB) *PhotoRepository {
	return &PhotoRepository{db: db}
}

// Ensure PhotoRepository implements PhotoRepositoryInterface
var _ PhotoRepositoryInterface = (*PhotoRepository)(nil)

// ExistsByExternalID checks if a photo exists by cloudinary_id
func (r *PhotoRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	var exists bool
	query := `SELECT EXISTS(SELECT 1 FROM photos WHERE cloudinary_id = $1)`
	if err := r.db.QueryRowContext(ctx, query, externalID).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check existence of %s: %w", externalID, err)
	}

	logging.Debug().Str("external_id", externalID).Bool("exists", exists).Msg("Existence check")
	return exists, nil
}

// Insert inserts a new photo. There is deliberately no ON CONFLICT clause: a
// concurrent insert of the same cloudinary_id must surface as ErrDuplicate.
func (r *PhotoRepository) Insert(ctx context.Context, photo *models.Photo) error {
	query := `
		INSERT INTO photos (
			id, cloudinary_id, title, description, location, image_url,
			width, height, published, user_id, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
	`

	_, err := r.db.ExecContext(ctx, query,
		photo.ID,
		photo.ExternalID,
		photo.Title,
		photo.Description,
		photo.Location,
		photo.ImageURL,
		photo.Width,
		photo.Height,
		photo.Published,
		photo.PhotographerID,
		photo.CreatedAt,
		photo.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert %s: %w", photo.ExternalID, ErrDuplicate)
		}
		return fmt.Errorf("failed to insert photo %s: %w", photo.ExternalID, err)
	}

	logging.Debug().Str("id", photo.ID).Str("external_id", photo.ExternalID).Msg("Photo row inserted")
	return nil
}

// GetByID retrieves a photo by its local id
func (r *PhotoRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	query := `
		SELECT id, cloudinary_id, title,
		       COALESCE(description, '') AS description,
		       COALESCE(location, '') AS location,
		       image_url,
		       COALESCE(width, 0) AS width,
		       COALESCE(height, 0) AS height,
		       published, user_id, created_at, updated_at
		FROM photos
		WHERE id = $1
	`

	var p models.Photo
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&p.ID,
		&p.ExternalID,
		&p.Title,
		&p.Description,
		&p.Location,
		&p.ImageURL,
		&p.Width,
		&p.Height,
		&p.Published,
		&p.PhotographerID,
		&p.CreatedAt,
		&p.UpdatedAt,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get photo %s: %w", id, err)
	}
	return &p, nil
}

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == pgerrcode.UniqueViolation
}
