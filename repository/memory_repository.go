package repository

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"sync"

	"portfolio-photo-sync/models"
)

// MemoryPhotoRepository is an in-process catalog used for local development
// (DB_DRIVER=memory) and tests. Insert checks and writes under one lock, so the
// one-record-per-external-id rule holds across concurrent callers.
type MemoryPhotoRepository struct {
	mu         sync.RWMutex
	byID       map[string]*models.Photo
	byExternal map[string]string
}

// NewMemoryPhotoRepository creates an empty in-memory catalog
func NewMemoryPhotoRepository() *MemoryPhotoRepository {
	return &MemoryPhotoRepository{
		byID:       make(map[string]*models.Photo),
		byExternal: make(map[string]string),
	}
}

var _ PhotoRepositoryInterface = (*MemoryPhotoRepository)(nil)

func (r *MemoryPhotoRepository) ExistsByExternalID(ctx context.Context, externalID string) (bool, error) {
	if err := ctx.Err(); err != nil {
		return false, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.byExternal[externalID]
	return ok, nil
}

func (r *MemoryPhotoRepository) Insert(ctx context.Context, photo *models.Photo) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.byExternal[photo.ExternalID]; ok {
		return fmt.Errorf("insert %s: %w", photo.ExternalID, ErrDuplicate)
	}
	if _, ok := r.byID[photo.ID]; ok {
		return fmt.Errorf("insert %s: id %s already taken", photo.ExternalID, photo.ID)
	}

	stored := *photo
	r.byID[photo.ID] = &stored
	r.byExternal[photo.ExternalID] = photo.ID
	return nil
}

func (r *MemoryPhotoRepository) GetByID(ctx context.Context, id string) (*models.Photo, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.byID[id]
	if !ok {
		return nil, ErrNotFound
	}
	out := *p
	return &out, nil
}

// All returns every stored photo ordered by external id.
func (r *MemoryPhotoRepository) All() []models.Photo {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]models.Photo, 0, len(r.byID))
	for _, p := range r.byID {
		out = append(out, *p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ExternalID < out[j].ExternalID })
	return out
}

// CountByExternalID returns how many rows carry externalID (0 or 1 unless the
// store is broken).
func (r *MemoryPhotoRepository) CountByExternalID(externalID string) int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	n := 0
	for _, p := range r.byID {
		if p.ExternalID == externalID {
			n++
		}
	}
	return n
}

// MemoryUserRepository is the in-memory users table
type MemoryUserRepository struct {
	mu    sync.RWMutex
	users []models.Owner
}

// NewMemoryUserRepository creates a users table holding the given owners
func NewMemoryUserRepository(owners ...models.Owner) *MemoryUserRepository {
	return &MemoryUserRepository{users: owners}
}

var _ UserRepositoryInterface = (*MemoryUserRepository)(nil)

func (r *MemoryUserRepository) FindByEmail(ctx context.Context, email string) (*models.Owner, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, u := range r.users {
		if email != "" && strings.EqualFold(u.Email, email) {
			out := u
			return &out, nil
		}
	}
	return nil, ErrNotFound
}

// Add appends a user.
func (r *MemoryUserRepository) Add(owner models.Owner) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.users = append(r.users, owner)
}
