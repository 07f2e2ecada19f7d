package media

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
)

// Repository exposes media metadata persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a media repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows media listings.
type ListFilter struct {
	Folder   *string
	MimeType *string
	Limit    int
	Offset   int
}

// Create inserts a new media row.
func (r *Repository) Create(ctx context.Context, m *models.Media) (*models.Media, error) {
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return nil, err
	}
	return m, nil
}

// FindByID loads a media row by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Media, error) {
	var m models.Media
	if err := r.db.WithContext(ctx).First(&m, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &m, nil
}

// List returns media rows ordered by creation date, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Media, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Media{})
	if filter.Folder != nil {
		q = q.Where("folder = ?", *filter.Folder)
	}
	if filter.MimeType != nil {
		q = q.Where("mime_type LIKE ?", *filter.MimeType+"%")
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("created_at DESC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var items []models.Media
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update applies the provided column updates and returns the fresh row. An
// all-omitted patch still bumps updated_at.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Media, error) {
	if len(updates) == 0 {
		updates = map[string]any{"updated_at": time.Now().UTC()}
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Media{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete soft-deletes the media row.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.Media{}, "id = ?", id).Error
}

// Count returns the number of non-deleted media rows.
func (r *Repository) Count(ctx context.Context) (int64, error) {
	var total int64
	err := r.db.WithContext(ctx).Model(&models.Media{}).Count(&total).Error
	return total, err
}
