package contents

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
)

// Repository exposes content block persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a contents repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows content listings.
type ListFilter struct {
	Status *enums.ContentStatus
	PageID *uuid.UUID
	Slug   *string
	Limit  int
	Offset int
}

// Create inserts a new content block.
func (r *Repository) Create(ctx context.Context, content *models.Content) (*models.Content, error) {
	if err := r.db.WithContext(ctx).Create(content).Error; err != nil {
		return nil, err
	}
	return content, nil
}

// FindByID loads a content block by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Content, error) {
	var content models.Content
	if err := r.db.WithContext(ctx).First(&content, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &content, nil
}

// List returns content blocks ordered by creation date, newest first.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Content, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Content{})
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.PageID != nil {
		q = q.Where("page_id = ?", *filter.PageID)
	}
	if filter.Slug != nil {
		q = q.Where("slug = ?", *filter.Slug)
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

	var items []models.Content
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update applies the provided column updates and returns the fresh row. An
// all-omitted patch still bumps updated_at.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Content, error) {
	if len(updates) == 0 {
		updates = map[string]any{"updated_at": time.Now().UTC()}
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Content{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete soft-deletes the block and hard-deletes its section placements.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("content_id = ?", id).Delete(&models.SectionContent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Content{}, "id = ?", id).Error
	})
}

// CountByStatus returns content totals keyed by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[enums.ContentStatus]int64, error) {
	type row struct {
		Status enums.ContentStatus
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Content{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[enums.ContentStatus]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Total
	}
	return out, nil
}
