package pages

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
)

// Repository exposes page persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a pages repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// ListFilter narrows page listings.
type ListFilter struct {
	Status   *enums.PageStatus
	ParentID *uuid.UUID
	Limit    int
	Offset   int
}

// Create inserts a new page and returns the persisted model.
func (r *Repository) Create(ctx context.Context, page *models.Page) (*models.Page, error) {
	if err := r.db.WithContext(ctx).Create(page).Error; err != nil {
		return nil, err
	}
	return page, nil
}

// FindByID loads a page by its UUID.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Page, error) {
	var page models.Page
	if err := r.db.WithContext(ctx).First(&page, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// FindBySlug loads a page by its slug.
func (r *Repository) FindBySlug(ctx context.Context, slug string) (*models.Page, error) {
	var page models.Page
	if err := r.db.WithContext(ctx).Where("slug = ?", slug).First(&page).Error; err != nil {
		return nil, err
	}
	return &page, nil
}

// FindHomepage returns the published page flagged as homepage.
func (r *Repository) FindHomepage(ctx context.Context) (*models.Page, error) {
	var page models.Page
	err := r.db.WithContext(ctx).
		Where("is_homepage = ? AND status = ?", true, enums.PageStatusPublished).
		First(&page).Error
	if err != nil {
		return nil, err
	}
	return &page, nil
}

// List returns pages filtered and ordered by sort_order then creation date.
func (r *Repository) List(ctx context.Context, filter ListFilter) ([]models.Page, int64, error) {
	q := r.db.WithContext(ctx).Model(&models.Page{})
	if filter.Status != nil {
		q = q.Where("status = ?", *filter.Status)
	}
	if filter.ParentID != nil {
		q = q.Where("parent_id = ?", *filter.ParentID)
	}

	var total int64
	if err := q.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	q = q.Order("sort_order ASC, created_at ASC")
	if filter.Limit > 0 {
		q = q.Limit(filter.Limit)
	}
	if filter.Offset > 0 {
		q = q.Offset(filter.Offset)
	}

	var items []models.Page
	if err := q.Find(&items).Error; err != nil {
		return nil, 0, err
	}
	return items, total, nil
}

// Update applies the provided column updates and returns the fresh row. An
// all-omitted patch still bumps updated_at.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Page, error) {
	if len(updates) == 0 {
		updates = map[string]any{"updated_at": time.Now().UTC()}
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Page{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// SetHomepage flags the page as homepage and clears the flag everywhere else.
func (r *Repository) SetHomepage(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Page{}).
			Where("is_homepage = ?", true).
			UpdateColumn("is_homepage", false).Error; err != nil {
			return err
		}
		return tx.Model(&models.Page{}).
			Where("id = ?", id).
			UpdateColumn("is_homepage", true).Error
	})
}

// Delete soft-deletes the page and its sections.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("page_id = ?", id).Delete(&models.Section{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Page{}, "id = ?", id).Error
	})
}

// CountByStatus returns page totals keyed by status.
func (r *Repository) CountByStatus(ctx context.Context) (map[enums.PageStatus]int64, error) {
	type row struct {
		Status enums.PageStatus
		Total  int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&models.Page{}).
		Select("status, COUNT(*) AS total").
		Group("status").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	out := make(map[enums.PageStatus]int64, len(rows))
	for _, r := range rows {
		out[r.Status] = r.Total
	}
	return out, nil
}
