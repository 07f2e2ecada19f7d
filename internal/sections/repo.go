package sections

import (
	"context"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
)

// Repository exposes section and placement persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a sections repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new section.
func (r *Repository) Create(ctx context.Context, section *models.Section) (*models.Section, error) {
	if err := r.db.WithContext(ctx).Create(section).Error; err != nil {
		return nil, err
	}
	return section, nil
}

// FindByID loads a section without its placements.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	var section models.Section
	if err := r.db.WithContext(ctx).First(&section, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &section, nil
}

// FindWithContents loads a section together with every placement and its
// content block, drafts included, ordered by placement position.
func (r *Repository) FindWithContents(ctx context.Context, id uuid.UUID) (*models.Section, error) {
	var section models.Section
	err := r.db.WithContext(ctx).
		Preload("Contents", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Preload("Contents.Content").
		First(&section, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &section, nil
}

// ListByPage returns the page's sections ordered by position.
func (r *Repository) ListByPage(ctx context.Context, pageID uuid.UUID) ([]models.Section, error) {
	var items []models.Section
	err := r.db.WithContext(ctx).
		Where("page_id = ?", pageID).
		Order("sort_order ASC, created_at ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListVisibleByPage returns the page's visible sections with visible
// placements, ordered by position.
func (r *Repository) ListVisibleByPage(ctx context.Context, pageID uuid.UUID) ([]models.Section, error) {
	var items []models.Section
	err := r.db.WithContext(ctx).
		Where("page_id = ? AND is_visible = ?", pageID, true).
		Order("sort_order ASC, created_at ASC").
		Preload("Contents", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_visible = ?", true).Order("sort_order ASC, created_at ASC")
		}).
		Preload("Contents.Content").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// Update applies the provided column updates and returns the fresh row. An
// all-omitted patch still bumps updated_at.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Section, error) {
	if len(updates) == 0 {
		updates = map[string]any{"updated_at": time.Now().UTC()}
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Section{}).
		Where("id = ?", id).
		Updates(updates).Error; err != nil {
		return nil, err
	}
	return r.FindByID(ctx, id)
}

// Delete soft-deletes the section and hard-deletes its placements.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("section_id = ?", id).Delete(&models.SectionContent{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Section{}, "id = ?", id).Error
	})
}

// CreatePlacement inserts a section/content placement.
func (r *Repository) CreatePlacement(ctx context.Context, placement *models.SectionContent) (*models.SectionContent, error) {
	if err := r.db.WithContext(ctx).Create(placement).Error; err != nil {
		return nil, err
	}
	return placement, nil
}

// FindPlacement loads a placement row by section and content.
func (r *Repository) FindPlacement(ctx context.Context, sectionID, contentID uuid.UUID) (*models.SectionContent, error) {
	var placement models.SectionContent
	err := r.db.WithContext(ctx).
		Where("section_id = ? AND content_id = ?", sectionID, contentID).
		First(&placement).Error
	if err != nil {
		return nil, err
	}
	return &placement, nil
}

// DeletePlacement removes the placement row.
func (r *Repository) DeletePlacement(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Delete(&models.SectionContent{}, "id = ?", id).Error
}

// ReorderPlacements rewrites the sort order of the section's placements
// following the supplied placement ID order.
func (r *Repository) ReorderPlacements(ctx context.Context, sectionID uuid.UUID, orderedIDs []uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i, id := range orderedIDs {
			err := tx.Model(&models.SectionContent{}).
				Where("id = ? AND section_id = ?", id, sectionID).
				UpdateColumn("sort_order", i).Error
			if err != nil {
				return err
			}
		}
		return nil
	})
}
