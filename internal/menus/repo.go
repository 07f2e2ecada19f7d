package menus

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
)

// Repository exposes menu and menu item persistence operations.
type Repository struct {
	db *gorm.DB
}

// NewRepository constructs a menus repo bound to the provided GORM DB.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{db: db}
}

// Create inserts a new menu.
func (r *Repository) Create(ctx context.Context, menu *models.Menu) (*models.Menu, error) {
	if err := r.db.WithContext(ctx).Create(menu).Error; err != nil {
		return nil, err
	}
	return menu, nil
}

// FindByID loads a menu with its items ordered by position.
func (r *Repository) FindByID(ctx context.Context, id uuid.UUID) (*models.Menu, error) {
	var menu models.Menu
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		First(&menu, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// FindByName loads a menu by its unique name, items included.
func (r *Repository) FindByName(ctx context.Context, name string) (*models.Menu, error) {
	var menu models.Menu
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Where("name = ?", name).
		First(&menu).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// List returns every menu with items.
func (r *Repository) List(ctx context.Context) ([]models.Menu, error) {
	var items []models.Menu
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Order("sort_order ASC, created_at ASC")
		}).
		Order("name ASC").
		Find(&items).Error
	if err != nil {
		return nil, err
	}
	return items, nil
}

// ListVisibleByName loads a menu restricted to visible items.
func (r *Repository) ListVisibleByName(ctx context.Context, name string) (*models.Menu, error) {
	var menu models.Menu
	err := r.db.WithContext(ctx).
		Preload("Items", func(db *gorm.DB) *gorm.DB {
			return db.Where("is_visible = ?", true).Order("sort_order ASC, created_at ASC")
		}).
		Where("name = ?", name).
		First(&menu).Error
	if err != nil {
		return nil, err
	}
	return &menu, nil
}

// Update applies the provided column updates and returns the fresh row.
func (r *Repository) Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Menu, error) {
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.Menu{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindByID(ctx, id)
}

// Delete soft-deletes the menu and its items.
func (r *Repository) Delete(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("menu_id = ?", id).Delete(&models.MenuItem{}).Error; err != nil {
			return err
		}
		return tx.Delete(&models.Menu{}, "id = ?", id).Error
	})
}

// CreateItem inserts a menu item.
func (r *Repository) CreateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error) {
	if err := r.db.WithContext(ctx).Create(item).Error; err != nil {
		return nil, err
	}
	return item, nil
}

// FindItemByID loads a single menu item.
func (r *Repository) FindItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error) {
	var item models.MenuItem
	if err := r.db.WithContext(ctx).First(&item, "id = ?", id).Error; err != nil {
		return nil, err
	}
	return &item, nil
}

// UpdateItem applies the provided column updates to a menu item.
func (r *Repository) UpdateItem(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.MenuItem, error) {
	if len(updates) > 0 {
		if err := r.db.WithContext(ctx).
			Model(&models.MenuItem{}).
			Where("id = ?", id).
			Updates(updates).Error; err != nil {
			return nil, err
		}
	}
	return r.FindItemByID(ctx, id)
}

// DeleteItem soft-deletes the item and re-parents its children to the root.
func (r *Repository) DeleteItem(ctx context.Context, id uuid.UUID) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.MenuItem{}).
			Where("parent_id = ?", id).
			UpdateColumn("parent_id", nil).Error; err != nil {
			return err
		}
		return tx.Delete(&models.MenuItem{}, "id = ?", id).Error
	})
}
