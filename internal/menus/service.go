package menus

import (
	"context"
	"errors"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/db/models"
	pkgerrors "github.com/plaindes/cms-backend/pkg/errors"
)

// Service exposes menu management operations.
type Service interface {
	CreateMenu(ctx context.Context, input CreateMenuInput) (*MenuDTO, error)
	GetMenu(ctx context.Context, id uuid.UUID) (*MenuDTO, error)
	ListMenus(ctx context.Context) ([]MenuDTO, error)
	UpdateMenu(ctx context.Context, id uuid.UUID, input UpdateMenuInput) (*MenuDTO, error)
	DeleteMenu(ctx context.Context, id uuid.UUID) error
	CreateItem(ctx context.Context, menuID uuid.UUID, input CreateMenuItemInput) (*MenuDTO, error)
	UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateMenuItemInput) (*MenuItemDTO, error)
	DeleteItem(ctx context.Context, itemID uuid.UUID) error
}

type menuRepository interface {
	Create(ctx context.Context, menu *models.Menu) (*models.Menu, error)
	FindByID(ctx context.Context, id uuid.UUID) (*models.Menu, error)
	FindByName(ctx context.Context, name string) (*models.Menu, error)
	List(ctx context.Context) ([]models.Menu, error)
	Update(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.Menu, error)
	Delete(ctx context.Context, id uuid.UUID) error
	CreateItem(ctx context.Context, item *models.MenuItem) (*models.MenuItem, error)
	FindItemByID(ctx context.Context, id uuid.UUID) (*models.MenuItem, error)
	UpdateItem(ctx context.Context, id uuid.UUID, updates map[string]any) (*models.MenuItem, error)
	DeleteItem(ctx context.Context, id uuid.UUID) error
}

type service struct {
	repo menuRepository
}

// NewService constructs a menu service instance.
func NewService(repo menuRepository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "menu repository required")
	}
	return &service{repo: repo}, nil
}

func (s *service) CreateMenu(ctx context.Context, input CreateMenuInput) (*MenuDTO, error) {
	name := strings.ToLower(strings.TrimSpace(input.Name))
	if name == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "name is required")
	}
	label := strings.TrimSpace(input.Label)
	if label == "" {
		label = name
	}

	if _, err := s.repo.FindByName(ctx, name); err == nil {
		return nil, pkgerrors.New(pkgerrors.CodeConflict, "menu name already in use")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check menu name")
	}

	menu, err := s.repo.Create(ctx, &models.Menu{Name: name, Label: label})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create menu")
	}
	return FromModel(menu), nil
}

func (s *service) GetMenu(ctx context.Context, id uuid.UUID) (*MenuDTO, error) {
	menu, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, menuNotFoundOrInternal(err)
	}
	return FromModel(menu), nil
}

func (s *service) ListMenus(ctx context.Context) ([]MenuDTO, error) {
	items, err := s.repo.List(ctx)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list menus")
	}
	out := make([]MenuDTO, 0, len(items))
	for i := range items {
		out = append(out, *FromModel(&items[i]))
	}
	return out, nil
}

func (s *service) UpdateMenu(ctx context.Context, id uuid.UUID, input UpdateMenuInput) (*MenuDTO, error) {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return nil, menuNotFoundOrInternal(err)
	}

	updates := map[string]any{}
	if input.Name != nil {
		name := strings.ToLower(strings.TrimSpace(*input.Name))
		if name == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "name cannot be empty")
		}
		if existing, err := s.repo.FindByName(ctx, name); err == nil && existing.ID != id {
			return nil, pkgerrors.New(pkgerrors.CodeConflict, "menu name already in use")
		} else if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "check menu name")
		}
		updates["name"] = name
	}
	if input.Label != nil {
		updates["label"] = strings.TrimSpace(*input.Label)
	}

	menu, err := s.repo.Update(ctx, id, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update menu")
	}
	return FromModel(menu), nil
}

func (s *service) DeleteMenu(ctx context.Context, id uuid.UUID) error {
	if _, err := s.repo.FindByID(ctx, id); err != nil {
		return menuNotFoundOrInternal(err)
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete menu")
	}
	return nil
}

func (s *service) CreateItem(ctx context.Context, menuID uuid.UUID, input CreateMenuItemInput) (*MenuDTO, error) {
	if _, err := s.repo.FindByID(ctx, menuID); err != nil {
		return nil, menuNotFoundOrInternal(err)
	}
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "title is required")
	}
	if input.URL == nil && input.PageID == nil {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "either url or page_id is required")
	}
	if input.ParentID != nil {
		parent, err := s.repo.FindItemByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent item not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup parent item")
		}
		if parent.MenuID != menuID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent item belongs to another menu")
		}
	}

	item := &models.MenuItem{
		MenuID:    menuID,
		ParentID:  input.ParentID,
		Title:     title,
		URL:       input.URL,
		PageID:    input.PageID,
		IsVisible: true,
	}
	if input.Target != nil {
		if !input.Target.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target")
		}
		item.Target = *input.Target
	}
	item.Icon = input.Icon
	if input.SortOrder != nil {
		item.SortOrder = *input.SortOrder
	}
	if input.IsVisible != nil {
		item.IsVisible = *input.IsVisible
	}

	if _, err := s.repo.CreateItem(ctx, item); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create menu item")
	}
	return s.GetMenu(ctx, menuID)
}

func (s *service) UpdateItem(ctx context.Context, itemID uuid.UUID, input UpdateMenuItemInput) (*MenuItemDTO, error) {
	item, err := s.repo.FindItemByID(ctx, itemID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup menu item")
	}

	updates := map[string]any{}
	if input.Title != nil {
		title := strings.TrimSpace(*input.Title)
		if title == "" {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "title cannot be empty")
		}
		updates["title"] = title
	}
	if input.ParentID != nil {
		if *input.ParentID == itemID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "item cannot be its own parent")
		}
		parent, err := s.repo.FindItemByID(ctx, *input.ParentID)
		if err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent item not found")
			}
			return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup parent item")
		}
		if parent.MenuID != item.MenuID {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "parent item belongs to another menu")
		}
		updates["parent_id"] = *input.ParentID
	}
	if input.URL != nil {
		updates["url"] = *input.URL
	}
	if input.PageID != nil {
		updates["page_id"] = *input.PageID
	}
	if input.Target != nil {
		if !input.Target.IsValid() {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid target")
		}
		updates["target"] = *input.Target
	}
	if input.Icon != nil {
		updates["icon"] = *input.Icon
	}
	if input.SortOrder != nil {
		updates["sort_order"] = *input.SortOrder
	}
	if input.IsVisible != nil {
		updates["is_visible"] = *input.IsVisible
	}

	updated, err := s.repo.UpdateItem(ctx, itemID, updates)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update menu item")
	}
	dto := BuildTree([]models.MenuItem{*updated})
	return &dto[0], nil
}

func (s *service) DeleteItem(ctx context.Context, itemID uuid.UUID) error {
	if _, err := s.repo.FindItemByID(ctx, itemID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return pkgerrors.New(pkgerrors.CodeNotFound, "menu item not found")
		}
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup menu item")
	}
	if err := s.repo.DeleteItem(ctx, itemID); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "delete menu item")
	}
	return nil
}

func menuNotFoundOrInternal(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return pkgerrors.New(pkgerrors.CodeNotFound, "menu not found")
	}
	return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup menu")
}
