package menus

import (
	"time"

	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
)

// MenuDTO is the transport shape for a navigation menu.
type MenuDTO struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Label     string    `json:"label"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Items []MenuItemDTO `json:"items,omitempty"`
}

// MenuItemDTO is a navigation entry, nested via Children.
type MenuItemDTO struct {
	ID        uuid.UUID        `json:"id"`
	ParentID  *uuid.UUID       `json:"parent_id,omitempty"`
	Title     string           `json:"title"`
	URL       *string          `json:"url,omitempty"`
	PageID    *uuid.UUID       `json:"page_id,omitempty"`
	Target    enums.MenuTarget `json:"target"`
	Icon      *string          `json:"icon,omitempty"`
	SortOrder int              `json:"sort_order"`
	IsVisible bool             `json:"is_visible"`

	Children []MenuItemDTO `json:"children,omitempty"`
}

// CreateMenuInput holds the validated payload to create a menu.
type CreateMenuInput struct {
	Name  string
	Label string
}

// UpdateMenuInput holds optional mutation values for a menu.
type UpdateMenuInput struct {
	Name  *string
	Label *string
}

// CreateMenuItemInput holds the validated payload to create a menu item.
type CreateMenuItemInput struct {
	ParentID  *uuid.UUID
	Title     string
	URL       *string
	PageID    *uuid.UUID
	Target    *enums.MenuTarget
	Icon      *string
	SortOrder *int
	IsVisible *bool
}

// UpdateMenuItemInput holds optional mutation values for a menu item.
type UpdateMenuItemInput struct {
	ParentID  *uuid.UUID
	Title     *string
	URL       *string
	PageID    *uuid.UUID
	Target    *enums.MenuTarget
	Icon      *string
	SortOrder *int
	IsVisible *bool
}

// FromModel maps a menu and, if loaded, its item tree.
func FromModel(m *models.Menu) *MenuDTO {
	if m == nil {
		return nil
	}
	return &MenuDTO{
		ID:        m.ID,
		Name:      m.Name,
		Label:     m.Label,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
		Items:     BuildTree(m.Items),
	}
}

// BuildTree nests a flat item list under their parents, preserving order.
func BuildTree(items []models.MenuItem) []MenuItemDTO {
	byParent := map[uuid.UUID][]models.MenuItem{}
	var roots []models.MenuItem
	for _, item := range items {
		if item.ParentID == nil {
			roots = append(roots, item)
			continue
		}
		byParent[*item.ParentID] = append(byParent[*item.ParentID], item)
	}

	var build func(items []models.MenuItem) []MenuItemDTO
	build = func(items []models.MenuItem) []MenuItemDTO {
		out := make([]MenuItemDTO, 0, len(items))
		for _, item := range items {
			dto := MenuItemDTO{
				ID:        item.ID,
				ParentID:  item.ParentID,
				Title:     item.Title,
				URL:       item.URL,
				PageID:    item.PageID,
				Target:    item.Target,
				Icon:      item.Icon,
				SortOrder: item.SortOrder,
				IsVisible: item.IsVisible,
			}
			dto.Children = build(byParent[item.ID])
			out = append(out, dto)
		}
		return out
	}
	return build(roots)
}
