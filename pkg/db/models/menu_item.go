package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/enums"
)

// MenuItem is a single navigation entry. Either URL or PageID drives the
// link target; PageID wins during resolution when both are set.
type MenuItem struct {
	ID        uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	MenuID    uuid.UUID        `gorm:"column:menu_id;type:uuid;not null;index"`
	ParentID  *uuid.UUID       `gorm:"column:parent_id;type:uuid"`
	Title     string           `gorm:"column:title;not null"`
	URL       *string          `gorm:"column:url"`
	PageID    *uuid.UUID       `gorm:"column:page_id;type:uuid"`
	Target    enums.MenuTarget `gorm:"column:target;type:menu_target;not null;default:'_self'"`
	Icon      *string          `gorm:"column:icon"`
	SortOrder int              `gorm:"column:sort_order;not null;default:0"`
	IsVisible bool             `gorm:"column:is_visible;not null;default:true"`
	CreatedAt time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time        `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt   `gorm:"column:deleted_at;index"`

	Children []MenuItem `gorm:"foreignKey:ParentID"`
}

func (MenuItem) TableName() string { return "cms_menu_items" }
