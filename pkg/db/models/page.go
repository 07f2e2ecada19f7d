package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/enums"
)

// Page is a site page. Pages form a tree via ParentID; at most one page is
// expected to carry the homepage flag, enforced by convention not schema.
type Page struct {
	ID             uuid.UUID        `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Title          string           `gorm:"column:title;not null"`
	Slug           string           `gorm:"column:slug;not null;uniqueIndex"`
	Template       string           `gorm:"column:template;not null;default:'default'"`
	ParentID       *uuid.UUID       `gorm:"column:parent_id;type:uuid"`
	Status         enums.PageStatus `gorm:"column:status;type:page_status;not null;default:'draft'"`
	SortOrder      int              `gorm:"column:sort_order;not null;default:0"`
	IsHomepage     bool             `gorm:"column:is_homepage;not null;default:false"`
	Settings       json.RawMessage  `gorm:"column:settings;type:jsonb"`
	SEOTitle       *string          `gorm:"column:seo_title"`
	SEODescription *string          `gorm:"column:seo_description"`
	SEOImage       *string          `gorm:"column:seo_image"`
	CreatedAt      time.Time        `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt      time.Time        `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt      gorm.DeletedAt   `gorm:"column:deleted_at;index"`

	Sections []Section `gorm:"foreignKey:PageID"`
}

func (Page) TableName() string { return "cms_pages" }
