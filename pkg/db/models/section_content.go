package models

import (
	"time"

	"github.com/google/uuid"
)

// SectionContent binds a content block into a section at a position.
// Rows are hard-deleted when a placement is removed.
type SectionContent struct {
	ID        uuid.UUID `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SectionID uuid.UUID `gorm:"column:section_id;type:uuid;not null;index"`
	ContentID uuid.UUID `gorm:"column:content_id;type:uuid;not null;index"`
	SortOrder int       `gorm:"column:sort_order;not null;default:0"`
	IsVisible bool      `gorm:"column:is_visible;not null;default:true"`
	CreatedAt time.Time `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time `gorm:"column:updated_at;autoUpdateTime"`

	Content *Content `gorm:"foreignKey:ContentID"`
}

func (SectionContent) TableName() string { return "cms_section_contents" }
