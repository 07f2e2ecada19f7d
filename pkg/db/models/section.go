package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Section belongs to exactly one page. Component names the UI component that
// renders it; the actual payload lives in linked Content rows.
type Section struct {
	ID        uuid.UUID      `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	PageID    uuid.UUID      `gorm:"column:page_id;type:uuid;not null;index"`
	Name      string         `gorm:"column:name;not null"`
	Component string         `gorm:"column:component;not null"`
	SortOrder int            `gorm:"column:sort_order;not null;default:0"`
	IsVisible bool           `gorm:"column:is_visible;not null;default:true"`
	CreatedAt time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time      `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt `gorm:"column:deleted_at;index"`

	Contents []SectionContent `gorm:"foreignKey:SectionID"`
}

func (Section) TableName() string { return "cms_sections" }
