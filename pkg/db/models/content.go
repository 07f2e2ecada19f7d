package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/enums"
)

// Content is a reusable content block. Placement inside sections happens
// through SectionContent rows, independent of the block's own lifecycle.
type Content struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Slug      string              `gorm:"column:slug;not null;index"`
	Data      json.RawMessage     `gorm:"column:data;type:jsonb"`
	Status    enums.ContentStatus `gorm:"column:status;type:content_status;not null;default:'draft'"`
	PageID    *uuid.UUID          `gorm:"column:page_id;type:uuid"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt      `gorm:"column:deleted_at;index"`
}

func (Content) TableName() string { return "cms_contents" }
