package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
)

// SiteSettings is keyed by site. A single row with key "main" serves the
// default site; the key column leaves room for multi-site later.
type SiteSettings struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	SiteKey      string          `gorm:"column:site_key;not null;uniqueIndex"`
	HeaderLogoID *uuid.UUID      `gorm:"column:header_logo_id;type:uuid"`
	FaviconID    *uuid.UUID      `gorm:"column:favicon_id;type:uuid"`
	Meta         json.RawMessage `gorm:"column:meta;type:jsonb"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`

	HeaderLogo *Media `gorm:"foreignKey:HeaderLogoID"`
	Favicon    *Media `gorm:"foreignKey:FaviconID"`
}

func (SiteSettings) TableName() string { return "cms_site_settings" }
