package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Media struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Filename     string          `gorm:"column:filename;not null"`
	OriginalName string          `gorm:"column:original_name;not null"`
	MimeType     string          `gorm:"column:mime_type;not null"`
	SizeBytes    int64           `gorm:"column:size_bytes;not null;default:0"`
	URL          string          `gorm:"column:url;not null"`
	StoragePath  string          `gorm:"column:storage_path;not null"`
	AltText      *string         `gorm:"column:alt_text"`
	Caption      *string         `gorm:"column:caption"`
	Folder       string          `gorm:"column:folder;not null;default:'/'"`
	UploadedBy   *uuid.UUID      `gorm:"column:uploaded_by;type:uuid"`
	Meta         json.RawMessage `gorm:"column:meta;type:jsonb"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}

func (Media) TableName() string { return "cms_media" }
