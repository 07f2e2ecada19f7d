package models

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/enums"
)

// User represents the canonical identity entity. Rows are never hard-deleted;
// deactivation sets deleted_at and flips is_active.
type User struct {
	ID           uuid.UUID       `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Email        string          `gorm:"column:email;type:text;not null;uniqueIndex"`
	PasswordHash string          `gorm:"column:password_hash;not null"`
	Name         string          `gorm:"column:name;not null"`
	Lastname     *string         `gorm:"column:lastname"`
	Role         enums.UserRole  `gorm:"column:role;type:user_role;not null;default:'user'"`
	IsActive     bool            `gorm:"column:is_active;not null;default:true"`
	Avatar       *string         `gorm:"column:avatar"`
	Settings     json.RawMessage `gorm:"column:settings;type:jsonb"`
	CreatedAt    time.Time       `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time       `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt    gorm.DeletedAt  `gorm:"column:deleted_at;index"`
}

func (User) TableName() string { return "sys_users" }
