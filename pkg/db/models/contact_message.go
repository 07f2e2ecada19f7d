package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/plaindes/cms-backend/pkg/enums"
)

type ContactMessage struct {
	ID        uuid.UUID           `gorm:"column:id;type:uuid;default:gen_random_uuid();primaryKey"`
	Name      string              `gorm:"column:name;not null"`
	Email     string              `gorm:"column:email;not null;index"`
	Phone     *string             `gorm:"column:phone"`
	Subject   *string             `gorm:"column:subject"`
	Message   string              `gorm:"column:message;not null"`
	IPAddress *string             `gorm:"column:ip_address"`
	UserAgent *string             `gorm:"column:user_agent"`
	Status    enums.MessageStatus `gorm:"column:status;type:message_status;not null;default:'unread'"`
	RepliedAt *time.Time          `gorm:"column:replied_at"`
	RepliedBy *uuid.UUID          `gorm:"column:replied_by;type:uuid"`
	CreatedAt time.Time           `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt time.Time           `gorm:"column:updated_at;autoUpdateTime"`
	DeletedAt gorm.DeletedAt      `gorm:"column:deleted_at;index"`
}

func (ContactMessage) TableName() string { return "cms_contact_messages" }
