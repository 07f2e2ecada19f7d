package users

import (
	"encoding/json"
	"time"

	"github.com/google/uuid"

	"github.com/plaindes/cms-backend/pkg/db/models"
	"github.com/plaindes/cms-backend/pkg/enums"
)

// UserDTO is the transport shape that omits the password hash.
type UserDTO struct {
	ID        uuid.UUID       `json:"id"`
	Email     string          `json:"email"`
	Name      string          `json:"name"`
	Lastname  *string         `json:"lastname,omitempty"`
	Role      enums.UserRole  `json:"role"`
	IsActive  bool            `json:"is_active"`
	Avatar    *string         `json:"avatar,omitempty"`
	Settings  json.RawMessage `json:"settings,omitempty"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// CreateUserDTO holds the data required by the repo to persist a new user.
type CreateUserDTO struct {
	Email        string
	PasswordHash string
	Name         string
	Lastname     *string
	Role         enums.UserRole
	IsActive     *bool
	Avatar       *string
}

// UpdateUserDTO carries the mutable profile fields. Nil means leave unchanged.
type UpdateUserDTO struct {
	Name     *string
	Lastname *string
	Avatar   *string
	IsActive *bool
	Role     *enums.UserRole
	Settings json.RawMessage
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:        u.ID,
		Email:     u.Email,
		Name:      u.Name,
		Lastname:  u.Lastname,
		Role:      u.Role,
		IsActive:  u.IsActive,
		Avatar:    u.Avatar,
		Settings:  u.Settings,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

func (c CreateUserDTO) ToModel() *models.User {
	isActive := true
	if c.IsActive != nil {
		isActive = *c.IsActive
	}

	role := c.Role
	if role == "" {
		role = enums.UserRoleUser
	}

	return &models.User{
		Email:        c.Email,
		PasswordHash: c.PasswordHash,
		Name:         c.Name,
		Lastname:     c.Lastname,
		Role:         role,
		IsActive:     isActive,
		Avatar:       c.Avatar,
	}
}
