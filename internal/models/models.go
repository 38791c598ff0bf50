// Package models contains the persisted Montessa data structures: tenants,
// users and the site/page records the site builder works on.
package models

import (
	"time"

	"github.com/google/uuid"
)

// Tenant represents one school in the multi-tenant system.
type Tenant struct {
	ID        uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	Code      string    `json:"code" gorm:"uniqueIndex;not null;size:50"`
	Name      string    `json:"name" gorm:"not null;size:255"`
	Domain    string    `json:"domain" gorm:"size:255"`
	Settings  JSONB     `json:"settings" gorm:"type:jsonb;default:'{}'"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	// Relations
	Users []User `json:"users,omitempty" gorm:"foreignKey:TenantID"`
	Sites []Site `json:"sites,omitempty" gorm:"foreignKey:TenantID"`
}

// User represents a system user (school staff or admin).
type User struct {
	ID           uuid.UUID  `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TenantID     uuid.UUID  `json:"tenant_id" gorm:"type:uuid;index"`
	Email        string     `json:"email" gorm:"not null;size:255"`
	PasswordHash string     `json:"-" gorm:"size:255"`
	FirstName    string     `json:"first_name" gorm:"size:100"`
	LastName     string     `json:"last_name" gorm:"size:100"`
	AvatarURL    string     `json:"avatar_url"`
	Settings     JSONB      `json:"settings" gorm:"type:jsonb;default:'{}'"`
	IsActive     bool       `json:"is_active" gorm:"default:true"`
	LastLoginAt  *time.Time `json:"last_login_at"`
	CreatedAt    time.Time  `json:"created_at"`
	UpdatedAt    time.Time  `json:"updated_at"`

	// Relations
	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Roles  []Role  `json:"roles,omitempty" gorm:"many2many:user_roles;"`
}

// Role represents a user role.
type Role struct {
	ID          uuid.UUID `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TenantID    uuid.UUID `json:"tenant_id" gorm:"type:uuid;index"`
	Code        string    `json:"code" gorm:"not null;size:50"`
	Name        string    `json:"name" gorm:"not null;size:100"`
	Description string    `json:"description"`
	IsSystem    bool      `json:"is_system" gorm:"default:false"`
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`

	// Relations
	Tenant *Tenant `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Users  []User  `json:"users,omitempty" gorm:"many2many:user_roles;"`
}
