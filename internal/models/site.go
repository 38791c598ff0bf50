// Package models - site-builder persistence models
package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// Site is one tenant's public website: a set of pages plus the tenant-wide
// style tokens every block themes itself with.
type Site struct {
	ID           uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	TenantID     uuid.UUID      `json:"tenant_id" gorm:"type:uuid;index"`
	Name         string         `json:"name" gorm:"not null;size:255"`
	GlobalStyles datatypes.JSON `json:"global_styles" gorm:"default:'{}'"`
	PublishedAt  *time.Time     `json:"published_at"`
	CreatedAt    time.Time      `json:"created_at"`
	UpdatedAt    time.Time      `json:"updated_at"`

	// Relations
	Tenant *Tenant    `json:"tenant,omitempty" gorm:"foreignKey:TenantID"`
	Pages  []SitePage `json:"pages,omitempty" gorm:"foreignKey:SiteID"`
}

func (Site) TableName() string {
	return "sites"
}

// SitePage stores one page of a site. DraftBlocks is the working copy the
// builder edits; PublishedBlocks is the snapshot last made live by an
// explicit publish. Both are JSON arrays of block records.
type SitePage struct {
	ID              uuid.UUID      `json:"id" gorm:"type:uuid;primary_key;default:uuid_generate_v4()"`
	SiteID          uuid.UUID      `json:"site_id" gorm:"type:uuid;index"`
	Title           string         `json:"title" gorm:"not null;size:255"`
	Slug            string         `json:"slug" gorm:"size:100;index"`
	SortOrder       int            `json:"sort_order" gorm:"default:0"`
	Status          string         `json:"status" gorm:"size:20;default:'DRAFT'"`
	IsHomePage      bool           `json:"is_home_page" gorm:"default:false"`
	SeoTitle        string         `json:"seo_title" gorm:"size:255"`
	SeoDescription  string         `json:"seo_description"`
	DraftBlocks     datatypes.JSON `json:"draft_blocks" gorm:"default:'[]'"`
	PublishedBlocks datatypes.JSON `json:"published_blocks" gorm:"default:'[]'"`
	PublishedAt     *time.Time     `json:"published_at"`
	CreatedAt       time.Time      `json:"created_at"`
	UpdatedAt       time.Time      `json:"updated_at"`

	// Relations
	Site *Site `json:"site,omitempty" gorm:"foreignKey:SiteID"`
}

func (SitePage) TableName() string {
	return "site_pages"
}
