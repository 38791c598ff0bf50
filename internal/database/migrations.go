// Package database handles schema migrations and seed data for Montessa
package database

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/TestimonyAdegoke/montessa-sub000/internal/auth"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/builder"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/config"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/models"
)

// MigrationRecord tracks applied migrations
type MigrationRecord struct {
	ID        uint   `gorm:"primaryKey"`
	Name      string `gorm:"uniqueIndex;size:255;not null"`
	AppliedAt time.Time
}

// TableName specifies the table name
func (MigrationRecord) TableName() string {
	return "schema_migrations"
}

// Migrate runs all pending schema migrations
func Migrate(db *gorm.DB) error {
	if err := db.Exec(`CREATE EXTENSION IF NOT EXISTS "uuid-ossp"`).Error; err != nil {
		return fmt.Errorf("failed to create uuid extension: %w", err)
	}

	if err := db.AutoMigrate(&MigrationRecord{}); err != nil {
		return fmt.Errorf("failed to create migrations table: %w", err)
	}

	migrations := []struct {
		name string
		run  func(*gorm.DB) error
	}{
		{"001_core_tables", migrateCoreTables},
		{"002_site_tables", migrateSiteTables},
		{"003_system_config", migrateSystemConfig},
	}

	for _, m := range migrations {
		var existing MigrationRecord
		err := db.Where("name = ?", m.name).First(&existing).Error
		if err == nil {
			continue
		}
		if err != gorm.ErrRecordNotFound {
			return fmt.Errorf("failed to check migration %s: %w", m.name, err)
		}

		log.Printf("Applying migration %s", m.name)
		if err := m.run(db); err != nil {
			return fmt.Errorf("migration %s failed: %w", m.name, err)
		}
		record := MigrationRecord{Name: m.name, AppliedAt: time.Now()}
		if err := db.Create(&record).Error; err != nil {
			return fmt.Errorf("failed to record migration %s: %w", m.name, err)
		}
	}

	return nil
}

func migrateCoreTables(db *gorm.DB) error {
	return db.AutoMigrate(&models.Tenant{}, &models.User{}, &models.Role{})
}

func migrateSiteTables(db *gorm.DB) error {
	return db.AutoMigrate(&models.Site{}, &models.SitePage{})
}

func migrateSystemConfig(db *gorm.DB) error {
	return db.AutoMigrate(&config.SystemConfig{})
}

// SeedTenant creates a tenant with an admin user and a starter site. Safe
// to call repeatedly; existing tenants are returned unchanged.
func SeedTenant(db *gorm.DB, code, name, adminEmail, adminPassword string) (*models.Tenant, error) {
	var tenant models.Tenant
	err := db.Where("code = ?", code).First(&tenant).Error
	if err == nil {
		return &tenant, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, fmt.Errorf("failed to check tenant: %w", err)
	}

	tenant = models.Tenant{
		ID:       uuid.New(),
		Code:     code,
		Name:     name,
		IsActive: true,
	}

	err = db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&tenant).Error; err != nil {
			return fmt.Errorf("failed to create tenant: %w", err)
		}

		roles := []models.Role{
			{ID: uuid.New(), TenantID: tenant.ID, Code: "admin", Name: "Administrator", IsSystem: true, IsActive: true},
			{ID: uuid.New(), TenantID: tenant.ID, Code: "site_editor", Name: "Site Editor", IsSystem: true, IsActive: true},
			{ID: uuid.New(), TenantID: tenant.ID, Code: "teacher", Name: "Teacher", IsSystem: true, IsActive: true},
		}
		if err := tx.Create(&roles).Error; err != nil {
			return fmt.Errorf("failed to create roles: %w", err)
		}

		hash, err := auth.HashPassword(adminPassword)
		if err != nil {
			return err
		}
		admin := models.User{
			ID:           uuid.New(),
			TenantID:     tenant.ID,
			Email:        adminEmail,
			PasswordHash: hash,
			FirstName:    "Site",
			LastName:     "Admin",
			IsActive:     true,
		}
		if err := tx.Create(&admin).Error; err != nil {
			return fmt.Errorf("failed to create admin user: %w", err)
		}
		if err := tx.Model(&admin).Association("Roles").Append(&roles[0]); err != nil {
			return fmt.Errorf("failed to assign admin role: %w", err)
		}

		return seedSite(tx, tenant.ID, name)
	})
	if err != nil {
		return nil, err
	}
	return &tenant, nil
}

// seedSite creates a starter site with a published home page built from
// the landing template.
func seedSite(tx *gorm.DB, tenantID uuid.UUID, name string) error {
	registry := builder.DefaultRegistry()
	catalog := builder.TemplateCatalog(registry)
	tpl, ok := builder.FindTemplate(catalog, "landing")
	if !ok {
		return fmt.Errorf("landing template missing from catalog")
	}

	blocksJSON, err := builder.MarshalBlocks(tpl.Clone().Blocks)
	if err != nil {
		return fmt.Errorf("failed to marshal starter blocks: %w", err)
	}

	stylesJSON, err := json.Marshal(builder.DefaultStyles())
	if err != nil {
		return fmt.Errorf("failed to marshal default styles: %w", err)
	}

	site := models.Site{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Name:         name,
		GlobalStyles: datatypes.JSON(stylesJSON),
	}
	if err := tx.Create(&site).Error; err != nil {
		return fmt.Errorf("failed to create site: %w", err)
	}

	now := time.Now()
	home := models.SitePage{
		ID:              uuid.New(),
		SiteID:          site.ID,
		Title:           "Home",
		Slug:            "",
		SortOrder:       0,
		Status:          string(builder.StatusPublished),
		IsHomePage:      true,
		SeoTitle:        name,
		DraftBlocks:     datatypes.JSON(blocksJSON),
		PublishedBlocks: datatypes.JSON(blocksJSON),
		PublishedAt:     &now,
	}
	if err := tx.Create(&home).Error; err != nil {
		return fmt.Errorf("failed to create home page: %w", err)
	}
	return nil
}
