// Package store persists sites and their pages. It is the storage
// collaborator behind the builder: the orchestrator hands it block lists on
// autosave and publish, and sessions are hydrated from it on first open.
package store

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/TestimonyAdegoke/montessa-sub000/internal/builder"
	"github.com/TestimonyAdegoke/montessa-sub000/internal/models"
)

// SiteStore wraps the database for site and page access.
type SiteStore struct {
	db *gorm.DB
}

// NewSiteStore creates a site store.
func NewSiteStore(db *gorm.DB) *SiteStore {
	return &SiteStore{db: db}
}

// Site loads a site with its pages in sort order.
func (s *SiteStore) Site(id uuid.UUID) (*models.Site, error) {
	var site models.Site
	if err := s.db.Preload("Pages", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).First(&site, "id = ?", id).Error; err != nil {
		return nil, fmt.Errorf("site not found: %w", err)
	}
	return &site, nil
}

// SiteByTenantCode resolves a tenant code to its site.
func (s *SiteStore) SiteByTenantCode(code string) (*models.Site, error) {
	var tenant models.Tenant
	if err := s.db.First(&tenant, "code = ? AND is_active = true", code).Error; err != nil {
		return nil, fmt.Errorf("tenant not found: %w", err)
	}
	var site models.Site
	if err := s.db.Preload("Pages", func(db *gorm.DB) *gorm.DB {
		return db.Order("sort_order")
	}).First(&site, "tenant_id = ?", tenant.ID).Error; err != nil {
		return nil, fmt.Errorf("site not found: %w", err)
	}
	return &site, nil
}

// LoadPages converts a site's stored pages into builder pages plus the
// site's style tokens. Malformed stored block JSON degrades to an empty
// list; old data must never make a site uneditable.
func (s *SiteStore) LoadPages(siteID uuid.UUID) ([]builder.Page, builder.GlobalStyles, error) {
	site, err := s.Site(siteID)
	if err != nil {
		return nil, builder.GlobalStyles{}, err
	}
	pages := make([]builder.Page, 0, len(site.Pages))
	for _, p := range site.Pages {
		pages = append(pages, toBuilderPage(p))
	}
	return pages, StylesOf(site), nil
}

// StylesOf decodes a site's style tokens, falling back to the defaults for
// anything unset.
func StylesOf(site *models.Site) builder.GlobalStyles {
	styles := builder.DefaultStyles()
	if len(site.GlobalStyles) > 0 {
		// Partial overrides only touch the fields present in the JSON.
		_ = json.Unmarshal(site.GlobalStyles, &styles)
	}
	return styles
}

// SaveDraft persists one page's draft blocks. This is the autosave sink; it
// matches builder.SaveFunc.
func (s *SiteStore) SaveDraft(pageID string, blocks []builder.Block) error {
	id, err := uuid.Parse(pageID)
	if err != nil {
		return fmt.Errorf("invalid page id %q: %w", pageID, err)
	}
	data, err := builder.MarshalBlocks(blocks)
	if err != nil {
		return err
	}
	return s.db.Model(&models.SitePage{}).Where("id = ?", id).
		Update("draft_blocks", datatypes.JSON(data)).Error
}

// SavePublished persists one page's published snapshot and flips its
// status. This is the publish sink; it matches builder.PublishFunc.
func (s *SiteStore) SavePublished(pageID string, blocks []builder.Block) error {
	id, err := uuid.Parse(pageID)
	if err != nil {
		return fmt.Errorf("invalid page id %q: %w", pageID, err)
	}
	data, err := builder.MarshalBlocks(blocks)
	if err != nil {
		return err
	}
	now := time.Now()
	return s.db.Model(&models.SitePage{}).Where("id = ?", id).
		Updates(map[string]interface{}{
			"published_blocks": datatypes.JSON(data),
			"status":           string(builder.StatusPublished),
			"published_at":     now,
		}).Error
}

// SyncPages reconciles the stored page set with the builder's: new pages are
// created, existing ones updated, and pages the builder no longer has are
// deleted. Called after page-level CRUD (add/delete/rename/set-home).
func (s *SiteStore) SyncPages(siteID uuid.UUID, pages []builder.Page) error {
	keep := make(map[uuid.UUID]bool, len(pages))
	return s.db.Transaction(func(tx *gorm.DB) error {
		for _, p := range pages {
			row, err := fromBuilderPage(siteID, p)
			if err != nil {
				return err
			}
			keep[row.ID] = true
			if err := tx.Save(&row).Error; err != nil {
				return fmt.Errorf("save page %s: %w", p.ID, err)
			}
		}
		var existing []models.SitePage
		if err := tx.Where("site_id = ?", siteID).Find(&existing).Error; err != nil {
			return err
		}
		for _, row := range existing {
			if !keep[row.ID] {
				if err := tx.Delete(&models.SitePage{}, "id = ?", row.ID).Error; err != nil {
					return err
				}
			}
		}
		return nil
	})
}

// PublishedPage resolves a slug to a page that has been published. The empty
// slug resolves to the home page.
func (s *SiteStore) PublishedPage(siteID uuid.UUID, slug string) (*models.SitePage, []builder.Block, error) {
	var page models.SitePage
	q := s.db.Where("site_id = ? AND status = ?", siteID, string(builder.StatusPublished))
	if slug == "" {
		q = q.Where("is_home_page = true")
	} else {
		q = q.Where("slug = ?", slug)
	}
	if err := q.First(&page).Error; err != nil {
		return nil, nil, fmt.Errorf("page not found: %w", err)
	}
	blocks, err := builder.UnmarshalBlocks(page.PublishedBlocks)
	if err != nil {
		return nil, nil, fmt.Errorf("corrupt published blocks for page %s: %w", page.ID, err)
	}
	return &page, blocks, nil
}

// EnsureSite returns the tenant's site, creating an empty one with a home
// page when none exists yet.
func (s *SiteStore) EnsureSite(tenantID uuid.UUID, name string) (*models.Site, error) {
	var site models.Site
	err := s.db.Preload("Pages").First(&site, "tenant_id = ?", tenantID).Error
	if err == nil {
		return &site, nil
	}
	if err != gorm.ErrRecordNotFound {
		return nil, err
	}
	site = models.Site{
		ID:           uuid.New(),
		TenantID:     tenantID,
		Name:         name,
		GlobalStyles: datatypes.JSON([]byte(`{}`)),
	}
	home := models.SitePage{
		ID:              uuid.New(),
		SiteID:          site.ID,
		Title:           "Home",
		Slug:            "",
		Status:          string(builder.StatusDraft),
		IsHomePage:      true,
		DraftBlocks:     datatypes.JSON([]byte(`[]`)),
		PublishedBlocks: datatypes.JSON([]byte(`[]`)),
	}
	if err := s.db.Create(&site).Error; err != nil {
		return nil, err
	}
	if err := s.db.Create(&home).Error; err != nil {
		return nil, err
	}
	site.Pages = []models.SitePage{home}
	return &site, nil
}

// SaveStyles persists a site's style tokens.
func (s *SiteStore) SaveStyles(siteID uuid.UUID, styles builder.GlobalStyles) error {
	data, err := json.Marshal(styles)
	if err != nil {
		return err
	}
	return s.db.Model(&models.Site{}).Where("id = ?", siteID).
		Update("global_styles", datatypes.JSON(data)).Error
}

func toBuilderPage(p models.SitePage) builder.Page {
	draft, err := builder.UnmarshalBlocks(p.DraftBlocks)
	if err != nil {
		draft = []builder.Block{}
	}
	published, err := builder.UnmarshalBlocks(p.PublishedBlocks)
	if err != nil {
		published = []builder.Block{}
	}
	return builder.Page{
		ID:             p.ID.String(),
		Title:          p.Title,
		Slug:           p.Slug,
		SortOrder:      p.SortOrder,
		Status:         builder.PageStatus(p.Status),
		IsHomePage:     p.IsHomePage,
		SeoTitle:       p.SeoTitle,
		SeoDescription: p.SeoDescription,
		Draft:          draft,
		Published:      published,
		PublishedAt:    p.PublishedAt,
	}
}

func fromBuilderPage(siteID uuid.UUID, p builder.Page) (models.SitePage, error) {
	id, err := uuid.Parse(p.ID)
	if err != nil {
		return models.SitePage{}, fmt.Errorf("invalid page id %q: %w", p.ID, err)
	}
	draft, err := builder.MarshalBlocks(p.Draft)
	if err != nil {
		return models.SitePage{}, err
	}
	published, err := builder.MarshalBlocks(p.Published)
	if err != nil {
		return models.SitePage{}, err
	}
	return models.SitePage{
		ID:              id,
		SiteID:          siteID,
		Title:           p.Title,
		Slug:            p.Slug,
		SortOrder:       p.SortOrder,
		Status:          string(p.Status),
		IsHomePage:      p.IsHomePage,
		SeoTitle:        p.SeoTitle,
		SeoDescription:  p.SeoDescription,
		DraftBlocks:     datatypes.JSON(draft),
		PublishedBlocks: datatypes.JSON(published),
		PublishedAt:     p.PublishedAt,
	}, nil
}
