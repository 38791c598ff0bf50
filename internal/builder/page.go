package builder

import "time"

// PageStatus tracks whether a page has ever been made live.
type PageStatus string

const (
	StatusDraft     PageStatus = "DRAFT"
	StatusPublished PageStatus = "PUBLISHED"
)

// Page is one page of a site as the builder works on it. Draft is the
// working copy every edit lands in; Published is a point-in-time copy
// created only by an explicit publish and never touched by draft edits.
// Exactly one page of a site is the home page, and the home page's slug is
// always empty.
type Page struct {
	ID             string     `json:"id"`
	Title          string     `json:"title"`
	Slug           string     `json:"slug"`
	SortOrder      int        `json:"sortOrder"`
	Status         PageStatus `json:"status"`
	IsHomePage     bool       `json:"isHomePage"`
	SeoTitle       string     `json:"seoTitle,omitempty"`
	SeoDescription string     `json:"seoDescription,omitempty"`
	Draft          []Block    `json:"draftBlocks"`
	Published      []Block    `json:"publishedBlocks"`
	PublishedAt    *time.Time `json:"publishedAt,omitempty"`
}

// Clone deep-copies the page including both block lists.
func (p Page) Clone() Page {
	p.Draft = CloneBlocks(p.Draft)
	p.Published = CloneBlocks(p.Published)
	if p.PublishedAt != nil {
		t := *p.PublishedAt
		p.PublishedAt = &t
	}
	return p
}
