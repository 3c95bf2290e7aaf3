package models

import (
	"time"
)

// Blog is a content article. Slugs are unique and act as the public
// lookup key; the views counter is incremented atomically at the
// storage layer on every public single-item fetch.
type Blog struct {
	ID            uint       `gorm:"primaryKey" json:"id"`
	Title         string     `gorm:"size:200;not null" json:"title"`
	Slug          string     `gorm:"size:255;uniqueIndex;not null" json:"slug"`
	Excerpt       string     `gorm:"size:500;not null" json:"excerpt"`
	Content       string     `gorm:"type:text;not null" json:"content,omitempty"`
	FeaturedImage string     `gorm:"not null" json:"featuredImage"`
	Tags          []string   `gorm:"serializer:json" json:"tags"`
	IsPublished   bool       `gorm:"not null;default:false;index:idx_blogs_published" json:"isPublished"`
	PublishedAt   *time.Time `gorm:"index:idx_blogs_published" json:"publishedAt"`
	Author        string     `gorm:"size:100;not null" json:"author"`
	ReadTime      int        `gorm:"not null" json:"readTime"`
	Views         int64      `gorm:"not null;default:0" json:"views"`
	Likes         int64      `gorm:"not null;default:0" json:"likes"`
	Featured      bool       `gorm:"not null;default:false" json:"featured"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// ApplyPublishState enforces the publish-timestamp invariant: the first
// transition to published stamps PublishedAt, and the stamp survives
// later unpublishing. Called explicitly by create/update operations
// rather than hidden in a persistence hook.
func (b *Blog) ApplyPublishState(now time.Time) {
	if b.IsPublished && b.PublishedAt == nil {
		t := now.UTC()
		b.PublishedAt = &t
	}
}
