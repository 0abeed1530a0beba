package models

import (
	"time"

	"github.com/personafol/personafolio/internal/hooks"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Content entry types
const (
	ContentBlog     = "blog"
	ContentTIL      = "til"
	ContentResource = "resource"
	ContentTalk     = "talk"
	ContentTutorial = "tutorial"
)

// ContentEntry is an article, TIL, resource, talk, or tutorial. Entries
// without a publish timestamp are hidden from unauthenticated readers.
type ContentEntry struct {
	ID          uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	Title       string                      `gorm:"size:255;not null" json:"title"`
	Slug        string                      `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Body        string                      `gorm:"type:text;not null" json:"body"`
	Excerpt     string                      `gorm:"size:300" json:"excerpt,omitempty"`
	Type        string                      `gorm:"size:32;not null;default:blog;index" json:"type"`
	Tags        datatypes.JSONSlice[string] `json:"tags,omitempty"`
	ReadTime    int                         `gorm:"default:0" json:"readTime"`
	Featured    bool                        `gorm:"not null;default:false" json:"featured"`
	PublishedAt *time.Time                  `gorm:"index" json:"publishedAt,omitempty"`
	Personas    []Persona                   `gorm:"many2many:content_personas" json:"personas,omitempty"`
	CreatedAt   time.Time                   `json:"createdAt"`
	UpdatedAt   time.Time                   `json:"updatedAt"`
}

// BeforeSave derives a missing slug from the title and a missing read time
// from the body word count.
func (e *ContentEntry) BeforeSave(tx *gorm.DB) error {
	if e.Slug == "" {
		e.Slug = e.Title
	}
	e.Slug = hooks.DeriveSlug(e.Slug)
	if e.ReadTime == 0 {
		e.ReadTime = hooks.ReadTime(e.Body)
	}
	return nil
}

// TableName overrides the table name for ContentEntry
func (ContentEntry) TableName() string {
	return "content_entries"
}
