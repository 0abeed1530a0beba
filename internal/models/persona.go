package models

import (
	"time"

	"github.com/personafol/personafolio/internal/hooks"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Theme holds the colors a persona renders with
type Theme struct {
	PrimaryColor   string `json:"primaryColor,omitempty"`
	SecondaryColor string `json:"secondaryColor,omitempty"`
	AccentColor    string `json:"accentColor,omitempty"`
}

// SEOMeta holds per-persona SEO metadata
type SEOMeta struct {
	MetaTitle       string `json:"metaTitle,omitempty"`
	MetaDescription string `json:"metaDescription,omitempty"`
	Keywords        string `json:"keywords,omitempty"`
}

// SocialLinks holds a persona's social profiles
type SocialLinks struct {
	GitHub   string `json:"github,omitempty"`
	LinkedIn string `json:"linkedin,omitempty"`
	Twitter  string `json:"twitter,omitempty"`
	Email    string `json:"email,omitempty"`
	Website  string `json:"website,omitempty"`
}

// Persona is a professional identity partition; every other content type is
// scoped to one or more personas.
type Persona struct {
	ID           uint64                          `gorm:"primaryKey;autoIncrement" json:"id"`
	Title        string                          `gorm:"size:255;not null" json:"title"`
	Slug         string                          `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Tagline      string                          `gorm:"size:255" json:"tagline,omitempty"`
	Description  string                          `gorm:"type:text" json:"description,omitempty"`
	Theme        datatypes.JSONType[Theme]       `json:"theme"`
	SEO          datatypes.JSONType[SEOMeta]     `json:"seo"`
	Social       datatypes.JSONType[SocialLinks] `json:"social"`
	IsActive     bool                            `gorm:"not null;default:true" json:"isActive"`
	DisplayOrder int                             `gorm:"not null;default:0" json:"order"`
	CreatedAt    time.Time                       `json:"createdAt"`
	UpdatedAt    time.Time                       `json:"updatedAt"`
}

// BeforeSave normalizes the slug. Personas require an explicit slug, but
// whatever is supplied is forced into the URL-safe grammar.
func (p *Persona) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = p.Title
	}
	p.Slug = hooks.DeriveSlug(p.Slug)
	return nil
}

// TableName overrides the table name for Persona
func (Persona) TableName() string {
	return "personas"
}
