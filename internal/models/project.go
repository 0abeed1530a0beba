package models

import (
	"time"

	"github.com/personafol/personafolio/internal/hooks"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Project lifecycle states
const (
	StatusDraft     = "draft"
	StatusPublished = "published"
	StatusArchived  = "archived"
)

// ExtraLink is a titled URL in the project link group
type ExtraLink struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ProjectLinks groups a project's external URLs
type ProjectLinks struct {
	GitHub        string      `json:"github,omitempty"`
	Live          string      `json:"live,omitempty"`
	Documentation string      `json:"documentation,omitempty"`
	Other         []ExtraLink `json:"other,omitempty"`
}

// Metric is a label/value pair in the project metric group
type Metric struct {
	Label string `json:"label"`
	Value string `json:"value"`
}

// ProjectMetrics groups a project's outcome numbers
type ProjectMetrics struct {
	Users       string   `json:"users,omitempty"`
	Performance string   `json:"performance,omitempty"`
	Custom      []Metric `json:"custom,omitempty"`
}

// Project is a portfolio entry. Only published projects are visible to
// unauthenticated readers.
type Project struct {
	ID              uint64                             `gorm:"primaryKey;autoIncrement" json:"id"`
	Title           string                             `gorm:"size:255;not null" json:"title"`
	Slug            string                             `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Excerpt         string                             `gorm:"size:300;not null" json:"excerpt"`
	Body            string                             `gorm:"type:text;not null" json:"body"`
	FeaturedImageID *uint64                            `json:"featuredImageId,omitempty"`
	FeaturedImage   *Media                             `gorm:"foreignKey:FeaturedImageID" json:"featuredImage,omitempty"`
	Gallery         []GalleryItem                      `gorm:"foreignKey:ProjectID" json:"gallery,omitempty"`
	Status          string                             `gorm:"size:32;not null;default:draft;index" json:"status"`
	Featured        bool                               `gorm:"not null;default:false" json:"featured"`
	DisplayOrder    int                                `gorm:"not null;default:0" json:"order"`
	StartDate       *time.Time                         `json:"startDate,omitempty"`
	EndDate         *time.Time                         `json:"endDate,omitempty"`
	Ongoing         bool                               `gorm:"not null;default:false" json:"ongoing"`
	Links           datatypes.JSONType[ProjectLinks]   `json:"links"`
	Metrics         datatypes.JSONType[ProjectMetrics] `json:"metrics"`
	Personas        []Persona                          `gorm:"many2many:project_personas" json:"personas,omitempty"`
	Skills          []Skill                            `gorm:"many2many:project_skills" json:"skills,omitempty"`
	PublishedAt     *time.Time                         `gorm:"index" json:"publishedAt,omitempty"`
	CreatedAt       time.Time                          `json:"createdAt"`
	UpdatedAt       time.Time                          `json:"updatedAt"`
}

// BeforeSave derives a missing slug from the title and stamps the publish
// timestamp on the first transition to published. A stamp already set is
// never overwritten.
func (p *Project) BeforeSave(tx *gorm.DB) error {
	if p.Slug == "" {
		p.Slug = p.Title
	}
	p.Slug = hooks.DeriveSlug(p.Slug)
	p.PublishedAt = hooks.PublishStamp(p.Status == StatusPublished, p.PublishedAt, time.Now())
	return nil
}

// TableName overrides the table name for Project
func (Project) TableName() string {
	return "projects"
}

// GalleryItem is one image reference in a project gallery. A child table
// rather than a JSON array so the media row joins as a real relation.
type GalleryItem struct {
	ID        uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ProjectID uint64    `gorm:"not null;index" json:"projectId"`
	ImageID   uint64    `gorm:"not null" json:"imageId"`
	Image     *Media    `gorm:"foreignKey:ImageID" json:"image,omitempty"`
	Caption   string    `gorm:"size:255" json:"caption,omitempty"`
	Position  int       `gorm:"not null;default:0" json:"position"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// TableName overrides the table name for GalleryItem
func (GalleryItem) TableName() string {
	return "project_gallery_items"
}
