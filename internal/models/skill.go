package models

import (
	"time"

	"github.com/personafol/personafolio/internal/hooks"
	"gorm.io/gorm"
)

// Skill categories
const (
	CategoryLanguage  = "language"
	CategoryFramework = "framework"
	CategoryLibrary   = "library"
	CategoryTool      = "tool"
	CategoryDatabase  = "database"
	CategoryDevOps    = "devops"
	CategorySecurity  = "security"
	CategoryDesign    = "design"
	CategoryOther     = "other"
)

// Proficiency levels
const (
	ProficiencyBeginner     = "beginner"
	ProficiencyIntermediate = "intermediate"
	ProficiencyAdvanced     = "advanced"
	ProficiencyExpert       = "expert"
)

// Skill is a competency tag attachable to projects, experiences,
// certifications, and personas.
type Skill struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	Slug          string     `gorm:"uniqueIndex;size:255;not null" json:"slug"`
	Category      string     `gorm:"size:32;not null;default:tool" json:"category"`
	Proficiency   string     `gorm:"size:32;not null;default:intermediate" json:"proficiency"`
	YearsOfUse    float64    `gorm:"default:0" json:"yearsOfExperience"`
	Icon          string     `gorm:"size:255" json:"icon,omitempty"`
	Color         string     `gorm:"size:32;default:#3b82f6" json:"color,omitempty"`
	LastUsed      *time.Time `json:"lastUsed,omitempty"`
	IsActive      bool       `gorm:"not null;default:true" json:"isActive"`
	Personas      []Persona  `gorm:"many2many:skill_personas" json:"personas,omitempty"`
	RelatedSkills []*Skill   `gorm:"many2many:skill_related_skills;joinForeignKey:skill_id;joinReferences:related_skill_id" json:"relatedSkills,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// BeforeSave auto-derives the slug from the name when not supplied.
func (s *Skill) BeforeSave(tx *gorm.DB) error {
	if s.Slug == "" {
		s.Slug = s.Name
	}
	s.Slug = hooks.DeriveSlug(s.Slug)
	return nil
}

// TableName overrides the table name for Skill
func (Skill) TableName() string {
	return "skills"
}
