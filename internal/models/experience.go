package models

import (
	"time"

	"gorm.io/datatypes"
)

// Employment types
const (
	EmploymentFullTime   = "full-time"
	EmploymentPartTime   = "part-time"
	EmploymentContract   = "contract"
	EmploymentFreelance  = "freelance"
	EmploymentInternship = "internship"
)

// Experience is an employment or engagement record. EndDate is only
// meaningful when Current is false.
type Experience struct {
	ID           uint64                      `gorm:"primaryKey;autoIncrement" json:"id"`
	Company      string                      `gorm:"size:255;not null" json:"company"`
	Role         string                      `gorm:"size:255;not null" json:"role"`
	Description  string                      `gorm:"type:text" json:"description,omitempty"`
	StartDate    time.Time                   `gorm:"not null;index" json:"startDate"`
	EndDate      *time.Time                  `json:"endDate,omitempty"`
	Current      bool                        `gorm:"not null;default:false" json:"current"`
	Location     string                      `gorm:"size:255" json:"location,omitempty"`
	Type         string                      `gorm:"size:32;default:full-time" json:"type,omitempty"`
	Achievements datatypes.JSONSlice[string] `json:"achievements,omitempty"`
	Personas     []Persona                   `gorm:"many2many:experience_personas" json:"personas,omitempty"`
	Skills       []Skill                     `gorm:"many2many:experience_skills" json:"skills,omitempty"`
	CreatedAt    time.Time                   `json:"createdAt"`
	UpdatedAt    time.Time                   `json:"updatedAt"`
}

// TableName overrides the table name for Experience
func (Experience) TableName() string {
	return "experiences"
}
