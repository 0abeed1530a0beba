package models

import "time"

// Certification is a credential issued by a third party.
type Certification struct {
	ID            uint64     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name          string     `gorm:"size:255;not null" json:"name"`
	Issuer        string     `gorm:"size:255;not null" json:"issuer"`
	IssueDate     time.Time  `gorm:"not null;index" json:"issueDate"`
	ExpiryDate    *time.Time `json:"expiryDate,omitempty"`
	CredentialID  string     `gorm:"size:255" json:"credentialId,omitempty"`
	CredentialURL string     `gorm:"size:512" json:"credentialUrl,omitempty"`
	BadgeImageID  *uint64    `json:"badgeImageId,omitempty"`
	BadgeImage    *Media     `gorm:"foreignKey:BadgeImageID" json:"badgeImage,omitempty"`
	Description   string     `gorm:"size:1024" json:"description,omitempty"`
	Personas      []Persona  `gorm:"many2many:certification_personas" json:"personas,omitempty"`
	Skills        []Skill    `gorm:"many2many:certification_skills" json:"skills,omitempty"`
	CreatedAt     time.Time  `json:"createdAt"`
	UpdatedAt     time.Time  `json:"updatedAt"`
}

// TableName overrides the table name for Certification
func (Certification) TableName() string {
	return "certifications"
}
