// content.go
//
// Multi-persona portfolio content service and server-rendered site
// Copyright (c) 2026 Persona Folio <hello@personafol.io> (https://personafol.io)
//
// This file is part of personafolio.
// personafolio is free software: you can redistribute it and/or modify it
// under the terms of the GNU Affero General Public License as published by the Free Software
// Foundation, either version 3 of the License, or (at your option) any later version.
// personafolio is distributed in the hope that it will be useful, but WITHOUT ANY WARRANTY;
// without even the implied warranty of MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.
// See the GNU Affero General Public License for more details.
// You should have received a copy of the GNU Affero General Public License along with personafolio.
// If not, see <https://www.gnu.org/licenses/>.

package services

import (
	"errors"

	"github.com/personafol/personafolio/internal/models"
	"gorm.io/gorm"
)

// Default caps for the persona-scoped listings
const (
	DefaultProjectLimit  = 100
	DefaultFeaturedLimit = 6
	SkillLimit           = 200
	DefaultContentLimit  = 50
)

// Every function in this file is a read-only mapping from selection criteria
// to an ordered list of entities. Data-access failures propagate unchanged;
// "no match" is a nil result, never an error.

// ListPersonas returns all active personas ordered by display order.
func ListPersonas(db *gorm.DB) ([]models.Persona, error) {
	var personas []models.Persona
	err := db.Where("is_active = ?", true).
		Order("display_order ASC, id ASC").
		Find(&personas).Error
	return personas, err
}

// GetPersonaBySlug returns the single active persona with the given slug,
// or nil when no such persona exists.
func GetPersonaBySlug(db *gorm.DB, slug string) (*models.Persona, error) {
	var persona models.Persona
	err := db.Where("slug = ? AND is_active = ?", slug, true).
		First(&persona).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &persona, nil
}

// ListProjectsForPersona returns published projects referencing the persona,
// ordered by display order, relationship-expanded two levels deep.
func ListProjectsForPersona(db *gorm.DB, personaID uint64, limit int) ([]models.Project, error) {
	if limit <= 0 {
		limit = DefaultProjectLimit
	}
	var projects []models.Project
	err := db.
		Joins("JOIN project_personas pp ON pp.project_id = projects.id").
		Where("pp.persona_id = ?", personaID).
		Where("projects.status = ?", models.StatusPublished).
		Order("projects.display_order ASC, projects.id ASC").
		Limit(limit).
		Preload("FeaturedImage").
		Preload("Gallery.Image").
		Preload("Personas").
		Preload("Skills").
		Find(&projects).Error
	return projects, err
}

// GetProjectBySlug returns a single published project by slug,
// relationship-expanded, or nil when no published project matches.
func GetProjectBySlug(db *gorm.DB, slug string) (*models.Project, error) {
	var project models.Project
	err := db.Where("slug = ? AND status = ?", slug, models.StatusPublished).
		Preload("FeaturedImage").
		Preload("Gallery.Image").
		Preload("Personas").
		Preload("Skills").
		First(&project).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &project, nil
}

// ListFeaturedProjects returns published projects flagged as featured,
// optionally narrowed to a persona, ordered by display order.
func ListFeaturedProjects(db *gorm.DB, personaID *uint64, limit int) ([]models.Project, error) {
	if limit <= 0 {
		limit = DefaultFeaturedLimit
	}
	query := db.
		Where("projects.status = ?", models.StatusPublished).
		Where("projects.featured = ?", true)
	if personaID != nil {
		query = query.
			Joins("JOIN project_personas pp ON pp.project_id = projects.id").
			Where("pp.persona_id = ?", *personaID)
	}
	var projects []models.Project
	err := query.
		Order("projects.display_order ASC, projects.id ASC").
		Limit(limit).
		Preload("FeaturedImage").
		Preload("Personas").
		Preload("Skills").
		Find(&projects).Error
	return projects, err
}

// ListSkillsForPersona returns active skills referencing the persona,
// alphabetical by name.
func ListSkillsForPersona(db *gorm.DB, personaID uint64) ([]models.Skill, error) {
	var skills []models.Skill
	err := db.
		Joins("JOIN skill_personas sp ON sp.skill_id = skills.id").
		Where("sp.persona_id = ?", personaID).
		Where("skills.is_active = ?", true).
		Order("skills.name ASC").
		Limit(SkillLimit).
		Find(&skills).Error
	return skills, err
}

// ListExperiencesForPersona returns the persona's experiences, most recent
// start date first, relationship-expanded.
func ListExperiencesForPersona(db *gorm.DB, personaID uint64) ([]models.Experience, error) {
	var experiences []models.Experience
	err := db.
		Joins("JOIN experience_personas ep ON ep.experience_id = experiences.id").
		Where("ep.persona_id = ?", personaID).
		Order("experiences.start_date DESC").
		Preload("Personas").
		Preload("Skills").
		Find(&experiences).Error
	return experiences, err
}

// ListContentForPersona returns published content entries referencing the
// persona, newest first, optionally filtered by type.
func ListContentForPersona(db *gorm.DB, personaID uint64, contentType string, limit int) ([]models.ContentEntry, error) {
	if limit <= 0 {
		limit = DefaultContentLimit
	}
	query := db.
		Joins("JOIN content_personas cp ON cp.content_entry_id = content_entries.id").
		Where("cp.persona_id = ?", personaID).
		Where("content_entries.published_at IS NOT NULL")
	if contentType != "" {
		query = query.Where("content_entries.type = ?", contentType)
	}
	var entries []models.ContentEntry
	err := query.
		Order("content_entries.published_at DESC").
		Limit(limit).
		Find(&entries).Error
	return entries, err
}

// GetContentBySlug returns a single published content entry by slug,
// relationship-expanded, or nil when no published entry matches.
func GetContentBySlug(db *gorm.DB, slug string) (*models.ContentEntry, error) {
	var entry models.ContentEntry
	err := db.Where("slug = ? AND published_at IS NOT NULL", slug).
		Preload("Personas").
		First(&entry).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &entry, nil
}

// ListCertificationsForPersona returns the persona's certifications, most
// recently issued first, relationship-expanded.
func ListCertificationsForPersona(db *gorm.DB, personaID uint64) ([]models.Certification, error) {
	var certifications []models.Certification
	err := db.
		Joins("JOIN certification_personas cp ON cp.certification_id = certifications.id").
		Where("cp.persona_id = ?", personaID).
		Order("certifications.issue_date DESC").
		Preload("BadgeImage").
		Preload("Personas").
		Preload("Skills").
		Find(&certifications).Error
	return certifications, err
}
