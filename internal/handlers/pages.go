// pages.go
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

package handlers

import (
	"bytes"
	"html/template"
	"log"
	"sort"

	"github.com/gofiber/fiber/v2"
	"github.com/personafol/personafolio/internal/cms"
	"github.com/personafol/personafolio/internal/models"
	"github.com/personafol/personafolio/internal/services"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

// PageHandler serves the server-rendered site.
type PageHandler struct {
	CMS *cms.Accessor
}

// personaPageProjectLimit caps the project list on a persona detail page.
const personaPageProjectLimit = 20

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(parser.WithAutoHeadingID()),
)

// RenderMarkdown converts trusted editor markdown into HTML for the templates.
func RenderMarkdown(src string) template.HTML {
	var buf bytes.Buffer
	if err := markdown.Convert([]byte(src), &buf); err != nil {
		log.Printf("markdown render failed: %v", err)
		return template.HTML(template.HTMLEscapeString(src))
	}
	return template.HTML(buf.String())
}

// SkillGroup is one category section on the persona page.
type SkillGroup struct {
	Category string
	Skills   []models.Skill
}

// categoryOrder fixes the section order on the persona page.
var categoryOrder = []string{
	models.CategoryLanguage,
	models.CategoryFramework,
	models.CategoryLibrary,
	models.CategoryTool,
	models.CategoryDatabase,
	models.CategoryDevOps,
	models.CategorySecurity,
	models.CategoryDesign,
	models.CategoryOther,
}

// GroupSkills splits a flat skill list into per-category sections, keeping the
// in-category name ordering the query produced.
func GroupSkills(skills []models.Skill) []SkillGroup {
	byCategory := make(map[string][]models.Skill)
	for _, s := range skills {
		byCategory[s.Category] = append(byCategory[s.Category], s)
	}
	groups := make([]SkillGroup, 0, len(byCategory))
	for _, category := range categoryOrder {
		if members, ok := byCategory[category]; ok {
			groups = append(groups, SkillGroup{Category: category, Skills: members})
			delete(byCategory, category)
		}
	}
	// categories outside the known set go last, alphabetically
	rest := make([]string, 0, len(byCategory))
	for category := range byCategory {
		rest = append(rest, category)
	}
	sort.Strings(rest)
	for _, category := range rest {
		groups = append(groups, SkillGroup{Category: category, Skills: byCategory[category]})
	}
	return groups
}

// Home handles GET /
func (h *PageHandler) Home(c *fiber.Ctx) error {
	client, err := h.CMS.Client(c.UserContext())
	if err != nil {
		return h.errorPage(c, err)
	}

	personas, err := services.ListPersonas(client.DB)
	if err != nil {
		return h.errorPage(c, err)
	}
	featured, err := services.ListFeaturedProjects(client.DB, nil, services.DefaultFeaturedLimit)
	if err != nil {
		return h.errorPage(c, err)
	}

	return c.Render("home", fiber.Map{
		"Title":    "Persona Folio",
		"Personas": personas,
		"Featured": featured,
	}, "layouts/main")
}

// Persona handles GET /persona/:slug
func (h *PageHandler) Persona(c *fiber.Ctx) error {
	client, err := h.CMS.Client(c.UserContext())
	if err != nil {
		return h.errorPage(c, err)
	}

	persona, err := services.GetPersonaBySlug(client.DB, c.Params("slug"))
	if err != nil {
		return h.errorPage(c, err)
	}
	if persona == nil {
		return h.NotFound(c)
	}

	projects, err := services.ListProjectsForPersona(client.DB, persona.ID, personaPageProjectLimit)
	if err != nil {
		return h.errorPage(c, err)
	}
	skills, err := services.ListSkillsForPersona(client.DB, persona.ID)
	if err != nil {
		return h.errorPage(c, err)
	}
	experiences, err := services.ListExperiencesForPersona(client.DB, persona.ID)
	if err != nil {
		return h.errorPage(c, err)
	}
	entries, err := services.ListContentForPersona(client.DB, persona.ID, "", services.DefaultContentLimit)
	if err != nil {
		return h.errorPage(c, err)
	}
	certifications, err := services.ListCertificationsForPersona(client.DB, persona.ID)
	if err != nil {
		return h.errorPage(c, err)
	}

	theme := persona.Theme.Data()
	seo := persona.SEO.Data()
	title := persona.Title
	if seo.MetaTitle != "" {
		title = seo.MetaTitle
	}

	return c.Render("persona", fiber.Map{
		"Title":           title,
		"MetaDescription": seo.MetaDescription,
		"PrimaryColor":    theme.PrimaryColor,
		"AccentColor":     theme.AccentColor,
		"Persona":         persona,
		"About":           RenderMarkdown(persona.Description),
		"Projects":        projects,
		"SkillGroups":     GroupSkills(skills),
		"Experiences":     experiences,
		"Entries":         entries,
		"Certifications":  certifications,
	}, "layouts/main")
}

// Project handles GET /projects/:slug
func (h *PageHandler) Project(c *fiber.Ctx) error {
	client, err := h.CMS.Client(c.UserContext())
	if err != nil {
		return h.errorPage(c, err)
	}

	project, err := services.GetProjectBySlug(client.DB, c.Params("slug"))
	if err != nil {
		return h.errorPage(c, err)
	}
	if project == nil {
		return h.NotFound(c)
	}

	return c.Render("project", fiber.Map{
		"Title":   project.Title,
		"Project": project,
		"Body":    RenderMarkdown(project.Body),
	}, "layouts/main")
}

// Content handles GET /content/:slug
func (h *PageHandler) Content(c *fiber.Ctx) error {
	client, err := h.CMS.Client(c.UserContext())
	if err != nil {
		return h.errorPage(c, err)
	}

	entry, err := services.GetContentBySlug(client.DB, c.Params("slug"))
	if err != nil {
		return h.errorPage(c, err)
	}
	if entry == nil {
		return h.NotFound(c)
	}

	return c.Render("content", fiber.Map{
		"Title": entry.Title,
		"Entry": entry,
		"Body":  RenderMarkdown(entry.Body),
	}, "layouts/main")
}

// NotFound renders the 404 page for unmatched site routes.
func (h *PageHandler) NotFound(c *fiber.Ctx) error {
	return c.Status(fiber.StatusNotFound).Render("404", fiber.Map{
		"Title": "Not Found",
	}, "layouts/main")
}

func (h *PageHandler) errorPage(c *fiber.Ctx, err error) error {
	log.Printf("page render error: %v", err)
	return c.Status(fiber.StatusInternalServerError).Render("error", fiber.Map{
		"Title": "Something went wrong",
	}, "layouts/main")
}
