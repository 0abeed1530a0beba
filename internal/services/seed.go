package services

import (
	"encoding/json"
	"fmt"
	"log"
	"time"

	"github.com/personafol/personafolio/data"
	"github.com/personafol/personafolio/internal/models"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Seed fixture shapes. Relationship fields reference personas and skills by
// slug/name so the fixture file stays readable.
type seedFixture struct {
	Admin          seedAdmin           `json:"admin"`
	Personas       []seedPersona       `json:"personas"`
	Skills         []seedSkill         `json:"skills"`
	Projects       []seedProject       `json:"projects"`
	Experiences    []seedExperience    `json:"experiences"`
	Content        []seedContent       `json:"content"`
	Certifications []seedCertification `json:"certifications"`
}

type seedAdmin struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type seedPersona struct {
	Title       string             `json:"title"`
	Slug        string             `json:"slug"`
	Tagline     string             `json:"tagline"`
	Description string             `json:"description"`
	Order       int                `json:"order"`
	Theme       models.Theme       `json:"theme"`
	Social      models.SocialLinks `json:"social"`
}

type seedSkill struct {
	Name        string   `json:"name"`
	Category    string   `json:"category"`
	Proficiency string   `json:"proficiency"`
	Years       float64  `json:"yearsOfExperience"`
	Personas    []string `json:"personas"`
}

type seedProject struct {
	Title     string                `json:"title"`
	Excerpt   string                `json:"excerpt"`
	Body      string                `json:"body"`
	Status    string                `json:"status"`
	Featured  bool                  `json:"featured"`
	Order     int                   `json:"order"`
	StartDate string                `json:"startDate"`
	EndDate   string                `json:"endDate"`
	Ongoing   bool                  `json:"ongoing"`
	Links     models.ProjectLinks   `json:"links"`
	Metrics   models.ProjectMetrics `json:"metrics"`
	Personas  []string              `json:"personas"`
	Skills    []string              `json:"skills"`
}

type seedExperience struct {
	Company      string   `json:"company"`
	Role         string   `json:"role"`
	Description  string   `json:"description"`
	StartDate    string   `json:"startDate"`
	EndDate      string   `json:"endDate"`
	Current      bool     `json:"current"`
	Location     string   `json:"location"`
	Type         string   `json:"type"`
	Achievements []string `json:"achievements"`
	Personas     []string `json:"personas"`
	Skills       []string `json:"skills"`
}

type seedContent struct {
	Title       string   `json:"title"`
	Body        string   `json:"body"`
	Excerpt     string   `json:"excerpt"`
	Type        string   `json:"type"`
	Tags        []string `json:"tags"`
	PublishedAt string   `json:"publishedAt"`
	Personas    []string `json:"personas"`
}

type seedCertification struct {
	Name          string   `json:"name"`
	Issuer        string   `json:"issuer"`
	IssueDate     string   `json:"issueDate"`
	CredentialID  string   `json:"credentialId"`
	CredentialURL string   `json:"credentialUrl"`
	Personas      []string `json:"personas"`
	Skills        []string `json:"skills"`
}

// Seed populates an empty database with the embedded sample content: an
// admin operator, two personas, and enough entries to render every page.
// It is idempotent; a database that already has personas is left alone.
func Seed(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Persona{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("Seed skipped: personas already exist")
		return nil
	}

	var fixture seedFixture
	if err := json.Unmarshal(data.SeedJSON, &fixture); err != nil {
		return fmt.Errorf("invalid seed fixture: %w", err)
	}

	return db.Transaction(func(tx *gorm.DB) error {
		admin := models.User{
			Email: fixture.Admin.Email,
			Role:  models.RoleAdmin,
			Name:  fixture.Admin.Name,
		}
		if err := admin.SetPassword(fixture.Admin.Password); err != nil {
			return err
		}
		if err := tx.Create(&admin).Error; err != nil {
			return err
		}
		log.Printf("Seeded admin user: %s", admin.Email)

		personasBySlug := make(map[string]models.Persona, len(fixture.Personas))
		for _, p := range fixture.Personas {
			persona := models.Persona{
				Title:        p.Title,
				Slug:         p.Slug,
				Tagline:      p.Tagline,
				Description:  p.Description,
				Theme:        datatypes.NewJSONType(p.Theme),
				Social:       datatypes.NewJSONType(p.Social),
				IsActive:     true,
				DisplayOrder: p.Order,
			}
			if err := tx.Create(&persona).Error; err != nil {
				return err
			}
			personasBySlug[persona.Slug] = persona
		}
		log.Printf("Seeded %d personas", len(personasBySlug))

		skillsByName := make(map[string]models.Skill, len(fixture.Skills))
		for _, s := range fixture.Skills {
			skill := models.Skill{
				Name:        s.Name,
				Category:    s.Category,
				Proficiency: s.Proficiency,
				YearsOfUse:  s.Years,
				IsActive:    true,
				Personas:    pickPersonas(personasBySlug, s.Personas),
			}
			if err := tx.Create(&skill).Error; err != nil {
				return err
			}
			skillsByName[skill.Name] = skill
		}

		for _, p := range fixture.Projects {
			project := models.Project{
				Title:        p.Title,
				Excerpt:      p.Excerpt,
				Body:         p.Body,
				Status:       p.Status,
				Featured:     p.Featured,
				DisplayOrder: p.Order,
				StartDate:    parseDate(p.StartDate),
				EndDate:      parseDate(p.EndDate),
				Ongoing:      p.Ongoing,
				Links:        datatypes.NewJSONType(p.Links),
				Metrics:      datatypes.NewJSONType(p.Metrics),
				Personas:     pickPersonas(personasBySlug, p.Personas),
				Skills:       pickSkills(skillsByName, p.Skills),
			}
			if err := tx.Create(&project).Error; err != nil {
				return err
			}
		}

		for _, e := range fixture.Experiences {
			start := parseDate(e.StartDate)
			if start == nil {
				return fmt.Errorf("experience %q needs a start date", e.Role)
			}
			experience := models.Experience{
				Company:      e.Company,
				Role:         e.Role,
				Description:  e.Description,
				StartDate:    *start,
				EndDate:      parseDate(e.EndDate),
				Current:      e.Current,
				Location:     e.Location,
				Type:         e.Type,
				Achievements: datatypes.NewJSONSlice(e.Achievements),
				Personas:     pickPersonas(personasBySlug, e.Personas),
				Skills:       pickSkills(skillsByName, e.Skills),
			}
			if err := tx.Create(&experience).Error; err != nil {
				return err
			}
		}

		for _, c := range fixture.Content {
			entry := models.ContentEntry{
				Title:       c.Title,
				Body:        c.Body,
				Excerpt:     c.Excerpt,
				Type:        c.Type,
				Tags:        datatypes.NewJSONSlice(c.Tags),
				PublishedAt: parseDate(c.PublishedAt),
				Personas:    pickPersonas(personasBySlug, c.Personas),
			}
			if err := tx.Create(&entry).Error; err != nil {
				return err
			}
		}

		for _, c := range fixture.Certifications {
			issued := parseDate(c.IssueDate)
			if issued == nil {
				return fmt.Errorf("certification %q needs an issue date", c.Name)
			}
			certification := models.Certification{
				Name:          c.Name,
				Issuer:        c.Issuer,
				IssueDate:     *issued,
				CredentialID:  c.CredentialID,
				CredentialURL: c.CredentialURL,
				Personas:      pickPersonas(personasBySlug, c.Personas),
				Skills:        pickSkills(skillsByName, c.Skills),
			}
			if err := tx.Create(&certification).Error; err != nil {
				return err
			}
		}

		log.Println("Seed complete")
		return nil
	})
}

func pickPersonas(bySlug map[string]models.Persona, slugs []string) []models.Persona {
	picked := make([]models.Persona, 0, len(slugs))
	for _, slug := range slugs {
		if p, ok := bySlug[slug]; ok {
			picked = append(picked, p)
		}
	}
	return picked
}

func pickSkills(byName map[string]models.Skill, names []string) []models.Skill {
	picked := make([]models.Skill, 0, len(names))
	for _, name := range names {
		if s, ok := byName[name]; ok {
			picked = append(picked, s)
		}
	}
	return picked
}

func parseDate(value string) *time.Time {
	if value == "" {
		return nil
	}
	t, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &t
}
