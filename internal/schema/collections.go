package schema

import (
	"github.com/personafol/personafolio/internal/models"
	"gorm.io/gorm"
)

// Default returns the registry for the eight collections this site manages.
func Default() *Registry {
	return newRegistry(
		usersCollection(),
		mediaCollection(),
		personasCollection(),
		skillsCollection(),
		projectsCollection(),
		experiencesCollection(),
		contentCollection(),
		certificationsCollection(),
	)
}

func usersCollection() *Collection {
	return &Collection{
		Slug:      "users",
		TitledBy:  "email",
		AdminOnly: true,
		AuthRead:  true,
		Fields: []Field{
			{Name: "email", Type: TypeEmail, Required: true, Unique: true},
			{Name: "password", Type: TypeText, Required: true},
			{Name: "role", Type: TypeSelect, Required: true, Default: models.RoleAdmin,
				Options: []string{models.RoleAdmin, models.RoleEditor}},
			{Name: "name", Type: TypeText},
		},
		Model: func() interface{} { return &models.User{} },
		List:  func() interface{} { return &[]models.User{} },
	}
}

func mediaCollection() *Collection {
	return &Collection{
		Slug:     "media",
		TitledBy: "alt",
		Fields: []Field{
			{Name: "alt", Type: TypeText, Required: true},
			{Name: "caption", Type: TypeTextarea},
			{Name: "filename", Type: TypeText, Unique: true},
		},
		Model: func() interface{} { return &models.Media{} },
		List:  func() interface{} { return &[]models.Media{} },
	}
}

func personasCollection() *Collection {
	return &Collection{
		Slug:     "personas",
		TitledBy: "title",
		Fields: []Field{
			{Name: "title", Type: TypeText, Required: true},
			{Name: "slug", Type: TypeText, Required: true, Unique: true},
			{Name: "tagline", Type: TypeText},
			{Name: "description", Type: TypeRichText},
			{Name: "theme", Type: TypeJSON},
			{Name: "seo", Type: TypeJSON},
			{Name: "social", Type: TypeJSON},
			{Name: "isActive", Type: TypeCheckbox, Required: true, Default: true},
			{Name: "order", Type: TypeNumber, Default: 0},
		},
		PublicScope: func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true)
		},
		Model: func() interface{} { return &models.Persona{} },
		List:  func() interface{} { return &[]models.Persona{} },
	}
}

func skillsCollection() *Collection {
	return &Collection{
		Slug:     "skills",
		TitledBy: "name",
		Fields: []Field{
			{Name: "name", Type: TypeText, Required: true},
			{Name: "slug", Type: TypeText, Unique: true},
			{Name: "category", Type: TypeSelect, Required: true, Default: models.CategoryTool,
				Options: []string{
					models.CategoryLanguage, models.CategoryFramework, models.CategoryLibrary,
					models.CategoryTool, models.CategoryDatabase, models.CategoryDevOps,
					models.CategorySecurity, models.CategoryDesign, models.CategoryOther,
				}},
			{Name: "proficiency", Type: TypeSelect, Required: true, Default: models.ProficiencyIntermediate,
				Options: []string{
					models.ProficiencyBeginner, models.ProficiencyIntermediate,
					models.ProficiencyAdvanced, models.ProficiencyExpert,
				}},
			{Name: "yearsOfExperience", Type: TypeNumber},
			{Name: "icon", Type: TypeText},
			{Name: "color", Type: TypeText, Default: "#3b82f6"},
			{Name: "lastUsed", Type: TypeDate},
			{Name: "isActive", Type: TypeCheckbox, Required: true, Default: true},
			{Name: "personas", Type: TypeRelationship, RelatesTo: "personas", HasMany: true},
			{Name: "relatedSkills", Type: TypeRelationship, RelatesTo: "skills", HasMany: true},
		},
		PublicScope: func(db *gorm.DB) *gorm.DB {
			return db.Where("is_active = ?", true)
		},
		Preloads: []string{"Personas", "RelatedSkills"},
		Model:    func() interface{} { return &models.Skill{} },
		List:     func() interface{} { return &[]models.Skill{} },
	}
}

func projectsCollection() *Collection {
	return &Collection{
		Slug:     "projects",
		TitledBy: "title",
		Fields: []Field{
			{Name: "title", Type: TypeText, Required: true},
			{Name: "slug", Type: TypeText, Unique: true},
			{Name: "excerpt", Type: TypeTextarea, Required: true},
			{Name: "body", Type: TypeRichText, Required: true},
			{Name: "featuredImageId", Type: TypeUpload, RelatesTo: "media"},
			{Name: "status", Type: TypeSelect, Required: true, Default: models.StatusDraft,
				Options: []string{models.StatusDraft, models.StatusPublished, models.StatusArchived}},
			{Name: "featured", Type: TypeCheckbox, Default: false},
			{Name: "order", Type: TypeNumber, Default: 0},
			{Name: "startDate", Type: TypeDate},
			{Name: "endDate", Type: TypeDate},
			{Name: "ongoing", Type: TypeCheckbox, Default: false},
			{Name: "links", Type: TypeJSON},
			{Name: "metrics", Type: TypeJSON},
			{Name: "personas", Type: TypeRelationship, RelatesTo: "personas", HasMany: true, Required: true},
			{Name: "skills", Type: TypeRelationship, RelatesTo: "skills", HasMany: true},
			{Name: "publishedAt", Type: TypeDate},
		},
		PublicScope: func(db *gorm.DB) *gorm.DB {
			return db.Where("status = ?", models.StatusPublished)
		},
		Preloads: []string{"FeaturedImage", "Gallery.Image", "Personas", "Skills"},
		Model:    func() interface{} { return &models.Project{} },
		List:     func() interface{} { return &[]models.Project{} },
	}
}

func experiencesCollection() *Collection {
	return &Collection{
		Slug:     "experiences",
		TitledBy: "role",
		Fields: []Field{
			{Name: "company", Type: TypeText, Required: true},
			{Name: "role", Type: TypeText, Required: true},
			{Name: "description", Type: TypeRichText},
			{Name: "startDate", Type: TypeDate, Required: true},
			{Name: "endDate", Type: TypeDate},
			{Name: "current", Type: TypeCheckbox, Default: false},
			{Name: "location", Type: TypeText},
			{Name: "type", Type: TypeSelect, Default: models.EmploymentFullTime,
				Options: []string{
					models.EmploymentFullTime, models.EmploymentPartTime, models.EmploymentContract,
					models.EmploymentFreelance, models.EmploymentInternship,
				}},
			{Name: "achievements", Type: TypeArray},
			{Name: "personas", Type: TypeRelationship, RelatesTo: "personas", HasMany: true},
			{Name: "skills", Type: TypeRelationship, RelatesTo: "skills", HasMany: true},
		},
		Preloads: []string{"Personas", "Skills"},
		Model:    func() interface{} { return &models.Experience{} },
		List:     func() interface{} { return &[]models.Experience{} },
	}
}

func contentCollection() *Collection {
	return &Collection{
		Slug:     "content",
		TitledBy: "title",
		Fields: []Field{
			{Name: "title", Type: TypeText, Required: true},
			{Name: "slug", Type: TypeText, Unique: true},
			{Name: "body", Type: TypeRichText, Required: true},
			{Name: "excerpt", Type: TypeTextarea},
			{Name: "type", Type: TypeSelect, Required: true, Default: models.ContentBlog,
				Options: []string{
					models.ContentBlog, models.ContentTIL, models.ContentResource,
					models.ContentTalk, models.ContentTutorial,
				}},
			{Name: "tags", Type: TypeArray},
			{Name: "readTime", Type: TypeNumber},
			{Name: "featured", Type: TypeCheckbox, Default: false},
			{Name: "publishedAt", Type: TypeDate},
			{Name: "personas", Type: TypeRelationship, RelatesTo: "personas", HasMany: true},
		},
		PublicScope: func(db *gorm.DB) *gorm.DB {
			return db.Where("published_at IS NOT NULL")
		},
		Preloads: []string{"Personas"},
		Model:    func() interface{} { return &models.ContentEntry{} },
		List:     func() interface{} { return &[]models.ContentEntry{} },
	}
}

func certificationsCollection() *Collection {
	return &Collection{
		Slug:     "certifications",
		TitledBy: "name",
		Fields: []Field{
			{Name: "name", Type: TypeText, Required: true},
			{Name: "issuer", Type: TypeText, Required: true},
			{Name: "issueDate", Type: TypeDate, Required: true},
			{Name: "expiryDate", Type: TypeDate},
			{Name: "credentialId", Type: TypeText},
			{Name: "credentialUrl", Type: TypeText},
			{Name: "badgeImageId", Type: TypeUpload, RelatesTo: "media"},
			{Name: "description", Type: TypeTextarea},
			{Name: "personas", Type: TypeRelationship, RelatesTo: "personas", HasMany: true},
			{Name: "skills", Type: TypeRelationship, RelatesTo: "skills", HasMany: true},
		},
		Preloads: []string{"BadgeImage", "Personas", "Skills"},
		Model:    func() interface{} { return &models.Certification{} },
		List:     func() interface{} { return &[]models.Certification{} },
	}
}
