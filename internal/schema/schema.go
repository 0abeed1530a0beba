// Package schema describes the content collections as data: field names,
// types, constraints, relationship targets, and the visibility rule applied
// to unauthenticated reads. The REST layer is generated from this registry,
// and validation consults it instead of hand-written per-collection checks.
package schema

import (
	"fmt"

	"gorm.io/gorm"
)

// Field types
const (
	TypeText         = "text"
	TypeTextarea     = "textarea"
	TypeRichText     = "richText"
	TypeEmail        = "email"
	TypeNumber       = "number"
	TypeCheckbox     = "checkbox"
	TypeDate         = "date"
	TypeSelect       = "select"
	TypeJSON         = "json"
	TypeArray        = "array"
	TypeRelationship = "relationship"
	TypeUpload       = "upload"
)

// Field is one declared field of a collection.
type Field struct {
	Name      string
	Type      string
	Required  bool
	Unique    bool
	Default   interface{}
	Options   []string // allowed values for select fields
	RelatesTo string   // target collection for relationship/upload fields
	HasMany   bool     // relationship cardinality
}

// Collection is one content collection: its declared fields plus the hooks
// the REST layer needs (model constructors, expansion preloads, read scope).
type Collection struct {
	Slug     string
	TitledBy string
	Fields   []Field

	// PublicScope narrows a query to what unauthenticated readers may see.
	// Nil means the collection is fully public.
	PublicScope func(db *gorm.DB) *gorm.DB

	// AdminOnly restricts create/delete to the admin role (editors may still
	// update their own surface where applicable).
	AdminOnly bool

	// AuthRead requires an authenticated session even for reads.
	AuthRead bool

	// Preloads are the relationship expansions applied to reads (depth 2:
	// nested entries resolve referenced documents of referenced documents).
	Preloads []string

	// Model returns a pointer to a zero value of the collection's model;
	// List returns a pointer to an empty slice of it.
	Model func() interface{}
	List  func() interface{}
}

// Registry is the ordered set of collections the CMS manages.
type Registry struct {
	order []string
	by    map[string]*Collection
}

// Slugs returns the collection slugs in declaration order.
func (r *Registry) Slugs() []string {
	return append([]string(nil), r.order...)
}

// Lookup returns the collection for a slug, or nil.
func (r *Registry) Lookup(slug string) *Collection {
	return r.by[slug]
}

// Validate checks a raw document body against the collection's declared
// constraints: required fields present on create, select values within their
// enumerated options.
func (c *Collection) Validate(raw map[string]interface{}, creating bool) error {
	for _, f := range c.Fields {
		v, present := raw[f.Name]
		if creating && f.Required && f.Default == nil {
			if !present || v == nil || v == "" {
				return fmt.Errorf("field %q is required", f.Name)
			}
		}
		if present && f.Type == TypeSelect && v != nil {
			s, ok := v.(string)
			if !ok {
				return fmt.Errorf("field %q must be a string", f.Name)
			}
			if s != "" && !contains(f.Options, s) {
				return fmt.Errorf("field %q: %q is not one of %v", f.Name, s, f.Options)
			}
		}
	}
	return nil
}

func contains(options []string, v string) bool {
	for _, o := range options {
		if o == v {
			return true
		}
	}
	return false
}

func newRegistry(collections ...*Collection) *Registry {
	r := &Registry{by: make(map[string]*Collection, len(collections))}
	for _, c := range collections {
		r.order = append(r.order, c.Slug)
		r.by[c.Slug] = c
	}
	return r
}
