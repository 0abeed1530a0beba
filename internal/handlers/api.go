// api.go
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
	"encoding/json"
	"errors"
	"fmt"

	"github.com/gofiber/fiber/v2"
	"github.com/personafol/personafolio/internal/cms"
	"github.com/personafol/personafolio/internal/middleware"
	"github.com/personafol/personafolio/internal/models"
	"github.com/personafol/personafolio/internal/schema"
	"github.com/personafol/personafolio/internal/types"
	"github.com/personafol/personafolio/internal/utils"
	"gorm.io/gorm"
)

// APIHandler serves the generated per-collection REST routes
type APIHandler struct {
	CMS *cms.Accessor
}

// ListDocs handles GET /api/:collection
// @Summary List collection documents
// @Description List documents of a collection, paginated; unauthenticated readers only see publicly visible documents
// @Tags Collections
// @Accept json
// @Produce json
// @Param collection path string true "Collection slug"
// @Param limit query int false "Page size"
// @Param page query int false "Page number (1-based)"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /{collection} [get]
func (h *APIHandler) ListDocs(c *fiber.Ctx) error {
	client, coll, err := h.resolve(c)
	if err != nil {
		return err
	}
	if coll == nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("Collection '%s' not found", c.Params("collection")))
	}

	sess := middleware.Session(c)
	if coll.AuthRead && sess == nil {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusForbidden, "data.authorization")
	}

	scoped := func(db *gorm.DB) *gorm.DB {
		if sess == nil && coll.PublicScope != nil {
			return coll.PublicScope(db)
		}
		return db
	}

	var total int64
	if err := scoped(client.DB.Model(coll.Model())).Count(&total).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listDocs")
	}

	limit, page := paginate(c)
	query := scoped(client.DB)
	for _, preload := range coll.Preloads {
		query = query.Preload(preload)
	}

	docs := coll.List()
	if err := query.Order("id ASC").Limit(limit).Offset((page - 1) * limit).Find(docs).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "listDocs")
	}

	return utils.ListResponse(c, docs, total, limit, page)
}

// GetDoc handles GET /api/:collection/:id
// @Summary Get a collection document
// @Description Get a single document by id, relationship-expanded
// @Tags Collections
// @Accept json
// @Produce json
// @Param collection path string true "Collection slug"
// @Param id path int true "Document ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Router /{collection}/{id} [get]
func (h *APIHandler) GetDoc(c *fiber.Ctx) error {
	client, coll, err := h.resolve(c)
	if err != nil {
		return err
	}
	if coll == nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("Collection '%s' not found", c.Params("collection")))
	}

	sess := middleware.Session(c)
	if coll.AuthRead && sess == nil {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusForbidden, "data.authorization")
	}

	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid document id", fiber.StatusBadRequest, "data.validation.input")
	}

	query := client.DB
	if sess == nil && coll.PublicScope != nil {
		query = coll.PublicScope(query)
	}
	for _, preload := range coll.Preloads {
		query = query.Preload(preload)
	}

	doc := coll.Model()
	if err := query.First(doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Document '%d' not found in '%s'", id, coll.Slug))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "getDoc")
	}

	return c.Status(fiber.StatusOK).JSON(doc)
}

// CreateDoc handles POST /api/:collection
// @Summary Create a collection document
// @Description Create a document; relationship fields accept arrays of referenced ids
// @Tags Collections
// @Accept json
// @Produce json
// @Param collection path string true "Collection slug"
// @Param body body object true "Document fields"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /{collection} [post]
func (h *APIHandler) CreateDoc(c *fiber.Ctx) error {
	client, coll, err := h.resolve(c)
	if err != nil {
		return err
	}
	if coll == nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("Collection '%s' not found", c.Params("collection")))
	}
	if err := h.mutationAllowed(c, coll); err != nil {
		return err
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "data.validation.input")
	}
	if err := coll.Validate(raw, true); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "data.validation.input")
	}

	relations := extractRelations(coll, raw)
	password, _ := raw["password"].(string)
	delete(raw, "password")

	doc := coll.Model()
	if err := decodeInto(raw, doc); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "data.validation.input")
	}
	if user, ok := doc.(*models.User); ok {
		if err := user.SetPassword(password); err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "data.validation.input")
		}
	}

	if err := client.DB.Create(doc).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createDoc")
	}
	if err := h.applyRelations(client, coll, doc, relations); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "createDoc")
	}

	return utils.MutationSuccessResponse(c, doc)
}

// UpdateDoc handles PATCH /api/:collection/:id
// @Summary Update a collection document
// @Description Apply a partial update; relationship arrays replace the existing references
// @Tags Collections
// @Accept json
// @Produce json
// @Param collection path string true "Collection slug"
// @Param id path int true "Document ID"
// @Param body body object true "Fields to update"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /{collection}/{id} [patch]
func (h *APIHandler) UpdateDoc(c *fiber.Ctx) error {
	client, coll, err := h.resolve(c)
	if err != nil {
		return err
	}
	if coll == nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("Collection '%s' not found", c.Params("collection")))
	}
	if err := h.mutationAllowed(c, coll); err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid document id", fiber.StatusBadRequest, "data.validation.input")
	}

	doc := coll.Model()
	if err := client.DB.First(doc, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return utils.NotFoundResponse(c, fmt.Sprintf("Document '%d' not found in '%s'", id, coll.Slug))
		}
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateDoc")
	}

	var raw map[string]interface{}
	if err := json.Unmarshal(c.Body(), &raw); err != nil {
		return utils.ErrorResponse(c, "Invalid input", fiber.StatusBadRequest, "data.validation.input")
	}
	if err := coll.Validate(raw, false); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "data.validation.input")
	}

	relations := extractRelations(coll, raw)
	password, _ := raw["password"].(string)
	delete(raw, "password")
	delete(raw, "id")

	if err := decodeInto(raw, doc); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "data.validation.input")
	}
	if user, ok := doc.(*models.User); ok && password != "" {
		if err := user.SetPassword(password); err != nil {
			return utils.ErrorResponse(c, err.Error(), fiber.StatusBadRequest, "data.validation.input")
		}
	}

	if err := client.DB.Save(doc).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateDoc")
	}
	if err := h.applyRelations(client, coll, doc, relations); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "updateDoc")
	}

	return utils.MutationSuccessResponse(c, doc)
}

// DeleteDoc handles DELETE /api/:collection/:id
// @Summary Delete a collection document
// @Tags Collections
// @Accept json
// @Produce json
// @Param collection path string true "Collection slug"
// @Param id path int true "Document ID"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 403 {object} utils.ErrorResponseStruct
// @Failure 404 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /{collection}/{id} [delete]
func (h *APIHandler) DeleteDoc(c *fiber.Ctx) error {
	client, coll, err := h.resolve(c)
	if err != nil {
		return err
	}
	if coll == nil {
		return utils.NotFoundResponse(c, fmt.Sprintf("Collection '%s' not found", c.Params("collection")))
	}
	if err := h.mutationAllowed(c, coll); err != nil {
		return err
	}

	id, err := parseID(c)
	if err != nil {
		return utils.ErrorResponse(c, "Invalid document id", fiber.StatusBadRequest, "data.validation.input")
	}

	result := client.DB.Delete(coll.Model(), id)
	if result.Error != nil {
		return utils.ErrorResponse(c, result.Error.Error(), fiber.StatusInternalServerError, "deleteDoc")
	}
	if result.RowsAffected == 0 {
		return utils.NotFoundResponse(c, fmt.Sprintf("Document '%d' not found in '%s'", id, coll.Slug))
	}

	return utils.MutationSuccessResponse(c, fiber.Map{"id": id})
}

// resolve produces the client and the addressed collection (nil when unknown).
func (h *APIHandler) resolve(c *fiber.Ctx) (*cms.Client, *schema.Collection, error) {
	client, err := h.CMS.Client(c.UserContext())
	if err != nil {
		return nil, nil, utils.ErrorResponse(c, "Service unavailable", fiber.StatusServiceUnavailable, "cms.init")
	}
	return client, client.Schema.Lookup(c.Params("collection")), nil
}

// mutationAllowed enforces the collection's write policy for the session the
// middleware already validated.
func (h *APIHandler) mutationAllowed(c *fiber.Ctx, coll *schema.Collection) error {
	sess := middleware.Session(c)
	if sess == nil {
		return utils.ErrorResponse(c, "Authentication required", fiber.StatusForbidden, "data.authorization")
	}
	if coll.AdminOnly && sess.Role != models.RoleAdmin {
		return utils.ErrorResponse(c, "Admin role required", fiber.StatusForbidden, "data.authorization")
	}
	return nil
}

// extractRelations pulls declared relationship id arrays out of the raw body
// so the remaining fields can bind straight onto the model.
func extractRelations(coll *schema.Collection, raw map[string]interface{}) map[string]relationUpdate {
	relations := make(map[string]relationUpdate)
	for _, f := range coll.Fields {
		// single references are declared under their FK name and bind directly
		if f.Type != schema.TypeRelationship || !f.HasMany {
			continue
		}
		v, ok := raw[f.Name]
		if !ok {
			continue
		}
		delete(raw, f.Name)
		relations[f.Name] = relationUpdate{target: f.RelatesTo, ids: relationIDs(v)}
	}
	return relations
}

// relationIDs normalizes a raw relationship value to target ids. Values
// round-trip through types.FlexUint64 so string and numeric ids both work.
func relationIDs(v interface{}) []uint64 {
	data, err := json.Marshal(v)
	if err != nil {
		return nil
	}
	var flex []types.FlexUint64
	if err := json.Unmarshal(data, &flex); err != nil {
		return nil
	}
	ids := make([]uint64, 0, len(flex))
	for _, f := range flex {
		ids = append(ids, f.Uint64())
	}
	return ids
}

type relationUpdate struct {
	target string
	ids    []uint64
}

// applyRelations replaces the document's references with the submitted id sets.
func (h *APIHandler) applyRelations(client *cms.Client, coll *schema.Collection, doc interface{}, relations map[string]relationUpdate) error {
	for field, update := range relations {
		targetColl := client.Schema.Lookup(update.target)
		if targetColl == nil {
			return fmt.Errorf("unknown relation target %q", update.target)
		}
		targets := targetColl.List()
		if len(update.ids) > 0 {
			if err := client.DB.Find(targets, update.ids).Error; err != nil {
				return err
			}
		}
		if err := client.DB.Model(doc).Association(assocName(field)).Replace(targets); err != nil {
			return err
		}
	}
	return nil
}

// decodeInto binds the remaining raw fields onto the model.
func decodeInto(raw map[string]interface{}, doc interface{}) error {
	buf, err := json.Marshal(raw)
	if err != nil {
		return err
	}
	return json.Unmarshal(buf, doc)
}
