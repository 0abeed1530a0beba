// common.go
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
	"strconv"

	"github.com/gofiber/fiber/v2"
)

// Listing bounds for the REST surface
const (
	defaultPageLimit = 25
	maxPageLimit     = 200
)

// paginate reads limit/page query parameters, clamped to sane bounds.
func paginate(c *fiber.Ctx) (limit, page int) {
	limit = c.QueryInt("limit", defaultPageLimit)
	if limit <= 0 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}
	page = c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	return limit, page
}

// parseID parses the :id route parameter.
func parseID(c *fiber.Ctx) (uint64, error) {
	return strconv.ParseUint(c.Params("id"), 10, 64)
}

// assocName maps a declared relationship field name to its Go association
// name ("relatedSkills" -> "RelatedSkills").
func assocName(field string) string {
	if field == "" {
		return ""
	}
	return string(field[0]-'a'+'A') + field[1:]
}
