package handlers

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/personafol/personafolio/internal/cms"
	"github.com/personafol/personafolio/internal/models"
	"github.com/personafol/personafolio/internal/utils"
	"gorm.io/datatypes"
)

// MediaHandler serves the media upload route.
type MediaHandler struct {
	CMS *cms.Accessor
}

// allowed upload extensions, matching what the site templates can render
var allowedExtensions = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
	".webp": true,
	".svg":  true,
	".avif": true,
}

// Upload handles POST /api/media
// @Summary Upload a media file
// @Description Store an uploaded image under a collision-free name and create its media document
// @Tags Media
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "Image file"
// @Param alt formData string true "Alt text"
// @Param caption formData string false "Caption"
// @Success 200 {object} utils.SuccessResponseStruct
// @Failure 400 {object} utils.ErrorResponseStruct
// @Failure 500 {object} utils.ErrorResponseStruct
// @Security CookieAuth
// @Router /media [post]
func (h *MediaHandler) Upload(c *fiber.Ctx) error {
	client, err := h.CMS.Client(c.UserContext())
	if err != nil {
		return utils.ErrorResponse(c, "Service unavailable", fiber.StatusServiceUnavailable, "cms.init")
	}

	file, err := c.FormFile("file")
	if err != nil {
		return utils.ErrorResponse(c, "Missing file", fiber.StatusBadRequest, "data.validation.input")
	}
	alt := c.FormValue("alt")
	if alt == "" {
		return utils.ErrorResponse(c, "Field 'alt' is required", fiber.StatusBadRequest, "data.validation.input")
	}

	ext := strings.ToLower(filepath.Ext(file.Filename))
	if !allowedExtensions[ext] {
		return utils.ErrorResponse(c, fmt.Sprintf("Unsupported file type '%s'", ext), fiber.StatusBadRequest, "data.validation.input")
	}

	// uuid prefix keeps repeated uploads of the same original name apart
	filename := fmt.Sprintf("%s-%s", uuid.NewString(), sanitizeFilename(file.Filename))
	if err := c.SaveFile(file, filepath.Join(client.Config.UploadDir, filename)); err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "media.upload")
	}

	sizes := make(map[string]models.ImageSize, len(models.DerivedSizes))
	for name, size := range models.DerivedSizes {
		derived := size
		derived.Filename = derivedFilename(filename, name)
		sizes[name] = derived
	}

	doc := &models.Media{
		Filename: filename,
		Alt:      alt,
		Caption:  c.FormValue("caption"),
		MimeType: file.Header.Get("Content-Type"),
		Filesize: file.Size,
		Sizes:    datatypes.NewJSONType(sizes),
	}
	if err := client.DB.Create(doc).Error; err != nil {
		return utils.ErrorResponse(c, err.Error(), fiber.StatusInternalServerError, "media.upload")
	}

	return utils.MutationSuccessResponse(c, doc)
}

// sanitizeFilename flattens the user-supplied name to a safe basename.
func sanitizeFilename(name string) string {
	base := filepath.Base(name)
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			return r
		case r == '.' || r == '-' || r == '_':
			return r
		default:
			return '-'
		}
	}, base)
}

// derivedFilename names a resized variant, e.g. photo.jpg -> photo-card.jpg.
func derivedFilename(filename, variant string) string {
	ext := filepath.Ext(filename)
	return fmt.Sprintf("%s-%s%s", strings.TrimSuffix(filename, ext), variant, ext)
}
