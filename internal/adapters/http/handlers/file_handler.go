package handlers

import (
	"errors"
	"io"
	"strconv"

	"transit-backoffice/internal/adapters/http/middleware"
	"transit-backoffice/internal/core/services"
	"transit-backoffice/internal/pkg/response"

	"github.com/gofiber/fiber/v2"
)

// maxUploadBytes caps uploads at 10 MiB
const maxUploadBytes = 10 << 20

// FileHandler handles stored file endpoints
type FileHandler struct {
	fileService *services.FileService
}

// NewFileHandler creates a new file handler
func NewFileHandler(fileService *services.FileService) *FileHandler {
	return &FileHandler{fileService: fileService}
}

// Upload stores an uploaded file and records its metadata
// @Summary Upload a file
// @Tags Files
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "File"
// @Success 201 {object} map[string]interface{}
// @Failure 400 {object} response.Rejection
// @Router /files [post]
func (h *FileHandler) Upload(c *fiber.Ctx) error {
	user := middleware.CurrentUser(c)

	fileHeader, err := c.FormFile("file")
	if err != nil {
		return response.BadRequest(c, "File is required")
	}
	if fileHeader.Size > maxUploadBytes {
		return response.BadRequest(c, "File too large")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return response.BadRequest(c, "Failed to read file")
	}
	defer f.Close()

	data, err := io.ReadAll(io.LimitReader(f, maxUploadBytes))
	if err != nil {
		return response.InternalServerError(c, "Failed to read file")
	}

	stored, err := h.fileService.Upload(c.Context(), user.ID, fileHeader.Filename, data)
	if err != nil {
		return response.InternalServerError(c, "Failed to store file")
	}

	return response.Created(c, fiber.Map{
		"file": stored,
	})
}

// Delete removes a stored file: the object behind its storage key first,
// then the metadata row
// @Summary Delete a file
// @Tags Files
// @Produce json
// @Param id path int true "File ID"
// @Success 200 {object} map[string]interface{}
// @Failure 403 {object} response.Rejection
// @Failure 404 {object} response.Rejection
// @Router /files/{id} [delete]
func (h *FileHandler) Delete(c *fiber.Ctx) error {
	id, err := strconv.ParseUint(c.Params("id"), 10, 32)
	if err != nil {
		return response.BadRequest(c, "Invalid file id")
	}

	if err := h.fileService.Delete(c.Context(), uint(id)); err != nil {
		if errors.Is(err, services.ErrFileNotFound) {
			return response.NotFound(c, "File not found")
		}
		return response.InternalServerError(c, "Failed to delete file")
	}

	return c.JSON(fiber.Map{
		"message": "File deleted",
	})
}
