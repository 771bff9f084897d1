package handlers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/lingoverse/lingoverse-server/internal/storage"
)

type ImageHandler struct {
	images *storage.ImageStore
}

func NewImageHandler(images *storage.ImageStore) *ImageHandler {
	return &ImageHandler{images: images}
}

// Upload stores a course or mentor image and returns the URL to put in
// the document's image field.
func (h *ImageHandler) Upload(c *fiber.Ctx) error {
	fileHeader, err := c.FormFile("image")
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "failed to retrieve image")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return jsonError(c, fiber.StatusBadRequest, "failed to open image")
	}
	defer file.Close()

	url, err := h.images.Save(c.Context(), fileHeader.Filename, file, fileHeader.Size,
		fileHeader.Header.Get("Content-Type"))
	if err != nil {
		return jsonError(c, fiber.StatusInternalServerError, "failed to store image")
	}
	return c.JSON(fiber.Map{"url": url})
}
