package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/orydia-app/orydia_api/shared"
)

type MediaHandler struct {
	mediaSvc MediaServiceInterface
}

func NewMediaHandler(mediaSvc MediaServiceInterface) *MediaHandler {
	return &MediaHandler{mediaSvc: mediaSvc}
}

// @Summary Upload book cover
// @Description Store a cover image and attach it to the book
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param bookId path string true "Book ID"
// @Param file formData file true "Cover image"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/books/{bookId}/cover [post]
func (h *MediaHandler) UploadBookCover(c *fiber.Ctx) error {
	bookID := c.Params("bookId")

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "file is required")
	}

	resp, err := h.mediaSvc.UploadBookCover(bookID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Upload book audio
// @Description Store an audiobook file and attach it to the book
// @Tags admin
// @Accept multipart/form-data
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param bookId path string true "Book ID"
// @Param file formData file true "Audio file"
// @Success 200 {object} shared.Response{data=dto.MediaUploadResponse}
// @Router /api/v1/admin/books/{bookId}/audio [post]
func (h *MediaHandler) UploadBookAudio(c *fiber.Ctx) error {
	bookID := c.Params("bookId")

	file, err := c.FormFile("file")
	if err != nil {
		return shared.NewBadRequestError(err, "file is required")
	}

	resp, err := h.mediaSvc.UploadBookAudio(bookID, file)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
