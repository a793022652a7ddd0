package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/shared"
)

type TranslationHandler struct {
	translationSvc TranslationServiceInterface
}

func NewTranslationHandler(translationSvc TranslationServiceInterface) *TranslationHandler {
	return &TranslationHandler{translationSvc: translationSvc}
}

// @Summary Get translation progress
// @Description Get live translation progress for a book into a language
// @Tags translation
// @Accept json
// @Produce json
// @Param bookId path string true "Book ID"
// @Param lang query string true "Target language code"
// @Success 200 {object} shared.Response{data=dto.TranslationProgress}
// @Router /api/v1/books/{bookId}/translation [get]
func (h *TranslationHandler) GetProgress(c *fiber.Ctx) error {
	bookID := c.Params("bookId")
	language := c.Query("lang")
	if language == "" {
		return shared.NewBadRequestError(nil, "lang query parameter is required")
	}

	progress, err := h.translationSvc.GetProgress(bookID, language)
	if err != nil {
		return err
	}

	// Source language requested: nothing to translate.
	if progress == nil {
		return shared.ResponseJSON(c, http.StatusOK, "Success", nil)
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", progress)
}

// @Summary Update chapter translation
// @Description Upsert one chapter's translation status for a language
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param bookId path string true "Book ID"
// @Param updateRequest body dto.UpdateTranslationRequest true "Translation status"
// @Success 200 {object} shared.Response
// @Router /api/v1/admin/books/{bookId}/translation [put]
func (h *TranslationHandler) UpdateChapterTranslation(c *fiber.Ctx) error {
	bookID := c.Params("bookId")

	var req dto.UpdateTranslationRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.translationSvc.UpdateChapterTranslation(bookID, req.ChapterID, &req); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", nil)
}

// @Summary Stop tracking translation progress
// @Description Drop the live tracker for a book and language pair
// @Tags translation
// @Accept json
// @Produce json
// @Param bookId path string true "Book ID"
// @Param lang query string true "Target language code"
// @Success 200 {object} shared.Response
// @Router /api/v1/books/{bookId}/translation [delete]
func (h *TranslationHandler) StopTracking(c *fiber.Ctx) error {
	bookID := c.Params("bookId")
	language := c.Query("lang")
	if language == "" {
		return shared.NewBadRequestError(nil, "lang query parameter is required")
	}

	h.translationSvc.StopTracking(bookID, language)
	return shared.ResponseJSON(c, http.StatusOK, "Success", nil)
}
