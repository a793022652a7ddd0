package handlers

import (
	"net/http"
	"strconv"

	"github.com/gofiber/fiber/v2"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/shared"
)

type ContentHandler struct {
	contentSvc ContentServiceInterface
}

func NewContentHandler(contentSvc ContentServiceInterface) *ContentHandler {
	return &ContentHandler{contentSvc: contentSvc}
}

// @Summary List books
// @Description List the active catalog, newest first
// @Tags content
// @Accept json
// @Produce json
// @Param limit query int false "Max books to return"
// @Success 200 {object} shared.Response{data=dto.BookCollectionResponse}
// @Router /api/v1/books [get]
func (h *ContentHandler) ListBooks(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))

	resp, err := h.contentSvc.ListBooks(limit)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Search books
// @Description Search the catalog by title, author or tag
// @Tags content
// @Accept json
// @Produce json
// @Param q query string true "Search query"
// @Param limit query int false "Max books to return"
// @Success 200 {object} shared.Response{data=dto.BookCollectionResponse}
// @Router /api/v1/books/search [get]
func (h *ContentHandler) SearchBooks(c *fiber.Ctx) error {
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	req := dto.SearchRequest{
		Query: c.Query("q"),
		Limit: limit,
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contentSvc.SearchBooks(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get book details
// @Description Get one book by id
// @Tags content
// @Accept json
// @Produce json
// @Param bookId path string true "Book ID"
// @Success 200 {object} shared.Response{data=dto.BookResponse}
// @Router /api/v1/books/{bookId} [get]
func (h *ContentHandler) GetBook(c *fiber.Ctx) error {
	bookID := c.Params("bookId")

	resp, err := h.contentSvc.GetBook(bookID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get book chapters
// @Description List a book's chapters in reading order
// @Tags content
// @Accept json
// @Produce json
// @Param bookId path string true "Book ID"
// @Success 200 {object} shared.Response{data=[]dto.ChapterResponse}
// @Router /api/v1/books/{bookId}/chapters [get]
func (h *ContentHandler) GetChapters(c *fiber.Ctx) error {
	bookID := c.Params("bookId")

	chapters, err := h.contentSvc.GetChapters(bookID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", chapters)
}

// @Summary Create a book
// @Description Add a new book to the catalog
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param bookRequest body dto.CreateBookRequest true "Book details"
// @Success 201 {object} shared.Response{data=dto.BookResponse}
// @Router /api/v1/admin/books [post]
func (h *ContentHandler) CreateBook(c *fiber.Ctx) error {
	var req dto.CreateBookRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.contentSvc.CreateBook(&req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Created", resp)
}
