package services

import (
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/model"
	"github.com/orydia-app/orydia_api/shared"
)

type ContentService struct {
	context.DefaultService

	postgres *PostgresService
	minio    *MinIOService
}

const CONTENT_SVC = "content_svc"

const defaultCatalogLimit = 50

func (svc ContentService) Id() string {
	return CONTENT_SVC
}

func (svc *ContentService) Start() error {
	svc.postgres = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.minio = svc.Service(MINIO_SVC).(*MinIOService)
	return nil
}

// resolveMediaURL turns a stored object name into a presigned link. Absolute
// URLs (seeded or externally hosted media) pass through untouched, as does
// anything the presigner cannot serve.
func resolveMediaURL(raw string, presign func(string) (string, error)) string {
	if raw == "" || strings.Contains(raw, "://") {
		return raw
	}
	url, err := presign(raw)
	if err != nil {
		return raw
	}
	return url
}

func (svc *ContentService) presign(objectName string) (string, error) {
	return svc.minio.GetFileURL(objectName, presignedURLTTL)
}

func (svc *ContentService) bookToResponse(book *model.Book) dto.BookResponse {
	return dto.BookResponse{
		ID:             book.ID,
		Title:          book.Title,
		Author:         book.Author,
		Description:    book.Description,
		Tags:           book.TagList(),
		SourceLanguage: book.SourceLanguage,
		CoverURL:       resolveMediaURL(book.CoverURL, svc.presign),
		AudioURL:       resolveMediaURL(book.AudioURL, svc.presign),
		IsAudiobook:    book.IsAudiobook,
		IsPremium:      book.IsPremium,
		TensensReward:  book.TensensReward,
		CreatedAt:      book.CreatedAt,
	}
}

// ListBooks returns the active catalog, newest first.
func (svc *ContentService) ListBooks(limit int) (*dto.BookCollectionResponse, error) {
	if limit <= 0 || limit > 100 {
		limit = defaultCatalogLimit
	}

	books, err := svc.postgres.ListBooks(limit)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load catalog")
	}

	resp := dto.BookCollectionResponse{
		Books: make([]dto.BookResponse, 0, len(books)),
		Total: len(books),
	}
	for i := range books {
		resp.Books = append(resp.Books, svc.bookToResponse(&books[i]))
	}
	return &resp, nil
}

// SearchBooks matches title, author and tags case-insensitively.
func (svc *ContentService) SearchBooks(req *dto.SearchRequest) (*dto.BookCollectionResponse, error) {
	limit := req.Limit
	if limit <= 0 {
		limit = defaultCatalogLimit
	}

	books, err := svc.postgres.SearchBooks(req.Query, limit)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to search catalog")
	}

	resp := dto.BookCollectionResponse{
		Books: make([]dto.BookResponse, 0, len(books)),
		Total: len(books),
	}
	for i := range books {
		resp.Books = append(resp.Books, svc.bookToResponse(&books[i]))
	}
	return &resp, nil
}

// GetBook returns one active book. Premium books are visible to everyone;
// only their content is gated.
func (svc *ContentService) GetBook(bookID string) (*dto.BookResponse, error) {
	book, err := svc.postgres.GetBook(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "book not found")
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load book")
	}

	resp := svc.bookToResponse(book)
	return &resp, nil
}

// GetChapters lists a book's chapters in reading order, without content.
func (svc *ContentService) GetChapters(bookID string) ([]dto.ChapterResponse, error) {
	if _, err := svc.postgres.GetBook(bookID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "book not found")
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load book")
	}

	chapters, err := svc.postgres.GetChapters(bookID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load chapters")
	}

	out := make([]dto.ChapterResponse, 0, len(chapters))
	for _, chapter := range chapters {
		out = append(out, dto.ChapterResponse{
			ID:     chapter.ID,
			BookID: chapter.BookID,
			Title:  chapter.Title,
			Order:  chapter.Order,
		})
	}
	return out, nil
}

// CreateBook adds a new catalog entry. Admin only, enforced at the route.
func (svc *ContentService) CreateBook(req *dto.CreateBookRequest) (*dto.BookResponse, error) {
	tags, _ := json.Marshal(req.Tags)

	sourceLanguage := req.SourceLanguage
	if sourceLanguage == "" {
		sourceLanguage = "en"
	}

	tensensReward := req.TensensReward
	if tensensReward == 0 {
		tensensReward = 50
	}

	book := model.Book{
		ID:             newID(),
		Title:          req.Title,
		Author:         req.Author,
		Description:    req.Description,
		Tags:           tags,
		SourceLanguage: sourceLanguage,
		IsAudiobook:    req.IsAudiobook,
		IsPremium:      req.IsPremium,
		TensensReward:  tensensReward,
		IsActive:       true,
		CreatedAt:      time.Now(),
		UpdatedAt:      time.Now(),
	}

	if err := svc.postgres.CreateBook(&book); err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to create book")
	}

	log.WithFields(log.Fields{"book_id": book.ID, "title": book.Title}).Info("Book created")

	resp := svc.bookToResponse(&book)
	return &resp, nil
}
