package handlers

import (
	"mime/multipart"

	"github.com/gofiber/fiber/v2"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/model"
)

// Interfaces decouple the handler layer from the concrete services so the
// handlers are testable with fakes.

type AuthServiceInterface interface {
	Register(req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	Login(req *dto.LoginRequest) (*dto.LoginResponse, error)
	RequiredAuth() fiber.Handler
	RequireRole(role string) fiber.Handler
}

type UserServiceInterface interface {
	GetProfile(userID string) (*dto.UserProfileResponse, error)
	UpdateProfile(userID string, req *dto.UpdateProfileRequest) error
	MarkTutorialSeen(userID, tutorialID string) error
	CompleteBook(userID string, req *dto.CompleteBookRequest) (*dto.CompleteBookResponse, error)
	CompleteChapter(userID, chapterID string) (*dto.CompleteChapterResponse, error)
	CheckUsernameAvailability(username string) (bool, error)
	BuildStatsSnapshot(userID string) (*dto.UserStatsSnapshot, error)
}

type ContentServiceInterface interface {
	ListBooks(limit int) (*dto.BookCollectionResponse, error)
	SearchBooks(req *dto.SearchRequest) (*dto.BookCollectionResponse, error)
	GetBook(bookID string) (*dto.BookResponse, error)
	GetChapters(bookID string) ([]dto.ChapterResponse, error)
	CreateBook(req *dto.CreateBookRequest) (*dto.BookResponse, error)
}

type AchievementServiceInterface interface {
	ListWithProgress(userID string, stats *dto.UserStatsSnapshot) (*dto.AchievementListResponse, error)
	ComputeProgress(achievementID string, stats *dto.UserStatsSnapshot) *dto.AchievementProgress
}

type RewardServiceInterface interface {
	SpinDailyWheel(userID string) (*dto.SpinResponse, error)
	OpenChest(userID, chestID string) (*dto.OpenChestResponse, error)
	ListChests(userID string) (*dto.ChestListResponse, error)
	GrantChest(userID, tableID, source string) (*model.UserChest, error)
}

type TranslationServiceInterface interface {
	GetProgress(bookID, language string) (*dto.TranslationProgress, error)
	UpdateChapterTranslation(bookID, chapterID string, req *dto.UpdateTranslationRequest) error
	StopTracking(bookID, language string)
}

type GuildServiceInterface interface {
	CreateGuild(userID string, req *dto.CreateGuildRequest) (*dto.GuildResponse, error)
	GetGuild(guildID string) (*dto.GuildDetailResponse, error)
	JoinGuild(userID, guildID string) error
	LeaveGuild(userID string) error
}

type LeaderboardServiceInterface interface {
	GetLeaderboard(userID, period string) (*dto.LeaderboardResponse, error)
	GetGuildLeaderboard() (*dto.GuildLeaderboardResponse, error)
}

type ShopServiceInterface interface {
	GetCatalog() (*dto.ShopCatalogResponse, error)
	FulfillPurchase(userID string, req *dto.FulfillPurchaseRequest) (*dto.FulfillPurchaseResponse, error)
}

type MediaServiceInterface interface {
	UploadBookCover(bookID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
	UploadBookAudio(bookID string, file *multipart.FileHeader) (*dto.MediaUploadResponse, error)
}
