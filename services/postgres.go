package services

import (
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/alphabatem/common/context"
	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/model"
)

type PostgresService struct {
	context.DefaultService
	db *gorm.DB

	dsn string
}

const POSTGRES_SVC = "postgres_svc"

// Id returns Service ID
func (ds PostgresService) Id() string {
	return POSTGRES_SVC
}

// Db Access to the raw gorm handle
func (ds PostgresService) Db() *gorm.DB {
	return ds.db
}

func (ds *PostgresService) Configure(ctx *context.Context) error {
	ds.dsn = os.Getenv("DATABASE_DSN")
	if ds.dsn == "" {
		ds.dsn = "host=localhost user=orydia password=orydia dbname=orydia port=5432 sslmode=disable"
	}

	return ds.DefaultService.Configure(ctx)
}

// Start opens the connection and migrates any tables that changed since the
// last runtime.
func (ds *PostgresService) Start() (err error) {
	ds.db, err = gorm.Open(postgres.Open(ds.dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Error),
	})
	if err != nil {
		return err
	}

	models := []interface{}{
		&model.User{},
		&model.UserStats{},
		&model.GenrePreference{},
		&model.ChapterRead{},
		&model.BookCompletion{},
		&model.Book{},
		&model.Chapter{},
		&model.ChapterTranslation{},
		&model.Achievement{},
		&model.UserAchievement{},
		&model.RewardTable{},
		&model.RewardEntry{},
		&model.RewardGrant{},
		&model.UserChest{},
		&model.Guild{},
		&model.GuildMember{},
		&model.Purchase{},
		&model.OrydorPack{},
	}

	if err = ds.db.AutoMigrate(models...); err != nil {
		log.Printf("Failed to migrate database: %v", err)
		return err
	}

	log.Println("Database connected and migrated successfully")
	return nil
}

func (ds *PostgresService) Shutdown() {
}

func (ds *PostgresService) HandleError(err error) error {
	if err == nil {
		return nil
	}

	var statusCode int
	var errorType string

	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		statusCode = http.StatusNotFound
		errorType = "NOT_FOUND"
	case errors.Is(err, gorm.ErrDuplicatedKey):
		statusCode = http.StatusConflict
		errorType = "CONFLICT"
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		statusCode = http.StatusBadRequest
		errorType = "FOREIGN_KEY_VIOLATION"
	default:
		if strings.Contains(err.Error(), "duplicate key value") {
			statusCode = http.StatusConflict
			errorType = "UNIQUE_CONSTRAINT"
		} else {
			statusCode = http.StatusInternalServerError
			errorType = "INTERNAL_ERROR"
		}
	}

	logEntry := log.WithFields(log.Fields{
		"status_code": statusCode,
		"error_type":  errorType,
		"error":       err.Error(),
	})

	if statusCode >= 500 {
		logEntry.Error("Database error occurred")
	} else {
		logEntry.Warn("Database operation failed")
	}

	return fmt.Errorf("%s: %w", errorType, err)
}

func newID() string {
	id, _ := uuid.NewV7()
	return id.String()
}

// ==================== USERS ====================

func (ds *PostgresService) CreateUser(user *model.User) error {
	return ds.db.Create(user).Error
}

func (ds *PostgresService) GetUserByID(userID string) (*model.User, error) {
	var user model.User
	err := ds.db.Where("id = ? AND deleted_at IS NULL", userID).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByEmail(email string) (*model.User, error) {
	var user model.User
	err := ds.db.Where("LOWER(email) = LOWER(?) AND deleted_at IS NULL", email).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *PostgresService) GetUserByUsername(username string) (*model.User, error) {
	var user model.User
	err := ds.db.Where("LOWER(username) = LOWER(?) AND deleted_at IS NULL", username).First(&user).Error
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (ds *PostgresService) UpdateUser(userID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return ds.db.Model(&model.User{}).Where("id = ?", userID).Updates(updates).Error
}

// ==================== USER STATS ====================

func (ds *PostgresService) CreateUserStats(stats *model.UserStats) error {
	return ds.db.Create(stats).Error
}

func (ds *PostgresService) GetUserStats(userID string) (*model.UserStats, error) {
	var stats model.UserStats
	err := ds.db.Where("user_id = ?", userID).First(&stats).Error
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (ds *PostgresService) UpdateUserStats(stats *model.UserStats) error {
	stats.UpdatedAt = time.Now()
	return ds.db.Save(stats).Error
}

// ==================== BOOKS ====================

func (ds *PostgresService) CreateBook(book *model.Book) error {
	return ds.db.Create(book).Error
}

func (ds *PostgresService) GetBook(bookID string) (*model.Book, error) {
	var book model.Book
	err := ds.db.Where("id = ? AND is_active = ?", bookID, true).First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (ds *PostgresService) ListBooks(limit int) ([]model.Book, error) {
	var books []model.Book
	err := ds.db.Where("is_active = ?", true).Order("created_at DESC").Limit(limit).Find(&books).Error
	return books, err
}

func (ds *PostgresService) SearchBooks(query string, limit int) ([]model.Book, error) {
	var books []model.Book
	pattern := "%" + strings.ToLower(query) + "%"
	err := ds.db.Where("is_active = ? AND (LOWER(title) LIKE ? OR LOWER(author) LIKE ? OR LOWER(tags) LIKE ?)",
		true, pattern, pattern, pattern).
		Order("title ASC").Limit(limit).Find(&books).Error
	return books, err
}

func (ds *PostgresService) UpdateBook(bookID string, updates map[string]interface{}) error {
	updates["updated_at"] = time.Now()
	return ds.db.Model(&model.Book{}).Where("id = ?", bookID).Updates(updates).Error
}

func (ds *PostgresService) CreateChapter(chapter *model.Chapter) error {
	return ds.db.Create(chapter).Error
}

func (ds *PostgresService) GetChapter(chapterID string) (*model.Chapter, error) {
	var chapter model.Chapter
	err := ds.db.Where("id = ?", chapterID).First(&chapter).Error
	if err != nil {
		return nil, err
	}
	return &chapter, nil
}

func (ds *PostgresService) GetChapters(bookID string) ([]model.Chapter, error) {
	var chapters []model.Chapter
	err := ds.db.Where("book_id = ?", bookID).Order(`"order" ASC`).Find(&chapters).Error
	return chapters, err
}

// ==================== TRANSLATIONS ====================

func (ds *PostgresService) GetChapterTranslations(bookID, language string) ([]model.ChapterTranslation, error) {
	var rows []model.ChapterTranslation
	err := ds.db.Where("book_id = ? AND language = ?", bookID, language).Find(&rows).Error
	return rows, err
}

func (ds *PostgresService) UpsertChapterTranslation(row *model.ChapterTranslation) error {
	var existing model.ChapterTranslation
	err := ds.db.Where("chapter_id = ? AND language = ?", row.ChapterID, row.Language).First(&existing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		row.ID = newID()
		row.CreatedAt = time.Now()
		row.UpdatedAt = time.Now()
		return ds.db.Create(row).Error
	}
	if err != nil {
		return err
	}

	return ds.db.Model(&existing).Updates(map[string]interface{}{
		"status":     row.Status,
		"content":    row.Content,
		"updated_at": time.Now(),
	}).Error
}

// ==================== ACHIEVEMENTS ====================

func (ds *PostgresService) GetAchievements() ([]model.Achievement, error) {
	var achievements []model.Achievement
	err := ds.db.Where("is_active = ?", true).Order("id ASC").Find(&achievements).Error
	return achievements, err
}

func (ds *PostgresService) GetUserAchievements(userID string) ([]model.UserAchievement, error) {
	var rows []model.UserAchievement
	err := ds.db.Preload("Achievement").Where("user_id = ?", userID).Find(&rows).Error
	return rows, err
}

func (ds *PostgresService) CreateUserAchievement(row *model.UserAchievement) error {
	return ds.db.Create(row).Error
}

// ==================== REWARD TABLES / GRANTS ====================

func (ds *PostgresService) GetRewardTableByName(name string) (*model.RewardTable, error) {
	var table model.RewardTable
	err := ds.db.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order(`"order" ASC`)
	}).Where("name = ? AND is_active = ?", name, true).First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

func (ds *PostgresService) GetRewardTableByID(tableID string) (*model.RewardTable, error) {
	var table model.RewardTable
	err := ds.db.Preload("Entries", func(db *gorm.DB) *gorm.DB {
		return db.Order(`"order" ASC`)
	}).Where("id = ? AND is_active = ?", tableID, true).First(&table).Error
	if err != nil {
		return nil, err
	}
	return &table, nil
}

// ApplyRewardGrant persists one roll outcome and credits the currency in a
// single transaction. The unique index on roll_id makes a retried apply a
// no-op conflict instead of a double credit.
func (ds *PostgresService) ApplyRewardGrant(grant *model.RewardGrant) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(grant).Error; err != nil {
			return err
		}

		column := "tensens"
		if grant.Currency == "orydors" {
			column = "orydors"
		}

		return tx.Model(&model.UserStats{}).
			Where("user_id = ?", grant.UserID).
			UpdateColumn(column, gorm.Expr(column+" + ?", grant.Quantity)).Error
	})
}

// ==================== CHESTS ====================

func (ds *PostgresService) CreateUserChest(chest *model.UserChest) error {
	return ds.db.Create(chest).Error
}

func (ds *PostgresService) GetUnopenedChests(userID string) ([]model.UserChest, error) {
	var chests []model.UserChest
	err := ds.db.Where("user_id = ? AND opened_at IS NULL", userID).Order("created_at ASC").Find(&chests).Error
	return chests, err
}

func (ds *PostgresService) GetUserChest(userID, chestID string) (*model.UserChest, error) {
	var chest model.UserChest
	err := ds.db.Where("id = ? AND user_id = ?", chestID, userID).First(&chest).Error
	if err != nil {
		return nil, err
	}
	return &chest, nil
}

// MarkChestOpened claims an unopened chest. Returns gorm.ErrRecordNotFound if
// the chest was already opened, which callers treat as a lost race.
func (ds *PostgresService) MarkChestOpened(chestID string) error {
	now := time.Now()
	res := ds.db.Model(&model.UserChest{}).
		Where("id = ? AND opened_at IS NULL", chestID).
		Update("opened_at", &now)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// ==================== COMPLETIONS / GENRES ====================

func (ds *PostgresService) GetBookCompletion(userID, bookID string) (*model.BookCompletion, error) {
	var completion model.BookCompletion
	err := ds.db.Where("user_id = ? AND book_id = ?", userID, bookID).First(&completion).Error
	if err != nil {
		return nil, err
	}
	return &completion, nil
}

func (ds *PostgresService) CreateBookCompletion(completion *model.BookCompletion) error {
	return ds.db.Create(completion).Error
}

func (ds *PostgresService) GetChapterRead(userID, chapterID string) (*model.ChapterRead, error) {
	var read model.ChapterRead
	err := ds.db.Where("user_id = ? AND chapter_id = ?", userID, chapterID).First(&read).Error
	if err != nil {
		return nil, err
	}
	return &read, nil
}

func (ds *PostgresService) CreateChapterRead(read *model.ChapterRead) error {
	return ds.db.Create(read).Error
}

func (ds *PostgresService) CountChapterReads(userID, bookID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.ChapterRead{}).
		Where("user_id = ? AND book_id = ?", userID, bookID).Count(&count).Error
	return count, err
}

func (ds *PostgresService) IncrementGenreScore(userID, genre string, delta int) error {
	var pref model.GenrePreference
	err := ds.db.Where("user_id = ? AND genre = ?", userID, genre).First(&pref).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		pref = model.GenrePreference{
			ID:        newID(),
			UserID:    userID,
			Genre:     genre,
			Score:     delta,
			UpdatedAt: time.Now(),
		}
		return ds.db.Create(&pref).Error
	}
	if err != nil {
		return err
	}

	return ds.db.Model(&pref).Updates(map[string]interface{}{
		"score":      gorm.Expr("score + ?", delta),
		"updated_at": time.Now(),
	}).Error
}

func (ds *PostgresService) GetGenrePreferences(userID string) ([]model.GenrePreference, error) {
	var prefs []model.GenrePreference
	err := ds.db.Where("user_id = ?", userID).Order("score DESC").Find(&prefs).Error
	return prefs, err
}

// ==================== LEADERBOARDS ====================

func (ds *PostgresService) GetLeaderboardSince(since *time.Time, limit int) ([]model.UserStats, error) {
	var rows []model.UserStats
	q := ds.db.Model(&model.UserStats{})
	if since != nil {
		q = q.Where("last_activity_date >= ?", *since)
	}
	err := q.Order("tensens DESC").Limit(limit).Find(&rows).Error
	return rows, err
}

func (ds *PostgresService) GetUserRank(userID string) (int, error) {
	stats, err := ds.GetUserStats(userID)
	if err != nil {
		return 0, err
	}

	var ahead int64
	err = ds.db.Model(&model.UserStats{}).Where("tensens > ?", stats.Tensens).Count(&ahead).Error
	if err != nil {
		return 0, err
	}
	return int(ahead) + 1, nil
}

// ==================== GUILDS ====================

// CreateGuildWithOwner creates the guild and its owner membership atomically.
func (ds *PostgresService) CreateGuildWithOwner(guild *model.Guild, ownerID string) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(guild).Error; err != nil {
			return err
		}
		member := model.GuildMember{
			ID:       newID(),
			GuildID:  guild.ID,
			UserID:   ownerID,
			Role:     "owner",
			JoinedAt: time.Now(),
		}
		return tx.Create(&member).Error
	})
}

func (ds *PostgresService) GetGuild(guildID string) (*model.Guild, error) {
	var guild model.Guild
	err := ds.db.Where("id = ?", guildID).First(&guild).Error
	if err != nil {
		return nil, err
	}
	return &guild, nil
}

func (ds *PostgresService) GetUserGuildMembership(userID string) (*model.GuildMember, error) {
	var member model.GuildMember
	err := ds.db.Where("user_id = ?", userID).First(&member).Error
	if err != nil {
		return nil, err
	}
	return &member, nil
}

func (ds *PostgresService) AddGuildMember(member *model.GuildMember) error {
	return ds.db.Create(member).Error
}

func (ds *PostgresService) RemoveGuildMember(guildID, userID string) error {
	return ds.db.Where("guild_id = ? AND user_id = ?", guildID, userID).Delete(&model.GuildMember{}).Error
}

func (ds *PostgresService) GetGuildMembers(guildID string) ([]model.GuildMember, error) {
	var members []model.GuildMember
	err := ds.db.Where("guild_id = ?", guildID).Order("joined_at ASC").Find(&members).Error
	return members, err
}

func (ds *PostgresService) CountGuildMembers(guildID string) (int64, error) {
	var count int64
	err := ds.db.Model(&model.GuildMember{}).Where("guild_id = ?", guildID).Count(&count).Error
	return count, err
}

// GetGuildLeaderboard ranks guilds by summed member tensens. One query; the
// database does the ranking work.
func (ds *PostgresService) GetGuildLeaderboard(limit int) ([]dto.GuildLeaderboardEntry, error) {
	var entries []dto.GuildLeaderboardEntry
	err := ds.db.Table("guild_members").
		Select("guild_members.guild_id AS guild_id, guilds.name AS name, COALESCE(SUM(user_stats.tensens), 0) AS total_tensens, COUNT(guild_members.user_id) AS member_count").
		Joins("JOIN guilds ON guilds.id = guild_members.guild_id").
		Joins("LEFT JOIN user_stats ON user_stats.user_id = guild_members.user_id").
		Group("guild_members.guild_id, guilds.name").
		Order("total_tensens DESC").
		Limit(limit).
		Scan(&entries).Error
	if err != nil {
		return nil, err
	}

	for i := range entries {
		entries[i].Rank = i + 1
	}
	return entries, nil
}

// ==================== SHOP ====================

func (ds *PostgresService) GetOrydorPacks() ([]model.OrydorPack, error) {
	var packs []model.OrydorPack
	err := ds.db.Where("is_active = ?", true).Order("price_cent ASC").Find(&packs).Error
	return packs, err
}

func (ds *PostgresService) GetOrydorPack(packID string) (*model.OrydorPack, error) {
	var pack model.OrydorPack
	err := ds.db.Where("id = ? AND is_active = ?", packID, true).First(&pack).Error
	if err != nil {
		return nil, err
	}
	return &pack, nil
}

func (ds *PostgresService) GetPurchaseByProviderRef(ref string) (*model.Purchase, error) {
	var purchase model.Purchase
	err := ds.db.Where("provider_ref = ?", ref).First(&purchase).Error
	if err != nil {
		return nil, err
	}
	return &purchase, nil
}

// ApplyPurchase persists one purchase and credits the stats row in a single
// transaction. The unique index on provider_ref makes a retried apply a
// conflict instead of a burned ref, the same contract as ApplyRewardGrant.
func (ds *PostgresService) ApplyPurchase(purchase *model.Purchase, stats *model.UserStats) error {
	return ds.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(purchase).Error; err != nil {
			return err
		}
		return tx.Save(stats).Error
	})
}
