package services

import (
	"encoding/json"
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/model"
	"github.com/orydia-app/orydia_api/shared"
)

type UserService struct {
	context.DefaultService

	postgres    *PostgresService
	achievement *AchievementService
	genre       *GenreService
}

const USER_SVC = "user_svc"

func (svc UserService) Id() string {
	return USER_SVC
}

func (svc *UserService) Start() error {
	svc.postgres = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.achievement = svc.Service(ACHIEVEMENT_SVC).(*AchievementService)
	svc.genre = svc.Service(GENRE_SVC).(*GenreService)
	return nil
}

// BuildStatsSnapshot assembles the read-only aggregate from the stats row and
// the user's unlocked achievements. Premium lapses at read time when the
// paid-until date has passed.
func (svc *UserService) BuildStatsSnapshot(userID string) (*dto.UserStatsSnapshot, error) {
	stats, err := svc.postgres.GetUserStats(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "user stats not found")
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load user stats")
	}

	unlocked, err := svc.postgres.GetUserAchievements(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load achievements")
	}

	achievementIDs := make([]string, 0, len(unlocked))
	for _, ua := range unlocked {
		achievementIDs = append(achievementIDs, ua.AchievementID)
	}

	isPremium := stats.IsPremium
	if isPremium && stats.PremiumUntil != nil && stats.PremiumUntil.Before(time.Now()) {
		isPremium = false
	}

	return &dto.UserStatsSnapshot{
		UserID:        userID,
		BooksRead:     decodeStringList(stats.BooksRead),
		TotalTensens:  stats.Tensens,
		Orydors:       stats.Orydors,
		IsPremium:     isPremium,
		TutorialsSeen: decodeStringList(stats.TutorialsSeen),
		Achievements:  achievementIDs,
		Streak:        stats.Streak,
	}, nil
}

func decodeStringList(raw json.RawMessage) []string {
	out := []string{}
	if len(raw) > 0 {
		_ = json.Unmarshal(raw, &out)
	}
	return out
}

func encodeStringList(list []string) json.RawMessage {
	data, _ := json.Marshal(list)
	return data
}

// GetProfile returns the account row plus the stats snapshot.
func (svc *UserService) GetProfile(userID string) (*dto.UserProfileResponse, error) {
	user, err := svc.postgres.GetUserByID(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "user not found")
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load user")
	}

	snapshot, err := svc.BuildStatsSnapshot(userID)
	if err != nil {
		return nil, err
	}

	return &dto.UserProfileResponse{
		ID:          user.ID,
		Username:    user.Username,
		Email:       user.Email,
		Role:        user.Role,
		IsActive:    user.IsActive,
		CreatedAt:   user.CreatedAt,
		LastLoginAt: user.LastLoginAt,
		Stats:       *snapshot,
	}, nil
}

// UpdateProfile applies the editable profile fields.
func (svc *UserService) UpdateProfile(userID string, req *dto.UpdateProfileRequest) error {
	if req.Username == "" {
		return nil
	}

	existing, err := svc.postgres.GetUserByUsername(req.Username)
	if err == nil && existing.ID != userID {
		return shared.NewConflictError(nil, "username already taken")
	}
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to check username")
	}

	if err := svc.postgres.UpdateUser(userID, map[string]interface{}{"username": req.Username}); err != nil {
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to update profile")
	}
	return nil
}

// MarkTutorialSeen records one tutorial id in the seen list. Idempotent.
func (svc *UserService) MarkTutorialSeen(userID, tutorialID string) error {
	stats, err := svc.postgres.GetUserStats(userID)
	if err != nil {
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to load user stats")
	}

	seen := decodeStringList(stats.TutorialsSeen)
	for _, id := range seen {
		if id == tutorialID {
			return nil
		}
	}

	stats.TutorialsSeen = encodeStringList(append(seen, tutorialID))
	if err := svc.postgres.UpdateUserStats(stats); err != nil {
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to save tutorial state")
	}

	snapshot, err := svc.BuildStatsSnapshot(userID)
	if err == nil {
		_, _ = svc.achievement.SweepUnlocks(userID, snapshot)
	}
	return nil
}

// advanceStreak applies the daily streak rule against the last activity date.
// Same UTC day keeps the streak, the next day extends it, any gap resets to 1.
func advanceStreak(streak int, lastActivity *time.Time, now time.Time) int {
	if lastActivity == nil {
		return 1
	}

	last := lastActivity.UTC().Truncate(24 * time.Hour)
	today := now.UTC().Truncate(24 * time.Hour)

	switch today.Sub(last) {
	case 0:
		if streak == 0 {
			return 1
		}
		return streak
	case 24 * time.Hour:
		return streak + 1
	default:
		return 1
	}
}

// CheckUsernameAvailability reports whether a username is free to take.
func (svc *UserService) CheckUsernameAvailability(username string) (bool, error) {
	_, err := svc.postgres.GetUserByUsername(username)
	if err == nil {
		return false, nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return true, nil
	}
	return false, shared.NewInternalError(svc.postgres.HandleError(err), "failed to check username")
}

// CompleteChapter records one finished chapter and advances the streak. A
// repeat completion is acknowledged without moving any counters.
func (svc *UserService) CompleteChapter(userID, chapterID string) (*dto.CompleteChapterResponse, error) {
	chapter, err := svc.postgres.GetChapter(chapterID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "chapter not found")
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load chapter")
	}

	stats, err := svc.postgres.GetUserStats(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load user stats")
	}

	chapters, err := svc.postgres.GetChapters(chapter.BookID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load chapters")
	}

	newCompletion := false
	if _, err := svc.postgres.GetChapterRead(userID, chapterID); errors.Is(err, gorm.ErrRecordNotFound) {
		read := model.ChapterRead{
			ID:          newID(),
			UserID:      userID,
			ChapterID:   chapterID,
			BookID:      chapter.BookID,
			CompletedAt: time.Now(),
		}
		switch err := svc.postgres.CreateChapterRead(&read); {
		case err == nil:
			newCompletion = true
		case errors.Is(err, gorm.ErrDuplicatedKey):
			// Lost a race with a duplicate submit; counters already moved.
		default:
			return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to record chapter")
		}
	} else if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to check chapter")
	}

	if newCompletion {
		now := time.Now()
		stats.Streak = advanceStreak(stats.Streak, stats.LastActivityDate, now)
		stats.LastActivityDate = &now
		if err := svc.postgres.UpdateUserStats(stats); err != nil {
			return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to update user stats")
		}
	}

	read, err := svc.postgres.CountChapterReads(userID, chapter.BookID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to count chapters")
	}

	return &dto.CompleteChapterResponse{
		ChapterID:     chapterID,
		BookID:        chapter.BookID,
		NewCompletion: newCompletion,
		ChaptersRead:  int(read),
		TotalChapters: len(chapters),
		Streak:        stats.Streak,
	}, nil
}

// CompleteBook is the finish-a-book flow: record the completion, credit the
// book's Tensens, advance the streak, bump genre preferences and sweep
// achievement unlocks. A repeat completion is acknowledged without paying
// again.
func (svc *UserService) CompleteBook(userID string, req *dto.CompleteBookRequest) (*dto.CompleteBookResponse, error) {
	book, err := svc.postgres.GetBook(req.BookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "book not found")
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load book")
	}

	stats, err := svc.postgres.GetUserStats(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load user stats")
	}

	genres := svc.genre.ExtractBookGenres(book)

	if _, err := svc.postgres.GetBookCompletion(userID, req.BookID); err == nil {
		return &dto.CompleteBookResponse{
			BookID:        req.BookID,
			NewCompletion: false,
			Streak:        stats.Streak,
			Genres:        genres,
		}, nil
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to check completion")
	}

	completion := model.BookCompletion{
		ID:          newID(),
		UserID:      userID,
		BookID:      req.BookID,
		TensensPaid: book.TensensReward,
		ReadTime:    req.ReadTime,
		CompletedAt: time.Now(),
	}
	if err := svc.postgres.CreateBookCompletion(&completion); err != nil {
		// A concurrent completion won the unique index; treat as repeat.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return &dto.CompleteBookResponse{
				BookID:        req.BookID,
				NewCompletion: false,
				Streak:        stats.Streak,
				Genres:        genres,
			}, nil
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to record completion")
	}

	now := time.Now()
	booksRead := decodeStringList(stats.BooksRead)
	booksRead = append(booksRead, req.BookID)

	stats.BooksRead = encodeStringList(booksRead)
	stats.BooksReadCount = len(booksRead)
	stats.Tensens += book.TensensReward
	stats.Streak = advanceStreak(stats.Streak, stats.LastActivityDate, now)
	stats.TotalReadTime += req.ReadTime
	stats.LastActivityDate = &now

	if err := svc.postgres.UpdateUserStats(stats); err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to update user stats")
	}

	if err := svc.genre.RecordPreferences(userID, genres); err != nil {
		log.WithFields(log.Fields{"user_id": userID, "error": err.Error()}).
			Warn("Failed to record genre preferences")
	}

	var newAchievements []string
	if snapshot, err := svc.BuildStatsSnapshot(userID); err == nil {
		newAchievements, _ = svc.achievement.SweepUnlocks(userID, snapshot)
	}

	bookCompletionsTotal.Inc()

	log.WithFields(log.Fields{
		"user_id": userID,
		"book_id": req.BookID,
		"tensens": book.TensensReward,
		"streak":  stats.Streak,
	}).Info("Book completed")

	return &dto.CompleteBookResponse{
		BookID:          req.BookID,
		NewCompletion:   true,
		TensensAwarded:  book.TensensReward,
		Streak:          stats.Streak,
		Genres:          genres,
		NewAchievements: newAchievements,
	}, nil
}
