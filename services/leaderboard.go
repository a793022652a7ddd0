package services

import (
	goContext "context"
	"errors"
	"fmt"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/shared"
)

type LeaderboardService struct {
	context.DefaultService

	postgres *PostgresService
	redis    *RedisService
}

const LEADERBOARD_SVC = "leaderboard_svc"

const (
	PeriodWeekly  = "weekly"
	PeriodMonthly = "monthly"
	PeriodAllTime = "all_time"

	leaderboardCacheTTL = 5 * time.Minute
	leaderboardSize     = 50
)

func (svc LeaderboardService) Id() string {
	return LEADERBOARD_SVC
}

func (svc *LeaderboardService) Start() error {
	svc.postgres = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redis = svc.Service(REDIS_SVC).(*RedisService)
	return nil
}

func periodSince(period string, now time.Time) (*time.Time, error) {
	switch period {
	case PeriodWeekly:
		since := now.AddDate(0, 0, -7)
		return &since, nil
	case PeriodMonthly:
		since := now.AddDate(0, -1, 0)
		return &since, nil
	case PeriodAllTime:
		return nil, nil
	default:
		return nil, shared.NewBadRequestError(nil, "unknown leaderboard period")
	}
}

// GetLeaderboard returns the top users for a period plus the caller's own
// rank. The top list is cached; the caller's rank is always computed fresh.
func (svc *LeaderboardService) GetLeaderboard(userID, period string) (*dto.LeaderboardResponse, error) {
	since, err := periodSince(period, time.Now())
	if err != nil {
		return nil, err
	}

	top, err := svc.topUsers(period, since)
	if err != nil {
		return nil, err
	}

	current := dto.LeaderboardUserResponse{UserID: userID}
	if user, err := svc.postgres.GetUserByID(userID); err == nil {
		current.Username = user.Username
	}
	if stats, err := svc.postgres.GetUserStats(userID); err == nil {
		current.Tensens = stats.Tensens
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load user stats")
	}
	if rank, err := svc.postgres.GetUserRank(userID); err == nil {
		current.Rank = rank
	}

	return &dto.LeaderboardResponse{
		Period:      period,
		CurrentUser: current,
		TopUsers:    top,
	}, nil
}

func (svc *LeaderboardService) topUsers(period string, since *time.Time) ([]dto.LeaderboardUserResponse, error) {
	ctx := goContext.Background()
	cacheKey := fmt.Sprintf("leaderboard:%s", period)

	var cached []dto.LeaderboardUserResponse
	if err := svc.redis.GetJSON(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
		return cached, nil
	}

	rows, err := svc.postgres.GetLeaderboardSince(since, leaderboardSize)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load leaderboard")
	}

	top := make([]dto.LeaderboardUserResponse, 0, len(rows))
	for i, row := range rows {
		entry := dto.LeaderboardUserResponse{
			UserID:  row.UserID,
			Tensens: row.Tensens,
			Rank:    i + 1,
		}
		if user, err := svc.postgres.GetUserByID(row.UserID); err == nil {
			entry.Username = user.Username
		}
		top = append(top, entry)
	}

	if err := svc.redis.Set(ctx, cacheKey, top, leaderboardCacheTTL); err != nil {
		log.WithFields(log.Fields{"period": period, "error": err.Error()}).
			Warn("Failed to cache leaderboard")
	}

	return top, nil
}

// GetGuildLeaderboard ranks guilds by their members' combined Tensens.
func (svc *LeaderboardService) GetGuildLeaderboard() (*dto.GuildLeaderboardResponse, error) {
	ctx := goContext.Background()
	cacheKey := "leaderboard:guilds"

	var cached []dto.GuildLeaderboardEntry
	if err := svc.redis.GetJSON(ctx, cacheKey, &cached); err == nil && len(cached) > 0 {
		return &dto.GuildLeaderboardResponse{Guilds: cached}, nil
	}

	entries, err := svc.postgres.GetGuildLeaderboard(leaderboardSize)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load guild leaderboard")
	}

	if err := svc.redis.Set(ctx, cacheKey, entries, leaderboardCacheTTL); err != nil {
		log.WithField("error", err.Error()).Warn("Failed to cache guild leaderboard")
	}

	return &dto.GuildLeaderboardResponse{Guilds: entries}, nil
}
