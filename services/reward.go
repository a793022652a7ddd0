package services

import (
	goContext "context"
	"errors"
	"fmt"
	"math/rand"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/model"
	"github.com/orydia-app/orydia_api/shared"
)

type RewardService struct {
	context.DefaultService

	postgres *PostgresService
	redis    *RedisService

	mu  sync.Mutex
	rng *rand.Rand
}

const REWARD_SVC = "reward_svc"

// DailyWheelTable is the seeded wheel configuration every daily spin draws
// from.
const DailyWheelTable = "daily_wheel"

func (svc RewardService) Id() string {
	return REWARD_SVC
}

func (svc *RewardService) Start() error {
	svc.postgres = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redis = svc.Service(REDIS_SVC).(*RedisService)
	svc.rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	return nil
}

// streakQuantityMultiplier scales reward quantities before the draw. Streaks
// of 7+ days pay half again, 30+ days pay double.
func streakQuantityMultiplier(streak int) float64 {
	switch {
	case streak >= 30:
		return 2.0
	case streak >= 7:
		return 1.5
	default:
		return 1.0
	}
}

// Roll draws one outcome from a reward table. Weights are relative: an entry's
// chance is weight over the table total, walked cumulatively in entry order.
// The rng is injectable so tests can seed it. A table with no entries or an
// all-zero weight total is a configuration fault, not a user error.
func (svc *RewardService) Roll(table *model.RewardTable, rng *rand.Rand, streak int) (*dto.RewardOutcome, error) {
	if table == nil || len(table.Entries) == 0 {
		return nil, shared.NewConfigurationError(nil, fmt.Sprintf("reward table %s has no entries", tableName(table)))
	}

	total := 0
	for _, entry := range table.Entries {
		if entry.Weight < 0 {
			return nil, shared.NewConfigurationError(nil, fmt.Sprintf("reward table %s has a negative weight", table.Name))
		}
		total += entry.Weight
	}
	if total == 0 {
		return nil, shared.NewConfigurationError(nil, fmt.Sprintf("reward table %s has zero total weight", table.Name))
	}

	if total != 100 {
		log.WithFields(log.Fields{"table": table.Name, "total_weight": total}).
			Warn("Reward table weights do not sum to 100; treating as relative weights")
	}

	draw := rng.Intn(total)
	cumulative := 0
	var picked *model.RewardEntry
	for i := range table.Entries {
		cumulative += table.Entries[i].Weight
		if draw < cumulative {
			picked = &table.Entries[i]
			break
		}
	}
	if picked == nil {
		// Unreachable while total > 0; guards a future refactor.
		picked = &table.Entries[len(table.Entries)-1]
	}

	multiplier := streakQuantityMultiplier(streak)
	minQ := int(float64(picked.MinQuantity) * multiplier)
	maxQ := int(float64(picked.MaxQuantity) * multiplier)
	if maxQ < minQ {
		maxQ = minQ
	}

	quantity := minQ
	if maxQ > minQ {
		quantity = minQ + rng.Intn(maxQ-minQ+1)
	}

	return &dto.RewardOutcome{
		RollID:   newID(),
		TableID:  table.ID,
		EntryID:  picked.ID,
		Label:    picked.Label,
		Currency: picked.Currency,
		Quantity: quantity,
	}, nil
}

func tableName(table *model.RewardTable) string {
	if table == nil {
		return "<nil>"
	}
	return table.Name
}

// SpinDailyWheel performs the once-per-UTC-day wheel spin. The redis key
// claims the day before the roll so a double submit cannot spin twice; the
// claim is released if crediting fails.
func (svc *RewardService) SpinDailyWheel(userID string) (*dto.SpinResponse, error) {
	ctx := goContext.Background()
	now := time.Now().UTC()
	nextMidnight := now.Truncate(24 * time.Hour).Add(24 * time.Hour)

	key := fmt.Sprintf("spin:%s:%s", userID, now.Format("2006-01-02"))
	claimed, err := svc.redis.SetNX(ctx, key, "1", nextMidnight.Sub(now))
	if err != nil {
		return nil, shared.NewInternalError(err, "failed to check spin availability")
	}
	if !claimed {
		return nil, shared.NewConflictError(nil, "daily spin already used")
	}

	resp, err := svc.spinClaimed(userID, now, nextMidnight)
	if err != nil {
		if delErr := svc.redis.Delete(ctx, key); delErr != nil {
			log.WithFields(log.Fields{"user_id": userID, "error": delErr.Error()}).
				Warn("Failed to release daily spin claim")
		}
		return nil, err
	}
	return resp, nil
}

func (svc *RewardService) spinClaimed(userID string, now, nextMidnight time.Time) (*dto.SpinResponse, error) {
	table, err := svc.postgres.GetRewardTableByName(DailyWheelTable)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load wheel configuration")
	}

	stats, err := svc.postgres.GetUserStats(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load user stats")
	}

	svc.mu.Lock()
	outcome, err := svc.Roll(table, svc.rng, stats.Streak)
	svc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := svc.applyOutcome(userID, outcome); err != nil {
		return nil, err
	}

	updated, err := svc.postgres.GetUserStats(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to reload user stats")
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"roll_id":  outcome.RollID,
		"currency": outcome.Currency,
		"quantity": outcome.Quantity,
	}).Info("Daily wheel spun")

	rewardRollsTotal.WithLabelValues(shared.RewardKindWheel).Inc()

	return &dto.SpinResponse{
		Outcome:      *outcome,
		NextSpinAt:   nextMidnight,
		TensensTotal: updated.Tensens,
		OrydorsTotal: updated.Orydors,
	}, nil
}

// OpenChest claims and rolls one unopened chest. The opened_at claim and the
// roll_id unique index together make the open-and-credit at-most-once.
func (svc *RewardService) OpenChest(userID, chestID string) (*dto.OpenChestResponse, error) {
	chest, err := svc.postgres.GetUserChest(userID, chestID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "chest not found")
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load chest")
	}

	if chest.OpenedAt != nil {
		return nil, shared.NewConflictError(nil, "chest already opened")
	}

	table, err := svc.postgres.GetRewardTableByID(chest.TableID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load chest configuration")
	}

	stats, err := svc.postgres.GetUserStats(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load user stats")
	}

	if err := svc.postgres.MarkChestOpened(chest.ID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewConflictError(nil, "chest already opened")
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to open chest")
	}

	svc.mu.Lock()
	outcome, err := svc.Roll(table, svc.rng, stats.Streak)
	svc.mu.Unlock()
	if err != nil {
		return nil, err
	}

	if err := svc.applyOutcome(userID, outcome); err != nil {
		return nil, err
	}

	updated, err := svc.postgres.GetUserStats(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to reload user stats")
	}

	log.WithFields(log.Fields{
		"user_id":  userID,
		"chest_id": chest.ID,
		"roll_id":  outcome.RollID,
	}).Info("Chest opened")

	rewardRollsTotal.WithLabelValues(shared.RewardKindChest).Inc()

	return &dto.OpenChestResponse{
		ChestID:      chest.ID,
		Outcome:      *outcome,
		TensensTotal: updated.Tensens,
		OrydorsTotal: updated.Orydors,
	}, nil
}

// ListChests returns the user's unopened chest inventory.
func (svc *RewardService) ListChests(userID string) (*dto.ChestListResponse, error) {
	chests, err := svc.postgres.GetUnopenedChests(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load chests")
	}

	resp := dto.ChestListResponse{
		Chests: make([]dto.ChestResponse, 0, len(chests)),
		Total:  len(chests),
	}
	for _, chest := range chests {
		resp.Chests = append(resp.Chests, dto.ChestResponse{
			ID:        chest.ID,
			TableID:   chest.TableID,
			Source:    chest.Source,
			CreatedAt: chest.CreatedAt,
		})
	}
	return &resp, nil
}

// GrantChest drops a new unopened chest into the user's inventory.
func (svc *RewardService) GrantChest(userID, tableID, source string) (*model.UserChest, error) {
	chest := model.UserChest{
		ID:        newID(),
		UserID:    userID,
		TableID:   tableID,
		Source:    source,
		CreatedAt: time.Now(),
	}
	if err := svc.postgres.CreateUserChest(&chest); err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to grant chest")
	}
	return &chest, nil
}

func (svc *RewardService) applyOutcome(userID string, outcome *dto.RewardOutcome) error {
	grant := model.RewardGrant{
		ID:        newID(),
		RollID:    outcome.RollID,
		UserID:    userID,
		TableID:   outcome.TableID,
		EntryID:   outcome.EntryID,
		Currency:  outcome.Currency,
		Quantity:  outcome.Quantity,
		CreatedAt: time.Now(),
	}
	if err := svc.postgres.ApplyRewardGrant(&grant); err != nil {
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to credit reward")
	}
	return nil
}
