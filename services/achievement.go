package services

import (
	"math"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/model"
	"github.com/orydia-app/orydia_api/shared"
)

type AchievementService struct {
	context.DefaultService

	postgres *PostgresService
}

const ACHIEVEMENT_SVC = "achievement_svc"

// AchievementDefinition binds an achievement id to the metric and target that
// unlock it. Definitions are static; the database rows only carry display copy.
type AchievementDefinition struct {
	ID     string
	Metric string
	Target int
	Label  string
}

// achievementRegistry is ordered; progress listings follow this order.
var achievementRegistry = []AchievementDefinition{
	{ID: "first_book", Metric: shared.MetricBooksRead, Target: 1, Label: "Finish your first book"},
	{ID: "bookworm", Metric: shared.MetricBooksRead, Target: 5, Label: "Finish 5 books"},
	{ID: "librarian", Metric: shared.MetricBooksRead, Target: 25, Label: "Finish 25 books"},
	{ID: "scholar", Metric: shared.MetricBooksRead, Target: 100, Label: "Finish 100 books"},
	{ID: "pocket_money", Metric: shared.MetricTensens, Target: 100, Label: "Earn 100 Tensens"},
	{ID: "treasurer", Metric: shared.MetricTensens, Target: 1000, Label: "Earn 1000 Tensens"},
	{ID: "tensens_tycoon", Metric: shared.MetricTensens, Target: 10000, Label: "Earn 10000 Tensens"},
	{ID: "premium_member", Metric: shared.MetricPremium, Target: 1, Label: "Become a premium member"},
	{ID: "quick_learner", Metric: shared.MetricTutorial, Target: 1, Label: "Complete the tutorial"},
}

func (svc AchievementService) Id() string {
	return ACHIEVEMENT_SVC
}

func (svc *AchievementService) Start() error {
	svc.postgres = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// Definition looks up a registry entry by id. Returns nil for unknown ids.
func (svc *AchievementService) Definition(id string) *AchievementDefinition {
	for i := range achievementRegistry {
		if achievementRegistry[i].ID == id {
			return &achievementRegistry[i]
		}
	}
	return nil
}

// Definitions returns the registry in listing order.
func (svc *AchievementService) Definitions() []AchievementDefinition {
	return achievementRegistry
}

// metricValue reads the definition's metric out of the snapshot. Boolean
// metrics map to 0 or their target so progress lands on exactly 0 or 100.
func metricValue(def *AchievementDefinition, stats *dto.UserStatsSnapshot) int {
	switch def.Metric {
	case shared.MetricBooksRead:
		return len(stats.BooksRead)
	case shared.MetricTensens:
		return stats.TotalTensens
	case shared.MetricPremium:
		if stats.IsPremium {
			return def.Target
		}
		return 0
	case shared.MetricTutorial:
		if len(stats.TutorialsSeen) > 0 {
			return def.Target
		}
		return 0
	default:
		return 0
	}
}

// ComputeProgress derives the progress view for one achievement against a
// stats snapshot. Unknown ids yield nil rather than an error: the caller
// renders nothing for them. Current is capped at Target and Percentage is
// clamped to [0, 100]. Percentage is 100 exactly when the target is met;
// rounding never reports 100 early, since unlock sweeps gate on it.
func (svc *AchievementService) ComputeProgress(achievementID string, stats *dto.UserStatsSnapshot) *dto.AchievementProgress {
	def := svc.Definition(achievementID)
	if def == nil || stats == nil {
		return nil
	}

	current := metricValue(def, stats)
	if current < 0 {
		current = 0
	}
	if current > def.Target {
		current = def.Target
	}

	pct := 0
	if def.Target > 0 {
		pct = int(math.Round(float64(current) / float64(def.Target) * 100))
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}
	if pct == 100 && current < def.Target {
		pct = 99
	}

	return &dto.AchievementProgress{
		ID:         def.ID,
		Current:    current,
		Target:     def.Target,
		Percentage: pct,
		Label:      def.Label,
	}
}

// ListWithProgress joins the display rows with unlock state and derived
// progress for one user.
func (svc *AchievementService) ListWithProgress(userID string, stats *dto.UserStatsSnapshot) (*dto.AchievementListResponse, error) {
	rows, err := svc.postgres.GetAchievements()
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load achievements")
	}

	unlocked, err := svc.postgres.GetUserAchievements(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load unlocked achievements")
	}

	unlockedAt := make(map[string]time.Time, len(unlocked))
	for _, ua := range unlocked {
		unlockedAt[ua.AchievementID] = ua.UnlockedAt
	}

	resp := dto.AchievementListResponse{
		Achievements: make([]dto.AchievementResponse, 0, len(rows)),
		Total:        len(rows),
	}

	for _, row := range rows {
		item := dto.AchievementResponse{
			ID:          row.ID,
			Name:        row.Name,
			Description: row.Description,
			BadgeURL:    row.BadgeURL,
			Category:    row.Category,
			Progress:    svc.ComputeProgress(row.ID, stats),
		}
		if at, ok := unlockedAt[row.ID]; ok {
			item.Unlocked = true
			t := at
			item.UnlockedAt = &t
			resp.Unlocked++
		}
		resp.Achievements = append(resp.Achievements, item)
	}

	return &resp, nil
}

// SweepUnlocks persists any achievement whose progress reached 100 and is not
// yet unlocked. Returns the newly unlocked ids. A concurrent sweep hitting the
// unique index is treated as already-unlocked, not an error.
func (svc *AchievementService) SweepUnlocks(userID string, stats *dto.UserStatsSnapshot) ([]string, error) {
	existing, err := svc.postgres.GetUserAchievements(userID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load unlocked achievements")
	}

	has := make(map[string]bool, len(existing))
	for _, ua := range existing {
		has[ua.AchievementID] = true
	}

	var newlyUnlocked []string
	for _, def := range achievementRegistry {
		if has[def.ID] {
			continue
		}

		progress := svc.ComputeProgress(def.ID, stats)
		if progress == nil || progress.Percentage < 100 {
			continue
		}

		row := model.UserAchievement{
			ID:            newID(),
			UserID:        userID,
			AchievementID: def.ID,
			UnlockedAt:    time.Now(),
			CreatedAt:     time.Now(),
		}
		if err := svc.postgres.CreateUserAchievement(&row); err != nil {
			log.WithFields(log.Fields{
				"user_id":        userID,
				"achievement_id": def.ID,
				"error":          err.Error(),
			}).Warn("Failed to persist achievement unlock")
			continue
		}

		newlyUnlocked = append(newlyUnlocked, def.ID)
		log.WithFields(log.Fields{"user_id": userID, "achievement_id": def.ID}).Info("Achievement unlocked")
	}

	return newlyUnlocked, nil
}
