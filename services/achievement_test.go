package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orydia-app/orydia_api/dto"
)

func snapshotWith(booksRead int, tensens int, premium bool, tutorials int) *dto.UserStatsSnapshot {
	books := make([]string, booksRead)
	for i := range books {
		books[i] = "book"
	}
	seen := make([]string, tutorials)
	for i := range seen {
		seen[i] = "tutorial"
	}
	return &dto.UserStatsSnapshot{
		UserID:        "user-1",
		BooksRead:     books,
		TotalTensens:  tensens,
		IsPremium:     premium,
		TutorialsSeen: seen,
	}
}

func TestComputeProgress_UnknownID(t *testing.T) {
	svc := &AchievementService{}

	progress := svc.ComputeProgress("does_not_exist", snapshotWith(3, 0, false, 0))
	assert.Nil(t, progress)
}

func TestComputeProgress_NilStats(t *testing.T) {
	svc := &AchievementService{}

	progress := svc.ComputeProgress("first_book", nil)
	assert.Nil(t, progress)
}

func TestComputeProgress_Clamping(t *testing.T) {
	svc := &AchievementService{}

	// 200 books against a target of 100 stays capped.
	progress := svc.ComputeProgress("scholar", snapshotWith(200, 0, false, 0))
	require.NotNil(t, progress)
	assert.Equal(t, 100, progress.Current)
	assert.Equal(t, 100, progress.Target)
	assert.Equal(t, 100, progress.Percentage)
}

func TestComputeProgress_Rounding(t *testing.T) {
	svc := &AchievementService{}

	// 1 of 25 books is 4%.
	progress := svc.ComputeProgress("librarian", snapshotWith(1, 0, false, 0))
	require.NotNil(t, progress)
	assert.Equal(t, 4, progress.Percentage)

	// 12 of 25 is 48%.
	progress = svc.ComputeProgress("librarian", snapshotWith(12, 0, false, 0))
	require.NotNil(t, progress)
	assert.Equal(t, 48, progress.Percentage)
}

func TestComputeProgress_HundredExactlyAtTarget(t *testing.T) {
	svc := &AchievementService{}

	progress := svc.ComputeProgress("bookworm", snapshotWith(4, 0, false, 0))
	require.NotNil(t, progress)
	assert.Less(t, progress.Percentage, 100)

	progress = svc.ComputeProgress("bookworm", snapshotWith(5, 0, false, 0))
	require.NotNil(t, progress)
	assert.Equal(t, 100, progress.Percentage)
}

func TestComputeProgress_NearTargetNeverRoundsToHundred(t *testing.T) {
	svc := &AchievementService{}

	// 995 of 1000 would round 99.5 up; it must stay below 100 or the sweep
	// would unlock the achievement early.
	progress := svc.ComputeProgress("treasurer", snapshotWith(0, 995, false, 0))
	require.NotNil(t, progress)
	assert.Equal(t, 99, progress.Percentage)

	progress = svc.ComputeProgress("treasurer", snapshotWith(0, 999, false, 0))
	require.NotNil(t, progress)
	assert.Equal(t, 99, progress.Percentage)

	progress = svc.ComputeProgress("treasurer", snapshotWith(0, 1000, false, 0))
	require.NotNil(t, progress)
	assert.Equal(t, 100, progress.Percentage)
}

func TestComputeProgress_BooleanMetrics(t *testing.T) {
	svc := &AchievementService{}

	for _, tc := range []struct {
		name     string
		id       string
		snapshot *dto.UserStatsSnapshot
		want     int
	}{
		{"premium off", "premium_member", snapshotWith(0, 0, false, 0), 0},
		{"premium on", "premium_member", snapshotWith(0, 0, true, 0), 100},
		{"tutorial unseen", "quick_learner", snapshotWith(0, 0, false, 0), 0},
		{"tutorial seen", "quick_learner", snapshotWith(0, 0, false, 1), 100},
	} {
		t.Run(tc.name, func(t *testing.T) {
			progress := svc.ComputeProgress(tc.id, tc.snapshot)
			require.NotNil(t, progress)
			assert.Equal(t, tc.want, progress.Percentage)
		})
	}
}

func TestComputeProgress_Idempotent(t *testing.T) {
	svc := &AchievementService{}
	snapshot := snapshotWith(3, 450, true, 2)

	first := svc.ComputeProgress("treasurer", snapshot)
	second := svc.ComputeProgress("treasurer", snapshot)

	require.NotNil(t, first)
	assert.Equal(t, first, second)
}

func TestComputeProgress_TensensMetric(t *testing.T) {
	svc := &AchievementService{}

	progress := svc.ComputeProgress("pocket_money", snapshotWith(0, 50, false, 0))
	require.NotNil(t, progress)
	assert.Equal(t, 50, progress.Current)
	assert.Equal(t, 50, progress.Percentage)
}

func TestDefinitionRegistryIDsAreUnique(t *testing.T) {
	svc := &AchievementService{}

	seen := map[string]bool{}
	for _, def := range svc.Definitions() {
		assert.False(t, seen[def.ID], "duplicate achievement id %s", def.ID)
		assert.Greater(t, def.Target, 0)
		seen[def.ID] = true
	}
}
