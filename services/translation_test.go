package services

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/orydia-app/orydia_api/model"
	"github.com/orydia-app/orydia_api/shared"
)

func translationRows(completed, failed, inProgress int) []model.ChapterTranslation {
	rows := make([]model.ChapterTranslation, 0, completed+failed+inProgress)
	for i := 0; i < completed; i++ {
		rows = append(rows, model.ChapterTranslation{Status: shared.TranslationCompleted})
	}
	for i := 0; i < failed; i++ {
		rows = append(rows, model.ChapterTranslation{Status: shared.TranslationFailed})
	}
	for i := 0; i < inProgress; i++ {
		rows = append(rows, model.ChapterTranslation{Status: shared.TranslationInProgress})
	}
	return rows
}

func TestBuildProgress_AllCompleted(t *testing.T) {
	now := time.Now()
	snapshot := buildProgress("book-1", "fr", 10, translationRows(10, 0, 0), now.Add(-time.Hour), now)

	assert.Equal(t, 10, snapshot.CompletedChapters)
	assert.Equal(t, 100, snapshot.Percentage)
	assert.False(t, snapshot.IsTranslating)
	assert.Nil(t, snapshot.EstimatedTimeMinutes)
}

func TestBuildProgress_NoChapters(t *testing.T) {
	now := time.Now()
	snapshot := buildProgress("book-1", "fr", 0, nil, now, now)

	assert.Equal(t, 0, snapshot.Percentage)
	assert.False(t, snapshot.IsTranslating)
}

func TestBuildProgress_PartiallyCompleted(t *testing.T) {
	now := time.Now()
	snapshot := buildProgress("book-1", "fr", 10, translationRows(4, 1, 0), now.Add(-20*time.Minute), now)

	assert.Equal(t, 4, snapshot.CompletedChapters)
	assert.Equal(t, 1, snapshot.FailedChapters)
	assert.Equal(t, 40, snapshot.Percentage)
	assert.True(t, snapshot.IsTranslating)
	require.NotNil(t, snapshot.EstimatedTimeMinutes)

	// 20 minutes for 4 chapters is 5 min each; 6 remain.
	assert.Equal(t, 30, *snapshot.EstimatedTimeMinutes)
}

func TestBuildProgress_InProgressOnly(t *testing.T) {
	now := time.Now()
	snapshot := buildProgress("book-1", "fr", 10, translationRows(0, 0, 3), now, now)

	assert.Equal(t, 3, snapshot.InProgressChapters)
	assert.Equal(t, 0, snapshot.Percentage)
	assert.True(t, snapshot.IsTranslating)
	require.NotNil(t, snapshot.EstimatedTimeMinutes)

	// No completed chapters yet: flat minute per remaining chapter.
	assert.Equal(t, 10, *snapshot.EstimatedTimeMinutes)
}

func TestBuildProgress_PercentageRounds(t *testing.T) {
	now := time.Now()

	// 1 of 3 rounds to 33, 2 of 3 rounds to 67.
	snapshot := buildProgress("book-1", "fr", 3, translationRows(1, 0, 0), now.Add(-time.Minute), now)
	assert.Equal(t, 33, snapshot.Percentage)

	snapshot = buildProgress("book-1", "fr", 3, translationRows(2, 0, 0), now.Add(-time.Minute), now)
	assert.Equal(t, 67, snapshot.Percentage)
}

func TestBuildProgress_PendingRowsDoNotCount(t *testing.T) {
	now := time.Now()
	rows := []model.ChapterTranslation{
		{Status: shared.TranslationPending},
		{Status: shared.TranslationPending},
	}
	snapshot := buildProgress("book-1", "fr", 5, rows, now, now)

	assert.Equal(t, 0, snapshot.CompletedChapters)
	assert.Equal(t, 0, snapshot.InProgressChapters)
	assert.False(t, snapshot.IsTranslating)
}

func TestEstimateMinutes(t *testing.T) {
	assert.Equal(t, 0, estimateMinutes(5, 0, time.Hour))
	assert.Equal(t, 4, estimateMinutes(0, 4, time.Hour))

	// 30 minutes for 3 chapters, 7 remaining: ceil(10 * 7) = 70.
	assert.Equal(t, 70, estimateMinutes(3, 7, 30*time.Minute))

	// Fractional pace rounds up.
	assert.Equal(t, 8, estimateMinutes(4, 3, 10*time.Minute))
}

func TestBuildProgress_NoPaceBeforeStartObserved(t *testing.T) {
	// Completions already visible on the very first tick carry no observed
	// pace; fall back to the flat estimate instead of projecting from a zero
	// elapsed window.
	snapshot := buildProgress("book-1", "fr", 10, translationRows(4, 0, 1), time.Time{}, time.Now())

	assert.True(t, snapshot.IsTranslating)
	require.NotNil(t, snapshot.EstimatedTimeMinutes)
	assert.Equal(t, 6, *snapshot.EstimatedTimeMinutes)
}

func TestTrackerCommit_PaceClockStartsWithTranslation(t *testing.T) {
	tracker := &bookTracker{}
	now := time.Now()

	tracker.mu.Lock()
	tracker.generation++
	gen := tracker.generation
	tracker.mu.Unlock()

	idle := buildProgress("book-1", "fr", 5, nil, tracker.startedAt, now)
	tracker.commit(gen, idle, now)
	assert.True(t, tracker.startedAt.IsZero())

	// An hour of polling a still-pending job later, translation begins. That
	// idle hour must not count as elapsed pace.
	later := now.Add(time.Hour)
	tracker.mu.Lock()
	tracker.generation++
	gen = tracker.generation
	tracker.mu.Unlock()

	active := buildProgress("book-1", "fr", 5, translationRows(0, 0, 1), tracker.startedAt, later)
	tracker.commit(gen, active, later)
	assert.Equal(t, later, tracker.startedAt)

	// Already running: the clock does not restart.
	tracker.commit(gen, active, later.Add(time.Hour))
	assert.Equal(t, later, tracker.startedAt)
}

func TestTrackerCommit_GenerationGuard(t *testing.T) {
	tracker := &bookTracker{startedAt: time.Now()}
	now := time.Now()

	tracker.mu.Lock()
	tracker.generation = 6
	tracker.mu.Unlock()

	fresh := buildProgress("book-1", "fr", 2, translationRows(2, 0, 0), tracker.startedAt, now)
	got := tracker.commit(6, fresh, now)
	assert.Equal(t, fresh, got)

	// A refresh that started at generation 5 must not overwrite the snapshot
	// written by generation 6.
	stale := buildProgress("book-1", "fr", 2, translationRows(1, 0, 0), tracker.startedAt, now)
	got = tracker.commit(5, stale, now)
	assert.Equal(t, fresh, got)
	assert.Equal(t, fresh, tracker.snapshot)
}
