package services

import (
	goContext "context"
	"encoding/json"
	"errors"
	"math"
	"sync"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/model"
	"github.com/orydia-app/orydia_api/shared"
)

// TranslationChannel carries change notifications between the writer path and
// any runtime holding an active tracker.
const TranslationChannel = "translation_updates"

type translationNotification struct {
	BookID   string `json:"book_id"`
	Language string `json:"language"`
}

// bookTracker holds the live progress state for one (book, language) pair.
// The generation counter discards refreshes that finish after a newer one
// started, so a slow fetch can never overwrite fresher counts. startedAt is
// zero until the first refresh that observes translation activity; polling a
// pair that is still pending does not count toward the pace estimate.
type bookTracker struct {
	mu         sync.Mutex
	generation uint64
	startedAt  time.Time
	snapshot   *dto.TranslationProgress
}

// commit installs a refresh result unless a newer refresh already landed.
// The pace clock starts on the first snapshot that reports translating.
func (t *bookTracker) commit(gen uint64, snapshot *dto.TranslationProgress, now time.Time) *dto.TranslationProgress {
	t.mu.Lock()
	defer t.mu.Unlock()
	if t.generation != gen {
		return t.snapshot
	}
	if snapshot.IsTranslating && t.startedAt.IsZero() {
		t.startedAt = now
	}
	t.snapshot = snapshot
	return snapshot
}

type TranslationService struct {
	context.DefaultService

	postgres *PostgresService
	redis    *RedisService

	mu       sync.Mutex
	trackers map[string]*bookTracker

	unsubscribe func()
}

const TRANSLATION_SVC = "translation_svc"

func (svc TranslationService) Id() string {
	return TRANSLATION_SVC
}

func (svc *TranslationService) Configure(ctx *context.Context) error {
	svc.trackers = make(map[string]*bookTracker)
	return svc.DefaultService.Configure(ctx)
}

func (svc *TranslationService) Start() error {
	svc.postgres = svc.Service(POSTGRES_SVC).(*PostgresService)
	svc.redis = svc.Service(REDIS_SVC).(*RedisService)

	unsub, err := svc.redis.Subscribe(goContext.Background(), TranslationChannel, svc.onNotification)
	if err != nil {
		// The tracker still works without pub/sub; progress just refreshes on
		// read instead of on write.
		log.WithField("error", err.Error()).Warn("Translation change feed unavailable")
		return nil
	}
	svc.unsubscribe = unsub
	return nil
}

func (svc *TranslationService) Shutdown() {
	if svc.unsubscribe != nil {
		svc.unsubscribe()
	}
}

func trackerKey(bookID, language string) string {
	return bookID + ":" + language
}

func (svc *TranslationService) onNotification(payload string) {
	var note translationNotification
	if err := json.Unmarshal([]byte(payload), &note); err != nil {
		log.WithField("error", err.Error()).Warn("Malformed translation notification")
		return
	}

	svc.mu.Lock()
	tracker, ok := svc.trackers[trackerKey(note.BookID, note.Language)]
	svc.mu.Unlock()
	if !ok {
		return
	}

	if _, err := svc.refresh(tracker, note.BookID, note.Language); err != nil {
		log.WithFields(log.Fields{
			"book_id":  note.BookID,
			"language": note.Language,
			"error":    err.Error(),
		}).Warn("Translation refresh failed")
	}
}

// GetProgress returns the live translation progress for a book into language.
// A request for the book's own source language returns nil: there is nothing
// to translate. The first call for a pair starts tracking it.
func (svc *TranslationService) GetProgress(bookID, language string) (*dto.TranslationProgress, error) {
	book, err := svc.postgres.GetBook(bookID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "book not found")
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load book")
	}

	if language == book.SourceLanguage {
		return nil, nil
	}

	svc.mu.Lock()
	key := trackerKey(bookID, language)
	tracker, ok := svc.trackers[key]
	if !ok {
		tracker = &bookTracker{}
		svc.trackers[key] = tracker
	}
	svc.mu.Unlock()

	snapshot, err := svc.refresh(tracker, bookID, language)
	if err != nil {
		// A failed fetch keeps the last good snapshot on screen.
		tracker.mu.Lock()
		stale := tracker.snapshot
		tracker.mu.Unlock()
		if stale != nil {
			return stale, nil
		}
		return nil, err
	}
	return snapshot, nil
}

// StopTracking drops the tracker for a pair. The next GetProgress starts a
// fresh one, which also resets the elapsed-time estimate.
func (svc *TranslationService) StopTracking(bookID, language string) {
	svc.mu.Lock()
	delete(svc.trackers, trackerKey(bookID, language))
	svc.mu.Unlock()
}

func (svc *TranslationService) refresh(tracker *bookTracker, bookID, language string) (*dto.TranslationProgress, error) {
	tracker.mu.Lock()
	tracker.generation++
	gen := tracker.generation
	startedAt := tracker.startedAt
	tracker.mu.Unlock()

	chapters, err := svc.postgres.GetChapters(bookID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load chapters")
	}

	rows, err := svc.postgres.GetChapterTranslations(bookID, language)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load translation statuses")
	}

	now := time.Now()
	snapshot := buildProgress(bookID, language, len(chapters), rows, startedAt, now)
	return tracker.commit(gen, snapshot, now), nil
}

// buildProgress aggregates per-chapter statuses into one snapshot. Pure so the
// counting and estimate rules are testable without storage.
func buildProgress(bookID, language string, totalChapters int, rows []model.ChapterTranslation, startedAt, now time.Time) *dto.TranslationProgress {
	completed, failed, inProgress := 0, 0, 0
	for _, row := range rows {
		switch row.Status {
		case shared.TranslationCompleted:
			completed++
		case shared.TranslationFailed:
			failed++
		case shared.TranslationInProgress:
			inProgress++
		}
	}

	pct := 0
	if totalChapters > 0 {
		pct = int(math.Round(float64(completed) / float64(totalChapters) * 100))
	}
	if pct < 0 {
		pct = 0
	}
	if pct > 100 {
		pct = 100
	}

	isTranslating := inProgress > 0 || (completed > 0 && completed < totalChapters)

	snapshot := &dto.TranslationProgress{
		BookID:             bookID,
		Language:           language,
		TotalChapters:      totalChapters,
		CompletedChapters:  completed,
		FailedChapters:     failed,
		InProgressChapters: inProgress,
		Percentage:         pct,
		IsTranslating:      isTranslating,
	}

	if isTranslating {
		remaining := totalChapters - completed
		var estimate int
		if startedAt.IsZero() {
			// No observation window yet, so no pace to project from.
			estimate = estimateMinutes(0, remaining, 0)
		} else {
			estimate = estimateMinutes(completed, remaining, now.Sub(startedAt))
		}
		snapshot.EstimatedTimeMinutes = &estimate
	}

	return snapshot
}

// estimateMinutes projects time remaining from the observed pace. With no
// completed chapters yet there is no pace, so it falls back to a flat minute
// per chapter.
func estimateMinutes(completed, remaining int, elapsed time.Duration) int {
	if remaining <= 0 {
		return 0
	}
	if completed <= 0 {
		return remaining
	}

	perChapter := elapsed.Minutes() / float64(completed)
	return int(math.Ceil(perChapter * float64(remaining)))
}

// UpdateChapterTranslation upserts one chapter's translation status and
// notifies any live trackers.
func (svc *TranslationService) UpdateChapterTranslation(bookID, chapterID string, req *dto.UpdateTranslationRequest) error {
	chapters, err := svc.postgres.GetChapters(bookID)
	if err != nil {
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to load chapters")
	}

	found := false
	for _, chapter := range chapters {
		if chapter.ID == chapterID {
			found = true
			break
		}
	}
	if !found {
		return shared.NewNotFoundError(nil, "chapter not found in book")
	}

	row := model.ChapterTranslation{
		ChapterID: chapterID,
		BookID:    bookID,
		Language:  req.Language,
		Status:    req.Status,
		Content:   req.Content,
	}
	if err := svc.postgres.UpsertChapterTranslation(&row); err != nil {
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to save translation status")
	}
	translationUpdatesTotal.WithLabelValues(req.Status).Inc()

	note := translationNotification{BookID: bookID, Language: req.Language}
	if err := svc.redis.Publish(goContext.Background(), TranslationChannel, note); err != nil {
		log.WithFields(log.Fields{
			"book_id": bookID,
			"error":   err.Error(),
		}).Warn("Failed to publish translation notification")
	}

	log.WithFields(log.Fields{
		"book_id":    bookID,
		"chapter_id": chapterID,
		"language":   req.Language,
		"status":     req.Status,
	}).Info("Chapter translation updated")

	return nil
}
