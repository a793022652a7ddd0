package model

import (
	"encoding/json"
	"time"
)

// UserStats is the aggregate counter row behind the stats snapshot. The reward
// and achievement logic reads it; only reading-completion and purchase flows
// write it.
type UserStats struct {
	ID               string          `json:"id" gorm:"primaryKey"`
	UserID           string          `json:"user_id" gorm:"uniqueIndex;not null"`
	BooksRead        json.RawMessage `json:"books_read" gorm:"type:text"` // JSON array of book ids
	BooksReadCount   int             `json:"books_read_count" gorm:"default:0"`
	Tensens          int             `json:"tensens" gorm:"default:0"`
	Orydors          int             `json:"orydors" gorm:"default:0"`
	IsPremium        bool            `json:"is_premium" gorm:"default:false"`
	PremiumUntil     *time.Time      `json:"premium_until"`
	TutorialsSeen    json.RawMessage `json:"tutorials_seen" gorm:"type:text"` // JSON array of tutorial ids
	Streak           int             `json:"streak" gorm:"default:0"`
	TotalReadTime    int             `json:"total_read_time" gorm:"default:0"` // minutes
	LastActivityDate *time.Time      `json:"last_activity_date"`
	CreatedAt        time.Time       `json:"created_at"`
	UpdatedAt        time.Time       `json:"updated_at"`
}

// GenrePreference is one user's affinity score for a genre label.
type GenrePreference struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	UserID    string    `json:"user_id" gorm:"index:idx_genre_pref,unique;not null"`
	Genre     string    `json:"genre" gorm:"index:idx_genre_pref,unique;not null"`
	Score     int       `json:"score" gorm:"default:0"`
	UpdatedAt time.Time `json:"updated_at"`
}

// ChapterRead records one finished chapter per user. Unique per
// (user, chapter) so progress counters stay monotonic.
type ChapterRead struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index:idx_chapter_read,unique;not null"`
	ChapterID   string    `json:"chapter_id" gorm:"index:idx_chapter_read,unique;not null"`
	BookID      string    `json:"book_id" gorm:"index;not null"`
	CompletedAt time.Time `json:"completed_at"`
}

// BookCompletion records one finished book per user, so re-completing a book
// never double-awards currency.
type BookCompletion struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	UserID      string    `json:"user_id" gorm:"index:idx_completion,unique;not null"`
	BookID      string    `json:"book_id" gorm:"index:idx_completion,unique;not null"`
	TensensPaid int       `json:"tensens_paid"`
	ReadTime    int       `json:"read_time"` // minutes
	CompletedAt time.Time `json:"completed_at"`
}
