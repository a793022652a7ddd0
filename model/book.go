package model

import (
	"encoding/json"
	"time"
)

type Book struct {
	ID             string          `json:"id" gorm:"primaryKey"`
	Title          string          `json:"title" gorm:"not null"`
	Author         string          `json:"author"`
	Description    string          `json:"description" gorm:"type:text"`
	Tags           json.RawMessage `json:"tags" gorm:"type:text"` // JSON array of free-text tags
	SourceLanguage string          `json:"source_language" gorm:"default:en"`
	CoverURL       string          `json:"cover_url"`
	AudioURL       string          `json:"audio_url"`
	IsAudiobook    bool            `json:"is_audiobook" gorm:"default:false"`
	IsPremium      bool            `json:"is_premium" gorm:"default:false"`
	TensensReward  int             `json:"tensens_reward" gorm:"default:50"`
	IsActive       bool            `json:"is_active" gorm:"default:true"`
	CreatedAt      time.Time       `json:"created_at"`
	UpdatedAt      time.Time       `json:"updated_at"`
}

// TagList decodes the stored tags column. A missing or malformed column
// decodes to an empty list.
func (b *Book) TagList() []string {
	var tags []string
	if len(b.Tags) > 0 {
		_ = json.Unmarshal(b.Tags, &tags)
	}
	return tags
}

type Chapter struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	BookID    string    `json:"book_id" gorm:"index;not null"`
	Title     string    `json:"title"`
	Order     int       `json:"order" gorm:"not null"`
	Content   string    `json:"content" gorm:"type:text"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Book Book `json:"-" gorm:"foreignKey:BookID"`
}

// ChapterTranslation is the per-chapter, per-language translation status row
// the progress tracker aggregates. Status is one of the shared.Translation*
// constants.
type ChapterTranslation struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	ChapterID string    `json:"chapter_id" gorm:"index:idx_chapter_lang,unique;not null"`
	BookID    string    `json:"book_id" gorm:"index;not null"`
	Language  string    `json:"language" gorm:"index:idx_chapter_lang,unique;not null"`
	Status    string    `json:"status" gorm:"default:pending"`
	Content   string    `json:"content" gorm:"type:text"`
	UpdatedAt time.Time `json:"updated_at"`
	CreatedAt time.Time `json:"created_at"`
}
