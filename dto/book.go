package dto

import "time"

type BookResponse struct {
	ID             string    `json:"id"`
	Title          string    `json:"title"`
	Author         string    `json:"author"`
	Description    string    `json:"description"`
	Tags           []string  `json:"tags"`
	SourceLanguage string    `json:"source_language"`
	CoverURL       string    `json:"cover_url"`
	AudioURL       string    `json:"audio_url,omitempty"`
	IsAudiobook    bool      `json:"is_audiobook"`
	IsPremium      bool      `json:"is_premium"`
	TensensReward  int       `json:"tensens_reward"`
	CreatedAt      time.Time `json:"created_at"`
}

type BookCollectionResponse struct {
	Books []BookResponse `json:"books"`
	Total int            `json:"total"`
}

type ChapterResponse struct {
	ID     string `json:"id"`
	BookID string `json:"book_id"`
	Title  string `json:"title"`
	Order  int    `json:"order"`
}

type SearchRequest struct {
	Query string `json:"query" validate:"required,min=1,max=100"`
	Limit int    `json:"limit" validate:"omitempty,gte=1,max=100"`
}

func (r SearchRequest) Validate() error {
	return validate.Struct(r)
}

type CreateBookRequest struct {
	Title          string   `json:"title" validate:"required,max=200"`
	Author         string   `json:"author" validate:"max=100"`
	Description    string   `json:"description"`
	Tags           []string `json:"tags"`
	SourceLanguage string   `json:"source_language"`
	IsAudiobook    bool     `json:"is_audiobook"`
	IsPremium      bool     `json:"is_premium"`
	TensensReward  int      `json:"tensens_reward" validate:"gte=0"`
}

func (r CreateBookRequest) Validate() error {
	return validate.Struct(r)
}

type MediaUploadResponse struct {
	ObjectName string `json:"object_name"`
	URL        string `json:"url"`
	Size       int64  `json:"size"`
}
