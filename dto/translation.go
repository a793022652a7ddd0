package dto

// TranslationProgress is one tracker snapshot. Each tick supersedes the
// previous snapshot wholesale; fields are never merged across ticks.
type TranslationProgress struct {
	BookID               string `json:"book_id"`
	Language             string `json:"language"`
	TotalChapters        int    `json:"total_chapters"`
	CompletedChapters    int    `json:"completed_chapters"`
	FailedChapters       int    `json:"failed_chapters"`
	InProgressChapters   int    `json:"in_progress_chapters"`
	Percentage           int    `json:"percentage"`
	EstimatedTimeMinutes *int   `json:"estimated_time_minutes"`
	IsTranslating        bool   `json:"is_translating"`
}

type UpdateTranslationRequest struct {
	ChapterID string `json:"chapter_id" validate:"required"`
	Language  string `json:"language" validate:"required,min=2,max=8"`
	Status    string `json:"status" validate:"required,oneof=pending translating completed failed"`
	Content   string `json:"content"`
}

func (r UpdateTranslationRequest) Validate() error {
	return validate.Struct(r)
}
