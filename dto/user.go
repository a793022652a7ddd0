package dto

import "time"

// UserStatsSnapshot is the read-only aggregate the reward and achievement
// logic consumes. It is rebuilt from storage on each request, never mutated
// by its consumers.
type UserStatsSnapshot struct {
	UserID        string   `json:"user_id"`
	BooksRead     []string `json:"books_read"`
	TotalTensens  int      `json:"total_tensens"`
	Orydors       int      `json:"orydors"`
	IsPremium     bool     `json:"is_premium"`
	TutorialsSeen []string `json:"tutorials_seen"`
	Achievements  []string `json:"achievements"`
	Streak        int      `json:"streak"`
}

type UserProfileResponse struct {
	ID          string     `json:"id"`
	Username    string     `json:"username"`
	Email       string     `json:"email"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	CreatedAt   time.Time  `json:"created_at"`
	LastLoginAt *time.Time `json:"last_login_at"`

	Stats UserStatsSnapshot `json:"stats"`
}

type UpdateProfileRequest struct {
	Username string `json:"username" validate:"omitempty,min=3,max=20,alphanum"`
}

func (r UpdateProfileRequest) Validate() error {
	return validate.Struct(r)
}

type MarkTutorialRequest struct {
	TutorialID string `json:"tutorial_id" validate:"required"`
}

func (r MarkTutorialRequest) Validate() error {
	return validate.Struct(r)
}

type CompleteBookRequest struct {
	BookID   string `json:"book_id" validate:"required"`
	ReadTime int    `json:"read_time" validate:"gte=0"` // minutes
}

func (r CompleteBookRequest) Validate() error {
	return validate.Struct(r)
}

type CompleteChapterRequest struct {
	ChapterID string `json:"chapter_id" validate:"required"`
}

func (r CompleteChapterRequest) Validate() error {
	return validate.Struct(r)
}

type CompleteChapterResponse struct {
	ChapterID     string `json:"chapter_id"`
	BookID        string `json:"book_id"`
	NewCompletion bool   `json:"new_completion"`
	ChaptersRead  int    `json:"chapters_read"`
	TotalChapters int    `json:"total_chapters"`
	Streak        int    `json:"streak"`
}

type UsernameAvailabilityResponse struct {
	Username  string `json:"username"`
	Available bool   `json:"available"`
}

type CompleteBookResponse struct {
	BookID          string   `json:"book_id"`
	NewCompletion   bool     `json:"new_completion"`
	TensensAwarded  int      `json:"tensens_awarded"`
	Streak          int      `json:"streak"`
	Genres          []string `json:"genres"`
	NewAchievements []string `json:"new_achievements"`
}

type LeaderboardUserResponse struct {
	UserID   string `json:"user_id"`
	Username string `json:"username"`
	Tensens  int    `json:"tensens"`
	Rank     int    `json:"rank"`
}

type LeaderboardResponse struct {
	Period      string                    `json:"period"`
	CurrentUser LeaderboardUserResponse   `json:"current_user"`
	TopUsers    []LeaderboardUserResponse `json:"top_users"`
}
