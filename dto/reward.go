package dto

import "time"

// AchievementProgress is the derived, ephemeral progress view. Recomputed on
// every request from the stats snapshot; never persisted.
type AchievementProgress struct {
	ID         string `json:"id"`
	Current    int    `json:"current"`
	Target     int    `json:"target"`
	Percentage int    `json:"percentage"`
	Label      string `json:"label"`
}

type AchievementResponse struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Description string     `json:"description"`
	BadgeURL    string     `json:"badge_url"`
	Category    string     `json:"category"`
	Unlocked    bool       `json:"unlocked"`
	UnlockedAt  *time.Time `json:"unlocked_at,omitempty"`

	Progress *AchievementProgress `json:"progress,omitempty"`
}

type AchievementListResponse struct {
	Achievements []AchievementResponse `json:"achievements"`
	Unlocked     int                   `json:"unlocked"`
	Total        int                   `json:"total"`
}

// RewardOutcome is one resolved roll: immutable once produced, persisted by
// the caller exactly once under RollID.
type RewardOutcome struct {
	RollID   string `json:"roll_id"`
	TableID  string `json:"table_id"`
	EntryID  string `json:"entry_id"`
	Label    string `json:"label"`
	Currency string `json:"currency"`
	Quantity int    `json:"quantity"`
}

type SpinResponse struct {
	Outcome      RewardOutcome `json:"outcome"`
	NextSpinAt   time.Time     `json:"next_spin_at"`
	TensensTotal int           `json:"tensens_total"`
	OrydorsTotal int           `json:"orydors_total"`
}

type OpenChestRequest struct {
	ChestID string `json:"chest_id" validate:"required"`
}

func (r OpenChestRequest) Validate() error {
	return validate.Struct(r)
}

type OpenChestResponse struct {
	ChestID      string        `json:"chest_id"`
	Outcome      RewardOutcome `json:"outcome"`
	TensensTotal int           `json:"tensens_total"`
	OrydorsTotal int           `json:"orydors_total"`
}

type GrantChestRequest struct {
	UserID  string `json:"user_id" validate:"required"`
	TableID string `json:"table_id" validate:"required"`
	Source  string `json:"source" validate:"required,oneof=level_up purchase event"`
}

func (r GrantChestRequest) Validate() error {
	return validate.Struct(r)
}

type ChestResponse struct {
	ID        string    `json:"id"`
	TableID   string    `json:"table_id"`
	Source    string    `json:"source"`
	CreatedAt time.Time `json:"created_at"`
}

type ChestListResponse struct {
	Chests []ChestResponse `json:"chests"`
	Total  int             `json:"total"`
}
