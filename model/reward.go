package model

import "time"

// Achievement is the display row for an achievement. The numeric target and
// metric live in the static definition registry; these rows carry badge art
// and copy for the client.
type Achievement struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"not null"`
	Description string    `json:"description"`
	BadgeURL    string    `json:"badge_url"`
	Category    string    `json:"category"` // reading, currency, premium, tutorial
	IsActive    bool      `json:"is_active" gorm:"default:true"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type UserAchievement struct {
	ID            string    `json:"id" gorm:"primaryKey"`
	UserID        string    `json:"user_id" gorm:"index:idx_user_achievement,unique;not null"`
	AchievementID string    `json:"achievement_id" gorm:"index:idx_user_achievement,unique;not null"`
	UnlockedAt    time.Time `json:"unlocked_at"`
	CreatedAt     time.Time `json:"created_at"`

	Achievement Achievement `json:"achievement" gorm:"foreignKey:AchievementID"`
}

// RewardTable groups the entries of one wheel or chest configuration.
// Kind is one of the shared.RewardKind* constants.
type RewardTable struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	Name      string    `json:"name" gorm:"uniqueIndex;not null"`
	Kind      string    `json:"kind" gorm:"not null"`
	IsActive  bool      `json:"is_active" gorm:"default:true"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`

	Entries []RewardEntry `json:"entries" gorm:"foreignKey:TableID"`
}

// RewardEntry is one possible outcome: a relative selection weight plus a
// quantity range. Order fixes the draw walk so rolls are deterministic under
// a seeded rng.
type RewardEntry struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	TableID     string    `json:"table_id" gorm:"index;not null"`
	Order       int       `json:"order" gorm:"not null"`
	Label       string    `json:"label"`
	Currency    string    `json:"currency"` // tensens or orydors
	Weight      int       `json:"weight" gorm:"not null"`
	MinQuantity int       `json:"min_quantity" gorm:"not null"`
	MaxQuantity int       `json:"max_quantity" gorm:"not null"`
	CreatedAt   time.Time `json:"created_at"`
}

// RewardGrant records one applied roll outcome. The unique roll id is what
// makes crediting at-most-once: a retried request reuses the id and hits the
// unique index instead of crediting twice.
type RewardGrant struct {
	ID        string    `json:"id" gorm:"primaryKey"`
	RollID    string    `json:"roll_id" gorm:"uniqueIndex;not null"`
	UserID    string    `json:"user_id" gorm:"index;not null"`
	TableID   string    `json:"table_id"`
	EntryID   string    `json:"entry_id"`
	Currency  string    `json:"currency"`
	Quantity  int       `json:"quantity"`
	CreatedAt time.Time `json:"created_at"`
}

// UserChest is an unopened chest in a user's inventory.
type UserChest struct {
	ID        string     `json:"id" gorm:"primaryKey"`
	UserID    string     `json:"user_id" gorm:"index;not null"`
	TableID   string     `json:"table_id" gorm:"not null"`
	Source    string     `json:"source"` // level_up, purchase, event
	OpenedAt  *time.Time `json:"opened_at"`
	CreatedAt time.Time  `json:"created_at"`
}
