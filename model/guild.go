package model

import "time"

type Guild struct {
	ID          string    `json:"id" gorm:"primaryKey"`
	Name        string    `json:"name" gorm:"uniqueIndex;not null"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id" gorm:"not null"`
	EmblemURL   string    `json:"emblem_url"`
	MaxMembers  int       `json:"max_members" gorm:"default:30"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

type GuildMember struct {
	ID       string    `json:"id" gorm:"primaryKey"`
	GuildID  string    `json:"guild_id" gorm:"index:idx_guild_member,unique;not null"`
	UserID   string    `json:"user_id" gorm:"index:idx_guild_member,unique;not null"`
	Role     string    `json:"role" gorm:"default:member"` // owner, officer, member
	JoinedAt time.Time `json:"joined_at"`

	Guild Guild `json:"-" gorm:"foreignKey:GuildID"`
}
