package dto

import "time"

type CreateGuildRequest struct {
	Name        string `json:"name" validate:"required,min=3,max=30"`
	Description string `json:"description" validate:"max=300"`
}

func (r CreateGuildRequest) Validate() error {
	return validate.Struct(r)
}

type GuildResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description"`
	OwnerID     string    `json:"owner_id"`
	EmblemURL   string    `json:"emblem_url"`
	MemberCount int       `json:"member_count"`
	MaxMembers  int       `json:"max_members"`
	CreatedAt   time.Time `json:"created_at"`
}

type GuildMemberResponse struct {
	UserID   string    `json:"user_id"`
	Username string    `json:"username"`
	Role     string    `json:"role"`
	Tensens  int       `json:"tensens"`
	JoinedAt time.Time `json:"joined_at"`
}

type GuildDetailResponse struct {
	Guild   GuildResponse         `json:"guild"`
	Members []GuildMemberResponse `json:"members"`
}

type GuildLeaderboardEntry struct {
	GuildID      string `json:"guild_id"`
	Name         string `json:"name"`
	TotalTensens int    `json:"total_tensens"`
	MemberCount  int    `json:"member_count"`
	Rank         int    `json:"rank"`
}

type GuildLeaderboardResponse struct {
	Guilds []GuildLeaderboardEntry `json:"guilds"`
}
