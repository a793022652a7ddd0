package services

import (
	"errors"
	"time"

	"github.com/alphabatem/common/context"
	log "github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/model"
	"github.com/orydia-app/orydia_api/shared"
)

type GuildService struct {
	context.DefaultService

	postgres *PostgresService
}

const GUILD_SVC = "guild_svc"

const defaultMaxMembers = 30

func (svc GuildService) Id() string {
	return GUILD_SVC
}

func (svc *GuildService) Start() error {
	svc.postgres = svc.Service(POSTGRES_SVC).(*PostgresService)
	return nil
}

// CreateGuild creates a guild with the caller as owner. One guild per user.
func (svc *GuildService) CreateGuild(userID string, req *dto.CreateGuildRequest) (*dto.GuildResponse, error) {
	if _, err := svc.postgres.GetUserGuildMembership(userID); err == nil {
		return nil, shared.NewConflictError(nil, "already a member of a guild")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to check membership")
	}

	guild := model.Guild{
		ID:          newID(),
		Name:        req.Name,
		Description: req.Description,
		OwnerID:     userID,
		MaxMembers:  defaultMaxMembers,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := svc.postgres.CreateGuildWithOwner(&guild, userID); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, shared.NewConflictError(nil, "guild name already taken")
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to create guild")
	}

	log.WithFields(log.Fields{"guild_id": guild.ID, "owner_id": userID}).Info("Guild created")

	resp := svc.guildToResponse(&guild)
	resp.MemberCount = 1
	return &resp, nil
}

func (svc *GuildService) guildToResponse(guild *model.Guild) dto.GuildResponse {
	return dto.GuildResponse{
		ID:          guild.ID,
		Name:        guild.Name,
		Description: guild.Description,
		OwnerID:     guild.OwnerID,
		EmblemURL:   guild.EmblemURL,
		MaxMembers:  guild.MaxMembers,
		CreatedAt:   guild.CreatedAt,
	}
}

// GetGuild returns one guild with its member roster.
func (svc *GuildService) GetGuild(guildID string) (*dto.GuildDetailResponse, error) {
	guild, err := svc.postgres.GetGuild(guildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, shared.NewNotFoundError(nil, "guild not found")
		}
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load guild")
	}

	members, err := svc.postgres.GetGuildMembers(guildID)
	if err != nil {
		return nil, shared.NewInternalError(svc.postgres.HandleError(err), "failed to load members")
	}

	resp := dto.GuildDetailResponse{
		Guild:   svc.guildToResponse(guild),
		Members: make([]dto.GuildMemberResponse, 0, len(members)),
	}
	resp.Guild.MemberCount = len(members)

	for _, member := range members {
		item := dto.GuildMemberResponse{
			UserID:   member.UserID,
			Role:     member.Role,
			JoinedAt: member.JoinedAt,
		}
		if user, err := svc.postgres.GetUserByID(member.UserID); err == nil {
			item.Username = user.Username
		}
		if stats, err := svc.postgres.GetUserStats(member.UserID); err == nil {
			item.Tensens = stats.Tensens
		}
		resp.Members = append(resp.Members, item)
	}

	return &resp, nil
}

// JoinGuild adds the caller to a guild, honoring the member cap.
func (svc *GuildService) JoinGuild(userID, guildID string) error {
	guild, err := svc.postgres.GetGuild(guildID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(nil, "guild not found")
		}
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to load guild")
	}

	if _, err := svc.postgres.GetUserGuildMembership(userID); err == nil {
		return shared.NewConflictError(nil, "already a member of a guild")
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to check membership")
	}

	count, err := svc.postgres.CountGuildMembers(guildID)
	if err != nil {
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to count members")
	}
	if count >= int64(guild.MaxMembers) {
		return shared.NewConflictError(nil, "guild is full")
	}

	member := model.GuildMember{
		ID:       newID(),
		GuildID:  guildID,
		UserID:   userID,
		Role:     "member",
		JoinedAt: time.Now(),
	}
	if err := svc.postgres.AddGuildMember(&member); err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return shared.NewConflictError(nil, "already a member of this guild")
		}
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to join guild")
	}

	log.WithFields(log.Fields{"guild_id": guildID, "user_id": userID}).Info("Guild joined")
	return nil
}

// LeaveGuild removes the caller from their guild. Owners must transfer or
// disband first.
func (svc *GuildService) LeaveGuild(userID string) error {
	member, err := svc.postgres.GetUserGuildMembership(userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return shared.NewNotFoundError(nil, "not a member of any guild")
		}
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to check membership")
	}

	if member.Role == "owner" {
		return shared.NewConflictError(nil, "owner cannot leave their guild")
	}

	if err := svc.postgres.RemoveGuildMember(member.GuildID, userID); err != nil {
		return shared.NewInternalError(svc.postgres.HandleError(err), "failed to leave guild")
	}

	log.WithFields(log.Fields{"guild_id": member.GuildID, "user_id": userID}).Info("Guild left")
	return nil
}
