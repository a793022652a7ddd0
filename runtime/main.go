package main

import (
	"github.com/alphabatem/common/context"
	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"

	"github.com/orydia-app/orydia_api/services"
)

// @title Orydia API
// @version 1.0
// @description Reading platform backend: books, currencies, achievements, rewards and guilds
// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
func main() {
	err := godotenv.Load()
	if err != nil {
		log.Warn().Err(err).Msg("No .env file loaded")
	}

	ctx, err := context.NewCtx(
		&services.PostgresService{},
		&services.RedisService{},
		&services.MinIOService{},
		&services.JWTService{},

		&services.AuthService{},
		&services.UserService{},
		&services.ContentService{},
		&services.GenreService{},
		&services.AchievementService{},
		&services.RewardService{},
		&services.TranslationService{},
		&services.GuildService{},
		&services.LeaderboardService{},
		&services.ShopService{},
		&services.MediaService{},

		&services.MonitoringService{},
		&services.HttpService{},
	)
	if err != nil {
		log.Fatal().Err(err)
		return
	}

	err = ctx.Run()
	if err != nil {
		log.Fatal().Err(err)
		return
	}
}
