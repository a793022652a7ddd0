package services

import (
	"fmt"
	"os"
	"strconv"

	"github.com/alphabatem/common/context"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/swagger"
	"github.com/rs/zerolog/log"

	docs "github.com/orydia-app/orydia_api/docs"
	"github.com/orydia-app/orydia_api/services/handlers"
	"github.com/orydia-app/orydia_api/shared"
)

type HttpService struct {
	context.DefaultService

	port   int
	server *fiber.App
}

const HTTP_SVC = "http_svc"

func (svc HttpService) Id() string {
	return HTTP_SVC
}

func (svc *HttpService) Configure(ctx *context.Context) error {
	if port := os.Getenv("HTTP_PORT"); port != "" {
		var err error
		if svc.port, err = strconv.Atoi(port); err != nil {
			return err
		}
	} else {
		svc.port = 8000
	}

	return svc.DefaultService.Configure(ctx)
}

func (svc *HttpService) Start() error {
	authSvc := svc.Service(AUTH_SVC).(*AuthService)
	userSvc := svc.Service(USER_SVC).(*UserService)
	contentSvc := svc.Service(CONTENT_SVC).(*ContentService)
	achievementSvc := svc.Service(ACHIEVEMENT_SVC).(*AchievementService)
	rewardSvc := svc.Service(REWARD_SVC).(*RewardService)
	translationSvc := svc.Service(TRANSLATION_SVC).(*TranslationService)
	guildSvc := svc.Service(GUILD_SVC).(*GuildService)
	leaderboardSvc := svc.Service(LEADERBOARD_SVC).(*LeaderboardService)
	shopSvc := svc.Service(SHOP_SVC).(*ShopService)
	mediaSvc := svc.Service(MEDIA_SVC).(*MediaService)
	monitoringSvc := svc.Service(MONITORING_SVC).(*MonitoringService)

	docs.SwaggerInfo.BasePath = ""

	app := fiber.New(fiber.Config{
		ErrorHandler: svc.handleError,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins:     "*",
		AllowHeaders:     "Origin, Content-Type, Accept, Authorization",
		AllowCredentials: false,
	}))
	app.Use(MonitoringMiddleware(monitoringSvc))

	app.Get("/ping", svc.ping)
	app.Get("/swagger/*", swagger.HandlerDefault)

	authHandler := handlers.NewAuthHandler(authSvc)
	userHandler := handlers.NewUserHandler(userSvc)
	contentHandler := handlers.NewContentHandler(contentSvc)
	rewardHandler := handlers.NewRewardHandler(rewardSvc, achievementSvc, userSvc)
	translationHandler := handlers.NewTranslationHandler(translationSvc)
	guildHandler := handlers.NewGuildHandler(guildSvc)
	leaderboardHandler := handlers.NewLeaderboardHandler(leaderboardSvc)
	shopHandler := handlers.NewShopHandler(shopSvc)
	mediaHandler := handlers.NewMediaHandler(mediaSvc)

	v1 := app.Group("/api/v1")
	v1.Get("/ping", svc.ping)

	v1.Post("/register", authHandler.Register)
	v1.Post("/login", authHandler.Login)

	v1.Get("/books", contentHandler.ListBooks)
	v1.Get("/books/search", contentHandler.SearchBooks)
	v1.Get("/books/:bookId", contentHandler.GetBook)
	v1.Get("/books/:bookId/chapters", contentHandler.GetChapters)
	v1.Get("/books/:bookId/translation", translationHandler.GetProgress)
	v1.Delete("/books/:bookId/translation", translationHandler.StopTracking)

	v1.Get("/user/username/:username/available", userHandler.CheckUsernameAvailability)
	v1.Get("/shop/catalog", shopHandler.GetCatalog)
	v1.Get("/leaderboard/guilds", leaderboardHandler.GetGuildLeaderboard)
	v1.Get("/guilds/:guildId", guildHandler.GetGuild)

	user := v1.Group("", authSvc.RequiredAuth())
	user.Get("/user/profile", userHandler.GetProfile)
	user.Put("/user/profile", userHandler.UpdateProfile)
	user.Get("/user/stats", userHandler.GetStats)
	user.Post("/user/tutorials", userHandler.MarkTutorialSeen)
	user.Post("/reading/complete", userHandler.CompleteBook)
	user.Post("/reading/chapter", userHandler.CompleteChapter)
	user.Get("/achievements", rewardHandler.ListAchievements)
	user.Get("/achievements/:achievementId/progress", rewardHandler.GetAchievementProgress)
	user.Post("/rewards/wheel/spin", rewardHandler.SpinDailyWheel)
	user.Get("/rewards/chests", rewardHandler.ListChests)
	user.Post("/rewards/chests/open", rewardHandler.OpenChest)
	user.Post("/guilds", guildHandler.CreateGuild)
	user.Post("/guilds/:guildId/join", guildHandler.JoinGuild)
	user.Post("/guilds/leave", guildHandler.LeaveGuild)
	user.Get("/leaderboard", leaderboardHandler.GetLeaderboard)
	user.Post("/shop/fulfill", shopHandler.FulfillPurchase)

	admin := v1.Group("/admin", authSvc.RequiredAuth(), authSvc.RequireRole("admin"))
	admin.Post("/books", contentHandler.CreateBook)
	admin.Put("/books/:bookId/translation", translationHandler.UpdateChapterTranslation)
	admin.Post("/books/:bookId/cover", mediaHandler.UploadBookCover)
	admin.Post("/books/:bookId/audio", mediaHandler.UploadBookAudio)
	admin.Post("/rewards/chests", rewardHandler.GrantChest)

	app.Use(func(c *fiber.Ctx) error {
		return shared.ResponseNotFound(c)
	})

	svc.server = app

	log.Info().Int("port", svc.port).Msg("HTTP server started")
	return app.Listen(fmt.Sprintf(":%v", svc.port))
}

func (svc *HttpService) Shutdown() {
	if svc.server != nil {
		_ = svc.server.Shutdown()
	}
}

// @Summary Ping
// @Description This endpoint checks the health of the service
// @Tags health
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=string}
// @Router /ping [get]
func (svc *HttpService) ping(c *fiber.Ctx) error {
	c.Set("Cache-Control", "max-age=10")
	return shared.ResponseJSON(c, fiber.StatusOK, "Success", "pong")
}

func (svc *HttpService) handleError(c *fiber.Ctx, err error) error {
	if appErr, ok := shared.GetAppError(err); ok {
		return shared.ResponseJSON(c, appErr.StatusCode, appErr.Message, appErr.Data)
	}

	if fiberErr, ok := err.(*fiber.Error); ok {
		return shared.ResponseJSON(c, fiberErr.Code, fiberErr.Message, nil)
	}

	log.Error().Err(err).Str("path", c.Path()).Msg("Unhandled request error")
	return shared.ResponseInternalError(c, err)
}
