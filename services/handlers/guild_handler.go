package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/shared"
)

type GuildHandler struct {
	guildSvc GuildServiceInterface
}

func NewGuildHandler(guildSvc GuildServiceInterface) *GuildHandler {
	return &GuildHandler{guildSvc: guildSvc}
}

// @Summary Create a guild
// @Description Create a guild with the caller as owner
// @Tags guild
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param createRequest body dto.CreateGuildRequest true "Guild details"
// @Success 201 {object} shared.Response{data=dto.GuildResponse}
// @Router /api/v1/guilds [post]
func (h *GuildHandler) CreateGuild(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CreateGuildRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.guildSvc.CreateGuild(userID, &req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusCreated, "Created", resp)
}

// @Summary Get guild details
// @Description Get one guild with its member roster
// @Tags guild
// @Accept json
// @Produce json
// @Param guildId path string true "Guild ID"
// @Success 200 {object} shared.Response{data=dto.GuildDetailResponse}
// @Router /api/v1/guilds/{guildId} [get]
func (h *GuildHandler) GetGuild(c *fiber.Ctx) error {
	guildID := c.Params("guildId")

	resp, err := h.guildSvc.GetGuild(guildID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Join a guild
// @Description Join an existing guild
// @Tags guild
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param guildId path string true "Guild ID"
// @Success 200 {object} shared.Response
// @Router /api/v1/guilds/{guildId}/join [post]
func (h *GuildHandler) JoinGuild(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	guildID := c.Params("guildId")

	if err := h.guildSvc.JoinGuild(userID, guildID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", nil)
}

// @Summary Leave guild
// @Description Leave the caller's current guild
// @Tags guild
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response
// @Router /api/v1/guilds/leave [post]
func (h *GuildHandler) LeaveGuild(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	if err := h.guildSvc.LeaveGuild(userID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", nil)
}
