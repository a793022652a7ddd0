package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/orydia-app/orydia_api/shared"
)

type LeaderboardHandler struct {
	leaderboardSvc LeaderboardServiceInterface
}

func NewLeaderboardHandler(leaderboardSvc LeaderboardServiceInterface) *LeaderboardHandler {
	return &LeaderboardHandler{leaderboardSvc: leaderboardSvc}
}

// @Summary Get leaderboard
// @Description Get the top users for a period plus the caller's rank
// @Tags leaderboard
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param period query string false "weekly, monthly or all_time" default(all_time)
// @Success 200 {object} shared.Response{data=dto.LeaderboardResponse}
// @Router /api/v1/leaderboard [get]
func (h *LeaderboardHandler) GetLeaderboard(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	period := c.Query("period", "all_time")

	resp, err := h.leaderboardSvc.GetLeaderboard(userID, period)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get guild leaderboard
// @Description Rank guilds by their members' combined Tensens
// @Tags leaderboard
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.GuildLeaderboardResponse}
// @Router /api/v1/leaderboard/guilds [get]
func (h *LeaderboardHandler) GetGuildLeaderboard(c *fiber.Ctx) error {
	resp, err := h.leaderboardSvc.GetGuildLeaderboard()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
