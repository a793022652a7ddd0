package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/shared"
)

type RewardHandler struct {
	rewardSvc      RewardServiceInterface
	achievementSvc AchievementServiceInterface
	userSvc        UserServiceInterface
}

func NewRewardHandler(rewardSvc RewardServiceInterface, achievementSvc AchievementServiceInterface, userSvc UserServiceInterface) *RewardHandler {
	return &RewardHandler{
		rewardSvc:      rewardSvc,
		achievementSvc: achievementSvc,
		userSvc:        userSvc,
	}
}

// @Summary Spin the daily wheel
// @Description Spin the once-per-day reward wheel
// @Tags reward
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.SpinResponse}
// @Router /api/v1/rewards/wheel/spin [post]
func (h *RewardHandler) SpinDailyWheel(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.rewardSvc.SpinDailyWheel(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary List chests
// @Description List the caller's unopened chests
// @Tags reward
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.ChestListResponse}
// @Router /api/v1/rewards/chests [get]
func (h *RewardHandler) ListChests(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	resp, err := h.rewardSvc.ListChests(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Open a chest
// @Description Open one unopened chest and credit its reward
// @Tags reward
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param openRequest body dto.OpenChestRequest true "Chest to open"
// @Success 200 {object} shared.Response{data=dto.OpenChestResponse}
// @Router /api/v1/rewards/chests/open [post]
func (h *RewardHandler) OpenChest(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.OpenChestRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.rewardSvc.OpenChest(userID, req.ChestID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Grant a chest
// @Description Drop an unopened chest into a user's inventory
// @Tags admin
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "Admin Bearer Token" default(Bearer <admin_token>)
// @Param grantRequest body dto.GrantChestRequest true "Chest grant"
// @Success 201 {object} shared.Response{data=dto.ChestResponse}
// @Router /api/v1/admin/rewards/chests [post]
func (h *RewardHandler) GrantChest(c *fiber.Ctx) error {
	var req dto.GrantChestRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	chest, err := h.rewardSvc.GrantChest(req.UserID, req.TableID, req.Source)
	if err != nil {
		return err
	}

	resp := dto.ChestResponse{
		ID:        chest.ID,
		TableID:   chest.TableID,
		Source:    chest.Source,
		CreatedAt: chest.CreatedAt,
	}
	return shared.ResponseJSON(c, http.StatusCreated, "Created", resp)
}

// @Summary List achievements
// @Description List all achievements with unlock state and derived progress
// @Tags achievement
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.AchievementListResponse}
// @Router /api/v1/achievements [get]
func (h *RewardHandler) ListAchievements(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	stats, err := h.userSvc.BuildStatsSnapshot(userID)
	if err != nil {
		return err
	}

	resp, err := h.achievementSvc.ListWithProgress(userID, stats)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Get achievement progress
// @Description Get derived progress for one achievement
// @Tags achievement
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param achievementId path string true "Achievement ID"
// @Success 200 {object} shared.Response{data=dto.AchievementProgress}
// @Router /api/v1/achievements/{achievementId}/progress [get]
func (h *RewardHandler) GetAchievementProgress(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)
	achievementID := c.Params("achievementId")

	stats, err := h.userSvc.BuildStatsSnapshot(userID)
	if err != nil {
		return err
	}

	progress := h.achievementSvc.ComputeProgress(achievementID, stats)
	if progress == nil {
		return shared.NewNotFoundError(nil, "achievement not found")
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", progress)
}
