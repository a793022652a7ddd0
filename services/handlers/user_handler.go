package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/shared"
)

type UserHandler struct {
	userSvc UserServiceInterface
}

func NewUserHandler(userSvc UserServiceInterface) *UserHandler {
	return &UserHandler{userSvc: userSvc}
}

// @Summary Get user profile
// @Description Get the caller's account and reading stats
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.UserProfileResponse}
// @Router /api/v1/user/profile [get]
func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	profile, err := h.userSvc.GetProfile(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", profile)
}

// @Summary Update user profile
// @Description Update the caller's editable profile fields
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param updateRequest body dto.UpdateProfileRequest true "Profile fields"
// @Success 200 {object} shared.Response{data=dto.UserProfileResponse}
// @Router /api/v1/user/profile [put]
func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.UpdateProfileRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.userSvc.UpdateProfile(userID, &req); err != nil {
		return err
	}

	profile, err := h.userSvc.GetProfile(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", profile)
}

// @Summary Get user stats
// @Description Get the caller's aggregate reading stats snapshot
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Success 200 {object} shared.Response{data=dto.UserStatsSnapshot}
// @Router /api/v1/user/stats [get]
func (h *UserHandler) GetStats(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	stats, err := h.userSvc.BuildStatsSnapshot(userID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", stats)
}

// @Summary Mark tutorial seen
// @Description Record that the caller finished one tutorial
// @Tags user
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param tutorialRequest body dto.MarkTutorialRequest true "Tutorial id"
// @Success 200 {object} shared.Response
// @Router /api/v1/user/tutorials [post]
func (h *UserHandler) MarkTutorialSeen(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.MarkTutorialRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	if err := h.userSvc.MarkTutorialSeen(userID, req.TutorialID); err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", nil)
}

// @Summary Check username availability
// @Description Report whether a username is free to register
// @Tags user
// @Accept json
// @Produce json
// @Param username path string true "Username"
// @Success 200 {object} shared.Response{data=dto.UsernameAvailabilityResponse}
// @Router /api/v1/user/username/{username}/available [get]
func (h *UserHandler) CheckUsernameAvailability(c *fiber.Ctx) error {
	username := c.Params("username")

	available, err := h.userSvc.CheckUsernameAvailability(username)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", dto.UsernameAvailabilityResponse{
		Username:  username,
		Available: available,
	})
}

// @Summary Complete a chapter
// @Description Record a finished chapter and advance the streak
// @Tags reading
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param completeRequest body dto.CompleteChapterRequest true "Completed chapter"
// @Success 200 {object} shared.Response{data=dto.CompleteChapterResponse}
// @Router /api/v1/reading/chapter [post]
func (h *UserHandler) CompleteChapter(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CompleteChapterRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.userSvc.CompleteChapter(userID, req.ChapterID)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Complete a book
// @Description Record a finished book, credit Tensens and advance the streak
// @Tags reading
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param completeRequest body dto.CompleteBookRequest true "Completed book"
// @Success 200 {object} shared.Response{data=dto.CompleteBookResponse}
// @Router /api/v1/reading/complete [post]
func (h *UserHandler) CompleteBook(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.CompleteBookRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.userSvc.CompleteBook(userID, &req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
