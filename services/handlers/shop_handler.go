package handlers

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/orydia-app/orydia_api/dto"
	"github.com/orydia-app/orydia_api/shared"
)

type ShopHandler struct {
	shopSvc ShopServiceInterface
}

func NewShopHandler(shopSvc ShopServiceInterface) *ShopHandler {
	return &ShopHandler{shopSvc: shopSvc}
}

// @Summary Get shop catalog
// @Description List the purchasable Orydor packs
// @Tags shop
// @Accept json
// @Produce json
// @Success 200 {object} shared.Response{data=dto.ShopCatalogResponse}
// @Router /api/v1/shop/catalog [get]
func (h *ShopHandler) GetCatalog(c *fiber.Ctx) error {
	resp, err := h.shopSvc.GetCatalog()
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}

// @Summary Fulfill a purchase
// @Description Ingest one completed payment-provider transaction
// @Tags shop
// @Accept json
// @Produce json
// @Security Bearer
// @Param Authorization header string true "User Bearer Token" default(Bearer <user_token>)
// @Param fulfillRequest body dto.FulfillPurchaseRequest true "Completed transaction"
// @Success 200 {object} shared.Response{data=dto.FulfillPurchaseResponse}
// @Router /api/v1/shop/fulfill [post]
func (h *ShopHandler) FulfillPurchase(c *fiber.Ctx) error {
	userID := c.Locals(shared.UserID).(string)

	var req dto.FulfillPurchaseRequest
	if err := c.BodyParser(&req); err != nil {
		return shared.NewBadRequestError(err, "Invalid request")
	}

	if err := req.Validate(); err != nil {
		validationResp := dto.CreateValidationErrorResponse(err)
		return c.Status(fiber.StatusBadRequest).JSON(validationResp)
	}

	resp, err := h.shopSvc.FulfillPurchase(userID, &req)
	if err != nil {
		return err
	}

	return shared.ResponseJSON(c, http.StatusOK, "Success", resp)
}
