package handler

import (
	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// GetMyPurchases histórico de compras de um email (área do cliente)
func GetMyPurchases(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Email é obrigatório", nil)
	}

	pagination := model.Pagination{}
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Parâmetros inválidos", err)
	}

	query := database.DB.Model(&model.PurchaseHistory{}).Where("customer_email = ?", email)

	var total int64
	query.Count(&total)

	var purchases []model.PurchaseHistory
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("purchased_at DESC").Find(&purchases).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       purchases,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: total,
	})
}

// VerifyPurchase verifica se um email comprou um produto
func VerifyPurchase(c *fiber.Ctx) error {
	email := c.Query("email")
	productId := c.Query("productId")
	if email == "" || productId == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Email e produto são obrigatórios", nil)
	}

	var count int64
	database.DB.Model(&model.PurchaseHistory{}).
		Where("customer_email = ? AND product_id = ?", email, productId).
		Count(&count)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"purchased": count > 0})
}
