package handler

import (
	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// CreatePromotion cadastra uma promoção para um produto (admin).
// O desconto é percentual OU valor fixo, nunca os dois.
func CreatePromotion(c *fiber.Ctx) error {
	var input model.CreatePromotionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	if (input.DiscountPercent == nil) == (input.DiscountAmount == nil) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Informe desconto percentual ou valor fixo (apenas um)", nil)
	}
	if !input.EndDate.After(input.StartDate) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Data final deve ser depois da inicial", nil)
	}

	var product model.Product
	if err := database.DB.First(&product, input.ProductId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}
	if input.DiscountAmount != nil && *input.DiscountAmount >= product.Price {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Desconto maior ou igual ao preço do produto", nil)
	}

	promotion := model.Promotion{
		ProductId:       input.ProductId,
		Name:            input.Name,
		DiscountPercent: input.DiscountPercent,
		DiscountAmount:  input.DiscountAmount,
		StartDate:       input.StartDate,
		EndDate:         input.EndDate,
		Active:          true,
	}
	if err := database.DB.Create(&promotion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, promotion)
}

// ListPromotions lista promoções (admin)
func ListPromotions(c *fiber.Ctx) error {
	pagination := model.Pagination{}
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Parâmetros inválidos", err)
	}

	query := database.DB.Model(&model.Promotion{}).Preload("Product")
	if c.Query("active") == "true" {
		query = query.Where("active = ?", true)
	}
	if productId := c.Query("productId"); productId != "" {
		query = query.Where("product_id = ?", productId)
	}

	var total int64
	query.Count(&total)

	var promotions []model.Promotion
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("created_at DESC").Find(&promotions).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       promotions,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: total,
	})
}

// GetActivePromotion promoção vigente de um produto com o preço final (público)
func GetActivePromotion(c *fiber.Ctx) error {
	productId := c.Params("productId")

	var product model.Product
	if err := database.DB.Preload("Promotions").First(&product, productId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	promotion, finalPrice := activePromotionFor(product)
	if promotion == nil {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"promotion":  nil,
			"finalPrice": product.Price,
		})
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"promotion":  promotion,
		"finalPrice": finalPrice,
	})
}

// UpdatePromotion atualiza uma promoção (admin)
func UpdatePromotion(c *fiber.Ctx) error {
	id := c.Params("id")

	var input model.UpdatePromotionInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var promotion model.Promotion
	if err := database.DB.First(&promotion, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Promoção não encontrada", err)
	}

	if input.DiscountPercent != nil && input.DiscountAmount != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Informe desconto percentual ou valor fixo (apenas um)", nil)
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.DiscountPercent != nil {
		updates["discount_percent"] = *input.DiscountPercent
		updates["discount_amount"] = nil
	}
	if input.DiscountAmount != nil {
		updates["discount_amount"] = *input.DiscountAmount
		updates["discount_percent"] = nil
	}
	if input.StartDate != nil {
		updates["start_date"] = *input.StartDate
	}
	if input.EndDate != nil {
		updates["end_date"] = *input.EndDate
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}

	startDate := promotion.StartDate
	endDate := promotion.EndDate
	if input.StartDate != nil {
		startDate = *input.StartDate
	}
	if input.EndDate != nil {
		endDate = *input.EndDate
	}
	if !endDate.After(startDate) {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Data final deve ser depois da inicial", nil)
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&promotion).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	database.DB.First(&promotion, promotion.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, promotion)
}

// DeletePromotion remove uma promoção (admin)
func DeletePromotion(c *fiber.Ctx) error {
	id := c.Params("id")

	var promotion model.Promotion
	if err := database.DB.First(&promotion, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Promoção não encontrada", err)
	}

	if err := database.DB.Delete(&promotion).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
