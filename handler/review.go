package handler

import (
	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/helper"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// CreateReview registra a avaliação de um produto (público).
// Um mesmo email só avalia cada produto uma vez; compra confirmada marca a
// avaliação como verificada.
func CreateReview(c *fiber.Ctx) error {
	var input model.CreateReviewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var product model.Product
	if err := database.DB.First(&product, input.ProductId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	var count int64
	database.DB.Model(&model.Review{}).
		Where("product_id = ? AND customer_email = ?", input.ProductId, input.CustomerEmail).
		Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Você já avaliou este produto", nil)
	}

	review := model.Review{
		ProductId:     input.ProductId,
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		Rating:        input.Rating,
		Comment:       input.Comment,
		Verified:      hasPurchase(input.CustomerEmail, input.ProductId),
	}
	if customer, err := helper.GetCustomerByEmail(input.CustomerEmail); err == nil && customer != nil {
		review.CustomerId = &customer.ID
	}

	if err := database.DB.Create(&review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, review)
}

// GetProductReviews avaliações de um produto com média e distribuição (público)
func GetProductReviews(c *fiber.Ctx) error {
	productId := c.Params("productId")

	pagination := model.Pagination{}
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Parâmetros inválidos", err)
	}

	query := database.DB.Model(&model.Review{}).Where("product_id = ?", productId)

	var total int64
	query.Count(&total)

	var reviews []model.Review
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var average float64
	database.DB.Model(&model.Review{}).Where("product_id = ?", productId).
		Select("COALESCE(AVG(rating), 0)").Scan(&average)

	distribution := map[int]int64{}
	for rating := 1; rating <= 5; rating++ {
		var count int64
		database.DB.Model(&model.Review{}).
			Where("product_id = ? AND rating = ?", productId, rating).Count(&count)
		distribution[rating] = count
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"reviews":       reviews,
		"total":         total,
		"averageRating": average,
		"distribution":  distribution,
	})
}

// ListReviews todas as avaliações (admin)
func ListReviews(c *fiber.Ctx) error {
	pagination := model.Pagination{}
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Parâmetros inválidos", err)
	}

	query := database.DB.Model(&model.Review{}).Preload("Product")
	if rating := c.Query("rating"); rating != "" {
		query = query.Where("rating = ?", rating)
	}

	var total int64
	query.Count(&total)

	var reviews []model.Review
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("created_at DESC").Find(&reviews).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       reviews,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: total,
	})
}

// UpdateReview modera uma avaliação (admin)
func UpdateReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var input model.UpdateReviewInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var review model.Review
	if err := database.DB.First(&review, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Avaliação não encontrada", err)
	}

	updates := map[string]interface{}{}
	if input.Rating != nil {
		updates["rating"] = *input.Rating
	}
	if input.Comment != nil {
		updates["comment"] = *input.Comment
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&review).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	database.DB.First(&review, review.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, review)
}

// DeleteReview remove uma avaliação (admin)
func DeleteReview(c *fiber.Ctx) error {
	id := c.Params("id")

	var review model.Review
	if err := database.DB.First(&review, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Avaliação não encontrada", err)
	}

	if err := database.DB.Delete(&review).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
