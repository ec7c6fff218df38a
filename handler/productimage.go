package handler

import (
	"log"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/helper"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const maxImageSize = 5 * 1024 * 1024 // 5MB

var allowedImageTypes = map[string]bool{
	"image/jpeg": true,
	"image/png":  true,
	"image/webp": true,
}

// UploadProductImage sobe uma imagem para o produto (admin)
func UploadProductImage(c *fiber.Ctx) error {
	productId := c.Params("id")

	var product model.Product
	if err := database.DB.First(&product, productId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	file, err := c.FormFile("image")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Arquivo de imagem é obrigatório", err)
	}

	if file.Size > maxImageSize {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Imagem maior que 5MB", nil)
	}
	contentType := file.Header.Get("Content-Type")
	if !allowedImageTypes[contentType] {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Formato não suportado. Use JPEG, PNG ou WebP", nil)
	}

	url, err := helper.UploadToCloudinary(file, "products")
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Falha ao enviar imagem", err)
	}

	var maxOrder int
	database.DB.Model(&model.ProductImage{}).Where("product_id = ?", product.ID).
		Select("COALESCE(MAX(\"order\"), -1)").Scan(&maxOrder)

	alt := c.FormValue("alt")
	image := model.ProductImage{
		ProductId: product.ID,
		Url:       url,
		Order:     maxOrder + 1,
		Alt:       utils.StringPtr(alt),
	}
	if err := database.DB.Create(&image).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, image)
}

type reorderImagesInput struct {
	ImageIds []uint `json:"imageIds" validate:"required,min=1"`
}

// ReorderProductImages redefine a ordem das imagens pela posição no array
func ReorderProductImages(c *fiber.Ctx) error {
	productId := c.Params("id")

	var product model.Product
	if err := database.DB.First(&product, productId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	var input reorderImagesInput
	if err := c.BodyParser(&input); err != nil || len(input.ImageIds) == 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Lista de imagens inválida", err)
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		for position, imageId := range input.ImageIds {
			if err := tx.Model(&model.ProductImage{}).
				Where("id = ? AND product_id = ?", imageId, product.ID).
				Update("order", position).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var images []model.ProductImage
	database.DB.Where("product_id = ?", product.ID).Order("\"order\" ASC").Find(&images)
	return utils.SuccessResponse(c, fiber.StatusOK, images)
}

// DeleteProductImage remove uma imagem do produto (admin)
func DeleteProductImage(c *fiber.Ctx) error {
	imageId := c.Params("imageId")

	var image model.ProductImage
	if err := database.DB.First(&image, imageId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Imagem não encontrada", err)
	}

	// o registro some mesmo se a limpeza remota falhar
	if err := helper.DeleteFromCloudinary(image.Url); err != nil {
		log.Printf("Falha ao remover imagem %d do Cloudinary: %v", image.ID, err)
	}

	if err := database.DB.Delete(&image).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
