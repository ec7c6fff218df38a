package handler

import (
	"fmt"
	"log"
	"time"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/helper"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/gosimple/slug"
	"github.com/jinzhu/copier"
	"gorm.io/gorm"
)

const lowStockThreshold = 5

// activePromotionFor devolve a promoção vigente do produto (se houver) e o
// preço final com o desconto aplicado
func activePromotionFor(product model.Product) (*model.Promotion, float64) {
	now := time.Now()
	for i := range product.Promotions {
		p := product.Promotions[i]
		if !p.Active || now.Before(p.StartDate) || now.After(p.EndDate) {
			continue
		}
		final := product.Price
		if p.DiscountPercent != nil {
			final = product.Price * (1 - *p.DiscountPercent/100)
		} else if p.DiscountAmount != nil {
			final = product.Price - *p.DiscountAmount
		}
		if final < 0 {
			final = 0
		}
		return &p, final
	}
	return nil, product.Price
}

type productView struct {
	model.Product
	ActivePromotion *model.Promotion `json:"activePromotion,omitempty"`
	FinalPrice      float64          `json:"finalPrice"`
}

func toProductView(product model.Product) productView {
	promo, finalPrice := activePromotionFor(product)
	return productView{Product: product, ActivePromotion: promo, FinalPrice: finalPrice}
}

// ListProducts catálogo público com busca e filtros
func ListProducts(c *fiber.Ctx) error {
	pagination := model.Pagination{}
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Parâmetros inválidos", err)
	}

	query := database.DB.Model(&model.Product{}).
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("\"order\" ASC") }).
		Preload("Promotions")

	// admin enxerga inativos com ?all=true
	if c.Query("all") != "true" {
		query = query.Where("active = ?", true)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("title ILIKE ? OR description ILIKE ?", like, like)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}
	if c.Query("featured") == "true" {
		query = query.Where("featured = ?", true)
	}
	if productType := c.Query("type"); productType != "" {
		query = query.Where("type = ?", productType)
	}

	var total int64
	query.Count(&total)

	var products []model.Product
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("created_at DESC").Find(&products).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	views := make([]productView, 0, len(products))
	for _, p := range products {
		views = append(views, toProductView(p))
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       views,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: total,
	})
}

// GetProduct detalhe público por id ou slug
func GetProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	query := database.DB.
		Preload("Images", func(db *gorm.DB) *gorm.DB { return db.Order("\"order\" ASC") }).
		Preload("Promotions").
		Preload("DigitalFiles", "active = ?", true)

	var product model.Product
	if err := query.Where("id = ? OR slug = ?", id, id).First(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, toProductView(product))
}

// CreateProduct cadastra um produto (admin)
func CreateProduct(c *fiber.Ctx) error {
	var input model.CreateProductInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	if input.SKU != nil && *input.SKU != "" {
		var count int64
		database.DB.Model(&model.Product{}).Where("sku = ?", *input.SKU).Count(&count)
		if count > 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "SKU já cadastrado", nil)
		}
	}

	var product model.Product
	if err := copier.Copy(&product, &input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	product.Slug = slug.Make(input.Title)
	if input.Stock != nil {
		product.Stock = *input.Stock
	}
	if input.Type != nil {
		product.Type = *input.Type
	}
	if input.Condition != nil {
		product.Condition = *input.Condition
	}
	if input.Featured != nil {
		product.Featured = *input.Featured
	}
	product.Active = true

	if err := database.DB.Create(&product).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if product.Stock > 0 && product.Stock <= lowStockThreshold {
		if err := helper.NotifyAdmins(database.DB, constants.NOTIFY_LOW_STOCK,
			"Estoque baixo",
			fmt.Sprintf("Produto %s cadastrado com apenas %d unidades", product.Title, product.Stock),
			model.JSONMap{"productId": product.ID, "stock": product.Stock},
		); err != nil {
			log.Printf("Falha ao notificar estoque baixo do produto %d: %v", product.ID, err)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, product)
}

// UpdateProduct atualiza um produto (admin)
func UpdateProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var input model.UpdateProductInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var product model.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	if input.SKU != nil && *input.SKU != "" {
		var count int64
		database.DB.Model(&model.Product{}).
			Where("sku = ? AND id <> ?", *input.SKU, product.ID).Count(&count)
		if count > 0 {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "SKU já cadastrado", nil)
		}
	}

	updates := map[string]interface{}{}
	if input.Title != nil {
		updates["title"] = *input.Title
		updates["slug"] = slug.Make(*input.Title)
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}
	if input.Price != nil {
		updates["price"] = *input.Price
	}
	if input.ComparePrice != nil {
		updates["compare_price"] = *input.ComparePrice
	}
	if input.Stock != nil {
		updates["stock"] = *input.Stock
	}
	if input.Category != nil {
		updates["category"] = *input.Category
	}
	if input.Tags != nil {
		updates["tags"] = input.Tags
	}
	if input.Featured != nil {
		updates["featured"] = *input.Featured
	}
	if input.Active != nil {
		updates["active"] = *input.Active
	}
	if input.SKU != nil {
		updates["sku"] = *input.SKU
	}
	if input.Weight != nil {
		updates["weight"] = *input.Weight
	}
	if input.Dimensions != nil {
		updates["dimensions"] = input.Dimensions
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&product).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if input.Stock != nil && *input.Stock > 0 && *input.Stock <= lowStockThreshold {
		if err := helper.NotifyAdmins(database.DB, constants.NOTIFY_LOW_STOCK,
			"Estoque baixo",
			fmt.Sprintf("Produto %s está com apenas %d unidades", product.Title, *input.Stock),
			model.JSONMap{"productId": product.ID, "stock": *input.Stock},
		); err != nil {
			log.Printf("Falha ao notificar estoque baixo do produto %d: %v", product.ID, err)
		}
	}

	database.DB.Preload("Images").Preload("Promotions").First(&product, product.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, product)
}

// DeleteProduct desativa o produto (soft delete, admin)
func DeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var product model.Product
	if err := database.DB.First(&product, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	if err := database.DB.Model(&product).Update("active", false).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Produto desativado"})
}

// PermanentDeleteProduct remove o produto e seus assets (admin)
func PermanentDeleteProduct(c *fiber.Ctx) error {
	id := c.Params("id")

	var product model.Product
	if err := database.DB.Preload("Images").Preload("DigitalFiles").First(&product, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PRODUCT_NOT_FOUND, err)
	}

	// limpeza no Cloudinary é best-effort
	for _, image := range product.Images {
		if err := helper.DeleteFromCloudinary(image.Url); err != nil {
			log.Printf("Falha ao remover imagem %s: %v", image.Url, err)
		}
	}
	for _, file := range product.DigitalFiles {
		if err := helper.DeleteFromCloudinary(file.FileUrl); err != nil {
			log.Printf("Falha ao remover arquivo %s: %v", file.FileUrl, err)
		}
	}

	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("product_id = ?", product.ID).Delete(&model.ProductImage{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&model.DigitalFile{}).Error; err != nil {
			return err
		}
		if err := tx.Where("product_id = ?", product.ID).Delete(&model.Promotion{}).Error; err != nil {
			return err
		}
		return tx.Delete(&product).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}
