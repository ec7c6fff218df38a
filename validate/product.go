package validate

import (
	"loja_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateProduct() fiber.Handler {
	return body[model.CreateProductInput]("inputCreateProduct")
}

func UpdateProduct() fiber.Handler {
	return body[model.UpdateProductInput]("inputUpdateProduct")
}

func UpdateDigitalFile() fiber.Handler {
	return body[model.UpdateDigitalFileInput]("inputUpdateDigitalFile")
}

func CreatePromotion() fiber.Handler {
	return body[model.CreatePromotionInput]("inputCreatePromotion")
}

func UpdatePromotion() fiber.Handler {
	return body[model.UpdatePromotionInput]("inputUpdatePromotion")
}

func CreateReview() fiber.Handler {
	return body[model.CreateReviewInput]("inputCreateReview")
}

func UpdateReview() fiber.Handler {
	return body[model.UpdateReviewInput]("inputUpdateReview")
}
