package validate

import (
	"loja_manager/model"

	"github.com/gofiber/fiber/v2"
)

func CreateOrder() fiber.Handler {
	return body[model.CreateOrderInput]("inputCreateOrder")
}

func UpdateOrder() fiber.Handler {
	return body[model.UpdateOrderInput]("inputUpdateOrder")
}

func CreatePayment() fiber.Handler {
	return body[model.CreatePaymentInput]("inputCreatePayment")
}
