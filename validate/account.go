package validate

import (
	"loja_manager/model"

	"github.com/gofiber/fiber/v2"
)

func Login() fiber.Handler {
	return body[model.LoginInput]("inputLogin")
}

func UpdateProfile() fiber.Handler {
	return body[model.UpdateProfileInput]("inputUpdateProfile")
}

func RegisterCustomer() fiber.Handler {
	return body[model.RegisterCustomerInput]("inputRegisterCustomer")
}

func UpdateCustomerProfile() fiber.Handler {
	return body[model.UpdateCustomerProfileInput]("inputUpdateCustomerProfile")
}

func PasswordResetRequest() fiber.Handler {
	return body[model.PasswordResetRequestInput]("inputPasswordResetRequest")
}

func PasswordResetVerify() fiber.Handler {
	return body[model.PasswordResetVerifyInput]("inputPasswordResetVerify")
}

func PasswordReset() fiber.Handler {
	return body[model.PasswordResetInput]("inputPasswordReset")
}

func CreateSalesGoal() fiber.Handler {
	return body[model.CreateSalesGoalInput]("inputCreateSalesGoal")
}

func UpdateSalesGoal() fiber.Handler {
	return body[model.UpdateSalesGoalInput]("inputUpdateSalesGoal")
}
