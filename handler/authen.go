package handler

import (
	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/helper"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// Login autentica um admin e devolve os tokens
func Login(c *fiber.Ctx) error {
	var input model.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}

	user, err := helper.GetUserByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if user == nil || !helper.CheckPasswordHash(input.Password, user.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, nil)
	}

	claim := model.TokenClaim{UserId: user.ID, Email: user.Email, Type: "admin"}
	accessToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, err := helper.GenerateRefreshToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"user": user,
		"tokens": model.TokenData{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	})
}

// Me retorna o admin autenticado
func Me(c *fiber.Ctx) error {
	claim := helper.GetClaimFromToken(c)

	var user model.User
	if err := database.DB.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Usuário não encontrado", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, user)
}

// UpdateProfile atualiza os dados do admin autenticado.
// Troca de senha exige a senha atual correta.
func UpdateProfile(c *fiber.Ctx) error {
	claim := helper.GetClaimFromToken(c)

	var input model.UpdateProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var user model.User
	if err := database.DB.First(&user, claim.UserId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Usuário não encontrado", err)
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}
	if input.Email != nil && *input.Email != user.Email {
		existing, err := helper.GetUserByEmail(*input.Email)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if existing != nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Email já está em uso", nil)
		}
		updates["email"] = *input.Email
	}

	if input.NewPassword != nil {
		if input.CurrentPassword == nil || !helper.CheckPasswordHash(*input.CurrentPassword, user.Password) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Senha atual incorreta", nil)
		}
		hashed, err := helper.HashPassword(*input.NewPassword)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		updates["password"] = hashed
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&user).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	database.DB.First(&user, user.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, user)
}
