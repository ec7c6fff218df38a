package handler

import (
	"crypto/rand"
	"fmt"
	"math/big"
	"time"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/helper"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

const resetCodeTTLMinutes = 15

func generateResetCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(1000000))
	if err != nil {
		return "", err
	}
	return fmt.Sprintf("%06d", n.Int64()), nil
}

// RequestPasswordReset envia o código de redefinição por email.
// Email desconhecido recebe a mesma resposta (não revela cadastro).
func RequestPasswordReset(c *fiber.Ctx) error {
	var input model.PasswordResetRequestInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	genericResponse := func() error {
		return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
			"message": "Se o email estiver cadastrado, o código foi enviado",
		})
	}

	var name string
	token := model.PasswordResetToken{Email: input.Email}

	if user, err := helper.GetUserByEmail(input.Email); err == nil && user != nil {
		name = user.Name
		token.UserId = &user.ID
	} else if customer, err := helper.GetCustomerByEmail(input.Email); err == nil && customer != nil {
		name = customer.Name
		token.CustomerId = &customer.ID
	} else {
		return genericResponse()
	}

	code, err := generateResetCode()
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	token.Code = code
	token.ExpiresAt = time.Now().Add(resetCodeTTLMinutes * time.Minute)

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		// códigos anteriores do mesmo email deixam de valer
		now := time.Now()
		if err := tx.Model(&model.PasswordResetToken{}).
			Where("email = ? AND used_at IS NULL", input.Email).
			Update("used_at", now).Error; err != nil {
			return err
		}
		return tx.Create(&token).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	utils.SendPasswordResetEmail(name, input.Email, code, resetCodeTTLMinutes)
	return genericResponse()
}

func findValidResetToken(email, code string) (*model.PasswordResetToken, error) {
	var token model.PasswordResetToken
	err := database.DB.
		Where("email = ? AND code = ? AND used_at IS NULL AND expires_at > ?", email, code, time.Now()).
		Order("created_at DESC").First(&token).Error
	if err != nil {
		return nil, err
	}
	return &token, nil
}

// VerifyPasswordReset confere se o código é válido sem consumi-lo
func VerifyPasswordReset(c *fiber.Ctx) error {
	var input model.PasswordResetVerifyInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	if _, err := findValidResetToken(input.Email, input.Code); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Código inválido ou expirado", nil)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"valid": true})
}

// ResetPassword troca a senha usando o código e o marca como usado
func ResetPassword(c *fiber.Ctx) error {
	var input model.PasswordResetInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	token, err := findValidResetToken(input.Email, input.Code)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Código inválido ou expirado", nil)
	}

	hashed, err := helper.HashPassword(input.NewPassword)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	err = database.DB.Transaction(func(tx *gorm.DB) error {
		if token.UserId != nil {
			if err := tx.Model(&model.User{}).Where("id = ?", *token.UserId).
				Update("password", hashed).Error; err != nil {
				return err
			}
		} else if token.CustomerId != nil {
			if err := tx.Model(&model.Customer{}).Where("id = ?", *token.CustomerId).
				Update("password", hashed).Error; err != nil {
				return err
			}
		}
		now := time.Now()
		return tx.Model(token).Update("used_at", now).Error
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Senha redefinida com sucesso"})
}
