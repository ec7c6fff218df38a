package middleware

import (
	"errors"
	"os"
	"strings"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/helper"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

func tokenFromRequest(c *fiber.Ctx) string {
	token := c.Cookies("access_token")
	if token == "" {
		auth := c.Get("Authorization")
		if strings.HasPrefix(auth, "Bearer ") {
			token = strings.TrimPrefix(auth, "Bearer ")
		}
	}
	return token
}

// Protected exige token de admin válido
func Protected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Token não fornecido", errors.New("no token"))
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido", err)
		}

		c.Locals("user", jwtToken)

		claim := helper.GetClaimFromToken(c)
		if claim.UserId == 0 || (claim.Type != "" && claim.Type != "admin") {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Token não permitido para esta rota", nil)
		}

		// usuário precisa continuar existindo
		var user model.User
		if err := database.DB.First(&user, claim.UserId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Usuário não encontrado", err)
		}
		if user.Role != constants.ROLE_ADMIN {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Acesso negado", nil)
		}

		c.Locals("userId", user.ID)
		return c.Next()
	}
}

// CustomerProtected exige token de cliente válido
func CustomerProtected() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Token não fornecido", errors.New("no token"))
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Token inválido", err)
		}

		c.Locals("user", jwtToken)

		claim := helper.GetClaimFromToken(c)
		if claim.CustomerId == 0 || (claim.Type != "" && claim.Type != "customer") {
			return utils.ErrorResponse(c, fiber.StatusForbidden, "Token não permitido para esta rota", nil)
		}

		var customer model.Customer
		if err := database.DB.First(&customer, claim.CustomerId).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusUnauthorized, "Cliente não encontrado", err)
		}

		c.Locals("customerId", customer.ID)
		c.Locals("customer", &customer)
		return c.Next()
	}
}

// OptionalJWT guarda o token se existir, segue como convidado se não
func OptionalJWT() fiber.Handler {
	return func(c *fiber.Ctx) error {
		token := tokenFromRequest(c)
		if token == "" {
			c.Locals("user", nil)
			return c.Next()
		}

		jwtToken, err := jwt.Parse(token, func(t *jwt.Token) (interface{}, error) {
			if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, errors.New("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})
		if err != nil || !jwtToken.Valid {
			c.Locals("user", nil)
			return c.Next()
		}

		c.Locals("user", jwtToken)
		return c.Next()
	}
}
