package helper

import (
	"errors"
	"fmt"
	"os"
	"time"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func jwtSecret() []byte {
	return []byte(os.Getenv("JWT_SECRET"))
}

func HashPassword(password string) (string, error) {
	bytes, err := bcrypt.GenerateFromPassword([]byte(password), 10)
	return string(bytes), err
}

func CheckPasswordHash(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func GetUserByEmail(e string) (*model.User, error) {
	db := database.DB
	var user model.User
	if err := db.Where(&model.User{Email: e}).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

func GetCustomerByEmail(e string) (*model.Customer, error) {
	db := database.DB
	var customer model.Customer
	if err := db.Where(&model.Customer{Email: e}).First(&customer).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &customer, nil
}

// FindAdminUsers busca todos os admins para o fan-out de notificações.
// Recebe o handle (db ou tx) para poder participar de transações e testes.
func FindAdminUsers(db *gorm.DB) ([]model.User, error) {
	var admins []model.User
	if err := db.Where("role = ?", constants.ROLE_ADMIN).Find(&admins).Error; err != nil {
		return nil, err
	}
	return admins, nil
}

func GenerateAccessToken(claim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = claim.UserId
	claims["customerId"] = claim.CustomerId
	claims["email"] = claim.Email
	claims["type"] = claim.Type
	claims["exp"] = time.Now().Add(time.Hour * 24).Unix()

	return token.SignedString(jwtSecret())
}

func GenerateRefreshToken(claim model.TokenClaim) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["userId"] = claim.UserId
	claims["customerId"] = claim.CustomerId
	claims["email"] = claim.Email
	claims["type"] = claim.Type
	claims["exp"] = time.Now().Add(time.Hour * 24 * 7).Unix()

	return token.SignedString(jwtSecret())
}

func ParseToken(tokenString string) (*jwt.Token, error) {
	return jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return jwtSecret(), nil
	})
}

// GetClaimFromToken extrai o claim do token salvo em Locals pelo middleware
func GetClaimFromToken(c *fiber.Ctx) model.TokenClaim {
	var claim model.TokenClaim

	u := c.Locals("user")
	if u == nil {
		return claim
	}

	token, ok := u.(*jwt.Token)
	if !ok || token == nil {
		return claim
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return claim
	}

	if v, ok := claims["userId"].(float64); ok {
		claim.UserId = uint(v)
	}
	if v, ok := claims["customerId"].(float64); ok {
		claim.CustomerId = uint(v)
	}
	if v, ok := claims["email"].(string); ok {
		claim.Email = v
	}
	if v, ok := claims["type"].(string); ok {
		claim.Type = v
	}

	return claim
}
