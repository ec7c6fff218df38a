package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/helper"
	"loja_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupAuthTest(t *testing.T) (*fiber.App, model.User, model.Customer) {
	t.Helper()
	t.Setenv("JWT_SECRET", "teste-secreto")

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)
	database.Migrate(db)
	database.DB = db

	admin := model.User{Name: "Admin", Email: "admin@test.local", Password: "x", Role: constants.ROLE_ADMIN}
	require.NoError(t, db.Create(&admin).Error)

	customer := model.Customer{Name: "Cliente", Email: "cliente@test.local", Password: "x"}
	require.NoError(t, db.Create(&customer).Error)

	app := fiber.New()
	app.Get("/admin", Protected(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})
	app.Get("/customer", CustomerProtected(), func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"ok": true})
	})

	return app, admin, customer
}

func request(t *testing.T, app *fiber.App, path, token string) *http.Response {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestProtectedAcceptsAdminToken(t *testing.T) {
	app, admin, _ := setupAuthTest(t)

	token, err := helper.GenerateAccessToken(model.TokenClaim{UserId: admin.ID, Email: admin.Email, Type: "admin"})
	require.NoError(t, err)

	resp := request(t, app, "/admin", token)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedRejectsMissingAndInvalidToken(t *testing.T) {
	app, _, _ := setupAuthTest(t)

	resp := request(t, app, "/admin", "")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)

	resp = request(t, app, "/admin", "token-invalido")
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode)
}

func TestProtectedRejectsCustomerToken(t *testing.T) {
	app, _, customer := setupAuthTest(t)

	token, err := helper.GenerateAccessToken(model.TokenClaim{CustomerId: customer.ID, Email: customer.Email, Type: "customer"})
	require.NoError(t, err)

	resp := request(t, app, "/admin", token)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)
}

func TestCustomerProtectedRejectsAdminToken(t *testing.T) {
	app, admin, customer := setupAuthTest(t)

	adminToken, err := helper.GenerateAccessToken(model.TokenClaim{UserId: admin.ID, Email: admin.Email, Type: "admin"})
	require.NoError(t, err)
	resp := request(t, app, "/customer", adminToken)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	customerToken, err := helper.GenerateAccessToken(model.TokenClaim{CustomerId: customer.ID, Email: customer.Email, Type: "customer"})
	require.NoError(t, err)
	resp = request(t, app, "/customer", customerToken)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

func TestProtectedAcceptsCookieToken(t *testing.T) {
	app, admin, _ := setupAuthTest(t)

	token, err := helper.GenerateAccessToken(model.TokenClaim{UserId: admin.ID, Email: admin.Email, Type: "admin"})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin", nil)
	req.AddCookie(&http.Cookie{Name: "access_token", Value: token})
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
}
