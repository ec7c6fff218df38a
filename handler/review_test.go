package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"loja_manager/constants"
	"loja_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func reviewApp() *fiber.App {
	app := fiber.New()
	app.Post("/api/reviews", CreateReview)
	app.Get("/api/products/:productId/reviews", GetProductReviews)
	return app
}

func TestCreateReviewOncePerEmail(t *testing.T) {
	db := setupHandlerDB(t)

	product := model.Product{Title: "Agenda ilustrada", Slug: "agenda-ilustrada", Price: 55, Type: constants.PRODUCT_PHYSICAL, Active: true}
	require.NoError(t, db.Create(&product).Error)

	app := reviewApp()

	payload := fiber.Map{
		"productId":     product.ID,
		"customerName":  "Bia Santos",
		"customerEmail": "bia@test.local",
		"rating":        5,
		"comment":       "Linda demais!",
	}

	resp := postJSON(t, app, "/api/reviews", payload)
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = postJSON(t, app, "/api/reviews", payload)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	var count int64
	db.Model(&model.Review{}).Where("product_id = ?", product.ID).Count(&count)
	assert.Equal(t, int64(1), count)
}

func TestCreateReviewVerifiedWhenPurchased(t *testing.T) {
	db := setupHandlerDB(t)

	product := model.Product{Title: "Curso de crochê", Slug: "curso-de-croche", Price: 90, Type: constants.PRODUCT_DIGITAL, Active: true}
	require.NoError(t, db.Create(&product).Error)
	seedPurchase(t, db, "compradora@test.local", product.ID)

	app := reviewApp()

	resp := postJSON(t, app, "/api/reviews", fiber.Map{
		"productId":     product.ID,
		"customerName":  "Compradora",
		"customerEmail": "compradora@test.local",
		"rating":        4,
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)

	var review model.Review
	require.NoError(t, db.Where("product_id = ?", product.ID).First(&review).Error)
	assert.True(t, review.Verified)
}

func TestGetProductReviewsAverageAndDistribution(t *testing.T) {
	db := setupHandlerDB(t)

	product := model.Product{Title: "Marcador de página", Slug: "marcador", Price: 12, Type: constants.PRODUCT_PHYSICAL, Active: true}
	require.NoError(t, db.Create(&product).Error)

	reviews := []model.Review{
		{ProductId: product.ID, CustomerName: "A", CustomerEmail: "a@test.local", Rating: 5},
		{ProductId: product.ID, CustomerName: "B", CustomerEmail: "b@test.local", Rating: 5},
		{ProductId: product.ID, CustomerName: "C", CustomerEmail: "c@test.local", Rating: 2},
	}
	require.NoError(t, db.Create(&reviews).Error)

	app := reviewApp()
	req := httptest.NewRequest(http.MethodGet, "/api/products/"+itoa(product.ID)+"/reviews", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), `"averageRating":4`)
	assert.Contains(t, string(body), `"total":3`)
}
