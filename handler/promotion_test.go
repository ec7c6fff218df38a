package handler

import (
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"loja_manager/constants"
	"loja_manager/model"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivePromotionFinalPrice(t *testing.T) {
	now := time.Now()
	percent := 20.0
	amount := 15.0

	product := model.Product{Price: 100}
	product.Promotions = []model.Promotion{
		{Name: "Expirada", DiscountPercent: &percent, StartDate: now.AddDate(0, 0, -10), EndDate: now.AddDate(0, 0, -5), Active: true},
		{Name: "Vigente", DiscountPercent: &percent, StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1), Active: true},
	}

	promo, finalPrice := activePromotionFor(product)
	require.NotNil(t, promo)
	assert.Equal(t, "Vigente", promo.Name)
	assert.InDelta(t, 80.0, finalPrice, 0.001)

	product.Promotions = []model.Promotion{
		{Name: "Valor fixo", DiscountAmount: &amount, StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1), Active: true},
	}
	_, finalPrice = activePromotionFor(product)
	assert.InDelta(t, 85.0, finalPrice, 0.001)

	product.Promotions = []model.Promotion{
		{Name: "Desativada", DiscountPercent: &percent, StartDate: now.AddDate(0, 0, -1), EndDate: now.AddDate(0, 0, 1), Active: false},
	}
	promo, finalPrice = activePromotionFor(product)
	assert.Nil(t, promo)
	assert.InDelta(t, 100.0, finalPrice, 0.001)
}

func TestCreatePromotionRequiresSingleDiscountKind(t *testing.T) {
	db := setupHandlerDB(t)

	product := model.Product{Title: "Quadro", Slug: "quadro", Price: 100, Type: constants.PRODUCT_PHYSICAL, Active: true}
	require.NoError(t, db.Create(&product).Error)

	app := fiber.New()
	app.Post("/api/promotions", CreatePromotion)

	// os dois descontos ao mesmo tempo
	resp := postJSON(t, app, "/api/promotions", fiber.Map{
		"productId":       product.ID,
		"name":            "Inválida",
		"discountPercent": 10,
		"discountAmount":  5,
		"startDate":       time.Now().Format(time.RFC3339),
		"endDate":         time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// nenhum desconto
	resp = postJSON(t, app, "/api/promotions", fiber.Map{
		"productId": product.ID,
		"name":      "Inválida",
		"startDate": time.Now().Format(time.RFC3339),
		"endDate":   time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// datas invertidas
	resp = postJSON(t, app, "/api/promotions", fiber.Map{
		"productId":       product.ID,
		"name":            "Inválida",
		"discountPercent": 10,
		"startDate":       time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
		"endDate":         time.Now().Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)

	// válida
	resp = postJSON(t, app, "/api/promotions", fiber.Map{
		"productId":       product.ID,
		"name":            "Semana criativa",
		"discountPercent": 10,
		"startDate":       time.Now().Format(time.RFC3339),
		"endDate":         time.Now().AddDate(0, 0, 7).Format(time.RFC3339),
	})
	assert.Equal(t, http.StatusCreated, resp.StatusCode)
}

func TestGetActivePromotionEndpoint(t *testing.T) {
	db := setupHandlerDB(t)

	percent := 50.0
	product := model.Product{Title: "Kit pintura", Slug: "kit-pintura", Price: 80, Type: constants.PRODUCT_PHYSICAL, Active: true}
	require.NoError(t, db.Create(&product).Error)
	require.NoError(t, db.Create(&model.Promotion{
		ProductId:       product.ID,
		Name:            "Metade do preço",
		DiscountPercent: &percent,
		StartDate:       time.Now().AddDate(0, 0, -1),
		EndDate:         time.Now().AddDate(0, 0, 1),
		Active:          true,
	}).Error)

	app := fiber.New()
	app.Get("/api/products/:productId/promotion", GetActivePromotion)

	req := httptest.NewRequest(http.MethodGet, "/api/products/"+itoa(product.ID)+"/promotion", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	body, _ := io.ReadAll(resp.Body)
	assert.Contains(t, string(body), "Metade do preço")
	assert.Contains(t, string(body), `"finalPrice":40`)
}
