package handler

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"loja_manager/constants"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func customerAdminApp() *fiber.App {
	app := fiber.New()
	app.Get("/api/customers/stats", CustomerStats)
	app.Get("/api/customers", ListCustomers)
	app.Get("/api/customers/:id", GetCustomerById)
	app.Delete("/api/customers/:id", DeleteCustomer)
	return app
}

func seedCustomerWithOrders(t *testing.T, db *gorm.DB) model.Customer {
	t.Helper()

	customer := model.Customer{Name: "Bia Rocha", Email: "bia@test.local", Password: "x"}
	require.NoError(t, db.Create(&customer).Error)

	orders := []model.Order{
		{
			OrderNumber:   "PED-CLI00001",
			CustomerID:    &customer.ID,
			CustomerName:  customer.Name,
			CustomerEmail: utils.StringPtr(customer.Email),
			Total:         100,
			Status:        constants.ORDER_PAID,
		},
		{
			OrderNumber:   "PED-CLI00002",
			CustomerID:    &customer.ID,
			CustomerName:  customer.Name,
			CustomerEmail: utils.StringPtr(customer.Email),
			Total:         50,
			Status:        constants.ORDER_CANCELLED, // não entra no gasto
		},
	}
	require.NoError(t, db.Create(&orders).Error)

	review := model.Review{
		ProductId:     1,
		CustomerId:    &customer.ID,
		CustomerName:  customer.Name,
		CustomerEmail: customer.Email,
		Rating:        5,
	}
	require.NoError(t, db.Create(&review).Error)

	return customer
}

func TestListCustomersReturnsAggregates(t *testing.T) {
	db := setupHandlerDB(t)
	seedCustomerWithOrders(t, db)

	semPedidos := model.Customer{Name: "Caio Lima", Email: "caio@test.local", Password: "x"}
	require.NoError(t, db.Create(&semPedidos).Error)

	app := customerAdminApp()
	req := httptest.NewRequest(http.MethodGet, "/api/customers", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Customers []struct {
			model.Customer
			OrderCount      int64   `json:"orderCount"`
			ReviewCount     int64   `json:"reviewCount"`
			TotalSpent      float64 `json:"totalSpent"`
			LastOrderNumber *string `json:"lastOrderNumber"`
		} `json:"customers"`
		Total int64 `json:"total"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Equal(t, int64(2), body.Total)
	require.Len(t, body.Customers, 2)

	byEmail := map[string]int{}
	for i, view := range body.Customers {
		byEmail[view.Email] = i
	}

	bia := body.Customers[byEmail["bia@test.local"]]
	assert.Equal(t, int64(2), bia.OrderCount)
	assert.Equal(t, int64(1), bia.ReviewCount)
	assert.InDelta(t, 100.0, bia.TotalSpent, 0.001, "pedido cancelado não conta como gasto")
	require.NotNil(t, bia.LastOrderNumber)

	caio := body.Customers[byEmail["caio@test.local"]]
	assert.Equal(t, int64(0), caio.OrderCount)
	assert.Nil(t, caio.LastOrderNumber)
}

func TestCustomerStats(t *testing.T) {
	db := setupHandlerDB(t)
	seedCustomerWithOrders(t, db)

	semPedidos := model.Customer{Name: "Caio Lima", Email: "caio@test.local", Password: "x"}
	require.NoError(t, db.Create(&semPedidos).Error)

	app := customerAdminApp()
	req := httptest.NewRequest(http.MethodGet, "/api/customers/stats", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		TotalCustomers         int64   `json:"totalCustomers"`
		NewThisMonth           int64   `json:"newThisMonth"`
		CustomersWithOrders    int64   `json:"customersWithOrders"`
		CustomersWithoutOrders int64   `json:"customersWithoutOrders"`
		TotalRevenue           float64 `json:"totalRevenue"`
		TopCustomers           []struct {
			Email      string `json:"email"`
			OrderCount int64  `json:"orderCount"`
		} `json:"topCustomers"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, int64(2), body.TotalCustomers)
	assert.Equal(t, int64(2), body.NewThisMonth)
	assert.Equal(t, int64(1), body.CustomersWithOrders)
	assert.Equal(t, int64(1), body.CustomersWithoutOrders)
	assert.InDelta(t, 100.0, body.TotalRevenue, 0.001)
	require.Len(t, body.TopCustomers, 1)
	assert.Equal(t, "bia@test.local", body.TopCustomers[0].Email)
	assert.Equal(t, int64(2), body.TopCustomers[0].OrderCount)
}

func TestGetCustomerByIdWithStats(t *testing.T) {
	db := setupHandlerDB(t)
	customer := seedCustomerWithOrders(t, db)

	app := customerAdminApp()
	req := httptest.NewRequest(http.MethodGet, "/api/customers/"+itoa(customer.ID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var body struct {
		Customer model.Customer `json:"customer"`
		Orders   []model.Order  `json:"orders"`
		Stats    struct {
			TotalSpent      float64 `json:"totalSpent"`
			TotalOrders     int64   `json:"totalOrders"`
			CancelledOrders int64   `json:"cancelledOrders"`
			TotalReviews    int64   `json:"totalReviews"`
		} `json:"stats"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))

	assert.Equal(t, customer.Email, body.Customer.Email)
	assert.Len(t, body.Orders, 2)
	assert.InDelta(t, 100.0, body.Stats.TotalSpent, 0.001)
	assert.Equal(t, int64(1), body.Stats.TotalOrders)
	assert.Equal(t, int64(1), body.Stats.CancelledOrders)
	assert.Equal(t, int64(1), body.Stats.TotalReviews)
}

func TestGetCustomerByIdNotFound(t *testing.T) {
	setupHandlerDB(t)

	app := customerAdminApp()
	req := httptest.NewRequest(http.MethodGet, "/api/customers/9999", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestDeleteCustomer(t *testing.T) {
	db := setupHandlerDB(t)
	customer := seedCustomerWithOrders(t, db)

	app := customerAdminApp()
	req := httptest.NewRequest(http.MethodDelete, "/api/customers/"+itoa(customer.ID), nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&model.Customer{}).Where("id = ?", customer.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}
