package handler

import (
	"bytes"
	"encoding/json"
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

func TestGoalProgress(t *testing.T) {
	db := setupHandlerDB(t)

	now := time.Now()
	goal := model.SalesGoal{Month: int(now.Month()), Year: now.Year(), TargetValue: 1000}
	require.NoError(t, db.Create(&goal).Error)

	orders := []model.Order{
		{OrderNumber: "PED-GOAL0001", CustomerName: "A", Total: 300, Status: constants.ORDER_PAID},
		{OrderNumber: "PED-GOAL0002", CustomerName: "B", Total: 200, Status: constants.ORDER_DELIVERED},
		{OrderNumber: "PED-GOAL0003", CustomerName: "C", Total: 500, Status: constants.ORDER_PENDING},    // não conta
		{OrderNumber: "PED-GOAL0004", CustomerName: "D", Total: 100, Status: constants.ORDER_CANCELLED}, // não conta
	}
	require.NoError(t, db.Create(&orders).Error)

	_, progress, err := goalProgress(int(now.Month()), now.Year())
	require.NoError(t, err)

	assert.InDelta(t, 500.0, progress.CurrentValue, 0.001)
	assert.InDelta(t, 50.0, progress.Percentage, 0.001)
	assert.InDelta(t, 500.0, progress.Remaining, 0.001)
	assert.Equal(t, int64(2), progress.OrderCount)
	assert.False(t, progress.Achieved)
}

func TestGoalProgressAchieved(t *testing.T) {
	db := setupHandlerDB(t)

	now := time.Now()
	goal := model.SalesGoal{Month: int(now.Month()), Year: now.Year(), TargetValue: 100}
	require.NoError(t, db.Create(&goal).Error)

	order := model.Order{OrderNumber: "PED-GOAL0005", CustomerName: "E", Total: 150, Status: constants.ORDER_PAID}
	require.NoError(t, db.Create(&order).Error)

	_, progress, err := goalProgress(int(now.Month()), now.Year())
	require.NoError(t, err)

	assert.True(t, progress.Achieved)
	assert.InDelta(t, 0.0, progress.Remaining, 0.001)
	assert.InDelta(t, 150.0, progress.Percentage, 0.001)
}

func TestGoalProgressMissingGoal(t *testing.T) {
	setupHandlerDB(t)

	_, _, err := goalProgress(1, 2000)
	assert.Error(t, err)
}

func putJSON(t *testing.T, app *fiber.App, path string, payload any) *http.Response {
	t.Helper()

	raw, err := json.Marshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPut, path, bytes.NewReader(raw))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func TestUpdateSalesGoalUpsertsByMonth(t *testing.T) {
	db := setupHandlerDB(t)

	app := fiber.New()
	app.Put("/api/sales-goals/:year/:month", UpdateSalesGoal)

	// mês sem meta: o PUT cria
	resp := putJSON(t, app, "/api/sales-goals/2026/3", fiber.Map{"targetValue": 2000.0})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var goal model.SalesGoal
	require.NoError(t, db.Where("month = ? AND year = ?", 3, 2026).First(&goal).Error)
	assert.InDelta(t, 2000.0, goal.TargetValue, 0.001)

	// segundo PUT no mesmo mês atualiza a meta existente
	resp = putJSON(t, app, "/api/sales-goals/2026/3", fiber.Map{
		"targetValue": 3500.0,
		"description": "meta revisada",
	})
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	var count int64
	db.Model(&model.SalesGoal{}).Where("month = ? AND year = ?", 3, 2026).Count(&count)
	assert.Equal(t, int64(1), count)

	require.NoError(t, db.Where("month = ? AND year = ?", 3, 2026).First(&goal).Error)
	assert.InDelta(t, 3500.0, goal.TargetValue, 0.001)
	require.NotNil(t, goal.Description)
	assert.Equal(t, "meta revisada", *goal.Description)
}

func TestUpdateSalesGoalRejectsInvalidMonth(t *testing.T) {
	setupHandlerDB(t)

	app := fiber.New()
	app.Put("/api/sales-goals/:year/:month", UpdateSalesGoal)

	resp := putJSON(t, app, "/api/sales-goals/2026/13", fiber.Map{"targetValue": 1000.0})
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
