package handler

import (
	"strconv"
	"time"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// status que contam como receita para a meta
var goalRevenueStatuses = []string{
	constants.ORDER_PAID,
	constants.ORDER_PROCESSING,
	constants.ORDER_SHIPPED,
	constants.ORDER_DELIVERED,
}

// CreateSalesGoal cadastra a meta de um mês (admin)
func CreateSalesGoal(c *fiber.Ctx) error {
	var input model.CreateSalesGoalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var count int64
	database.DB.Model(&model.SalesGoal{}).
		Where("month = ? AND year = ?", input.Month, input.Year).Count(&count)
	if count > 0 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Já existe meta para este mês", nil)
	}

	goal := model.SalesGoal{
		Month:       input.Month,
		Year:        input.Year,
		TargetValue: input.TargetValue,
		Description: input.Description,
	}
	if err := database.DB.Create(&goal).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, goal)
}

// ListSalesGoals metas cadastradas (admin)
func ListSalesGoals(c *fiber.Ctx) error {
	query := database.DB.Model(&model.SalesGoal{})
	if year := c.Query("year"); year != "" {
		query = query.Where("year = ?", year)
	}

	var goals []model.SalesGoal
	if err := query.Order("year DESC, month DESC").Find(&goals).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, goals)
}

// UpdateSalesGoal atualiza a meta do mês indicado na rota; se ainda não
// existe meta para o mês, cria (upsert). Admin.
func UpdateSalesGoal(c *fiber.Ctx) error {
	year, errY := strconv.Atoi(c.Params("year"))
	month, errM := strconv.Atoi(c.Params("month"))
	if errY != nil || errM != nil || month < 1 || month > 12 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mês ou ano inválido", nil)
	}

	var input model.UpdateSalesGoalInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var goal model.SalesGoal
	err := database.DB.Where("month = ? AND year = ?", month, year).First(&goal).Error
	if err != nil {
		if input.TargetValue == nil {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Valor da meta é obrigatório para criar", nil)
		}
		goal = model.SalesGoal{
			Month:       month,
			Year:        year,
			TargetValue: *input.TargetValue,
			Description: input.Description,
		}
		if err := database.DB.Create(&goal).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		return utils.SuccessResponse(c, fiber.StatusOK, goal)
	}

	updates := map[string]interface{}{}
	if input.TargetValue != nil {
		updates["target_value"] = *input.TargetValue
	}
	if input.Description != nil {
		updates["description"] = *input.Description
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&goal).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	database.DB.First(&goal, goal.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, goal)
}

// DeleteSalesGoal remove a meta (admin)
func DeleteSalesGoal(c *fiber.Ctx) error {
	id := c.Params("id")

	var goal model.SalesGoal
	if err := database.DB.First(&goal, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Meta não encontrada", err)
	}

	if err := database.DB.Delete(&goal).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

func goalProgress(month, year int) (*model.SalesGoal, model.SalesGoalProgress, error) {
	var goal model.SalesGoal
	if err := database.DB.Where("month = ? AND year = ?", month, year).First(&goal).Error; err != nil {
		return nil, model.SalesGoalProgress{}, err
	}

	monthStart := time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.Local)
	monthEnd := monthStart.AddDate(0, 1, 0)

	var current float64
	var orderCount int64
	database.DB.Model(&model.Order{}).
		Where("status IN ? AND created_at >= ? AND created_at < ?", goalRevenueStatuses, monthStart, monthEnd).
		Select("COALESCE(SUM(total), 0)").Scan(&current)
	database.DB.Model(&model.Order{}).
		Where("status IN ? AND created_at >= ? AND created_at < ?", goalRevenueStatuses, monthStart, monthEnd).
		Count(&orderCount)

	progress := model.SalesGoalProgress{
		CurrentValue: current,
		TargetValue:  goal.TargetValue,
		OrderCount:   orderCount,
		Achieved:     current >= goal.TargetValue,
	}
	if goal.TargetValue > 0 {
		progress.Percentage = current / goal.TargetValue * 100
	}
	progress.Remaining = goal.TargetValue - current
	if progress.Remaining < 0 {
		progress.Remaining = 0
	}

	return &goal, progress, nil
}

// CurrentSalesGoal meta do mês corrente com progresso (admin)
func CurrentSalesGoal(c *fiber.Ctx) error {
	now := time.Now()
	goal, progress, err := goalProgress(int(now.Month()), now.Year())
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Nenhuma meta para o mês atual", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"goal":     goal,
		"progress": progress,
	})
}

// SalesGoalByMonth meta e progresso de um mês específico (admin)
func SalesGoalByMonth(c *fiber.Ctx) error {
	month, errM := strconv.Atoi(c.Params("month"))
	year, errY := strconv.Atoi(c.Params("year"))
	if errM != nil || errY != nil || month < 1 || month > 12 {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Mês ou ano inválido", nil)
	}

	goal, progress, err := goalProgress(month, year)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Nenhuma meta para este mês", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"goal":     goal,
		"progress": progress,
	})
}
