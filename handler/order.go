package handler

import (
	"encoding/base64"
	"fmt"
	"log"
	"strconv"
	"strings"
	"time"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/helper"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreateOrder registra um novo pedido (checkout público)
func CreateOrder(c *fiber.Ctx) error {
	var input model.CreateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var phone *string
	if input.CustomerPhone != nil && *input.CustomerPhone != "" {
		formatted := helper.FormatBrazilianCellPhone(*input.CustomerPhone)
		if formatted == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_PHONE, nil)
		}
		phone = &formatted
	}

	if input.Total != input.Subtotal+input.Shipping {
		log.Printf("Pedido com total divergente: subtotal=%.2f shipping=%.2f total=%.2f",
			input.Subtotal, input.Shipping, input.Total)
	}

	order := model.Order{
		OrderNumber:   helper.GenerateOrderNumber(),
		CustomerName:  input.CustomerName,
		CustomerEmail: input.CustomerEmail,
		CustomerPhone: phone,
		Items:         input.Items,
		Subtotal:      input.Subtotal,
		Shipping:      input.Shipping,
		Total:         input.Total,
		Status:        constants.ORDER_PENDING, // sempre PENDING na criação
		ShippingAddr:  input.ShippingAddr,
	}

	// pedido de cliente logado fica vinculado à conta
	if input.CustomerEmail != nil {
		if customer, err := helper.GetCustomerByEmail(*input.CustomerEmail); err == nil && customer != nil {
			order.CustomerID = &customer.ID
		}
	}

	if err := database.DB.Create(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	if err := helper.NotifyAdmins(database.DB, constants.NOTIFY_NEW_ORDER,
		"Novo pedido recebido",
		fmt.Sprintf("Pedido #%s de %s no valor de %s", order.OrderNumber, order.CustomerName, utils.FormatBRL(order.Total)),
		model.JSONMap{"orderId": order.ID, "orderNumber": order.OrderNumber},
	); err != nil {
		log.Printf("Falha ao notificar admins do pedido %s: %v", order.OrderNumber, err)
	}

	utils.SendOrderConfirmationEmail(order)

	return utils.SuccessResponse(c, fiber.StatusCreated, order)
}

// applyOrderSearch monta o filtro de busca multicampo da listagem.
// Busca numérica também compara com total/subtotal e datas no formato
// dd/mm[/yyyy] viram intervalo do dia.
func applyOrderSearch(query *gorm.DB, search string) *gorm.DB {
	search = strings.TrimSpace(search)
	if search == "" {
		return query
	}

	if dayStart, dayEnd, ok := parseSearchDate(search); ok {
		return query.Where("created_at >= ? AND created_at < ?", dayStart, dayEnd)
	}

	like := "%" + search + "%"
	where := "order_number ILIKE ? OR customer_name ILIKE ? OR customer_email ILIKE ? OR tracking_code ILIKE ?"
	args := []interface{}{like, like, like, like}

	if id, err := strconv.ParseUint(search, 10, 64); err == nil {
		where += " OR id = ?"
		args = append(args, id)
	}
	if value, err := strconv.ParseFloat(strings.ReplaceAll(search, ",", "."), 64); err == nil {
		where += " OR total = ? OR subtotal = ?"
		args = append(args, value, value)
	}

	return query.Where(where, args...)
}

// parseSearchDate reconhece dd/mm e dd/mm/yyyy
func parseSearchDate(search string) (time.Time, time.Time, bool) {
	parts := strings.Split(search, "/")
	if len(parts) != 2 && len(parts) != 3 {
		return time.Time{}, time.Time{}, false
	}

	day, errD := strconv.Atoi(parts[0])
	month, errM := strconv.Atoi(parts[1])
	if errD != nil || errM != nil || day < 1 || day > 31 || month < 1 || month > 12 {
		return time.Time{}, time.Time{}, false
	}

	year := time.Now().Year()
	if len(parts) == 3 {
		y, err := strconv.Atoi(parts[2])
		if err != nil {
			return time.Time{}, time.Time{}, false
		}
		year = y
	}

	start := time.Date(year, time.Month(month), day, 0, 0, 0, 0, time.Local)
	return start, start.AddDate(0, 0, 1), true
}

// ListOrders lista pedidos com filtros e contagem por status (admin)
func ListOrders(c *fiber.Ctx) error {
	pagination := model.Pagination{}
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Parâmetros inválidos", err)
	}

	query := database.DB.Model(&model.Order{}).Preload("Payment")

	if status := c.Query("status"); status != "" {
		if !utils.IsValidValueOfConstant(status, constants.OrderStatuses) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Status de pedido inválido", nil)
		}
		query = query.Where("status = ?", status)
	}
	query = applyOrderSearch(query, c.Query("search"))

	if from := c.Query("dateFrom"); from != "" {
		if t, err := time.Parse("2006-01-02", from); err == nil {
			query = query.Where("created_at >= ?", t)
		}
	}
	if to := c.Query("dateTo"); to != "" {
		if t, err := time.Parse("2006-01-02", to); err == nil {
			query = query.Where("created_at < ?", t.AddDate(0, 0, 1))
		}
	}

	var total int64
	query.Count(&total)

	sort := "created_at DESC"
	switch c.Query("sort") {
	case "oldest":
		sort = "created_at ASC"
	case "total_desc":
		sort = "total DESC"
	case "total_asc":
		sort = "total ASC"
	}

	var orders []model.Order
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order(sort).Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	statusCounts := model.OrderStatusCounts{}
	for _, status := range constants.OrderStatuses {
		var count int64
		database.DB.Model(&model.Order{}).Where("status = ?", status).Count(&count)
		statusCounts[status] = count
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orders":       orders,
		"total":        total,
		"statusCounts": statusCounts,
	})
}

// OrderStats estatísticas para o dashboard (admin)
func OrderStats(c *fiber.Ctx) error {
	stats := model.OrderStats{StatusCounts: map[string]int64{}}

	database.DB.Model(&model.Order{}).Count(&stats.TotalOrders)
	for _, status := range constants.OrderStatuses {
		var count int64
		database.DB.Model(&model.Order{}).Where("status = ?", status).Count(&count)
		stats.StatusCounts[status] = count
	}
	stats.PendingOrders = stats.StatusCounts[constants.ORDER_PENDING] + stats.StatusCounts[constants.ORDER_PAYMENT_PENDING]
	stats.ProcessingOrders = stats.StatusCounts[constants.ORDER_PROCESSING]
	stats.ShippedOrders = stats.StatusCounts[constants.ORDER_SHIPPED]
	stats.DeliveredOrders = stats.StatusCounts[constants.ORDER_DELIVERED]
	stats.CancelledOrders = stats.StatusCounts[constants.ORDER_CANCELLED]

	paidStatuses := []string{constants.ORDER_PAID, constants.ORDER_PROCESSING, constants.ORDER_SHIPPED, constants.ORDER_DELIVERED}

	database.DB.Model(&model.Order{}).Where("status IN ?", paidStatuses).
		Select("COALESCE(SUM(total), 0)").Scan(&stats.TotalRevenue)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	lastMonthStart := monthStart.AddDate(0, -1, 0)

	var lastMonthRevenue float64
	database.DB.Model(&model.Order{}).Where("status IN ? AND created_at >= ?", paidStatuses, monthStart).
		Select("COALESCE(SUM(total), 0)").Scan(&stats.MonthRevenue)
	database.DB.Model(&model.Order{}).Where("status IN ? AND created_at >= ? AND created_at < ?", paidStatuses, lastMonthStart, monthStart).
		Select("COALESCE(SUM(total), 0)").Scan(&lastMonthRevenue)
	stats.RevenueGrowth = utils.CalculateGrowth(stats.MonthRevenue, lastMonthRevenue)

	database.DB.Preload("Payment").Order("created_at DESC").Limit(5).Find(&stats.RecentOrders)

	return utils.SuccessResponse(c, fiber.StatusOK, stats)
}

// GetOrderById detalhe de um pedido (admin)
func GetOrderById(c *fiber.Ctx) error {
	id := c.Params("id")

	var order model.Order
	if err := database.DB.Preload("Payment").Preload("Customer").First(&order, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// UpdateOrder atualiza status, rastreio e observações (admin).
// Notificação só quando o status realmente mudou; transição manual para
// DELIVERED também gera o histórico de compra (fallback sem webhook).
func UpdateOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var input model.UpdateOrderInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var order model.Order
	if err := database.DB.First(&order, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	previousStatus := order.Status
	updates := map[string]interface{}{}
	if input.Status != nil {
		updates["status"] = *input.Status
	}
	if input.TrackingCode != nil {
		updates["tracking_code"] = *input.TrackingCode
	}
	if input.Notes != nil {
		updates["notes"] = *input.Notes
	}
	if len(updates) == 0 {
		return utils.SuccessResponse(c, fiber.StatusOK, order)
	}

	statusChanged := input.Status != nil && *input.Status != previousStatus

	var queued []model.Notification
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&order).Updates(updates).Error; err != nil {
			return err
		}

		if statusChanged && *input.Status == constants.ORDER_DELIVERED {
			order.Status = constants.ORDER_DELIVERED
			if err := helper.CreatePurchaseRecords(tx, order); err != nil {
				return err
			}
		}

		if statusChanged {
			var err error
			queued, err = helper.QueueAdminNotifications(tx, constants.NOTIFY_ORDER_UPDATE,
				"Pedido atualizado",
				fmt.Sprintf("Pedido #%s mudou de %s para %s", order.OrderNumber, previousStatus, *input.Status),
				model.JSONMap{"orderId": order.ID, "from": previousStatus, "to": *input.Status},
			)
			return err
		}
		return nil
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	// push só depois do commit, rollback não gera notificação no painel
	helper.PublishNotifications(queued)

	if statusChanged && *input.Status == constants.ORDER_DELIVERED {
		utils.SendPaymentConfirmationEmail(order)
	}

	database.DB.Preload("Payment").First(&order, order.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, order)
}

// DeleteOrder remove um pedido (admin)
func DeleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var order model.Order
	if err := database.DB.First(&order, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	if err := database.DB.Delete(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// TrackOrder rastreio público pelo número do pedido + email
func TrackOrder(c *fiber.Ctx) error {
	orderNumber := c.Params("id")
	email := c.Query("email")

	var order model.Order
	query := database.DB.Where("order_number = ?", orderNumber)
	if email != "" {
		query = query.Where("customer_email = ?", email)
	}
	if err := query.First(&order).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	response := fiber.Map{
		"orderNumber":  order.OrderNumber,
		"status":       order.Status,
		"trackingCode": order.TrackingCode,
		"items":        order.Items,
		"total":        order.Total,
		"createdAt":    order.CreatedAt,
		"updatedAt":    order.UpdatedAt,
	}

	if order.TrackingCode != nil && *order.TrackingCode != "" {
		if png, err := utils.GenerateQRCode(*order.TrackingCode, 256); err == nil {
			response["trackingQrCode"] = "data:image/png;base64," + base64.StdEncoding.EncodeToString(png)
		}
	}

	return utils.SuccessResponse(c, fiber.StatusOK, response)
}

// GetMyOrders pedidos de um email (área do cliente)
func GetMyOrders(c *fiber.Ctx) error {
	email := c.Query("email")
	if email == "" {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Email é obrigatório", nil)
	}

	pagination := model.Pagination{}
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Parâmetros inválidos", err)
	}

	query := database.DB.Model(&model.Order{}).Preload("Payment").Where("customer_email = ?", email)

	var total int64
	query.Count(&total)

	var orders []model.Order
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("created_at DESC").Find(&orders).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, model.ResponseCustom{
		Rows:       orders,
		Limit:      pagination.Limit,
		Page:       pagination.Page,
		TotalCount: total,
	})
}
