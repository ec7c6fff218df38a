package handler

import (
	"time"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/helper"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
)

// RegisterCustomer cria a conta do cliente da loja
func RegisterCustomer(c *fiber.Ctx) error {
	var input model.RegisterCustomerInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	existing, err := helper.GetCustomerByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if existing != nil {
		return utils.ErrorResponse(c, fiber.StatusConflict, "Email já cadastrado", nil)
	}

	var phone *string
	if input.Phone != nil && *input.Phone != "" {
		formatted := helper.FormatBrazilianCellPhone(*input.Phone)
		if formatted == "" {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_PHONE, nil)
		}
		phone = &formatted
	}

	hashed, err := helper.HashPassword(input.Password)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	customer := model.Customer{
		Name:     input.Name,
		Email:    input.Email,
		Password: hashed,
		Phone:    phone,
		Age:      input.Age,
	}
	if err := database.DB.Create(&customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	utils.SendWelcomeEmail(customer.Name, customer.Email)

	claim := model.TokenClaim{CustomerId: customer.ID, Email: customer.Email, Type: "customer"}
	accessToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, _ := helper.GenerateRefreshToken(claim)

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"customer": customer,
		"tokens": model.TokenData{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	})
}

// LoginCustomer autentica o cliente
func LoginCustomer(c *fiber.Ctx) error {
	var input model.LoginInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.MISSING_LOGIN_INPUT, err)
	}

	customer, err := helper.GetCustomerByEmail(input.Email)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	if customer == nil || !helper.CheckPasswordHash(input.Password, customer.Password) {
		return utils.ErrorResponse(c, fiber.StatusUnauthorized, constants.INVALID_CREDENTIALS, nil)
	}

	claim := model.TokenClaim{CustomerId: customer.ID, Email: customer.Email, Type: "customer"}
	accessToken, err := helper.GenerateAccessToken(claim)
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}
	refreshToken, _ := helper.GenerateRefreshToken(claim)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"customer": customer,
		"tokens": model.TokenData{
			AccessToken:  accessToken,
			RefreshToken: refreshToken,
		},
	})
}

// MeCustomer retorna o cliente autenticado
func MeCustomer(c *fiber.Ctx) error {
	claim := helper.GetClaimFromToken(c)

	var customer model.Customer
	if err := database.DB.First(&customer, claim.CustomerId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Cliente não encontrado", err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

// UpdateCustomerProfile atualiza o perfil do cliente autenticado
func UpdateCustomerProfile(c *fiber.Ctx) error {
	claim := helper.GetClaimFromToken(c)

	var input model.UpdateCustomerProfileInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var customer model.Customer
	if err := database.DB.First(&customer, claim.CustomerId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Cliente não encontrado", err)
	}

	updates := map[string]interface{}{}
	if input.Name != nil {
		updates["name"] = *input.Name
	}
	if input.Avatar != nil {
		updates["avatar"] = *input.Avatar
	}
	if input.Phone != nil {
		if *input.Phone == "" {
			updates["phone"] = nil
		} else {
			formatted := helper.FormatBrazilianCellPhone(*input.Phone)
			if formatted == "" {
				return utils.ErrorResponse(c, fiber.StatusBadRequest, constants.INVALID_PHONE, nil)
			}
			updates["phone"] = formatted
		}
	}
	if input.Email != nil && *input.Email != customer.Email {
		existing, err := helper.GetCustomerByEmail(*input.Email)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		if existing != nil {
			return utils.ErrorResponse(c, fiber.StatusConflict, "Email já está em uso", nil)
		}
		updates["email"] = *input.Email
	}

	if input.NewPassword != nil {
		if input.CurrentPassword == nil || !helper.CheckPasswordHash(*input.CurrentPassword, customer.Password) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Senha atual incorreta", nil)
		}
		hashed, err := helper.HashPassword(*input.NewPassword)
		if err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
		updates["password"] = hashed
	}

	if len(updates) > 0 {
		if err := database.DB.Model(&customer).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	database.DB.First(&customer, customer.ID)
	return utils.SuccessResponse(c, fiber.StatusOK, customer)
}

// customerView enriquece o cliente com os agregados exibidos na listagem do
// painel (pedidos, avaliações, gasto e último pedido)
type customerView struct {
	model.Customer
	OrderCount      int64      `json:"orderCount"`
	ReviewCount     int64      `json:"reviewCount"`
	TotalSpent      float64    `json:"totalSpent"`
	LastOrderId     *uint      `json:"lastOrderId,omitempty"`
	LastOrderNumber *string    `json:"lastOrderNumber,omitempty"`
	LastOrderDate   *time.Time `json:"lastOrderDate,omitempty"`
}

// ListCustomers lista clientes com busca e paginação (admin)
func ListCustomers(c *fiber.Ctx) error {
	pagination := model.Pagination{}
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Parâmetros inválidos", err)
	}

	query := database.DB.Model(&model.Customer{})
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("name ILIKE ? OR email ILIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var customers []model.Customer
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("created_at DESC").Find(&customers).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	views := make([]customerView, 0, len(customers))
	for _, customer := range customers {
		view := customerView{Customer: customer}

		database.DB.Model(&model.Order{}).Where("customer_id = ?", customer.ID).Count(&view.OrderCount)
		database.DB.Model(&model.Review{}).Where("customer_id = ?", customer.ID).Count(&view.ReviewCount)
		database.DB.Model(&model.Order{}).
			Where("customer_id = ? AND status IN ?", customer.ID, goalRevenueStatuses).
			Select("COALESCE(SUM(total), 0)").Scan(&view.TotalSpent)

		var last model.Order
		if err := database.DB.Where("customer_id = ?", customer.ID).
			Order("created_at DESC").First(&last).Error; err == nil {
			view.LastOrderId = &last.ID
			view.LastOrderNumber = &last.OrderNumber
			view.LastOrderDate = &last.CreatedAt
		}

		views = append(views, view)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"customers": views,
		"total":     total,
	})
}

// CustomerStats estatísticas de clientes para o painel (admin)
func CustomerStats(c *fiber.Ctx) error {
	var totalCustomers, newThisMonth, customersWithOrders, totalOrders int64
	var totalRevenue float64

	database.DB.Model(&model.Customer{}).Count(&totalCustomers)

	now := time.Now()
	monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.Local)
	database.DB.Model(&model.Customer{}).Where("created_at >= ?", monthStart).Count(&newThisMonth)

	database.DB.Model(&model.Order{}).Where("customer_id IS NOT NULL").
		Distinct("customer_id").Count(&customersWithOrders)

	database.DB.Model(&model.Order{}).Count(&totalOrders)
	database.DB.Model(&model.Order{}).Where("status IN ?", goalRevenueStatuses).
		Select("COALESCE(SUM(total), 0)").Scan(&totalRevenue)

	type topCustomer struct {
		Id         uint    `json:"id"`
		Name       string  `json:"name"`
		Email      string  `json:"email"`
		Avatar     *string `json:"avatar,omitempty"`
		OrderCount int64   `json:"orderCount"`
	}
	var top []topCustomer
	database.DB.Model(&model.Customer{}).
		Select("customers.id, customers.name, customers.email, customers.avatar, COUNT(orders.id) AS order_count").
		Joins("JOIN orders ON orders.customer_id = customers.id").
		Group("customers.id").
		Order("order_count DESC").
		Limit(5).
		Scan(&top)

	var averageOrders float64
	if totalCustomers > 0 {
		averageOrders = float64(totalOrders) / float64(totalCustomers)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"totalCustomers":           totalCustomers,
		"newThisMonth":             newThisMonth,
		"customersWithOrders":      customersWithOrders,
		"customersWithoutOrders":   totalCustomers - customersWithOrders,
		"topCustomers":             top,
		"totalRevenue":             totalRevenue,
		"averageOrdersPerCustomer": averageOrders,
	})
}

// GetCustomerById detalhe do cliente com pedidos recentes, avaliações e
// agregados (admin)
func GetCustomerById(c *fiber.Ctx) error {
	id := c.Params("id")

	var customer model.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Cliente não encontrado", err)
	}

	var orders []model.Order
	database.DB.Where("customer_id = ?", customer.ID).
		Order("created_at DESC").Limit(10).Find(&orders)

	var reviews []model.Review
	database.DB.Where("customer_id = ?", customer.ID).
		Order("created_at DESC").Limit(5).Find(&reviews)

	var totalSpent float64
	var totalOrders, cancelledOrders, totalReviews int64
	database.DB.Model(&model.Order{}).
		Where("customer_id = ? AND status IN ?", customer.ID, goalRevenueStatuses).
		Select("COALESCE(SUM(total), 0)").Scan(&totalSpent)
	database.DB.Model(&model.Order{}).
		Where("customer_id = ? AND status IN ?", customer.ID, goalRevenueStatuses).Count(&totalOrders)
	database.DB.Model(&model.Order{}).
		Where("customer_id = ? AND status = ?", customer.ID, constants.ORDER_CANCELLED).Count(&cancelledOrders)
	database.DB.Model(&model.Review{}).Where("customer_id = ?", customer.ID).Count(&totalReviews)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"customer": customer,
		"orders":   orders,
		"reviews":  reviews,
		"stats": fiber.Map{
			"totalSpent":      totalSpent,
			"totalOrders":     totalOrders,
			"cancelledOrders": cancelledOrders,
			"totalReviews":    totalReviews,
		},
	})
}

// DeleteCustomer remove a conta do cliente (admin)
func DeleteCustomer(c *fiber.Ctx) error {
	id := c.Params("id")

	var customer model.Customer
	if err := database.DB.First(&customer, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Cliente não encontrado", err)
	}

	if err := database.DB.Delete(&customer).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Cliente deletado com sucesso"})
}
