package handler

import (
	"log"
	"time"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/helper"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

// CreatePayment cria a preferência de checkout no Mercado Pago para um pedido
func CreatePayment(c *fiber.Ctx) error {
	var input model.CreatePaymentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var order model.Order
	if err := database.DB.First(&order, input.OrderId).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.ORDER_NOT_FOUND, err)
	}

	var existing model.Payment
	err := database.DB.Where("order_id = ?", order.ID).First(&existing).Error
	if err == nil && existing.Status == constants.PAYMENT_APPROVED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Este pedido já possui um pagamento aprovado", nil)
	}

	mp := NewMercadoPago()
	preference, err2 := mp.CreatePreference(order, input.PayerEmail)
	if err2 != nil {
		log.Printf("Falha ao criar preferência no Mercado Pago: %v", err2)
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, "Falha ao iniciar pagamento", err2)
	}

	if err == nil {
		// reaproveita o registro, trocando a preferência
		updates := map[string]interface{}{
			"status":         constants.PAYMENT_PENDING,
			"amount":         order.Total,
			"preference_id":  preference.ID,
			"payer_email":    input.PayerEmail,
			"payer_name":     input.PayerName,
			"payer_document": input.PayerDocument,
		}
		if err := database.DB.Model(&existing).Updates(updates).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	} else {
		payment := model.Payment{
			OrderId:       order.ID,
			Amount:        order.Total,
			Status:        constants.PAYMENT_PENDING,
			PreferenceId:  &preference.ID,
			PayerEmail:    &input.PayerEmail,
			PayerName:     &input.PayerName,
			PayerDocument: input.PayerDocument,
		}
		if err := database.DB.Create(&payment).Error; err != nil {
			return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
		}
	}

	if err := database.DB.Model(&order).Update("status", constants.ORDER_PAYMENT_PENDING).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusCreated, fiber.Map{
		"preferenceId":     preference.ID,
		"initPoint":        preference.InitPoint,
		"sandboxInitPoint": preference.SandboxInitPoint,
	})
}

// PaymentWebhook recebe as notificações do Mercado Pago.
// O corpo não é fonte de verdade: o detalhe do pagamento é sempre consultado
// na API. Responde 200 {received:true} em qualquer cenário para o gateway não
// reentregar indefinidamente.
func PaymentWebhook(c *fiber.Ctx) error {
	ack := func() error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{"received": true})
	}

	var input model.WebhookInput
	if err := c.BodyParser(&input); err != nil {
		log.Printf("Webhook com corpo ilegível: %v", err)
		return ack()
	}

	if input.Type != "payment" || input.Data.ID == "" {
		return ack()
	}

	mp := NewMercadoPago()
	if !mp.VerifyWebhookSignature(c.Get("x-signature"), c.Get("x-request-id"), input.Data.ID) {
		log.Printf("Webhook com assinatura inválida para pagamento %s", input.Data.ID)
		return ack()
	}

	detail, err := mp.GetPayment(input.Data.ID)
	if err != nil {
		log.Printf("Falha ao consultar pagamento %s no Mercado Pago: %v", input.Data.ID, err)
		return ack()
	}

	payment, err := findWebhookPayment(input.Data.ID, detail.ExternalReference)
	if err != nil {
		log.Printf("Pagamento %s (pedido %s) não encontrado localmente", input.Data.ID, detail.ExternalReference)
		return ack()
	}

	webhookData := model.JSONMap{
		"paymentId":         detail.ID,
		"status":            detail.Status,
		"statusDetail":      detail.StatusDetail,
		"transactionAmount": detail.TransactionAmount,
		"paymentMethodId":   detail.PaymentMethodId,
		"paymentTypeId":     detail.PaymentTypeId,
		"externalReference": detail.ExternalReference,
		"receivedAt":        time.Now().Format(time.RFC3339),
	}

	status := MapGatewayStatus(detail.Status)
	if status == constants.PAYMENT_APPROVED {
		var queued []model.Notification
		err = database.DB.Transaction(func(tx *gorm.DB) error {
			var err error
			queued, err = helper.ApplyPaymentApproval(tx, payment, detail.Status, webhookData)
			return err
		})
		if err != nil {
			log.Printf("Falha ao aplicar aprovação do pagamento %d: %v", payment.ID, err)
			return ack()
		}
		helper.PublishNotifications(queued)

		var order model.Order
		if err := database.DB.First(&order, payment.OrderId).Error; err == nil {
			utils.SendPaymentConfirmationEmail(order)
		}
		return ack()
	}

	if err := database.DB.Model(payment).Updates(map[string]interface{}{
		"status":         status,
		"gateway_status": detail.Status,
		"webhook_data":   webhookData,
	}).Error; err != nil {
		log.Printf("Falha ao atualizar pagamento %d: %v", payment.ID, err)
	}
	return ack()
}

// findWebhookPayment localiza o pagamento pelo id do gateway, com fallback
// pelo external_reference (número do pedido) na primeira notificação, quando
// o id ainda não foi carimbado.
func findWebhookPayment(mercadoPagoId, externalReference string) (*model.Payment, error) {
	var payment model.Payment
	if err := database.DB.Where("mercado_pago_id = ?", mercadoPagoId).First(&payment).Error; err == nil {
		return &payment, nil
	}

	var order model.Order
	if err := database.DB.Where("order_number = ?", externalReference).First(&order).Error; err != nil {
		return nil, err
	}
	if err := database.DB.Where("order_id = ?", order.ID).First(&payment).Error; err != nil {
		return nil, err
	}

	if err := database.DB.Model(&payment).Update("mercado_pago_id", mercadoPagoId).Error; err != nil {
		return nil, err
	}
	return &payment, nil
}

// GetPaymentStatus retorna o status de pagamento de um pedido (rota pública
// consultada pela página de retorno do checkout)
func GetPaymentStatus(c *fiber.Ctx) error {
	orderId := c.Params("orderId")

	var payment model.Payment
	if err := database.DB.Where("order_id = ?", orderId).First(&payment).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PAYMENT_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"orderId":    payment.OrderId,
		"status":     payment.Status,
		"amount":     payment.Amount,
		"approvedAt": payment.ApprovedAt,
	})
}

// ListPayments lista pagamentos com filtros (admin)
func ListPayments(c *fiber.Ctx) error {
	pagination := model.Pagination{}
	if err := c.QueryParser(&pagination); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Parâmetros inválidos", err)
	}

	query := database.DB.Model(&model.Payment{}).Preload("Order")

	if status := c.Query("status"); status != "" {
		if !utils.IsValidValueOfConstant(status, constants.PaymentStatuses) {
			return utils.ErrorResponse(c, fiber.StatusBadRequest, "Status de pagamento inválido", nil)
		}
		query = query.Where("status = ?", status)
	}
	if search := c.Query("search"); search != "" {
		like := "%" + search + "%"
		query = query.Where("payer_email ILIKE ? OR payer_name ILIKE ?", like, like)
	}

	var total int64
	query.Count(&total)

	var payments []model.Payment
	if err := utils.ApplyPagination(query, pagination.Limit, pagination.Page).
		Order("created_at DESC").Find(&payments).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"payments": payments,
		"total":    total,
	})
}

// GetPaymentById retorna o detalhe de um pagamento (admin)
func GetPaymentById(c *fiber.Ctx) error {
	id := c.Params("id")

	var payment model.Payment
	if err := database.DB.Preload("Order").First(&payment, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PAYMENT_NOT_FOUND, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, payment)
}

// RefundPayment solicita o reembolso de um pagamento aprovado (admin)
func RefundPayment(c *fiber.Ctx) error {
	id := c.Params("id")

	var input model.RefundPaymentInput
	if err := c.BodyParser(&input); err != nil {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Dados inválidos", err)
	}

	var payment model.Payment
	if err := database.DB.First(&payment, id).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, constants.PAYMENT_NOT_FOUND, err)
	}
	if payment.Status != constants.PAYMENT_APPROVED {
		return utils.ErrorResponse(c, fiber.StatusBadRequest, "Apenas pagamentos aprovados podem ser reembolsados", nil)
	}

	// reembolso no gateway é best-effort: a baixa local acontece mesmo se a
	// chamada falhar (o caso fica registrado no log para conciliação manual)
	if payment.MercadoPagoId != nil {
		mp := NewMercadoPago()
		if err := mp.RefundPayment(*payment.MercadoPagoId); err != nil {
			log.Printf("Falha ao reembolsar pagamento %s no Mercado Pago: %v", *payment.MercadoPagoId, err)
		}
	}

	reason := ""
	if input.Reason != nil {
		reason = *input.Reason
	}
	err := database.DB.Transaction(func(tx *gorm.DB) error {
		return helper.ApplyRefund(tx, &payment, reason)
	})
	if err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"message": "Reembolso registrado",
		"status":  constants.PAYMENT_REFUNDED,
	})
}

// PaymentStats estatísticas de pagamento para o painel (admin)
func PaymentStats(c *fiber.Ctx) error {
	var totalApproved, totalPending, totalRejected, totalRefunded int64
	var approvedAmount, refundedAmount float64

	db := database.DB.Model(&model.Payment{})
	db.Session(&gorm.Session{}).Where("status = ?", constants.PAYMENT_APPROVED).Count(&totalApproved)
	db.Session(&gorm.Session{}).Where("status IN ?", []string{constants.PAYMENT_PENDING, constants.PAYMENT_PROCESSING}).Count(&totalPending)
	db.Session(&gorm.Session{}).Where("status = ?", constants.PAYMENT_REJECTED).Count(&totalRejected)
	db.Session(&gorm.Session{}).Where("status = ?", constants.PAYMENT_REFUNDED).Count(&totalRefunded)

	database.DB.Model(&model.Payment{}).Where("status = ?", constants.PAYMENT_APPROVED).
		Select("COALESCE(SUM(amount), 0)").Scan(&approvedAmount)
	database.DB.Model(&model.Payment{}).Where("status = ?", constants.PAYMENT_REFUNDED).
		Select("COALESCE(SUM(amount), 0)").Scan(&refundedAmount)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"approvedCount":  totalApproved,
		"pendingCount":   totalPending,
		"rejectedCount":  totalRejected,
		"refundedCount":  totalRefunded,
		"approvedAmount": approvedAmount,
		"refundedAmount": refundedAmount,
	})
}
