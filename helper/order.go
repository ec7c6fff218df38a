package helper

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"loja_manager/constants"
	"loja_manager/model"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// GenerateOrderNumber gera o código público do pedido (ex: PED-1A2B3C4D)
func GenerateOrderNumber() string {
	raw := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "PED-" + raw[:8]
}

// CreatePurchaseRecords insere uma linha de histórico de compra por item do
// pedido. Idempotente: itens que já possuem linha (orderId, productId) são
// pulados, então reentrega de webhook ou reenvio do status DELIVERED não
// duplica histórico.
func CreatePurchaseRecords(tx *gorm.DB, order model.Order) error {
	email := ""
	if order.CustomerEmail != nil {
		email = *order.CustomerEmail
	}

	for _, item := range order.Items {
		var count int64
		if err := tx.Model(&model.PurchaseHistory{}).
			Where("order_id = ? AND product_id = ?", order.ID, item.ProductId).
			Count(&count).Error; err != nil {
			return err
		}
		if count > 0 {
			continue
		}

		record := model.PurchaseHistory{
			OrderId:       order.ID,
			ProductId:     item.ProductId,
			CustomerEmail: email,
			CustomerName:  order.CustomerName,
			ProductTitle:  item.Title,
			PricePaid:     item.Price * float64(item.Quantity),
		}
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
	}

	return nil
}

// ApplyPaymentApproval aplica a aprovação de um pagamento dentro da transação
// recebida: pagamento → APPROVED, pedido → PAID, histórico de compra por item
// (com guarda de duplicidade) e notificação para os admins. Tudo ou nada.
// As notificações voltam apenas enfileiradas: o chamador publica com
// PublishNotifications depois do commit, para um rollback não vazar push.
func ApplyPaymentApproval(tx *gorm.DB, payment *model.Payment, gatewayStatus string, webhookData model.JSONMap) ([]model.Notification, error) {
	if payment == nil {
		return nil, errors.New("pagamento nulo")
	}

	var order model.Order
	if err := tx.First(&order, payment.OrderId).Error; err != nil {
		return nil, err
	}

	now := time.Now()
	if err := tx.Model(payment).Updates(map[string]interface{}{
		"status":         constants.PAYMENT_APPROVED,
		"gateway_status": gatewayStatus,
		"approved_at":    now,
		"webhook_data":   webhookData,
	}).Error; err != nil {
		return nil, err
	}

	if err := tx.Model(&order).Update("status", constants.ORDER_PAID).Error; err != nil {
		return nil, err
	}
	order.Status = constants.ORDER_PAID

	if err := CreatePurchaseRecords(tx, order); err != nil {
		return nil, err
	}

	return QueueAdminNotifications(tx, constants.NOTIFY_PAYMENT_APPROVED,
		"Pagamento confirmado",
		fmt.Sprintf("Pedido #%s foi pago por %s", order.OrderNumber, order.CustomerName),
		model.JSONMap{"orderId": order.ID, "paymentId": payment.ID},
	)
}

// ApplyRefund marca pagamento e pedido como reembolsados na mesma transação
func ApplyRefund(tx *gorm.DB, payment *model.Payment, reason string) error {
	now := time.Now()
	if err := tx.Model(payment).Updates(map[string]interface{}{
		"status":      constants.PAYMENT_REFUNDED,
		"refunded_at": now,
	}).Error; err != nil {
		return err
	}

	if reason == "" {
		reason = "Reembolso solicitado"
	}
	return tx.Model(&model.Order{}).Where("id = ?", payment.OrderId).
		Updates(map[string]interface{}{
			"status": constants.ORDER_REFUNDED,
			"notes":  reason,
		}).Error
}
