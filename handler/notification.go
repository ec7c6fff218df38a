package handler

import (
	"encoding/json"
	"log"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/helper"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
)

// ListNotifications notificações do admin autenticado (máx. 50)
func ListNotifications(c *fiber.Ctx) error {
	claim := helper.GetClaimFromToken(c)

	query := database.DB.Model(&model.Notification{}).Where("user_id = ?", claim.UserId)
	if read := c.Query("read"); read == "true" || read == "false" {
		query = query.Where("read = ?", read == "true")
	}

	var notifications []model.Notification
	if err := query.Order("created_at DESC").Limit(50).Find(&notifications).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	var unreadCount int64
	database.DB.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", claim.UserId, false).Count(&unreadCount)

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{
		"notifications": notifications,
		"unreadCount":   unreadCount,
	})
}

// MarkNotificationRead marca uma notificação como lida
func MarkNotificationRead(c *fiber.Ctx) error {
	claim := helper.GetClaimFromToken(c)
	id := c.Params("id")

	var notification model.Notification
	if err := database.DB.Where("id = ? AND user_id = ?", id, claim.UserId).
		First(&notification).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Notificação não encontrada", err)
	}

	if err := database.DB.Model(&notification).Update("read", true).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, notification)
}

// MarkAllNotificationsRead marca todas como lidas
func MarkAllNotificationsRead(c *fiber.Ctx) error {
	claim := helper.GetClaimFromToken(c)

	if err := database.DB.Model(&model.Notification{}).
		Where("user_id = ? AND read = ?", claim.UserId, false).
		Update("read", true).Error; err != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, err)
	}

	return utils.SuccessResponse(c, fiber.StatusOK, fiber.Map{"message": "Notificações marcadas como lidas"})
}

// DeleteNotification remove uma notificação
func DeleteNotification(c *fiber.Ctx) error {
	claim := helper.GetClaimFromToken(c)
	id := c.Params("id")

	result := database.DB.Where("id = ? AND user_id = ?", id, claim.UserId).
		Delete(&model.Notification{})
	if result.Error != nil {
		return utils.ErrorResponse(c, fiber.StatusInternalServerError, constants.ERROR_INTERNAL_ERROR, result.Error)
	}
	if result.RowsAffected == 0 {
		return utils.ErrorResponse(c, fiber.StatusNotFound, "Notificação não encontrada", nil)
	}

	return c.SendStatus(fiber.StatusNoContent)
}

// NotificationFeed websocket que empurra notificações novas para o painel.
// A autenticação acontece no upgrade (middleware) e o userId chega via Locals.
func NotificationFeed() fiber.Handler {
	return websocket.New(func(conn *websocket.Conn) {
		userId, ok := conn.Locals("userId").(uint)
		if !ok {
			conn.Close()
			return
		}

		ch := helper.SubscribeNotifications(userId)
		defer helper.UnsubscribeNotifications(userId, ch)

		// leitor descarta mensagens do cliente e detecta desconexão
		done := make(chan struct{})
		go func() {
			defer close(done)
			for {
				if _, _, err := conn.ReadMessage(); err != nil {
					return
				}
			}
		}()

		for {
			select {
			case notification, open := <-ch:
				if !open {
					return
				}
				payload, err := json.Marshal(notification)
				if err != nil {
					log.Printf("Falha ao serializar notificação %d: %v", notification.ID, err)
					continue
				}
				if err := conn.WriteMessage(websocket.TextMessage, payload); err != nil {
					return
				}
			case <-done:
				return
			}
		}
	})
}
