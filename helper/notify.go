package helper

import (
	"sync"

	"loja_manager/model"

	"gorm.io/gorm"
)

// Hub em memória para o feed de notificações do painel (websocket).
// Cada assinante recebe as notificações criadas para o seu userId.
var (
	notifyMu          sync.Mutex
	notifySubscribers = map[uint][]chan model.Notification{}
)

func SubscribeNotifications(userId uint) chan model.Notification {
	ch := make(chan model.Notification, 16)
	notifyMu.Lock()
	notifySubscribers[userId] = append(notifySubscribers[userId], ch)
	notifyMu.Unlock()
	return ch
}

func UnsubscribeNotifications(userId uint, ch chan model.Notification) {
	notifyMu.Lock()
	defer notifyMu.Unlock()
	subs := notifySubscribers[userId]
	for i, sub := range subs {
		if sub == ch {
			notifySubscribers[userId] = append(subs[:i], subs[i+1:]...)
			close(ch)
			break
		}
	}
}

func publishNotification(n model.Notification) {
	notifyMu.Lock()
	defer notifyMu.Unlock()
	for _, ch := range notifySubscribers[n.UserId] {
		select {
		case ch <- n:
		default: // assinante lento não bloqueia a requisição
		}
	}
}

// QueueNotification grava a notificação sem publicar no websocket. Dentro de
// uma transação use esta função e chame PublishNotifications só depois do
// commit, para um rollback não deixar push fantasma no painel.
func QueueNotification(db *gorm.DB, userId uint, notifType, title, message string, data model.JSONMap) (model.Notification, error) {
	n := model.Notification{
		UserId:  userId,
		Type:    notifType,
		Title:   title,
		Message: message,
		Data:    data,
	}
	if err := db.Create(&n).Error; err != nil {
		return model.Notification{}, err
	}
	return n, nil
}

// QueueAdminNotifications grava a mesma notificação para todos os admins
// (fan-out) sem publicar
func QueueAdminNotifications(db *gorm.DB, notifType, title, message string, data model.JSONMap) ([]model.Notification, error) {
	admins, err := FindAdminUsers(db)
	if err != nil {
		return nil, err
	}

	queued := make([]model.Notification, 0, len(admins))
	for _, admin := range admins {
		n, err := QueueNotification(db, admin.ID, notifType, title, message, data)
		if err != nil {
			return nil, err
		}
		queued = append(queued, n)
	}
	return queued, nil
}

// PublishNotifications empurra notificações já gravadas para os assinantes
func PublishNotifications(ns []model.Notification) {
	for _, n := range ns {
		publishNotification(n)
	}
}

// NotifyUser cria e publica uma notificação para um usuário específico
func NotifyUser(db *gorm.DB, userId uint, notifType, title, message string, data model.JSONMap) error {
	n, err := QueueNotification(db, userId, notifType, title, message, data)
	if err != nil {
		return err
	}
	publishNotification(n)
	return nil
}

// NotifyAdmins cria e publica a mesma notificação para todos os admins
func NotifyAdmins(db *gorm.DB, notifType, title, message string, data model.JSONMap) error {
	queued, err := QueueAdminNotifications(db, notifType, title, message, data)
	if err != nil {
		return err
	}
	PublishNotifications(queued)
	return nil
}
