package helper

import (
	"errors"
	"testing"

	"loja_manager/constants"
	"loja_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestNotifyUserPublishesToSubscriber(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)

	ch := SubscribeNotifications(admin.ID)
	defer UnsubscribeNotifications(admin.ID, ch)

	require.NoError(t, NotifyUser(db, admin.ID, constants.NOTIFY_NEW_ORDER,
		"Novo pedido recebido", "Pedido #PED-TESTE001", nil))

	select {
	case n := <-ch:
		assert.Equal(t, constants.NOTIFY_NEW_ORDER, n.Type)
		assert.NotZero(t, n.ID)
	default:
		t.Fatal("assinante não recebeu a notificação")
	}
}

func TestQueuedNotificationsOnlyPushAfterPublish(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)

	ch := SubscribeNotifications(admin.ID)
	defer UnsubscribeNotifications(admin.ID, ch)

	var queued []model.Notification
	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		var err error
		queued, err = QueueAdminNotifications(tx, constants.NOTIFY_ORDER_UPDATE,
			"Pedido atualizado", "Pedido #PED-TESTE002 mudou de PAID para SHIPPED", nil)
		return err
	}))
	require.Len(t, queued, 1)

	select {
	case <-ch:
		t.Fatal("push antes de PublishNotifications")
	default:
	}

	PublishNotifications(queued)

	select {
	case n := <-ch:
		assert.Equal(t, constants.NOTIFY_ORDER_UPDATE, n.Type)
	default:
		t.Fatal("assinante não recebeu após publicar")
	}
}

func TestApprovalRollbackPushesNothing(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	order := seedOrder(t, db)

	payment := model.Payment{OrderId: order.ID, Amount: order.Total, Status: constants.PAYMENT_PENDING}
	require.NoError(t, db.Create(&payment).Error)

	ch := SubscribeNotifications(admin.ID)
	defer UnsubscribeNotifications(admin.ID, ch)

	boom := errors.New("falha depois da aprovação")
	err := db.Transaction(func(tx *gorm.DB) error {
		if _, err := ApplyPaymentApproval(tx, &payment, "approved", nil); err != nil {
			return err
		}
		return boom // força rollback com notificações já enfileiradas
	})
	require.ErrorIs(t, err, boom)

	select {
	case <-ch:
		t.Fatal("rollback não pode gerar push no painel")
	default:
	}

	var count int64
	db.Model(&model.Notification{}).Where("user_id = ?", admin.ID).Count(&count)
	assert.Equal(t, int64(0), count)

	var savedPayment model.Payment
	require.NoError(t, db.First(&savedPayment, payment.ID).Error)
	assert.Equal(t, constants.PAYMENT_PENDING, savedPayment.Status)
}
