package helper

import (
	"strings"
	"testing"

	"loja_manager/constants"
	"loja_manager/database"
	"loja_manager/model"
	"loja_manager/utils"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	require.NoError(t, err)

	database.Migrate(db)
	return db
}

func seedAdmin(t *testing.T, db *gorm.DB) model.User {
	t.Helper()

	admin := model.User{
		Name:     "Admin",
		Email:    "admin@test.local",
		Password: "x",
		Role:     constants.ROLE_ADMIN,
	}
	require.NoError(t, db.Create(&admin).Error)
	return admin
}

func seedOrder(t *testing.T, db *gorm.DB) model.Order {
	t.Helper()

	order := model.Order{
		OrderNumber:   GenerateOrderNumber(),
		CustomerName:  "Maria Silva",
		CustomerEmail: utils.StringPtr("maria@test.local"),
		Items: model.OrderItemList{
			{ProductId: 1, Title: "Apostila de bordado", Price: 49.90, Quantity: 2},
			{ProductId: 2, Title: "Moldes em PDF", Price: 19.90, Quantity: 1},
		},
		Subtotal: 119.70,
		Shipping: 0,
		Total:    119.70,
		Status:   constants.ORDER_PENDING,
	}
	require.NoError(t, db.Create(&order).Error)
	return order
}

func TestGenerateOrderNumber(t *testing.T) {
	seen := map[string]bool{}
	for i := 0; i < 100; i++ {
		number := GenerateOrderNumber()
		assert.True(t, strings.HasPrefix(number, "PED-"))
		assert.Len(t, number, 12)
		assert.False(t, seen[number], "número repetido: %s", number)
		seen[number] = true
	}
}

func TestCreatePurchaseRecordsIsIdempotent(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db)

	require.NoError(t, CreatePurchaseRecords(db, order))
	require.NoError(t, CreatePurchaseRecords(db, order))
	require.NoError(t, CreatePurchaseRecords(db, order))

	var count int64
	db.Model(&model.PurchaseHistory{}).Where("order_id = ?", order.ID).Count(&count)
	assert.Equal(t, int64(2), count, "uma linha por item, sem duplicatas")

	var record model.PurchaseHistory
	require.NoError(t, db.Where("order_id = ? AND product_id = ?", order.ID, 1).First(&record).Error)
	assert.Equal(t, "maria@test.local", record.CustomerEmail)
	assert.Equal(t, "Apostila de bordado", record.ProductTitle)
	assert.InDelta(t, 99.80, record.PricePaid, 0.001)
}

func TestApplyPaymentApproval(t *testing.T) {
	db := setupTestDB(t)
	admin := seedAdmin(t, db)
	order := seedOrder(t, db)

	payment := model.Payment{
		OrderId: order.ID,
		Amount:  order.Total,
		Status:  constants.PAYMENT_PENDING,
	}
	require.NoError(t, db.Create(&payment).Error)

	webhookData := model.JSONMap{"status": "approved"}
	var queued []model.Notification
	err := db.Transaction(func(tx *gorm.DB) error {
		var err error
		queued, err = ApplyPaymentApproval(tx, &payment, "approved", webhookData)
		return err
	})
	require.NoError(t, err)
	require.Len(t, queued, 1)

	var savedPayment model.Payment
	require.NoError(t, db.First(&savedPayment, payment.ID).Error)
	assert.Equal(t, constants.PAYMENT_APPROVED, savedPayment.Status)
	assert.NotNil(t, savedPayment.ApprovedAt)
	require.NotNil(t, savedPayment.GatewayStatus)
	assert.Equal(t, "approved", *savedPayment.GatewayStatus)

	var savedOrder model.Order
	require.NoError(t, db.First(&savedOrder, order.ID).Error)
	assert.Equal(t, constants.ORDER_PAID, savedOrder.Status)

	var purchases int64
	db.Model(&model.PurchaseHistory{}).Where("order_id = ?", order.ID).Count(&purchases)
	assert.Equal(t, int64(2), purchases)

	var notifications []model.Notification
	db.Where("user_id = ?", admin.ID).Find(&notifications)
	require.Len(t, notifications, 1)
	assert.Equal(t, constants.NOTIFY_PAYMENT_APPROVED, notifications[0].Type)
}

func TestApplyPaymentApprovalTwiceKeepsSinglePurchaseHistory(t *testing.T) {
	db := setupTestDB(t)
	seedAdmin(t, db)
	order := seedOrder(t, db)

	payment := model.Payment{OrderId: order.ID, Amount: order.Total, Status: constants.PAYMENT_PENDING}
	require.NoError(t, db.Create(&payment).Error)

	for i := 0; i < 2; i++ {
		err := db.Transaction(func(tx *gorm.DB) error {
			_, err := ApplyPaymentApproval(tx, &payment, "approved", model.JSONMap{"retry": i})
			return err
		})
		require.NoError(t, err)
	}

	var purchases int64
	db.Model(&model.PurchaseHistory{}).Where("order_id = ?", order.ID).Count(&purchases)
	assert.Equal(t, int64(2), purchases, "reentrega não duplica histórico")
}

func TestApplyRefund(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db)

	payment := model.Payment{OrderId: order.ID, Amount: order.Total, Status: constants.PAYMENT_APPROVED}
	require.NoError(t, db.Create(&payment).Error)

	err := db.Transaction(func(tx *gorm.DB) error {
		return ApplyRefund(tx, &payment, "Produto com defeito")
	})
	require.NoError(t, err)

	var savedPayment model.Payment
	require.NoError(t, db.First(&savedPayment, payment.ID).Error)
	assert.Equal(t, constants.PAYMENT_REFUNDED, savedPayment.Status)
	assert.NotNil(t, savedPayment.RefundedAt)

	var savedOrder model.Order
	require.NoError(t, db.First(&savedOrder, order.ID).Error)
	assert.Equal(t, constants.ORDER_REFUNDED, savedOrder.Status)
	require.NotNil(t, savedOrder.Notes)
	assert.Equal(t, "Produto com defeito", *savedOrder.Notes)
}

func TestApplyRefundDefaultReason(t *testing.T) {
	db := setupTestDB(t)
	order := seedOrder(t, db)

	payment := model.Payment{OrderId: order.ID, Amount: order.Total, Status: constants.PAYMENT_APPROVED}
	require.NoError(t, db.Create(&payment).Error)

	require.NoError(t, db.Transaction(func(tx *gorm.DB) error {
		return ApplyRefund(tx, &payment, "")
	}))

	var savedOrder model.Order
	require.NoError(t, db.First(&savedOrder, order.ID).Error)
	require.NotNil(t, savedOrder.Notes)
	assert.Equal(t, "Reembolso solicitado", *savedOrder.Notes)
}
