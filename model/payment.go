package model

import "time"

type Payment struct {
	DTO
	OrderId       uint       `gorm:"not null;uniqueIndex" json:"orderId"` // no máximo um pagamento por pedido
	Amount        float64    `gorm:"not null" json:"amount"`
	Method        string     `gorm:"default:PIX" json:"method"` // atualizado após escolha no checkout
	Status        string     `gorm:"default:PENDING;index" json:"status"`
	MercadoPagoId *string    `gorm:"uniqueIndex" json:"mercadoPagoId,omitempty"`
	PreferenceId  *string    `json:"preferenceId,omitempty"`
	GatewayStatus *string    `json:"gatewayStatus,omitempty"` // status cru do Mercado Pago
	PayerEmail    *string    `json:"payerEmail,omitempty"`
	PayerName     *string    `json:"payerName,omitempty"`
	PayerDocument *string    `json:"payerDocument,omitempty"`
	ApprovedAt    *time.Time `json:"approvedAt,omitempty"`
	RefundedAt    *time.Time `json:"refundedAt,omitempty"`
	WebhookData   JSONMap    `gorm:"type:jsonb" json:"webhookData,omitempty"`

	Order Order `gorm:"foreignKey:OrderId" json:"-"`
}

type CreatePaymentInput struct {
	OrderId       uint    `json:"orderId" validate:"required,gt=0"`
	PayerEmail    string  `json:"payerEmail" validate:"required,email"`
	PayerName     string  `json:"payerName" validate:"required"`
	PayerDocument *string `json:"payerDocument"`
}

type RefundPaymentInput struct {
	Reason *string `json:"reason"`
}
