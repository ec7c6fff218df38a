package constants

// Papéis de usuário admin
const (
	ROLE_ADMIN = "ADMIN"
)

// Status de pedido (conjunto fechado)
const (
	ORDER_PENDING         = "PENDING"
	ORDER_PAYMENT_PENDING = "PAYMENT_PENDING"
	ORDER_PAID            = "PAID"
	ORDER_PROCESSING      = "PROCESSING"
	ORDER_SHIPPED         = "SHIPPED"
	ORDER_DELIVERED       = "DELIVERED"
	ORDER_CANCELLED       = "CANCELLED"
	ORDER_REFUNDED        = "REFUNDED"
)

var OrderStatuses = []string{
	ORDER_PENDING,
	ORDER_PAYMENT_PENDING,
	ORDER_PAID,
	ORDER_PROCESSING,
	ORDER_SHIPPED,
	ORDER_DELIVERED,
	ORDER_CANCELLED,
	ORDER_REFUNDED,
}

// Status de pagamento (conjunto fechado)
const (
	PAYMENT_PENDING    = "PENDING"
	PAYMENT_PROCESSING = "PROCESSING"
	PAYMENT_APPROVED   = "APPROVED"
	PAYMENT_REJECTED   = "REJECTED"
	PAYMENT_CANCELLED  = "CANCELLED"
	PAYMENT_REFUNDED   = "REFUNDED"
)

var PaymentStatuses = []string{
	PAYMENT_PENDING,
	PAYMENT_PROCESSING,
	PAYMENT_APPROVED,
	PAYMENT_REJECTED,
	PAYMENT_CANCELLED,
	PAYMENT_REFUNDED,
}

// Tipos de produto
const (
	PRODUCT_PHYSICAL = "PHYSICAL"
	PRODUCT_DIGITAL  = "DIGITAL"
)

// Tipos de notificação
const (
	NOTIFY_NEW_ORDER        = "NEW_ORDER"
	NOTIFY_ORDER_UPDATE     = "ORDER_UPDATE"
	NOTIFY_PAYMENT_APPROVED = "PAYMENT_APPROVED"
	NOTIFY_LOW_STOCK        = "LOW_STOCK"
)

// Mensagens
const (
	ERROR_INTERNAL_ERROR = "Erro interno do servidor"
	MISSING_LOGIN_INPUT  = "Email e senha são obrigatórios"
	INVALID_CREDENTIALS  = "Credenciais inválidas"
	ORDER_NOT_FOUND      = "Pedido não encontrado"
	PAYMENT_NOT_FOUND    = "Pagamento não encontrado"
	PRODUCT_NOT_FOUND    = "Produto não encontrado"
	INVALID_PHONE        = "Telefone inválido. Use o formato (XX) 9XXXX-XXXX"
)
