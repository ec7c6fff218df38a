package model

// Tipos de integração com o Mercado Pago
// Documentação: https://www.mercadopago.com.br/developers/pt/docs

type MPConfig struct {
	AccessToken   string
	BaseURL       string
	FrontendURL   string
	WebhookURL    string
	WebhookSecret string
}

type WebhookInput struct {
	Type string `json:"type"`
	Data struct {
		ID string `json:"id"`
	} `json:"data"`
}

type MPPreferenceItem struct {
	ID         string  `json:"id"`
	Title      string  `json:"title"`
	Description string `json:"description"`
	PictureUrl string  `json:"picture_url,omitempty"`
	CategoryId string  `json:"category_id"`
	Quantity   int     `json:"quantity"`
	UnitPrice  float64 `json:"unit_price"`
}

type MPPreferencePayer struct {
	Name  string `json:"name"`
	Email string `json:"email,omitempty"`
	Phone *struct {
		Number string `json:"number"`
	} `json:"phone,omitempty"`
}

type MPBackUrls struct {
	Success string `json:"success"`
	Failure string `json:"failure"`
	Pending string `json:"pending"`
}

type MPPaymentMethods struct {
	ExcludedPaymentMethods []any `json:"excluded_payment_methods"`
	ExcludedPaymentTypes   []any `json:"excluded_payment_types"`
	Installments           int   `json:"installments"`
}

type MPShipments struct {
	Cost float64 `json:"cost"`
	Mode string  `json:"mode"`
}

type MPPreferenceRequest struct {
	Items               []MPPreferenceItem `json:"items"`
	Payer               MPPreferencePayer  `json:"payer"`
	BackUrls            MPBackUrls         `json:"back_urls"`
	AutoReturn          string             `json:"auto_return"`
	ExternalReference   string             `json:"external_reference"`
	NotificationUrl     string             `json:"notification_url"`
	StatementDescriptor string             `json:"statement_descriptor"`
	PaymentMethods      MPPaymentMethods   `json:"payment_methods"`
	Shipments           MPShipments        `json:"shipments"`
}

type MPPreference struct {
	ID               string `json:"id"`
	InitPoint        string `json:"init_point"`
	SandboxInitPoint string `json:"sandbox_init_point"`
}

// Detalhe do pagamento consultado na API (o corpo do webhook não é confiável
// como fonte de verdade para valor/status)
type MPPayment struct {
	ID                int64   `json:"id"`
	Status            string  `json:"status"`
	StatusDetail      string  `json:"status_detail"`
	TransactionAmount float64 `json:"transaction_amount"`
	PaymentMethodId   string  `json:"payment_method_id"`
	PaymentTypeId     string  `json:"payment_type_id"`
	ExternalReference string  `json:"external_reference"`
	Payer             struct {
		Email string `json:"email"`
	} `json:"payer"`
}

type MPRefundRequest struct {
	Amount *float64 `json:"amount,omitempty"`
}
