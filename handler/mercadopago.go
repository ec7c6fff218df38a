package handler

import (
	"bytes"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"loja_manager/constants"
	"loja_manager/model"

	"github.com/google/uuid"
)

// MercadoPago é o cliente da API de pagamentos.
// https://api.mercadopago.com por padrão; a base é sobrescrevível para testes.
type MercadoPago struct {
	Config model.MPConfig
	Client *http.Client
}

func NewMercadoPago() *MercadoPago {
	baseURL := os.Getenv("MERCADO_PAGO_BASE_URL")
	if baseURL == "" {
		baseURL = "https://api.mercadopago.com"
	}

	backendURL := os.Getenv("BACKEND_URL")
	if backendURL == "" {
		backendURL = "http://localhost:3333"
	}

	return &MercadoPago{
		Config: model.MPConfig{
			AccessToken:   os.Getenv("MERCADO_PAGO_ACCESS_TOKEN"),
			BaseURL:       strings.TrimRight(baseURL, "/"),
			FrontendURL:   os.Getenv("FRONTEND_URL"),
			WebhookURL:    backendURL + "/api/payments/webhook",
			WebhookSecret: os.Getenv("MERCADO_PAGO_WEBHOOK_SECRET"),
		},
		Client: &http.Client{Timeout: 15 * time.Second},
	}
}

func (mp *MercadoPago) doRequest(method, path string, payload any, out any, idempotencyKey string) error {
	var body io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return err
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequest(method, mp.Config.BaseURL+path, body)
	if err != nil {
		return err
	}
	req.Header.Set("Authorization", "Bearer "+mp.Config.AccessToken)
	req.Header.Set("Content-Type", "application/json")
	if idempotencyKey != "" {
		req.Header.Set("X-Idempotency-Key", idempotencyKey)
	}

	resp, err := mp.Client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return err
	}
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return fmt.Errorf("mercado pago %s %s: status %d: %s", method, path, resp.StatusCode, string(raw))
	}
	if out != nil {
		return json.Unmarshal(raw, out)
	}
	return nil
}

// CreatePreference cria a preferência de checkout para o pedido
func (mp *MercadoPago) CreatePreference(order model.Order, payerEmail string) (*model.MPPreference, error) {
	items := make([]model.MPPreferenceItem, 0, len(order.Items))
	for _, item := range order.Items {
		items = append(items, model.MPPreferenceItem{
			ID:          strconv.FormatUint(uint64(item.ProductId), 10),
			Title:       item.Title,
			Description: item.Title,
			PictureUrl:  item.Image,
			CategoryId:  "others",
			Quantity:    item.Quantity,
			UnitPrice:   item.Price,
		})
	}

	payer := model.MPPreferencePayer{Name: order.CustomerName, Email: payerEmail}
	if order.CustomerPhone != nil && *order.CustomerPhone != "" {
		payer.Phone = &struct {
			Number string `json:"number"`
		}{Number: *order.CustomerPhone}
	}

	request := model.MPPreferenceRequest{
		Items: items,
		Payer: payer,
		BackUrls: model.MPBackUrls{
			Success: mp.Config.FrontendURL + "/pedido/" + order.OrderNumber + "/sucesso",
			Failure: mp.Config.FrontendURL + "/pedido/" + order.OrderNumber + "/erro",
			Pending: mp.Config.FrontendURL + "/pedido/" + order.OrderNumber + "/pendente",
		},
		AutoReturn:          "approved",
		ExternalReference:   order.OrderNumber,
		NotificationUrl:     mp.Config.WebhookURL,
		StatementDescriptor: "CRIATIVIDADEEAMOR",
		PaymentMethods: model.MPPaymentMethods{
			ExcludedPaymentMethods: []any{},
			ExcludedPaymentTypes:   []any{},
			Installments:           12,
		},
		Shipments: model.MPShipments{Cost: order.Shipping, Mode: "not_specified"},
	}

	var preference model.MPPreference
	if err := mp.doRequest(http.MethodPost, "/checkout/preferences", request, &preference, uuid.NewString()); err != nil {
		return nil, err
	}
	return &preference, nil
}

// GetPayment consulta o detalhe de um pagamento pelo id do Mercado Pago
func (mp *MercadoPago) GetPayment(paymentId string) (*model.MPPayment, error) {
	var payment model.MPPayment
	if err := mp.doRequest(http.MethodGet, "/v1/payments/"+paymentId, nil, &payment, ""); err != nil {
		return nil, err
	}
	return &payment, nil
}

// RefundPayment solicita reembolso total de um pagamento
func (mp *MercadoPago) RefundPayment(paymentId string) error {
	return mp.doRequest(http.MethodPost, "/v1/payments/"+paymentId+"/refunds", model.MPRefundRequest{}, nil, uuid.NewString())
}

// MapGatewayStatus converte o status do gateway para o status interno de pagamento
func MapGatewayStatus(gatewayStatus string) string {
	switch gatewayStatus {
	case "approved", "authorized":
		return constants.PAYMENT_APPROVED
	case "in_process", "in_mediation":
		return constants.PAYMENT_PROCESSING
	case "pending":
		return constants.PAYMENT_PENDING
	case "rejected":
		return constants.PAYMENT_REJECTED
	case "cancelled":
		return constants.PAYMENT_CANCELLED
	case "refunded", "charged_back":
		return constants.PAYMENT_REFUNDED
	default:
		return constants.PAYMENT_PENDING
	}
}

// VerifyWebhookSignature valida a assinatura x-signature do webhook.
// Sem segredo configurado a checagem é permissiva (ambiente de sandbox).
func (mp *MercadoPago) VerifyWebhookSignature(xSignature, xRequestId, dataId string) bool {
	if mp.Config.WebhookSecret == "" {
		return true
	}
	if xSignature == "" {
		return false
	}

	var ts, v1 string
	for _, part := range strings.Split(xSignature, ",") {
		kv := strings.SplitN(strings.TrimSpace(part), "=", 2)
		if len(kv) != 2 {
			continue
		}
		switch kv[0] {
		case "ts":
			ts = kv[1]
		case "v1":
			v1 = kv[1]
		}
	}
	if ts == "" || v1 == "" {
		return false
	}

	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", strings.ToLower(dataId), xRequestId, ts)
	mac := hmac.New(sha256.New, []byte(mp.Config.WebhookSecret))
	mac.Write([]byte(manifest))
	expected := hex.EncodeToString(mac.Sum(nil))

	return hmac.Equal([]byte(expected), []byte(v1))
}
