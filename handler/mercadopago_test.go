package handler

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"loja_manager/constants"
	"loja_manager/model"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapGatewayStatus(t *testing.T) {
	cases := []struct {
		gateway  string
		expected string
	}{
		{"approved", constants.PAYMENT_APPROVED},
		{"authorized", constants.PAYMENT_APPROVED},
		{"in_process", constants.PAYMENT_PROCESSING},
		{"in_mediation", constants.PAYMENT_PROCESSING},
		{"pending", constants.PAYMENT_PENDING},
		{"rejected", constants.PAYMENT_REJECTED},
		{"cancelled", constants.PAYMENT_CANCELLED},
		{"refunded", constants.PAYMENT_REFUNDED},
		{"charged_back", constants.PAYMENT_REFUNDED},
		{"algo_desconhecido", constants.PAYMENT_PENDING},
		{"", constants.PAYMENT_PENDING},
	}

	for _, tc := range cases {
		t.Run(tc.gateway, func(t *testing.T) {
			assert.Equal(t, tc.expected, MapGatewayStatus(tc.gateway))
		})
	}
}

func signWebhook(secret, dataId, requestId, ts string) string {
	manifest := fmt.Sprintf("id:%s;request-id:%s;ts:%s;", dataId, requestId, ts)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(manifest))
	return fmt.Sprintf("ts=%s,v1=%s", ts, hex.EncodeToString(mac.Sum(nil)))
}

func TestVerifyWebhookSignature(t *testing.T) {
	mp := &MercadoPago{Config: model.MPConfig{WebhookSecret: "segredo"}}

	signature := signWebhook("segredo", "12345", "req-1", "1700000000")
	assert.True(t, mp.VerifyWebhookSignature(signature, "req-1", "12345"))

	assert.False(t, mp.VerifyWebhookSignature(signature, "req-2", "12345"), "request id diferente")
	assert.False(t, mp.VerifyWebhookSignature(signature, "req-1", "67890"), "data id diferente")
	assert.False(t, mp.VerifyWebhookSignature("ts=1700000000,v1=deadbeef", "req-1", "12345"))
	assert.False(t, mp.VerifyWebhookSignature("", "req-1", "12345"))
	assert.False(t, mp.VerifyWebhookSignature("lixo", "req-1", "12345"))
}

func TestVerifyWebhookSignatureWithoutSecret(t *testing.T) {
	mp := &MercadoPago{Config: model.MPConfig{}}
	assert.True(t, mp.VerifyWebhookSignature("", "", "12345"), "sem segredo configurado a checagem é permissiva")
}

func TestCreatePreferenceSendsIdempotencyKey(t *testing.T) {
	var gotKey string
	var gotBody model.MPPreferenceRequest

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/checkout/preferences", r.URL.Path)
		gotKey = r.Header.Get("X-Idempotency-Key")
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, `{"id":"pref-1","init_point":"https://mp/init","sandbox_init_point":"https://mp/sandbox"}`)
	}))
	defer server.Close()

	t.Setenv("MERCADO_PAGO_BASE_URL", server.URL)
	t.Setenv("FRONTEND_URL", "https://loja.test")

	order := model.Order{
		OrderNumber:  "PED-ABC12345",
		CustomerName: "Lia Nunes",
		Items: model.OrderItemList{
			{ProductId: 3, Title: "Planner 2026", Price: 59.9, Quantity: 1},
		},
		Shipping: 12.5,
		Total:    72.4,
	}

	mp := NewMercadoPago()
	preference, err := mp.CreatePreference(order, "lia@test.local")
	require.NoError(t, err)

	assert.Equal(t, "pref-1", preference.ID)
	assert.Equal(t, "https://mp/init", preference.InitPoint)
	assert.NotEmpty(t, gotKey, "toda preferência leva X-Idempotency-Key")
	assert.Equal(t, "PED-ABC12345", gotBody.ExternalReference)
	require.Len(t, gotBody.Items, 1)
	assert.Equal(t, "Planner 2026", gotBody.Items[0].Title)
	assert.InDelta(t, 12.5, gotBody.Shipments.Cost, 0.001)
	assert.Contains(t, gotBody.BackUrls.Success, "https://loja.test/pedido/PED-ABC12345")
}
