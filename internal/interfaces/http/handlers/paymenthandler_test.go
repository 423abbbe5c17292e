package handlers

import (
	"bytes"
	"context"
	"crypto/hmac"
	"crypto/sha512"
	"encoding/hex"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/planhaus/planhaus/internal/application/payment/paymentgateway"
	paymentUsecases "github.com/planhaus/planhaus/internal/application/payment/usecases"
	catalogVO "github.com/planhaus/planhaus/internal/domain/catalog/valueobjects"
	"github.com/planhaus/planhaus/internal/domain/order"
	orderVO "github.com/planhaus/planhaus/internal/domain/order/valueobjects"
)

const testWebhookSecret = "sk_test_webhook"

func newProcessingOrder(t *testing.T, repo *fakeOrderRepo, gw *paymentgateway.MockGateway) (*order.Order, string) {
	t.Helper()

	ord, err := order.NewOrder(1, 1, catalogVO.TierStandard, orderVO.NewMoney(300000, "NGN"), "buyer@example.com")
	require.NoError(t, err)
	require.NoError(t, repo.Create(context.Background(), ord))

	resp, err := gw.Initialize(context.Background(), paymentgateway.InitializeRequest{
		OrderSID: ord.SID(),
		Email:    ord.PayerEmail(),
		Amount:   ord.Amount().AmountMinor(),
		Currency: ord.Amount().Currency(),
	})
	require.NoError(t, err)

	require.NoError(t, ord.MarkProcessing(resp.Reference))
	require.NoError(t, repo.Update(context.Background(), ord))

	return ord, resp.Reference
}

func setupPaymentRouter(t *testing.T, repo *fakeOrderRepo, gw *paymentgateway.MockGateway) *gin.Engine {
	t.Helper()

	confirmUC := paymentUsecases.NewConfirmPaymentUseCase(repo, gw, nil, nopLogger{})
	handler := NewPaymentHandler(nil, confirmUC, testWebhookSecret, "https://shop.planhaus.ng", nopLogger{})

	router := gin.New()
	router.GET("/payments/callback", handler.Callback)
	router.POST("/payments/webhook", handler.Webhook)
	return router
}

func signWebhook(body []byte) string {
	mac := hmac.New(sha512.New, []byte(testWebhookSecret))
	mac.Write(body)
	return hex.EncodeToString(mac.Sum(nil))
}

func TestPaymentHandler_WebhookSettlesOrder(t *testing.T) {
	repo := newFakeOrderRepo()
	gw := paymentgateway.NewMockGateway(paymentgateway.TransactionSuccess)
	ord, reference := newProcessingOrder(t, repo, gw)
	router := setupPaymentRouter(t, repo, gw)

	body := []byte(fmt.Sprintf(`{"event":"charge.success","data":{"reference":"%s"}}`, reference))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
	req.Header.Set("X-Paystack-Signature", signWebhook(body))
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	settled, err := repo.GetBySID(context.Background(), ord.SID())
	require.NoError(t, err)
	assert.Equal(t, orderVO.OrderStatusCompleted, settled.Status())
	assert.NotNil(t, settled.PaidAt())
}

func TestPaymentHandler_WebhookRejectsBadSignature(t *testing.T) {
	repo := newFakeOrderRepo()
	gw := paymentgateway.NewMockGateway(paymentgateway.TransactionSuccess)
	ord, reference := newProcessingOrder(t, repo, gw)
	router := setupPaymentRouter(t, repo, gw)

	body := []byte(fmt.Sprintf(`{"event":"charge.success","data":{"reference":"%s"}}`, reference))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader(body))
	req.Header.Set("X-Paystack-Signature", "deadbeef")
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)

	untouched, err := repo.GetBySID(context.Background(), ord.SID())
	require.NoError(t, err)
	assert.Equal(t, orderVO.OrderStatusProcessing, untouched.Status())
}

func TestPaymentHandler_WebhookMissingSignature(t *testing.T) {
	repo := newFakeOrderRepo()
	gw := paymentgateway.NewMockGateway(paymentgateway.TransactionSuccess)
	router := setupPaymentRouter(t, repo, gw)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/payments/webhook", bytes.NewReader([]byte(`{}`)))
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestPaymentHandler_CallbackRedirectsWithOutcome(t *testing.T) {
	repo := newFakeOrderRepo()
	gw := paymentgateway.NewMockGateway(paymentgateway.TransactionSuccess)
	ord, reference := newProcessingOrder(t, repo, gw)
	router := setupPaymentRouter(t, repo, gw)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/callback?reference="+url.QueryEscape(reference), nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "shop.planhaus.ng", location.Host)
	assert.Equal(t, "completed", location.Query().Get("status"))
	assert.Equal(t, ord.SID(), location.Query().Get("order_id"))
}

func TestPaymentHandler_CallbackWithoutReference(t *testing.T) {
	router := setupPaymentRouter(t, newFakeOrderRepo(), paymentgateway.NewMockGateway(paymentgateway.TransactionSuccess))

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/payments/callback", nil)
	router.ServeHTTP(w, req)

	require.Equal(t, http.StatusFound, w.Code)

	location, err := url.Parse(w.Header().Get("Location"))
	require.NoError(t, err)
	assert.Equal(t, "missing_reference", location.Query().Get("status"))
}
