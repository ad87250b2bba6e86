package sales

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/finsight-pos/finsight-pos/internal/platform/httpx"
)

func TestCreateSaleRequestDecodesClientBody(t *testing.T) {
	body := `{"items":[{"product_id":1,"quantity":2}],"total_amount":50000,"payment_method":"cash","cash_amount":60000}`
	r := httptest.NewRequest(http.MethodPost, "/transactions", strings.NewReader(body))

	var req CreateSaleRequest
	require.NoError(t, httpx.DecodeJSON(r, &req))
	require.Len(t, req.Items, 1)
	require.Equal(t, int64(1), req.Items[0].ProductID)
	require.InDelta(t, 50000, req.Total, 0.001)
	require.Equal(t, PaymentCash, req.PaymentMethod)
	require.NotNil(t, req.CashReceived)
	require.InDelta(t, 60000, *req.CashReceived, 0.001)
}

func TestSaleResponseFieldNames(t *testing.T) {
	cash := 60000.0
	change := 10000.0
	sale := Sale{
		Total:         50000,
		PaymentMethod: PaymentCash,
		CashReceived:  &cash,
		ChangeDue:     &change,
		Status:        StatusCompleted,
		Items:         []LineItem{{Price: 25000, PurchasePrice: 15000, Quantity: 2, Subtotal: 50000}},
	}

	payload, err := json.Marshal(sale)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(payload, &decoded))
	require.Contains(t, decoded, "total_amount")
	require.Contains(t, decoded, "cash_amount")
	require.Contains(t, decoded, "change_amount")
	require.Equal(t, "completed", decoded["status"])

	items := decoded["items"].([]any)
	item := items[0].(map[string]any)
	require.Contains(t, item, "buy_price")
	require.InDelta(t, 15000, item["buy_price"].(float64), 0.001)
}
