package integrationtests

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"harvest-market/internal/accounts"
	"harvest-market/internal/auth"
	"harvest-market/internal/ledger"
	"harvest-market/internal/medium"
	"harvest-market/internal/repository"
	"harvest-market/internal/schema"
	"harvest-market/internal/server"
	"harvest-market/internal/session"
	handler "harvest-market/services/market/handler"
	"harvest-market/services/market/helpers"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// SetupTestRouter initializes the router over an in-memory medium for integration testing.
func SetupTestRouter() *gin.Engine {
	return SetupTestRouterOn(medium.NewMemory())
}

// SetupTestRouterOn initializes the full stack over the given medium.
func SetupTestRouterOn(m medium.Medium) *gin.Engine {
	gin.SetMode(gin.TestMode)
	store := repository.NewStore(m, "market", schema.StoreOptions()...)
	h := handler.NewMarketHandler(
		accounts.NewService(store),
		ledger.NewLedger(store, nil),
		session.NewRegistry(store, session.Policy{HashCost: bcrypt.MinCost}, session.WithTTL(time.Hour)),
		auth.NewIssuer("integration-secret", time.Hour),
	)
	return server.SetupRouter(h)
}

// ExecuteRequestAndParse executes an HTTP request on the given router and parses the response
func ExecuteRequestAndParse(t *testing.T, router *gin.Engine, method, url, token string, body any) (map[string]any, *httptest.ResponseRecorder) {
	t.Helper()
	var reqBody []byte
	var err error

	switch v := body.(type) {
	case nil:
	case []byte:
		reqBody = v
	default:
		reqBody, err = json.Marshal(v)
		if err != nil {
			t.Fatalf("failed to marshal body: %v", err)
		}
	}

	w := httptest.NewRecorder()
	req := httptest.NewRequest(method, url, bytes.NewReader(reqBody))
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	router.ServeHTTP(w, req)

	var resp map[string]any
	if len(w.Body.Bytes()) > 0 {
		if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
			t.Fatalf("failed to unmarshal response: %v", err)
		}
	}
	return resp, w
}

// data returns the envelope's data object
func data(t *testing.T, resp map[string]any) map[string]any {
	t.Helper()
	d, ok := resp["data"].(map[string]any)
	require.True(t, ok, "response has no data object: %v", resp)
	return d
}

// RegisterProducer registers a producer and returns its token and principal id.
func RegisterProducer(t *testing.T, router *gin.Engine, email string) (string, string) {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/accounts/producers", "", helpers.RegisterProducerRequest{
		Email:        email,
		Password:     "harvest123",
		FullName:     "Ravi Kumar",
		FarmLocation: "Village Rampur, Punjab",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	d := data(t, resp)
	return d["token"].(string), d["principal_id"].(string)
}

// RegisterPurchaser registers a purchaser and returns its token and principal id.
func RegisterPurchaser(t *testing.T, router *gin.Engine, email string) (string, string) {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/accounts/purchasers", "", helpers.RegisterPurchaserRequest{
		Email:        email,
		Password:     "market123",
		BusinessName: "Farm Fresh Co.",
		BusinessType: "wholesaler",
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	d := data(t, resp)
	return d["token"].(string), d["principal_id"].(string)
}

// OpenAuction creates a listing as the producer behind token and returns the auction id.
func OpenAuction(t *testing.T, router *gin.Engine, token string, basePrice float64) string {
	t.Helper()
	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/listings", token, helpers.OpenAuctionRequest{
		Title:     "Organic Wheat",
		Quantity:  500,
		Unit:      "kg",
		BasePrice: basePrice,
	})
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return data(t, resp)["auction_id"].(string)
}
