package integrationtests

import (
	"net/http"
	"path/filepath"
	"testing"

	"harvest-market/internal/medium"
	"harvest-market/services/market/helpers"

	"github.com/stretchr/testify/require"
)

// Producer lists at 25; bids of 26, 24 and 28 arrive in order
func TestAuctionScenario(t *testing.T) {
	router := SetupTestRouter()
	producerToken, producerID := RegisterProducer(t, router, "ravi.kumar@example.com")
	buyerToken, buyerID := RegisterPurchaser(t, router, "farmfresh@example.com")
	auctionID := OpenAuction(t, router, producerToken, 25)

	bids := []struct {
		amount     float64
		wantStatus int
	}{
		{26, http.StatusCreated},
		{24, http.StatusConflict},
		{28, http.StatusCreated},
	}
	for _, b := range bids {
		_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids", buyerToken, helpers.PlaceBidRequest{Amount: b.amount})
		require.Equal(t, b.wantStatus, w.Code, w.Body.String())
	}

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	auction := data(t, resp)
	require.Equal(t, 28.0, auction["currentPrice"])
	require.Equal(t, producerID, auction["producerId"])
	summaries := auction["bids"].([]any)
	require.Len(t, summaries, 2)
	require.Equal(t, 26.0, summaries[0].(map[string]any)["amount"])
	require.Equal(t, 28.0, summaries[1].(map[string]any)["amount"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID+"/bids", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	history := resp["data"].([]any)
	require.Len(t, history, 2)
	require.Equal(t, buyerID, history[0].(map[string]any)["bidder_id"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID+"/winning", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 28.0, data(t, resp)["amount"])
}

func TestListings(t *testing.T) {
	router := SetupTestRouter()
	producerToken, producerID := RegisterProducer(t, router, "sita.devi@example.com")
	otherToken, _ := RegisterProducer(t, router, "arjun.singh@example.com")
	buyerToken, _ := RegisterPurchaser(t, router, "grainhouse@example.com")
	OpenAuction(t, router, producerToken, 45)
	OpenAuction(t, router, otherToken, 18)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/listings", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 2)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/listings/mine", producerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)
	mine := resp["data"].([]any)
	require.Len(t, mine, 1)
	require.Equal(t, producerID, mine[0].(map[string]any)["producerId"])
	require.Equal(t, 45.0, mine[0].(map[string]any)["basePrice"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/listings?producer_id="+producerID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Len(t, resp["data"].([]any), 1)

	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/listings/mine", buyerToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)
}

func TestRoleExclusivity(t *testing.T) {
	router := SetupTestRouter()
	RegisterProducer(t, router, "dual@example.com")

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/accounts/purchasers", "", helpers.RegisterPurchaserRequest{
		Email: "DUAL@example.com", Password: "market123", BusinessName: "Dual Traders",
	})
	require.Equal(t, http.StatusConflict, w.Code)
	require.Contains(t, resp["message"], "another role")

	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/accounts/producers", "", helpers.RegisterProducerRequest{
		Email: "dual@example.com", Password: "harvest123", FullName: "Someone Else",
	})
	require.Equal(t, http.StatusConflict, w.Code)
}

func TestRoleGuards(t *testing.T) {
	router := SetupTestRouter()
	producerToken, _ := RegisterProducer(t, router, "farmer@example.com")
	buyerToken, _ := RegisterPurchaser(t, router, "buyer@example.com")
	auctionID := OpenAuction(t, router, producerToken, 10)

	tests := []struct {
		name       string
		method     string
		url        string
		token      string
		body       any
		wantStatus int
	}{
		{"Purchaser_Cannot_List", http.MethodPost, "/listings", buyerToken, helpers.OpenAuctionRequest{Title: "x", Quantity: 1, BasePrice: 1}, http.StatusForbidden},
		{"Producer_Cannot_Bid", http.MethodPost, "/auctions/" + auctionID + "/bids", producerToken, helpers.PlaceBidRequest{Amount: 20}, http.StatusForbidden},
		{"Purchaser_Cannot_End", http.MethodPost, "/auctions/" + auctionID + "/end", buyerToken, nil, http.StatusForbidden},
		{"Anonymous_Cannot_Bid", http.MethodPost, "/auctions/" + auctionID + "/bids", "", helpers.PlaceBidRequest{Amount: 20}, http.StatusUnauthorized},
		{"Bid_On_Missing_Auction", http.MethodPost, "/auctions/missing/bids", buyerToken, helpers.PlaceBidRequest{Amount: 20}, http.StatusNotFound},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, w := ExecuteRequestAndParse(t, router, tt.method, tt.url, tt.token, tt.body)
			require.Equal(t, tt.wantStatus, w.Code, w.Body.String())
		})
	}
}

func TestEndAuction(t *testing.T) {
	router := SetupTestRouter()
	ownerToken, _ := RegisterProducer(t, router, "owner@example.com")
	otherToken, _ := RegisterProducer(t, router, "other@example.com")
	buyerToken, _ := RegisterPurchaser(t, router, "buyer@example.com")
	auctionID := OpenAuction(t, router, ownerToken, 10)

	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/end", otherToken, nil)
	require.Equal(t, http.StatusForbidden, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/end", ownerToken, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodPost, "/auctions/"+auctionID+"/bids", buyerToken, helpers.PlaceBidRequest{Amount: 50})
	require.Equal(t, http.StatusConflict, w.Code)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Empty(t, resp["data"])
}

func TestSessionLifecycle(t *testing.T) {
	router := SetupTestRouter()
	RegisterPurchaser(t, router, "buyer@example.com")

	_, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/sessions", "", helpers.LoginRequest{Email: "buyer@example.com", Password: "wrong-password"})
	require.Equal(t, http.StatusUnauthorized, w.Code)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/sessions", "", helpers.LoginRequest{Email: " Buyer@Example.com ", Password: "market123"})
	require.Equal(t, http.StatusOK, w.Code)
	login := data(t, resp)
	require.Equal(t, "purchaser", login["role"])
	token := login["token"].(string)

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/sessions/me", token, nil)
	require.Equal(t, http.StatusOK, w.Code)
	me := data(t, resp)
	require.Equal(t, login["principal_id"], me["principal_id"])
	require.Equal(t, "Farm Fresh Co.", me["profile"].(map[string]any)["businessName"])

	_, w = ExecuteRequestAndParse(t, router, http.MethodDelete, "/sessions", token, nil)
	require.Equal(t, http.StatusOK, w.Code)

	_, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/sessions/me", token, nil)
	require.Equal(t, http.StatusUnauthorized, w.Code)
}

// Data written by one process is visible to the next one over the same database
func TestPersistenceAcrossRestart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "market.db")

	first, err := medium.OpenSQLite(path)
	require.NoError(t, err)
	router := SetupTestRouterOn(first)
	producerToken, _ := RegisterProducer(t, router, "farmer@example.com")
	auctionID := OpenAuction(t, router, producerToken, 40)
	require.NoError(t, first.Close())

	second, err := medium.OpenSQLite(path)
	require.NoError(t, err)
	defer second.Close()
	router = SetupTestRouterOn(second)

	resp, w := ExecuteRequestAndParse(t, router, http.MethodPost, "/sessions", "", helpers.LoginRequest{Email: "farmer@example.com", Password: "harvest123"})
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, "producer", data(t, resp)["role"])

	resp, w = ExecuteRequestAndParse(t, router, http.MethodGet, "/auctions/"+auctionID, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	require.Equal(t, 40.0, data(t, resp)["basePrice"])
}
