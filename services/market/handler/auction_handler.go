package handler

import (
	"fmt"
	"net/http"

	"harvest-market/internal/ledger"
	"harvest-market/internal/marketerrors"
	"harvest-market/internal/models"
	"harvest-market/services/market/helpers"
	"harvest-market/utils"

	"github.com/gin-gonic/gin"
)

// OpenAuctionHandler handles POST /listings
func (h *MarketHandler) OpenAuctionHandler(c *gin.Context) {
	var req helpers.OpenAuctionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "OpenAuctionHandler", err)
		return
	}
	extra, err := models.NewFields(req.Attributes)
	if err != nil {
		helpers.HandleBindError(c, "OpenAuctionHandler", err)
		return
	}
	for k := range extra {
		if models.IsReserved(k) {
			helpers.HandleBindError(c, "OpenAuctionHandler", fmt.Errorf("attributes: %q: %w", k, marketerrors.ErrReservedField))
			return
		}
	}

	producer := resolutionFrom(c)
	listingID, auctionID, err := h.auctions.OpenAuction(c.Request.Context(), producer.PrincipalID, ledger.Listing{
		Title:       req.Title,
		Description: req.Description,
		Quantity:    req.Quantity,
		Unit:        req.Unit,
		BasePrice:   req.BasePrice,
		Extra:       extra,
	})
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("OpenAuctionHandler: failed to open auction", map[string]any{
			"handler":     "OpenAuctionHandler",
			"producer_id": producer.PrincipalID,
			"error":       err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusCreated, helpers.OpenAuctionResponse{ListingID: listingID, AuctionID: auctionID}, "auction opened successfully")
	helpers.LogSuccess("OpenAuctionHandler", "auction opened successfully", map[string]any{
		"listing_id":  listingID,
		"auction_id":  auctionID,
		"producer_id": producer.PrincipalID,
	})
}

// ListListingsHandler handles GET /listings, optionally filtered by ?producer_id=
func (h *MarketHandler) ListListingsHandler(c *gin.Context) {
	h.writeListings(c, "ListListingsHandler", c.Query("producer_id"))
}

// MyListingsHandler handles GET /listings/mine for the signed-in producer
func (h *MarketHandler) MyListingsHandler(c *gin.Context) {
	h.writeListings(c, "MyListingsHandler", resolutionFrom(c).PrincipalID)
}

func (h *MarketHandler) writeListings(c *gin.Context, handlerName, producerID string) {
	listings, err := h.auctions.Listings(c.Request.Context(), producerID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn(handlerName+": error listing listings", map[string]any{"producer_id": producerID, "error": err.Error()})
		return
	}
	if listings == nil {
		listings = []models.Listing{}
	}

	utils.JSONResponse(c, http.StatusOK, listings, "listings retrieved successfully")
}

// ListAuctionsHandler handles GET /auctions
func (h *MarketHandler) ListAuctionsHandler(c *gin.Context) {
	auctions, err := h.auctions.ActiveAuctions(c.Request.Context())
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("ListAuctionsHandler: error listing auctions", map[string]any{"error": err.Error()})
		return
	}

	if auctions == nil {
		auctions = []models.Auction{}
	}

	utils.JSONResponse(c, http.StatusOK, auctions, "auctions retrieved successfully")
}

// GetAuctionHandler handles GET /auctions/:auction_id
func (h *MarketHandler) GetAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	auction, err := h.auctions.GetAuction(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetAuctionHandler: error retrieving auction", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, auction, "auction retrieved successfully")
}

// GetBidsByAuctionHandler handles GET /auctions/:auction_id/bids
func (h *MarketHandler) GetBidsByAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bids, err := h.auctions.BidHistory(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("GetBidsByAuctionHandler: error retrieving bids", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	resp := make([]helpers.BidResponse, 0, len(bids))
	for _, b := range bids {
		resp = append(resp, helpers.NewBidResponse(b.AuctionID, models.BidSummary{
			BidID:     b.BidID,
			BidderID:  b.BidderID,
			Amount:    b.Amount,
			Timestamp: b.Timestamp,
		}))
	}

	utils.JSONResponse(c, http.StatusOK, resp, "bids retrieved successfully")
	helpers.LogSuccess("GetBidsByAuctionHandler", "bids retrieved successfully", map[string]any{
		"auction_id": auctionID,
		"count":      len(resp),
	})
}

// GetWinningBidHandler handles GET /auctions/:auction_id/winning
func (h *MarketHandler) GetWinningBidHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	bid, err := h.auctions.WinningBid(c.Request.Context(), auctionID)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Info("GetWinningBidHandler: no winning bid", map[string]any{"auction_id": auctionID, "error": err.Error()})
		return
	}

	utils.JSONResponse(c, http.StatusOK, helpers.NewBidResponse(auctionID, bid), "winning bid retrieved successfully")
}

// PlaceBidHandler handles POST /auctions/:auction_id/bids
func (h *MarketHandler) PlaceBidHandler(c *gin.Context) {
	var req helpers.PlaceBidRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		helpers.HandleBindError(c, "PlaceBidHandler", err)
		return
	}

	auctionID := c.Param("auction_id")
	bidder := resolutionFrom(c)
	bidID, err := h.auctions.PlaceBid(c.Request.Context(), auctionID, bidder.PrincipalID, req.Amount)
	if err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Error("PlaceBidHandler: failed to place bid", map[string]any{
			"handler":    "PlaceBidHandler",
			"auction_id": auctionID,
			"bidder_id":  bidder.PrincipalID,
			"error":      err.Error(),
		})
		return
	}

	resp := helpers.BidResponse{
		BidID:     bidID,
		AuctionID: auctionID,
		BidderID:  bidder.PrincipalID,
		Amount:    req.Amount,
	}

	utils.JSONResponse(c, http.StatusCreated, resp, "bid recorded successfully")
	helpers.LogSuccess("PlaceBidHandler", "bid recorded successfully", map[string]any{
		"bid_id":     bidID,
		"auction_id": auctionID,
		"bidder_id":  bidder.PrincipalID,
		"amount":     req.Amount,
	})
}

// EndAuctionHandler handles POST /auctions/:auction_id/end
func (h *MarketHandler) EndAuctionHandler(c *gin.Context) {
	auctionID := c.Param("auction_id")
	producer := resolutionFrom(c)
	if err := h.auctions.EndAuction(c.Request.Context(), auctionID, producer.PrincipalID); err != nil {
		status, message := helpers.MapErrorToHTTP(err)
		utils.JSONError(c, status, fmt.Errorf("%s: %w", message, err), message)
		utils.Warn("EndAuctionHandler: failed to end auction", map[string]any{
			"auction_id":  auctionID,
			"producer_id": producer.PrincipalID,
			"error":       err.Error(),
		})
		return
	}

	utils.JSONResponse(c, http.StatusOK, gin.H{"auction_id": auctionID, "status": models.AuctionEnded}, "auction ended successfully")
	helpers.LogSuccess("EndAuctionHandler", "auction ended successfully", map[string]any{
		"auction_id":  auctionID,
		"producer_id": producer.PrincipalID,
	})
}
