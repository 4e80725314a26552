package helpers

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"harvest-market/internal/marketerrors"
	"harvest-market/internal/models"
	"harvest-market/utils"

	"github.com/gin-gonic/gin"
)

// HandleBindError sends a standardized JSON error for binding failures
func HandleBindError(c *gin.Context, handlerName string, err error) {
	wrappedErr := fmt.Errorf("invalid request payload: %w", err)
	utils.JSONError(c, http.StatusBadRequest, wrappedErr, "invalid request payload")
	utils.Warn(handlerName+": binding error", map[string]any{"error": err.Error()})
}

// MapErrorToHTTP maps domain/service errors to HTTP status code and message
func MapErrorToHTTP(err error) (int, string) {
	switch {
	case errors.Is(err, marketerrors.ErrNotFound):
		return http.StatusNotFound, "resource not found"
	case errors.Is(err, marketerrors.ErrBidTooLow):
		return http.StatusConflict, "bid amount too low"
	case errors.Is(err, marketerrors.ErrAuctionClosed):
		return http.StatusConflict, "auction is closed"
	case errors.Is(err, marketerrors.ErrIdentifierTaken):
		return http.StatusConflict, "email already registered"
	case errors.Is(err, marketerrors.ErrRoleConflict):
		return http.StatusConflict, "email registered under another role"
	case errors.Is(err, marketerrors.ErrWeakCredential):
		return http.StatusBadRequest, "password too weak"
	case errors.Is(err, marketerrors.ErrInvalidBid):
		return http.StatusBadRequest, "invalid bid details"
	case errors.Is(err, marketerrors.ErrInvalidIdentifier):
		return http.StatusBadRequest, "invalid email"
	case errors.Is(err, marketerrors.ErrSchemaViolation):
		return http.StatusBadRequest, "invalid document"
	case errors.Is(err, marketerrors.ErrNoBids):
		return http.StatusNotFound, "no bids found for auction"
	case errors.Is(err, marketerrors.ErrNotAuthenticated):
		return http.StatusUnauthorized, "authentication required"
	case errors.Is(err, marketerrors.ErrForbidden):
		return http.StatusForbidden, "operation not permitted"
	default:
		return http.StatusInternalServerError, "internal server error"
	}
}

// LogSuccess is a small helper to standardize logging of successful operations
func LogSuccess(handlerName, message string, ctx map[string]any) {
	utils.Info(handlerName+": "+message, ctx)
}

// ProfileView renders a profile document as plain JSON data
func ProfileView(doc models.Document) map[string]any {
	if doc.ID == "" {
		return nil
	}
	out := doc.Fields.Plain()
	out["id"] = doc.ID
	return out
}

// NewBidResponse converts a bid summary into its response DTO
func NewBidResponse(auctionID string, b models.BidSummary) BidResponse {
	resp := BidResponse{
		BidID:     b.BidID,
		AuctionID: auctionID,
		BidderID:  b.BidderID,
		Amount:    b.Amount,
	}
	if !b.Timestamp.IsZero() {
		resp.Timestamp = b.Timestamp.UTC().Format(time.RFC3339Nano)
	}
	return resp
}
