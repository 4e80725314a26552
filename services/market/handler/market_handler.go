package handler

//go:generate mockgen -source=market_handler.go -destination=mock_services.go -package=handler

import (
	"context"

	"harvest-market/internal/accounts"
	"harvest-market/internal/auth"
	"harvest-market/internal/ledger"
	"harvest-market/internal/models"
	"harvest-market/internal/session"
)

type AccountService interface {
	RegisterProducer(ctx context.Context, sess accounts.Session, identifier, credential string, profile models.Fields) (models.Resolution, error)
	RegisterPurchaser(ctx context.Context, sess accounts.Session, identifier, credential string, profile models.Fields) (models.Resolution, error)
	Login(ctx context.Context, sess accounts.Session, identifier, credential string) (models.Resolution, error)
	WhoAmI(ctx context.Context, sess accounts.Session) (models.Resolution, error)
	Logout(sess accounts.Session)
}

type AuctionService interface {
	OpenAuction(ctx context.Context, producerID string, listing ledger.Listing) (string, string, error)
	PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (string, error)
	EndAuction(ctx context.Context, auctionID, producerID string) error
	GetAuction(ctx context.Context, auctionID string) (models.Auction, error)
	ActiveAuctions(ctx context.Context) ([]models.Auction, error)
	Listings(ctx context.Context, producerID string) ([]models.Listing, error)
	BidHistory(ctx context.Context, auctionID string) ([]models.Bid, error)
	WinningBid(ctx context.Context, auctionID string) (models.BidSummary, error)
}

// SessionTable holds the server-side session of every connected client
type SessionTable interface {
	Open() (string, *session.Manager)
	Get(id string) (*session.Manager, bool)
	Close(id string)
}

// TokenIssuer binds bearer tokens to session ids
type TokenIssuer interface {
	Issue(sessionID, principalID string) (string, error)
	Parse(token string) (auth.Claims, error)
}

// Gin context keys set by the session middleware
const (
	ctxSession    = "session"
	ctxSessionID  = "session_id"
	ctxResolution = "resolution"
)

type MarketHandler struct {
	accounts AccountService
	auctions AuctionService
	sessions SessionTable
	tokens   TokenIssuer
}

func NewMarketHandler(accounts AccountService, auctions AuctionService, sessions SessionTable, tokens TokenIssuer) *MarketHandler {
	return &MarketHandler{
		accounts: accounts,
		auctions: auctions,
		sessions: sessions,
		tokens:   tokens,
	}
}
