// Package ledger maintains auctions: an append-only bid history in the bids
// collection plus the currentPrice aggregate and bid summaries on the auction
// document.
//
// A bid is written in two steps, bid record first and auction update second.
// The store has no multi-document transactions, so a failure between the
// steps leaves an unreferenced bid record (ErrPartialLedgerWrite) and never a
// summary that points at a missing bid.
package ledger

import (
	"context"
	"errors"
	"fmt"
	"math"
	"sort"
	"sync"
	"time"

	"harvest-market/internal/marketerrors"
	"harvest-market/internal/metrics"
	"harvest-market/internal/models"
	"harvest-market/internal/repository"
	"harvest-market/utils"
)

// Listing is the producer input for opening an auction
type Listing struct {
	Title       string
	Description string
	Quantity    float64
	Unit        string
	BasePrice   float64
	Extra       models.Fields
}

// Ledger is the auction service
type Ledger struct {
	store repository.DocumentStore
	now   func() time.Time

	mu    sync.Mutex
	locks map[string]*auctionLock
}

// auctionLock is dropped from the table once no caller holds or waits for it
type auctionLock struct {
	mu   sync.Mutex
	refs int
}

// NewLedger creates a ledger over store. now defaults to the UTC wall clock.
func NewLedger(store repository.DocumentStore, now func() time.Time) *Ledger {
	if now == nil {
		now = func() time.Time { return time.Now().UTC() }
	}
	return &Ledger{
		store: store,
		now:   now,
		locks: make(map[string]*auctionLock),
	}
}

func (l *Ledger) lock(auctionID string) func() {
	l.mu.Lock()
	e, ok := l.locks[auctionID]
	if !ok {
		e = &auctionLock{}
		l.locks[auctionID] = e
	}
	e.refs++
	l.mu.Unlock()

	e.mu.Lock()
	return func() {
		e.mu.Unlock()

		l.mu.Lock()
		e.refs--
		if e.refs == 0 {
			delete(l.locks, auctionID)
		}
		l.mu.Unlock()
	}
}

// heldLocks reports how many auctions currently have a lock entry.
func (l *Ledger) heldLocks() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return len(l.locks)
}

// PlaceBid validates and records a bid, then raises the auction's current price
func (l *Ledger) PlaceBid(ctx context.Context, auctionID, bidderID string, amount float64) (string, error) {
	if auctionID == "" || bidderID == "" {
		metrics.ObserveBid("invalid")
		return "", fmt.Errorf("ledger: %w - missing auctionID or bidderID", marketerrors.ErrInvalidBid)
	}
	if math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		metrics.ObserveBid("invalid")
		return "", fmt.Errorf("ledger: %w - amount must be a positive number", marketerrors.ErrInvalidBid)
	}

	unlock := l.lock(auctionID)
	defer unlock()

	doc, err := l.store.GetByID(ctx, models.CollectionAuctions, auctionID)
	if err != nil {
		metrics.ObserveBid(outcomeFor(err))
		return "", fmt.Errorf("ledger: load auction %s: %w", auctionID, err)
	}
	auction := models.AuctionFromDocument(doc)

	if auction.Status != models.AuctionActive {
		metrics.ObserveBid("closed")
		return "", fmt.Errorf("ledger: auction %s is %q: %w", auctionID, auction.Status, marketerrors.ErrAuctionClosed)
	}
	current := math.Max(auction.CurrentPrice, auction.BasePrice)
	if amount <= current {
		metrics.ObserveBid("too_low")
		return "", fmt.Errorf("ledger: %w - current price is %.2f", marketerrors.ErrBidTooLow, current)
	}

	start := time.Now()
	defer func() { metrics.LedgerWriteDuration.Observe(time.Since(start).Seconds()) }()

	ts := l.now()
	bidID, err := l.store.Insert(ctx, models.CollectionBids, models.Fields{
		"auctionId": models.String(auctionID),
		"bidderId":  models.String(bidderID),
		"amount":    models.Number(amount),
		"timestamp": models.String(ts.Format(time.RFC3339Nano)),
	})
	if err != nil {
		metrics.ObserveBid("error")
		return "", fmt.Errorf("ledger: record bid on %s by %s: %w", auctionID, bidderID, err)
	}

	summary := models.BidSummary{BidID: bidID, BidderID: bidderID, Amount: amount, Timestamp: ts}
	err = l.store.Update(ctx, models.CollectionAuctions, auctionID, models.Patch{
		"currentPrice": models.Set(models.Number(amount)),
		"bids":         models.ArrayUnion(summary.Value()),
	})
	if err != nil {
		metrics.ObserveBid("partial_write")
		utils.Error("ledger: bid recorded without auction update", map[string]any{
			"auction_id": auctionID,
			"bid_id":     bidID,
			"bidder_id":  bidderID,
			"amount":     amount,
			"error":      err.Error(),
		})
		return bidID, fmt.Errorf("ledger: %w - orphaned bid %s: %w", marketerrors.ErrPartialLedgerWrite, bidID, err)
	}

	metrics.ObserveBid("accepted")
	utils.Info("ledger: bid accepted", map[string]any{
		"auction_id": auctionID,
		"bid_id":     bidID,
		"bidder_id":  bidderID,
		"amount":     amount,
	})
	return bidID, nil
}

func outcomeFor(err error) string {
	if errors.Is(err, marketerrors.ErrNotFound) {
		return "not_found"
	}
	return "error"
}

// OpenAuction stores a listing for producerID and the auction that sells it
func (l *Ledger) OpenAuction(ctx context.Context, producerID string, listing Listing) (listingID, auctionID string, err error) {
	if producerID == "" {
		return "", "", fmt.Errorf("ledger: %w - missing producerID", marketerrors.ErrInvalidIdentifier)
	}
	if math.IsNaN(listing.BasePrice) || math.IsInf(listing.BasePrice, 0) {
		return "", "", fmt.Errorf("ledger: %w - base price must be finite", marketerrors.ErrSchemaViolation)
	}

	fields := listing.Extra.Clone()
	if fields == nil {
		fields = models.Fields{}
	}
	fields["producerId"] = models.String(producerID)
	fields["title"] = models.String(listing.Title)
	fields["description"] = models.String(listing.Description)
	fields["quantity"] = models.Number(listing.Quantity)
	fields["unit"] = models.String(listing.Unit)
	fields["basePrice"] = models.Number(listing.BasePrice)
	fields["status"] = models.String(models.AuctionActive)

	listingID, err = l.store.Insert(ctx, models.CollectionListings, fields)
	if err != nil {
		return "", "", fmt.Errorf("ledger: store listing: %w", err)
	}

	auctionID, err = l.store.Insert(ctx, models.CollectionAuctions, models.Fields{
		"listingId":    models.String(listingID),
		"producerId":   models.String(producerID),
		"title":        models.String(listing.Title),
		"basePrice":    models.Number(listing.BasePrice),
		"currentPrice": models.Number(listing.BasePrice),
		"status":       models.String(models.AuctionActive),
		"bids":         models.Array(),
	})
	if err != nil {
		return listingID, "", fmt.Errorf("ledger: open auction for listing %s: %w", listingID, err)
	}

	metrics.AuctionsOpenedTotal.Inc()
	utils.Info("ledger: auction opened", map[string]any{
		"auction_id":  auctionID,
		"listing_id":  listingID,
		"producer_id": producerID,
		"base_price":  listing.BasePrice,
	})
	return listingID, auctionID, nil
}

// EndAuction closes an auction; only its producer may do so
func (l *Ledger) EndAuction(ctx context.Context, auctionID, producerID string) error {
	unlock := l.lock(auctionID)
	defer unlock()

	doc, err := l.store.GetByID(ctx, models.CollectionAuctions, auctionID)
	if err != nil {
		return fmt.Errorf("ledger: load auction %s: %w", auctionID, err)
	}
	if doc.StringField("producerId") != producerID {
		return fmt.Errorf("ledger: end auction %s: %w", auctionID, marketerrors.ErrForbidden)
	}
	if doc.StringField("status") == models.AuctionEnded {
		return nil
	}

	if err := l.store.Update(ctx, models.CollectionAuctions, auctionID, models.Patch{
		"status": models.Set(models.String(models.AuctionEnded)),
	}); err != nil {
		return fmt.Errorf("ledger: end auction %s: %w", auctionID, err)
	}
	return nil
}

// GetAuction returns the typed auction
func (l *Ledger) GetAuction(ctx context.Context, auctionID string) (models.Auction, error) {
	doc, err := l.store.GetByID(ctx, models.CollectionAuctions, auctionID)
	if err != nil {
		return models.Auction{}, fmt.Errorf("ledger: get auction %s: %w", auctionID, err)
	}
	return models.AuctionFromDocument(doc), nil
}

// ActiveAuctions lists auctions still accepting bids
func (l *Ledger) ActiveAuctions(ctx context.Context) ([]models.Auction, error) {
	docs, err := l.store.Query(ctx, models.CollectionAuctions, "status", models.String(models.AuctionActive))
	if err != nil {
		return nil, fmt.Errorf("ledger: list active auctions: %w", err)
	}
	out := make([]models.Auction, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.AuctionFromDocument(d))
	}
	return out, nil
}

// Listings returns the listings of producerID, or every listing when producerID is empty
func (l *Ledger) Listings(ctx context.Context, producerID string) ([]models.Listing, error) {
	var (
		docs []models.Document
		err  error
	)
	if producerID == "" {
		docs, err = l.store.GetAll(ctx, models.CollectionListings)
	} else {
		docs, err = l.store.Query(ctx, models.CollectionListings, "producerId", models.String(producerID))
	}
	if err != nil {
		return nil, fmt.Errorf("ledger: list listings: %w", err)
	}

	out := make([]models.Listing, 0, len(docs))
	for _, d := range docs {
		out = append(out, models.ListingFromDocument(d))
	}
	return out, nil
}

// BidHistory returns every bid record of an auction, oldest first
func (l *Ledger) BidHistory(ctx context.Context, auctionID string) ([]models.Bid, error) {
	if _, err := l.store.GetByID(ctx, models.CollectionAuctions, auctionID); err != nil {
		return nil, fmt.Errorf("ledger: bid history of %s: %w", auctionID, err)
	}

	docs, err := l.store.Query(ctx, models.CollectionBids, "auctionId", models.String(auctionID))
	if err != nil {
		return nil, fmt.Errorf("ledger: bid history of %s: %w", auctionID, err)
	}
	bids := make([]models.Bid, 0, len(docs))
	for _, d := range docs {
		bids = append(bids, models.BidFromDocument(d))
	}
	sort.SliceStable(bids, func(i, j int) bool { return bids[i].Timestamp.Before(bids[j].Timestamp) })
	return bids, nil
}

// WinningBid returns the highest recorded bid; the earliest wins ties
func (l *Ledger) WinningBid(ctx context.Context, auctionID string) (models.BidSummary, error) {
	auction, err := l.GetAuction(ctx, auctionID)
	if err != nil {
		return models.BidSummary{}, err
	}
	if len(auction.Bids) == 0 {
		return models.BidSummary{}, fmt.Errorf("ledger: winning bid of %s: %w", auctionID, marketerrors.ErrNoBids)
	}

	winning := auction.Bids[0]
	for _, b := range auction.Bids[1:] {
		if b.Amount > winning.Amount || (b.Amount == winning.Amount && b.Timestamp.Before(winning.Timestamp)) {
			winning = b
		}
	}
	return winning, nil
}

// OrphanedBids lists bid records with no summary on the auction, the residue
// of partial ledger writes
func (l *Ledger) OrphanedBids(ctx context.Context, auctionID string) ([]models.Bid, error) {
	auction, err := l.GetAuction(ctx, auctionID)
	if err != nil {
		return nil, err
	}
	history, err := l.BidHistory(ctx, auctionID)
	if err != nil {
		return nil, err
	}

	referenced := make(map[string]bool, len(auction.Bids))
	for _, b := range auction.Bids {
		referenced[b.BidID] = true
	}

	orphans := make([]models.Bid, 0)
	for _, b := range history {
		if !referenced[b.BidID] {
			orphans = append(orphans, b)
		}
	}
	return orphans, nil
}
