package models

import "time"

// Collection names used by the marketplace
const (
	CollectionProducers  = "producers"
	CollectionPurchasers = "purchasers"
	CollectionListings   = "listings"
	CollectionAuctions   = "auctions"
	CollectionBids       = "bids"
	CollectionSessions   = "sessions"
)

// Role classifies a principal
type Role string

const (
	RoleProducer     Role = "producer"
	RolePurchaser    Role = "purchaser"
	RoleUndetermined Role = "undetermined"
)

// ProfileCollection returns the collection holding profiles for r.
func (r Role) ProfileCollection() (string, bool) {
	switch r {
	case RoleProducer:
		return CollectionProducers, true
	case RolePurchaser:
		return CollectionPurchasers, true
	default:
		return "", false
	}
}

// Principal is an authenticated identity
type Principal struct {
	ID         string `json:"id"`
	Identifier string `json:"identifier"`
}

// Resolution is the outcome of classifying a principal
type Resolution struct {
	PrincipalID string   `json:"principal_id"`
	Role        Role     `json:"role"`
	Profile     Document `json:"profile"`
}

// Undetermined reports whether no role could be inferred.
func (r Resolution) Undetermined() bool {
	return r.Role == "" || r.Role == RoleUndetermined
}

// Auction status values
const (
	AuctionActive = "active"
	AuctionEnded  = "ended"
)

// BidSummary is the compact bid record kept inside an auction document
type BidSummary struct {
	BidID     string    `json:"bidId"`
	BidderID  string    `json:"bidderId"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// Value converts the summary into a map value for array-union merges.
func (b BidSummary) Value() Value {
	return Map(map[string]Value{
		"bidId":     String(b.BidID),
		"bidderId":  String(b.BidderID),
		"amount":    Number(b.Amount),
		"timestamp": String(b.Timestamp.UTC().Format(time.RFC3339Nano)),
	})
}

// BidSummaryFromValue parses an element of an auction's bids array.
func BidSummaryFromValue(v Value) (BidSummary, bool) {
	m, ok := v.AsMap()
	if !ok {
		return BidSummary{}, false
	}
	var b BidSummary
	b.BidID, _ = m["bidId"].AsString()
	b.BidderID, _ = m["bidderId"].AsString()
	b.Amount, _ = m["amount"].AsNumber()
	if ts, ok := m["timestamp"].AsString(); ok {
		b.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	}
	return b, b.BidID != ""
}

// Auction is the typed view of an auctions document
type Auction struct {
	ID           string       `json:"id"`
	ListingID    string       `json:"listingId"`
	ProducerID   string       `json:"producerId"`
	Title        string       `json:"title"`
	BasePrice    float64      `json:"basePrice"`
	CurrentPrice float64      `json:"currentPrice"`
	Status       string       `json:"status"`
	Bids         []BidSummary `json:"bids"`
	CreatedAt    time.Time    `json:"createdAt"`
	UpdatedAt    time.Time    `json:"updatedAt,omitempty"`
}

// AuctionFromDocument builds the typed view of an auction document.
func AuctionFromDocument(doc Document) Auction {
	a := Auction{
		ID:         doc.ID,
		ListingID:  doc.StringField("listingId"),
		ProducerID: doc.StringField("producerId"),
		Title:      doc.StringField("title"),
		Status:     doc.StringField("status"),
		CreatedAt:  doc.CreatedAt,
		UpdatedAt:  doc.UpdatedAt,
		Bids:       []BidSummary{},
	}
	a.BasePrice, _ = doc.NumberField("basePrice")
	a.CurrentPrice, _ = doc.NumberField("currentPrice")
	if raw, ok := doc.Fields["bids"].AsArray(); ok {
		for _, e := range raw {
			if b, ok := BidSummaryFromValue(e); ok {
				a.Bids = append(a.Bids, b)
			}
		}
	}
	return a
}

// Bid is the typed view of a bids document
type Bid struct {
	BidID     string    `json:"bid_id"`
	AuctionID string    `json:"auction_id"`
	BidderID  string    `json:"bidder_id"`
	Amount    float64   `json:"amount"`
	Timestamp time.Time `json:"timestamp"`
}

// BidFromDocument builds the typed view of a bids document.
func BidFromDocument(doc Document) Bid {
	b := Bid{
		BidID:     doc.ID,
		AuctionID: doc.StringField("auctionId"),
		BidderID:  doc.StringField("bidderId"),
	}
	b.Amount, _ = doc.NumberField("amount")
	if ts := doc.StringField("timestamp"); ts != "" {
		b.Timestamp, _ = time.Parse(time.RFC3339Nano, ts)
	}
	return b
}

// Listing is the typed view of a listings document. Fields beyond the
// standard ones are returned as Attributes.
type Listing struct {
	ID          string         `json:"id"`
	ProducerID  string         `json:"producerId"`
	Title       string         `json:"title"`
	Description string         `json:"description"`
	Quantity    float64        `json:"quantity"`
	Unit        string         `json:"unit"`
	BasePrice   float64        `json:"basePrice"`
	Status      string         `json:"status"`
	Attributes  map[string]any `json:"attributes,omitempty"`
	CreatedAt   time.Time      `json:"createdAt"`
}

var listingFields = map[string]bool{
	"producerId": true, "title": true, "description": true,
	"quantity": true, "unit": true, "basePrice": true, "status": true,
}

// ListingFromDocument builds the typed view of a listing document.
func ListingFromDocument(doc Document) Listing {
	l := Listing{
		ID:          doc.ID,
		ProducerID:  doc.StringField("producerId"),
		Title:       doc.StringField("title"),
		Description: doc.StringField("description"),
		Unit:        doc.StringField("unit"),
		Status:      doc.StringField("status"),
		CreatedAt:   doc.CreatedAt,
	}
	l.Quantity, _ = doc.NumberField("quantity")
	l.BasePrice, _ = doc.NumberField("basePrice")
	for k, v := range doc.Fields {
		if listingFields[k] {
			continue
		}
		if l.Attributes == nil {
			l.Attributes = make(map[string]any)
		}
		l.Attributes[k] = v.Interface()
	}
	return l
}
