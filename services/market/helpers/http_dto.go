package helpers

// Request/Response DTOs
type RegisterProducerRequest struct {
	Email        string         `json:"email" binding:"required,email"`
	Password     string         `json:"password" binding:"required"`
	FullName     string         `json:"full_name" binding:"required"`
	PhoneNumber  string         `json:"phone_number" binding:"omitempty,max=32"`
	FarmLocation string         `json:"farm_location"`
	Details      map[string]any `json:"details"`
}

type RegisterPurchaserRequest struct {
	Email         string         `json:"email" binding:"required,email"`
	Password      string         `json:"password" binding:"required"`
	BusinessName  string         `json:"business_name" binding:"required"`
	BusinessType  string         `json:"business_type"`
	ContactPerson string         `json:"contact_person"`
	PhoneNumber   string         `json:"phone_number" binding:"omitempty,max=32"`
	Details       map[string]any `json:"details"`
}

type LoginRequest struct {
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type SessionResponse struct {
	Token       string         `json:"token,omitempty"`
	PrincipalID string         `json:"principal_id"`
	Role        string         `json:"role"`
	Profile     map[string]any `json:"profile,omitempty"`
}

type OpenAuctionRequest struct {
	Title       string         `json:"title" binding:"required"`
	Description string         `json:"description"`
	Quantity    float64        `json:"quantity" binding:"required,gt=0"`
	Unit        string         `json:"unit"`
	BasePrice   float64        `json:"base_price" binding:"required,gt=0"`
	Attributes  map[string]any `json:"attributes"`
}

type OpenAuctionResponse struct {
	ListingID string `json:"listing_id"`
	AuctionID string `json:"auction_id"`
}

type PlaceBidRequest struct {
	Amount float64 `json:"amount" binding:"required,gt=0"`
}

type BidResponse struct {
	BidID     string  `json:"bid_id"`
	AuctionID string  `json:"auction_id"`
	BidderID  string  `json:"bidder_id"`
	Amount    float64 `json:"amount"`
	Timestamp string  `json:"timestamp,omitempty"`
}
