// Package schema checks documents against the expected shape of each
// marketplace collection before the record store persists them.
package schema

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"harvest-market/internal/marketerrors"
	"harvest-market/internal/models"
	"harvest-market/internal/repository"

	"github.com/go-playground/validator/v10"
)

var validate = validator.New()

// ProducerProfile is the shape of a producers document
type ProducerProfile struct {
	UID          string `json:"uid" validate:"required_without=Email"`
	Email        string `json:"email" validate:"required_without=UID,omitempty,email"`
	FullName     string `json:"fullName" validate:"required"`
	PhoneNumber  string `json:"phoneNumber" validate:"omitempty,max=32"`
	FarmLocation string `json:"farmLocation"`
	Role         string `json:"role" validate:"omitempty,eq=producer"`
	Status       string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// PurchaserProfile is the shape of a purchasers document
type PurchaserProfile struct {
	UID           string `json:"uid" validate:"required_without=Email"`
	Email         string `json:"email" validate:"required_without=UID,omitempty,email"`
	BusinessName  string `json:"businessName" validate:"required"`
	BusinessType  string `json:"businessType"`
	ContactPerson string `json:"contactPerson"`
	PhoneNumber   string `json:"phoneNumber" validate:"omitempty,max=32"`
	Role          string `json:"role" validate:"omitempty,eq=purchaser"`
	Status        string `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

// Listing is the shape of a listings document
type Listing struct {
	ProducerID string  `json:"producerId" validate:"required"`
	Title      string  `json:"title" validate:"required"`
	Quantity   float64 `json:"quantity" validate:"gt=0"`
	Unit       string  `json:"unit"`
	BasePrice  float64 `json:"basePrice" validate:"gt=0"`
	Status     string  `json:"status" validate:"omitempty,oneof=active ended"`
}

// BidSummary is the shape of one element of an auction's bids array
type BidSummary struct {
	BidID     string  `json:"bidId" validate:"required"`
	BidderID  string  `json:"bidderId" validate:"required"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	Timestamp string  `json:"timestamp" validate:"required"`
}

// Auction is the shape of an auctions document
type Auction struct {
	ListingID    string       `json:"listingId" validate:"required"`
	ProducerID   string       `json:"producerId" validate:"required"`
	BasePrice    float64      `json:"basePrice" validate:"gt=0"`
	CurrentPrice float64      `json:"currentPrice" validate:"gtefield=BasePrice"`
	Status       string       `json:"status" validate:"required,oneof=active ended"`
	Bids         []BidSummary `json:"bids" validate:"dive"`
}

// Bid is the shape of a bids document
type Bid struct {
	AuctionID string  `json:"auctionId" validate:"required"`
	BidderID  string  `json:"bidderId" validate:"required"`
	Amount    float64 `json:"amount" validate:"gt=0"`
	Timestamp string  `json:"timestamp" validate:"required"`
}

// Session is the shape of a sessions (principal) document
type Session struct {
	Identifier     string `json:"identifier" validate:"required"`
	CredentialHash string `json:"credentialHash" validate:"required"`
}

// For returns a validator that decodes fields into T and checks its tags.
func For[T any]() repository.SchemaFunc {
	return func(fields models.Fields) error {
		var target T
		if err := decode(fields, &target); err != nil {
			return err
		}
		return check(target)
	}
}

// StoreOptions registers the schema of every marketplace collection.
func StoreOptions() []repository.Option {
	return []repository.Option{
		repository.WithSchema(models.CollectionProducers, For[ProducerProfile]()),
		repository.WithSchema(models.CollectionPurchasers, For[PurchaserProfile]()),
		repository.WithSchema(models.CollectionListings, For[Listing]()),
		repository.WithSchema(models.CollectionAuctions, For[Auction]()),
		repository.WithSchema(models.CollectionBids, For[Bid]()),
		repository.WithSchema(models.CollectionSessions, For[Session]()),
	}
}

func decode(fields models.Fields, target any) error {
	b, err := json.Marshal(fields.Plain())
	if err != nil {
		return fmt.Errorf("%w: %w", marketerrors.ErrSchemaViolation, err)
	}
	if err := json.Unmarshal(b, target); err != nil {
		var typeErr *json.UnmarshalTypeError
		if errors.As(err, &typeErr) {
			return fmt.Errorf("%w: %s must be %s", marketerrors.ErrSchemaViolation, typeErr.Field, typeErr.Type)
		}
		return fmt.Errorf("%w: %w", marketerrors.ErrSchemaViolation, err)
	}
	return nil
}

func check(target any) error {
	err := validate.Struct(target)
	if err == nil {
		return nil
	}

	var ve validator.ValidationErrors
	if errors.As(err, &ve) {
		msgs := make([]string, 0, len(ve))
		for _, fe := range ve {
			msgs = append(msgs, fieldError(fe))
		}
		return fmt.Errorf("%w: %s", marketerrors.ErrSchemaViolation, strings.Join(msgs, "; "))
	}
	return fmt.Errorf("%w: %w", marketerrors.ErrSchemaViolation, err)
}

// fieldError converts a single validation failure into a readable message.
func fieldError(fe validator.FieldError) string {
	field := fe.Namespace()
	if i := strings.Index(field, "."); i >= 0 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return field + " is required"
	case "required_without":
		return fmt.Sprintf("%s is required when %s is absent", field, fe.Param())
	case "email":
		return field + " must be a valid email"
	case "gt":
		return fmt.Sprintf("%s must be greater than %s", field, fe.Param())
	case "gtefield":
		return fmt.Sprintf("%s must not be below %s", field, fe.Param())
	case "oneof":
		return fmt.Sprintf("%s must be one of: %s", field, fe.Param())
	case "eq":
		return fmt.Sprintf("%s must be %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed validation (%s)", field, fe.Tag())
	}
}
