package marketerrors

import "errors"

// Storage-level errors
var (
	ErrStorage         = errors.New("storage medium failure")
	ErrNotFound        = errors.New("not found")
	ErrDuplicate       = errors.New("duplicate value")
	ErrReservedField   = errors.New("reserved field")
	ErrSchemaViolation = errors.New("document does not match collection schema")
)

// Session and identity errors
var (
	ErrIdentifierTaken   = errors.New("identifier already registered")
	ErrWeakCredential    = errors.New("credential does not meet strength policy")
	ErrInvalidIdentifier = errors.New("invalid identifier")
	ErrNotAuthenticated  = errors.New("no authenticated principal")
	ErrRoleConflict      = errors.New("identifier registered under another role")
	ErrForbidden         = errors.New("operation not permitted for principal")
)

// Ledger errors
var (
	ErrInvalidBid         = errors.New("invalid bid")
	ErrBidTooLow          = errors.New("bid amount too low")
	ErrAuctionClosed      = errors.New("auction is not active")
	ErrNoBids             = errors.New("no bids found for auction")
	ErrPartialLedgerWrite = errors.New("bid recorded but auction aggregate not updated")
)
