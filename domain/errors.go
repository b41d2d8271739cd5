package domain

import "errors"

var (
	// ErrInternalServerError will throw if any the Internal Server Error happen
	ErrInternalServerError = errors.New("Internal Server Error")
	// ErrNotFound will throw if the requested item is not exists
	ErrNotFound = errors.New("Your requested Item is not found")
	// ErrConflict will throw if the current action already exists
	ErrConflict = errors.New("Your Item already exist")
	// ErrBadParamInput will throw if the given request-body or params is not valid
	ErrBadParamInput = errors.New("Given Param is not valid")

	// ErrInvalidState will throw if the operation does not fit the
	// listing's current status or pricing type
	ErrInvalidState = errors.New("invalid listing state")
	// ErrListingEnded will throw if the auction window has passed
	ErrListingEnded = errors.New("auction has ended")
	// ErrBidTooLow will throw if the bid amount is below the minimum
	ErrBidTooLow = errors.New("bid amount below minimum")
	// ErrForbidden will throw if the actor may not perform the operation,
	// e.g. a seller bidding on their own listing
	ErrForbidden = errors.New("operation not allowed for this actor")
	// ErrVersionConflict will throw if a versioned update lost the race
	// against a concurrent writer
	ErrVersionConflict = errors.New("listing was modified concurrently")
)
