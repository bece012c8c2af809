package domain

import "errors"

// Sentinel errors for collection operations.
// Use errors.Is() to check against these.
var (
	// ErrInvalidQuantity rejects a non-positive quantity on an add or a
	// negative quantity on a set, before any store mutation happens.
	ErrInvalidQuantity = errors.New("quantity must be positive")

	// ErrProductNotFound is returned when an operation targets a product
	// that is not in the collection and absence is an error.
	ErrProductNotFound = errors.New("product not found in collection")

	// ErrAlreadyInCollection guards duplicate wishlist adds.
	ErrAlreadyInCollection = errors.New("product already in collection")

	// ErrNotInCollection guards wishlist removals of absent products.
	ErrNotInCollection = errors.New("product not in collection")

	// ErrRemoteUnavailable covers network errors, timeouts and 5xx
	// responses from the remote services, including an open breaker.
	ErrRemoteUnavailable = errors.New("remote service unavailable")
)
