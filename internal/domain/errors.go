package domain

import "errors"

// Input errors abort the whole operation and are reported verbatim to the caller.
var (
	// ErrInvalidRequest is returned when request parameters are invalid
	ErrInvalidRequest = errors.New("invalid request parameters")

	// ErrNoXMLContent is returned when an import is called without markup
	ErrNoXMLContent = errors.New("No XML content provided")

	// ErrNoProducts is returned when a markup blob yields no product records
	ErrNoProducts = errors.New("No products found in XML file")

	// ErrJobIDRequired is returned when an export is called without a job id
	ErrJobIDRequired = errors.New("Job ID is required")

	// ErrInvalidConstants is returned when a construction constant is negative
	ErrInvalidConstants = errors.New("construction constants must be non-negative")
)

// Record validation errors drop a single row or change and never abort a batch.
var (
	// ErrMissingName is returned for a catalog row without a product name
	ErrMissingName = errors.New("product name is empty")

	// ErrMissingLinkID is returned for a catalog row without a link identifier
	ErrMissingLinkID = errors.New("link identifier is empty")

	// ErrInvalidPrice is returned for a price change with a negative or missing price
	ErrInvalidPrice = errors.New("invalid price")
)

// Store errors are propagated with the underlying message.
var (
	// ErrStoreFailure is returned when the relational store fails
	ErrStoreFailure = errors.New("store operation failed")

	// ErrJobNotFound is returned when the requested job does not exist
	ErrJobNotFound = errors.New("job not found")

	// ErrProductNotFound is returned when no price list entry exists for a SKU
	ErrProductNotFound = errors.New("product not found")

	// ErrFeedFailure is returned when a remote catalog feed cannot be fetched
	ErrFeedFailure = errors.New("catalog feed request failed")

	// ErrArchiveFailure is returned when a generated document cannot be archived
	ErrArchiveFailure = errors.New("document archive failed")
)

// Authorization errors abort before any write.
var (
	// ErrUnauthorized is returned when no valid credentials were supplied
	ErrUnauthorized = errors.New("authentication required")

	// ErrForbidden is returned when the caller lacks the admin role
	ErrForbidden = errors.New("admin role required")
)

// IsInputError reports whether err is caused by missing or malformed caller input
func IsInputError(err error) bool {
	for _, target := range []error{ErrInvalidRequest, ErrNoXMLContent, ErrNoProducts, ErrJobIDRequired, ErrInvalidConstants} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}
