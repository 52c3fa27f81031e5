package domain

import "errors"

var (
	// ErrInvalidBundle means the bundle lacks the categories or words field
	ErrInvalidBundle = errors.New("invalid bundle format: categories or words field is missing")
	// ErrDecodeBundle means the bundle payload is not valid JSON
	ErrDecodeBundle = errors.New("bundle is not valid JSON")
	// ErrFetch covers transport failures and non-success HTTP statuses
	ErrFetch = errors.New("failed to fetch bundle")
	// ErrEmptyURL is returned when a remote import is requested without a URL
	ErrEmptyURL = errors.New("import URL is empty")
)
