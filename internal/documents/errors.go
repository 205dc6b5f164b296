package documents

import "errors"

var (
	// ErrNotFound indicates the requested document does not exist.
	ErrNotFound = errors.New("document not found")
	// ErrInvalidInput indicates the upload was rejected before any side effect.
	ErrInvalidInput = errors.New("invalid input")
	// ErrNotInReview guards the approval transition.
	ErrNotInReview = errors.New("must be in review status to complete")
)
