package service

import "errors"

var (
	// ErrNotFound signals a missing record (therapist, review, post).
	ErrNotFound = errors.New("not found")

	// ErrNoReviews is returned by the prompt test surface when the
	// target therapist has no reviews to render. The public summary
	// path treats zero reviews as a normal empty result instead.
	ErrNoReviews = errors.New("no reviews found for this therapist")
)
