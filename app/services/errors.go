package services

import "errors"

var (
	// ErrInvalidCredentials is returned when login email or password is wrong.
	ErrInvalidCredentials = errors.New("invalid credentials")

	// ErrForbidden is returned when an authenticated user is not the owner
	// of the resource being mutated.
	ErrForbidden = errors.New("not authorized")

	// ErrRateLimited is returned when a like toggle lands inside the
	// cooldown window.
	ErrRateLimited = errors.New("rate limited")

	// ErrParentMismatch is returned when a reply's parent comment belongs
	// to a different post.
	ErrParentMismatch = errors.New("parent comment belongs to a different post")
)
