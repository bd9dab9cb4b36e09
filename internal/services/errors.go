package services

import "errors"

var (
	// ErrNotFound is returned when the requested resource does not exist
	ErrNotFound = errors.New("resource not found")

	// ErrForbidden is returned when the principal is not allowed to
	// perform the operation
	ErrForbidden = errors.New("operation not permitted")

	// ErrReplyToReply is returned when a reply is posted onto a post
	// that is itself a reply. Threading is a single level deep.
	ErrReplyToReply = errors.New("replies cannot be nested")

	// ErrUnknownAvatar is returned when an avatar file name is not in
	// the stock catalog
	ErrUnknownAvatar = errors.New("unknown avatar")

	// ErrUnknownCategory is returned when the referenced category does
	// not exist
	ErrUnknownCategory = errors.New("unknown category")
)
