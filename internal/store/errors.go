package store

import "errors"

var (
	// ErrRecordNotFound wraps GORM's not found error for consistency
	ErrRecordNotFound = errors.New("record not found")

	// ErrUsernameConflict is returned when a username already exists
	ErrUsernameConflict = errors.New("username already exists")

	// ErrEmailConflict is returned when an email address already exists
	ErrEmailConflict = errors.New("email already exists")

	// ErrCategoryConflict is returned when a category name already exists
	ErrCategoryConflict = errors.New("category name already exists")
)
