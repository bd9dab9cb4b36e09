package auth

import "errors"

var (
	// ErrBadCredentials is returned for every failed local authentication.
	// Unknown username and wrong password are deliberately indistinguishable.
	ErrBadCredentials = errors.New("bad username or password")

	// ErrNoUsableEmail is returned when an OAuth2 profile carries no email
	// to bind a local account to
	ErrNoUsableEmail = errors.New("oauth2 profile has no usable email address")

	// ErrUnknownProvider is returned for a provider name outside the
	// configured set
	ErrUnknownProvider = errors.New("unknown oauth2 provider")
)
